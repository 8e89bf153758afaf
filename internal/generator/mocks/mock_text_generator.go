// Package mocks provides a testify-based mock of the TextGenerator interface.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/GowthamOleti/itelo/internal/generator"
)

type MockTextGenerator struct {
	mock.Mock
}

var _ generator.TextGenerator = (*MockTextGenerator)(nil)

func NewMockTextGenerator(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTextGenerator {
	m := &MockTextGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTextGenerator) GenerateStream(ctx context.Context, req *generator.GenerateRequest, ch chan<- generator.Fragment) error {
	return m.Called(ctx, req, ch).Error(0)
}
