// Package mocks provides a testify-based mock of the image Generator.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/GowthamOleti/itelo/internal/imagegen"
)

type MockGenerator struct {
	mock.Mock
}

var _ imagegen.Generator = (*MockGenerator)(nil)

func NewMockGenerator(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockGenerator {
	m := &MockGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	ret := m.Called(ctx, prompt)
	var data []byte
	if ret.Get(0) != nil {
		data = ret.Get(0).([]byte)
	}
	return data, ret.Error(1)
}
