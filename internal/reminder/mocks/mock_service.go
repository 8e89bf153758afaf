// Package mocks provides a testify-based mock of the reminder Service.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/GowthamOleti/itelo/internal/model"
	"github.com/GowthamOleti/itelo/internal/reminder"
)

type MockService struct {
	mock.Mock
}

var _ reminder.Service = (*MockService)(nil)

func NewMockService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockService {
	m := &MockService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockService) Create(ctx context.Context, title string, dueAt *time.Time) (string, error) {
	ret := m.Called(ctx, title, dueAt)
	return ret.String(0), ret.Error(1)
}

func (m *MockService) List(ctx context.Context) ([]*model.Reminder, error) {
	ret := m.Called(ctx)
	var reminders []*model.Reminder
	if ret.Get(0) != nil {
		reminders = ret.Get(0).([]*model.Reminder)
	}
	return reminders, ret.Error(1)
}
