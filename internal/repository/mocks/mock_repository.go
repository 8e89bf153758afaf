// Package mocks provides a testify-based mock of the Repository interface for
// use in service and handler tests.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/GowthamOleti/itelo/internal/model"
	"github.com/GowthamOleti/itelo/internal/repository"
)

type MockRepository struct {
	mock.Mock
}

var _ repository.Repository = (*MockRepository)(nil)

// NewMockRepository creates the mock and registers an expectation check on
// test cleanup.
func NewMockRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRepository {
	m := &MockRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRepository) CreateSession(ctx context.Context, session *model.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockRepository) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	ret := m.Called(ctx, sessionID)
	var session *model.Session
	if ret.Get(0) != nil {
		session = ret.Get(0).(*model.Session)
	}
	return session, ret.Error(1)
}

func (m *MockRepository) GetSessions(ctx context.Context) ([]*model.Session, error) {
	ret := m.Called(ctx)
	var sessions []*model.Session
	if ret.Get(0) != nil {
		sessions = ret.Get(0).([]*model.Session)
	}
	return sessions, ret.Error(1)
}

func (m *MockRepository) UpdateSessionTitle(ctx context.Context, sessionID, newTitle string) error {
	return m.Called(ctx, sessionID, newTitle).Error(0)
}

func (m *MockRepository) DeleteSession(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *MockRepository) AddMessage(ctx context.Context, message *model.Message) error {
	return m.Called(ctx, message).Error(0)
}

func (m *MockRepository) GetMessagesBySessionID(ctx context.Context, sessionID string) ([]model.Message, error) {
	ret := m.Called(ctx, sessionID)
	var messages []model.Message
	if ret.Get(0) != nil {
		messages = ret.Get(0).([]model.Message)
	}
	return messages, ret.Error(1)
}

func (m *MockRepository) CreateReminder(ctx context.Context, reminder *model.Reminder) error {
	return m.Called(ctx, reminder).Error(0)
}

func (m *MockRepository) GetReminders(ctx context.Context) ([]*model.Reminder, error) {
	ret := m.Called(ctx)
	var reminders []*model.Reminder
	if ret.Get(0) != nil {
		reminders = ret.Get(0).([]*model.Reminder)
	}
	return reminders, ret.Error(1)
}

func (m *MockRepository) GetDueReminders(ctx context.Context, now time.Time) ([]*model.Reminder, error) {
	ret := m.Called(ctx, now)
	var reminders []*model.Reminder
	if ret.Get(0) != nil {
		reminders = ret.Get(0).([]*model.Reminder)
	}
	return reminders, ret.Error(1)
}

func (m *MockRepository) MarkReminderFired(ctx context.Context, reminderID string, firedAt time.Time) error {
	return m.Called(ctx, reminderID, firedAt).Error(0)
}
