// Package mocks provides testify-based mocks of the service interfaces
// consumed by the API layer.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/GowthamOleti/itelo/internal/interfaces"
	"github.com/GowthamOleti/itelo/internal/model"
	"github.com/GowthamOleti/itelo/internal/service"
)

type mockConstructorTestingT interface {
	mock.TestingT
	Cleanup(func())
}

type MockConversationService struct {
	mock.Mock
}

var _ interfaces.ConversationService = (*MockConversationService)(nil)

func NewMockConversationService(t mockConstructorTestingT) *MockConversationService {
	m := &MockConversationService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockConversationService) Submit(ctx context.Context, req *service.SubmitRequest, events chan<- model.StreamEvent) error {
	return m.Called(ctx, req, events).Error(0)
}

type MockSessionService struct {
	mock.Mock
}

var _ interfaces.SessionService = (*MockSessionService)(nil)

func NewMockSessionService(t mockConstructorTestingT) *MockSessionService {
	m := &MockSessionService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSessionService) Create(ctx context.Context) (*model.Session, error) {
	ret := m.Called(ctx)
	var session *model.Session
	if ret.Get(0) != nil {
		session = ret.Get(0).(*model.Session)
	}
	return session, ret.Error(1)
}

func (m *MockSessionService) List(ctx context.Context) ([]*model.Session, error) {
	ret := m.Called(ctx)
	var sessions []*model.Session
	if ret.Get(0) != nil {
		sessions = ret.Get(0).([]*model.Session)
	}
	return sessions, ret.Error(1)
}

func (m *MockSessionService) GetFull(ctx context.Context, sessionID string) (*model.FullSession, error) {
	ret := m.Called(ctx, sessionID)
	var full *model.FullSession
	if ret.Get(0) != nil {
		full = ret.Get(0).(*model.FullSession)
	}
	return full, ret.Error(1)
}

func (m *MockSessionService) UpdateTitle(ctx context.Context, sessionID, newTitle string) error {
	return m.Called(ctx, sessionID, newTitle).Error(0)
}

func (m *MockSessionService) Delete(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

type MockSettingsService struct {
	mock.Mock
}

var _ interfaces.SettingsService = (*MockSettingsService)(nil)

func NewMockSettingsService(t mockConstructorTestingT) *MockSettingsService {
	m := &MockSettingsService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSettingsService) InitAndGet(ctx context.Context, defaults *service.Settings) (*service.Settings, error) {
	ret := m.Called(ctx, defaults)
	var settings *service.Settings
	if ret.Get(0) != nil {
		settings = ret.Get(0).(*service.Settings)
	}
	return settings, ret.Error(1)
}

func (m *MockSettingsService) Get(ctx context.Context) (*service.Settings, error) {
	ret := m.Called(ctx)
	var settings *service.Settings
	if ret.Get(0) != nil {
		settings = ret.Get(0).(*service.Settings)
	}
	return settings, ret.Error(1)
}

func (m *MockSettingsService) Save(ctx context.Context, settings *service.Settings) error {
	return m.Called(ctx, settings).Error(0)
}
