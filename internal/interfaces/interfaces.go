package interfaces

import (
	"context"

	"github.com/GowthamOleti/itelo/internal/model"
	"github.com/GowthamOleti/itelo/internal/service"
)

// This file defines the interfaces for our core services.
// Depending on these interfaces, instead of concrete implementations, allows for
// decoupling (e.g., API layer from Service layer) and easier testing via mocking.

// ConversationService defines the contract for the submission flow: classify
// the user's text, dispatch it and stream progress events back to the caller.
type ConversationService interface {
	Submit(ctx context.Context, req *service.SubmitRequest, events chan<- model.StreamEvent) error
}

// SessionService defines the contract for session lifecycle management.
type SessionService interface {
	Create(ctx context.Context) (*model.Session, error)
	List(ctx context.Context) ([]*model.Session, error)
	GetFull(ctx context.Context, sessionID string) (*model.FullSession, error)
	UpdateTitle(ctx context.Context, sessionID, newTitle string) error
	Delete(ctx context.Context, sessionID string) error
}

// SettingsService defines the contract for managing application settings.
type SettingsService interface {
	InitAndGet(ctx context.Context, defaults *service.Settings) (*service.Settings, error)
	Get(ctx context.Context) (*service.Settings, error)
	Save(ctx context.Context, settings *service.Settings) error
}
