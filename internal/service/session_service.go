package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	app_errors "github.com/GowthamOleti/itelo/internal/errors"
	"github.com/GowthamOleti/itelo/internal/model"
	"github.com/GowthamOleti/itelo/internal/repository"
)

// SessionService covers the session lifecycle around the conversation flow:
// explicit creation ("new chat"), listing, retrieval with history, manual
// retitling and deletion.
type SessionService struct {
	repo repository.Repository
}

func NewSessionService(repo repository.Repository) *SessionService {
	return &SessionService{repo: repo}
}

// Create makes an empty session with the placeholder title. The first user
// message will derive the real title.
func (s *SessionService) Create(ctx context.Context) (*model.Session, error) {
	now := time.Now().UTC()
	session := &model.Session{ID: uuid.NewString(), Title: defaultTitle, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("could not create session: %w", err)
	}
	return session, nil
}

func (s *SessionService) List(ctx context.Context) ([]*model.Session, error) {
	return s.repo.GetSessions(ctx)
}

// GetFull retrieves a session's metadata and all its messages, ordered by
// creation time ascending.
func (s *SessionService) GetFull(ctx context.Context, sessionID string) (*model.FullSession, error) {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, app_errors.ErrNotFound
		}
		return nil, fmt.Errorf("could not get session: %w", err)
	}
	messages, err := s.repo.GetMessagesBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("could not get messages: %w", err)
	}
	return &model.FullSession{Session: *session, Messages: messages}, nil
}

// UpdateTitle handles a manual title change; an explicit title suppresses any
// future derivation.
func (s *SessionService) UpdateTitle(ctx context.Context, sessionID, newTitle string) error {
	if newTitle == "" {
		return fmt.Errorf("%w: title cannot be empty", app_errors.ErrValidation)
	}
	err := s.repo.UpdateSessionTitle(ctx, sessionID, newTitle)
	if errors.Is(err, repository.ErrNotFound) {
		return app_errors.ErrNotFound
	}
	return err
}

// Delete removes the session; its messages cascade with it.
func (s *SessionService) Delete(ctx context.Context, sessionID string) error {
	slog.Info("deleting session", "session_id", sessionID)
	return s.repo.DeleteSession(ctx, sessionID)
}
