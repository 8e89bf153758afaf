// Package reminder implements the reminder collaborator: it persists the
// tasks extracted from chat input and sweeps them when they come due.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	app_errors "github.com/GowthamOleti/itelo/internal/errors"
	"github.com/GowthamOleti/itelo/internal/model"
	"github.com/GowthamOleti/itelo/internal/repository"
)

// dueFormat mirrors the medium-date/short-time confirmation style of the
// original client ("Mar 10, 2025 at 5:00 PM").
const dueFormat = "Jan 2, 2006 at 3:04 PM"

// Service is the contract the conversation flow talks to. Create returns a
// user-facing confirmation string; failures are either a permission refusal
// or a storage error, both surfaced to the user by the caller.
type Service interface {
	Create(ctx context.Context, title string, dueAt *time.Time) (string, error)
	List(ctx context.Context) ([]*model.Reminder, error)
}

type storeService struct {
	repo    repository.Repository
	enabled bool
}

// NewService creates a repository-backed reminder service. When enabled is
// false every Create is refused with a permission error, mirroring a user
// who has not granted reminder access.
func NewService(repo repository.Repository, enabled bool) Service {
	return &storeService{repo: repo, enabled: enabled}
}

func (s *storeService) Create(ctx context.Context, title string, dueAt *time.Time) (string, error) {
	if !s.enabled {
		return "", fmt.Errorf("%w: reminder access is disabled, enable REMINDERS_ENABLED to use reminders", app_errors.ErrPermission)
	}

	rem := &model.Reminder{
		ID:        uuid.NewString(),
		Title:     title,
		DueAt:     dueAt,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateReminder(ctx, rem); err != nil {
		return "", fmt.Errorf("could not save reminder: %w", err)
	}

	if dueAt != nil {
		return fmt.Sprintf("✅ Reminder set: %q for %s", title, dueAt.Format(dueFormat)), nil
	}
	return fmt.Sprintf("✅ Reminder created: %q", title), nil
}

func (s *storeService) List(ctx context.Context) ([]*model.Reminder, error) {
	return s.repo.GetReminders(ctx)
}
