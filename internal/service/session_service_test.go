package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "github.com/GowthamOleti/itelo/internal/errors"
	"github.com/GowthamOleti/itelo/internal/model"
	"github.com/GowthamOleti/itelo/internal/repository"
	mock_repo "github.com/GowthamOleti/itelo/internal/repository/mocks"
	"github.com/GowthamOleti/itelo/internal/service"
)

func setupSessionService(t *testing.T) (*service.SessionService, *mock_repo.MockRepository) {
	repo := mock_repo.NewMockRepository(t)
	return service.NewSessionService(repo), repo
}

func TestSessionService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, repo := setupSessionService(t)
		repo.On("CreateSession", ctx, mock.AnythingOfType("*model.Session")).Return(nil).Once()

		session, err := svc.Create(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, session.ID)
		assert.Equal(t, "New Chat", session.Title)
	})

	t.Run("Failure - repository error", func(t *testing.T) {
		svc, repo := setupSessionService(t)
		repo.On("CreateSession", ctx, mock.Anything).Return(errors.New("db down")).Once()

		session, err := svc.Create(ctx)
		require.Error(t, err)
		assert.Nil(t, session)
	})
}

func TestSessionService_GetFull(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - session with messages", func(t *testing.T) {
		svc, repo := setupSessionService(t)
		repo.On("GetSession", ctx, "s1").Return(&model.Session{ID: "s1", Title: "t"}, nil).Once()
		repo.On("GetMessagesBySessionID", ctx, "s1").Return([]model.Message{
			{ID: "m1", Role: model.RoleUser, Content: "hi"},
			{ID: "m2", Role: model.RoleAssistant, Content: "hello"},
		}, nil).Once()

		full, err := svc.GetFull(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "s1", full.ID)
		assert.Len(t, full.Messages, 2)
	})

	t.Run("Failure - unknown session maps to not found", func(t *testing.T) {
		svc, repo := setupSessionService(t)
		repo.On("GetSession", ctx, "missing").Return(nil, repository.ErrNotFound).Once()

		full, err := svc.GetFull(ctx, "missing")
		require.ErrorIs(t, err, app_errors.ErrNotFound)
		assert.Nil(t, full)
	})
}

func TestSessionService_UpdateTitle(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, repo := setupSessionService(t)
		repo.On("UpdateSessionTitle", ctx, "s1", "Renamed").Return(nil).Once()

		require.NoError(t, svc.UpdateTitle(ctx, "s1", "Renamed"))
	})

	t.Run("Failure - empty title", func(t *testing.T) {
		svc, _ := setupSessionService(t)

		err := svc.UpdateTitle(ctx, "s1", "")
		require.ErrorIs(t, err, app_errors.ErrValidation)
	})

	t.Run("Failure - unknown session maps to not found", func(t *testing.T) {
		svc, repo := setupSessionService(t)
		repo.On("UpdateSessionTitle", ctx, "missing", "x").Return(repository.ErrNotFound).Once()

		err := svc.UpdateTitle(ctx, "missing", "x")
		require.ErrorIs(t, err, app_errors.ErrNotFound)
	})
}

func TestSessionService_Delete(t *testing.T) {
	ctx := context.Background()

	svc, repo := setupSessionService(t)
	repo.On("DeleteSession", ctx, "s1").Return(nil).Once()

	require.NoError(t, svc.Delete(ctx, "s1"))
}
