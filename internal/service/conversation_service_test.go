package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "github.com/GowthamOleti/itelo/internal/errors"
	"github.com/GowthamOleti/itelo/internal/generator"
	mock_gen "github.com/GowthamOleti/itelo/internal/generator/mocks"
	mock_img "github.com/GowthamOleti/itelo/internal/imagegen/mocks"
	"github.com/GowthamOleti/itelo/internal/model"
	mock_rem "github.com/GowthamOleti/itelo/internal/reminder/mocks"
	"github.com/GowthamOleti/itelo/internal/repository"
	mock_repo "github.com/GowthamOleti/itelo/internal/repository/mocks"
	"github.com/GowthamOleti/itelo/internal/service"
)

type convMocks struct {
	repo      *mock_repo.MockRepository
	gen       *mock_gen.MockTextGenerator
	reminders *mock_rem.MockService
	images    *mock_img.MockGenerator

	// saved collects every message persisted through AddMessage, in call order.
	saved *[]*model.Message
}

func setupConversationService(t *testing.T) (*service.ConversationService, convMocks) {
	mocks := convMocks{
		repo:      mock_repo.NewMockRepository(t),
		gen:       mock_gen.NewMockTextGenerator(t),
		reminders: mock_rem.NewMockService(t),
		images:    mock_img.NewMockGenerator(t),
		saved:     &[]*model.Message{},
	}

	settings := service.NewMemorySettingsService(&service.Settings{SystemPrompt: "be nice", Model: "test-model"})
	svc := service.NewConversationService(mocks.repo, mocks.gen, mocks.reminders, mocks.images, settings)
	return svc, mocks
}

// expectSaves wires AddMessage to succeed and record every persisted message.
func (m convMocks) expectSaves(ctx context.Context) {
	m.repo.On("AddMessage", ctx, mock.AnythingOfType("*model.Message")).
		Run(func(args mock.Arguments) {
			*m.saved = append(*m.saved, args.Get(1).(*model.Message))
		}).
		Return(nil)
}

// expectNewSession wires lazy session creation with an empty history.
func (m convMocks) expectNewSession(ctx context.Context) {
	m.repo.On("CreateSession", ctx, mock.AnythingOfType("*model.Session")).Return(nil).Once()
	m.repo.On("GetMessagesBySessionID", ctx, mock.AnythingOfType("string")).Return([]model.Message{}, nil).Once()
	m.repo.On("UpdateSessionTitle", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil).Once()
}

func submit(t *testing.T, svc *service.ConversationService, req *service.SubmitRequest) ([]model.StreamEvent, error) {
	t.Helper()

	events := make(chan model.StreamEvent, 1024)
	err := svc.Submit(context.Background(), req, events)

	var collected []model.StreamEvent
	for ev := range events {
		collected = append(collected, ev)
	}
	return collected, err
}

func eventTypes(events []model.StreamEvent) []model.EventType {
	types := make([]model.EventType, len(events))
	for i, ev := range events {
		types[i] = ev.Type
	}
	return types
}

func TestConversationService_Submit_RejectsEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t "} {
		svc, mocks := setupConversationService(t)

		events, err := submit(t, svc, &service.SubmitRequest{Content: input})
		require.ErrorIs(t, err, app_errors.ErrValidation)

		// No session, no message, no event: the submission never happened.
		assert.Empty(t, events)
		assert.Empty(t, *mocks.saved)
	}
}

func TestConversationService_Submit_PlainChat(t *testing.T) {
	ctx := context.Background()

	t.Run("new session streams and persists the response", func(t *testing.T) {
		svc, mocks := setupConversationService(t)
		mocks.expectNewSession(ctx)
		mocks.expectSaves(ctx)

		mocks.gen.On("GenerateStream", mock.Anything, mock.AnythingOfType("*generator.GenerateRequest"), mock.Anything).
			Run(func(args mock.Arguments) {
				ch := args.Get(2).(chan<- generator.Fragment)
				ch <- generator.Fragment{Content: "Hel"}
				ch <- generator.Fragment{Content: "lo world"}
				ch <- generator.Fragment{Done: true}
				close(ch)
			}).
			Return(nil).Once()

		events, err := submit(t, svc, &service.SubmitRequest{Content: "say hello"})
		require.NoError(t, err)

		// User message first, then the streamed assistant message.
		require.Len(t, *mocks.saved, 2)
		assert.Equal(t, model.RoleUser, (*mocks.saved)[0].Role)
		assert.Equal(t, "say hello", (*mocks.saved)[0].Content)
		assert.Equal(t, model.RoleAssistant, (*mocks.saved)[1].Role)
		assert.Equal(t, "Hello world", (*mocks.saved)[1].Content)

		types := eventTypes(events)
		assert.Equal(t, model.EventMessage, types[0])
		assert.Contains(t, types, model.EventThinking)
		assert.Contains(t, types, model.EventStarted)
		assert.Equal(t, model.EventDone, types[len(types)-1])
	})

	t.Run("title derives from the first thirty characters", func(t *testing.T) {
		svc, mocks := setupConversationService(t)
		long := strings.Repeat("abcde ", 10) // 60 chars

		mocks.repo.On("CreateSession", ctx, mock.Anything).Return(nil).Once()
		mocks.repo.On("GetMessagesBySessionID", ctx, mock.Anything).Return([]model.Message{}, nil).Once()
		mocks.repo.On("UpdateSessionTitle", ctx, mock.Anything, strings.TrimSpace(long)[:30]).Return(nil).Once()
		mocks.expectSaves(ctx)

		mocks.gen.On("GenerateStream", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				ch := args.Get(2).(chan<- generator.Fragment)
				ch <- generator.Fragment{Content: "ok", Done: true}
				close(ch)
			}).
			Return(nil).Once()

		_, err := submit(t, svc, &service.SubmitRequest{Content: long})
		require.NoError(t, err)
	})

	t.Run("existing session with history keeps its title", func(t *testing.T) {
		svc, mocks := setupConversationService(t)
		session := &model.Session{ID: "s1", Title: "My Chat"}
		history := []model.Message{{ID: "m0", SessionID: "s1", Role: model.RoleUser, Content: "earlier"}}

		mocks.repo.On("GetSession", ctx, "s1").Return(session, nil).Once()
		mocks.repo.On("GetMessagesBySessionID", ctx, "s1").Return(history, nil).Once()
		mocks.expectSaves(ctx)

		mocks.gen.On("GenerateStream", mock.Anything, mock.MatchedBy(func(req *generator.GenerateRequest) bool {
			// Prior turns are forwarded as generation context.
			return len(req.History) == 1 && req.History[0].Content == "earlier"
		}), mock.Anything).
			Run(func(args mock.Arguments) {
				ch := args.Get(2).(chan<- generator.Fragment)
				ch <- generator.Fragment{Content: "hi", Done: true}
				close(ch)
			}).
			Return(nil).Once()

		_, err := submit(t, svc, &service.SubmitRequest{SessionID: "s1", Content: "and now?"})
		require.NoError(t, err)
		// No UpdateSessionTitle expectation: a call would fail the mock.
	})

	t.Run("unknown session fails without creating messages", func(t *testing.T) {
		svc, mocks := setupConversationService(t)
		mocks.repo.On("GetSession", ctx, "missing").Return(nil, repository.ErrNotFound).Once()

		events, err := submit(t, svc, &service.SubmitRequest{SessionID: "missing", Content: "hello"})
		require.NoError(t, err)

		require.NotEmpty(t, events)
		assert.Equal(t, model.EventFailed, events[len(events)-1].Type)
		assert.Empty(t, *mocks.saved)
	})

	t.Run("failure before any fragment becomes an assistant message", func(t *testing.T) {
		svc, mocks := setupConversationService(t)
		mocks.expectNewSession(ctx)
		mocks.expectSaves(ctx)

		mocks.gen.On("GenerateStream", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				close(args.Get(2).(chan<- generator.Fragment))
			}).
			Return(errors.New("backend unreachable")).Once()

		_, err := submit(t, svc, &service.SubmitRequest{Content: "hello"})
		require.NoError(t, err)

		require.Len(t, *mocks.saved, 2)
		assert.Equal(t, "Sorry, I encountered an error: backend unreachable", (*mocks.saved)[1].Content)
	})

	t.Run("mid-stream failure keeps the partial text", func(t *testing.T) {
		svc, mocks := setupConversationService(t)
		mocks.expectNewSession(ctx)
		mocks.expectSaves(ctx)

		mocks.gen.On("GenerateStream", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				ch := args.Get(2).(chan<- generator.Fragment)
				ch <- generator.Fragment{Content: "partial ans"}
				ch <- generator.Fragment{Error: "stream cut"}
				close(ch)
			}).
			Return(nil).Once()

		events, err := submit(t, svc, &service.SubmitRequest{Content: "hello"})
		require.NoError(t, err)

		require.Len(t, *mocks.saved, 2)
		assert.Equal(t, "partial ans", (*mocks.saved)[1].Content)
		assert.Contains(t, eventTypes(events), model.EventFailed)
		assert.NotContains(t, eventTypes(events), model.EventDone)
	})
}

func TestConversationService_Submit_Reminder(t *testing.T) {
	ctx := context.Background()

	t.Run("confirmation is appended after the user message", func(t *testing.T) {
		svc, mocks := setupConversationService(t)
		mocks.expectNewSession(ctx)
		mocks.expectSaves(ctx)

		mocks.reminders.On("Create", ctx, "call mom", mock.MatchedBy(func(due *time.Time) bool {
			return due != nil
		})).Return(`✅ Reminder set: "call mom" for Mar 10, 2025 at 5:00 PM`, nil).Once()

		events, err := submit(t, svc, &service.SubmitRequest{Content: "remind me to call mom at 5pm"})
		require.NoError(t, err)

		require.Len(t, *mocks.saved, 2)
		assert.Equal(t, model.RoleUser, (*mocks.saved)[0].Role)
		assert.Contains(t, (*mocks.saved)[1].Content, "✅ Reminder set")
		assert.Equal(t, model.EventDone, events[len(events)-1].Type)
	})

	t.Run("permission refusal is surfaced verbatim", func(t *testing.T) {
		svc, mocks := setupConversationService(t)
		mocks.expectNewSession(ctx)
		mocks.expectSaves(ctx)

		mocks.reminders.On("Create", ctx, mock.Anything, mock.Anything).
			Return("", fmt.Errorf("%w: reminder access is disabled", app_errors.ErrPermission)).Once()

		_, err := submit(t, svc, &service.SubmitRequest{Content: "remind me to stretch"})
		require.NoError(t, err)

		require.Len(t, *mocks.saved, 2)
		assert.Contains(t, (*mocks.saved)[1].Content, "❌")
		assert.Contains(t, (*mocks.saved)[1].Content, "permission denied")
	})

	t.Run("reminder keyword wins over alarm keyword", func(t *testing.T) {
		svc, mocks := setupConversationService(t)
		mocks.expectNewSession(ctx)
		mocks.expectSaves(ctx)

		mocks.reminders.On("Create", ctx, mock.Anything, mock.Anything).
			Return(`✅ Reminder created: "set an alarm"`, nil).Once()

		_, err := submit(t, svc, &service.SubmitRequest{Content: "remind me to set an alarm"})
		require.NoError(t, err)
	})
}

func TestConversationService_Submit_Alarm(t *testing.T) {
	ctx := context.Background()

	t.Run("unparseable time is explained, no collaborator call", func(t *testing.T) {
		svc, mocks := setupConversationService(t)
		mocks.expectNewSession(ctx)
		mocks.expectSaves(ctx)

		_, err := submit(t, svc, &service.SubmitRequest{Content: "set an alarm for sunrise"})
		require.NoError(t, err)

		require.Len(t, *mocks.saved, 2)
		assert.Contains(t, (*mocks.saved)[1].Content, "I couldn't understand the time")
	})

	t.Run("parsed time still reports the stub", func(t *testing.T) {
		svc, mocks := setupConversationService(t)
		mocks.expectNewSession(ctx)
		mocks.expectSaves(ctx)

		_, err := submit(t, svc, &service.SubmitRequest{Content: "wake me in 30 minutes"})
		require.NoError(t, err)

		require.Len(t, *mocks.saved, 2)
		assert.Contains(t, (*mocks.saved)[1].Content, "Alarm functionality is not available")
		assert.Contains(t, (*mocks.saved)[1].Content, "The requested time was:")
	})
}

func TestConversationService_Submit_Image(t *testing.T) {
	ctx := context.Background()

	t.Run("result is attached, user message keeps the full text", func(t *testing.T) {
		svc, mocks := setupConversationService(t)
		mocks.expectNewSession(ctx)
		mocks.expectSaves(ctx)

		imageData := []byte{0x89, 'P', 'N', 'G'}
		mocks.images.On("Generate", ctx, "a red fox").Return(imageData, nil).Once()

		_, err := submit(t, svc, &service.SubmitRequest{Content: "generate image of a red fox"})
		require.NoError(t, err)

		require.Len(t, *mocks.saved, 2)
		// The displayed user message is the original text, not the prompt.
		assert.Equal(t, "generate image of a red fox", (*mocks.saved)[0].Content)
		assert.Equal(t, imageData, (*mocks.saved)[1].Attachment)
	})

	t.Run("cancellation appends nothing", func(t *testing.T) {
		svc, mocks := setupConversationService(t)
		mocks.expectNewSession(ctx)
		mocks.expectSaves(ctx)

		mocks.images.On("Generate", ctx, mock.Anything).Return(nil, app_errors.ErrCanceled).Once()

		events, err := submit(t, svc, &service.SubmitRequest{Content: "/image a neon city"})
		require.NoError(t, err)

		// Only the user message was persisted.
		require.Len(t, *mocks.saved, 1)
		assert.Equal(t, model.RoleUser, (*mocks.saved)[0].Role)
		assert.Equal(t, model.EventDone, events[len(events)-1].Type)
	})

	t.Run("other failures become an error message", func(t *testing.T) {
		svc, mocks := setupConversationService(t)
		mocks.expectNewSession(ctx)
		mocks.expectSaves(ctx)

		mocks.images.On("Generate", ctx, mock.Anything).Return(nil, errors.New("gpu on fire")).Once()

		_, err := submit(t, svc, &service.SubmitRequest{Content: "/image a neon city"})
		require.NoError(t, err)

		require.Len(t, *mocks.saved, 2)
		assert.Contains(t, (*mocks.saved)[1].Content, "gpu on fire")
	})
}
