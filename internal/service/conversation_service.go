package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GowthamOleti/itelo/internal/command"
	app_errors "github.com/GowthamOleti/itelo/internal/errors"
	"github.com/GowthamOleti/itelo/internal/generator"
	"github.com/GowthamOleti/itelo/internal/imagegen"
	"github.com/GowthamOleti/itelo/internal/model"
	"github.com/GowthamOleti/itelo/internal/reminder"
	"github.com/GowthamOleti/itelo/internal/repository"
	"github.com/GowthamOleti/itelo/internal/stream"
)

const (
	// defaultTitle is the placeholder a session carries until its first user
	// message derives a real one.
	defaultTitle = "New Chat"

	// derivedTitleLimit is the character budget for a title derived from the
	// first user message.
	derivedTitleLimit = 30

	alarmTimeFormat = "Jan 2, 2006 at 3:04 PM"
)

// ConversationService orchestrates a submission: classify the input, dispatch
// to the matching handler and keep the ordered message history. Collaborators
// are injected at construction; the service holds no global state.
type ConversationService struct {
	repo      repository.Repository
	generator generator.TextGenerator
	reminders reminder.Service
	images    imagegen.Generator
	settings  SettingsStore
}

// SubmitRequest is a new submission from the client. An empty SessionID means
// "create a session lazily".
type SubmitRequest struct {
	SessionID string `json:"session_id"`
	Content   string `json:"content" validate:"required"`
}

func NewConversationService(
	repo repository.Repository,
	gen generator.TextGenerator,
	reminders reminder.Service,
	images imagegen.Generator,
	settings SettingsStore,
) *ConversationService {
	return &ConversationService{
		repo:      repo,
		generator: gen,
		reminders: reminders,
		images:    images,
		settings:  settings,
	}
}

// Submit processes one submission end to end, publishing progress on events
// and closing it when handling finishes. Collaborator failures never escape:
// each becomes a visible assistant message or, for a dismissed image
// generation, is dropped. The only error returned is the rejection of
// whitespace-only input, which creates no session and no message.
//
// Overlapping Submit calls on one session are not guarded against; assistant
// messages from concurrent streams may interleave in history, though each
// streamed message has exactly one writer.
func (s *ConversationService) Submit(ctx context.Context, req *SubmitRequest, events chan<- model.StreamEvent) error {
	defer close(events)

	trimmed := strings.TrimSpace(req.Content)
	if trimmed == "" {
		return fmt.Errorf("%w: message content cannot be empty", app_errors.ErrValidation)
	}

	// Step 1: get or lazily create the session.
	isNewSession := req.SessionID == ""
	var session *model.Session
	var err error
	if isNewSession {
		now := time.Now().UTC()
		session = &model.Session{ID: uuid.NewString(), Title: defaultTitle, CreatedAt: now, UpdatedAt: now}
		if err := s.repo.CreateSession(ctx, session); err != nil {
			slog.Error("could not create session", "error", err)
			events <- model.StreamEvent{Type: model.EventFailed, Error: "Could not create session"}
			return nil
		}
	} else {
		session, err = s.repo.GetSession(ctx, req.SessionID)
		if err != nil {
			slog.Error("could not load session", "session_id", req.SessionID, "error", err)
			events <- model.StreamEvent{Type: model.EventFailed, Error: "Could not find session"}
			return nil
		}
	}

	// Message history is needed both for title derivation and as generation
	// context, so fetch it once before appending.
	history, err := s.repo.GetMessagesBySessionID(ctx, session.ID)
	if err != nil {
		slog.Error("could not load message history", "session_id", session.ID, "error", err)
	}

	// Step 2: the user message always lands first, with the full original
	// text (for image requests the stripped prompt is never displayed).
	userMessage := &model.Message{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		Role:      model.RoleUser,
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.AddMessage(ctx, userMessage); err != nil {
		slog.Error("could not save user message", "session_id", session.ID, "error", err)
	}
	events <- model.StreamEvent{Type: model.EventMessage, SessionID: session.ID, MessageID: userMessage.ID, Content: userMessage.Content}

	// The first user message derives the title, unless one was set explicitly.
	if len(history) == 0 && session.Title == defaultTitle {
		if err := s.repo.UpdateSessionTitle(ctx, session.ID, truncate(trimmed, derivedTitleLimit)); err != nil {
			slog.Error("could not derive session title", "session_id", session.ID, "error", err)
		}
	}

	// Steps 3-4: classify and dispatch.
	cmd := command.Classify(trimmed, time.Now())
	switch cmd.Kind {
	case command.KindReminder:
		s.handleReminder(ctx, session, cmd.Reminder, events)
	case command.KindAlarm:
		s.handleAlarm(ctx, session, cmd.Alarm, events)
	case command.KindImage:
		s.handleImage(ctx, session, cmd.Image, events)
	default:
		s.handleChat(ctx, session, trimmed, history, events)
	}
	return nil
}

func (s *ConversationService) handleReminder(ctx context.Context, session *model.Session, cmd *command.ReminderCommand, events chan<- model.StreamEvent) {
	confirmation, err := s.reminders.Create(ctx, cmd.Title, cmd.DueAt)
	if err != nil {
		s.appendAssistant(ctx, session.ID, "❌ "+err.Error(), nil, events)
	} else {
		s.appendAssistant(ctx, session.ID, confirmation, nil, events)
	}
	events <- model.StreamEvent{Type: model.EventDone, SessionID: session.ID}
}

// handleAlarm preserves the stub behavior of the source application: there is
// no alarm backend, so a successful parse is answered with an unavailability
// notice that echoes the understood time.
func (s *ConversationService) handleAlarm(ctx context.Context, session *model.Session, cmd *command.AlarmCommand, events chan<- model.StreamEvent) {
	if cmd.At == nil {
		s.appendAssistant(ctx, session.ID,
			"❌ I couldn't understand the time. Try: 'Set alarm for 7am' or 'Wake me in 30 minutes'", nil, events)
	} else {
		s.appendAssistant(ctx, session.ID,
			fmt.Sprintf("⏰ Alarm functionality is not available. The requested time was: %s", cmd.At.Format(alarmTimeFormat)), nil, events)
	}
	events <- model.StreamEvent{Type: model.EventDone, SessionID: session.ID}
}

func (s *ConversationService) handleImage(ctx context.Context, session *model.Session, cmd *command.ImageCommand, events chan<- model.StreamEvent) {
	data, err := s.images.Generate(ctx, cmd.Prompt)
	switch {
	case err == nil:
		s.appendAssistant(ctx, session.ID, fmt.Sprintf("🖼️ Here is your image for %q", cmd.Prompt), data, events)
	case errors.Is(err, app_errors.ErrCanceled):
		// Dismissed by the user: no message at all.
	default:
		s.appendAssistant(ctx, session.ID, "❌ "+err.Error(), nil, events)
	}
	events <- model.StreamEvent{Type: model.EventDone, SessionID: session.ID}
}

func (s *ConversationService) handleChat(ctx context.Context, session *model.Session, prompt string, history []model.Message, events chan<- model.StreamEvent) {
	events <- model.StreamEvent{Type: model.EventThinking, SessionID: session.ID}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		slog.Error("could not load settings", "error", err)
		events <- model.StreamEvent{Type: model.EventFailed, SessionID: session.ID, Error: "Could not load application settings"}
		return
	}

	genHistory := make([]generator.Message, 0, len(history))
	for _, msg := range history {
		genHistory = append(genHistory, generator.Message{Role: string(msg.Role), Content: msg.Content})
	}

	genReq := &generator.GenerateRequest{
		Model:   settings.Model,
		System:  settings.SystemPrompt,
		Prompt:  prompt,
		History: genHistory,
	}

	fragments := make(chan generator.Fragment)
	genErrCh := make(chan error, 1)
	go func() {
		genErrCh <- s.generator.GenerateStream(ctx, genReq, fragments)
	}()

	assistant := &model.Message{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		Role:      model.RoleAssistant,
		CreatedAt: time.Now().UTC(),
	}

	streamErr := stream.New().Consume(fragments, assistant, events)
	genErr := <-genErrCh

	// Failure before the first fragment: nothing was streamed, so report the
	// error as a regular assistant message instead of a broken stream.
	if assistant.Content == "" && streamErr == nil && genErr != nil {
		slog.Error("generation failed before streaming", "session_id", session.ID, "error", genErr)
		s.appendAssistant(ctx, session.ID, "Sorry, I encountered an error: "+genErr.Error(), nil, events)
		events <- model.StreamEvent{Type: model.EventDone, SessionID: session.ID}
		return
	}

	// The streamed text is persisted exactly once, whether the stream
	// completed or failed partway: partial responses are kept.
	if err := s.repo.AddMessage(ctx, assistant); err != nil {
		slog.Error("failed to save assistant message", "session_id", session.ID, "error", err)
		return
	}

	if streamErr != nil {
		slog.Warn("stream failed mid-generation", "session_id", session.ID, "message_id", assistant.ID, "error", streamErr)
		return
	}
	if genErr != nil {
		slog.Warn("generator reported an error after streaming", "session_id", session.ID, "error", genErr)
	}
	events <- model.StreamEvent{Type: model.EventDone, SessionID: session.ID, MessageID: assistant.ID}
}

func (s *ConversationService) appendAssistant(ctx context.Context, sessionID, text string, attachment []byte, events chan<- model.StreamEvent) {
	msg := &model.Message{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		Role:       model.RoleAssistant,
		Content:    text,
		CreatedAt:  time.Now().UTC(),
		Attachment: attachment,
	}
	if err := s.repo.AddMessage(ctx, msg); err != nil {
		slog.Error("failed to save assistant message", "session_id", sessionID, "error", err)
	}
	events <- model.StreamEvent{Type: model.EventMessage, SessionID: sessionID, MessageID: msg.ID, Content: text}
}

// truncate shortens a string to a specified number of runes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
