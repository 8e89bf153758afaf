package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GowthamOleti/itelo/internal/interfaces"
	"github.com/GowthamOleti/itelo/internal/model"
	"github.com/GowthamOleti/itelo/internal/reminder"
	"github.com/GowthamOleti/itelo/internal/service"
)

// Handler exposes the conversation API over HTTP. It depends only on the
// service interfaces, never on concrete implementations.
type Handler struct {
	conversations interfaces.ConversationService
	sessions      interfaces.SessionService
	settings      interfaces.SettingsService
	reminders     reminder.Service
}

func NewHandler(
	conversations interfaces.ConversationService,
	sessions interfaces.SessionService,
	settings interfaces.SettingsService,
	reminders reminder.Service,
) *Handler {
	return &Handler{
		conversations: conversations,
		sessions:      sessions,
		settings:      settings,
		reminders:     reminders,
	}
}

// GetSessions godoc
// @Summary      List sessions
// @Description  Returns all chat sessions, most recently updated first.
// @Tags         Sessions
// @Produce      json
// @Success      200  {array}   model.Session
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/sessions [get]
func (h *Handler) GetSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessions.List(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, sessions)
}

// CreateSession godoc
// @Summary      Create an empty session
// @Description  Creates a new session with the placeholder title. The first message derives the real title.
// @Tags         Sessions
// @Produce      json
// @Success      201  {object}  model.Session
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/sessions [post]
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Create(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, session)
}

// GetSession godoc
// @Summary      Get a session with its messages
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  model.FullSession
// @Failure      404        {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID} [get]
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	full, err := h.sessions.GetFull(r.Context(), sessionID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, full)
}

// UpdateSessionTitle godoc
// @Summary      Rename a session
// @Description  Sets an explicit title; explicit titles are never overwritten by derivation.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string              true  "Session ID"
// @Param        title      body      UpdateTitleRequest  true  "New title"
// @Success      200        {object}  StatusResponse
// @Failure      400        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/title [put]
func (h *Handler) UpdateSessionTitle(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req UpdateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	if err := h.sessions.UpdateTitle(r.Context(), sessionID, req.Title); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// DeleteSession godoc
// @Summary      Delete a session
// @Description  Removes a session; all its messages are deleted with it.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  StatusResponse
// @Failure      500        {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID} [delete]
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := h.sessions.Delete(r.Context(), sessionID); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// GetSettings godoc
// @Summary      Get application settings
// @Tags         Settings
// @Produce      json
// @Success      200  {object}  service.Settings
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/settings [get]
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, settings)
}

// UpdateSettings godoc
// @Summary      Update application settings
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        settings  body      UpdateSettingsRequest  true  "New settings"
// @Success      200       {object}  StatusResponse
// @Failure      400       {object}  ErrorResponse
// @Router       /v1/settings [post]
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	if err := h.settings.Save(r.Context(), &service.Settings{SystemPrompt: req.SystemPrompt, Model: req.Model}); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// GetReminders godoc
// @Summary      List reminders
// @Description  Returns every stored reminder, soonest due date first.
// @Tags         Reminders
// @Produce      json
// @Success      200  {array}   model.Reminder
// @Failure      403  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/reminders [get]
func (h *Handler) GetReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.reminders.List(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, reminders)
}

// HandleSubmit godoc
// @Summary      Submit a message
// @Description  Submits user input to a session (created lazily when session_id is empty) and streams progress events back over SSE.
// @Tags         Conversation
// @Accept       json
// @Produce      text/event-stream
// @Param        submission  body      service.SubmitRequest  true  "User input"
// @Success      200         {object}  model.StreamEvent "Stream of conversation events"
// @Failure      400         {object}  ErrorResponse "Sent as a stream error event"
// @Router       /v1/messages [post]
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	var req service.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Error decoding submission body", "error", err)
		sendStreamError(w, "Invalid request body")
		return
	}
	if err := validateRequest(&req); err != nil {
		sendStreamError(w, err.Error())
		return
	}

	events := make(chan model.StreamEvent)
	errCh := make(chan error, 1)
	go func() {
		errCh <- h.conversations.Submit(r.Context(), &req, events)
	}()

	for event := range events {
		if r.Context().Err() != nil {
			slog.Info("Client disconnected during submission stream.")
			h.drain(events)
			break
		}
		if err := writeStreamEvent(w, event); err != nil {
			slog.Warn("Could not write to submission stream, client likely disconnected.", "error", err)
			h.drain(events)
			break
		}
	}

	if err := <-errCh; err != nil {
		sendStreamError(w, err.Error())
		return
	}
	slog.Info("Finished streaming submission response.")
}

// drain consumes the remaining events after a disconnect so the submission
// can run to completion and persist its messages.
func (h *Handler) drain(events <-chan model.StreamEvent) {
	go func() {
		for range events {
		}
	}()
}
