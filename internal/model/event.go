package model

// EventType enumerates the application-level events published while a
// submission is being handled. Clients receive these over the SSE stream.
type EventType string

const (
	// EventThinking turns the "assistant is composing" indicator on. It is
	// implicitly cleared by the next started, message or failed event.
	EventThinking EventType = "thinking"

	// EventStarted fires exactly once, on the very first fragment of a
	// generated response. UI layers use it for a one-time feedback cue.
	EventStarted EventType = "started"

	// EventDelta carries a verbatim text fragment that has already been
	// appended to the assistant message.
	EventDelta EventType = "delta"

	// EventWord fires once per word start within the streamed text.
	EventWord EventType = "word"

	// EventMessage carries a complete assistant message that was appended in
	// one piece (reminder confirmations, alarm replies, image results).
	EventMessage EventType = "message"

	// EventDone signals that handling of the submission has finished.
	EventDone EventType = "done"

	// EventFailed signals a terminal failure of the in-flight stream. Any
	// text appended before the failure is preserved.
	EventFailed EventType = "failed"
)

// StreamEvent is a single chunk in the submission event stream.
type StreamEvent struct {
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
	MessageID string    `json:"message_id,omitempty"`
	Content   string    `json:"content,omitempty"`
	Error     string    `json:"error,omitempty"`
}
