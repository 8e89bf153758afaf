package model

import "time"

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Session stores metadata about a conversation.
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message stores a single turn in a session. Content is append-only while a
// response is being streamed into it; once the stream finishes it is frozen.
type Message struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	Role       Role      `json:"role"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	Attachment []byte    `json:"attachment,omitempty"` // e.g. a generated image, immutable once set
}

// FullSession includes the session metadata and all its messages, ordered by
// creation time ascending.
type FullSession struct {
	Session
	Messages []Message `json:"messages"`
}

// Reminder is a task the user asked to be reminded about.
type Reminder struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	DueAt     *time.Time `json:"due_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	FiredAt   *time.Time `json:"fired_at,omitempty"`
}
