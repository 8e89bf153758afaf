package repository

import (
	"context"
	"time"

	"github.com/GowthamOleti/itelo/internal/model"
)

// Repository defines the interface for data storage operations.
// This interface makes it easy to switch database implementations; the
// application ships a SQLite and a Redis implementation, selected by config.
type Repository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)
	GetSessions(ctx context.Context) ([]*model.Session, error)
	UpdateSessionTitle(ctx context.Context, sessionID, newTitle string) error
	DeleteSession(ctx context.Context, sessionID string) error

	// AddMessage appends a message to its session; deleting the session
	// cascades to its messages.
	AddMessage(ctx context.Context, message *model.Message) error
	GetMessagesBySessionID(ctx context.Context, sessionID string) ([]model.Message, error)

	CreateReminder(ctx context.Context, reminder *model.Reminder) error
	GetReminders(ctx context.Context) ([]*model.Reminder, error)
	// GetDueReminders returns unfired reminders whose due time is at or
	// before now, ordered by due time ascending.
	GetDueReminders(ctx context.Context, now time.Time) ([]*model.Reminder, error)
	MarkReminderFired(ctx context.Context, reminderID string, firedAt time.Time) error
}
