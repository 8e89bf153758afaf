package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/GowthamOleti/itelo/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateSession(ctx context.Context, session *model.Session) error {
	query := "INSERT INTO sessions (id, title, created_at, updated_at) VALUES (?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query, session.ID, session.Title, session.CreatedAt, session.UpdatedAt)
	return err
}

func (r *sqliteRepository) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	query := "SELECT id, title, created_at, updated_at FROM sessions WHERE id = ?"
	row := r.db.QueryRowContext(ctx, query, sessionID)

	var session model.Session
	err := row.Scan(&session.ID, &session.Title, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *sqliteRepository) GetSessions(ctx context.Context) ([]*model.Session, error) {
	query := "SELECT id, title, created_at, updated_at FROM sessions ORDER BY updated_at DESC"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*model.Session
	for rows.Next() {
		var session model.Session
		if err := rows.Scan(&session.ID, &session.Title, &session.CreatedAt, &session.UpdatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, &session)
	}
	return sessions, rows.Err()
}

func (r *sqliteRepository) UpdateSessionTitle(ctx context.Context, sessionID, newTitle string) error {
	query := "UPDATE sessions SET title = ?, updated_at = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query, newTitle, time.Now().UTC(), sessionID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqliteRepository) DeleteSession(ctx context.Context, sessionID string) error {
	// Messages cascade via the schema's foreign key.
	query := "DELETE FROM sessions WHERE id = ?"
	_, err := r.db.ExecContext(ctx, query, sessionID)
	return err
}

// AddMessage inserts the message and bumps the session's updated_at inside a
// single transaction, so a session can never point at a newer message than
// its own timestamp claims.
func (r *sqliteRepository) AddMessage(ctx context.Context, message *model.Message) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertQuery := `
		INSERT INTO messages (id, session_id, role, content, created_at, attachment)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, insertQuery,
		message.ID,
		message.SessionID,
		string(message.Role),
		message.Content,
		message.CreatedAt,
		message.Attachment,
	)
	if err != nil {
		return fmt.Errorf("could not insert message: %w", err)
	}

	updateQuery := "UPDATE sessions SET updated_at = ? WHERE id = ?"
	if _, err := tx.ExecContext(ctx, updateQuery, time.Now().UTC(), message.SessionID); err != nil {
		return fmt.Errorf("could not update session timestamp: %w", err)
	}

	return tx.Commit()
}

func (r *sqliteRepository) GetMessagesBySessionID(ctx context.Context, sessionID string) ([]model.Message, error) {
	query := `
		SELECT id, session_id, role, content, created_at, attachment
		FROM messages
		WHERE session_id = ?
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var msg model.Message
		var role string
		if err := rows.Scan(&msg.ID, &msg.SessionID, &role, &msg.Content, &msg.CreatedAt, &msg.Attachment); err != nil {
			return nil, err
		}
		msg.Role = model.Role(role)
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *sqliteRepository) CreateReminder(ctx context.Context, reminder *model.Reminder) error {
	query := "INSERT INTO reminders (id, title, due_at, created_at, fired_at) VALUES (?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query, reminder.ID, reminder.Title, reminder.DueAt, reminder.CreatedAt, reminder.FiredAt)
	return err
}

func (r *sqliteRepository) GetReminders(ctx context.Context) ([]*model.Reminder, error) {
	query := "SELECT id, title, due_at, created_at, fired_at FROM reminders ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReminders(rows)
}

func (r *sqliteRepository) GetDueReminders(ctx context.Context, now time.Time) ([]*model.Reminder, error) {
	query := `
		SELECT id, title, due_at, created_at, fired_at
		FROM reminders
		WHERE fired_at IS NULL AND due_at IS NOT NULL AND due_at <= ?
		ORDER BY due_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReminders(rows)
}

func (r *sqliteRepository) MarkReminderFired(ctx context.Context, reminderID string, firedAt time.Time) error {
	query := "UPDATE reminders SET fired_at = ? WHERE id = ?"
	_, err := r.db.ExecContext(ctx, query, firedAt, reminderID)
	return err
}

func scanReminders(rows *sql.Rows) ([]*model.Reminder, error) {
	var reminders []*model.Reminder
	for rows.Next() {
		var rem model.Reminder
		var dueAt, firedAt sql.NullTime
		if err := rows.Scan(&rem.ID, &rem.Title, &dueAt, &rem.CreatedAt, &firedAt); err != nil {
			return nil, err
		}
		if dueAt.Valid {
			t := dueAt.Time
			rem.DueAt = &t
		}
		if firedAt.Valid {
			t := firedAt.Time
			rem.FiredAt = &t
		}
		reminders = append(reminders, &rem)
	}
	return reminders, rows.Err()
}
