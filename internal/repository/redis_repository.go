package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GowthamOleti/itelo/internal/model"
)

// redisRepository is the alternative storage backend for deployments that
// already run Redis. Sessions and reminders are JSON values indexed by sorted
// sets; messages live in a per-session list, which preserves append order.
type redisRepository struct {
	rdb *redis.Client
}

func NewRedisRepository(rdb *redis.Client) Repository {
	return &redisRepository{rdb: rdb}
}

func (r *redisRepository) sessionKey(sessionID string) string  { return fmt.Sprintf("session:%s", sessionID) }
func (r *redisRepository) messagesKey(sessionID string) string { return fmt.Sprintf("session:%s:messages", sessionID) }
func (r *redisRepository) reminderKey(reminderID string) string {
	return fmt.Sprintf("reminder:%s", reminderID)
}

const (
	sessionsIndexKey  = "sessions"       // zset: member=sessionID, score=-updatedAt
	remindersIndexKey = "reminders"      // zset: member=reminderID, score=-createdAt
	remindersDueKey   = "reminders:due"  // zset: member=reminderID, score=dueAt; removed on fire
)

func (r *redisRepository) setSession(ctx context.Context, session *model.Session) error {
	val, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}
	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, r.sessionKey(session.ID), val, 0)
	pipe.ZAdd(ctx, sessionsIndexKey, redis.Z{Score: float64(-session.UpdatedAt.UnixNano()), Member: session.ID})
	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepository) CreateSession(ctx context.Context, session *model.Session) error {
	return r.setSession(ctx, session)
}

func (r *redisRepository) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	val, err := r.rdb.Get(ctx, r.sessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var session model.Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *redisRepository) GetSessions(ctx context.Context) ([]*model.Session, error) {
	sessionIDs, err := r.rdb.ZRange(ctx, sessionsIndexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	sessions := make([]*model.Session, 0, len(sessionIDs))
	for _, id := range sessionIDs {
		session, err := r.GetSession(ctx, id)
		if err != nil {
			// Index entries may outlive deleted sessions briefly; skip them.
			continue
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func (r *redisRepository) UpdateSessionTitle(ctx context.Context, sessionID, newTitle string) error {
	session, err := r.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	session.Title = newTitle
	session.UpdatedAt = time.Now().UTC()
	return r.setSession(ctx, session)
}

func (r *redisRepository) DeleteSession(ctx context.Context, sessionID string) error {
	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, r.sessionKey(sessionID))
	pipe.Del(ctx, r.messagesKey(sessionID))
	pipe.ZRem(ctx, sessionsIndexKey, sessionID)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisRepository) AddMessage(ctx context.Context, message *model.Message) error {
	val, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("could not marshal message: %w", err)
	}

	session, err := r.GetSession(ctx, message.SessionID)
	if err != nil {
		return err
	}
	session.UpdatedAt = time.Now().UTC()
	sessionVal, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	pipe := r.rdb.TxPipeline()
	pipe.RPush(ctx, r.messagesKey(message.SessionID), val)
	pipe.Set(ctx, r.sessionKey(message.SessionID), sessionVal, 0)
	pipe.ZAdd(ctx, sessionsIndexKey, redis.Z{Score: float64(-session.UpdatedAt.UnixNano()), Member: session.ID})
	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepository) GetMessagesBySessionID(ctx context.Context, sessionID string) ([]model.Message, error) {
	vals, err := r.rdb.LRange(ctx, r.messagesKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	messages := make([]model.Message, 0, len(vals))
	for _, val := range vals {
		var msg model.Message
		if err := json.Unmarshal([]byte(val), &msg); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (r *redisRepository) CreateReminder(ctx context.Context, reminder *model.Reminder) error {
	val, err := json.Marshal(reminder)
	if err != nil {
		return fmt.Errorf("could not marshal reminder: %w", err)
	}
	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, r.reminderKey(reminder.ID), val, 0)
	pipe.ZAdd(ctx, remindersIndexKey, redis.Z{Score: float64(-reminder.CreatedAt.UnixNano()), Member: reminder.ID})
	if reminder.DueAt != nil {
		pipe.ZAdd(ctx, remindersDueKey, redis.Z{Score: float64(reminder.DueAt.Unix()), Member: reminder.ID})
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepository) getReminder(ctx context.Context, reminderID string) (*model.Reminder, error) {
	val, err := r.rdb.Get(ctx, r.reminderKey(reminderID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var rem model.Reminder
	if err := json.Unmarshal([]byte(val), &rem); err != nil {
		return nil, err
	}
	return &rem, nil
}

func (r *redisRepository) GetReminders(ctx context.Context) ([]*model.Reminder, error) {
	ids, err := r.rdb.ZRange(ctx, remindersIndexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	reminders := make([]*model.Reminder, 0, len(ids))
	for _, id := range ids {
		rem, err := r.getReminder(ctx, id)
		if err != nil {
			continue
		}
		reminders = append(reminders, rem)
	}
	return reminders, nil
}

func (r *redisRepository) GetDueReminders(ctx context.Context, now time.Time) ([]*model.Reminder, error) {
	ids, err := r.rdb.ZRangeByScore(ctx, remindersDueKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%d", now.Unix()),
	}).Result()
	if err != nil {
		return nil, err
	}
	reminders := make([]*model.Reminder, 0, len(ids))
	for _, id := range ids {
		rem, err := r.getReminder(ctx, id)
		if err != nil {
			continue
		}
		reminders = append(reminders, rem)
	}
	return reminders, nil
}

func (r *redisRepository) MarkReminderFired(ctx context.Context, reminderID string, firedAt time.Time) error {
	rem, err := r.getReminder(ctx, reminderID)
	if err != nil {
		return err
	}
	rem.FiredAt = &firedAt
	val, err := json.Marshal(rem)
	if err != nil {
		return fmt.Errorf("could not marshal reminder: %w", err)
	}
	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, r.reminderKey(reminderID), val, 0)
	pipe.ZRem(ctx, remindersDueKey, reminderID)
	_, err = pipe.Exec(ctx)
	return err
}
