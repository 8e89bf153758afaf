package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/GowthamOleti/itelo/internal/model"
	"github.com/GowthamOleti/itelo/internal/repository"
)

// FireHandler is the callback invoked for each reminder that has come due.
type FireHandler func(rem *model.Reminder)

// Scheduler sweeps the reminder store once a minute and fires due reminders
// through a handler callback. The handler is the notification transport's
// hook; by default the app just logs.
type Scheduler struct {
	repo    repository.Repository
	handler FireHandler
	cron    *cron.Cron
}

func NewScheduler(repo repository.Repository, handler FireHandler) *Scheduler {
	if handler == nil {
		handler = func(rem *model.Reminder) {
			slog.Info("reminder due", "id", rem.ID, "title", rem.Title)
		}
	}
	return &Scheduler{repo: repo, handler: handler, cron: cron.New()}
}

// Start registers the minutely sweep and starts the cron ticker.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("* * * * *", s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop stops the cron ticker.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// SweepNow runs one sweep synchronously, outside the cron cadence.
func (s *Scheduler) SweepNow() {
	s.sweep()
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	due, err := s.repo.GetDueReminders(ctx, time.Now().UTC())
	if err != nil {
		slog.Error("reminder sweep failed", "error", err)
		return
	}

	for _, rem := range due {
		s.handler(rem)
		if err := s.repo.MarkReminderFired(ctx, rem.ID, time.Now().UTC()); err != nil {
			slog.Error("could not mark reminder fired", "id", rem.ID, "error", err)
		}
	}
}
