package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
)

// Settings holds the dynamic application settings.
type Settings struct {
	SystemPrompt string `json:"system_prompt"`
	Model        string `json:"model"`
}

// SettingsStore is the contract for reading and writing settings. The SQLite
// deployment persists them in the settings table; the Redis deployment keeps
// them in memory, seeded from the configuration.
type SettingsStore interface {
	InitAndGet(ctx context.Context, defaults *Settings) (*Settings, error)
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, settings *Settings) error
}

// SettingsService stores settings as rows in the key/value settings table.
type SettingsService struct {
	db *sql.DB
}

func NewSettingsService(db *sql.DB) *SettingsService {
	return &SettingsService{db: db}
}

// InitAndGet returns the stored settings, seeding any missing key from the
// given defaults on first run.
func (s *SettingsService) InitAndGet(ctx context.Context, defaults *Settings) (*Settings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	changed := false
	if settings.SystemPrompt == "" {
		settings.SystemPrompt = defaults.SystemPrompt
		changed = true
	}
	if settings.Model == "" {
		settings.Model = defaults.Model
		changed = true
	}
	if changed {
		slog.Info("seeding application settings")
		if err := s.Save(ctx, settings); err != nil {
			return nil, fmt.Errorf("failed to save initial settings: %w", err)
		}
	}
	return settings, nil
}

func (s *SettingsService) Get(ctx context.Context) (*Settings, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("could not query settings: %w", err)
	}
	defer rows.Close()

	settings := &Settings{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		switch key {
		case "system_prompt":
			settings.SystemPrompt = value
		case "model":
			settings.Model = value
		}
	}
	return settings, rows.Err()
}

func (s *SettingsService) Save(ctx context.Context, settings *Settings) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value")
	if err != nil {
		return fmt.Errorf("could not prepare settings statement: %w", err)
	}
	defer stmt.Close()

	for _, kv := range [][2]string{
		{"system_prompt", settings.SystemPrompt},
		{"model", settings.Model},
	} {
		if _, err := stmt.ExecContext(ctx, kv[0], kv[1]); err != nil {
			return fmt.Errorf("could not save setting %s: %w", kv[0], err)
		}
	}
	return tx.Commit()
}

// MemorySettingsService keeps settings in process memory. It backs the Redis
// deployment, where no relational settings table exists.
type MemorySettingsService struct {
	mu       sync.RWMutex
	settings Settings
}

func NewMemorySettingsService(initial *Settings) *MemorySettingsService {
	return &MemorySettingsService{settings: *initial}
}

func (s *MemorySettingsService) InitAndGet(ctx context.Context, defaults *Settings) (*Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings.SystemPrompt == "" {
		s.settings.SystemPrompt = defaults.SystemPrompt
	}
	if s.settings.Model == "" {
		s.settings.Model = defaults.Model
	}
	copied := s.settings
	return &copied, nil
}

func (s *MemorySettingsService) Get(ctx context.Context) (*Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copied := s.settings
	return &copied, nil
}

func (s *MemorySettingsService) Save(ctx context.Context, settings *Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = *settings
	return nil
}
