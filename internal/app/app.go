// Package app wires the application together: configuration, storage,
// generation backends, services, the HTTP server and the reminder scheduler.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/GowthamOleti/itelo/internal/api"
	"github.com/GowthamOleti/itelo/internal/config"
	"github.com/GowthamOleti/itelo/internal/database"
	"github.com/GowthamOleti/itelo/internal/generator"
	"github.com/GowthamOleti/itelo/internal/imagegen"
	"github.com/GowthamOleti/itelo/internal/reminder"
	"github.com/GowthamOleti/itelo/internal/repository"
	"github.com/GowthamOleti/itelo/internal/service"
)

// App holds the assembled application: storage, services, the scheduler and
// the HTTP server, ready to be started.
type App struct {
	Config    *config.Config
	Repo      repository.Repository
	Settings  service.SettingsStore
	Scheduler *reminder.Scheduler
	Server    *http.Server

	cleanup func()
}

// NewApp builds the full dependency graph from the configuration. It connects
// to storage, seeds the settings and wires services into the router, but does
// not start listening.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	repo, settingsStore, cleanup, err := setupStorage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not initialize %s storage: %w", cfg.StorageBackend, err)
	}

	appSettings, err := settingsStore.InitAndGet(ctx, &service.Settings{
		SystemPrompt: cfg.SystemPrompt,
		Model:        cfg.OllamaModel,
	})
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("could not initialize application settings: %w", err)
	}
	slog.Info("Loaded application settings", "model", appSettings.Model)

	textGen, err := generator.New(cfg)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("could not create text generator: %w", err)
	}
	imageGen, err := imagegen.New(cfg)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("could not create image generator: %w", err)
	}

	reminderService := reminder.NewService(repo, cfg.RemindersEnabled)
	scheduler := reminder.NewScheduler(repo, nil)

	conversationService := service.NewConversationService(repo, textGen, reminderService, imageGen, settingsStore)
	sessionService := service.NewSessionService(repo)

	handler := api.NewHandler(conversationService, sessionService, settingsStore, reminderService)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for the streaming endpoint
		IdleTimeout:       120 * time.Second,
	}

	return &App{
		Config:    cfg,
		Repo:      repo,
		Settings:  settingsStore,
		Scheduler: scheduler,
		Server:    server,
		cleanup:   cleanup,
	}, nil
}

// Close releases the storage connections.
func (a *App) Close() {
	if a.cleanup != nil {
		a.cleanup()
	}
}

func Run() int {
	cfg, err := config.Load()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)
	logConfigSource()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, cfg)
	if err != nil {
		slog.Error("Failed to build application", "error", err)
		return 1
	}
	defer app.Close()

	if cfg.RemindersEnabled {
		if err := app.Scheduler.Start(); err != nil {
			slog.Error("Failed to start reminder scheduler", "error", err)
			return 1
		}
		defer app.Scheduler.Stop()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Starting server", "port", cfg.AppPort)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.Server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server failed", "error", err)
		return 1
	}
	return 0
}

// setupStorage builds the repository and settings store for the configured
// backend. The returned cleanup closes whatever connections were opened.
func setupStorage(ctx context.Context, cfg *config.Config) (repository.Repository, service.SettingsStore, func(), error) {
	switch cfg.StorageBackend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, nil, nil, fmt.Errorf("could not connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		slog.Info("Successfully connected to Redis.", "addr", cfg.RedisAddr)
		cleanup := func() {
			if err := rdb.Close(); err != nil {
				slog.Error("Failed to close redis connection", "error", err)
			}
		}
		// Redis has no settings table; settings live in memory, seeded from config.
		return repository.NewRedisRepository(rdb), service.NewMemorySettingsService(&service.Settings{}), cleanup, nil

	case "sqlite":
		db, err := database.InitDB(cfg.DatabasePath)
		if err != nil {
			return nil, nil, nil, err
		}
		slog.Info("Successfully connected to SQLite database.", "path", cfg.DatabasePath)
		return repository.NewSQLiteRepository(db), service.NewSettingsService(db), sqliteCleanup(db), nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func sqliteCleanup(db *sql.DB) func() {
	return func() {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
