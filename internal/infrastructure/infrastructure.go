// Package infrastructure assembles the shared dependencies domain systems
// require: logging, metrics, database, and blob storage.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/longevity/internal/config"
	"github.com/JaimeStill/longevity/pkg/database"
	"github.com/JaimeStill/longevity/pkg/lifecycle"
	"github.com/JaimeStill/longevity/pkg/metrics"
	"github.com/JaimeStill/longevity/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Database  database.System
	Storage   storage.System

	closeLog func() error
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()

	logger, closeLog, err := cfg.Logging.NewLogger()
	if err != nil {
		return nil, fmt.Errorf("logger init failed: %w", err)
	}

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Metrics:   metrics.New(cfg.Metrics.Namespace),
		Database:  db,
		Storage:   store,
		closeLog:  closeLog,
	}, nil
}

// Start registers database and storage hooks with the lifecycle coordinator.
// The database gates readiness.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}

	i.Lifecycle.Require(i.Database)

	i.Lifecycle.OnShutdown(func() {
		<-i.Lifecycle.Context().Done()
		if err := i.closeLog(); err != nil {
			i.Logger.Warn("log file close failed", "error", err)
		}
	})
	return nil
}
