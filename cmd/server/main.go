// Package main implements the entry point for the task API server,
// a CRUD REST service for managing tasks backed by PostgreSQL.
package main

import (
	"fmt"
	"log"
	"log/slog"

	"github.com/taskforge/task-api/internal/api"
	"github.com/taskforge/task-api/internal/config"
	"github.com/taskforge/task-api/internal/platform/logger"
	"github.com/taskforge/task-api/internal/platform/postgres"
	"github.com/taskforge/task-api/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// run loads configuration, wires the application's dependencies together and
// starts the HTTP server. All construction happens here so every component
// receives its collaborators explicitly.
func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Set up structured logging using the configured log level
	appLogger, err := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel})
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	// Establish the database connection
	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("failed to close database connection", "error", err)
		}
	}()

	// Apply pending migrations
	if err := runMigrations(db, appLogger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Wire stores, services and handlers
	taskStore := postgres.NewPostgresTaskStore(db, appLogger)

	taskService, err := service.NewTaskService(taskStore, appLogger)
	if err != nil {
		return fmt.Errorf("failed to create task service: %w", err)
	}

	taskHandler := api.NewTaskHandler(taskService, appLogger)

	router := setupRouter(taskHandler, appLogger)

	return startHTTPServer(cfg, appLogger, router)
}
