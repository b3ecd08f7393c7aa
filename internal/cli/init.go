// Package cli provides common bootstrap utilities shared by cmd/spendly
// and cmd/spendly-worker.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/AnirbanSinha27/Spendly/internal/config"
	applog "github.com/AnirbanSinha27/Spendly/internal/log"
	"github.com/AnirbanSinha27/Spendly/internal/storage"
)

// SetupLogger initializes structured logging with default settings.
// Returns the configured logger and sets it as the default logger.
func SetupLogger() *applog.Logger {
	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// OpenSQLite opens the shared SQLite repository at the given path.
// Returns the repository or exits the process on failure.
func OpenSQLite(logger *applog.Logger, dbPath string) *storage.SQLiteRepository {
	repo, err := storage.Open(dbPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return repo
}
