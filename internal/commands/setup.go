package commands

import (
	"io"
	"os"
	"path/filepath"

	"github.com/fintrack/backend/internal/config"
	"github.com/fintrack/backend/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// loadConfig loads and validates the configuration.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// setupLogging configures gin and the global logger.
func setupLogging(cfg config.Config, out io.Writer) {
	gin.SetMode(cfg.GinMode)

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := out
	if (cfg.LogFormat == "" && gin.IsDebugging()) || cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: out}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()
}

// connect opens the configured database.
func connect(cfg config.Config) error {
	if cfg.UsePostgres() {
		log.Info().Str("host", cfg.DBHost).Str("database", cfg.DBName).Msg("using PostgreSQL")
		return models.ConnectPostgres(cfg.PostgresDSN())
	}

	// Create data directory
	err := os.MkdirAll(filepath.Dir(cfg.DBPath), os.ModePerm)
	if err != nil {
		return err
	}

	log.Info().Str("path", cfg.DBPath).Msg("using SQLite")
	return models.Connect(cfg.DBPath)
}

// disconnect closes the database connection.
func disconnect() {
	if models.DB == nil {
		return
	}

	sqlDB, err := models.DB.DB()
	if err != nil {
		log.Error().Err(err).Msg("getting database connection")
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Error().Err(err).Msg("closing database connection")
	}
}
