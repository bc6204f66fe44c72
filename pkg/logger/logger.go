// Package logger provides JSON structured logging using zerolog.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls log output.
type Config struct {
	Level  string
	Debug  bool
	Output io.Writer
}

// DefaultConfig reads log settings from the environment.
func DefaultConfig() Config {
	return Config{
		Level: getEnvOrDefault("LOG_LEVEL", "info"),
		Debug: os.Getenv("DEBUG") == "true" || os.Getenv("DEBUG") == "1",
	}
}

// New builds a logger from config. Errors in the level string fall
// back to info rather than failing the run.
func New(config Config) zerolog.Logger {
	output := config.Output
	if output == nil {
		output = os.Stdout
	}

	level := zerolog.InfoLevel
	if config.Debug {
		level = zerolog.DebugLevel
	} else if config.Level != "" {
		if parsed, err := zerolog.ParseLevel(config.Level); err == nil {
			level = parsed
		}
	}

	zerolog.TimeFieldFormat = time.RFC3339

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
