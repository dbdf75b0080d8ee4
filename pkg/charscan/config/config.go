// Package config loads environment-backed defaults for the CLI.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds run defaults. CLI flags override these values.
type Config struct {
	// OutputDir is where artifacts are written; empty means next to the
	// input workbook.
	OutputDir string
	// LogLevel is the zap level name (debug, info, warn, error).
	LogLevel string
}

// Load reads a .env file if present, then environment variables, applying
// defaults for anything unset.
func Load() Config {
	// Missing .env is not an error; real env vars still apply.
	_ = godotenv.Load()

	return Config{
		OutputDir: os.Getenv("CHARSCAN_OUTPUT_DIR"),
		LogLevel:  getEnv("CHARSCAN_LOG_LEVEL", "warn"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
