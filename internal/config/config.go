// Package config loads application settings from the environment.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application settings.
type Config struct {
	// Addr is the HTTP listen address for serve.
	Addr string
	// Environment is "development" or "production".
	Environment string
	// LogLevel is debug, info, warn or error.
	LogLevel string
	// LogFormat is json or text; empty picks one from Environment.
	LogFormat string
	// SheetMarkers override the accepted import sheet name markers.
	SheetMarkers []string
}

// Load reads a .env file if present, then the environment.
func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		Addr:         getEnv("LABELSTRUCT_ADDR", "127.0.0.1:8080"),
		Environment:  getEnv("LABELSTRUCT_ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    os.Getenv("LOG_FORMAT"),
		SheetMarkers: splitList(os.Getenv("LABELSTRUCT_SHEET_MARKERS")),
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// splitList splits a comma separated list, dropping blank entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
