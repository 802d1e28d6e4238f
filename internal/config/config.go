// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// AppConfig holds the environment-driven configuration for the API server.
// It is read once at process start and handed to the composition root;
// nothing reads the environment lazily after that.
type AppConfig struct {
	Port        int
	DatabaseURL string
	GeminiKey   string
}

// Load reads the application configuration from the environment.
// DATABASE_URL and GEMINI_API_KEY are required; PORT defaults to 8080.
func Load() (*AppConfig, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		parsed, err := strconv.Atoi(portStr)
		if err != nil || parsed < 1 || parsed > 65535 {
			return nil, fmt.Errorf("invalid PORT: %s", portStr)
		}
		port = parsed
	}

	return &AppConfig{
		Port:        port,
		DatabaseURL: databaseURL,
		GeminiKey:   geminiKey,
	}, nil
}
