// Package config centralises all environment configuration for the API.
// It should be imported only by `cmd/server` (and test code). Business-logic
// layers receive an already-built Config instance via dependency injection.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"pubmed-research-api/internal/pubmed"
)

// Config holds every runtime option the server needs. It is built once at
// startup and read-only afterwards.
type Config struct {
	// Network
	Port string

	// Upstream identity
	BaseURL  string
	APIKey   string
	Email    string
	ToolName string

	// Server tuning
	UpstreamTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Observability
	LogLevel string
}

// Load parses the environment (and an optional .env file) into Config.
// Every variable has a default; the server starts without any of them set.
func Load() Config {
	// godotenv.Load() is a no-op if .env doesn't exist, safe in production.
	_ = godotenv.Load()

	return Config{
		Port:            getEnv("PORT", "8000"),
		BaseURL:         getEnv("PUBMED_BASE_URL", pubmed.DefaultBaseURL),
		APIKey:          os.Getenv("PUBMED_API_KEY"),
		Email:           os.Getenv("PUBMED_EMAIL"),
		ToolName:        getEnv("PUBMED_TOOL_NAME", "PubMedAPIClient"),
		UpstreamTimeout: getDuration("PUBMED_TIMEOUT_SEC", 30),
		ReadTimeout:     getDuration("READ_TIMEOUT_SEC", 15),
		WriteTimeout:    getDuration("WRITE_TIMEOUT_SEC", 45),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SEC", 10),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv returns env[key] if set, otherwise defaultVal.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getDuration reads an integer (seconds) from env, falling back to defaultSec.
func getDuration(key string, defaultSec int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if sec, err := strconv.Atoi(v); err == nil {
			return time.Duration(sec) * time.Second
		}
		log.Printf("invalid %s=%q; using default %ds", key, v, defaultSec)
	}
	return time.Duration(defaultSec) * time.Second
}
