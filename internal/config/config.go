package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort         = "8080"
	DefaultTemporalHost = "localhost:7233"
	DefaultTaskQueue    = "lodging-booking-queue"
	DefaultTimeout      = 10 * time.Second
	DefaultAPIURL       = "http://localhost:8080"

	EngineDirect   = "direct"
	EngineTemporal = "temporal"
)

// Config holds the server settings read from the environment
type Config struct {
	Port           string
	Engine         string
	TemporalHost   string
	TaskQueue      string
	BookingTimeout time.Duration
}

// LoadDotEnv reads a .env file into the environment when one exists.
// Variables already set take precedence.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// Load reads the server configuration
func Load() (*Config, error) {
	cfg := &Config{
		Port:         Get("API_PORT", DefaultPort),
		Engine:       Get("BOOKING_ENGINE", EngineDirect),
		TemporalHost: Get("TEMPORAL_HOST", DefaultTemporalHost),
		TaskQueue:    Get("TEMPORAL_TASK_QUEUE", DefaultTaskQueue),
	}

	if cfg.Engine != EngineDirect && cfg.Engine != EngineTemporal {
		return nil, fmt.Errorf("BOOKING_ENGINE must be %q or %q, got %q", EngineDirect, EngineTemporal, cfg.Engine)
	}

	timeout, err := time.ParseDuration(Get("BOOKING_TIMEOUT", DefaultTimeout.String()))
	if err != nil {
		return nil, fmt.Errorf("BOOKING_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("BOOKING_TIMEOUT must be positive, got %s", timeout)
	}
	cfg.BookingTimeout = timeout

	return cfg, nil
}

// Get returns the value of key, or fallback when it is unset or empty
func Get(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
