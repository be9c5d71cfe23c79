// Package config loads FocusMirror configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string
	UserID   string

	// Database
	DatabaseURL string
	SQLitePath  string

	// Redis (optional score-response cache)
	RedisURL          string
	ScoreCacheTTL     time.Duration
	ScoreCacheEnabled bool

	// Dashboard history depth
	HistoryLimit int

	// RabbitMQ (optional; in-process bus when empty)
	RabbitMQURL string

	// API server
	APIAddr string

	// Calendar import
	CalendarProvider string
	ICSFeedURL       string
	CalDAVBaseURL    string
	CalDAVUsername   string
	CalDAVPassword   string
	CalDAVPath       string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		UserID:   getEnv("FOCUSMIRROR_USER_ID", "00000000-0000-0000-0000-000000000001"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("FOCUSMIRROR_SQLITE_PATH", ""),

		RedisURL:          getEnv("REDIS_URL", ""),
		ScoreCacheTTL:     getDurationEnv("SCORE_CACHE_TTL", 5*time.Minute),
		ScoreCacheEnabled: getBoolEnv("SCORE_CACHE_ENABLED", true),

		HistoryLimit: getIntEnv("SCORE_HISTORY_LIMIT", 12),

		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		APIAddr: getEnv("API_ADDR", "0.0.0.0:8080"),

		CalendarProvider: getEnv("CALENDAR_PROVIDER", "ics"),
		ICSFeedURL:       getEnv("ICS_FEED_URL", ""),
		CalDAVBaseURL:    getEnv("CALDAV_BASE_URL", ""),
		CalDAVUsername:   getEnv("CALDAV_USERNAME", ""),
		CalDAVPassword:   getEnv("CALDAV_PASSWORD", ""),
		CalDAVPath:       getEnv("CALDAV_PATH", ""),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
