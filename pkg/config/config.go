// Package config loads ActivePause configuration from the environment.
package config

import (
	"os"
	"path/filepath"
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
	DBDriver    string // "sqlite" or "postgres"
	SQLitePath  string
	DatabaseURL string

	// Redis (break suppression; optional)
	RedisURL string

	// RabbitMQ (domain-event publishing; optional)
	RabbitMQURL string

	// Reminder
	WorkIntervalMinutes  int
	BreakDurationMinutes int
	SchedulerTick        time.Duration

	// Stats
	EarlyCutoffHour int
}

// Driver names accepted for DBDriver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		UserID:   getEnv("ACTIVEPAUSE_USER_ID", "00000000-0000-0000-0000-000000000001"),

		DBDriver:    getEnv("ACTIVEPAUSE_DB_DRIVER", DriverSQLite),
		SQLitePath:  getEnv("ACTIVEPAUSE_SQLITE_PATH", DefaultSQLitePath()),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL:    getEnv("REDIS_URL", ""),
		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		WorkIntervalMinutes:  getIntEnv("ACTIVEPAUSE_WORK_INTERVAL", 50),
		BreakDurationMinutes: getIntEnv("ACTIVEPAUSE_BREAK_DURATION", 10),
		SchedulerTick:        getDurationEnv("ACTIVEPAUSE_SCHEDULER_TICK", time.Second),

		EarlyCutoffHour: getIntEnv("ACTIVEPAUSE_EARLY_CUTOFF_HOUR", 8),
	}

	return cfg, nil
}

// DefaultSQLitePath returns the default location of the local database.
func DefaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "activepause.db"
	}
	return filepath.Join(home, ".activepause", "activepause.db")
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
