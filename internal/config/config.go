package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/EethalTeam/enis-hrm-go/internal/pkg/civilday"
	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// AttendanceConfig holds the knobs of the attendance core: the civil
// timezone every day-bucketing decision uses, the disconnect grace period,
// and the wall-clock hour of the end-of-day sweep.
type AttendanceConfig struct {
	CivilTimezone  string
	HeartbeatGrace time.Duration
	SweepHour      int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "enis-hrm"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Attendance configuration
	grace, err := time.ParseDuration(getEnv("HEARTBEAT_GRACE", "2m"))
	if err != nil {
		return nil, fmt.Errorf("invalid HEARTBEAT_GRACE: %w", err)
	}

	sweepHour, err := strconv.Atoi(getEnv("SWEEP_HOUR", "23"))
	if err != nil {
		return nil, fmt.Errorf("invalid SWEEP_HOUR: %w", err)
	}

	config.Attendance = AttendanceConfig{
		CivilTimezone:  getEnv("CIVIL_TIMEZONE", civilday.DefaultTimezone),
		HeartbeatGrace: grace,
		SweepHour:      sweepHour,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Attendance.HeartbeatGrace <= 0 {
		return fmt.Errorf("HEARTBEAT_GRACE must be positive")
	}
	if c.Attendance.SweepHour < 0 || c.Attendance.SweepHour > 23 {
		return fmt.Errorf("SWEEP_HOUR must be between 0 and 23")
	}
	if _, err := time.LoadLocation(c.Attendance.CivilTimezone); err != nil {
		return fmt.Errorf("invalid CIVIL_TIMEZONE: %w", err)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
