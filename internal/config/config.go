// Package config loads process configuration from the environment, with an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	HTTPPort           string
	Environment        string
	LogLevel           string
	CookieSecure       bool
	CORSAllowedOrigins []string

	// Session store; Redis is used when RedisAddr is set
	RedisAddr            string
	RedisPassword        string
	RedisDB              int
	SessionSweepInterval time.Duration

	// Login throttling per client address; a limit of zero disables it
	LoginRateLimit  int
	LoginRateWindow time.Duration

	// Audit mirror; disabled when KafkaBrokers is empty
	KafkaBrokers    []string
	KafkaAuditTopic string

	// Tracing
	TracingEnabled bool
	JaegerEndpoint string

	// Bootstrap admin, created at startup when no user has that name
	AdminUsername string
	AdminPassword string
	AdminEmail    string
	AdminFullName string
}

// IsDevelopment reports whether the process runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load reads a .env file when present and then the environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		HTTPPort:             getEnv("HTTP_PORT", "5000"),
		Environment:          getEnv("APP_ENV", "development"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		CookieSecure:         getEnvAsBool("COOKIE_SECURE", false),
		CORSAllowedOrigins:   getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisDB:              getEnvAsInt("REDIS_DB", 0),
		SessionSweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", 10*time.Minute),
		LoginRateLimit:       getEnvAsInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow:      getEnvAsDuration("LOGIN_RATE_WINDOW", time.Minute),
		KafkaBrokers:         getEnvAsSlice("KAFKA_BROKERS", nil),
		KafkaAuditTopic:      getEnv("KAFKA_AUDIT_TOPIC", "cafe-activity-logs"),
		TracingEnabled:       getEnvAsBool("TRACING_ENABLED", false),
		JaegerEndpoint:       getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		AdminUsername:        getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:        getEnv("ADMIN_PASSWORD", ""),
		AdminEmail:           getEnv("ADMIN_EMAIL", "admin@cafe.local"),
		AdminFullName:        getEnv("ADMIN_FULL_NAME", "Café Admin"),
	}

	if cfg.HTTPPort == "" {
		return nil, fmt.Errorf("HTTP_PORT is required")
	}
	if cfg.SessionSweepInterval <= 0 {
		return nil, fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive")
	}
	if cfg.LoginRateLimit > 0 && cfg.LoginRateWindow <= 0 {
		return nil, fmt.Errorf("LOGIN_RATE_WINDOW must be positive")
	}
	if cfg.AdminPassword != "" && cfg.AdminUsername == "" {
		return nil, fmt.Errorf("ADMIN_USERNAME is required when ADMIN_PASSWORD is set")
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice splits a comma separated variable, dropping empty items.
func getEnvAsSlice(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
