package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Cache    CacheConfig
	API      APIConfig
	Client   ClientConfig
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// CacheConfig holds the customer detail cache configuration (Redis)
type CacheConfig struct {
	RedisURL string
	TTL      time.Duration
	Enabled  bool
}

// APIConfig holds API server configuration
type APIConfig struct {
	Port          int
	AllowedOrigin string
}

// ClientConfig holds the admin console configuration
type ClientConfig struct {
	BaseURL  string
	Timeout  time.Duration
	PageSize int
	LogLevel slog.Level
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	apiPort, err := strconv.Atoi(getEnv("API_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_PORT: %w", err)
	}

	cacheTTL, err := strconv.Atoi(getEnv("CACHE_TTL_SECONDS", "300"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL_SECONDS: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_ENABLED: %w", err)
	}

	clientTimeout, err := strconv.Atoi(getEnv("ADMIN_TIMEOUT_SECONDS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_TIMEOUT_SECONDS: %w", err)
	}

	pageSize, err := strconv.Atoi(getEnv("ADMIN_PAGE_SIZE", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_PAGE_SIZE: %w", err)
	}

	logLevel, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "customer_admin"),
			Password: getEnv("DB_PASSWORD", "customer_admin"),
			DBName:   getEnv("DB_NAME", "customer_admin"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Cache: CacheConfig{
			RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
			TTL:      time.Duration(cacheTTL) * time.Second,
			Enabled:  cacheEnabled,
		},
		API: APIConfig{
			Port:          apiPort,
			AllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "http://localhost:5173"),
		},
		Client: ClientConfig{
			BaseURL:  getEnv("ADMIN_API_URL", "http://localhost:8080/api"),
			Timeout:  time.Duration(clientTimeout) * time.Second,
			PageSize: pageSize,
			LogLevel: logLevel,
		},
	}, nil
}

// DSN returns the database connection string
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}
