package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Auth     AuthConfig
	Fx       FxConfig
	Jobs     JobsConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// AuthConfig holds the shared dashboard password and session token settings.
type AuthConfig struct {
	Password  string
	FernetKey string        // base64 fernet key; generated at startup when empty
	TokenTTL  time.Duration // session token lifetime
}

// FxConfig holds currency configuration.
type FxConfig struct {
	DisplayCurrency string // default reporting currency for dashboard views
	RateAPIBaseURL  string
}

// JobsConfig holds the cron schedules for the background fetch jobs.
type JobsConfig struct {
	FxRefreshSchedule    string
	PriceRefreshSchedule string
	FetchConcurrency     int
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	concurrency, err := strconv.Atoi(getEnv("FETCH_CONCURRENCY", "4"))
	if err != nil || concurrency < 1 {
		return nil, fmt.Errorf("invalid FETCH_CONCURRENCY: %q", getEnv("FETCH_CONCURRENCY", "4"))
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/wealth_dashboard.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: strings.Split(
				getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost"), ","),
		},
		Auth: AuthConfig{
			Password:  getEnv("DASHBOARD_PASSWORD", ""),
			FernetKey: getEnv("FERNET_KEY", ""),
			TokenTTL:  ttl,
		},
		Fx: FxConfig{
			DisplayCurrency: getEnv("DISPLAY_CURRENCY", "USD"),
			RateAPIBaseURL:  getEnv("RATE_API_URL", "https://api.frankfurter.dev/v1"),
		},
		Jobs: JobsConfig{
			FxRefreshSchedule:    getEnv("FX_REFRESH_CRON", "0 6 * * *"),
			PriceRefreshSchedule: getEnv("PRICE_REFRESH_CRON", "30 6 * * *"),
			FetchConcurrency:     concurrency,
		},
	}

	if config.Auth.Password == "" {
		return nil, fmt.Errorf("DASHBOARD_PASSWORD is required")
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
