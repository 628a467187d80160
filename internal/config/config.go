package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// GitHub
	GitHubUser   string
	GitHubToken  string // optional, only raises the API rate limit
	GitHubAPIURL string

	// Load cycle
	FetchTimeout    time.Duration
	RefreshInterval time.Duration // zero disables background refresh

	// Presentation
	Locale      string // "en" or "fr"
	DisplayTZ   string
	ContentPath string

	// Logging
	LogLevel  string
	LogFormat string // "text" or "json"

	// API Server
	APIPort string
	APIHost string

	// CLI
	APIEndpoint string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	fetchTimeout, err := getDuration("FETCH_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	refreshInterval, err := getDuration("REFRESH_INTERVAL", 0)
	if err != nil {
		return nil, err
	}

	return &Config{
		GitHubUser:      getEnv("GITHUB_USER", ""),
		GitHubToken:     getEnv("GITHUB_TOKEN", ""),
		GitHubAPIURL:    getEnv("GITHUB_API_URL", "https://api.github.com/"),
		FetchTimeout:    fetchTimeout,
		RefreshInterval: refreshInterval,
		Locale:          getEnv("LOCALE", "en"),
		DisplayTZ:       getEnv("DISPLAY_TZ", "UTC"),
		ContentPath:     getEnv("CONTENT_PATH", "./portfolio.yaml"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		APIPort:         getEnv("API_PORT", "8080"),
		APIHost:         getEnv("API_HOST", "localhost"),
		APIEndpoint:     getEnv("API_ENDPOINT", "http://localhost:8080"),
	}, nil
}

// getEnv returns the value of an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, &ConfigError{Field: key, Message: "must be a duration such as 10s or 5m"}
	}
	return d, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.GitHubUser == "" {
		return &ConfigError{Field: "GITHUB_USER", Message: "GitHub user is required"}
	}
	if c.Locale != "en" && c.Locale != "fr" {
		return &ConfigError{Field: "LOCALE", Message: "must be 'en' or 'fr'"}
	}
	if c.FetchTimeout <= 0 {
		return &ConfigError{Field: "FETCH_TIMEOUT", Message: "must be positive"}
	}
	if c.RefreshInterval < 0 {
		return &ConfigError{Field: "REFRESH_INTERVAL", Message: "must not be negative"}
	}
	if _, err := time.LoadLocation(c.DisplayTZ); err != nil {
		return &ConfigError{Field: "DISPLAY_TZ", Message: "unknown time zone"}
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return &ConfigError{Field: "LOG_FORMAT", Message: "must be 'text' or 'json'"}
	}
	return nil
}

// Location returns the display time zone, falling back to UTC
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DisplayTZ)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
