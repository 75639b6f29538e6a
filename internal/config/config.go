package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIKey    string
	BaseURL   string
	Timeout   time.Duration
	LogLevel  string
	LogFormat string
	Sandbox   SandboxConfig
}

type SandboxConfig struct {
	Port     int
	APIKey   string
	SeedFile string
}

// LoadEnv loads a .env file into the environment. A missing file is not an error.
func LoadEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	err := godotenv.Load(filenames...)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// GetEnv returns the value of key, or fallback when it is unset or empty.
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	timeout, err := time.ParseDuration(GetEnv("ZENSEND_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid ZENSEND_TIMEOUT: %w", err)
	}

	port, err := strconv.Atoi(GetEnv("SANDBOX_PORT", "8085"))
	if err != nil {
		return nil, fmt.Errorf("invalid SANDBOX_PORT: %w", err)
	}

	return &Config{
		APIKey:    os.Getenv("ZENSEND_API_KEY"),
		BaseURL:   GetEnv("ZENSEND_URL", "https://api.zensend.io"),
		Timeout:   timeout,
		LogLevel:  GetEnv("LOG_LEVEL", "info"),
		LogFormat: GetEnv("LOG_FORMAT", "text"),
		Sandbox: SandboxConfig{
			Port:     port,
			APIKey:   GetEnv("SANDBOX_API_KEY", "sandbox"),
			SeedFile: os.Getenv("SANDBOX_SEED"),
		},
	}, nil
}

// RequireAPIKey fails when no credential was configured.
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return fmt.Errorf("ZENSEND_API_KEY is not set")
	}
	return nil
}
