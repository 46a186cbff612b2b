package config

import (
	"fmt"
	"os"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Logging
	LogLevel string

	// Layout persistence
	DatabasePath string

	// Optional YAML overrides for the classification contract and the
	// reconstruction thresholds
	ContractFile   string
	ThresholdsFile string

	// Preview mode: watch one rendered SVG file and keep a scene
	// session live over it
	WatchFile      string
	WatchNamespace string

	// Feature flags
	EnableCORS bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress:  getEnv("SERVER_ADDRESS", ":8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DatabasePath:   getEnv("LAYOUT_DB_PATH", "layouts.db"),
		ContractFile:   getEnv("CONTRACT_FILE", ""),
		ThresholdsFile: getEnv("THRESHOLDS_FILE", ""),
		WatchFile:      getEnv("SVG_FILE", ""),
		WatchNamespace: getEnv("SVG_NAMESPACE", "preview"),
		EnableCORS:     getEnvBool("ENABLE_CORS", true),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("SERVER_ADDRESS cannot be empty")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("LAYOUT_DB_PATH cannot be empty")
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}
