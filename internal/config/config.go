package config

import (
	"os"
	"strconv"
	"time"

	"github.com/SylvinIsamaza/lung-cancer/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Auth     AuthConfig
	Model    ModelConfig
	Server   ServerConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// AuthConfig holds token issuance settings
type AuthConfig struct {
	JWTSecret      string
	AccessTokenTTL time.Duration
}

// ModelConfig holds classifier artifact settings
type ModelConfig struct {
	Path           string
	PredictTimeout time.Duration
	MaxConcurrent  int64
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	dbConfig, err := loadDatabaseConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load database configuration")
	}
	config.Database = *dbConfig

	authConfig, err := loadAuthConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load auth configuration")
	}
	config.Auth = *authConfig

	modelConfig, err := loadModelConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load model configuration")
	}
	config.Model = *modelConfig

	config.Server = *loadServerConfig()

	return config, nil
}

func loadDatabaseConfig() (*DatabaseConfig, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	return &DatabaseConfig{URL: url}, nil
}

func loadAuthConfig() (*AuthConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.ConfigInvalid("JWT_SECRET is required")
	}

	minutes := getEnvIntOrDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 30)
	if minutes <= 0 {
		return nil, errors.ConfigInvalid("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}

	return &AuthConfig{
		JWTSecret:     secret,
		AccessTokenTTL: time.Duration(minutes) * time.Minute,
	}, nil
}

func loadModelConfig() (*ModelConfig, error) {
	path := os.Getenv("MODEL_PATH")
	if path == "" {
		return nil, errors.ConfigInvalid("MODEL_PATH is required")
	}

	timeoutSeconds := getEnvIntOrDefault("PREDICT_TIMEOUT_SECONDS", 10)
	if timeoutSeconds <= 0 {
		return nil, errors.ConfigInvalid("PREDICT_TIMEOUT_SECONDS must be positive")
	}

	maxConcurrent := getEnvIntOrDefault("PREDICT_MAX_CONCURRENT", 16)
	if maxConcurrent <= 0 {
		return nil, errors.ConfigInvalid("PREDICT_MAX_CONCURRENT must be positive")
	}

	return &ModelConfig{
		Path:           path,
		PredictTimeout: time.Duration(timeoutSeconds) * time.Second,
		MaxConcurrent:  int64(maxConcurrent),
	}, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port: getEnvOrDefault("PORT", "8080"),
	}
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
