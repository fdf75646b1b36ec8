package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the client.
type Config struct {
	API   APIConfig
	Cache CacheConfig
	Log   LogConfig
	UI    UIConfig
}

// APIConfig selects the remote platform origin.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CacheConfig selects the cache backend. The default in-memory store needs
// no settings; Redis is for headless consumers sharing views across
// processes.
type CacheConfig struct {
	Backend  string // "memory" or "redis"
	Addr     string
	Password string
	DB       int
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string
}

// UIConfig holds presentation preferences persisted between sessions.
type UIConfig struct {
	Theme string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: getEnv("SWIFTCAB_API_URL", "http://localhost:8080/api/v1"),
			Timeout: getDurationEnv("SWIFTCAB_API_TIMEOUT", 10*time.Second),
		},
		Cache: CacheConfig{
			Backend:  getEnv("SWIFTCAB_CACHE", "memory"),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Log: LogConfig{
			Level: getEnv("SWIFTCAB_LOG_LEVEL", "info"),
		},
		UI: UIConfig{
			Theme: getEnv("SWIFTCAB_THEME", "system"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
