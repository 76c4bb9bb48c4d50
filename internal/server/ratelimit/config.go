package ratelimit

import (
	"os"
	"strconv"
	"time"
)

// LoadConfig loads throttling configuration from environment variables.
// Defaults allow 5 login attempts per minute per client.
func LoadConfig() *Config {
	enabled := getEnvBool("LOGIN_RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		Limit:           getEnvInt("LOGIN_RATE_LIMIT", 5),
		Window:          getEnvDuration("LOGIN_RATE_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("LOGIN_RATE_CLEANUP_INTERVAL", 5*time.Minute),
	}
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}
