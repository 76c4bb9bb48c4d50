package config

import (
	"fmt"
	"os"
	"strconv"
)

// SessionConfig holds configuration for editor session token generation
// and validation.
type SessionConfig struct {
	Secret          string
	ExpirationHours int
}

// NewSessionConfig creates a session configuration from environment
// variables. It reads SESSION_SECRET (required) and SESSION_TTL_HOURS
// (default: 24).
func NewSessionConfig() (*SessionConfig, error) {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required but not set")
	}

	ttlStr := os.Getenv("SESSION_TTL_HOURS")
	if ttlStr == "" {
		ttlStr = "24" // default
	}

	ttl, err := strconv.Atoi(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL_HOURS: %v", err)
	}

	cfg := &SessionConfig{
		Secret:          secret,
		ExpirationHours: ttl,
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SessionConfig derives the session settings from the merged
// application config.
func (c *Config) SessionConfig() (*SessionConfig, error) {
	cfg := &SessionConfig{
		Secret:          c.SessionSecret,
		ExpirationHours: c.SessionTTLHours,
	}
	if cfg.ExpirationHours == 0 {
		cfg.ExpirationHours = 24
	}
	if cfg.Secret == "" {
		return nil, fmt.Errorf("session secret is required but not set")
	}
	return cfg, cfg.normalize()
}

// normalize validates the configuration.
func (c *SessionConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("session secret cannot be empty")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("session TTL must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
