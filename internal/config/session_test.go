package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionConfig(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("SESSION_TTL_HOURS", "12")

	cfg, err := NewSessionConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-secret", cfg.Secret)
	assert.Equal(t, 12, cfg.ExpirationHours)
}

func TestNewSessionConfig_DefaultTTL(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("SESSION_TTL_HOURS", "")

	cfg, err := NewSessionConfig()
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.ExpirationHours)
}

func TestNewSessionConfig_MissingSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	cfg, err := NewSessionConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestNewSessionConfig_InvalidTTL(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("SESSION_TTL_HOURS", "abc")

	cfg, err := NewSessionConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestNewSessionConfig_ZeroTTL(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("SESSION_TTL_HOURS", "0")

	cfg, err := NewSessionConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestConfig_SessionConfig(t *testing.T) {
	cfg := &Config{SessionSecret: "secret", SessionTTLHours: 6}

	sc, err := cfg.SessionConfig()
	require.NoError(t, err)
	assert.Equal(t, "secret", sc.Secret)
	assert.Equal(t, 6, sc.ExpirationHours)
}

func TestConfig_SessionConfig_Defaults(t *testing.T) {
	cfg := &Config{SessionSecret: "secret"}

	sc, err := cfg.SessionConfig()
	require.NoError(t, err)
	assert.Equal(t, 24, sc.ExpirationHours)
}

func TestConfig_SessionConfig_MissingSecret(t *testing.T) {
	cfg := &Config{}

	sc, err := cfg.SessionConfig()
	assert.Error(t, err)
	assert.Nil(t, sc)
}
