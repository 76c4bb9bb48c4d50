// Package config provides configuration loading and validation for the
// portfolio server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the application configuration that can be loaded
// from a JSON file and overridden by environment variables. All fields
// are optional; missing values use defaults or must be provided via
// CLI flags.
type Config struct {
	// Server
	Port    int    `json:"port,omitempty"`     // HTTP listen port
	SiteURL string `json:"site_url,omitempty"` // Public URL of the site, used by the snapshot command

	// Content
	ContentPath string `json:"content_path,omitempty"` // Path to the bundled content.json

	// GitHub publish target
	GitHubOwner   string `json:"github_owner,omitempty"`        // Repository owner
	GitHubRepo    string `json:"github_repo,omitempty"`         // Repository name
	RepoPath      string `json:"github_content_path,omitempty"` // Path of the content file inside the repository
	GitHubBaseURL string `json:"github_api_url,omitempty"`      // API base URL, overridable for GitHub Enterprise

	// Editor session
	SessionSecret   string `json:"session_secret,omitempty"`    // HMAC secret for session tokens
	SessionTTLHours int    `json:"session_ttl_hours,omitempty"` // Session token lifetime
	CredentialPath  string `json:"credential_path,omitempty"`   // Where the editor credential is persisted

	// Optional headless CMS overlay
	CMSURL   string `json:"cms_url,omitempty"`   // CMS base URL; empty disables the overlay
	CMSToken string `json:"cms_token,omitempty"` // CMS API token

	// Behavior
	ChromePath string `json:"chrome_path,omitempty"` // Chrome binary for PDF snapshots
	Verbose    bool   `json:"verbose,omitempty"`     // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns a Config populated from environment variables.
// Unset variables leave zero values, so the result can be merged over
// file-based config with MergeWithDefaults.
func FromEnv() (*Config, error) {
	cfg := &Config{
		SiteURL:        os.Getenv("SITE_URL"),
		ContentPath:    os.Getenv("CONTENT_PATH"),
		GitHubOwner:    os.Getenv("GITHUB_OWNER"),
		GitHubRepo:     os.Getenv("GITHUB_REPO"),
		RepoPath:       os.Getenv("GITHUB_CONTENT_PATH"),
		GitHubBaseURL:  os.Getenv("GITHUB_API_URL"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		CredentialPath: os.Getenv("CREDENTIAL_PATH"),
		CMSURL:         os.Getenv("CMS_URL"),
		CMSToken:       os.Getenv("CMS_TOKEN"),
		ChromePath:     os.Getenv("CHROME_PATH"),
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = p
	}
	if ttl := os.Getenv("SESSION_TTL_HOURS"); ttl != "" {
		h, err := strconv.Atoi(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL_HOURS: %v", err)
		}
		cfg.SessionTTLHours = h
	}

	return cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.SessionTTLHours < 0 {
		return fmt.Errorf("config error: 'session_ttl_hours' must be non-negative")
	}

	// A publish target is all-or-nothing
	partial := c.GitHubOwner != "" || c.GitHubRepo != ""
	complete := c.GitHubOwner != "" && c.GitHubRepo != ""
	if partial && !complete {
		return fmt.Errorf("config error: 'github_owner' and 'github_repo' must be set together")
	}

	if c.CMSToken != "" && c.CMSURL == "" {
		return fmt.Errorf("config error: 'cms_token' is set but 'cms_url' is empty")
	}

	if c.ContentPath != "" {
		if _, err := os.Stat(c.ContentPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: content file not found: %s", c.ContentPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Used to layer env vars over a config file, and the result
// over the built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.SiteURL == "" {
		result.SiteURL = defaults.SiteURL
	}
	if result.ContentPath == "" {
		result.ContentPath = defaults.ContentPath
	}
	if result.GitHubOwner == "" {
		result.GitHubOwner = defaults.GitHubOwner
	}
	if result.GitHubRepo == "" {
		result.GitHubRepo = defaults.GitHubRepo
	}
	if result.RepoPath == "" {
		result.RepoPath = defaults.RepoPath
	}
	if result.GitHubBaseURL == "" {
		result.GitHubBaseURL = defaults.GitHubBaseURL
	}
	if result.SessionSecret == "" {
		result.SessionSecret = defaults.SessionSecret
	}
	if result.CredentialPath == "" {
		result.CredentialPath = defaults.CredentialPath
	}
	if result.CMSURL == "" {
		result.CMSURL = defaults.CMSURL
	}
	if result.CMSToken == "" {
		result.CMSToken = defaults.CMSToken
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.SessionTTLHours == 0 {
		result.SessionTTLHours = defaults.SessionTTLHours
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Defaults returns the built-in configuration defaults.
func Defaults() Config {
	return Config{
		Port:            8080,
		ContentPath:     "data/content.json",
		RepoPath:        "src/content.json",
		SessionTTLHours: 24,
		CredentialPath:  ".portfolio-credential",
	}
}
