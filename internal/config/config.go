// Package config loads labelctl configuration.
// Values come from ~/.labelctl/config.json with environment variable
// overrides; command-line flags are layered on top by the CLI.
package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds labelctl configuration.
type Config struct {
	// DriveID is the shared drive to operate on. Required by every
	// command; there is no built-in default.
	// Env override: LABELCTL_DRIVE_ID
	DriveID string `json:"drive_id"`

	// CredentialsPath points at the OAuth client credentials JSON.
	// If empty, the default dotfile locations are searched.
	// Env override: LABELCTL_CREDENTIALS
	CredentialsPath string `json:"credentials_path"`

	// TokenPath points at the stored OAuth token JSON.
	// If empty, the default dotfile locations are searched.
	// Env override: LABELCTL_TOKEN
	TokenPath string `json:"token_path"`

	// PageSize is the per-page size for file listing calls.
	// Env override: LABELCTL_PAGE_SIZE
	PageSize int64 `json:"page_size"`

	// Debug enables debug-level logging.
	// Env override: LABELCTL_DEBUG=1
	Debug bool `json:"debug"`

	// JSONLogs switches slog output to JSON format.
	JSONLogs bool `json:"json_logs"`

	// LogDir, when set, adds a rotating log file next to stderr logging.
	LogDir string `json:"log_dir"`
}

// DefaultPageSize is used when neither the config file nor the
// environment sets a page size.
const DefaultPageSize = 100

// Load reads configuration from the config file, then applies environment
// variable overrides. Config file locations checked in order:
//  1. LABELCTL_CONFIG env var (if set)
//  2. ~/.labelctl/config.json
//
// Missing file is not an error.
func Load() Config {
	var cfg Config

	configPath := os.Getenv("LABELCTL_CONFIG")
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			slog.Warn("Failed to get home directory for config", "error", err)
			finish(&cfg)
			return cfg
		}
		configPath = filepath.Join(home, ".labelctl", "config.json")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read config file", "path", configPath, "error", err)
		}
		// No config file — env vars only
		finish(&cfg)
		return cfg
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		slog.Warn("Failed to parse config file", "path", configPath, "error", err)
		// Fall through with zero config + env overrides
	}

	finish(&cfg)
	return cfg
}

func finish(cfg *Config) {
	applyEnvOverrides(cfg)
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
}

// applyEnvOverrides applies environment variable overrides to the config.
// Env vars take precedence over config file values.
func applyEnvOverrides(cfg *Config) {
	if os.Getenv("LABELCTL_DEBUG") == "1" {
		cfg.Debug = true
	}
	if id := os.Getenv("LABELCTL_DRIVE_ID"); id != "" {
		cfg.DriveID = id
	}
	if p := os.Getenv("LABELCTL_CREDENTIALS"); p != "" {
		cfg.CredentialsPath = p
	}
	if p := os.Getenv("LABELCTL_TOKEN"); p != "" {
		cfg.TokenPath = p
	}
	if s := os.Getenv("LABELCTL_PAGE_SIZE"); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 {
			cfg.PageSize = n
		}
	}
}
