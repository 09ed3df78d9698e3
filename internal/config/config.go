// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for
// assettrack.
//
// Supports both TOML and JSON configuration formats, with built-in
// defaults and environment variable overrides.
//
// Configuration file locations (in order of precedence):
//   - ~/.assettrack/config.toml
//   - ~/.assettrack/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/assettrack-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete assettrack configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	API    APIConfig    `toml:"api" json:"api"`
	UI     UIConfig     `toml:"ui" json:"ui"`
	Export ExportConfig `toml:"export" json:"export"`
	Scan   ScanConfig   `toml:"scan" json:"scan"`
}

// APIConfig locates the remote asset-management service.
type APIConfig struct {
	// BaseURL is the single configured service endpoint. Every gateway
	// call goes through it; nothing else is hard-coded anywhere.
	BaseURL string `toml:"base_url" json:"base_url"`
	// TimeoutSecs is the per-request timeout in seconds.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
}

// Timeout returns the request timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSecs) * time.Second
}

// UIConfig holds terminal UI preferences.
type UIConfig struct {
	// Theme selects the color theme: "dark", "light", or "auto".
	Theme string `toml:"theme" json:"theme"`
	// CompactTables drops secondary columns on narrow terminals.
	CompactTables bool `toml:"compact_tables" json:"compact_tables"`
}

// ExportConfig controls the log export destination.
type ExportConfig struct {
	// Dir is where logs-YYYY-MM-DD.txt files are written.
	// Empty means the current working directory.
	Dir string `toml:"dir" json:"dir"`
}

// ScanConfig controls the QR scan loop.
type ScanConfig struct {
	// Source is the default frame source path (a directory of captured
	// frames or a device mount).
	Source string `toml:"source" json:"source"`
	// MaxFPS caps decode attempts per second.
	MaxFPS int `toml:"max_fps" json:"max_fps"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: "1",
		API: APIConfig{
			BaseURL:     "http://localhost:5000",
			TimeoutSecs: 15,
		},
		UI: UIConfig{
			Theme: "auto",
		},
		Export: ExportConfig{},
		Scan: ScanConfig{
			MaxFPS: 10,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns ~/.assettrack.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".assettrack"), nil
}

// PathTOML returns the TOML config file path.
func PathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// PathJSON returns the JSON config file path.
func PathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads the configuration: TOML first, JSON second, defaults last.
// Environment overrides apply on top of whatever was loaded.
func Load() (*Config, error) {
	cfg := Default()

	if path, err := PathTOML(); err == nil {
		if loaded, err := loadPath(path, cfg); err == nil && loaded {
			cfg.ApplyEnvOverrides()
			return cfg, cfg.Validate()
		} else if err != nil {
			return nil, err
		}
	}
	if path, err := PathJSON(); err == nil {
		if loaded, err := loadPath(path, cfg); err == nil && loaded {
			cfg.ApplyEnvOverrides()
			return cfg, cfg.Validate()
		} else if err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnvOverrides()
	return cfg, cfg.Validate()
}

// LoadFromPath reads a specific config file (TOML or JSON by extension).
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	loaded, err := loadPath(path, cfg)
	if err != nil {
		return nil, err
	}
	if !loaded {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	cfg.ApplyEnvOverrides()
	return cfg, cfg.Validate()
}

// loadPath decodes path over cfg. The first return is false when the
// file does not exist.
func loadPath(path string, cfg *Config) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read config: %w", err)
	}

	switch filepath.Ext(path) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return false, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return false, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return true, nil
}

// Save writes cfg to the TOML path atomically.
func Save(cfg *Config) error {
	path, err := PathTOML()
	if err != nil {
		return err
	}
	return SaveTo(cfg, path)
}

// SaveTo writes cfg to an explicit path in TOML form.
func SaveTo(cfg *Config, path string) error {
	var buf []byte
	{
		b := &tomlBuffer{}
		enc := toml.NewEncoder(b)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		buf = b.data
	}
	return util.AtomicWriteFile(path, buf, 0600)
}

type tomlBuffer struct{ data []byte }

func (b *tomlBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides layers ASSETTRACK_* variables over the loaded values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("ASSETTRACK_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("ASSETTRACK_API_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.API.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("ASSETTRACK_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("ASSETTRACK_EXPORT_DIR"); v != "" {
		c.Export.Dir = v
	}
	if v := os.Getenv("ASSETTRACK_SCAN_SOURCE"); v != "" {
		c.Scan.Source = v
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the fields that would otherwise fail far from here.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q is not a valid URL", c.API.BaseURL)
	}
	if c.API.TimeoutSecs <= 0 {
		return fmt.Errorf("api.timeout_secs must be positive, got %d", c.API.TimeoutSecs)
	}
	switch c.UI.Theme {
	case "dark", "light", "auto":
	default:
		return fmt.Errorf("ui.theme %q is not one of dark, light, auto", c.UI.Theme)
	}
	if c.Scan.MaxFPS <= 0 {
		return fmt.Errorf("scan.max_fps must be positive, got %d", c.Scan.MaxFPS)
	}
	return nil
}

// =============================================================================
// GLOBAL ACCESS
// =============================================================================

var (
	globalConfig *Config
	globalMu     sync.RWMutex
)

// Global returns the process-wide configuration, loading it on first use.
// Falls back to defaults if loading fails.
func Global() *Config {
	globalMu.RLock()
	if globalConfig != nil {
		defer globalMu.RUnlock()
		return globalConfig
	}
	globalMu.RUnlock()

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			cfg = Default()
		}
		globalConfig = cfg
	}
	return globalConfig
}

// SetGlobal replaces the process-wide configuration.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = cfg
}

// ReloadGlobal re-reads the configuration from disk.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	SetGlobal(cfg)
	return nil
}
