// ABOUTME: gymguide configuration: data directory, init timeout and log level.
// ABOUTME: Reads a JSON file under XDG_CONFIG_HOME, then applies environment overrides.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harperreed/gymguide/internal/storage"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Environment variables that override the config file.
const (
	EnvDataDir     = "GYMGUIDE_DATA_DIR"
	EnvInitTimeout = "GYMGUIDE_INIT_TIMEOUT"
	EnvLogLevel    = "GYMGUIDE_LOG_LEVEL"
)

// Config stores gymguide configuration.
type Config struct {
	// DataDir is the directory holding gymguide.db.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/gymguide.
	DataDir string `json:"data_dir,omitempty"`

	// InitTimeout bounds the initialization transaction, as a Go duration
	// string such as "30s".
	InitTimeout string `json:"init_timeout,omitempty"`

	// LogLevel is one of debug, info, warn, error. Defaults to warn.
	LogLevel string `json:"log_level,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetDBPath returns the database file path inside the data directory.
func (c *Config) GetDBPath() string {
	return filepath.Join(c.GetDataDir(), "gymguide.db")
}

// GetInitTimeout parses InitTimeout, defaulting to storage.DefaultInitTimeout.
func (c *Config) GetInitTimeout() (time.Duration, error) {
	if c.InitTimeout == "" {
		return storage.DefaultInitTimeout, nil
	}
	d, err := time.ParseDuration(c.InitTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid init_timeout %q: %w", c.InitTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid init_timeout %q: must be positive", c.InitTimeout)
	}
	return d, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStore opens the store at dbPath, or at the configured location when
// dbPath is empty.
func (c *Config) OpenStore(dbPath string, logger *zap.Logger) (*storage.Store, error) {
	timeout, err := c.GetInitTimeout()
	if err != nil {
		return nil, err
	}
	if dbPath == "" {
		dbPath = c.GetDBPath()
	}
	return storage.Open(dbPath, storage.WithLogger(logger), storage.WithInitTimeout(timeout))
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "gymguide", "config.json")
}

// LoadDotEnv loads variables from .env files into the environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads config from disk and applies environment overrides.
func Load() (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(GetConfigPath())
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvInitTimeout); v != "" {
		c.InitTimeout = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
