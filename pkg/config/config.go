// Package config loads sitedesk-engine configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for sitedesk-engine.
// Configuration can come from a YAML file (config.yaml) or environment
// variables; environment variables always override YAML values.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8084"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// LogLevel controls zap verbosity: debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`

	// Storage configuration
	Storage StorageConfig `yaml:"storage"`

	// Remote API configuration. The engine runs fully offline by default;
	// when Remote.Enabled is set, facade calls are routed to the remote API
	// instead of the local store.
	Remote RemoteConfig `yaml:"remote"`
}

// StorageConfig holds the embedded database settings.
type StorageConfig struct {
	// DataDir is where per-user SQLite database files live.
	DataDir string `yaml:"data_dir" env:"DATA_DIR" env-default:"./data"`
}

// RemoteConfig holds the (dormant) remote API settings.
type RemoteConfig struct {
	Enabled bool   `yaml:"enabled" env:"REMOTE_ENABLED" env-default:"false"`
	BaseURL string `yaml:"base_url" env:"REMOTE_BASE_URL" env-default:""`
}

// Load reads configuration from config.yaml with environment variable
// overrides. A missing config file is not an error; defaults and environment
// variables apply. The version parameter is injected at build time.
func Load(version string) (*Config, error) {
	cfg := &Config{Version: version}

	err := cleanenv.ReadConfig("config.yaml", cfg)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Storage.DataDir == "" {
		return fmt.Errorf("storage data_dir must not be empty")
	}
	if c.Remote.Enabled && c.Remote.BaseURL == "" {
		return fmt.Errorf("remote base_url is required when remote mode is enabled")
	}
	return nil
}

// EnsureDataDir creates the data directory if it does not exist and returns
// its absolute path.
func (c *Config) EnsureDataDir() (string, error) {
	abs, err := filepath.Abs(c.Storage.DataDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve data dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data dir: %w", err)
	}
	return abs, nil
}
