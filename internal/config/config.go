package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the defaults read from the config file
type Config struct {
	Search SearchConfig `toml:"search"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
}

// SearchConfig holds default search flags
type SearchConfig struct {
	IgnoreCase  bool `toml:"ignore_case"`
	LineNumbers bool `toml:"line_numbers"`
	Highlight   bool `toml:"highlight"`
	AllText     bool `toml:"all_text"`
}

// OutputConfig controls how files are dispatched
type OutputConfig struct {
	MaxWorkers int `toml:"max_workers"` // 0 = one worker per file
}

// LogConfig controls diagnostic output on stderr
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			MaxWorkers: 0,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load loads config from the default location, falling back to defaults
func Load() (*Config, error) {
	configPath := getConfigPath()
	if configPath == "" {
		return DefaultConfig(), nil
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads config from an explicit path. The file must exist.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML on top of the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, err
	}

	if cfg.Output.MaxWorkers < 0 {
		return nil, fmt.Errorf("output.max_workers must not be negative, got %d", cfg.Output.MaxWorkers)
	}
	return cfg, nil
}

// getConfigPath returns the config file path
func getConfigPath() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mgrep", "config.toml")
	}

	// Fall back to ~/.config
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "mgrep", "config.toml")
}

// GetConfigPath exports the config path for user reference
func GetConfigPath() string {
	return getConfigPath()
}
