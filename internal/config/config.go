package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Configuration errors. Both are fatal: no operation is allowed to cause
// side effects before these checks pass.
var (
	ErrMissingBucket    = errors.New("bucket is not configured (run `mmgmt config` or set MMGMT_BUCKET)")
	ErrMissingLocalRoot = errors.New("local root directory is not configured (run `mmgmt config` or set MMGMT_LOCAL_DIR)")
)

// DefaultSkipNames are file names excluded from batch uploads. Matching is
// done on the base name only, never the full path.
var DefaultSkipNames = []string{".DS_Store", "Thumbs.db", "desktop.ini"}

// Config represents the application configuration
type Config struct {
	Bucket       string   `yaml:"bucket,omitempty"`
	Prefix       string   `yaml:"prefix,omitempty"`
	LocalRoot    string   `yaml:"local_dir,omitempty"`
	CompletedDir string   `yaml:"completed_dir,omitempty"`
	SkipNames    []string `yaml:"skip_names,omitempty"`
}

// GetConfigDir returns the config directory path (~/.mmgmt)
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mmgmt"
	}
	return filepath.Join(home, ".mmgmt")
}

// GetConfigPath returns the config file path (~/.mmgmt/config.yaml)
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// Load loads the configuration from ~/.mmgmt/config.yaml, applies
// MMGMT_* environment overrides and fills in defaults.
func Load() (*Config, error) {
	cfg, err := LoadFrom(GetConfigPath())
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	cfg.ApplyDefaults()
	return cfg, nil
}

// LoadFrom loads the configuration from an explicit path. A missing file
// yields an empty config, not an error.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// Save saves the configuration to ~/.mmgmt/config.yaml
func Save(cfg *Config) error {
	return SaveTo(GetConfigPath(), cfg)
}

// SaveTo saves the configuration to an explicit path, creating the parent
// directory if needed.
func SaveTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnv overlays MMGMT_* environment variables on the file values.
// Bindings are established in cmd/root.go via viper.AutomaticEnv.
func (c *Config) applyEnv() {
	if v := viper.GetString("bucket"); v != "" {
		c.Bucket = v
	}
	if v := viper.GetString("prefix"); v != "" {
		c.Prefix = v
	}
	if v := viper.GetString("local_dir"); v != "" {
		c.LocalRoot = v
	}
	if v := viper.GetString("completed_dir"); v != "" {
		c.CompletedDir = v
	}
}

// ApplyDefaults fills in the completed directory and skip set when unset.
func (c *Config) ApplyDefaults() {
	if c.CompletedDir == "" && c.LocalRoot != "" {
		c.CompletedDir = filepath.Join(c.LocalRoot, "completed")
	}
	if len(c.SkipNames) == 0 {
		c.SkipNames = append([]string(nil), DefaultSkipNames...)
	}
}

// Validate checks that the settings required for an operation are present.
// remote must be true for any operation that talks to the bucket.
func (c *Config) Validate(remote bool) error {
	if c.LocalRoot == "" {
		return ErrMissingLocalRoot
	}
	if remote && c.Bucket == "" {
		return ErrMissingBucket
	}
	return nil
}

// SkipSet returns the skip names as a set keyed by base name.
func (c *Config) SkipSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.SkipNames))
	for _, name := range c.SkipNames {
		set[name] = struct{}{}
	}
	return set
}
