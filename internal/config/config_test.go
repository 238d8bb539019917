package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := &Config{
		Bucket:       "media-archive",
		Prefix:       "media",
		LocalRoot:    "/data/media",
		CompletedDir: "/data/media/completed",
		SkipNames:    []string{".DS_Store"},
	}

	require.NoError(t, SaveTo(path, cfg))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFromInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bucket: [unterminated"), 0o644))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, SaveTo(GetConfigPath(), &Config{
		Bucket:    "file-bucket",
		LocalRoot: "/data/media",
	}))

	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.SetEnvPrefix("MMGMT")
	viper.AutomaticEnv()
	t.Setenv("MMGMT_BUCKET", "env-bucket")

	cfg, err := Load()
	require.NoError(t, err)

	// The environment wins over the file; untouched fields keep the
	// file values.
	assert.Equal(t, "env-bucket", cfg.Bucket)
	assert.Equal(t, "/data/media", cfg.LocalRoot)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{LocalRoot: "/data/media"}
	cfg.ApplyDefaults()

	assert.Equal(t, filepath.Join("/data/media", "completed"), cfg.CompletedDir)
	assert.Equal(t, DefaultSkipNames, cfg.SkipNames)

	// Explicit values survive.
	cfg = &Config{LocalRoot: "/data/media", CompletedDir: "/done", SkipNames: []string{"x"}}
	cfg.ApplyDefaults()
	assert.Equal(t, "/done", cfg.CompletedDir)
	assert.Equal(t, []string{"x"}, cfg.SkipNames)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	assert.ErrorIs(t, cfg.Validate(false), ErrMissingLocalRoot)
	assert.ErrorIs(t, cfg.Validate(true), ErrMissingLocalRoot)

	cfg.LocalRoot = "/data/media"
	assert.NoError(t, cfg.Validate(false))
	assert.ErrorIs(t, cfg.Validate(true), ErrMissingBucket)

	cfg.Bucket = "media-archive"
	assert.NoError(t, cfg.Validate(true))
}

func TestSkipSet(t *testing.T) {
	cfg := &Config{SkipNames: []string{".DS_Store", "Thumbs.db"}}
	set := cfg.SkipSet()

	assert.Contains(t, set, ".DS_Store")
	assert.Contains(t, set, "Thumbs.db")
	assert.NotContains(t, set, "foo.DS_Store")
}
