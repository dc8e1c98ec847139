package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors t.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv(EnvAPIKey, "nvapi-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "nvapi-test", cfg.APIKey)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultMaxRetries, cfg.MaxRetries)
	assert.Equal(t, DefaultModel, cfg.DefaultModel)
	assert.Equal(t, ReasoningModel, cfg.ReasoningModel)
	assert.Equal(t, FastModel, cfg.FastModel)
	assert.Equal(t, PowerfulModel, cfg.PowerfulModel)
}

func TestLoadMissingCredential(t *testing.T) {
	// t.Setenv registers the restore; the key must then be fully unset
	// because godotenv never overrides variables that exist.
	t.Setenv(EnvAPIKey, "")
	require.NoError(t, os.Unsetenv(EnvAPIKey))
	chdir(t, t.TempDir()) // no .env here

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoadFromDotenvFallback(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	require.NoError(t, os.Unsetenv(EnvAPIKey))

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(EnvAPIKey+"=nvapi-dotenv\n"), 0o600))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "nvapi-dotenv", cfg.APIKey)
}

func TestDefaultCarriesCredential(t *testing.T) {
	cfg := Default("nvapi-abc")
	assert.Equal(t, "nvapi-abc", cfg.APIKey)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
}
