package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"incho/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		os.Unsetenv(config.EnvBackendURL)

		cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))

		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		os.Unsetenv(config.EnvBackendURL)
		path := writeConfig(t, "backend_url: https://shop.example.com\nwhatsapp_number: \"96170000000\"\ndebounce_ms: 450\n")

		cfg, err := config.Load(path)

		require.NoError(t, err)
		assert.Equal(t, "https://shop.example.com", cfg.BackendURL)
		assert.Equal(t, "96170000000", cfg.WhatsAppNumber)
		assert.Equal(t, 450, cfg.DebounceMS)
	})

	t.Run("empty fields keep defaults", func(t *testing.T) {
		os.Unsetenv(config.EnvBackendURL)
		path := writeConfig(t, "whatsapp_number: \"96170000000\"\n")

		cfg, err := config.Load(path)

		require.NoError(t, err)
		assert.Equal(t, config.DefaultBackendURL, cfg.BackendURL)
		assert.Equal(t, "96170000000", cfg.WhatsAppNumber)
		assert.Equal(t, config.DefaultDebounceMS, cfg.DebounceMS)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv(config.EnvBackendURL, "http://10.0.0.5:9000")
		path := writeConfig(t, "backend_url: https://shop.example.com\n")

		cfg, err := config.Load(path)

		require.NoError(t, err)
		assert.Equal(t, "http://10.0.0.5:9000", cfg.BackendURL)
	})

	t.Run("trailing slash on backend is trimmed", func(t *testing.T) {
		os.Unsetenv(config.EnvBackendURL)
		path := writeConfig(t, "backend_url: https://shop.example.com/\n")

		cfg, err := config.Load(path)

		require.NoError(t, err)
		assert.Equal(t, "https://shop.example.com", cfg.BackendURL)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := writeConfig(t, "backend_url: [unclosed\n")

		_, err := config.Load(path)

		assert.Error(t, err)
	})
}

func TestQuietPeriod(t *testing.T) {
	assert.Equal(t, 450*time.Millisecond, config.Config{DebounceMS: 450}.QuietPeriod())
	assert.Equal(t, 300*time.Millisecond, config.Config{}.QuietPeriod())
	assert.Equal(t, 300*time.Millisecond, config.Config{DebounceMS: -1}.QuietPeriod())
}
