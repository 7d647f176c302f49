// Package config owns the settings file, the XDG path conventions and
// their environment overrides.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the settings file is absent or a field is
// left empty.
const (
	DefaultBackendURL     = "http://localhost:8000"
	DefaultWhatsAppNumber = "96171294697"
	DefaultDebounceMS     = 300
)

// EnvBackendURL overrides the configured backend for a single run.
const EnvBackendURL = "INCHO_BACKEND_URL"

// Config is the on-disk settings shape. All fields are optional.
type Config struct {
	BackendURL     string `yaml:"backend_url"`
	WhatsAppNumber string `yaml:"whatsapp_number"`
	DebounceMS     int    `yaml:"debounce_ms"`
}

func Default() Config {
	return Config{
		BackendURL:     DefaultBackendURL,
		WhatsAppNumber: DefaultWhatsAppNumber,
		DebounceMS:     DefaultDebounceMS,
	}
}

// Load reads the settings file at path, fills empty fields with
// defaults and applies environment overrides. A missing file is not
// an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// First run, defaults apply.
	case err != nil:
		return Config{}, err
	default:
		var file Config
		if err := yaml.Unmarshal(data, &file); err != nil {
			return Config{}, err
		}
		if file.BackendURL != "" {
			cfg.BackendURL = file.BackendURL
		}
		if file.WhatsAppNumber != "" {
			cfg.WhatsAppNumber = file.WhatsAppNumber
		}
		if file.DebounceMS > 0 {
			cfg.DebounceMS = file.DebounceMS
		}
	}

	if url := os.Getenv(EnvBackendURL); url != "" {
		cfg.BackendURL = url
	}
	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")

	return cfg, nil
}

// QuietPeriod returns the configured debounce window as a duration.
func (c Config) QuietPeriod() time.Duration {
	if c.DebounceMS <= 0 {
		return DefaultDebounceMS * time.Millisecond
	}
	return time.Duration(c.DebounceMS) * time.Millisecond
}
