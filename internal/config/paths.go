package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const appDir = "incho"

// DefaultCartPath returns the persistent cart location under the XDG
// data directory.
func DefaultCartPath() string {
	return filepath.Join(xdgDir("XDG_DATA_HOME", ".local", "share"), appDir, "cart.json")
}

// DefaultConfigPath returns the settings file location under the XDG
// config directory.
func DefaultConfigPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), appDir, "config.yaml")
}

// DefaultLogPath returns the log file location under the XDG state
// directory.
func DefaultLogPath() string {
	return filepath.Join(xdgDir("XDG_STATE_HOME", ".local", "state"), appDir, "incho.log")
}

func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(append([]string{home}, fallback...)...)
}

func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot expand ~: %w", err)
		}
		path = filepath.Join(home, path[2:])
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot expand ~: %w", err)
		}
		path = home
	}

	return filepath.Abs(path)
}

// ShortenPath is the display inverse of ExpandPath: paths under the
// home directory are shown with a ~ prefix.
func ShortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+string(filepath.Separator)) {
		return "~" + path[len(home):]
	}
	return path
}
