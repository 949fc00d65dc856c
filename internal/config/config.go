// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultCurrency is used when no display currency is configured.
const DefaultCurrency = "USD"

// DatabasePath returns the configured SQLite database path, expanded.
func DatabasePath() (string, error) {
	path := viper.GetString("database.path")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, ".local", "share", "outlay", "outlay.db")
	}
	return ExpandPath(path), nil
}

// SnapshotPath returns the path of the shared widget snapshot file, expanded.
func SnapshotPath() (string, error) {
	path := viper.GetString("snapshot.path")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, ".local", "share", "outlay", "widget.json")
	}
	return ExpandPath(path), nil
}

// Currency returns the configured display currency code. The code is a
// display-time concern only; stored amounts are currency-agnostic.
func Currency() string {
	currency := strings.TrimSpace(viper.GetString("currency"))
	if currency == "" {
		return DefaultCurrency
	}
	return strings.ToUpper(currency)
}

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	// First expand tilde if present
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	// Then expand environment variables
	return os.ExpandEnv(path)
}
