package config

import (
	"os"
	"path/filepath"
)

const appDirName = ".foreman"

// DataDir returns the base data directory for Foreman.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}

// TokenPath returns the path to the stored session token file.
func TokenPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "token"), nil
}

// StateDBPath returns the path to the persisted UI state database.
func StateDBPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "state.db"), nil
}

// ConfigPath returns the path to the settings file.
func ConfigPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "config.toml"), nil
}

// UILogPath returns the path the UI logs to while it owns the terminal.
func UILogPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "ui.log"), nil
}

// DefaultDownloadsDir returns where fetched source documents are saved when
// the settings file does not name a directory.
func DefaultDownloadsDir() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "downloads"), nil
}
