package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/michaeljabbour/letsyolo/internal/branding"
)

// File names inside the letsyolo home directory.
const (
	SecretsFile = "secrets.env"
	ConfigFile  = "config.yaml"
)

// Permission constants.
const (
	DirPermSecure  os.FileMode = 0700
	FilePermSecure os.FileMode = 0600
)

// GetUserHome returns the user's home directory.
func GetUserHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return home, nil
}

// GetRoot returns the letsyolo home directory. LETSYOLO_HOME wins over
// ~/.letsyolo.
func GetRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v, nil
	}
	home, err := GetUserHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// GetSecretsPath returns the path of the secrets file.
func GetSecretsPath() (string, error) {
	root, err := GetRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, SecretsFile), nil
}

// GetConfigPath returns the path of config.yaml.
func GetConfigPath() (string, error) {
	root, err := GetRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, ConfigFile), nil
}
