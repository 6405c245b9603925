package config

import (
	"os"
	"path/filepath"
	"strings"
)

const appDir = "cashflow"

// DataDir returns the default directory for application data.
func DataDir() string {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// ConfigDir returns the default directory searched for config.yaml.
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// xdgDir resolves the application directory under the XDG variable env, or
// under the given path below the home directory when env is unset.
func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, appDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(append(append([]string{home}, fallback...), appDir)...)
}

// ExpandPath resolves a leading ~ to the home directory and substitutes
// $VAR references. Paths from config files and the environment go through
// it before use.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + strings.TrimPrefix(path, "~")
		}
	}
	return os.ExpandEnv(path)
}
