// Package config loads and validates the application configuration.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/cashflow/internal/common"
)

// Storage backend names.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Configuration keys.
const (
	KeyStorageBackend = "storage.backend"
	KeyDatabasePath   = "database.path"
	KeyStorageDir     = "storage.dir"
	KeyLogLevel       = "logging.level"
	KeyLogFormat      = "logging.format"
	KeyLocale         = "display.locale"
	KeyImportRules    = "import.rules"
)

// Config is the resolved application configuration.
type Config struct {
	Backend      string
	DatabasePath string
	StorageDir   string
	LogLevel     string
	LogFormat    string
	Locale       string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyStorageBackend, BackendSQLite)
	v.SetDefault(KeyDatabasePath, filepath.Join(DataDir(), "cashflow.db"))
	v.SetDefault(KeyStorageDir, filepath.Join(DataDir(), "collections"))
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyLocale, "pt-BR")
}

// Load reads the configuration from v and validates it. Every problem is
// reported in a single error.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Backend:      strings.ToLower(strings.TrimSpace(v.GetString(KeyStorageBackend))),
		DatabasePath: ExpandPath(v.GetString(KeyDatabasePath)),
		StorageDir:   ExpandPath(v.GetString(KeyStorageDir)),
		LogLevel:     v.GetString(KeyLogLevel),
		LogFormat:    v.GetString(KeyLogFormat),
		Locale:       v.GetString(KeyLocale),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	var errs []error

	switch c.Backend {
	case BackendSQLite:
		if c.DatabasePath == "" {
			errs = append(errs, fmt.Errorf("%s is required for the sqlite backend", KeyDatabasePath))
		}
	case BackendFile:
		if c.StorageDir == "" {
			errs = append(errs, fmt.Errorf("%s is required for the file backend", KeyStorageDir))
		}
	case BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("%s must be one of sqlite, file, memory; got %q", KeyStorageBackend, c.Backend))
	}

	if _, err := common.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch c.LogFormat {
	case "console", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%s must be console, text or json; got %q", KeyLogFormat, c.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
