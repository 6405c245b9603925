package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/cashflow/internal/common"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)

	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, filepath.Join("/data", "cashflow", "cashflow.db"), cfg.DatabasePath)
	assert.Equal(t, "pt-BR", cfg.Locale)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "storage:\n  backend: file\n  dir: $CASHFLOW_TEST_DIR/json\nlogging:\n  level: debug\n  format: json\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	t.Setenv("CASHFLOW_TEST_DIR", dir)

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)

	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, filepath.Join(dir, "json"), cfg.StorageDir)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestValidateAggregatesProblems(t *testing.T) {
	cfg := &Config{Backend: "postgres", LogLevel: "loud", LogFormat: "xml"}

	err := cfg.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "storage.backend")
	assert.Contains(t, err.Error(), "loud")
	assert.Contains(t, err.Error(), "logging.format")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("CASHFLOW_X", "value")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "tilde", in: "~", want: home},
		{name: "tilde prefix", in: "~/db.sqlite", want: filepath.Join(home, "db.sqlite")},
		{name: "env var", in: "/tmp/$CASHFLOW_X", want: "/tmp/value"},
		{name: "plain", in: "/var/lib/cashflow.db", want: "/var/lib/cashflow.db"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
