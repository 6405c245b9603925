package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/cashflow/internal/cli"
	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/config"
	"github.com/Veraticus/cashflow/internal/ledger"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/Veraticus/cashflow/internal/service"
	"github.com/Veraticus/cashflow/internal/storage"
)

// app carries what every command needs: configuration, the opened storage
// and the ledger on top of it. Storage is opened lazily and only once.
type app struct {
	v         *viper.Viper
	cfg       *config.Config
	format    *cli.Formatter
	backend   service.Backend
	store     *storage.Collections
	ledger    *ledger.Ledger
	today     *model.Date
	cfgFile   string
	todayFlag string
}

func newApp(v *viper.Viper) *app {
	config.SetDefaults(v)
	return &app{v: v}
}

func (a *app) initConfig(_ *cobra.Command, _ []string) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(config.ConfigDir())
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix("CASHFLOW")
	a.v.SetEnvKeyReplacer(envKeyReplacer)
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := setupLogging(cfg); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	format, err := cli.NewFormatter(cfg.Locale)
	if err != nil {
		return err
	}
	a.format = format

	if a.todayFlag != "" {
		d, err := parseDate(a.todayFlag)
		if err != nil {
			return fmt.Errorf("invalid --today: %w", err)
		}
		a.today = &d
	}
	return nil
}

func setupLogging(cfg *config.Config) error {
	level, err := common.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	return common.SetupLogger(level, cfg.LogFormat)
}

// now is the wall clock, or noon of --today when it is set.
func (a *app) now() time.Time {
	if a.today != nil {
		return a.today.Add(12 * time.Hour)
	}
	return time.Now()
}

func (a *app) currentDay() model.Date {
	return model.DateOf(a.now())
}

// initStorage opens the configured backend. SQLite databases are migrated
// to the current schema first.
func (a *app) initStorage(ctx context.Context) (*storage.Collections, error) {
	if a.store != nil {
		return a.store, nil
	}

	backend, err := openBackend(ctx, a.cfg)
	if err != nil {
		return nil, err
	}
	a.backend = backend
	a.store = storage.NewCollections(backend)
	return a.store, nil
}

func openBackend(ctx context.Context, cfg *config.Config) (service.Backend, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return storage.NewFileStorage(cfg.StorageDir)
	case config.BackendMemory:
		return storage.NewMemoryStorage(), nil
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		db, err := storage.NewSQLiteStorage(cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return db, nil
	}
}

func (a *app) openLedger(ctx context.Context) (*ledger.Ledger, error) {
	if a.ledger != nil {
		return a.ledger, nil
	}
	store, err := a.initStorage(ctx)
	if err != nil {
		return nil, err
	}
	l, err := ledger.Open(ctx, store, ledger.WithClock(a.now))
	if err != nil {
		return nil, err
	}
	a.ledger = l
	return l, nil
}

func (a *app) close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
	a.store = nil
	a.backend = nil
	a.ledger = nil
}
