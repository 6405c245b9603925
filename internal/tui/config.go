package tui

import (
	"time"

	"github.com/Veraticus/cashflow/internal/cli"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/Veraticus/cashflow/internal/tui/themes"
)

// Config carries the dashboard settings chosen through Options.
type Config struct {
	Theme     themes.Theme
	Formatter *cli.Formatter
	Today     func() model.Date
	Period    model.Period
	Width     int
	Height    int
	AltScreen bool
}

// Option adjusts a Config.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Formatter: cli.DefaultFormatter(),
		Today:     func() model.Date { return model.DateOf(time.Now()) },
		Width:     100,
		Height:    30,
		AltScreen: true,
	}
}

// WithTheme selects the color scheme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithFormatter sets how amounts, dates and months are shown.
func WithFormatter(f *cli.Formatter) Option {
	return func(c *Config) {
		if f != nil {
			c.Formatter = f
		}
	}
}

// WithToday fixes the day used for deadline status.
func WithToday(today func() model.Date) Option {
	return func(c *Config) {
		if today != nil {
			c.Today = today
		}
	}
}

// WithPeriod sets the initial period selection.
func WithPeriod(p model.Period) Option {
	return func(c *Config) {
		c.Period = p
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithAltScreen controls whether the dashboard takes over the whole terminal.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}
