package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoSource is returned when Run is called without a data source.
var ErrNoSource = errors.New("dashboard needs a data source")

// Run starts the interactive dashboard and blocks until the user quits or
// ctx is canceled.
func Run(ctx context.Context, src Source, opts ...Option) error {
	if src == nil {
		return ErrNoSource
	}

	m := New(ctx, src, opts...)
	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if m.config.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	if _, err := tea.NewProgram(m, programOpts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
