package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/cashflow/internal/model"
)

// Source is the data the dashboard reads. *ledger.Ledger satisfies it.
type Source interface {
	Snapshot() model.Snapshot
	Reload(ctx context.Context)
}

// loadSnapshot returns the current snapshot without touching storage.
func loadSnapshot(src Source) tea.Cmd {
	return func() tea.Msg {
		return snapshotLoadedMsg{snapshot: src.Snapshot()}
	}
}

// reloadSnapshot rereads storage before taking a snapshot.
func reloadSnapshot(ctx context.Context, src Source) tea.Cmd {
	return func() tea.Msg {
		src.Reload(ctx)
		if err := ctx.Err(); err != nil {
			return errorMsg{err: err}
		}
		return snapshotLoadedMsg{snapshot: src.Snapshot()}
	}
}
