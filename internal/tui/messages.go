package tui

import "github.com/Veraticus/cashflow/internal/model"

// snapshotLoadedMsg carries fresh data from the ledger.
type snapshotLoadedMsg struct {
	snapshot model.Snapshot
}

// errorMsg reports a failed reload. The last good snapshot stays on screen.
type errorMsg struct {
	err error
}
