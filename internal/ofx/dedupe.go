package ofx

import (
	"strings"

	"github.com/Veraticus/cashflow/internal/model"
)

type fingerprint struct {
	date        string
	amount      string
	description string
	kind        model.TransactionType
}

func fingerprintOf(date model.Date, amount, description string, kind model.TransactionType) fingerprint {
	return fingerprint{
		date:        date.String(),
		amount:      amount,
		description: strings.ToLower(strings.TrimSpace(description)),
		kind:        kind,
	}
}

// Deduplicate drops entries already present in existing or repeated within
// entries. Transactions keep no statement id, so a match is the same day,
// amount, type and description. Entries with the same FITID in one batch
// count as repeats too.
func Deduplicate(entries []Entry, existing []model.Transaction) (fresh []Entry, skipped int) {
	seen := make(map[fingerprint]int, len(existing))
	for _, t := range existing {
		seen[fingerprintOf(t.Date, t.Amount.StringFixed(2), t.Description, t.Type)]++
	}
	fitIDs := make(map[string]bool, len(entries))

	for _, e := range entries {
		key := fingerprintOf(e.Input.Date, e.Input.Amount.StringFixed(2), e.Input.Description, e.Input.Type)
		fitKey := e.AccountID + "/" + e.FitID
		if seen[key] > 0 || (e.FitID != "" && fitIDs[fitKey]) {
			if seen[key] > 0 {
				seen[key]--
			}
			skipped++
			continue
		}
		if e.FitID != "" {
			fitIDs[fitKey] = true
		}
		fresh = append(fresh, e)
	}
	return fresh, skipped
}

// Inputs returns the transaction inputs of entries.
func Inputs(entries []Entry) []model.TransactionInput {
	inputs := make([]model.TransactionInput, len(entries))
	for i, e := range entries {
		inputs[i] = e.Input
	}
	return inputs
}
