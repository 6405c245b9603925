package model

// Built-in expense type identifiers.
const (
	ExpenseTypeNormal  = "normal"
	ExpenseTypeReserve = "reserva"
	ExpenseTypeRefund  = "devolucao"
)

// UnknownExpenseTypeLabel is shown for expenses whose type cannot be resolved.
const UnknownExpenseTypeLabel = "Normal"

// ExpenseType is a secondary classification applied only to expenses.
type ExpenseType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	IsDefault   bool   `json:"isDefault"`
}

// ExpenseTypeInput holds the caller-supplied fields of a new expense type.
type ExpenseTypeInput struct {
	Name        string
	Description string
	Color       string
}

// ExpenseTypePatch is a partial expense type update. IsDefault is not patchable.
type ExpenseTypePatch struct {
	Name        *string
	Description *string
	Color       *string
}

// Apply merges the patch into et.
func (p ExpenseTypePatch) Apply(et ExpenseType) ExpenseType {
	if p.Name != nil {
		et.Name = *p.Name
	}
	if p.Description != nil {
		et.Description = *p.Description
	}
	if p.Color != nil {
		et.Color = *p.Color
	}
	return et
}
