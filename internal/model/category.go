package model

// UnknownCategoryLabel is shown for transactions whose category no longer exists.
const UnknownCategoryLabel = "Sem categoria"

// Category classifies the purpose of income or expenses.
// Color is presentational and carried through untouched.
type Category struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Type  TransactionType `json:"type"`
	Color string          `json:"color"`
}

// CategoryInput holds the caller-supplied fields of a new category.
type CategoryInput struct {
	Name  string
	Type  TransactionType
	Color string
}

// CategoryPatch is a partial category update. Nil fields are left unchanged.
type CategoryPatch struct {
	Name  *string
	Type  *TransactionType
	Color *string
}

// Apply merges the patch into c.
func (p CategoryPatch) Apply(c Category) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	return c
}
