package sheets

import (
	"context"

	"finvault/internal/core"
)

// TransactionMirror keeps an external copy of the ledger, one row per
// transaction keyed by its id.
type TransactionMirror interface {
	// Upsert writes t, replacing any row already holding t.ID.
	Upsert(ctx context.Context, t core.Transaction) (rowRef string, err error)
	// Remove deletes the row for id. A missing row is not an error.
	Remove(ctx context.Context, id string) error
}

// Header is the first row of a mirror sheet.
var Header = []any{"ID", "Date", "Type", "Category", "Amount", "Description", "User"}

// Row renders t in Header column order.
func Row(t core.Transaction) []any {
	return []any{t.ID, t.Date.String(), string(t.Type), t.Category, t.Amount.StringFixed(2), t.Description, t.UserID}
}
