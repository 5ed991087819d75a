package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"finvault/internal/core"
)

func TestStore_UpsertRemove(t *testing.T) {
	ctx := context.Background()
	s := New()
	tx := core.Transaction{ID: "t1", UserID: "u1", Amount: decimal.RequireFromString("12.5"), Type: core.Expense, Category: "Food", Date: core.NewDate(2025, 6, 1)}

	ref, err := s.Upsert(ctx, tx)
	if err != nil || ref != "mem:2" {
		t.Fatalf("Upsert = %q, %v", ref, err)
	}
	tx.Category = "Groceries"
	if _, err := s.Upsert(ctx, tx); err != nil {
		t.Fatal(err)
	}
	rows := s.Rows()
	if len(rows) != 1 || rows[0][3] != "Groceries" || rows[0][4] != "12.50" {
		t.Fatalf("rows = %v", rows)
	}

	if err := s.Remove(ctx, "t1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Remove(ctx, "missing"); err != nil {
		t.Errorf("Remove(missing) = %v, want nil", err)
	}
	if len(s.Rows()) != 0 {
		t.Errorf("rows after remove = %v", s.Rows())
	}
	if _, err := s.Upsert(ctx, core.Transaction{}); err == nil {
		t.Error("Upsert with empty id succeeded")
	}
}
