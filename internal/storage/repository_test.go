package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"finvault/internal/core"

	"github.com/shopspring/decimal"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "data", "finvault.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func newTestUser(t *testing.T, repo *SQLiteRepository, email string) core.User {
	t.Helper()
	u, err := repo.CreateUser(context.Background(), core.User{Name: "Asha", Email: email, PasswordHash: "x"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	u := newTestUser(t, repo, " Asha@Example.com ")
	if u.ID == "" || u.Email != "asha@example.com" {
		t.Fatalf("CreateUser = %+v, want id and normalized email", u)
	}

	if _, err := repo.CreateUser(ctx, core.User{Name: "Dup", Email: "ASHA@example.com", PasswordHash: "y"}); !errors.Is(err, core.ErrConflict) {
		t.Errorf("duplicate CreateUser err = %v, want ErrConflict", err)
	}

	got, err := repo.GetUserByEmail(ctx, "asha@EXAMPLE.com")
	if err != nil || got.ID != u.ID {
		t.Errorf("GetUserByEmail = %+v, %v; want id %s", got, err, u.ID)
	}
	if _, err := repo.GetUser(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("GetUser(missing) err = %v, want ErrNotFound", err)
	}

	users, err := repo.ListUsers(ctx)
	if err != nil || len(users) != 1 {
		t.Errorf("ListUsers = %d users, %v; want 1", len(users), err)
	}
}

func TestTransactionsLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	u := newTestUser(t, repo, "a@example.com")
	other := newTestUser(t, repo, "b@example.com")

	mk := func(amount string, day int) core.Transaction {
		return core.Transaction{
			UserID:   u.ID,
			Amount:   decimal.RequireFromString(amount),
			Type:     core.Expense,
			Category: "Food",
			Date:     core.NewDate(2025, 6, day),
		}
	}

	first, err := repo.CreateTransaction(ctx, mk("12.50", 1))
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if _, err := repo.CreateTransaction(ctx, mk("99", 10)); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	list, err := repo.ListTransactions(ctx, u.ID)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(list) != 2 || list[0].Date.String() != "2025-06-10" {
		t.Fatalf("ListTransactions = %+v, want 2 newest first", list)
	}
	if !list[1].Amount.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("amount round trip = %s, want 12.5", list[1].Amount)
	}

	since, err := repo.ListTransactionsSince(ctx, u.ID, core.NewDate(2025, 6, 5))
	if err != nil || len(since) != 1 {
		t.Errorf("ListTransactionsSince = %d, %v; want 1", len(since), err)
	}

	if seen, _ := repo.ListTransactions(ctx, other.ID); len(seen) != 0 {
		t.Errorf("other user sees %d transactions, want 0", len(seen))
	}

	upd := first
	upd.Amount = decimal.NewFromInt(20)
	upd.Type = core.Income
	saved, err := repo.UpdateTransaction(ctx, upd)
	if err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}
	if saved.Type != core.Income || !saved.Amount.Equal(decimal.NewFromInt(20)) {
		t.Errorf("UpdateTransaction = %+v", saved)
	}
	stored, _ := repo.GetTransactionByID(ctx, first.ID)
	if stored.Version != 2 {
		t.Errorf("version = %d, want 2", stored.Version)
	}

	upd.UserID = other.ID
	if _, err := repo.UpdateTransaction(ctx, upd); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("cross-user update err = %v, want ErrNotFound", err)
	}
	if err := repo.DeleteTransaction(ctx, other.ID, first.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("cross-user delete err = %v, want ErrNotFound", err)
	}
	if err := repo.DeleteTransaction(ctx, u.ID, first.ID); err != nil {
		t.Errorf("DeleteTransaction: %v", err)
	}
	if _, err := repo.GetTransaction(ctx, u.ID, first.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("GetTransaction after delete err = %v, want ErrNotFound", err)
	}
}

func TestPendingSync(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	u := newTestUser(t, repo, "a@example.com")

	tx, err := repo.CreateTransaction(ctx, core.Transaction{
		UserID: u.ID, Amount: decimal.NewFromInt(5), Type: core.Expense, Category: "Fun", Date: core.NewDate(2025, 1, 2),
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	pending, err := repo.GetPendingSync(ctx, 10)
	if err != nil || len(pending) != 1 || pending[0].ID != tx.ID || pending[0].Version != 1 {
		t.Fatalf("GetPendingSync = %+v, %v", pending, err)
	}

	// a stale version does not clear a newer edit
	if _, err := repo.UpdateTransaction(ctx, tx); err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}
	if err := repo.MarkSynced(ctx, tx.ID, 1); err != nil {
		t.Fatalf("MarkSynced: %v", err)
	}
	if pending, _ := repo.GetPendingSync(ctx, 10); len(pending) != 1 {
		t.Errorf("pending after stale MarkSynced = %d, want 1", len(pending))
	}

	if err := repo.MarkSynced(ctx, tx.ID, 2); err != nil {
		t.Fatalf("MarkSynced: %v", err)
	}
	if pending, _ := repo.GetPendingSync(ctx, 10); len(pending) != 0 {
		t.Errorf("pending after MarkSynced = %d, want 0", len(pending))
	}
}

func TestTaxProfileUpsert(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	u := newTestUser(t, repo, "a@example.com")

	if _, err := repo.GetTaxProfile(ctx, u.ID, "2025-26"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("GetTaxProfile on empty db err = %v, want ErrNotFound", err)
	}

	p := core.NewTaxProfile(u.ID, "2025-26")
	p.GrossIncome = decimal.NewFromInt(1200000)
	p.Deductions.Section80C = decimal.NewFromInt(150000)
	if _, err := repo.UpsertTaxProfile(ctx, p); err != nil {
		t.Fatalf("UpsertTaxProfile: %v", err)
	}
	p.GrossIncome = decimal.NewFromInt(1300000)
	if _, err := repo.UpsertTaxProfile(ctx, p); err != nil {
		t.Fatalf("UpsertTaxProfile (update): %v", err)
	}

	got, err := repo.GetTaxProfile(ctx, u.ID, "2025-26")
	if err != nil {
		t.Fatalf("GetTaxProfile: %v", err)
	}
	if !got.GrossIncome.Equal(decimal.NewFromInt(1300000)) || !got.Deductions.Section80C.Equal(decimal.NewFromInt(150000)) {
		t.Errorf("GetTaxProfile = %+v", got)
	}
	if !got.Deductions.HRA.IsZero() {
		t.Errorf("HRA = %s, want 0", got.Deductions.HRA)
	}
}

func TestGoalsAndInvestments(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	u := newTestUser(t, repo, "a@example.com")

	late, err := repo.CreateGoal(ctx, core.Goal{UserID: u.ID, Name: "House", TargetAmount: decimal.NewFromInt(500000), Deadline: core.NewDate(2030, 1, 1)})
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}
	if _, err := repo.CreateGoal(ctx, core.Goal{UserID: u.ID, Name: "Trip", TargetAmount: decimal.NewFromInt(50000), Deadline: core.NewDate(2026, 1, 1)}); err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}
	goals, err := repo.ListGoals(ctx, u.ID)
	if err != nil || len(goals) != 2 || goals[0].Name != "Trip" {
		t.Fatalf("ListGoals = %+v, %v; want Trip first", goals, err)
	}
	late.CurrentAmount = decimal.NewFromInt(1000)
	if g, err := repo.UpdateGoal(ctx, late); err != nil || !g.CurrentAmount.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("UpdateGoal = %+v, %v", g, err)
	}
	if err := repo.DeleteGoal(ctx, u.ID, "nope"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("DeleteGoal(nope) err = %v, want ErrNotFound", err)
	}

	inv, err := repo.CreateInvestment(ctx, core.Investment{
		UserID: u.ID, Name: "Nifty", Type: "index_fund",
		Amount: decimal.NewFromInt(1000), CurrentValue: decimal.NewFromInt(1100), PurchaseDate: core.NewDate(2024, 4, 1),
	})
	if err != nil {
		t.Fatalf("CreateInvestment: %v", err)
	}
	inv.CurrentValue = decimal.NewFromInt(1200)
	if _, err := repo.UpdateInvestment(ctx, inv); err != nil {
		t.Fatalf("UpdateInvestment: %v", err)
	}
	list, err := repo.ListInvestments(ctx, u.ID)
	if err != nil || len(list) != 1 || !list[0].CurrentValue.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("ListInvestments = %+v, %v", list, err)
	}
	if err := repo.DeleteInvestment(ctx, u.ID, inv.ID); err != nil {
		t.Errorf("DeleteInvestment: %v", err)
	}
}
