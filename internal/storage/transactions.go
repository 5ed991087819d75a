package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"finvault/internal/core"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const txColumns = `id, user_id, amount, type, category, date, description, version, created_at, updated_at`

// StoredTransaction is a transaction with its sync bookkeeping.
type StoredTransaction struct {
	core.Transaction
	Version int64
}

// PendingSync is the minimal data the worker needs to retry a mirror.
type PendingSync struct {
	ID        string
	Version   int64
	CreatedAt time.Time
}

func scanTransaction(row rowScanner) (StoredTransaction, error) {
	var (
		t                StoredTransaction
		amount           decimal.Decimal
		typ, date        string
		created, updated string
	)
	err := row.Scan(&t.ID, &t.UserID, &amount, &typ, &t.Category, &date, &t.Description, &t.Version, &created, &updated)
	if err != nil {
		return StoredTransaction{}, err
	}
	d, err := parseStoredDate(date)
	if err != nil {
		return StoredTransaction{}, err
	}
	t.Amount = amount
	t.Type = core.TxType(typ)
	t.Date = d
	t.CreatedAt = parseTimestamp(created)
	t.UpdatedAt = parseTimestamp(updated)
	return t, nil
}

func (r *SQLiteRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	out := []core.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t.Transaction)
	}
	return out, rows.Err()
}

// CreateTransaction stores t for its owner, assigning id and timestamps. The
// row starts out pending for the sheets mirror.
func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	t.ID = uuid.NewString()
	now := r.timestamp()
	t.CreatedAt = parseTimestamp(now)
	t.UpdatedAt = t.CreatedAt

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (`+txColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		t.ID, t.UserID, t.Amount, string(t.Type), t.Category, t.Date.String(), t.Description, now, now)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", t.ID,
		"user_id", t.UserID,
		"type", t.Type,
		"amount", t.Amount.String(),
		"date", t.Date.String())

	return t, nil
}

// UpdateTransaction replaces the editable fields of the owner's transaction
// and bumps its version, re-queueing it for the mirror.
func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, t core.Transaction) (StoredTransaction, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions
		    SET amount = ?, type = ?, category = ?, date = ?, description = ?,
		        version = version + 1, sync_status = 'pending', updated_at = ?
		  WHERE id = ? AND user_id = ?`,
		t.Amount, string(t.Type), t.Category, t.Date.String(), t.Description, r.timestamp(), t.ID, t.UserID)
	if err != nil {
		return StoredTransaction{}, fmt.Errorf("update transaction: %w", err)
	}
	if err := affectedOne(res, "transaction"); err != nil {
		return StoredTransaction{}, err
	}
	return r.GetTransaction(ctx, t.UserID, t.ID)
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return affectedOne(res, "transaction")
}

// GetTransaction returns the owner's transaction by id.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, userID, id string) (StoredTransaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+txColumns+` FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	t, err := scanTransaction(row)
	if err != nil {
		return StoredTransaction{}, notFound(err, "transaction")
	}
	return t, nil
}

// GetTransactionByID is the unscoped lookup used by the worker.
func (r *SQLiteRepository) GetTransactionByID(ctx context.Context, id string) (StoredTransaction, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+txColumns+` FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if err != nil {
		return StoredTransaction{}, notFound(err, "transaction")
	}
	return t, nil
}

// ListTransactions returns the user's transactions, newest date first.
func (r *SQLiteRepository) ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT `+txColumns+` FROM transactions WHERE user_id = ? ORDER BY date DESC, created_at DESC`, userID)
}

// ListTransactionsSince is ListTransactions restricted to date >= since.
func (r *SQLiteRepository) ListTransactionsSince(ctx context.Context, userID string, since core.Date) ([]core.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT `+txColumns+` FROM transactions WHERE user_id = ? AND date >= ? ORDER BY date DESC, created_at DESC`,
		userID, since.String())
}

// GetPendingSync returns transactions not yet mirrored, oldest first.
func (r *SQLiteRepository) GetPendingSync(ctx context.Context, limit int) ([]PendingSync, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, version, created_at FROM transactions WHERE sync_status = 'pending' ORDER BY created_at LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending sync: %w", err)
	}
	defer rows.Close()

	var out []PendingSync
	for rows.Next() {
		var p PendingSync
		var created string
		if err := rows.Scan(&p.ID, &p.Version, &created); err != nil {
			return nil, fmt.Errorf("scan pending sync: %w", err)
		}
		p.CreatedAt = parseTimestamp(created)
		out = append(out, p)
	}
	return out, rows.Err()
}

// MarkSynced marks a version as mirrored. A newer version stays pending.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string, version int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_status = 'synced' WHERE id = ? AND version = ?`, id, version)
	if err != nil {
		return fmt.Errorf("mark transaction synced: %w", err)
	}
	slog.InfoContext(ctx, "Transaction marked as synced", "id", id, "version", version)
	return nil
}

func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE transactions SET sync_status = 'error' WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark transaction sync error: %w", err)
	}
	slog.WarnContext(ctx, "Transaction marked with sync error", "id", id)
	return nil
}
