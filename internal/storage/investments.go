package storage

import (
	"context"
	"fmt"

	"finvault/internal/core"

	"github.com/google/uuid"
)

const investmentColumns = `id, user_id, name, type, amount, current_value, purchase_date, created_at, updated_at`

func scanInvestment(row rowScanner) (core.Investment, error) {
	var i core.Investment
	var purchased, created, updated string
	if err := row.Scan(&i.ID, &i.UserID, &i.Name, &i.Type, &i.Amount, &i.CurrentValue, &purchased, &created, &updated); err != nil {
		return core.Investment{}, err
	}
	d, err := parseStoredDate(purchased)
	if err != nil {
		return core.Investment{}, err
	}
	i.PurchaseDate = d
	i.CreatedAt = parseTimestamp(created)
	i.UpdatedAt = parseTimestamp(updated)
	return i, nil
}

// ListInvestments returns the user's holdings, most recent purchase first.
func (r *SQLiteRepository) ListInvestments(ctx context.Context, userID string) ([]core.Investment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+investmentColumns+` FROM investments WHERE user_id = ? ORDER BY purchase_date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	defer rows.Close()

	out := []core.Investment{}
	for rows.Next() {
		i, err := scanInvestment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan investment: %w", err)
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateInvestment(ctx context.Context, i core.Investment) (core.Investment, error) {
	i.ID = uuid.NewString()
	now := r.timestamp()
	i.CreatedAt = parseTimestamp(now)
	i.UpdatedAt = i.CreatedAt
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO investments (`+investmentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		i.ID, i.UserID, i.Name, i.Type, i.Amount, i.CurrentValue, i.PurchaseDate.String(), now, now)
	if err != nil {
		return core.Investment{}, fmt.Errorf("insert investment: %w", err)
	}
	return i, nil
}

func (r *SQLiteRepository) UpdateInvestment(ctx context.Context, i core.Investment) (core.Investment, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE investments SET name = ?, type = ?, amount = ?, current_value = ?, purchase_date = ?, updated_at = ?
		  WHERE id = ? AND user_id = ?`,
		i.Name, i.Type, i.Amount, i.CurrentValue, i.PurchaseDate.String(), r.timestamp(), i.ID, i.UserID)
	if err != nil {
		return core.Investment{}, fmt.Errorf("update investment: %w", err)
	}
	if err := affectedOne(res, "investment"); err != nil {
		return core.Investment{}, err
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+investmentColumns+` FROM investments WHERE id = ?`, i.ID)
	updated, err := scanInvestment(row)
	if err != nil {
		return core.Investment{}, notFound(err, "investment")
	}
	return updated, nil
}

func (r *SQLiteRepository) DeleteInvestment(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM investments WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete investment: %w", err)
	}
	return affectedOne(res, "investment")
}
