package storage

import (
	"context"
	"fmt"

	"finvault/internal/core"

	"github.com/google/uuid"
)

const goalColumns = `id, user_id, name, target_amount, current_amount, deadline, created_at, updated_at`

func scanGoal(row rowScanner) (core.Goal, error) {
	var g core.Goal
	var deadline, created, updated string
	if err := row.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &deadline, &created, &updated); err != nil {
		return core.Goal{}, err
	}
	d, err := parseStoredDate(deadline)
	if err != nil {
		return core.Goal{}, err
	}
	g.Deadline = d
	g.CreatedAt = parseTimestamp(created)
	g.UpdatedAt = parseTimestamp(updated)
	return g, nil
}

// ListGoals returns the user's goals, nearest deadline first.
func (r *SQLiteRepository) ListGoals(ctx context.Context, userID string) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE user_id = ? ORDER BY deadline ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	out := []core.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	g.ID = uuid.NewString()
	now := r.timestamp()
	g.CreatedAt = parseTimestamp(now)
	g.UpdatedAt = g.CreatedAt
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (`+goalColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.UserID, g.Name, g.TargetAmount, g.CurrentAmount, g.Deadline.String(), now, now)
	if err != nil {
		return core.Goal{}, fmt.Errorf("insert goal: %w", err)
	}
	return g, nil
}

func (r *SQLiteRepository) UpdateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE goals SET name = ?, target_amount = ?, current_amount = ?, deadline = ?, updated_at = ?
		  WHERE id = ? AND user_id = ?`,
		g.Name, g.TargetAmount, g.CurrentAmount, g.Deadline.String(), r.timestamp(), g.ID, g.UserID)
	if err != nil {
		return core.Goal{}, fmt.Errorf("update goal: %w", err)
	}
	if err := affectedOne(res, "goal"); err != nil {
		return core.Goal{}, err
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = ?`, g.ID)
	updated, err := scanGoal(row)
	if err != nil {
		return core.Goal{}, notFound(err, "goal")
	}
	return updated, nil
}

func (r *SQLiteRepository) DeleteGoal(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return affectedOne(res, "goal")
}
