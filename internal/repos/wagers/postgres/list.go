package wagers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/betarena/core/internal/repos/wagers"
)

func (r *wagersRepo) ListAll(ctx context.Context) ([]wagers.Wager, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+wagerColumns+`
		FROM wagers
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list wagers: %w", err)
	}

	return collect(rows)
}

// ListWaiting returns the open market: waiting wagers whose deadline
// has not passed yet. Wagers already due are left to the sweeper.
func (r *wagersRepo) ListWaiting(ctx context.Context, now time.Time) ([]wagers.Wager, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+wagerColumns+`
		FROM wagers
		WHERE status = 'waiting'
		  AND expires_at > $1
		ORDER BY created_at DESC
	`, now)
	if err != nil {
		return nil, fmt.Errorf("list waiting wagers: %w", err)
	}

	return collect(rows)
}

func (r *wagersRepo) ListByUser(ctx context.Context, userID string) ([]wagers.Wager, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+wagerColumns+`
		FROM wagers
		WHERE creator_id = $1
		   OR opponent_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list wagers by user: %w", err)
	}

	return collect(rows)
}

func collect(rows *sql.Rows) ([]wagers.Wager, error) {
	defer rows.Close()

	var out []wagers.Wager

	for rows.Next() {
		w, err := scanWager(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wager: %w", err)
		}

		out = append(out, *w)
	}

	err := rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate wagers: %w", err)
	}

	return out, nil
}
