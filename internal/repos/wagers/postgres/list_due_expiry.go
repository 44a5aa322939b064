package wagers

import (
	"context"
	"fmt"
	"time"
)

// ListDueExpiry returns ids of waiting wagers past their deadline.
// Candidates only: the sweeper re-checks each one under a row lock, so
// a wager joined between this read and the sweep is safely skipped.
func (r *wagersRepo) ListDueExpiry(ctx context.Context, now time.Time, limit int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id
		FROM wagers
		WHERE status = 'waiting'
		  AND expires_at <= $1
		ORDER BY expires_at
		LIMIT $2
	`, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list due expiry: %w", err)
	}
	defer rows.Close()

	var ids []string

	for rows.Next() {
		var id string

		err = rows.Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}

		ids = append(ids, id)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate ids: %w", err)
	}

	return ids, nil
}
