package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/betarena/core/internal/repos/ledger"
)

func (r *ledgerRepo) ListByUser(ctx context.Context, userID string) ([]ledger.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, type, amount, status, wager_id, created_at
		FROM ledger_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var out []ledger.Entry

	for rows.Next() {
		var (
			e       ledger.Entry
			wagerID sql.NullString
		)

		err = rows.Scan(&e.ID, &e.UserID, &e.Type, &e.Amount, &e.Status, &wagerID, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}

		e.WagerID = wagerID.String

		out = append(out, e)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate ledger entries: %w", err)
	}

	return out, nil
}
