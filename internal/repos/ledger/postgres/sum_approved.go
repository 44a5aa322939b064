package ledger

import (
	"context"
	"fmt"
)

// SumApproved recomputes a balance from first principles: the signed
// sum of all approved entries. Used to audit the users.balance
// projection, not on any request path.
func (r *ledgerRepo) SumApproved(ctx context.Context, userID string) (int64, error) {
	var sum int64

	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(
			CASE WHEN type IN ('deposit', 'bet_credit') THEN amount ELSE -amount END
		), 0)
		FROM ledger_entries
		WHERE user_id = $1
		  AND status = 'approved'
	`, userID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum approved entries: %w", err)
	}

	return sum, nil
}
