package wagers

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/betarena/core/internal/repos/wagers"
)

// FindOpenMatch locks the earliest waiting wager on the same event with
// the given side and stake, skipping the creator's own wagers and ones
// already past their deadline. Both sides always stake the same amount,
// so the stake is part of the match key. SKIP LOCKED keeps concurrent
// creators from queueing on the same candidate; each grabs the next one
// in FIFO order instead.
func (r *wagersRepo) FindOpenMatch(tx *sql.Tx, eventID string, side wagers.Side, amount int64, excludeCreator string, now time.Time) (*wagers.Wager, error) {
	w, err := scanWager(tx.QueryRow(`
		SELECT `+wagerColumns+`
		FROM wagers
		WHERE event_id = $1
		  AND side = $2
		  AND amount = $3
		  AND status = 'waiting'
		  AND creator_id <> $4
		  AND expires_at > $5
		ORDER BY created_at
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	`, eventID, side, amount, excludeCreator, now))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, wagers.ErrNoOpenMatch
		}

		return nil, fmt.Errorf("find open match: %w", err)
	}

	return w, nil
}
