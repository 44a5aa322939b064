package wagers

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/betarena/core/internal/repos/wagers"
)

// Status transitions are conditional UPDATEs guarded by the expected
// current status. A zero rows-affected result means another transition
// won the race and maps to ErrStateConflict.

func (r *wagersRepo) SetActive(tx *sql.Tx, id, opponentID string, now time.Time) error {
	res, err := tx.Exec(`
		UPDATE wagers
		SET status = 'active', opponent_id = $2
		WHERE id = $1
		  AND status = 'waiting'
		  AND expires_at > $3
	`, id, opponentID, now)
	if err != nil {
		return fmt.Errorf("set active: %w", err)
	}

	return oneRow(res)
}

func (r *wagersRepo) SetCompleted(tx *sql.Tx, id, winnerID string, now time.Time) error {
	res, err := tx.Exec(`
		UPDATE wagers
		SET status = 'completed', winner_id = $2, completed_at = $3
		WHERE id = $1
		  AND status = 'active'
	`, id, winnerID, now)
	if err != nil {
		return fmt.Errorf("set completed: %w", err)
	}

	return oneRow(res)
}

func (r *wagersRepo) SetExpired(tx *sql.Tx, id string, now time.Time) error {
	res, err := tx.Exec(`
		UPDATE wagers
		SET status = 'expired'
		WHERE id = $1
		  AND status = 'waiting'
		  AND expires_at <= $2
	`, id, now)
	if err != nil {
		return fmt.Errorf("set expired: %w", err)
	}

	return oneRow(res)
}

func (r *wagersRepo) SetCancelled(tx *sql.Tx, id string) error {
	res, err := tx.Exec(`
		UPDATE wagers
		SET status = 'cancelled'
		WHERE id = $1
		  AND status = 'waiting'
	`, id)
	if err != nil {
		return fmt.Errorf("set cancelled: %w", err)
	}

	return oneRow(res)
}

func oneRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return wagers.ErrStateConflict
	}

	return nil
}
