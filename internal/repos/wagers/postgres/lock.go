package wagers

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/betarena/core/internal/repos/wagers"
)

// LockByID reads a wager under FOR UPDATE so every status transition on
// it serializes against concurrent joins, settlements and sweeps.
func (r *wagersRepo) LockByID(tx *sql.Tx, id string) (*wagers.Wager, error) {
	w, err := scanWager(tx.QueryRow(`
		SELECT `+wagerColumns+`
		FROM wagers
		WHERE id = $1
		FOR UPDATE
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, wagers.ErrWagerNotFound
		}

		return nil, fmt.Errorf("lock wager: %w", err)
	}

	return w, nil
}

func (r *wagersRepo) LockByInvite(tx *sql.Tx, code string) (*wagers.Wager, error) {
	w, err := scanWager(tx.QueryRow(`
		SELECT `+wagerColumns+`
		FROM wagers
		WHERE invite_code = $1
		FOR UPDATE
	`, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, wagers.ErrWagerNotFound
		}

		return nil, fmt.Errorf("lock wager by invite: %w", err)
	}

	return w, nil
}
