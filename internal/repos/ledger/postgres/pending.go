package ledger

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/betarena/core/internal/repos/ledger"
)

// ApprovePending flips one pending entry to approved and returns it.
// The status guard in the WHERE clause makes repeat approvals fail with
// ErrNotPending instead of crediting twice.
func (r *ledgerRepo) ApprovePending(tx *sql.Tx, id string) (*ledger.Entry, error) {
	var (
		e       ledger.Entry
		wagerID sql.NullString
	)

	err := tx.QueryRow(`
		UPDATE ledger_entries
		SET status = 'approved'
		WHERE id = $1
		  AND status = 'pending'
		RETURNING id, user_id, type, amount, status, wager_id, created_at
	`, id).Scan(&e.ID, &e.UserID, &e.Type, &e.Amount, &e.Status, &wagerID, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, r.pendingConflict(tx, id)
		}

		return nil, fmt.Errorf("approve ledger entry: %w", err)
	}

	e.WagerID = wagerID.String

	return &e, nil
}

func (r *ledgerRepo) RejectPending(tx *sql.Tx, id string) error {
	res, err := tx.Exec(`
		UPDATE ledger_entries
		SET status = 'rejected'
		WHERE id = $1
		  AND status = 'pending'
	`, id)
	if err != nil {
		return fmt.Errorf("reject ledger entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return r.pendingConflict(tx, id)
	}

	return nil
}

// pendingConflict distinguishes "no such entry" from "entry already
// transitioned" for callers mapping errors to HTTP statuses.
func (r *ledgerRepo) pendingConflict(tx *sql.Tx, id string) error {
	var exists bool

	err := tx.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM ledger_entries WHERE id = $1)
	`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check entry exists: %w", err)
	}

	if !exists {
		return ledger.ErrEntryNotFound
	}

	return ledger.ErrNotPending
}
