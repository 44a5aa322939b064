package ledger

import (
	"database/sql"
	"fmt"

	"github.com/betarena/core/internal/repos/ledger"
)

func (r *ledgerRepo) Insert(tx *sql.Tx, e *ledger.Entry) error {
	_, err := tx.Exec(`
		INSERT INTO ledger_entries (id, user_id, type, amount, status, wager_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.ID, e.UserID, e.Type, e.Amount, e.Status, nullable(e.WagerID), e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}

	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
