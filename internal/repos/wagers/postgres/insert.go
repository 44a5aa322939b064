package wagers

import (
	"database/sql"
	"fmt"

	"github.com/betarena/core/internal/repos/wagers"
)

func (r *wagersRepo) Insert(tx *sql.Tx, w *wagers.Wager) error {
	_, err := tx.Exec(`
		INSERT INTO wagers (
			id, invite_code, event_type, event_title, event_description,
			event_id, side, side_name, amount,
			creator_id, status, created_at, expires_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		w.ID, w.InviteCode, w.EventType, w.EventTitle, w.EventDescription,
		nullable(w.EventID), nullable(string(w.Side)), nullable(w.SideName), w.Amount,
		w.CreatorID, w.Status, w.CreatedAt, w.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("insert wager: %w", err)
	}

	return nil
}
