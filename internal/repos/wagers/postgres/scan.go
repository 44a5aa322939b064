package wagers

import (
	"database/sql"

	"github.com/betarena/core/internal/repos/wagers"
)

const wagerColumns = `
	id, invite_code, event_type, event_title, event_description,
	event_id, side, side_name, amount,
	creator_id, opponent_id, winner_id,
	status, created_at, expires_at, completed_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanWager maps one wagers row; NULL columns become zero values,
// completed_at stays a pointer.
func scanWager(row rowScanner) (*wagers.Wager, error) {
	var (
		w           wagers.Wager
		eventID     sql.NullString
		side        sql.NullString
		sideName    sql.NullString
		opponentID  sql.NullString
		winnerID    sql.NullString
		completedAt sql.NullTime
	)

	err := row.Scan(
		&w.ID, &w.InviteCode, &w.EventType, &w.EventTitle, &w.EventDescription,
		&eventID, &side, &sideName, &w.Amount,
		&w.CreatorID, &opponentID, &winnerID,
		&w.Status, &w.CreatedAt, &w.ExpiresAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}

	w.EventID = eventID.String
	w.Side = wagers.Side(side.String)
	w.SideName = sideName.String
	w.OpponentID = opponentID.String
	w.WinnerID = winnerID.String

	if completedAt.Valid {
		t := completedAt.Time
		w.CompletedAt = &t
	}

	return &w, nil
}

// nullable converts the empty string used in the domain model back to a
// SQL NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
