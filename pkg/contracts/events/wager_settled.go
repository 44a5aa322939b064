package events

// WagerSettled is emitted after a judge decision moves the pot.
type WagerSettled struct {
	WagerID     string `json:"wager_id"`
	WinnerID    string `json:"winner_id"`
	PayoutCents int64  `json:"payout_cents"`
	FeeCents    int64  `json:"fee_cents"`
	TsUnixMs    int64  `json:"ts_unix_ms"`
}
