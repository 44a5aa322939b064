package events

// WagerMatched is emitted once a waiting wager gains an opponent, either
// through a direct/invite join or automatic opposite-side matching.
type WagerMatched struct {
	WagerID     string `json:"wager_id"`
	EventID     string `json:"event_id,omitempty"`
	CreatorID   string `json:"creator_id"`
	OpponentID  string `json:"opponent_id"`
	AmountCents int64  `json:"amount_cents"`
	TsUnixMs    int64  `json:"ts_unix_ms"`
}
