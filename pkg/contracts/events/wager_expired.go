package events

// WagerExpired is emitted when the sweeper refunds an unmatched wager.
type WagerExpired struct {
	WagerID     string `json:"wager_id"`
	CreatorID   string `json:"creator_id"`
	RefundCents int64  `json:"refund_cents"`
	TsUnixMs    int64  `json:"ts_unix_ms"`
}
