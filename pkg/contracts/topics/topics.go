package topics

const (
	// WagerEvents carries wager lifecycle events (matched, settled, expired)
	// for downstream consumers such as notifications and analytics.
	WagerEvents = "wager_events"
)
