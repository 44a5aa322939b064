// Package metrics holds the Prometheus instruments for the wager
// lifecycle plus a small serving helper for the metrics/health port.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WagersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betarena_wagers_created_total",
		Help: "Wagers created (including ones matched on creation).",
	})

	WagersMatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betarena_wagers_matched_total",
		Help: "Wagers that gained an opponent.",
	})

	WagersSettled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betarena_wagers_settled_total",
		Help: "Wagers settled by a judge decision.",
	})

	WagersExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betarena_wagers_expired_total",
		Help: "Waiting wagers refunded after their deadline.",
	})

	WagersCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betarena_wagers_cancelled_total",
		Help: "Waiting wagers cancelled by their creator.",
	})

	FeesRetainedCents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betarena_fees_retained_cents_total",
		Help: "Platform fee retained at settlement, in cents.",
	})

	SweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "betarena_sweep_duration_seconds",
		Help:    "Duration of one expiry sweep pass.",
		Buckets: prometheus.DefBuckets,
	})
)
