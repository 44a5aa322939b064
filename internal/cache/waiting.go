// Package cache holds the Redis read-projection cache for the
// open-market listing. The database stays the source of truth; a cache
// miss or Redis outage just falls back to Postgres.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/betarena/core/internal/repos/wagers"
	"github.com/redis/go-redis/v9"
)

const waitingKey = "wagers:waiting"

type WaitingWagers struct {
	client *redis.Client
	ttl    time.Duration
}

func NewWaitingWagers(client *redis.Client, ttl time.Duration) *WaitingWagers {
	return &WaitingWagers{client: client, ttl: ttl}
}

func (c *WaitingWagers) Get(ctx context.Context) ([]wagers.Wager, bool) {
	raw, err := c.client.Get(ctx, waitingKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("waiting cache get failed", "error", err)
		}

		return nil, false
	}

	var ws []wagers.Wager

	err = json.Unmarshal(raw, &ws)
	if err != nil {
		slog.Warn("waiting cache decode failed", "error", err)

		return nil, false
	}

	return ws, true
}

func (c *WaitingWagers) Set(ctx context.Context, ws []wagers.Wager) {
	b, err := json.Marshal(ws)
	if err != nil {
		slog.Warn("waiting cache encode failed", "error", err)

		return
	}

	err = c.client.Set(ctx, waitingKey, b, c.ttl).Err()
	if err != nil {
		slog.Warn("waiting cache set failed", "error", err)
	}
}

func (c *WaitingWagers) Invalidate(ctx context.Context) {
	err := c.client.Del(ctx, waitingKey).Err()
	if err != nil {
		slog.Warn("waiting cache invalidate failed", "error", err)
	}
}
