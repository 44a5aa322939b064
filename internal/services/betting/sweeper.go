package betting

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/betarena/core/internal/infra/metrics"
	"github.com/betarena/core/internal/infra/pgutils"
	"github.com/betarena/core/internal/repos/ledger"
	"github.com/betarena/core/internal/repos/wagers"
)

// sweepBatchSize bounds one pass; leftovers are picked up next tick.
const sweepBatchSize = 100

// ExpireDue refunds every waiting wager whose deadline passed. Each
// wager expires in its own transaction so one failure never blocks the
// rest of the batch; failed wagers are retried on the next sweep.
// Safe to race with joins: the row lock plus the status guard in
// SetExpired let exactly one of the two transitions commit.
func (s *Service) ExpireDue(ctx context.Context) (int, error) {
	now := time.Now().UTC()

	ids, err := s.wagers.ListDueExpiry(ctx, now, sweepBatchSize)
	if err != nil {
		return 0, err
	}

	expired := 0

	for _, id := range ids {
		w, err := s.expireOne(ctx, id, now)
		if err != nil {
			slog.Error("expire wager failed", "wager_id", id, "error", err)
			continue
		}

		if w == nil {
			// a join won the race between the candidate scan and the lock
			continue
		}

		expired++

		metrics.WagersExpired.Inc()
		s.publishExpired(ctx, w)
	}

	if expired > 0 {
		s.invalidateWaiting(ctx)
	}

	return expired, nil
}

func (s *Service) expireOne(ctx context.Context, id string, now time.Time) (*wagers.Wager, error) {
	var out *wagers.Wager

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		w, err := s.wagers.LockByID(tx, id)
		if err != nil {
			// deleted or gone; nothing to refund
			if errors.Is(err, wagers.ErrWagerNotFound) {
				return nil
			}

			return err
		}

		if w.Status != wagers.StatusWaiting || w.ExpiresAt.After(now) {
			return nil
		}

		err = s.wagers.SetExpired(tx, w.ID, now)
		if err != nil {
			return err
		}

		err = s.creditUser(tx, w.CreatorID, w.Amount, ledger.TypeBetCredit, w.ID, now)
		if err != nil {
			return err
		}

		w.Status = wagers.StatusExpired
		out = w

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Sweeper runs ExpireDue on a fixed interval until ctx is cancelled.
type Sweeper struct {
	svc      *Service
	interval time.Duration
}

func NewSweeper(svc *Service, interval time.Duration) *Sweeper {
	return &Sweeper{svc: svc, interval: interval}
}

func (sw *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()

			n, err := sw.svc.ExpireDue(ctx)

			metrics.SweepDuration.Observe(time.Since(start).Seconds())

			if err != nil {
				slog.Error("expiry sweep failed", "error", err)
				continue
			}

			if n > 0 {
				slog.Info("expiry sweep refunded wagers", "count", n)
			}
		}
	}
}
