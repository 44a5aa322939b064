package betting

import (
	"context"
	"log/slog"
	"time"

	"github.com/betarena/core/internal/repos/wagers"
	"github.com/betarena/core/pkg/contracts/events"
)

func (s *Service) publishMatched(ctx context.Context, w *wagers.Wager) {
	if s.pub == nil {
		return
	}

	err := s.pub.PublishWagerMatched(ctx, events.WagerMatched{
		WagerID:     w.ID,
		EventID:     w.EventID,
		CreatorID:   w.CreatorID,
		OpponentID:  w.OpponentID,
		AmountCents: w.Amount,
		TsUnixMs:    time.Now().UnixMilli(),
	})
	if err != nil {
		slog.Error("publish wager_matched", "wager_id", w.ID, "error", err)
	}
}

func (s *Service) publishSettled(ctx context.Context, w *wagers.Wager, fee int64) {
	if s.pub == nil {
		return
	}

	payout := w.Amount*2 - fee

	err := s.pub.PublishWagerSettled(ctx, events.WagerSettled{
		WagerID:     w.ID,
		WinnerID:    w.WinnerID,
		PayoutCents: payout,
		FeeCents:    fee,
		TsUnixMs:    time.Now().UnixMilli(),
	})
	if err != nil {
		slog.Error("publish wager_settled", "wager_id", w.ID, "error", err)
	}
}

func (s *Service) publishExpired(ctx context.Context, w *wagers.Wager) {
	if s.pub == nil {
		return
	}

	err := s.pub.PublishWagerExpired(ctx, events.WagerExpired{
		WagerID:     w.ID,
		CreatorID:   w.CreatorID,
		RefundCents: w.Amount,
		TsUnixMs:    time.Now().UnixMilli(),
	})
	if err != nil {
		slog.Error("publish wager_expired", "wager_id", w.ID, "error", err)
	}
}

func (s *Service) invalidateWaiting(ctx context.Context) {
	if s.cache == nil {
		return
	}

	s.cache.Invalidate(ctx)
}
