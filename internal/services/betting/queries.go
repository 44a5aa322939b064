package betting

import (
	"context"
	"fmt"
	"time"

	"github.com/betarena/core/internal/repos/ledger"
	"github.com/betarena/core/internal/repos/wagers"
)

func (s *Service) Get(ctx context.Context, id string) (*wagers.Wager, error) {
	return s.wagers.GetByID(ctx, id)
}

// ResolveInvite turns an invite code into its wager without mutating
// anything. Callers distinguish unknown codes (ErrWagerNotFound),
// expired invites (ErrWagerExpired) and wagers no longer waiting
// (ErrNotWaiting). A lapsed deadline reads as expired whether or not
// the sweeper has flipped the status yet.
func (s *Service) ResolveInvite(ctx context.Context, code string) (*wagers.Wager, error) {
	w, err := s.wagers.GetByInvite(ctx, code)
	if err != nil {
		return nil, err
	}

	if w.Status == wagers.StatusExpired {
		return nil, ErrWagerExpired
	}

	if w.Status == wagers.StatusWaiting && time.Now().UTC().After(w.ExpiresAt) {
		return nil, ErrWagerExpired
	}

	if w.Status != wagers.StatusWaiting {
		return nil, ErrNotWaiting
	}

	return w, nil
}

func (s *Service) ListAll(ctx context.Context) ([]wagers.Wager, error) {
	return s.wagers.ListAll(ctx)
}

// ListWaiting serves the open market, read through the Redis cache
// when one is configured.
func (s *Service) ListWaiting(ctx context.Context) ([]wagers.Wager, error) {
	if s.cache != nil {
		ws, ok := s.cache.Get(ctx)
		if ok {
			return ws, nil
		}
	}

	ws, err := s.wagers.ListWaiting(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, ws)
	}

	return ws, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]wagers.Wager, error) {
	return s.wagers.ListByUser(ctx, userID)
}

// Transactions returns a user's ledger history, newest first.
func (s *Service) Transactions(ctx context.Context, userID string) ([]ledger.Entry, error) {
	_, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	return s.ledger.ListByUser(ctx, userID)
}
