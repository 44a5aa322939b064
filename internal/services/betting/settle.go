package betting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/betarena/core/internal/infra/metrics"
	"github.com/betarena/core/internal/infra/pgutils"
	"github.com/betarena/core/internal/repos/ledger"
	"github.com/betarena/core/internal/repos/users"
	"github.com/betarena/core/internal/repos/wagers"
)

// DeclareWinner settles an active wager on a judge's decision: credits
// the winner with 80% of the pot, retains the fee and completes the
// wager. Once completed the wager is immutable; a repeat call fails
// with ErrAlreadySettled and moves no money.
func (s *Service) DeclareWinner(ctx context.Context, wagerID, winnerID, actorID string) (*wagers.Wager, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		// an unknown actor is indistinguishable from a non-admin one
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrNotAuthorized
		}

		return nil, fmt.Errorf("load actor: %w", err)
	}

	if !actor.IsAdmin {
		return nil, ErrNotAuthorized
	}

	now := time.Now().UTC()

	var (
		out *wagers.Wager
		fee int64
	)

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		w, err := s.wagers.LockByID(tx, wagerID)
		if err != nil {
			return err
		}

		switch w.Status {
		case wagers.StatusCompleted:
			return ErrAlreadySettled
		case wagers.StatusActive:
		default:
			return ErrInvalidState
		}

		if !w.IsParticipant(winnerID) {
			return ErrInvalidWinner
		}

		var payout int64

		payout, fee = SplitPot(w.Amount)

		err = s.creditUser(tx, winnerID, payout, ledger.TypeBetCredit, w.ID, now)
		if err != nil {
			return err
		}

		err = s.wagers.SetCompleted(tx, w.ID, winnerID, now)
		if err != nil {
			if errors.Is(err, wagers.ErrStateConflict) {
				return ErrAlreadySettled
			}

			return fmt.Errorf("complete wager: %w", err)
		}

		w.WinnerID = winnerID
		w.Status = wagers.StatusCompleted
		w.CompletedAt = &now
		out = w

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("declare winner: %w", err)
	}

	metrics.WagersSettled.Inc()
	metrics.FeesRetainedCents.Add(float64(fee))
	s.publishSettled(ctx, out, fee)

	return out, nil
}

// Cancel lets the creator withdraw a still-waiting wager and reclaims
// the stake.
func (s *Service) Cancel(ctx context.Context, wagerID, actorID string) (*wagers.Wager, error) {
	now := time.Now().UTC()

	var out *wagers.Wager

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		w, err := s.wagers.LockByID(tx, wagerID)
		if err != nil {
			return err
		}

		if w.CreatorID != actorID {
			return ErrNotAuthorized
		}

		if w.Status != wagers.StatusWaiting {
			return ErrNotWaiting
		}

		err = s.wagers.SetCancelled(tx, w.ID)
		if err != nil {
			return fmt.Errorf("cancel wager: %w", err)
		}

		err = s.creditUser(tx, w.CreatorID, w.Amount, ledger.TypeBetCredit, w.ID, now)
		if err != nil {
			return err
		}

		w.Status = wagers.StatusCancelled
		out = w

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cancel wager: %w", err)
	}

	metrics.WagersCancelled.Inc()
	s.invalidateWaiting(ctx)

	return out, nil
}
