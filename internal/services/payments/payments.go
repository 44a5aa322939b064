// Package payments handles the money boundary with the external
// gateway: deposit preferences, withdrawals and the administrative
// approval that finally credits a pending deposit.
package payments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/betarena/core/internal/infra/pgutils"
	"github.com/betarena/core/internal/repos/ledger"
	pgledger "github.com/betarena/core/internal/repos/ledger/postgres"
	"github.com/betarena/core/internal/repos/users"
	pgusers "github.com/betarena/core/internal/repos/users/postgres"
	"github.com/google/uuid"
)

var (
	ErrInvalidAmount  = errors.New("amount must be positive")
	ErrNotAuthorized  = errors.New("not authorized")
	ErrGatewayFailure = errors.New("payment gateway failure")
)

type Service struct {
	db      *sql.DB
	users   users.Users
	ledger  ledger.Ledger
	gateway Gateway
}

func New(db *sql.DB, gateway Gateway) *Service {
	return &Service{
		db:      db,
		users:   pgusers.New(db),
		ledger:  pgledger.New(db),
		gateway: gateway,
	}
}

// Deposit is the pending ledger entry plus the provider checkout the
// client is redirected to.
type Deposit struct {
	EntryID  string
	Checkout *Checkout
}

// CreateDepositPreference books a pending deposit entry (no balance
// effect until approved) and asks the gateway for a checkout. If the
// gateway rejects the request the entry is rejected right away.
func (s *Service) CreateDepositPreference(ctx context.Context, userID string, amountCents int64) (*Deposit, error) {
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}

	entry := &ledger.Entry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      ledger.TypeDeposit,
		Amount:    amountCents,
		Status:    ledger.StatusPending,
		CreatedAt: time.Now().UTC(),
	}

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := s.users.Exists(tx, userID)
		if err != nil {
			return fmt.Errorf("check user exists: %w", err)
		}

		err = s.ledger.Insert(tx, entry)
		if err != nil {
			return fmt.Errorf("insert pending deposit: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create deposit preference: %w", err)
	}

	checkout, err := s.gateway.CreateCheckout(ctx, userID, amountCents, entry.ID)
	if err != nil {
		s.rejectEntry(ctx, entry.ID)

		return nil, fmt.Errorf("create deposit preference: %w", err)
	}

	return &Deposit{EntryID: entry.ID, Checkout: checkout}, nil
}

// Withdraw debits the balance and books an approved withdrawal entry
// atomically, then requests the gateway payout. A payout failure books
// a compensating approved deposit entry so the cached balance and the
// ledger sum stay equal at every commit point.
func (s *Service) Withdraw(ctx context.Context, userID string, amountCents int64) (string, error) {
	if amountCents <= 0 {
		return "", ErrInvalidAmount
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		balance, err := s.users.LockAndGetBalance(tx, userID)
		if err != nil {
			return fmt.Errorf("lock balance: %w", err)
		}

		if balance < amountCents {
			return fmt.Errorf("pre-check withdrawal: %w", users.ErrInsufficientFunds)
		}

		err = s.users.DecreaseBalance(tx, userID, amountCents)
		if err != nil {
			return fmt.Errorf("debit withdrawal: %w", err)
		}

		err = s.ledger.Insert(tx, &ledger.Entry{
			ID:        entryID,
			UserID:    userID,
			Type:      ledger.TypeWithdrawal,
			Amount:    amountCents,
			Status:    ledger.StatusApproved,
			CreatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("insert withdrawal entry: %w", err)
		}

		return nil
	})
	if err != nil {
		return "", fmt.Errorf("withdraw: %w", err)
	}

	err = s.gateway.Payout(ctx, userID, amountCents, entryID)
	if err != nil {
		s.refundWithdrawal(ctx, userID, amountCents, entryID)

		return "", fmt.Errorf("withdraw: %w", err)
	}

	return entryID, nil
}

// ApproveDeposit is the admin/webhook confirmation path: flips the
// pending deposit to approved and credits the balance, exactly once.
func (s *Service) ApproveDeposit(ctx context.Context, entryID, actorID string) (*ledger.Entry, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrNotAuthorized
		}

		return nil, fmt.Errorf("load actor: %w", err)
	}

	if !actor.IsAdmin {
		return nil, ErrNotAuthorized
	}

	var approved *ledger.Entry

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		entry, err := s.ledger.ApprovePending(tx, entryID)
		if err != nil {
			return err
		}

		if entry.Type != ledger.TypeDeposit {
			return ledger.ErrNotPending
		}

		err = s.users.IncreaseBalance(tx, entry.UserID, entry.Amount)
		if err != nil {
			return fmt.Errorf("credit deposit: %w", err)
		}

		approved = entry

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("approve deposit: %w", err)
	}

	return approved, nil
}

func (s *Service) rejectEntry(ctx context.Context, entryID string) {
	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return s.ledger.RejectPending(tx, entryID)
	})
	if err != nil {
		slog.Error("reject deposit entry failed", "entry_id", entryID, "error", err)
	}
}

func (s *Service) refundWithdrawal(ctx context.Context, userID string, amountCents int64, withdrawalID string) {
	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := s.users.IncreaseBalance(tx, userID, amountCents)
		if err != nil {
			return fmt.Errorf("credit refund: %w", err)
		}

		err = s.ledger.Insert(tx, &ledger.Entry{
			ID:        uuid.NewString(),
			UserID:    userID,
			Type:      ledger.TypeDeposit,
			Amount:    amountCents,
			Status:    ledger.StatusApproved,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("insert refund entry: %w", err)
		}

		return nil
	})
	if err != nil {
		// needs manual reconciliation against the gateway
		slog.Error("withdrawal refund failed", "withdrawal_id", withdrawalID, "user_id", userID, "error", err)
	}
}
