// Package betting implements the wager lifecycle: creation with
// automatic opposite-side matching, open-market and invite joins,
// judge settlement, creator cancellation and deadline expiry. Every
// transition runs inside one database transaction covering the wager
// status write, the balance mutation and the ledger append.
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
	pgledger "github.com/betarena/core/internal/repos/ledger/postgres"
	"github.com/betarena/core/internal/repos/users"
	pgusers "github.com/betarena/core/internal/repos/users/postgres"
	"github.com/betarena/core/internal/repos/wagers"
	pgwagers "github.com/betarena/core/internal/repos/wagers/postgres"
	"github.com/betarena/core/pkg/contracts/events"
	"github.com/google/uuid"
)

var (
	ErrBelowMinimumStake = errors.New("amount below minimum stake")
	ErrInvalidEventType  = errors.New("invalid event type")
	ErrMissingTitle      = errors.New("event title required")
	ErrInvalidMatchKey   = errors.New("event_id and side must be set together")
	ErrSelfJoin          = errors.New("cannot join your own wager")
	ErrNotWaiting        = errors.New("wager is not open for joining")
	ErrWagerExpired      = errors.New("wager expired")
	ErrInvalidState      = errors.New("wager is not active")
	ErrInvalidWinner     = errors.New("winner must be one of the participants")
	ErrAlreadySettled    = errors.New("wager already settled")
	ErrNotAuthorized     = errors.New("not authorized")
)

// Publisher emits wager lifecycle events after the owning transaction
// committed. Publishing is best-effort: a failure is logged and never
// rolls back money movement.
type Publisher interface {
	PublishWagerMatched(ctx context.Context, e events.WagerMatched) error
	PublishWagerSettled(ctx context.Context, e events.WagerSettled) error
	PublishWagerExpired(ctx context.Context, e events.WagerExpired) error
}

// WaitingCache is a read-through cache for the open-market listing.
type WaitingCache interface {
	Get(ctx context.Context) ([]wagers.Wager, bool)
	Set(ctx context.Context, ws []wagers.Wager)
	Invalidate(ctx context.Context)
}

type Config struct {
	MinStake  int64         // minimum stake per side, cents
	InviteTTL time.Duration // how long a waiting wager stays joinable
}

type Service struct {
	db     *sql.DB
	users  users.Users
	wagers wagers.Wagers
	ledger ledger.Ledger
	pub    Publisher
	cache  WaitingCache
	cfg    Config
}

// New wires the service over Postgres repos. pub and cache may be nil.
func New(db *sql.DB, cfg Config, pub Publisher, cache WaitingCache) *Service {
	return &Service{
		db:     db,
		users:  pgusers.New(db),
		wagers: pgwagers.New(db),
		ledger: pgledger.New(db),
		pub:    pub,
		cache:  cache,
		cfg:    cfg,
	}
}

type CreateParams struct {
	CreatorID        string
	EventType        wagers.EventType
	EventTitle       string
	EventDescription string
	EventID          string
	Side             wagers.Side
	SideName         string
	Amount           int64
}

// Create validates the stake, debits the creator and either matches an
// existing opposite-side wager on the same event with the same stake
// (FIFO) or inserts a fresh waiting wager.
func (s *Service) Create(ctx context.Context, p CreateParams) (*wagers.Wager, error) {
	err := p.validate(s.cfg.MinStake)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	var (
		out     *wagers.Wager
		matched bool
	)

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := s.users.Exists(tx, p.CreatorID)
		if err != nil {
			return fmt.Errorf("check creator exists: %w", err)
		}

		// Automatic opposite-side matching on event, side and stake.
		// The candidate wager row is locked before the creator's user
		// row so the lock order is always wager -> user.
		if p.EventID != "" {
			m, err := s.wagers.FindOpenMatch(tx, p.EventID, p.Side.Opposite(), p.Amount, p.CreatorID, now)
			if err == nil {
				err = s.debitStake(tx, p.CreatorID, p.Amount, m.ID, now)
				if err != nil {
					return err
				}

				err = s.wagers.SetActive(tx, m.ID, p.CreatorID, now)
				if err != nil {
					return fmt.Errorf("activate matched wager: %w", err)
				}

				m.OpponentID = p.CreatorID
				m.Status = wagers.StatusActive
				out = m
				matched = true

				return nil
			}

			if !errors.Is(err, wagers.ErrNoOpenMatch) {
				return fmt.Errorf("search open match: %w", err)
			}
		}

		w := &wagers.Wager{
			ID:               uuid.NewString(),
			InviteCode:       newInviteCode(),
			EventType:        p.EventType,
			EventTitle:       p.EventTitle,
			EventDescription: p.EventDescription,
			EventID:          p.EventID,
			Side:             p.Side,
			SideName:         p.SideName,
			Amount:           p.Amount,
			CreatorID:        p.CreatorID,
			Status:           wagers.StatusWaiting,
			CreatedAt:        now,
			ExpiresAt:        now.Add(s.cfg.InviteTTL),
		}

		err = s.wagers.Insert(tx, w)
		if err != nil {
			return fmt.Errorf("insert wager: %w", err)
		}

		err = s.debitStake(tx, p.CreatorID, p.Amount, w.ID, now)
		if err != nil {
			return err
		}

		out = w

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create wager: %w", err)
	}

	metrics.WagersCreated.Inc()
	s.invalidateWaiting(ctx)

	if matched {
		metrics.WagersMatched.Inc()
		s.publishMatched(ctx, out)
	}

	return out, nil
}

func (p CreateParams) validate(minStake int64) error {
	switch p.EventType {
	case wagers.EventSports, wagers.EventStocks, wagers.EventCustom:
	default:
		return ErrInvalidEventType
	}

	if p.EventTitle == "" {
		return ErrMissingTitle
	}

	if p.Amount < minStake {
		return ErrBelowMinimumStake
	}

	hasSide := p.Side == wagers.SideA || p.Side == wagers.SideB
	if (p.EventID != "") != hasSide {
		return ErrInvalidMatchKey
	}

	return nil
}

// Join matches joinerID against a waiting wager by id.
func (s *Service) Join(ctx context.Context, wagerID, joinerID string) (*wagers.Wager, error) {
	var out *wagers.Wager

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		w, err := s.wagers.LockByID(tx, wagerID)
		if err != nil {
			return err
		}

		out, err = s.joinLocked(tx, w, joinerID)

		return err
	})
	if err != nil {
		return nil, fmt.Errorf("join wager: %w", err)
	}

	metrics.WagersMatched.Inc()
	s.invalidateWaiting(ctx)
	s.publishMatched(ctx, out)

	return out, nil
}

// JoinByInvite is the invite-code join path; identical semantics to
// Join once the code resolved.
func (s *Service) JoinByInvite(ctx context.Context, code, joinerID string) (*wagers.Wager, error) {
	var out *wagers.Wager

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		w, err := s.wagers.LockByInvite(tx, code)
		if err != nil {
			return err
		}

		out, err = s.joinLocked(tx, w, joinerID)

		return err
	})
	if err != nil {
		return nil, fmt.Errorf("join wager by invite: %w", err)
	}

	metrics.WagersMatched.Inc()
	s.invalidateWaiting(ctx)
	s.publishMatched(ctx, out)

	return out, nil
}

// joinLocked applies the waiting -> active transition on a wager the
// caller already holds the row lock for. A swept wager reads the same
// as one whose deadline just lapsed.
func (s *Service) joinLocked(tx *sql.Tx, w *wagers.Wager, joinerID string) (*wagers.Wager, error) {
	now := time.Now().UTC()

	if w.Status == wagers.StatusExpired {
		return nil, ErrWagerExpired
	}

	if w.Status != wagers.StatusWaiting {
		return nil, ErrNotWaiting
	}

	if now.After(w.ExpiresAt) {
		return nil, ErrWagerExpired
	}

	if joinerID == w.CreatorID {
		return nil, ErrSelfJoin
	}

	err := s.users.Exists(tx, joinerID)
	if err != nil {
		return nil, fmt.Errorf("check joiner exists: %w", err)
	}

	err = s.debitStake(tx, joinerID, w.Amount, w.ID, now)
	if err != nil {
		return nil, err
	}

	err = s.wagers.SetActive(tx, w.ID, joinerID, now)
	if err != nil {
		return nil, fmt.Errorf("activate wager: %w", err)
	}

	w.OpponentID = joinerID
	w.Status = wagers.StatusActive

	return w, nil
}

// debitStake takes amount from the user's locked balance and appends
// the matching bet_debit ledger entry. The balance pre-check against
// the locked row plus the guarded UPDATE keep the balance non-negative.
func (s *Service) debitStake(tx *sql.Tx, userID string, amount int64, wagerID string, now time.Time) error {
	balance, err := s.users.LockAndGetBalance(tx, userID)
	if err != nil {
		return fmt.Errorf("lock balance: %w", err)
	}

	if balance < amount {
		return fmt.Errorf("pre-check stake: %w", users.ErrInsufficientFunds)
	}

	err = s.users.DecreaseBalance(tx, userID, amount)
	if err != nil {
		return fmt.Errorf("debit stake: %w", err)
	}

	err = s.ledger.Insert(tx, &ledger.Entry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      ledger.TypeBetDebit,
		Amount:    amount,
		Status:    ledger.StatusApproved,
		WagerID:   wagerID,
		CreatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("append debit entry: %w", err)
	}

	return nil
}

// creditUser is the credit-side mirror of debitStake.
func (s *Service) creditUser(tx *sql.Tx, userID string, amount int64, entryType ledger.EntryType, wagerID string, now time.Time) error {
	err := s.users.IncreaseBalance(tx, userID, amount)
	if err != nil {
		return fmt.Errorf("credit user: %w", err)
	}

	err = s.ledger.Insert(tx, &ledger.Entry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      entryType,
		Amount:    amount,
		Status:    ledger.StatusApproved,
		WagerID:   wagerID,
		CreatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("append credit entry: %w", err)
	}

	return nil
}
