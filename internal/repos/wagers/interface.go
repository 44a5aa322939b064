package wagers

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrWagerNotFound = errors.New("wager not found")

// ErrStateConflict is returned when a conditional status transition
// finds the wager no longer in the expected state. Exactly one of two
// racing transitions (join vs join, join vs expire) observes it.
var ErrStateConflict = errors.New("wager state conflict")

// ErrNoOpenMatch is returned by FindOpenMatch when no compatible
// opposite-side wager is waiting.
var ErrNoOpenMatch = errors.New("no open match")

type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

type EventType string

const (
	EventSports EventType = "sports"
	EventStocks EventType = "stocks"
	EventCustom EventType = "custom"
)

type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

// Opposite returns the other side of a matchable event.
func (s Side) Opposite() Side {
	if s == SideA {
		return SideB
	}

	return SideA
}

// Wager is one peer-to-peer betting contract. Amount is the stake per
// side in minor currency units; both sides always stake the same
// amount. EventID/Side/SideName form the optional automatic-matching
// key and are either all set or all empty.
type Wager struct {
	ID               string
	InviteCode       string
	EventType        EventType
	EventTitle       string
	EventDescription string
	EventID          string
	Side             Side
	SideName         string
	Amount           int64
	CreatorID        string
	OpponentID       string
	WinnerID         string
	Status           Status
	CreatedAt        time.Time
	ExpiresAt        time.Time
	CompletedAt      *time.Time
}

// IsParticipant reports whether userID is one of the wager's two sides.
func (w *Wager) IsParticipant(userID string) bool {
	return userID == w.CreatorID || (w.OpponentID != "" && userID == w.OpponentID)
}

type Wagers interface {
	Insert(tx *sql.Tx, w *Wager) error
	GetByID(ctx context.Context, id string) (*Wager, error)
	GetByInvite(ctx context.Context, code string) (*Wager, error)
	LockByID(tx *sql.Tx, id string) (*Wager, error)
	LockByInvite(tx *sql.Tx, code string) (*Wager, error)
	FindOpenMatch(tx *sql.Tx, eventID string, side Side, amount int64, excludeCreator string, now time.Time) (*Wager, error)
	SetActive(tx *sql.Tx, id, opponentID string, now time.Time) error
	SetCompleted(tx *sql.Tx, id, winnerID string, now time.Time) error
	SetExpired(tx *sql.Tx, id string, now time.Time) error
	SetCancelled(tx *sql.Tx, id string) error
	ListAll(ctx context.Context) ([]Wager, error)
	ListWaiting(ctx context.Context, now time.Time) ([]Wager, error)
	ListByUser(ctx context.Context, userID string) ([]Wager, error)
	ListDueExpiry(ctx context.Context, now time.Time, limit int) ([]string, error)
}
