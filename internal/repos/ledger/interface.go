package ledger

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrEntryNotFound = errors.New("ledger entry not found")

// ErrNotPending is returned when approving or rejecting an entry that
// already left the pending state. Makes deposit approval idempotent.
var ErrNotPending = errors.New("ledger entry not pending")

type EntryType string

const (
	TypeDeposit    EntryType = "deposit"
	TypeWithdrawal EntryType = "withdrawal"
	TypeBetDebit   EntryType = "bet_debit"
	TypeBetCredit  EntryType = "bet_credit"
)

// Sign gives the balance effect of an entry type. Amounts are stored as
// positive magnitudes; the type dictates the sign.
func (t EntryType) Sign() int64 {
	switch t {
	case TypeDeposit, TypeBetCredit:
		return +1
	default:
		return -1
	}
}

type EntryStatus string

const (
	StatusPending  EntryStatus = "pending"
	StatusApproved EntryStatus = "approved"
	StatusRejected EntryStatus = "rejected"
)

// Entry is one append-only balance-affecting event. Entries are never
// mutated after creation except for the pending -> approved/rejected
// transition on payment entries.
type Entry struct {
	ID        string
	UserID    string
	Type      EntryType
	Amount    int64
	Status    EntryStatus
	WagerID   string
	CreatedAt time.Time
}

type Ledger interface {
	Insert(tx *sql.Tx, e *Entry) error
	ListByUser(ctx context.Context, userID string) ([]Entry, error)
	ApprovePending(tx *sql.Tx, id string) (*Entry, error)
	RejectPending(tx *sql.Tx, id string) error
	SumApproved(ctx context.Context, userID string) (int64, error)
}
