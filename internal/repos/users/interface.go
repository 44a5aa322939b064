package users

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrInsufficientFunds = errors.New("insufficient funds")
var ErrUserNotFound = errors.New("user not found")

// User balances are minor currency units (cents). The ledger is the
// source of truth; users.balance is the cached projection maintained in
// the same transaction as every ledger append.
type User struct {
	ID        string
	Name      string
	Balance   int64
	IsAdmin   bool
	CreatedAt time.Time
}

type Users interface {
	GetOrCreate(ctx context.Context, name string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Exists(tx *sql.Tx, id string) error
	LockAndGetBalance(tx *sql.Tx, id string) (int64, error)
	IncreaseBalance(tx *sql.Tx, id string, amount int64) error
	DecreaseBalance(tx *sql.Tx, id string, amount int64) error
}
