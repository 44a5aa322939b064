package users

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/betarena/core/internal/repos/users"
)

func (r *usersRepo) LockAndGetBalance(tx *sql.Tx, id string) (int64, error) {
	var balance int64

	err := tx.QueryRow(`
		SELECT balance
		FROM users
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, users.ErrUserNotFound
		}

		return 0, fmt.Errorf("lock/get balance: %w", err)
	}

	return balance, nil
}
