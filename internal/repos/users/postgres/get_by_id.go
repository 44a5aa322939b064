package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/betarena/core/internal/repos/users"
)

func (r *usersRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	var u users.User

	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, balance, is_admin, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Name, &u.Balance, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, users.ErrUserNotFound
		}

		return nil, fmt.Errorf("get user: %w", err)
	}

	return &u, nil
}
