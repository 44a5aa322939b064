package users

import (
	"context"
	"fmt"

	"github.com/betarena/core/internal/repos/users"
)

func (r *usersRepo) List(ctx context.Context) ([]users.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, balance, is_admin, created_at
		FROM users
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []users.User

	for rows.Next() {
		var u users.User

		err = rows.Scan(&u.ID, &u.Name, &u.Balance, &u.IsAdmin, &u.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}

		out = append(out, u)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return out, nil
}
