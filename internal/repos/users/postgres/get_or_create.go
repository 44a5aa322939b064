package users

import (
	"context"
	"fmt"

	"github.com/betarena/core/internal/repos/users"
	"github.com/google/uuid"
)

// GetOrCreate returns the user registered under name, inserting a fresh
// zero-balance account when none exists. The no-op DO UPDATE makes
// RETURNING yield the existing row on conflict.
func (r *usersRepo) GetOrCreate(ctx context.Context, name string) (*users.User, error) {
	var u users.User

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (id, name)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, balance, is_admin, created_at
	`, uuid.NewString(), name).Scan(&u.ID, &u.Name, &u.Balance, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get or create user: %w", err)
	}

	return &u, nil
}
