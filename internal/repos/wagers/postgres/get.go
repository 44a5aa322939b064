package wagers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/betarena/core/internal/repos/wagers"
)

func (r *wagersRepo) GetByID(ctx context.Context, id string) (*wagers.Wager, error) {
	w, err := scanWager(r.db.QueryRowContext(ctx, `
		SELECT `+wagerColumns+`
		FROM wagers
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, wagers.ErrWagerNotFound
		}

		return nil, fmt.Errorf("get wager: %w", err)
	}

	return w, nil
}

func (r *wagersRepo) GetByInvite(ctx context.Context, code string) (*wagers.Wager, error) {
	w, err := scanWager(r.db.QueryRowContext(ctx, `
		SELECT `+wagerColumns+`
		FROM wagers
		WHERE invite_code = $1
	`, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, wagers.ErrWagerNotFound
		}

		return nil, fmt.Errorf("get wager by invite: %w", err)
	}

	return w, nil
}
