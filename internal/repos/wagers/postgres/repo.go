package wagers

import (
	"database/sql"

	"github.com/betarena/core/internal/repos/wagers"
)

var _ wagers.Wagers = (*wagersRepo)(nil)

type wagersRepo struct{ db *sql.DB }

func New(db *sql.DB) *wagersRepo {
	return &wagersRepo{db: db}
}
