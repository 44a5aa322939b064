package api

import (
	"github.com/betarena/core/internal/repos/users"
	"github.com/betarena/core/internal/services/betting"
	"github.com/betarena/core/internal/services/payments"
)

// HandlerProvider wraps the domain services and exposes HTTP handlers.
type HandlerProvider struct {
	bets  *betting.Service
	pay   *payments.Service
	users users.Users
}

// NewHandler returns a new handler provider.
func NewHandler(bets *betting.Service, pay *payments.Service, usersRepo users.Users) *HandlerProvider {
	return &HandlerProvider{bets: bets, pay: pay, users: usersRepo}
}
