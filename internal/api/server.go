package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/betarena/core/internal/repos/users"
	"github.com/betarena/core/internal/services/betting"
	"github.com/betarena/core/internal/services/payments"
)

// NewServer creates and returns a configured *http.Server for the
// betting API.
func NewServer(port uint16, bets *betting.Service, pay *payments.Service, usersRepo users.Users) *http.Server {
	mux := NewRouter(bets, pay, usersRepo)

	addr := fmt.Sprintf(":%d", port)

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
