package api

import (
	"net/http"

	"github.com/betarena/core/internal/repos/users"
	"github.com/betarena/core/internal/services/betting"
	"github.com/betarena/core/internal/services/payments"
	"github.com/go-chi/chi/v5"
)

// NewRouter constructs the router with all API endpoints registered.
// The literal /bets segments (waiting, invite, user, join-by-invite)
// coexist with the {betId} routes; chi resolves static segments first.
func NewRouter(bets *betting.Service, pay *payments.Service, usersRepo users.Users) http.Handler {
	h := NewHandler(bets, pay, usersRepo)
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/users", h.CreateUserHandler)
	r.Get("/users", h.ListUsersHandler)
	r.Get("/users/{userId}", h.GetUserHandler)

	r.Post("/bets", h.CreateBetHandler)
	r.Get("/bets", h.ListBetsHandler)
	r.Get("/bets/waiting", h.ListWaitingBetsHandler)
	r.Get("/bets/user/{userId}", h.ListUserBetsHandler)
	r.Get("/bets/invite/{code}", h.ResolveInviteHandler)
	r.Post("/bets/join-by-invite/{code}", h.JoinByInviteHandler)
	r.Get("/bets/{betId}", h.GetBetHandler)
	r.Post("/bets/{betId}/join", h.JoinBetHandler)
	r.Post("/bets/{betId}/cancel", h.CancelBetHandler)
	r.Post("/bets/{betId}/declare-winner", h.DeclareWinnerHandler)

	r.Get("/transactions/{userId}", h.GetTransactionsHandler)

	r.Post("/payments/create-preference", h.CreatePreferenceHandler)
	r.Post("/payments/withdraw", h.WithdrawHandler)

	r.Post("/admin/approve-deposit/{txId}", h.ApproveDepositHandler)

	return r
}
