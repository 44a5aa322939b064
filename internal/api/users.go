package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type createUserRequest struct {
	Name string `json:"name"`
}

// CreateUserHandler handles POST /users. Registration is get-or-create
// by name; re-posting an existing name returns that account.
func (h *HandlerProvider) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeDetail(w, http.StatusBadRequest, "name required")
		return
	}

	u, err := h.users.GetOrCreate(r.Context(), name)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// GetUserHandler handles GET /users/{userId}
func (h *HandlerProvider) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.GetByID(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// ListUsersHandler handles GET /users
func (h *HandlerProvider) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	us, err := h.users.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]userResponse, 0, len(us))
	for i := range us {
		out = append(out, toUserResponse(&us[i]))
	}

	writeJSON(w, http.StatusOK, out)
}

// GetTransactionsHandler handles GET /transactions/{userId}
func (h *HandlerProvider) GetTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := h.bets.Transactions(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponses(entries))
}
