package api

import (
	"errors"
	"net/http"

	"github.com/betarena/core/internal/repos/wagers"
	"github.com/betarena/core/internal/services/betting"
	"github.com/go-chi/chi/v5"
)

type createBetRequest struct {
	CreatorID        string `json:"creator_id"`
	EventType        string `json:"event_type"`
	EventTitle       string `json:"event_title"`
	EventDescription string `json:"event_description"`
	EventID          string `json:"event_id"`
	Side             string `json:"side"`
	SideName         string `json:"side_name"`
	Amount           int64  `json:"amount"`
}

// CreateBetHandler handles POST /bets
func (h *HandlerProvider) CreateBetHandler(w http.ResponseWriter, r *http.Request) {
	var req createBetRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.CreatorID == "" {
		writeDetail(w, http.StatusBadRequest, "creator_id required")
		return
	}

	wg, err := h.bets.Create(r.Context(), betting.CreateParams{
		CreatorID:        req.CreatorID,
		EventType:        wagers.EventType(req.EventType),
		EventTitle:       req.EventTitle,
		EventDescription: req.EventDescription,
		EventID:          req.EventID,
		Side:             wagers.Side(req.Side),
		SideName:         req.SideName,
		Amount:           req.Amount,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toWagerResponse(wg))
}

type joinRequest struct {
	UserID string `json:"user_id"`
}

// JoinBetHandler handles POST /bets/{betId}/join
func (h *HandlerProvider) JoinBetHandler(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.UserID == "" {
		writeDetail(w, http.StatusBadRequest, "user_id required")
		return
	}

	wg, err := h.bets.Join(r.Context(), chi.URLParam(r, "betId"), req.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toWagerResponse(wg))
}

// ResolveInviteHandler handles GET /bets/invite/{code}: 404 for
// unknown codes, 410 once the invite lapsed, 400 when no longer
// waiting.
func (h *HandlerProvider) ResolveInviteHandler(w http.ResponseWriter, r *http.Request) {
	wg, err := h.bets.ResolveInvite(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		if errors.Is(err, betting.ErrWagerExpired) {
			writeDetail(w, http.StatusGone, "invite expired")
			return
		}

		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toWagerResponse(wg))
}

// JoinByInviteHandler handles POST /bets/join-by-invite/{code}
func (h *HandlerProvider) JoinByInviteHandler(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.UserID == "" {
		writeDetail(w, http.StatusBadRequest, "user_id required")
		return
	}

	wg, err := h.bets.JoinByInvite(r.Context(), chi.URLParam(r, "code"), req.UserID)
	if err != nil {
		if errors.Is(err, betting.ErrWagerExpired) {
			writeDetail(w, http.StatusGone, "invite expired")
			return
		}

		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toWagerResponse(wg))
}

type declareWinnerRequest struct {
	WinnerID string `json:"winner_id"`
	ActorID  string `json:"actor_id"`
}

// DeclareWinnerHandler handles POST /bets/{betId}/declare-winner
func (h *HandlerProvider) DeclareWinnerHandler(w http.ResponseWriter, r *http.Request) {
	var req declareWinnerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.WinnerID == "" || req.ActorID == "" {
		writeDetail(w, http.StatusBadRequest, "winner_id and actor_id required")
		return
	}

	wg, err := h.bets.DeclareWinner(r.Context(), chi.URLParam(r, "betId"), req.WinnerID, req.ActorID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toWagerResponse(wg))
}

type cancelRequest struct {
	UserID string `json:"user_id"`
}

// CancelBetHandler handles POST /bets/{betId}/cancel
func (h *HandlerProvider) CancelBetHandler(w http.ResponseWriter, r *http.Request) {
	var req cancelRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.UserID == "" {
		writeDetail(w, http.StatusBadRequest, "user_id required")
		return
	}

	wg, err := h.bets.Cancel(r.Context(), chi.URLParam(r, "betId"), req.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toWagerResponse(wg))
}

// GetBetHandler handles GET /bets/{betId}
func (h *HandlerProvider) GetBetHandler(w http.ResponseWriter, r *http.Request) {
	wg, err := h.bets.Get(r.Context(), chi.URLParam(r, "betId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toWagerResponse(wg))
}

// ListBetsHandler handles GET /bets
func (h *HandlerProvider) ListBetsHandler(w http.ResponseWriter, r *http.Request) {
	ws, err := h.bets.ListAll(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toWagerResponses(ws))
}

// ListWaitingBetsHandler handles GET /bets/waiting
func (h *HandlerProvider) ListWaitingBetsHandler(w http.ResponseWriter, r *http.Request) {
	ws, err := h.bets.ListWaiting(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toWagerResponses(ws))
}

// ListUserBetsHandler handles GET /bets/user/{userId}
func (h *HandlerProvider) ListUserBetsHandler(w http.ResponseWriter, r *http.Request) {
	ws, err := h.bets.ListByUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toWagerResponses(ws))
}
