package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type paymentRequest struct {
	UserID string `json:"user_id"`
	Amount int64  `json:"amount"`
}

// CreatePreferenceHandler handles POST /payments/create-preference:
// books a pending deposit and returns the gateway checkout to redirect
// the client to.
func (h *HandlerProvider) CreatePreferenceHandler(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.UserID == "" {
		writeDetail(w, http.StatusBadRequest, "user_id required")
		return
	}

	dep, err := h.pay.CreateDepositPreference(r.Context(), req.UserID, req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"transaction_id": dep.EntryID,
		"checkout_url":   dep.Checkout.CheckoutURL,
		"provider_ref":   dep.Checkout.ProviderRef,
	})
}

// WithdrawHandler handles POST /payments/withdraw
func (h *HandlerProvider) WithdrawHandler(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.UserID == "" {
		writeDetail(w, http.StatusBadRequest, "user_id required")
		return
	}

	entryID, err := h.pay.Withdraw(r.Context(), req.UserID, req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"transaction_id": entryID})
}

type approveDepositRequest struct {
	ActorID string `json:"actor_id"`
}

// ApproveDepositHandler handles POST /admin/approve-deposit/{txId}
func (h *HandlerProvider) ApproveDepositHandler(w http.ResponseWriter, r *http.Request) {
	var req approveDepositRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.ActorID == "" {
		writeDetail(w, http.StatusBadRequest, "actor_id required")
		return
	}

	entry, err := h.pay.ApproveDeposit(r.Context(), chi.URLParam(r, "txId"), req.ActorID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"transaction_id": entry.ID,
		"user_id":        entry.UserID,
		"amount":         entry.Amount,
		"status":         string(entry.Status),
	})
}
