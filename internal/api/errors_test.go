package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/betarena/core/internal/repos/ledger"
	"github.com/betarena/core/internal/repos/users"
	"github.com/betarena/core/internal/repos/wagers"
	"github.com/betarena/core/internal/services/betting"
	"github.com/betarena/core/internal/services/payments"
)

func TestWriteDomainError_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "user_not_found", err: users.ErrUserNotFound, want: http.StatusNotFound},
		{name: "wager_not_found", err: wagers.ErrWagerNotFound, want: http.StatusNotFound},
		{name: "entry_not_found", err: ledger.ErrEntryNotFound, want: http.StatusNotFound},
		{name: "betting_not_authorized", err: betting.ErrNotAuthorized, want: http.StatusForbidden},
		{name: "payments_not_authorized", err: payments.ErrNotAuthorized, want: http.StatusForbidden},
		{name: "gateway_failure", err: payments.ErrGatewayFailure, want: http.StatusBadGateway},
		{name: "below_minimum_stake", err: betting.ErrBelowMinimumStake, want: http.StatusBadRequest},
		{name: "invalid_event_type", err: betting.ErrInvalidEventType, want: http.StatusBadRequest},
		{name: "self_join", err: betting.ErrSelfJoin, want: http.StatusBadRequest},
		{name: "not_waiting", err: betting.ErrNotWaiting, want: http.StatusBadRequest},
		{name: "expired_on_direct_join", err: betting.ErrWagerExpired, want: http.StatusBadRequest},
		{name: "invalid_winner", err: betting.ErrInvalidWinner, want: http.StatusBadRequest},
		{name: "already_settled", err: betting.ErrAlreadySettled, want: http.StatusBadRequest},
		{name: "insufficient_funds", err: users.ErrInsufficientFunds, want: http.StatusBadRequest},
		{name: "not_pending", err: ledger.ErrNotPending, want: http.StatusBadRequest},
		{name: "invalid_amount", err: payments.ErrInvalidAmount, want: http.StatusBadRequest},
		{name: "unknown_error", err: fmt.Errorf("disk on fire"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()

			// Services hand wrapped errors to the mapping.
			writeDomainError(rec, fmt.Errorf("handler context: %w", tt.err))

			if rec.Code != tt.want {
				t.Fatalf("status: want %d, got %d", tt.want, rec.Code)
			}

			var body struct {
				Detail string `json:"detail"`
			}

			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("body is not the detail contract: %v (%s)", err, rec.Body.String())
			}
			if body.Detail == "" {
				t.Fatal("detail must not be empty")
			}
		})
	}
}

func TestWriteDomainError_DetailStripsWrapping(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()

	writeDomainError(rec, fmt.Errorf("join wager: %w", fmt.Errorf("debit stake: %w", users.ErrInsufficientFunds)))

	var body struct {
		Detail string `json:"detail"`
	}

	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if body.Detail != "insufficient funds" {
		t.Fatalf("detail: want the bare sentinel text, got %q", body.Detail)
	}
}
