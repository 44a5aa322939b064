package api

import (
	"errors"
	"net/http"

	"github.com/betarena/core/internal/repos/ledger"
	"github.com/betarena/core/internal/repos/users"
	"github.com/betarena/core/internal/repos/wagers"
	"github.com/betarena/core/internal/services/betting"
	"github.com/betarena/core/internal/services/payments"
)

// writeDomainError maps service errors onto the client contract:
// validation and state conflicts are 400, authorization 403, unknown
// ids 404, gateway trouble 502, anything unexpected a generic 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, users.ErrUserNotFound),
		errors.Is(err, wagers.ErrWagerNotFound),
		errors.Is(err, ledger.ErrEntryNotFound):
		writeDetail(w, http.StatusNotFound, "not found")

	case errors.Is(err, betting.ErrNotAuthorized),
		errors.Is(err, payments.ErrNotAuthorized):
		writeDetail(w, http.StatusForbidden, "not authorized")

	case errors.Is(err, payments.ErrGatewayFailure):
		writeDetail(w, http.StatusBadGateway, "payment gateway failure")

	case errors.Is(err, betting.ErrBelowMinimumStake),
		errors.Is(err, betting.ErrInvalidEventType),
		errors.Is(err, betting.ErrMissingTitle),
		errors.Is(err, betting.ErrInvalidMatchKey),
		errors.Is(err, betting.ErrSelfJoin),
		errors.Is(err, betting.ErrNotWaiting),
		errors.Is(err, betting.ErrWagerExpired),
		errors.Is(err, betting.ErrInvalidState),
		errors.Is(err, betting.ErrInvalidWinner),
		errors.Is(err, betting.ErrAlreadySettled),
		errors.Is(err, users.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrNotPending),
		errors.Is(err, payments.ErrInvalidAmount):
		writeDetail(w, http.StatusBadRequest, detailOf(err))

	default:
		writeDetail(w, http.StatusInternalServerError, "internal error")
	}
}

// detailOf strips wrapping down to the innermost sentinel so clients
// see "insufficient funds" rather than the whole call chain.
func detailOf(err error) string {
	for {
		inner := errors.Unwrap(err)
		if inner == nil {
			return err.Error()
		}

		err = inner
	}
}
