package api

import (
	"time"

	"github.com/betarena/core/internal/repos/ledger"
	"github.com/betarena/core/internal/repos/users"
	"github.com/betarena/core/internal/repos/wagers"
)

// Money travels as integer cents; formatting is a client concern.

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Balance   int64     `json:"balance"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *users.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Balance:   u.Balance,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

type wagerResponse struct {
	ID               string     `json:"id"`
	InviteCode       string     `json:"invite_code"`
	EventType        string     `json:"event_type"`
	EventTitle       string     `json:"event_title"`
	EventDescription string     `json:"event_description"`
	EventID          string     `json:"event_id,omitempty"`
	Side             string     `json:"side,omitempty"`
	SideName         string     `json:"side_name,omitempty"`
	Amount           int64      `json:"amount"`
	CreatorID        string     `json:"creator_id"`
	OpponentID       string     `json:"opponent_id,omitempty"`
	WinnerID         string     `json:"winner_id,omitempty"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	ExpiresAt        time.Time  `json:"expires_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

func toWagerResponse(w *wagers.Wager) wagerResponse {
	return wagerResponse{
		ID:               w.ID,
		InviteCode:       w.InviteCode,
		EventType:        string(w.EventType),
		EventTitle:       w.EventTitle,
		EventDescription: w.EventDescription,
		EventID:          w.EventID,
		Side:             string(w.Side),
		SideName:         w.SideName,
		Amount:           w.Amount,
		CreatorID:        w.CreatorID,
		OpponentID:       w.OpponentID,
		WinnerID:         w.WinnerID,
		Status:           string(w.Status),
		CreatedAt:        w.CreatedAt,
		ExpiresAt:        w.ExpiresAt,
		CompletedAt:      w.CompletedAt,
	}
}

func toWagerResponses(ws []wagers.Wager) []wagerResponse {
	out := make([]wagerResponse, 0, len(ws))

	for i := range ws {
		out = append(out, toWagerResponse(&ws[i]))
	}

	return out
}

type entryResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Amount    int64     `json:"amount"`
	Status    string    `json:"status"`
	WagerID   string    `json:"wager_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toEntryResponses(es []ledger.Entry) []entryResponse {
	out := make([]entryResponse, 0, len(es))

	for _, e := range es {
		out = append(out, entryResponse{
			ID:        e.ID,
			UserID:    e.UserID,
			Type:      string(e.Type),
			Amount:    e.Amount,
			Status:    string(e.Status),
			WagerID:   e.WagerID,
			CreatedAt: e.CreatedAt,
		})
	}

	return out
}
