package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"github.com/rublebank/rubank/internal/model"
)

// renderError writes the {error: string} body the hosted endpoints
// served on every failure.
func renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": message})
}

func parseUserID(r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Wire payloads. The contracts require JSON numbers for money, so
// decimals are converted at this boundary only.

type userPayload struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	FullName string  `json:"full_name"`
	Balance  float64 `json:"balance"`
}

func newUserPayload(u *model.User) userPayload {
	return userPayload{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Balance:  u.Balance.InexactFloat64(),
	}
}

type userRefPayload struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

type transactionPayload struct {
	ID          int64           `json:"id"`
	Amount      float64         `json:"amount"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	FromUser    *userRefPayload `json:"from_user"`
	ToUser      *userRefPayload `json:"to_user"`
}

func newTransactionPayload(rec *model.TransactionRecord) transactionPayload {
	p := transactionPayload{
		ID:          rec.ID,
		Amount:      rec.Amount.InexactFloat64(),
		Type:        rec.Type,
		Description: rec.Description,
		Date:        rec.Date,
	}
	if rec.FromUser != nil {
		p.FromUser = &userRefPayload{ID: rec.FromUser.ID, Username: rec.FromUser.Username, FullName: rec.FromUser.FullName}
	}
	if rec.ToUser != nil {
		p.ToUser = &userRefPayload{ID: rec.ToUser.ID, Username: rec.ToUser.Username, FullName: rec.ToUser.FullName}
	}
	return p
}
