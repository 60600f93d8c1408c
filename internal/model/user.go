package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Identity is the authenticated user's cached profile. Balance is a
// snapshot of the last server-reported value and is never derived by
// client-side arithmetic.
type Identity struct {
	ID       int64           `json:"id"`
	Username string          `json:"username"`
	FullName string          `json:"full_name"`
	Balance  decimal.Decimal `json:"balance"`
}

// UserRef identifies one side of a transfer.
type UserRef struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// Credentials carries login or registration input. FullName is only
// used for registration.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

// User is an account row in the demo backend. The password hash stays
// inside the repository and service layers.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	FullName     string
	Balance      decimal.Decimal
	CreatedAt    time.Time
}

// Identity strips the User down to the profile shape served to clients.
func (u *User) Identity() *Identity {
	return &Identity{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Balance:  u.Balance,
	}
}
