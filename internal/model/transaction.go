package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction classifies a transaction relative to the viewing user.
type Direction int

const (
	DirectionIncoming Direction = iota
	DirectionOutgoing
)

// TransactionRecord is one historical transfer as reported by the
// ledger service. Records are immutable once fetched; the client only
// replaces its cached sequence wholesale.
type TransactionRecord struct {
	ID          int64           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	FromUser    *UserRef        `json:"from_user"`
	ToUser      *UserRef        `json:"to_user"`
}

// Direction reports incoming iff the record's recipient is the given
// user; everything else is outgoing.
func (t *TransactionRecord) Direction(userID int64) Direction {
	if t.ToUser != nil && t.ToUser.ID == userID {
		return DirectionIncoming
	}
	return DirectionOutgoing
}

// Counterparty returns the other side of the record for display. A
// record with no resolvable reference gets a placeholder instead of
// failing.
func (t *TransactionRecord) Counterparty(userID int64) UserRef {
	var other *UserRef
	if t.Direction(userID) == DirectionIncoming {
		other = t.FromUser
	} else {
		other = t.ToUser
	}
	if other == nil {
		return UserRef{Username: "unknown", FullName: "Unknown"}
	}
	return *other
}

// TransferRequest holds form input for a pending transfer. Amount is
// kept as the raw string until validation.
type TransferRequest struct {
	ToUsername  string
	Amount      string
	Description string
}

// Reset clears the request after a successful submission.
func (r *TransferRequest) Reset() {
	*r = TransferRequest{}
}
