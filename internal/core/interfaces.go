package core

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rublebank/rubank/internal/model"
)

type (
	// Gateway is the client's view of the three independent remote
	// banking endpoints. Every call is issued at most once per user
	// action; a failed call leaves all cached state unchanged.
	Gateway interface {
		Authenticate(ctx context.Context, action string, creds model.Credentials) (*model.Identity, error)
		ListTransactions(ctx context.Context, userID int64) ([]model.TransactionRecord, error)
		ReadBalance(ctx context.Context, userID int64) (decimal.Decimal, bool, error)
		Transfer(ctx context.Context, fromUserID int64, toUsername string, amount decimal.Decimal, description string) (decimal.Decimal, error)
	}

	// Notifier surfaces exactly one outcome per completed operation.
	Notifier interface {
		Notify(n model.Notification)
	}
)
