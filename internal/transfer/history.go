package transfer

import (
	"context"

	"go.uber.org/zap"

	"github.com/rublebank/rubank/internal/core"
	"github.com/rublebank/rubank/internal/model"
	"github.com/rublebank/rubank/internal/session"
)

// History caches the most recent transactions fetch. The cache is only
// ever replaced wholesale; individual records are never mutated.
type History struct {
	gateway  core.Gateway
	session  *session.Store
	notifier core.Notifier
	logger   *zap.Logger
	records  []model.TransactionRecord
}

func NewHistory(gateway core.Gateway, sess *session.Store, notifier core.Notifier, logger *zap.Logger) *History {
	return &History{
		gateway:  gateway,
		session:  sess,
		notifier: notifier,
		logger:   logger,
	}
}

// Load fetches the transaction list and then the current balance. A
// failed transactions fetch surfaces one notification and leaves the
// cache untouched. A failed or empty balance read is tolerated: the
// fetched transactions are still kept and the cached balance silently
// keeps its last known value.
func (h *History) Load(ctx context.Context) error {
	current := h.session.Current()
	if current == nil {
		return nil
	}

	records, err := h.gateway.ListTransactions(ctx, current.ID)
	if err != nil {
		h.logger.Warn("Failed to load transactions", zap.Error(err))
		h.notifier.Notify(model.Notification{
			Title:       "Error",
			Description: "could not load transaction history",
			Severity:    model.SeverityDestructive,
		})
		return err
	}
	h.records = records

	balance, ok, err := h.gateway.ReadBalance(ctx, current.ID)
	if err != nil {
		h.logger.Debug("Balance refresh failed, keeping cached value", zap.Error(err))
		return nil
	}
	if ok {
		h.session.SetBalance(balance)
	}

	return nil
}

// Records returns the most recently fetched history.
func (h *History) Records() []model.TransactionRecord {
	return h.records
}
