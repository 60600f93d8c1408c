package transfer

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rublebank/rubank/internal/core"
	"github.com/rublebank/rubank/internal/model"
	"github.com/rublebank/rubank/internal/session"
)

// DefaultDescription is used when the sender leaves the comment empty.
const DefaultDescription = "Transfer"

// ValidationError reports input rejected locally, before any network
// call is issued.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Service drives the transfer cycle: local validation, one gateway
// call, then reconciliation of the cached balance against the
// server-reported result.
type Service struct {
	gateway core.Gateway
	session *session.Store
	history *History
	logger  *zap.Logger
}

func NewService(gateway core.Gateway, sess *session.Store, history *History, logger *zap.Logger) *Service {
	return &Service{
		gateway: gateway,
		session: sess,
		history: history,
		logger:  logger,
	}
}

// Submit runs one full transfer cycle. Validation failures return
// before any gateway call; gateway failures leave the cached balance
// and transaction cache unchanged. On success the cached balance is set
// to the server's post-transfer value and req is reset. historyActive
// reports whether the history screen is showing; when true a successful
// transfer triggers exactly one history refresh so the new record is
// visible without a manual reload.
func (s *Service) Submit(ctx context.Context, req *model.TransferRequest, historyActive bool) error {
	current := s.session.Current()
	if current == nil {
		return &ValidationError{Message: "not signed in"}
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return &ValidationError{Message: "invalid amount"}
	}

	recipient := strings.TrimSpace(req.ToUsername)
	if recipient == "" {
		return &ValidationError{Message: "missing recipient"}
	}

	description := req.Description
	if description == "" {
		description = DefaultDescription
	}

	newBalance, err := s.gateway.Transfer(ctx, current.ID, recipient, amount, description)
	if err != nil {
		return err
	}

	// Only the server's post-transfer balance is ever applied; the
	// client never subtracts the amount itself.
	s.session.SetBalance(newBalance)
	s.logger.Info("Transfer completed",
		zap.String("to_username", recipient),
		zap.String("amount", amount.String()),
		zap.String("new_balance", newBalance.String()))
	req.Reset()

	if historyActive {
		_ = s.history.Load(ctx)
	}

	return nil
}
