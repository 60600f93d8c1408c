package controller

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rublebank/rubank/internal/service"
)

type TransactionsController struct {
	transferService service.TransferService
	logger          *zap.Logger
}

func NewTransactionsController(transferService service.TransferService, logger *zap.Logger) *TransactionsController {
	return &TransactionsController{
		transferService: transferService,
		logger:          logger,
	}
}

// List returns the user's most recent transfers with both counterparty
// references resolved.
func (c *TransactionsController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(r)
	if !ok {
		renderError(w, r, http.StatusBadRequest, "user_id required")
		return
	}

	records, err := c.transferService.History(r.Context(), userID)
	if err != nil {
		c.logger.Error("Failed to load history",
			zap.Int64("user_id", userID),
			zap.Error(err))
		renderError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	payload := make([]transactionPayload, 0, len(records))
	for _, rec := range records {
		payload = append(payload, newTransactionPayload(rec))
	}

	render.JSON(w, r, map[string]any{"transactions": payload})
}

// Transfer applies a peer-to-peer transfer and returns the sender's
// post-transfer balance.
func (c *TransactionsController) Transfer(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FromUserID  int64   `json:"from_user_id"`
		ToUsername  string  `json:"to_username"`
		Amount      float64 `json:"amount"`
		Description string  `json:"description"`
	}

	if err := render.DecodeJSON(r.Body, &request); err != nil {
		c.logger.Debug("Invalid request format", zap.Error(err))
		renderError(w, r, http.StatusBadRequest, "invalid request format")
		return
	}

	txID, newBalance, err := c.transferService.Transfer(r.Context(),
		request.FromUserID, request.ToUsername, decimal.NewFromFloat(request.Amount), request.Description)
	if err != nil {
		c.logger.Warn("Transfer rejected",
			zap.Int64("from_user_id", request.FromUserID),
			zap.String("to_username", request.ToUsername),
			zap.Error(err))

		switch {
		case errors.Is(err, service.ErrSenderNotFound),
			errors.Is(err, service.ErrRecipientNotFound):
			renderError(w, r, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInsufficientFunds),
			errors.Is(err, service.ErrSelfTransfer),
			errors.Is(err, service.ErrInvalidAmount):
			renderError(w, r, http.StatusBadRequest, err.Error())
		default:
			renderError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	render.JSON(w, r, map[string]any{
		"success":        true,
		"transaction_id": txID,
		"new_balance":    newBalance.InexactFloat64(),
	})
}
