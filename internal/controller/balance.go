package controller

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/rublebank/rubank/internal/service"
)

type BalanceController struct {
	balanceService service.BalanceService
	logger         *zap.Logger
}

func NewBalanceController(balanceService service.BalanceService, logger *zap.Logger) *BalanceController {
	return &BalanceController{
		balanceService: balanceService,
		logger:         logger,
	}
}

func (c *BalanceController) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(r)
	if !ok {
		renderError(w, r, http.StatusBadRequest, "user_id required")
		return
	}

	balance, err := c.balanceService.GetBalance(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			renderError(w, r, http.StatusNotFound, err.Error())
			return
		}
		c.logger.Error("Failed to read balance",
			zap.Int64("user_id", userID),
			zap.Error(err))
		renderError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	render.JSON(w, r, map[string]float64{"balance": balance.InexactFloat64()})
}
