package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/rublebank/rubank/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

type BalanceService interface {
	GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error)
}

type balanceService struct {
	userRepo repository.UserRepository
}

func NewBalanceService(userRepo repository.UserRepository) BalanceService {
	return &balanceService{userRepo: userRepo}
}

func (s *balanceService) GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	balance, err := s.userRepo.GetBalance(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, ErrUserNotFound
		}
		return decimal.Zero, err
	}
	return balance, nil
}
