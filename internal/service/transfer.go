package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rublebank/rubank/internal/model"
	"github.com/rublebank/rubank/internal/repository"
)

var (
	ErrSenderNotFound    = errors.New("sender not found")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSelfTransfer      = errors.New("cannot transfer to yourself")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
)

const historyLimit = 50

const defaultTransferDescription = "Transfer"

type TransferService interface {
	Transfer(ctx context.Context, fromUserID int64, toUsername string, amount decimal.Decimal, description string) (int64, decimal.Decimal, error)
	History(ctx context.Context, userID int64) ([]*model.TransactionRecord, error)
}

type transferService struct {
	userRepo repository.UserRepository
	txRepo   repository.TransactionRepository
	logger   *zap.Logger
}

func NewTransferService(userRepo repository.UserRepository, txRepo repository.TransactionRepository, logger *zap.Logger) TransferService {
	return &transferService{
		userRepo: userRepo,
		txRepo:   txRepo,
		logger:   logger,
	}
}

func (s *transferService) Transfer(ctx context.Context, fromUserID int64, toUsername string, amount decimal.Decimal, description string) (int64, decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return 0, decimal.Zero, ErrInvalidAmount
	}

	sender, err := s.userRepo.GetByID(ctx, fromUserID)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("failed to look up sender: %w", err)
	}
	if sender == nil {
		return 0, decimal.Zero, ErrSenderNotFound
	}

	recipient, err := s.userRepo.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(toUsername)))
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("failed to look up recipient: %w", err)
	}
	if recipient == nil {
		return 0, decimal.Zero, ErrRecipientNotFound
	}

	if sender.ID == recipient.ID {
		return 0, decimal.Zero, ErrSelfTransfer
	}

	if description == "" {
		description = defaultTransferDescription
	}

	txID, newBalance, err := s.txRepo.Transfer(ctx, sender.ID, recipient.ID, amount, description)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientFunds) {
			return 0, decimal.Zero, ErrInsufficientFunds
		}
		return 0, decimal.Zero, err
	}

	s.logger.Info("Transfer applied",
		zap.Int64("from_user_id", sender.ID),
		zap.Int64("to_user_id", recipient.ID),
		zap.String("amount", amount.String()))

	return txID, newBalance, nil
}

func (s *transferService) History(ctx context.Context, userID int64) ([]*model.TransactionRecord, error) {
	return s.txRepo.History(ctx, userID, historyLimit)
}
