package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rublebank/rubank/internal/model"
	"github.com/rublebank/rubank/internal/repository"
)

// MockTransactionRepository is a mock implementation of
// TransactionRepository for testing.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) History(ctx context.Context, userID int64, limit int) ([]*model.TransactionRecord, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.TransactionRecord), args.Error(1)
}

func (m *MockTransactionRepository) Transfer(ctx context.Context, fromUserID, toUserID int64, amount decimal.Decimal, description string) (int64, decimal.Decimal, error) {
	args := m.Called(ctx, fromUserID, toUserID, amount, description)
	return args.Get(0).(int64), args.Get(1).(decimal.Decimal), args.Error(2)
}

func newTransferFixture() (*MockUserRepository, *MockTransactionRepository, TransferService) {
	userRepo := new(MockUserRepository)
	txRepo := new(MockTransactionRepository)
	return userRepo, txRepo, NewTransferService(userRepo, txRepo, zap.NewNop())
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()
	userRepo, txRepo, svc := newTransferFixture()

	userRepo.On("GetByID", ctx, int64(1)).Return(&model.User{ID: 1, Username: "demo"}, nil)
	userRepo.On("GetByUsername", ctx, "maria").Return(&model.User{ID: 2, Username: "maria"}, nil)
	txRepo.On("Transfer", ctx, int64(1), int64(2), decimal.NewFromInt(1000), "lunch").
		Return(int64(42), decimal.NewFromInt(9000), nil)

	txID, newBalance, err := svc.Transfer(ctx, 1, " Maria ", decimal.NewFromInt(1000), "lunch")

	require.NoError(t, err)
	assert.Equal(t, int64(42), txID)
	assert.True(t, newBalance.Equal(decimal.NewFromInt(9000)))
	txRepo.AssertExpectations(t)
}

func TestTransfer_DescriptionDefaulted(t *testing.T) {
	ctx := context.Background()
	userRepo, txRepo, svc := newTransferFixture()

	userRepo.On("GetByID", ctx, int64(1)).Return(&model.User{ID: 1}, nil)
	userRepo.On("GetByUsername", ctx, "maria").Return(&model.User{ID: 2, Username: "maria"}, nil)
	txRepo.On("Transfer", ctx, int64(1), int64(2), decimal.NewFromInt(100), "Transfer").
		Return(int64(7), decimal.NewFromInt(9900), nil)

	_, _, err := svc.Transfer(ctx, 1, "maria", decimal.NewFromInt(100), "")
	require.NoError(t, err)
	txRepo.AssertExpectations(t)
}

func TestTransfer_InvalidAmount(t *testing.T) {
	ctx := context.Background()
	userRepo, txRepo, svc := newTransferFixture()

	_, _, err := svc.Transfer(ctx, 1, "maria", decimal.Zero, "")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, _, err = svc.Transfer(ctx, 1, "maria", decimal.NewFromInt(-5), "")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	txRepo.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransfer_SenderNotFound(t *testing.T) {
	ctx := context.Background()
	userRepo, _, svc := newTransferFixture()

	userRepo.On("GetByID", ctx, int64(99)).Return(nil, nil)

	_, _, err := svc.Transfer(ctx, 99, "maria", decimal.NewFromInt(100), "")
	assert.ErrorIs(t, err, ErrSenderNotFound)
}

func TestTransfer_RecipientNotFound(t *testing.T) {
	ctx := context.Background()
	userRepo, txRepo, svc := newTransferFixture()

	userRepo.On("GetByID", ctx, int64(1)).Return(&model.User{ID: 1}, nil)
	userRepo.On("GetByUsername", ctx, "nobody").Return(nil, nil)

	_, _, err := svc.Transfer(ctx, 1, "nobody", decimal.NewFromInt(100), "")
	assert.ErrorIs(t, err, ErrRecipientNotFound)
	txRepo.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransfer_SelfTransfer(t *testing.T) {
	ctx := context.Background()
	userRepo, txRepo, svc := newTransferFixture()

	userRepo.On("GetByID", ctx, int64(1)).Return(&model.User{ID: 1, Username: "demo"}, nil)
	userRepo.On("GetByUsername", ctx, "demo").Return(&model.User{ID: 1, Username: "demo"}, nil)

	_, _, err := svc.Transfer(ctx, 1, "demo", decimal.NewFromInt(100), "")
	assert.ErrorIs(t, err, ErrSelfTransfer)
	txRepo.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransfer_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	userRepo, txRepo, svc := newTransferFixture()

	userRepo.On("GetByID", ctx, int64(1)).Return(&model.User{ID: 1}, nil)
	userRepo.On("GetByUsername", ctx, "maria").Return(&model.User{ID: 2, Username: "maria"}, nil)
	txRepo.On("Transfer", ctx, int64(1), int64(2), decimal.NewFromInt(1000000), "Transfer").
		Return(int64(0), decimal.Zero, repository.ErrInsufficientFunds)

	_, _, err := svc.Transfer(ctx, 1, "maria", decimal.NewFromInt(1000000), "")
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestHistory_DelegatesWithLimit(t *testing.T) {
	ctx := context.Background()
	_, txRepo, svc := newTransferFixture()

	records := []*model.TransactionRecord{{ID: 1}}
	txRepo.On("History", ctx, int64(1), 50).Return(records, nil)

	got, err := svc.History(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}
