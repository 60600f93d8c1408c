package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rublebank/rubank/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository for
// testing.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo)

	userRepo.On("GetByUsername", ctx, "ivan_petrov").Return(nil, nil)
	userRepo.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
		if u.Username != "ivan_petrov" || u.FullName != "Ivan Petrov" {
			return false
		}
		if !u.Balance.Equal(decimal.NewFromInt(10000)) {
			return false
		}
		// The stored hash must verify against the original password.
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")) == nil
	})).Return(nil)

	user, err := svc.Register(ctx, "Ivan_Petrov", "secret1", "Ivan Petrov")

	require.NoError(t, err)
	assert.Equal(t, "ivan_petrov", user.Username)
	userRepo.AssertExpectations(t)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo)

	userRepo.On("GetByUsername", ctx, "demo").Return(&model.User{ID: 1, Username: "demo"}, nil)

	_, err := svc.Register(ctx, "demo", "secret1", "Demo User")

	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_InputValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(new(MockUserRepository))

	tests := []struct {
		name     string
		username string
		password string
		fullName string
		wantErr  error
	}{
		{"short username", "ab", "secret1", "A B", ErrInvalidUsername},
		{"username with spaces", "ivan petrov", "secret1", "A B", ErrInvalidUsername},
		{"short password", "ivan", "12345", "A B", ErrInvalidPassword},
		{"missing full name", "ivan", "secret1", "  ", ErrMissingFullName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.username, tt.password, tt.fullName)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo)

	hash, err := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo.On("GetByUsername", ctx, "demo").Return(&model.User{
		ID:           1,
		Username:     "demo",
		PasswordHash: string(hash),
		FullName:     "Demo User",
		Balance:      decimal.NewFromInt(10000),
	}, nil)

	user, err := svc.Login(ctx, "Demo", "demo123")

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.True(t, user.Balance.Equal(decimal.NewFromInt(10000)))
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo)

	hash, err := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo.On("GetByUsername", ctx, "demo").Return(&model.User{
		ID:           1,
		Username:     "demo",
		PasswordHash: string(hash),
	}, nil)

	_, err = svc.Login(ctx, "demo", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo)

	userRepo.On("GetByUsername", ctx, "ghost").Return(nil, nil)

	_, err := svc.Login(ctx, "ghost", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
