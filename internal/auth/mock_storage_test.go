package auth_test

import (
	"context"

	"laporrt/backend/internal/models"
	"laporrt/backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

// MockStorage mocks the account methods used by the auth service.
// Calling any other Storage method panics.
type MockStorage struct {
	mock.Mock
	storage.Storage
}

func (m *MockStorage) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	args := m.Called(ctx, email)
	a, _ := args.Get(0).(*models.Account)
	return a, args.Error(1)
}

func (m *MockStorage) CreateAccount(ctx context.Context, account *models.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}
