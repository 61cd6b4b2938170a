package handlers

import (
	"context"
	"net/http/httptest"
	"testing"

	"tally/internal/models"
	"tally/internal/repositories"
	"tally/internal/services/account"
	"tally/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountDetail(ctx context.Context, id uuid.UUID, transactionLimit int) (*account.Detail, error) {
	args := m.Called(ctx, id, transactionLimit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Detail), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, p pagination.Pagination, sort pagination.Sort) ([]models.Account, int64, error) {
	args := m.Called(ctx, p, sort)
	return args.Get(0).([]models.Account), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccountService) ListTransactions(ctx context.Context, accountID uuid.UUID, p pagination.Pagination) ([]models.Transaction, int64, error) {
	args := m.Called(ctx, accountID, p)
	return args.Get(0).([]models.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccountService) GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func newAccountApp(svc account.Service) *fiber.App {
	app := fiber.New()
	handler := NewAccountHandler(svc)
	app.Get("/api/accounts/:id", handler.GetAccount)
	app.Get("/api/transactions/:id", handler.GetTransaction)
	return app
}

func TestAccountHandler_GetAccount_ClampsTransactionLimit(t *testing.T) {
	accountID := uuid.New()
	svc := new(MockAccountService)
	app := newAccountApp(svc)

	detail := &account.Detail{Account: models.Account{ID: accountID, Username: "alice"}}
	svc.On("GetAccountDetail", mock.Anything, accountID, pagination.MaxLimit).Return(detail, nil)

	resp, err := app.Test(httptest.NewRequest("GET",
		"/api/accounts/"+accountID.String()+"?transactionLimit=100000", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestAccountHandler_GetTransaction(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		txID := uuid.New()
		svc := new(MockAccountService)
		app := newAccountApp(svc)

		stored := &models.Transaction{ID: txID, Type: models.TransactionTypeCredit, Amount: 5000}
		svc.On("GetTransaction", mock.Anything, txID).Return(stored, nil)

		resp, err := app.Test(httptest.NewRequest("GET", "/api/transactions/"+txID.String(), nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		txID := uuid.New()
		svc := new(MockAccountService)
		app := newAccountApp(svc)

		svc.On("GetTransaction", mock.Anything, txID).Return(nil, repositories.ErrTransactionNotFound)

		resp, err := app.Test(httptest.NewRequest("GET", "/api/transactions/"+txID.String(), nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc := new(MockAccountService)
		app := newAccountApp(svc)

		resp, err := app.Test(httptest.NewRequest("GET", "/api/transactions/not-a-uuid", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		svc.AssertNotCalled(t, "GetTransaction", mock.Anything, mock.Anything)
	})
}
