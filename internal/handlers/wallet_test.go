package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"tally/internal/models"
	"tally/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) Apply(ctx context.Context, op wallet.Operation) (*wallet.OperationResult, error) {
	args := m.Called(ctx, op)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.OperationResult), args.Error(1)
}

func (m *MockWalletService) Credit(ctx context.Context, op wallet.Operation) (*wallet.OperationResult, error) {
	op.Kind = wallet.KindCredit
	return m.Apply(ctx, op)
}

func (m *MockWalletService) Debit(ctx context.Context, op wallet.Operation) (*wallet.OperationResult, error) {
	op.Kind = wallet.KindDebit
	return m.Apply(ctx, op)
}

func newWalletApp(svc wallet.Service) *fiber.App {
	app := fiber.New()
	handler := NewWalletHandler(svc)
	app.Post("/api/accounts/:id/credit", handler.CreditAccount)
	app.Post("/api/accounts/:id/debit", handler.DebitAccount)
	return app
}

func postOperation(t *testing.T, app *fiber.App, path string, body map[string]interface{}, idempotencyKey string) (*fiber.App, int, map[string]interface{}) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set(IdempotencyKeyHeader, idempotencyKey)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return app, resp.StatusCode, decoded
}

func TestWalletHandler_CreditAccount(t *testing.T) {
	accountID := uuid.New()
	txID := uuid.New()
	svc := new(MockWalletService)
	app := newWalletApp(svc)

	svc.On("Apply", mock.Anything, wallet.Operation{
		AccountID:      accountID,
		Kind:           wallet.KindCredit,
		Amount:         5000,
		Description:    "refund",
		IdempotencyKey: "K1",
	}).Return(&wallet.OperationResult{
		Transaction: &models.Transaction{
			ID:           txID,
			AccountID:    accountID,
			Type:         models.TransactionTypeCredit,
			Amount:       5000,
			BalanceAfter: 15000,
		},
		PreviousBalance: 10000,
		NewBalance:      15000,
	}, nil)

	_, status, body := postOperation(t, app, "/api/accounts/"+accountID.String()+"/credit",
		map[string]interface{}{"amount": 5000, "description": "refund"}, "K1")

	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(10000), body["previous_balance"])
	assert.Equal(t, float64(15000), body["new_balance"])
	svc.AssertExpectations(t)
}

func TestWalletHandler_DebitAccount_InsufficientFunds(t *testing.T) {
	accountID := uuid.New()
	svc := new(MockWalletService)
	app := newWalletApp(svc)

	svc.On("Apply", mock.Anything, mock.Anything).
		Return(nil, &wallet.InsufficientFundsError{Balance: 10000, Requested: 15000})

	_, status, body := postOperation(t, app, "/api/accounts/"+accountID.String()+"/debit",
		map[string]interface{}{"amount": 15000}, "")

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["error"], "insufficient funds")
}

func TestWalletHandler_UnknownAccount(t *testing.T) {
	accountID := uuid.New()
	svc := new(MockWalletService)
	app := newWalletApp(svc)

	svc.On("Apply", mock.Anything, mock.Anything).
		Return(nil, &wallet.AccountNotFoundError{AccountID: accountID})

	_, status, _ := postOperation(t, app, "/api/accounts/"+accountID.String()+"/credit",
		map[string]interface{}{"amount": 5000}, "")

	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestWalletHandler_DuplicateOperation(t *testing.T) {
	accountID := uuid.New()
	existingTxID := uuid.New()
	svc := new(MockWalletService)
	app := newWalletApp(svc)

	svc.On("Apply", mock.Anything, mock.Anything).
		Return(nil, &wallet.DuplicateOperationError{IdempotencyKey: "K1", TransactionID: existingTxID})

	_, status, body := postOperation(t, app, "/api/accounts/"+accountID.String()+"/credit",
		map[string]interface{}{"amount": 5000}, "K1")

	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, existingTxID.String(), body["existing_transaction_id"])
}

func TestWalletHandler_StorageUnavailable(t *testing.T) {
	accountID := uuid.New()
	svc := new(MockWalletService)
	app := newWalletApp(svc)

	svc.On("Apply", mock.Anything, mock.Anything).
		Return(nil, &wallet.StorageError{Err: fmt.Errorf("connection refused")})

	_, status, _ := postOperation(t, app, "/api/accounts/"+accountID.String()+"/debit",
		map[string]interface{}{"amount": 5000}, "")

	assert.Equal(t, fiber.StatusServiceUnavailable, status)
}

func TestWalletHandler_BadRequests(t *testing.T) {
	svc := new(MockWalletService)
	app := newWalletApp(svc)
	accountID := uuid.New()

	t.Run("malformed account id", func(t *testing.T) {
		_, status, _ := postOperation(t, app, "/api/accounts/not-a-uuid/credit",
			map[string]interface{}{"amount": 5000}, "")
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("zero amount", func(t *testing.T) {
		_, status, _ := postOperation(t, app, "/api/accounts/"+accountID.String()+"/credit",
			map[string]interface{}{"amount": 0}, "")
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("negative amount", func(t *testing.T) {
		_, status, _ := postOperation(t, app, "/api/accounts/"+accountID.String()+"/debit",
			map[string]interface{}{"amount": -100}, "")
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	svc.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything)
}
