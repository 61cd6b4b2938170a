package handlers

import (
	"context"
	"errors"

	"tally/internal/services/wallet"
	"tally/internal/utils/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// IdempotencyKeyHeader carries the caller-supplied retry token.
const IdempotencyKeyHeader = "X-Idempotency-Key"

type WalletHandler struct {
	walletService wallet.Service
	validate      *validator.Validate
}

func NewWalletHandler(walletService wallet.Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		validate:      validator.New(),
	}
}

type operationRequest struct {
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// CreditAccount handles POST /api/accounts/:id/credit.
func (h *WalletHandler) CreditAccount(c *fiber.Ctx) error {
	return h.applyOperation(c, h.walletService.Credit)
}

// DebitAccount handles POST /api/accounts/:id/debit.
func (h *WalletHandler) DebitAccount(c *fiber.Ctx) error {
	return h.applyOperation(c, h.walletService.Debit)
}

func (h *WalletHandler) applyOperation(
	c *fiber.Ctx,
	apply func(context.Context, wallet.Operation) (*wallet.OperationResult, error),
) error {
	accountID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid account id")
	}

	var input operationRequest
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if err := h.validate.Struct(input); err != nil {
		return response.BadRequest(c, "Amount must be a positive integer in cents; description is limited to 500 characters")
	}

	result, err := apply(c.Context(), wallet.Operation{
		AccountID:      accountID,
		Amount:         input.Amount,
		Description:    input.Description,
		IdempotencyKey: c.Get(IdempotencyKeyHeader),
	})
	if err != nil {
		return walletError(c, err)
	}

	return response.Created(c, fiber.Map{
		"success":          true,
		"transaction":      result.Transaction,
		"previous_balance": result.PreviousBalance,
		"new_balance":      result.NewBalance,
	})
}

// walletError maps the engine's typed failures to HTTP responses.
func walletError(c *fiber.Ctx, err error) error {
	var notFound *wallet.AccountNotFoundError
	var insufficient *wallet.InsufficientFundsError
	var duplicate *wallet.DuplicateOperationError
	var storage *wallet.StorageError

	switch {
	case errors.As(err, &notFound):
		return response.NotFound(c, notFound.Error())
	case errors.As(err, &insufficient):
		return response.BadRequest(c, insufficient.Error())
	case errors.As(err, &duplicate):
		return response.Conflict(c, fiber.Map{
			"error":                   duplicate.Error(),
			"existing_transaction_id": duplicate.TransactionID,
		})
	case errors.As(err, &storage):
		return response.ServiceUnavailable(c, "Storage temporarily unavailable, retry the request")
	case errors.Is(err, wallet.ErrInvalidAmount),
		errors.Is(err, wallet.ErrDescriptionTooLong),
		errors.Is(err, wallet.ErrInvalidKind):
		return response.BadRequest(c, err.Error())
	default:
		return response.InternalError(c, "Operation failed")
	}
}
