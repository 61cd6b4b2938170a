package handlers

import (
	"errors"
	"strconv"

	"tally/internal/repositories"
	"tally/internal/services/account"
	"tally/internal/utils/pagination"
	"tally/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Whitelisted sort fields for account listing.
var accountSortFields = []string{"username", "balance", "created_at", "status"}

type AccountHandler struct {
	accountService account.Service
}

func NewAccountHandler(accountService account.Service) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// ListAccounts handles GET /api/accounts.
func (h *AccountHandler) ListAccounts(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)
	sort := pagination.ParseSort(c, accountSortFields, "created_at")

	accounts, total, err := h.accountService.ListAccounts(c.Context(), p, sort)
	if err != nil {
		return response.InternalError(c, "Failed to list accounts")
	}

	p.Total = total
	return c.JSON(pagination.Response(p, accounts))
}

// GetAccount handles GET /api/accounts/:id.
func (h *AccountHandler) GetAccount(c *fiber.Ctx) error {
	accountID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid account id")
	}

	limit, _ := strconv.Atoi(c.Query("transactionLimit", strconv.Itoa(account.DefaultRecentTransactions)))
	if limit > pagination.MaxLimit {
		limit = pagination.MaxLimit
	}

	detail, err := h.accountService.GetAccountDetail(c.Context(), accountID, limit)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return response.NotFound(c, "Account not found")
		}
		return response.InternalError(c, "Failed to get account")
	}

	return response.Success(c, detail)
}

// ListTransactions handles GET /api/accounts/:id/transactions.
func (h *AccountHandler) ListTransactions(c *fiber.Ctx) error {
	accountID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid account id")
	}

	p := pagination.ParseFromRequest(c)
	transactions, total, err := h.accountService.ListTransactions(c.Context(), accountID, p)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return response.NotFound(c, "Account not found")
		}
		return response.InternalError(c, "Failed to list transactions")
	}

	p.Total = total
	return c.JSON(pagination.Response(p, transactions))
}

// GetTransaction handles GET /api/transactions/:id. A 409 on a duplicate
// operation carries the existing transaction id; this is where callers
// fetch the original result.
func (h *AccountHandler) GetTransaction(c *fiber.Ctx) error {
	txID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid transaction id")
	}

	tx, err := h.accountService.GetTransaction(c.Context(), txID)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return response.NotFound(c, "Transaction not found")
		}
		return response.InternalError(c, "Failed to get transaction")
	}

	return response.Success(c, tx)
}
