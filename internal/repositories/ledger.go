package repositories

import (
	"context"
	"errors"

	"tally/internal/models"

	"github.com/google/uuid"
)

var (
	ErrAccountNotFound         = errors.New("account not found")
	ErrTransactionNotFound     = errors.New("transaction not found")
	ErrDuplicateIdempotencyKey = errors.New("idempotency key already used")
)

// LedgerRepository defines the storage operations for accounts and their
// append-only transaction ledger.
//
// LockAccountForUpdate and the write methods are only meaningful inside
// ExecuteInTransaction: the row lock is held until the enclosing storage
// transaction commits or rolls back.
type LedgerRepository interface {
	// Account operations
	CreateAccount(account *models.Account) error
	GetAccount(id uuid.UUID) (*models.Account, error)
	LockAccountForUpdate(id uuid.UUID) (*models.Account, error)
	SaveAccount(account *models.Account) error
	ListAccounts(ctx context.Context, offset, limit int, order string) ([]models.Account, int64, error)

	// Ledger operations
	CreateTransaction(tx *models.Transaction) error
	GetTransactionByID(id uuid.UUID) (*models.Transaction, error)
	FindTransactionByIdempotencyKey(key string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, accountID uuid.UUID, offset, limit int) ([]models.Transaction, int64, error)
	GetRecentTransactions(ctx context.Context, accountID uuid.UUID, limit int) ([]models.Transaction, error)

	// ExecuteInTransaction runs fn with a repository scoped to a single
	// atomic storage transaction. It commits on nil return, rolls back on
	// error and propagates that error unchanged.
	ExecuteInTransaction(fn func(LedgerRepository) error) error
}
