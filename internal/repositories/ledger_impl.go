package repositories

import (
	"context"
	"errors"
	"fmt"

	"tally/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) CreateAccount(account *models.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *ledgerRepository) GetAccount(id uuid.UUID) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// LockAccountForUpdate reads the account row under SELECT ... FOR UPDATE.
// Concurrent lockers of the same row block here until the holding
// transaction commits or rolls back.
func (r *ledgerRepository) LockAccountForUpdate(id uuid.UUID) (*models.Account, error) {
	var account models.Account
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&account, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}
	return &account, nil
}

// SaveAccount persists the account. Version is bumped as part of the same
// write so every committed balance mutation is observable to optimistic
// readers.
func (r *ledgerRepository) SaveAccount(account *models.Account) error {
	account.Version++
	if err := r.db.Save(account).Error; err != nil {
		account.Version--
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

func (r *ledgerRepository) ListAccounts(ctx context.Context, offset, limit int, order string) ([]models.Account, int64, error) {
	var accounts []models.Account
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Account{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	err := r.db.WithContext(ctx).
		Order(order).
		Limit(limit).
		Offset(offset).
		Find(&accounts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, total, nil
}

func (r *ledgerRepository) CreateTransaction(tx *models.Transaction) error {
	if err := r.db.Create(tx).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateIdempotencyKey
		}
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *ledgerRepository) GetTransactionByID(id uuid.UUID) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

func (r *ledgerRepository) FindTransactionByIdempotencyKey(key string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.Where("idempotency_key = ?", key).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by idempotency key: %w", err)
	}
	return &tx, nil
}

func (r *ledgerRepository) ListTransactions(ctx context.Context, accountID uuid.UUID, offset, limit int) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("account_id = ?", accountID).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	err = r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&transactions).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, total, nil
}

func (r *ledgerRepository) GetRecentTransactions(ctx context.Context, accountID uuid.UUID, limit int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recent transactions: %w", err)
	}
	return transactions, nil
}

func (r *ledgerRepository) ExecuteInTransaction(fn func(LedgerRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerRepository{db: tx})
	})
}
