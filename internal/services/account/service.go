// Package account provides read access to accounts and their ledger
// history. All mutations go through the wallet engine.
package account

import (
	"context"
	"errors"
	"fmt"
	"log"

	"tally/internal/models"
	"tally/internal/repositories"
	"tally/internal/utils/pagination"

	"github.com/google/uuid"
)

// DefaultRecentTransactions is how many ledger entries an account detail
// response carries when the caller does not ask for a specific count.
const DefaultRecentTransactions = 10

// Detail is an account together with its most recent ledger entries.
type Detail struct {
	models.Account
	RecentTransactions []models.Transaction `json:"recent_transactions"`
}

// Service exposes account and ledger queries.
type Service interface {
	GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error)
	GetAccountDetail(ctx context.Context, id uuid.UUID, transactionLimit int) (*Detail, error)
	ListAccounts(ctx context.Context, p pagination.Pagination, sort pagination.Sort) ([]models.Account, int64, error)
	ListTransactions(ctx context.Context, accountID uuid.UUID, p pagination.Pagination) ([]models.Transaction, int64, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
}

// Cache is the read-aside cache for account snapshots.
type Cache interface {
	GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error)
	CacheAccount(ctx context.Context, account *models.Account) error
}

type service struct {
	repo  repositories.LedgerRepository
	cache Cache
}

// NewService creates the account read service. The cache is optional.
func NewService(repo repositories.LedgerRepository, cache Cache) Service {
	if repo == nil {
		panic("repo is required")
	}
	return &service{repo: repo, cache: cache}
}

func (s *service) GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetAccount(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	account, err := s.repo.GetAccount(id)
	if err != nil {
		if err == repositories.ErrAccountNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.CacheAccount(ctx, account); err != nil {
			log.Printf("failed to cache account %s: %v", account.ID, err)
		}
	}
	return account, nil
}

func (s *service) GetAccountDetail(ctx context.Context, id uuid.UUID, transactionLimit int) (*Detail, error) {
	if transactionLimit <= 0 {
		transactionLimit = DefaultRecentTransactions
	}

	account, err := s.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.GetRecentTransactions(ctx, id, transactionLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent transactions: %w", err)
	}
	return &Detail{Account: *account, RecentTransactions: recent}, nil
}

func (s *service) ListAccounts(ctx context.Context, p pagination.Pagination, sort pagination.Sort) ([]models.Account, int64, error) {
	return s.repo.ListAccounts(ctx, p.Offset, p.Limit, sort.OrderClause())
}

func (s *service) ListTransactions(ctx context.Context, accountID uuid.UUID, p pagination.Pagination) ([]models.Transaction, int64, error) {
	// Existence check so an unknown account is a 404, not an empty page.
	if _, err := s.repo.GetAccount(accountID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListTransactions(ctx, accountID, p.Offset, p.Limit)
}

// GetTransaction fetches a single ledger entry, typically the one a
// duplicate-operation conflict points the caller at.
func (s *service) GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	tx, err := s.repo.GetTransactionByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return tx, nil
}
