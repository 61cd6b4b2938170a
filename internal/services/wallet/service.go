package wallet

import (
	"context"
	"errors"
	"log"
	"time"

	"tally/internal/models"
	"tally/internal/repositories"
)

type service struct {
	repo    repositories.LedgerRepository
	cache   Cache
	metrics MetricsCollector
}

// NewService creates the wallet mutation engine. The cache is optional;
// metrics default to a no-op collector.
func NewService(repo repositories.LedgerRepository, cache Cache, metrics MetricsCollector) Service {
	if repo == nil {
		panic("repo is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	return &service{
		repo:    repo,
		cache:   cache,
		metrics: metrics,
	}
}

func (s *service) Credit(ctx context.Context, op Operation) (*OperationResult, error) {
	op.Kind = KindCredit
	return s.Apply(ctx, op)
}

func (s *service) Debit(ctx context.Context, op Operation) (*OperationResult, error) {
	op.Kind = KindDebit
	return s.Apply(ctx, op)
}

// Apply runs the operation inside one storage transaction:
// idempotency lookup, locked account read, balance computation, account
// save and ledger insert. Any failure rolls the whole transaction back.
func (s *service) Apply(ctx context.Context, op Operation) (*OperationResult, error) {
	start := time.Now()

	if err := validateOperation(op); err != nil {
		s.metrics.RecordError(string(op.Kind), "invalid_operation")
		return nil, err
	}

	var result *OperationResult
	err := s.repo.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		// The lookup short-circuits duplicates before contending for the
		// account lock. It is an optimization only; the unique constraint
		// at insert time is the authoritative duplicate signal.
		if op.IdempotencyKey != "" {
			existing, err := tx.FindTransactionByIdempotencyKey(op.IdempotencyKey)
			if err != nil && !errors.Is(err, repositories.ErrTransactionNotFound) {
				return &StorageError{Err: err}
			}
			if existing != nil {
				return &DuplicateOperationError{
					IdempotencyKey: op.IdempotencyKey,
					TransactionID:  existing.ID,
				}
			}
		}

		account, err := tx.LockAccountForUpdate(op.AccountID)
		if err != nil {
			if errors.Is(err, repositories.ErrAccountNotFound) {
				return &AccountNotFoundError{AccountID: op.AccountID}
			}
			return &StorageError{Err: err}
		}

		previousBalance := account.Balance
		var newBalance int64
		switch op.Kind {
		case KindCredit:
			newBalance = previousBalance + op.Amount
		case KindDebit:
			if previousBalance < op.Amount {
				return &InsufficientFundsError{Balance: previousBalance, Requested: op.Amount}
			}
			newBalance = previousBalance - op.Amount
		}

		account.Balance = newBalance
		if err := tx.SaveAccount(account); err != nil {
			return &StorageError{Err: err}
		}

		entry := &models.Transaction{
			AccountID:    account.ID,
			Type:         string(op.Kind),
			Amount:       op.Amount,
			BalanceAfter: newBalance,
		}
		if op.IdempotencyKey != "" {
			key := op.IdempotencyKey
			entry.IdempotencyKey = &key
		}
		if op.Description != "" {
			desc := op.Description
			entry.Description = &desc
		}

		if err := tx.CreateTransaction(entry); err != nil {
			if errors.Is(err, repositories.ErrDuplicateIdempotencyKey) {
				// Two concurrent callers passed the pre-check with the same
				// key; the other insert won. Resolved after rollback.
				return err
			}
			return &StorageError{Err: err}
		}

		result = &OperationResult{
			Transaction:     entry,
			PreviousBalance: previousBalance,
			NewBalance:      newBalance,
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateIdempotencyKey) {
			return nil, s.resolveDuplicate(op)
		}
		s.metrics.RecordError(string(op.Kind), errType(err))
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateAccount(ctx, op.AccountID); err != nil {
			log.Printf("failed to invalidate account cache for %s: %v", op.AccountID, err)
		}
	}

	s.metrics.RecordOperationDuration(string(op.Kind), time.Since(start))
	s.metrics.RecordTransaction(string(op.Kind), op.Amount)
	s.metrics.RecordBalanceChange(op.AccountID.String(), result.PreviousBalance, result.NewBalance)
	return result, nil
}

// resolveDuplicate reports the transaction that won an idempotency-key
// race. The unique violation only surfaces once the winning insert has
// committed, so a committed-state lookup finds it.
func (s *service) resolveDuplicate(op Operation) error {
	existing, err := s.repo.FindTransactionByIdempotencyKey(op.IdempotencyKey)
	if err != nil {
		s.metrics.RecordError(string(op.Kind), "duplicate_resolution")
		return &StorageError{Err: err}
	}
	return &DuplicateOperationError{
		IdempotencyKey: op.IdempotencyKey,
		TransactionID:  existing.ID,
	}
}

func validateOperation(op Operation) error {
	if op.Kind != KindCredit && op.Kind != KindDebit {
		return ErrInvalidKind
	}
	if op.Amount <= 0 {
		return ErrInvalidAmount
	}
	if len(op.Description) > MaxDescriptionLen {
		return ErrDescriptionTooLong
	}
	return nil
}

func errType(err error) string {
	var notFound *AccountNotFoundError
	var insufficient *InsufficientFundsError
	var duplicate *DuplicateOperationError
	switch {
	case errors.As(err, &notFound):
		return "account_not_found"
	case errors.As(err, &insufficient):
		return "insufficient_funds"
	case errors.As(err, &duplicate):
		return "duplicate_operation"
	default:
		return "storage"
	}
}
