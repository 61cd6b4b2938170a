package wallet

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Validation errors
var (
	ErrInvalidAmount      = errors.New("amount must be a positive number of cents")
	ErrInvalidKind        = errors.New("operation kind must be credit or debit")
	ErrDescriptionTooLong = fmt.Errorf("description must not exceed %d characters", MaxDescriptionLen)
)

// AccountNotFoundError reports that the target account does not exist.
type AccountNotFoundError struct {
	AccountID uuid.UUID
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account %s not found", e.AccountID)
}

// InsufficientFundsError reports a debit that would drive the balance
// negative. Balance and Requested are in minor currency units.
type InsufficientFundsError struct {
	Balance   int64
	Requested int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: balance %d, requested %d", e.Balance, e.Requested)
}

// DuplicateOperationError reports that the idempotency key was already
// used. The original transaction is authoritative; TransactionID lets the
// caller fetch it. Not retryable.
type DuplicateOperationError struct {
	IdempotencyKey string
	TransactionID  uuid.UUID
}

func (e *DuplicateOperationError) Error() string {
	return fmt.Sprintf("operation with idempotency key %q already processed as transaction %s",
		e.IdempotencyKey, e.TransactionID)
}

// StorageError wraps a transient storage failure. The whole operation is
// safe to retry; with an idempotency key even a blind retry cannot
// double-apply.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage unavailable: %v", e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
