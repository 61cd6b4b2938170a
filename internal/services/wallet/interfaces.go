package wallet

import (
	"context"

	"github.com/google/uuid"
)

// Service is the wallet mutation engine.
type Service interface {
	// Apply executes one credit or debit atomically and returns the
	// committed result, or a typed failure (see errors.go). It never
	// retries internally.
	Apply(ctx context.Context, op Operation) (*OperationResult, error)

	// Credit and Debit are convenience wrappers that set op.Kind.
	Credit(ctx context.Context, op Operation) (*OperationResult, error)
	Debit(ctx context.Context, op Operation) (*OperationResult, error)
}

// Cache is the subset of the cache layer the engine needs: dropping the
// account snapshot after a committed mutation.
type Cache interface {
	InvalidateAccount(ctx context.Context, accountID uuid.UUID) error
}
