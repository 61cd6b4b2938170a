package wallet

import (
	"tally/internal/models"

	"github.com/google/uuid"
)

// OperationKind distinguishes the two ledger entry types.
type OperationKind string

const (
	KindCredit OperationKind = models.TransactionTypeCredit
	KindDebit  OperationKind = models.TransactionTypeDebit
)

// MaxDescriptionLen bounds the free-text annotation on a ledger entry.
const MaxDescriptionLen = 500

// Operation is a single balance adjustment request. Amount is in minor
// currency units and must be positive. IdempotencyKey and Description are
// optional; an empty string means absent.
type Operation struct {
	AccountID      uuid.UUID
	Kind           OperationKind
	Amount         int64
	Description    string
	IdempotencyKey string
}

// OperationResult is returned after a committed operation.
type OperationResult struct {
	Transaction     *models.Transaction `json:"transaction"`
	PreviousBalance int64               `json:"previous_balance"`
	NewBalance      int64               `json:"new_balance"`
}
