package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction types
const (
	TransactionTypeCredit = "credit"
	TransactionTypeDebit  = "debit"
)

// Transaction is one append-only ledger entry. Amount is always positive;
// the sign is implied by Type. Rows are never updated after commit.
type Transaction struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID      uuid.UUID `gorm:"type:uuid;not null;index:idx_transactions_account_created,priority:1" json:"account_id"`
	Type           string    `gorm:"size:10;not null" json:"type"`
	Amount         int64     `gorm:"not null" json:"amount"`
	BalanceAfter   int64     `gorm:"not null" json:"balance_after"`
	IdempotencyKey *string   `gorm:"size:255;uniqueIndex" json:"idempotency_key,omitempty"`
	Description    *string   `gorm:"size:500" json:"description,omitempty"`
	CreatedAt      time.Time `gorm:"index:idx_transactions_account_created,priority:2" json:"created_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
