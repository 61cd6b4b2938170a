package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account statuses
const (
	AccountStatusActive    = "active"
	AccountStatusInactive  = "inactive"
	AccountStatusSuspended = "suspended"
)

// Account holds a user balance in minor currency units (cents).
// The balance is only ever mutated by the wallet engine, which keeps it
// equal to the balance_after of the account's latest ledger entry.
type Account struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:100" json:"email,omitempty"`
	Balance   int64     `gorm:"not null;default:0" json:"balance"`
	Status    string    `gorm:"size:20;not null;default:'active'" json:"status"`
	Version   int64     `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
