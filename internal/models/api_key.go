package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// API key roles
const (
	APIKeyRoleAdmin   = "admin"
	APIKeyRoleService = "service"
)

// APIKey stores the SHA-256 hash of a caller credential. The raw key is
// shown once at creation time and never persisted.
type APIKey struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	KeyHash   string    `gorm:"size:255;uniqueIndex;not null" json:"-"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Role      string    `gorm:"size:20;not null;default:'service'" json:"role"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (k *APIKey) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}

// HasRole reports whether the key grants one of the given roles.
// Admin keys pass every check.
func (k *APIKey) HasRole(roles ...string) bool {
	if k.Role == APIKeyRoleAdmin {
		return true
	}
	for _, role := range roles {
		if k.Role == role {
			return true
		}
	}
	return false
}
