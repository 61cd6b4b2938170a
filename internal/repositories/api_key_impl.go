package repositories

import (
	"errors"
	"fmt"

	"tally/internal/models"

	"gorm.io/gorm"
)

type apiKeyRepository struct {
	db *gorm.DB
}

func NewAPIKeyRepository(db *gorm.DB) APIKeyRepository {
	return &apiKeyRepository{db: db}
}

func (r *apiKeyRepository) Create(key *models.APIKey) error {
	if err := r.db.Create(key).Error; err != nil {
		return fmt.Errorf("failed to create api key: %w", err)
	}
	return nil
}

func (r *apiKeyRepository) FindActiveByHash(keyHash string) (*models.APIKey, error) {
	var key models.APIKey
	err := r.db.Where("key_hash = ? AND is_active = ?", keyHash, true).First(&key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAPIKeyNotFound
		}
		return nil, fmt.Errorf("failed to find api key: %w", err)
	}
	return &key, nil
}
