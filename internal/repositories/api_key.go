package repositories

import (
	"errors"

	"tally/internal/models"
)

var ErrAPIKeyNotFound = errors.New("api key not found")

// APIKeyRepository defines storage operations for caller credentials.
type APIKeyRepository interface {
	Create(key *models.APIKey) error
	FindActiveByHash(keyHash string) (*models.APIKey, error)
}
