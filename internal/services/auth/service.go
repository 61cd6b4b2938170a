// Package auth authenticates callers by API key. Keys are stored as
// SHA-256 hashes; the raw key travels only in the X-API-Key header.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"tally/internal/models"
	"tally/internal/repositories"
)

var ErrInvalidAPIKey = errors.New("invalid api key")

// Service validates API keys.
type Service interface {
	Authenticate(rawKey string) (*models.APIKey, error)
}

type service struct {
	repo repositories.APIKeyRepository
}

func NewService(repo repositories.APIKeyRepository) Service {
	if repo == nil {
		panic("repo is required")
	}
	return &service{repo: repo}
}

// HashKey returns the hex-encoded SHA-256 digest of a raw API key. The
// digest is deterministic so lookups stay a single indexed point read.
func HashKey(rawKey string) string {
	sum := sha256.Sum256([]byte(rawKey))
	return hex.EncodeToString(sum[:])
}

func (s *service) Authenticate(rawKey string) (*models.APIKey, error) {
	if rawKey == "" {
		return nil, ErrInvalidAPIKey
	}

	key, err := s.repo.FindActiveByHash(HashKey(rawKey))
	if err != nil {
		if errors.Is(err, repositories.ErrAPIKeyNotFound) {
			return nil, ErrInvalidAPIKey
		}
		return nil, fmt.Errorf("failed to authenticate api key: %w", err)
	}
	return key, nil
}
