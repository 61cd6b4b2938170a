package auth

import (
	"errors"
	"testing"

	"tally/internal/models"
	"tally/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAPIKeyRepository struct {
	mock.Mock
}

func (m *MockAPIKeyRepository) Create(key *models.APIKey) error {
	return m.Called(key).Error(0)
}

func (m *MockAPIKeyRepository) FindActiveByHash(hash string) (*models.APIKey, error) {
	args := m.Called(hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.APIKey), args.Error(1)
}

func TestHashKey(t *testing.T) {
	// Deterministic: the same raw key always maps to the same row.
	assert.Equal(t, HashKey("secret"), HashKey("secret"))
	assert.NotEqual(t, HashKey("secret"), HashKey("Secret"))
	assert.Len(t, HashKey("secret"), 64)
}

func TestService_Authenticate(t *testing.T) {
	t.Run("valid key", func(t *testing.T) {
		repo := new(MockAPIKeyRepository)
		svc := NewService(repo)

		stored := &models.APIKey{Name: "ops", Role: models.APIKeyRoleAdmin, IsActive: true}
		repo.On("FindActiveByHash", HashKey("raw-key")).Return(stored, nil)

		key, err := svc.Authenticate("raw-key")
		require.NoError(t, err)
		assert.Equal(t, models.APIKeyRoleAdmin, key.Role)
		repo.AssertExpectations(t)
	})

	t.Run("empty key", func(t *testing.T) {
		repo := new(MockAPIKeyRepository)
		svc := NewService(repo)

		_, err := svc.Authenticate("")
		assert.ErrorIs(t, err, ErrInvalidAPIKey)
		repo.AssertNotCalled(t, "FindActiveByHash", mock.Anything)
	})

	t.Run("unknown or revoked key", func(t *testing.T) {
		repo := new(MockAPIKeyRepository)
		svc := NewService(repo)

		repo.On("FindActiveByHash", mock.Anything).Return(nil, repositories.ErrAPIKeyNotFound)

		_, err := svc.Authenticate("revoked")
		assert.ErrorIs(t, err, ErrInvalidAPIKey)
	})

	t.Run("storage failure is not an auth failure", func(t *testing.T) {
		repo := new(MockAPIKeyRepository)
		svc := NewService(repo)

		dbErr := errors.New("connection refused")
		repo.On("FindActiveByHash", mock.Anything).Return(nil, dbErr)

		_, err := svc.Authenticate("raw-key")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidAPIKey)
		assert.ErrorIs(t, err, dbErr)
	})
}
