package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tally/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CacheService is a thin JSON cache over Redis. It is used as a read-aside
// cache for account rows; the ledger itself is never cached.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, s.ttl).Err()
}

// Get unmarshals the cached value into dest. The first return value reports
// whether the key was present.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

func accountKey(id uuid.UUID) string {
	return fmt.Sprintf("account:id:%s", id)
}

// CacheAccount stores an account snapshot for read-aside lookups.
func (s *CacheService) CacheAccount(ctx context.Context, account *models.Account) error {
	if account == nil {
		return errors.New("cannot cache nil account")
	}
	return s.Set(ctx, accountKey(account.ID), account)
}

// GetAccount returns the cached account, or nil if not cached.
func (s *CacheService) GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var account models.Account
	found, err := s.Get(ctx, accountKey(id), &account)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &account, nil
}

// InvalidateAccount drops the cached snapshot. Called after every committed
// balance mutation so readers never see a stale balance beyond the TTL.
func (s *CacheService) InvalidateAccount(ctx context.Context, id uuid.UUID) error {
	return s.Delete(ctx, accountKey(id))
}

// HealthCheck pings Redis.
func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// FlushAll flushes all keys from the cache.
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// Close closes the Redis client connection.
func (s *CacheService) Close() error {
	return s.client.Close()
}
