package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/amirphl/Omoikane/utils"
	"github.com/redis/go-redis/v9"
)

// RevocationStore remembers revoked token IDs until the tokens expire.
// Revoke reports first=true only to the caller that revoked tokenID; later calls for the same ID get false.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) (first bool, err error)
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// MemoryRevocationStore keeps revoked token IDs in process memory
type MemoryRevocationStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{revoked: make(map[string]time.Time)}
}

func (s *MemoryRevocationStore) Revoke(_ context.Context, tokenID string, until time.Time) (bool, error) {
	now := utils.UTCNow()

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, exp := range s.revoked {
		if now.After(exp) {
			delete(s.revoked, id)
		}
	}
	if _, ok := s.revoked[tokenID]; ok {
		return false, nil
	}
	if now.Before(until) {
		s.revoked[tokenID] = until
	}
	return true, nil
}

func (s *MemoryRevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exp, ok := s.revoked[tokenID]
	return ok && utils.UTCNow().Before(exp), nil
}

// RedisRevocationStore shares revoked token IDs between instances through Redis keys that
// expire together with the token
type RedisRevocationStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

func NewRedisRevocationStore(client redis.UniversalClient, keyPrefix string) *RedisRevocationStore {
	if keyPrefix == "" {
		keyPrefix = "omoikane:revoked:"
	}
	return &RedisRevocationStore{client: client, keyPrefix: keyPrefix}
}

func (s *RedisRevocationStore) Revoke(ctx context.Context, tokenID string, until time.Time) (bool, error) {
	ttl := time.Until(until)
	if ttl <= 0 {
		return true, nil
	}
	first, err := s.client.SetNX(ctx, s.keyPrefix+tokenID, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to store revoked token: %w", err)
	}
	return first, nil
}

func (s *RedisRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := s.client.Get(ctx, s.keyPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}
	return true, nil
}
