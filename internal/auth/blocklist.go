package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBlocklist stores revoked token ids as expiring redis keys.
type RedisBlocklist struct {
	client *redis.Client
	prefix string
}

func NewRedisBlocklist(client *redis.Client) *RedisBlocklist {
	return &RedisBlocklist{
		client: client,
		prefix: "auth:revoked:",
	}
}

func (b *RedisBlocklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return b.client.Set(ctx, b.prefix+tokenID, "1", ttl).Err()
}

func (b *RedisBlocklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := b.client.Exists(ctx, b.prefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryBlocklist is the single-process fallback used when redis is disabled.
type MemoryBlocklist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryBlocklist() *MemoryBlocklist {
	return &MemoryBlocklist{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (b *MemoryBlocklist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	for id, exp := range b.entries {
		if now.After(exp) {
			delete(b.entries, id)
		}
	}
	b.entries[tokenID] = now.Add(ttl)
	return nil
}

func (b *MemoryBlocklist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	exp, ok := b.entries[tokenID]
	if !ok {
		return false, nil
	}
	if b.now().After(exp) {
		delete(b.entries, tokenID)
		return false, nil
	}
	return true, nil
}
