package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares processed icons between machines, e.g. CI runners.
// Keys are stored as "namespace:key".
type RedisStore struct {
	namespace string
	client    *redis.Client
	closed    bool
	mu        sync.RWMutex
}

// NewRedisStore connects to Redis and verifies the connection
func NewRedisStore(namespace string, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache/redis: failed to connect to %s: %w", cfg.Addr, err)
	}

	prefix := ""
	if namespace != "" {
		prefix = namespace + ":"
	}

	return &RedisStore{namespace: prefix, client: client}, nil
}

func (r *RedisStore) prefixedKey(key string) string {
	return r.namespace + key
}

func (r *RedisStore) isClosed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.closed
}

// Get retrieves a value by key.
func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	if r.isClosed() {
		return nil, ErrClosed
	}

	value, err := r.client.Get(ctx, r.prefixedKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("cache/redis: get failed: %w", err)
	}
	return value, nil
}

// Set stores a value without expiry.
func (r *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if r.isClosed() {
		return ErrClosed
	}

	if err := r.client.Set(ctx, r.prefixedKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("cache/redis: set failed: %w", err)
	}
	return nil
}

// Delete removes a key.
func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if r.isClosed() {
		return ErrClosed
	}

	if err := r.client.Del(ctx, r.prefixedKey(key)).Err(); err != nil {
		return fmt.Errorf("cache/redis: delete failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (r *RedisStore) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrClosed
	}
	r.closed = true
	r.mu.Unlock()

	if err := r.client.Close(); err != nil {
		return fmt.Errorf("cache/redis: close failed: %w", err)
	}
	return nil
}
