// Package cache stores processed icon markup between builds, keyed by a
// digest of the source markup and the transform options. Implementations
// exist for memory, LevelDB and Redis.
package cache

import (
	"context"
	"errors"
)

// Store is a key-value store for processed icons.
// All implementations must be safe for concurrent use.
type Store interface {
	// Get retrieves a value by key.
	// Returns ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value, replacing any previous one.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources. Later calls return ErrClosed.
	Close() error
}

// Common errors
var (
	// ErrNotFound is returned when a key is not in the store.
	ErrNotFound = errors.New("cache: key not found")

	// ErrClosed is returned when an operation is attempted on a closed store.
	ErrClosed = errors.New("cache: store is closed")
)

// Config selects and configures a store.
type Config struct {
	// Type is "none", "memory", "leveldb" or "redis"
	Type string `yaml:"type" json:"type"`

	// Namespace isolates entries of different projects sharing a backend
	Namespace string `yaml:"namespace" json:"namespace"`

	LevelDB LevelDBConfig `yaml:"leveldb" json:"leveldb"`
	Redis   RedisConfig   `yaml:"redis" json:"redis"`
}

// LevelDBConfig configures the LevelDB store.
type LevelDBConfig struct {
	// Path is the database directory. Empty uses the user cache directory.
	Path string `yaml:"path" json:"path"`
}

// RedisConfig configures the Redis store.
type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
}

// New creates a store from cfg. Type "none" (or empty) returns nil, nil:
// callers treat a nil Store as caching disabled.
func New(cfg Config) (Store, error) {
	switch cfg.Type {
	case "", "none":
		return nil, nil
	case "memory":
		return NewMemoryStore(cfg.Namespace), nil
	case "leveldb":
		return NewLevelDBStore(cfg.Namespace, cfg.LevelDB)
	case "redis":
		return NewRedisStore(cfg.Namespace, cfg.Redis)
	default:
		return nil, errors.New("cache: unsupported store type: " + cfg.Type)
	}
}
