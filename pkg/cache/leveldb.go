package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// LevelDBStore persists entries on disk so repeated builds skip
// already-processed icons.
type LevelDBStore struct {
	prefix string
	db     *leveldb.DB
	closed bool
	mu     sync.RWMutex
}

// NewLevelDBStore opens (or creates) the database at cfg.Path
func NewLevelDBStore(prefix string, cfg LevelDBConfig) (*LevelDBStore, error) {
	dbPath := cfg.Path
	if dbPath == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			cacheDir = os.TempDir()
		}

		dirName := "iconcollect"
		if prefix != "" {
			sanitized := strings.Map(func(r rune) rune {
				if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
					return r
				}
				return '-'
			}, prefix)
			dirName = fmt.Sprintf("%s-%s", dirName, sanitized)
		}
		dbPath = filepath.Join(cacheDir, dirName)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("cache/leveldb: failed to create directory: %w", err)
	}

	db, err := leveldb.OpenFile(dbPath, &opt.Options{Compression: opt.SnappyCompression})
	if err != nil {
		if _, ok := err.(*errors.ErrCorrupted); ok {
			db, err = leveldb.RecoverFile(dbPath, nil)
		}
		if err != nil {
			return nil, fmt.Errorf("cache/leveldb: failed to open database at %s: %w", dbPath, err)
		}
	}

	return &LevelDBStore{prefix: prefix, db: db}, nil
}

func (l *LevelDBStore) prefixedKey(key string) []byte {
	return []byte(l.prefix + key)
}

func (l *LevelDBStore) isClosed() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.closed
}

// Get retrieves a value by key.
func (l *LevelDBStore) Get(ctx context.Context, key string) ([]byte, error) {
	if l.isClosed() {
		return nil, ErrClosed
	}

	value, err := l.db.Get(l.prefixedKey(key), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("cache/leveldb: get failed: %w", err)
	}
	return value, nil
}

// Set stores a value.
func (l *LevelDBStore) Set(ctx context.Context, key string, value []byte) error {
	if l.isClosed() {
		return ErrClosed
	}

	if err := l.db.Put(l.prefixedKey(key), value, nil); err != nil {
		return fmt.Errorf("cache/leveldb: set failed: %w", err)
	}
	return nil
}

// Delete removes a key.
func (l *LevelDBStore) Delete(ctx context.Context, key string) error {
	if l.isClosed() {
		return ErrClosed
	}

	if err := l.db.Delete(l.prefixedKey(key), nil); err != nil && err != leveldb.ErrNotFound {
		return fmt.Errorf("cache/leveldb: delete failed: %w", err)
	}
	return nil
}

// Close closes the database.
func (l *LevelDBStore) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.closed = true
	l.mu.Unlock()

	if err := l.db.Close(); err != nil {
		return fmt.Errorf("cache/leveldb: close failed: %w", err)
	}
	return nil
}
