package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeFactories returns a fresh store per backend
func storeFactories(t *testing.T) map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store {
			return NewMemoryStore("test:")
		},
		"leveldb": func(t *testing.T) Store {
			s, err := NewLevelDBStore("test:", LevelDBConfig{Path: filepath.Join(t.TempDir(), "db")})
			require.NoError(t, err)
			return s
		},
		"redis": func(t *testing.T) Store {
			mr := miniredis.RunT(t)
			s, err := NewRedisStore("test", RedisConfig{Addr: mr.Addr()})
			require.NoError(t, err)
			return s
		},
	}
}

func TestStoreContract(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := factory(t)

			_, err := store.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.Set(ctx, "icon", []byte("<svg/>")))
			value, err := store.Get(ctx, "icon")
			require.NoError(t, err)
			assert.Equal(t, "<svg/>", string(value))

			require.NoError(t, store.Set(ctx, "icon", []byte("<svg></svg>")))
			value, err = store.Get(ctx, "icon")
			require.NoError(t, err)
			assert.Equal(t, "<svg></svg>", string(value))

			require.NoError(t, store.Delete(ctx, "icon"))
			require.NoError(t, store.Delete(ctx, "icon"), "deleting a missing key is not an error")
			_, err = store.Get(ctx, "icon")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.Close())
			assert.ErrorIs(t, store.Close(), ErrClosed)
			_, err = store.Get(ctx, "icon")
			assert.ErrorIs(t, err, ErrClosed)
			assert.ErrorIs(t, store.Set(ctx, "icon", nil), ErrClosed)
			assert.ErrorIs(t, store.Delete(ctx, "icon"), ErrClosed)
		})
	}
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("")

	value := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'x'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
	assert.Equal(t, 1, store.Len())
}

func TestLevelDBStore_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db")

	store, err := NewLevelDBStore("", LevelDBConfig{Path: path})
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	require.NoError(t, store.Close())

	reopened, err := NewLevelDBStore("", LevelDBConfig{Path: path})
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestRedisStore_Namespace(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	store, err := NewRedisStore("icons", RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(ctx, "abc", []byte("v")))
	assert.True(t, mr.Exists("icons:abc"))
}

func TestRedisStore_ConnectionFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisStore("", RedisConfig{Addr: addr})
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantNil bool
		wantErr bool
	}{
		{name: "empty type disables caching", config: Config{}, wantNil: true},
		{name: "none", config: Config{Type: "none"}, wantNil: true},
		{name: "memory", config: Config{Type: "memory"}},
		{name: "leveldb", config: Config{Type: "leveldb", LevelDB: LevelDBConfig{Path: filepath.Join(t.TempDir(), "db")}}},
		{name: "unsupported", config: Config{Type: "memcached"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := New(tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, store)
				return
			}
			require.NotNil(t, store)
			assert.NoError(t, store.Close())
		})
	}
}
