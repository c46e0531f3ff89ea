package kv

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"stockqr/internal/config"
)

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key is not found", func(t *testing.T) {
		v, found, err := s.Get(ctx, "absent")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "a", []byte(`[1,2]`)))
		v, found, err := s.Get(ctx, "a")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `[1,2]`, string(v))
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "a", []byte(`[3]`)))
		v, _, err := s.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, `[3]`, string(v))
	})

	t.Run("set many writes every key", func(t *testing.T) {
		require.NoError(t, s.SetMany(ctx, map[string][]byte{
			"a": []byte(`"x"`),
			"b": []byte(`"y"`),
		}))
		a, _, err := s.Get(ctx, "a")
		require.NoError(t, err)
		b, _, err := s.Get(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, `"x"`, string(a))
		assert.Equal(t, `"y"`, string(b))
	})

	t.Run("delete ignores missing keys", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "a", "b", "never-set"))
		_, found, err := s.Get(ctx, "a")
		require.NoError(t, err)
		assert.False(t, found)
		_, found, err = s.Get(ctx, "b")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("delete with no keys", func(t *testing.T) {
		assert.NoError(t, s.Delete(ctx))
	})
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())

	t.Run("values are copied", func(t *testing.T) {
		s := NewMemoryStore()
		ctx := context.Background()
		in := []byte("abc")
		require.NoError(t, s.Set(ctx, "k", in))
		in[0] = 'z'

		out, _, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(out))

		out[0] = 'q'
		again, _, _ := s.Get(ctx, "k")
		assert.Equal(t, "abc", string(again))
		assert.Equal(t, 1, s.Len())
	})
}

func TestGormStore(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&Document{}))

	exerciseStore(t, NewGormStore(db))

	t.Run("set many reports failure", func(t *testing.T) {
		s := NewGormStore(db)
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "kept", []byte("old")))

		require.NoError(t, db.Migrator().DropTable(&Document{}))
		err := s.SetMany(ctx, map[string][]byte{"kept": []byte("new"), "other": []byte("1")})
		assert.Error(t, err)
		require.NoError(t, db.AutoMigrate(&Document{}))
	})
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("STOCKQR_TEST_REDIS_URL")
	if url == "" {
		t.Skip("STOCKQR_TEST_REDIS_URL not set")
	}

	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	defer client.Close()

	ctx := context.Background()
	require.NoError(t, client.FlushDB(ctx).Err())

	exerciseStore(t, NewRedisStore(client))
}

func TestOpen(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		cfg := config.Default()
		s, closeFn, err := Open(cfg)
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &MemoryStore{}, s)
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := config.Default()
		cfg.StorageDriver = config.DriverSQLite
		cfg.SQLitePath = "file::memory:"

		s, closeFn, err := Open(cfg)
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &GormStore{}, s)

		require.NoError(t, s.Set(context.Background(), "k", []byte("v")))
		v, found, err := s.Get(context.Background(), "k")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "v", string(v))
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := config.Default()
		cfg.StorageDriver = "floppy"
		_, closeFn, err := Open(cfg)
		assert.Error(t, err)
		assert.NotNil(t, closeFn)
	})
}
