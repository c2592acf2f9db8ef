package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/storage"
)

func sqliteConfig(t *testing.T) *config.Config {
	return &config.Config{
		DBDriver:       config.DriverSQLite,
		DBPath:         filepath.Join(t.TempDir(), "test.db"),
		StoreNamespace: "test",
	}
}

func TestNewSQLite(t *testing.T) {
	log := zaptest.NewLogger(t)
	db, err := New(sqliteConfig(t), log)
	require.NoError(t, err)

	assert.NoError(t, HealthCheck(context.Background(), db))
	require.NoError(t, RunMigrations(db, "", log))
	assert.True(t, db.Migrator().HasTable("users"))
	assert.True(t, db.Migrator().HasTable("kv_entries"))
}

func TestNewUnsupportedDriver(t *testing.T) {
	_, err := New(&config.Config{DBDriver: "oracle"}, zaptest.NewLogger(t))
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestNewStore(t *testing.T) {
	ctx := context.Background()
	log := zaptest.NewLogger(t)
	cfg := sqliteConfig(t)
	db, err := New(cfg, log)
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db, "", log))

	cfg.StoreBackend = config.StoreMemory
	store, closeStore, err := NewStore(ctx, cfg, nil, log)
	require.NoError(t, err)
	defer closeStore()
	assert.IsType(t, &storage.MemoryStore{}, store)

	cfg.StoreBackend = config.StoreDatabase
	store, _, err = NewStore(ctx, cfg, db, log)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "recipes", []byte(`[]`)))
	data, err := store.Get(ctx, "recipes")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	_, _, err = NewStore(ctx, cfg, nil, log)
	assert.Error(t, err)

	cfg.StoreBackend = config.StoreS3
	cfg.S3Bucket = ""
	_, _, err = NewStore(ctx, cfg, nil, log)
	assert.ErrorContains(t, err, "S3_BUCKET_NAME")

	cfg.StoreBackend = "floppy"
	_, _, err = NewStore(ctx, cfg, nil, log)
	assert.ErrorContains(t, err, "unsupported store backend")
}
