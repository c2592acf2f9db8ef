package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/storage"
)

func TestSeedIsRepeatable(t *testing.T) {
	ctx := context.Background()
	logg := zaptest.NewLogger(t)
	cfg := &config.Config{
		DBDriver:       config.DriverSQLite,
		DBPath:         filepath.Join(t.TempDir(), "seed.db"),
		StoreBackend:   config.StoreDatabase,
		StoreNamespace: "seed",
		JWTSecret:      "test-secret",
	}

	require.NoError(t, seed(ctx, cfg, logg, true))
	require.NoError(t, seed(ctx, cfg, logg, true))

	db, err := database.New(cfg, logg)
	require.NoError(t, err)

	var accounts int64
	require.NoError(t, db.Model(&model.Account{}).Count(&accounts).Error)
	assert.Equal(t, int64(len(demoUsers)), accounts)

	recipes, err := storage.New(storage.NewDatabaseStore(db, "seed"), logg).GetRecipes(ctx)
	require.NoError(t, err)
	assert.Len(t, recipes, len(demoRecipes)+1)
}
