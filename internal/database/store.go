package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/storage"
)

// NewStore builds the key-value backend named by cfg.StoreBackend. db is
// used by the database backend and may be nil for the others. The returned
// close func releases any client opened here.
func NewStore(ctx context.Context, cfg *config.Config, db *gorm.DB, log *zap.Logger) (storage.Store, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case config.StoreMemory:
		log.Warn("using in-memory recipe store, data is lost on exit")
		return storage.NewMemoryStore(), noop, nil

	case config.StoreDatabase:
		if db == nil {
			return nil, noop, fmt.Errorf("database store requires a database connection")
		}
		return storage.NewDatabaseStore(db, cfg.StoreNamespace), noop, nil

	case config.StoreRedis:
		client, err := NewRedisClient(cfg, log)
		if err != nil {
			return nil, noop, err
		}
		return storage.NewRedisStore(client, cfg.StoreNamespace), func() { _ = client.Close() }, nil

	case config.StoreS3:
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		log.Info("using s3 recipe store", zap.String("bucket", s3cfg.BucketName))
		return storage.NewS3Store(s3cfg.Client, s3cfg.BucketName, cfg.StoreNamespace), noop, nil

	default:
		return nil, noop, fmt.Errorf("unsupported store backend %q", cfg.StoreBackend)
	}
}
