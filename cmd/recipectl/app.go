package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/identity"
	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/storage"
)

// app is everything a command needs
type app struct {
	identity    *identity.Context
	recipes     *service.RecipeService
	suggestions *service.SuggestionService
	logger      *zap.Logger
	close       func()
}

type options struct {
	dataPath string
	authURL  string
	verbose  bool
}

type opener func(ctx context.Context, opts options) (*app, error)

func defaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "recipebox.db"
	}
	return filepath.Join(home, ".recipebox", "recipebox.db")
}

// openApp wires the local store, the identity context and the services
func openApp(ctx context.Context, opts options) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	logg := zap.NewNop()
	if opts.verbose {
		if logg, err = logger.New(cfg.Environment); err != nil {
			return nil, err
		}
	}

	cfg.DBDriver = config.DriverSQLite
	cfg.DBPath = opts.dataPath
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := database.New(cfg, logg)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(db, "", logg); err != nil {
		return nil, err
	}

	kv, closeStore, err := database.NewStore(ctx, cfg, db, logg)
	if err != nil {
		return nil, err
	}

	store := storage.New(kv, logg)
	if err := store.InitializeData(ctx); err != nil {
		closeStore()
		return nil, err
	}

	authURL := cfg.AuthBaseURL
	if opts.authURL != "" {
		authURL = opts.authURL
	}
	auth := identity.NewHTTPAuthenticator(authURL, nil)

	id, err := identity.New(ctx, store, auth, logg)
	if err != nil {
		// a corrupt session is not fatal, the user just has to log in again
		logg.Warn("starting signed out", zap.Error(err))
	}

	return &app{
		identity:    id,
		recipes:     service.NewRecipeService(store, logg),
		suggestions: service.NewSuggestionService(cfg.SuggestionsAPIKey),
		logger:      logg,
		close: func() {
			closeStore()
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
			logger.Sync(logg)
		},
	}, nil
}
