package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/api"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/server"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync(logg)

	if err := run(cfg, logg); err != nil {
		logg.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logg *zap.Logger) error {
	ctx := context.Background()

	db, err := database.New(cfg, logg)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(db, "migrations", logg); err != nil {
		return err
	}

	kv, closeStore, err := database.NewStore(ctx, cfg, db, logg)
	if err != nil {
		return err
	}
	defer closeStore()

	store := storage.New(kv, logg)
	if err := store.InitializeData(ctx); err != nil {
		return err
	}

	deps := api.Dependencies{
		AuthService:       service.NewAuthService(db, cfg.JWTSecret, logg),
		RecipeService:     service.NewRecipeService(store, logg),
		SuggestionService: service.NewSuggestionService(cfg.SuggestionsAPIKey),
		Logger:            logg,
	}

	if cfg.RateLimitEnabled {
		redisClient, err := database.NewRedisClient(cfg, logg)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		deps.LoginLimiter = middleware.NewLoginRateLimiter(redisClient, logg)
		deps.CreationLimiter = middleware.NewRecipeCreationRateLimiter(redisClient, logg)
		logg.Info("rate limiting enabled")
	}

	srv := server.New(cfg, db, deps)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		logg.Info("received signal", zap.String("signal", sig.String()))
	}

	logg.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logg.Info("server stopped")
	return nil
}
