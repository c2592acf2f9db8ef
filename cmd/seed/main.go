// Command seed fills a development database with demo accounts and recipes.
package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/storage"
)

const demoPassword = "testpassword123"

var demoUsers = []struct {
	name  string
	email string
}{
	{"John Doe", "john.doe@example.com"},
	{"Jane Smith", "jane.smith@example.com"},
	{"Bob Wilson", "bob.wilson@example.com"},
}

var demoRecipes = []model.RecipeInput{
	{
		Title:        "Tomato Basil Soup",
		Description:  "A bright soup for cold evenings",
		Category:     "Lunch",
		PrepTime:     "15",
		CookTime:     "30",
		Servings:     "4",
		Ingredients:  []string{"2 lbs tomatoes", "1 onion", "2 cloves garlic", "1 cup fresh basil", "2 cups vegetable stock"},
		Instructions: []string{"Soften onion and garlic", "Add tomatoes and stock and simmer", "Blend with basil", "Season to taste"},
	},
	{
		Title:        "Veggie Omelette",
		Description:  "Quick protein packed breakfast",
		Category:     "Breakfast",
		PrepTime:     "5",
		CookTime:     "10",
		Servings:     "1",
		Ingredients:  []string{"3 eggs", "1/4 cup diced peppers", "1/4 cup spinach", "2 tbsp feta"},
		Instructions: []string{"Whisk eggs", "Cook vegetables", "Pour in eggs and set", "Fold with feta"},
	},
	{
		Title:        "Lemon Bars",
		Description:  "Tart and sweet",
		Category:     "Dessert",
		PrepTime:     "20",
		CookTime:     "45",
		Servings:     "16",
		Ingredients:  []string{"1 cup butter", "2 cups flour", "4 eggs", "1 1/2 cups sugar", "1/2 cup lemon juice"},
		Instructions: []string{"Bake the shortbread base", "Whisk eggs, sugar and juice", "Pour over base and bake", "Chill before cutting"},
	},
}

func main() {
	withRecipes := flag.Bool("recipes", true, "also add demo recipes owned by the first demo user")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logg, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync(logg)

	if err := seed(context.Background(), cfg, logg, *withRecipes); err != nil {
		logg.Fatal("seeding failed", zap.Error(err))
	}
}

func seed(ctx context.Context, cfg *config.Config, logg *zap.Logger, withRecipes bool) error {
	db, err := database.New(cfg, logg)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(db, "migrations", logg); err != nil {
		return err
	}

	auth := service.NewAuthService(db, cfg.JWTSecret, logg)
	var owner *model.Account
	for _, u := range demoUsers {
		account, _, err := auth.Register(ctx, u.name, u.email, demoPassword)
		if errors.Is(err, service.ErrEmailTaken) {
			logg.Info("demo user already exists", zap.String("email", u.email))
			account, _, err = auth.Login(ctx, u.email, demoPassword)
		}
		if err != nil {
			return err
		}
		if owner == nil {
			owner = account
		}
		logg.Info("demo user ready", zap.String("email", u.email), zap.String("user_id", account.ID.String()))
	}

	if !withRecipes {
		return nil
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
	recipes := service.NewRecipeService(store, logg)

	existing, err := recipes.GetRecipesByUser(ctx, owner.ID.String())
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logg.Info("demo recipes already present", zap.Int("count", len(existing)))
		return nil
	}

	for _, in := range demoRecipes {
		res := recipes.CreateRecipe(ctx, in, owner.ID.String())
		if !res.Success {
			return errors.New(res.Errors[0])
		}
		logg.Info("created demo recipe", zap.String("title", res.Recipe.Title))
	}

	logg.Info("seeding complete", zap.String("password", demoPassword))
	return nil
}
