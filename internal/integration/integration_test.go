package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/api"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/storage"
	"github.com/pageza/recipebox/backend/internal/testhelpers"
)

func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "recipebox",
				"POSTGRES_PASSWORD": "recipebox",
				"POSTGRES_DB":       "recipebox",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	cfg := &config.Config{
		DBDriver:   config.DriverPostgres,
		DBHost:     host,
		DBPort:     port.Port(),
		DBUser:     "recipebox",
		DBPassword: "recipebox",
		DBName:     "recipebox",
		DBSSLMode:  "disable",
	}
	db, err := database.New(cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("failed to connect to postgres: %v", err)
	}
	if err := database.RunMigrations(db, "../../migrations", zaptest.NewLogger(t)); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	// a second run must find everything applied
	if err := database.RunMigrations(db, "../../migrations", zaptest.NewLogger(t)); err != nil {
		t.Fatalf("failed to rerun migrations: %v", err)
	}
	return db
}

// newRouter serves the API with recipes kept in the database store, as cmd/api does
func newRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zaptest.NewLogger(t)

	store := storage.New(storage.NewDatabaseStore(db, "integration"), logger)
	if err := store.InitializeData(context.Background()); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	router := gin.New()
	api.RegisterRoutes(router, api.Dependencies{
		AuthService:       service.NewAuthService(db, "secret", logger).WithHashCost(bcrypt.MinCost),
		RecipeService:     service.NewRecipeService(store, logger),
		SuggestionService: service.NewSuggestionService(""),
		Logger:            logger,
	})
	return router
}

func call(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func runRegisterLoginCreateModify(t *testing.T, db *gorm.DB) {
	router := newRouter(t, db)

	w := call(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     "Tester",
		"email":    "test@example.com",
		"password": "password",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", w.Code, w.Body.String())
	}

	w = call(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "test@example.com",
		"password": "password",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d", w.Code)
	}
	var loginResp struct {
		User  model.User `json:"user"`
		Token string     `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if loginResp.Token == "" {
		t.Fatalf("no token from login")
	}
	token := loginResp.Token

	w = call(t, router, http.MethodPost, "/api/v1/recipes", token, model.RecipeInput{
		Title:        "Test Recipe",
		Category:     "Dinner",
		Ingredients:  []string{"i1"},
		Instructions: []string{"s1"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create recipe failed: %d %s", w.Code, w.Body.String())
	}
	var createResp struct{ Recipe model.Recipe }
	if err := json.Unmarshal(w.Body.Bytes(), &createResp); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	if createResp.Recipe.ID == "" {
		t.Fatalf("recipe id missing")
	}
	if createResp.Recipe.CreatedBy != loginResp.User.ID {
		t.Fatalf("recipe owner = %q, want %q", createResp.Recipe.CreatedBy, loginResp.User.ID)
	}

	w = call(t, router, http.MethodPut, "/api/v1/recipes/"+createResp.Recipe.ID, token, model.RecipeInput{
		Title:        "Updated",
		Category:     "Dinner",
		Ingredients:  []string{"x"},
		Instructions: []string{"y"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("modify recipe failed: %d", w.Code)
	}

	// a fresh router over the same database sees the change
	router = newRouter(t, db)
	w = call(t, router, http.MethodGet, "/api/v1/recipes/"+createResp.Recipe.ID, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get recipe failed: %d", w.Code)
	}
	var getResp struct{ Recipe model.Recipe }
	if err := json.Unmarshal(w.Body.Bytes(), &getResp); err != nil {
		t.Fatalf("failed to decode get response: %v", err)
	}
	if getResp.Recipe.Title != "Updated" {
		t.Fatalf("recipe not updated: %q", getResp.Recipe.Title)
	}

	w = call(t, router, http.MethodGet, "/api/v1/recipes", "", nil)
	var listResp struct{ Recipes []model.Recipe }
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if len(listResp.Recipes) != 2 {
		t.Fatalf("expected sample and created recipe, got %d", len(listResp.Recipes))
	}

	var account model.Account
	if err := db.First(&account, "email = ?", "test@example.com").Error; err != nil {
		t.Fatalf("account not in db: %v", err)
	}
	if account.PasswordHash == "password" {
		t.Fatalf("password stored in clear text")
	}
}

func TestIntegrationSQLite(t *testing.T) {
	runRegisterLoginCreateModify(t, testhelpers.SetupSQLiteDB(t))
}

func TestIntegrationPostgres(t *testing.T) {
	runRegisterLoginCreateModify(t, setupPostgres(t))
}
