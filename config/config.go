package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store backends
const (
	StoreMemory   = "memory"
	StoreDatabase = "database"
	StoreRedis    = "redis"
	StoreS3       = "s3"
)

// Database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultJWTSecret is only accepted outside production.
const DefaultJWTSecret = "development-secret"

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Recipe store configuration
	StoreBackend   string
	StoreNamespace string
	S3Bucket       string
	AWSRegion      string

	// Redis backed rate limiting of login and recipe creation
	RateLimitEnabled bool

	// Key for the external suggestions API; suggestions are canned without one
	SuggestionsAPIKey string

	// Client side: where recipectl sends login/register
	AuthBaseURL string
}

// LoadConfig builds a Config from environment variables, falling back to
// Docker secrets and then to defaults. A .env file is read outside CI.
func LoadConfig() (*Config, error) {
	if os.Getenv("CI") != "true" {
		// a missing .env is not an error
		_ = godotenv.Load()
	}

	env := GetEnvironment()
	cfg := &Config{
		Environment: env,

		ServerPort:  lookup("SERVER_PORT", "server_port", "8080"),
		ServerHost:  lookup("SERVER_HOST", "server_host", "0.0.0.0"),
		CORSOrigins: splitList(lookup("CORS_ORIGINS", "cors_origins", "http://localhost:3000")),

		DBDriver:   lookup("DB_DRIVER", "db_driver", DriverSQLite),
		DBPath:     lookup("DB_PATH", "db_path", "recipebox.db"),
		DBHost:     lookup("DB_HOST", "db_host", "localhost"),
		DBPort:     lookup("DB_PORT", "db_port", "5432"),
		DBUser:     lookup("DB_USER", "db_user", "postgres"),
		DBPassword: lookup("DB_PASSWORD", "db_password", ""),
		DBName:     lookup("DB_NAME", "db_name", "recipebox"),
		DBSSLMode:  lookup("DB_SSL_MODE", "db_ssl_mode", "disable"),

		RedisHost:     lookup("REDIS_HOST", "redis_host", "localhost"),
		RedisPort:     lookup("REDIS_PORT", "redis_port", "6379"),
		RedisPassword: lookup("REDIS_PASSWORD", "redis_password", ""),
		RedisURL:      lookup("REDIS_URL", "redis_url", ""),

		JWTSecret: lookup("JWT_SECRET", "jwt_secret", ""),

		StoreBackend:   lookup("STORE_BACKEND", "store_backend", StoreDatabase),
		StoreNamespace: lookup("STORE_NAMESPACE", "store_namespace", "recipebox"),
		S3Bucket:       lookup("S3_BUCKET_NAME", "s3_bucket_name", ""),
		AWSRegion:      lookup("AWS_REGION", "aws_region", ""),

		RateLimitEnabled:  lookup("RATE_LIMIT_ENABLED", "rate_limit_enabled", "false") == "true",
		SuggestionsAPIKey: lookup("SUGGESTIONS_API_KEY", "suggestions_api_key", ""),

		AuthBaseURL: lookup("AUTH_BASE_URL", "auth_base_url", "http://localhost:8080/api/v1/auth"),
	}

	redisDB, err := strconv.Atoi(lookup("REDIS_DB", "redis_db", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.RedisDB = redisDB

	if cfg.JWTSecret == "" && env != Production && env != CI {
		cfg.JWTSecret = DefaultJWTSecret
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// PostgresDSN renders the key/value connection string used by both lib/pq and pgx
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// lookup returns the environment variable, then the Docker secret, then the fallback
func lookup(envVar, secret, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(envVar)); v != "" {
		return v
	}
	if v := readSecret(secret); v != "" {
		return v
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
