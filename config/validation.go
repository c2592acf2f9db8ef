package config

import (
	"errors"
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// requiredInProduction lists settings that have no safe default once deployed
var requiredInProduction = map[string]func(*Config) string{
	"JWT_SECRET":      func(c *Config) string { return c.JWTSecret },
	"STORE_BACKEND":   func(c *Config) string { return c.StoreBackend },
	"CORS_ORIGINS":    func(c *Config) string { return fmt.Sprint(c.CORSOrigins) },
	"STORE_NAMESPACE": func(c *Config) string { return c.StoreNamespace },
}

// ValidateConfig checks the configuration against the current environment
func ValidateConfig(cfg *Config) error {
	var errs []error

	switch cfg.DBDriver {
	case DriverSQLite:
		if cfg.DBPath == "" {
			errs = append(errs, ValidationError{"DB_PATH", "is required for the sqlite driver"})
		}
	case DriverPostgres:
		if cfg.DBHost == "" || cfg.DBName == "" {
			errs = append(errs, ValidationError{"DB_HOST", "host and name are required for the postgres driver"})
		}
	default:
		errs = append(errs, ValidationError{"DB_DRIVER", fmt.Sprintf("unknown driver %q", cfg.DBDriver)})
	}

	switch cfg.StoreBackend {
	case StoreMemory, StoreDatabase:
	case StoreRedis:
		if cfg.RedisURL == "" && cfg.RedisHost == "" {
			errs = append(errs, ValidationError{"REDIS_HOST", "redis host or url is required for the redis store"})
		}
	case StoreS3:
		if cfg.S3Bucket == "" {
			errs = append(errs, ValidationError{"S3_BUCKET_NAME", "is required for the s3 store"})
		}
	default:
		errs = append(errs, ValidationError{"STORE_BACKEND", fmt.Sprintf("unknown backend %q", cfg.StoreBackend)})
	}

	if cfg.Environment == Production || cfg.Environment == CI {
		for field, get := range requiredInProduction {
			if v := get(cfg); v == "" || v == "[]" {
				errs = append(errs, ValidationError{field, "is required"})
			}
		}
		if cfg.JWTSecret == DefaultJWTSecret {
			errs = append(errs, ValidationError{"JWT_SECRET", "the development secret cannot be used here"})
		}
		if cfg.DBDriver == DriverPostgres && cfg.DBPassword == "" {
			errs = append(errs, ValidationError{"DB_PASSWORD", "is required"})
		}
	}

	return errors.Join(errs...)
}
