package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/logger"
)

func main() {
	migrationsDir := flag.String("dir", "migrations", "directory holding the .sql migrations")
	status := flag.Bool("status", false, "list applied migrations and exit")
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

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = cfg.PostgresDSN()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logg.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logg.Fatal("failed to connect to database", zap.Error(err))
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		logg.Fatal("failed to create migrations table", zap.Error(err))
	}

	if *status {
		printStatus(db, logg)
		return
	}

	files, err := filepath.Glob(filepath.Join(*migrationsDir, "*.sql"))
	if err != nil {
		logg.Fatal("failed to read migrations directory", zap.Error(err))
	}
	sort.Strings(files)

	for _, path := range files {
		name := filepath.Base(path)

		var applied bool
		if err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM migrations WHERE name = $1)", name).Scan(&applied); err != nil {
			logg.Fatal("failed to check migration status", zap.String("file", name), zap.Error(err))
		}
		if applied {
			logg.Info("migration already applied", zap.String("file", name))
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			logg.Fatal("failed to read migration", zap.String("file", name), zap.Error(err))
		}

		if err := apply(db, name, string(content)); err != nil {
			logg.Fatal("failed to apply migration", zap.String("file", name), zap.Error(err))
		}
		logg.Info("applied migration", zap.String("file", name))
	}

	logg.Info("all migrations applied")
}

// apply runs one migration and records it in a single transaction
func apply(db *sql.DB, name, content string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(content); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec("INSERT INTO migrations (name) VALUES ($1)", name); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func printStatus(db *sql.DB, logg *zap.Logger) {
	rows, err := db.Query("SELECT name, applied_at FROM migrations ORDER BY name")
	if err != nil {
		logg.Fatal("failed to list migrations", zap.Error(err))
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var appliedAt sql.NullTime
		if err := rows.Scan(&name, &appliedAt); err != nil {
			logg.Fatal("failed to read migration row", zap.Error(err))
		}
		logg.Info("applied", zap.String("file", name), zap.Time("at", appliedAt.Time))
	}
	if err := rows.Err(); err != nil {
		logg.Fatal("failed to list migrations", zap.Error(err))
	}
}
