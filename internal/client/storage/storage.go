// Package storage opens the local SQLite database, applies migrations and
// hands out the repositories backed by it.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/mindcard/mindcard-cli/internal/client/migrations"
	"github.com/mindcard/mindcard-cli/internal/client/repositories/credentials"
	"github.com/mindcard/mindcard-cli/internal/client/repositories/history"
)

// Storage bundles the local database and its repositories.
type Storage struct {
	DB          *sql.DB
	Credentials credentials.Repository
	History     history.Repository
}

// Open connects to the SQLite database at dsn and migrates it to the
// current schema.
func Open(ctx context.Context, dsn string) (*Storage, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &Storage{
		DB:          db,
		Credentials: credentials.NewSQLiteRepository(db),
		History:     history.NewSQLiteRepository(db),
	}, nil
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
