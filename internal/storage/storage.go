// Package storage owns the database handle and schema bootstrap.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Open connects to the database named by the DSN. Postgres URLs use lib/pq;
// anything else is treated as a sqlite path, which keeps development and
// tests on an embedded store.
func Open(dsn string) (*bun.DB, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("storage: empty DSN")
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		sqldb, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		return bun.NewDB(sqldb, pgdialect.New()), nil
	}

	path := strings.TrimPrefix(dsn, "sqlite://")
	sqldb, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite: %w", err)
	}
	// sqlite enforces foreign keys only when asked.
	if _, err := sqldb.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("storage: enable foreign keys: %w", err)
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// InitSchema creates tables for the supplied models in order. Uniqueness
// lives in the schema (bun `unique` tags), backing the application-level
// checks with a real constraint.
func InitSchema(ctx context.Context, db *bun.DB, models ...any) error {
	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			WithForeignKeys().
			Exec(ctx); err != nil {
			return fmt.Errorf("storage: create table for %T: %w", model, err)
		}
	}
	return nil
}

var memoryDBSeq atomic.Int64

// NewMemoryDB opens a fresh in-memory sqlite database for tests. Every call
// gets its own database; the shared cache keeps it alive across pooled
// connections.
func NewMemoryDB() (*bun.DB, error) {
	dsn := fmt.Sprintf("file:memdb%d?mode=memory&cache=shared&_foreign_keys=on", memoryDBSeq.Add(1))
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	sqldb.SetMaxIdleConns(1)
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}
