package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/uptrace/bun"

	"github.com/fullsco/fullsco/internal/storage"
)

type note struct {
	bun.BaseModel `bun:"table:notes,alias:n"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Body string `bun:"body,notnull"`
}

func TestOpenSqlitePath(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	var enabled int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		t.Fatalf("pragma: %v", err)
	}
	if enabled != 1 {
		t.Fatal("foreign key enforcement is off")
	}
}

func TestOpenRejectsEmptyDSN(t *testing.T) {
	if _, err := storage.Open("  "); err == nil {
		t.Fatal("expected an error for a blank DSN")
	}
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	db, err := storage.NewMemoryDB()
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	ctx := context.Background()

	if err := storage.InitSchema(ctx, db, (*note)(nil)); err != nil {
		t.Fatalf("first init: %v", err)
	}
	if err := storage.InitSchema(ctx, db, (*note)(nil)); err != nil {
		t.Fatalf("second init: %v", err)
	}

	n := &note{Body: "hello"}
	if _, err := db.NewInsert().Model(n).Exec(ctx); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if n.ID == 0 {
		t.Fatal("insert did not assign an id")
	}

	count, err := db.NewSelect().Model((*note)(nil)).Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}

func TestMemoryDBsAreIsolated(t *testing.T) {
	ctx := context.Background()

	first, err := storage.NewMemoryDB()
	if err != nil {
		t.Fatalf("open first: %v", err)
	}
	t.Cleanup(func() { first.Close() })
	second, err := storage.NewMemoryDB()
	if err != nil {
		t.Fatalf("open second: %v", err)
	}
	t.Cleanup(func() { second.Close() })

	if err := storage.InitSchema(ctx, first, (*note)(nil)); err != nil {
		t.Fatalf("init first: %v", err)
	}
	if _, err := first.NewInsert().Model(&note{Body: "only here"}).Exec(ctx); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// The second handle must not see the first database's table.
	if _, err := second.NewSelect().Model((*note)(nil)).Count(ctx); err == nil {
		t.Fatal("second database shares state with the first")
	}
}
