package crud_test

import (
	"context"
	"errors"
	"testing"

	"github.com/uptrace/bun"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/storage"
)

// gadget carries a second unique column besides the identifier.
type gadget struct {
	bun.BaseModel `bun:"table:gadgets,alias:g"`

	ID     int64  `bun:"id,pk,autoincrement"`
	Slug   string `bun:"slug,notnull,unique"`
	Serial string `bun:"serial,notnull,unique"`
}

func gadgetHandlers() crud.ModelHandlers[*gadget] {
	return crud.ModelHandlers[*gadget]{
		NewRecord:          func() *gadget { return &gadget{} },
		GetID:              func(g *gadget) int64 { return g.ID },
		SetID:              func(g *gadget, id int64) { g.ID = id },
		GetIdentifier:      func() string { return "slug" },
		GetIdentifierValue: func(g *gadget) string { return g.Slug },
		SetIdentifierValue: func(g *gadget, v string) { g.Slug = v },
		Clone: func(g *gadget) *gadget {
			cp := *g
			return &cp
		},
	}
}

func newBunWidgetRepo(t *testing.T) (*crud.BunRepository[*widget], *bun.DB) {
	t.Helper()
	db, err := storage.NewMemoryDB()
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitSchema(context.Background(), db, (*widget)(nil)); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return crud.NewBunRepository(db, "widget", widgetHandlers()), db
}

func TestBunRepository_CreateScansBackID(t *testing.T) {
	repo, _ := newBunWidgetRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &widget{Name: "Grants", Slug: "grants"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("create did not assign an id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("create did not stamp timestamps")
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Slug != "grants" {
		t.Fatalf("slug = %q", got.Slug)
	}

	bySlug, err := repo.GetByIdentifier(ctx, "grants")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if bySlug.ID != created.ID {
		t.Fatalf("id = %d, want %d", bySlug.ID, created.ID)
	}
}

func TestBunRepository_DuplicateIdentifierConflicts(t *testing.T) {
	repo, _ := newBunWidgetRepo(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, &widget{Name: "One", Slug: "dup"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := repo.Create(ctx, &widget{Name: "Two", Slug: "dup"})
	if !crud.IsConflict(err) {
		t.Fatalf("err = %v, want conflict", err)
	}
	var conflict *crud.ConflictError
	if errors.As(err, &conflict) && conflict.Field != "slug" {
		t.Fatalf("conflict field = %q, want slug", conflict.Field)
	}
}

func TestBunRepository_UniqueConstraintBacksCheck(t *testing.T) {
	repo, db := newBunWidgetRepo(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, &widget{Name: "One", Slug: "raced"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	// A writer that skips the repository still cannot duplicate the slug.
	_, err := db.NewInsert().Model(&widget{Name: "Two", Slug: "raced"}).Exec(ctx)
	if err == nil {
		t.Fatal("raw duplicate insert succeeded, want unique violation")
	}
}

func TestBunRepository_UpdateChecksIdentifier(t *testing.T) {
	repo, _ := newBunWidgetRepo(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, &widget{Name: "One", Slug: "first"}); err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := repo.Create(ctx, &widget{Name: "Two", Slug: "second"})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	second.Slug = "first"
	if _, err := repo.Update(ctx, second, crud.UpdateOptions{CheckIdentifier: true}); !crud.IsConflict(err) {
		t.Fatalf("err = %v, want conflict", err)
	}

	second.Slug = "renamed"
	second.Name = "Two renamed"
	updated, err := repo.Update(ctx, second, crud.UpdateOptions{CheckIdentifier: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := repo.GetByID(ctx, updated.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Slug != "renamed" || got.Name != "Two renamed" {
		t.Fatalf("update not persisted: %+v", got)
	}
}

func TestBunRepository_SecondUniqueColumnConflictUnattributed(t *testing.T) {
	db, err := storage.NewMemoryDB()
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	ctx := context.Background()
	if err := storage.InitSchema(ctx, db, (*gadget)(nil)); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	repo := crud.NewBunRepository(db, "gadget", gadgetHandlers())

	if _, err := repo.Create(ctx, &gadget{Slug: "alpha", Serial: "s-1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err = repo.Create(ctx, &gadget{Slug: "beta", Serial: "s-1"})
	if !crud.IsConflict(err) {
		t.Fatalf("err = %v, want conflict", err)
	}
	var conflict *crud.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %T", err)
	}
	// The slug is free; the error must not blame it for the serial clash.
	if conflict.Field != "" || conflict.Value != "" {
		t.Fatalf("conflict = %+v, want unattributed", conflict)
	}
}

func TestBunRepository_MissingRecordNotFound(t *testing.T) {
	repo, _ := newBunWidgetRepo(t)
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, 404); !crud.IsNotFound(err) {
		t.Fatalf("get err = %v, want not found", err)
	}
	if _, err := repo.GetByIdentifier(ctx, "missing"); !crud.IsNotFound(err) {
		t.Fatalf("get by slug err = %v, want not found", err)
	}
	ghost := &widget{ID: 404, Name: "Ghost", Slug: "ghost"}
	if _, err := repo.Update(ctx, ghost, crud.UpdateOptions{}); !crud.IsNotFound(err) {
		t.Fatalf("update err = %v, want not found", err)
	}
	if err := repo.Delete(ctx, 404); !crud.IsNotFound(err) {
		t.Fatalf("delete err = %v, want not found", err)
	}
}

func TestBunRepository_ListFiltersOrderLimit(t *testing.T) {
	repo, _ := newBunWidgetRepo(t)
	ctx := context.Background()

	for _, w := range []*widget{
		{Name: "A", Slug: "a", IsFeatured: true},
		{Name: "B", Slug: "b"},
		{Name: "C", Slug: "c", IsFeatured: true},
	} {
		if _, err := repo.Create(ctx, w); err != nil {
			t.Fatalf("create %s: %v", w.Slug, err)
		}
	}

	featured, err := repo.List(ctx, crud.ListQuery{Filters: map[string]any{"is_featured": true}})
	if err != nil {
		t.Fatalf("list featured: %v", err)
	}
	if len(featured) != 2 {
		t.Fatalf("featured = %d, want 2", len(featured))
	}

	page, err := repo.List(ctx, crud.ListQuery{
		Order: crud.Order{Column: "slug", Desc: true},
		Limit: 2,
	})
	if err != nil {
		t.Fatalf("list ordered: %v", err)
	}
	if len(page) != 2 || page[0].Slug != "c" || page[1].Slug != "b" {
		t.Fatalf("unexpected page: %+v", page)
	}
}
