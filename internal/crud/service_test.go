package crud_test

import (
	"context"
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"

	"github.com/fullsco/fullsco/internal/crud"
)

type widget struct {
	bun.BaseModel `bun:"table:widgets,alias:w"`

	ID         int64     `bun:"id,pk,autoincrement"`
	Name       string    `bun:"name,notnull"`
	Slug       string    `bun:"slug,notnull,unique"`
	IsFeatured bool      `bun:"is_featured,notnull,default:false"`
	CreatedAt  time.Time `bun:"created_at,nullzero"`
	UpdatedAt  time.Time `bun:"updated_at,nullzero"`
}

func widgetHandlers() crud.ModelHandlers[*widget] {
	return crud.ModelHandlers[*widget]{
		NewRecord:          func() *widget { return &widget{} },
		GetID:              func(w *widget) int64 { return w.ID },
		SetID:              func(w *widget, id int64) { w.ID = id },
		GetIdentifier:      func() string { return "slug" },
		GetIdentifierValue: func(w *widget) string { return w.Slug },
		SetIdentifierValue: func(w *widget, v string) { w.Slug = v },
		Stamp: func(w *widget, now time.Time, created bool) {
			if created {
				w.CreatedAt = now
			}
			w.UpdatedAt = now
		},
		Clone: func(w *widget) *widget {
			cp := *w
			return &cp
		},
	}
}

func validateWidget(w *widget) error {
	return validation.ValidateStruct(w,
		validation.Field(&w.Name, validation.Required, validation.Length(1, 200)),
	)
}

func newWidgetService() *crud.Service[*widget] {
	handlers := widgetHandlers()
	repo := crud.NewMemoryRepository("widget", handlers)
	return crud.NewService(repo, "widget", handlers,
		crud.WithValidator[*widget](validateWidget))
}

func TestService_CreateNormalizesSlug(t *testing.T) {
	ctx := context.Background()
	svc := newWidgetService()

	created, err := svc.Create(ctx, &widget{Name: "Engineering", Slug: "  Engineering Grants "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Slug != "engineering-grants" {
		t.Fatalf("expected normalized slug, got %q", created.Slug)
	}
	if created.ID == 0 {
		t.Fatal("expected generated id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be stamped")
	}
}

func TestService_CreateDuplicateSlugConflicts(t *testing.T) {
	ctx := context.Background()
	svc := newWidgetService()

	if _, err := svc.Create(ctx, &widget{Name: "First", Slug: "engineering"}); err != nil {
		t.Fatalf("Create first: %v", err)
	}
	_, err := svc.Create(ctx, &widget{Name: "Second", Slug: "engineering"})
	if !crud.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := newWidgetService()

	_, err := svc.Create(ctx, &widget{Slug: "no-name"})
	if err == nil || !crud.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.Create(ctx, &widget{Name: "No Slug"})
	if !errors.Is(err, crud.ErrSlugRequired) {
		t.Fatalf("expected ErrSlugRequired, got %v", err)
	}
}

func TestService_GetMissingIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newWidgetService()

	if _, err := svc.Get(ctx, 99); !crud.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.GetByIdentifier(ctx, "ghost"); !crud.IsNotFound(err) {
		t.Fatalf("expected not found by slug, got %v", err)
	}
}

func TestService_UpdateEmptyPatchLeavesFields(t *testing.T) {
	ctx := context.Background()
	svc := newWidgetService()

	created, err := svc.Create(ctx, &widget{Name: "Engineering", Slug: "engineering", IsFeatured: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, func(*widget) error { return nil })
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != created.Name || updated.Slug != created.Slug || !updated.IsFeatured {
		t.Fatalf("empty patch mutated fields: %+v", updated)
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Fatal("empty patch changed created_at")
	}
}

func TestService_UpdateSlugConflict(t *testing.T) {
	ctx := context.Background()
	svc := newWidgetService()

	if _, err := svc.Create(ctx, &widget{Name: "A", Slug: "alpha"}); err != nil {
		t.Fatalf("Create alpha: %v", err)
	}
	second, err := svc.Create(ctx, &widget{Name: "B", Slug: "beta"})
	if err != nil {
		t.Fatalf("Create beta: %v", err)
	}

	_, err = svc.Update(ctx, second.ID, func(w *widget) error {
		w.Slug = "alpha"
		return nil
	})
	if !crud.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	// Keeping the same slug must not trip the uniqueness re-check.
	if _, err := svc.Update(ctx, second.ID, func(w *widget) error {
		w.Name = "B2"
		return nil
	}); err != nil {
		t.Fatalf("Update without slug change: %v", err)
	}
}

func TestService_ListFilters(t *testing.T) {
	ctx := context.Background()
	svc := newWidgetService()

	for _, w := range []*widget{
		{Name: "A", Slug: "a", IsFeatured: true},
		{Name: "B", Slug: "b"},
		{Name: "C", Slug: "c", IsFeatured: true},
	} {
		if _, err := svc.Create(ctx, w); err != nil {
			t.Fatalf("Create %s: %v", w.Name, err)
		}
	}

	featured, err := svc.List(ctx, crud.ListQuery{Filters: map[string]any{"is_featured": true}})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(featured) != 2 {
		t.Fatalf("expected 2 featured widgets, got %d", len(featured))
	}

	paged, err := svc.List(ctx, crud.ListQuery{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("List paged: %v", err)
	}
	if len(paged) != 1 {
		t.Fatalf("expected 1 widget, got %d", len(paged))
	}
}

func TestService_DeleteMissingIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newWidgetService()

	created, err := svc.Create(ctx, &widget{Name: "A", Slug: "a"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !crud.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
