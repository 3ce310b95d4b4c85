package catalog_test

import (
	"context"
	"testing"

	"github.com/fullsco/fullsco/internal/catalog"
	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/logging"
)

func TestCategoryCreateAndSlugLookup(t *testing.T) {
	svc := catalog.NewCategoryService(
		crud.NewMemoryRepository("category", catalog.CategoryHandlers()), logging.NoOp())
	ctx := context.Background()

	created, err := svc.Create(ctx, &catalog.Category{Name: "Engineering", Slug: "Engineering Grants"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Slug != "engineering-grants" {
		t.Fatalf("slug = %q, want normalized", created.Slug)
	}

	got, err := svc.GetByIdentifier(ctx, "engineering-grants")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("id = %d, want %d", got.ID, created.ID)
	}
}

func TestCategoryRequiresName(t *testing.T) {
	svc := catalog.NewCategoryService(
		crud.NewMemoryRepository("category", catalog.CategoryHandlers()), logging.NoOp())

	_, err := svc.Create(context.Background(), &catalog.Category{Slug: "unnamed"})
	if !crud.IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestLevelSortOrderFilterAndOrder(t *testing.T) {
	svc := catalog.NewLevelService(
		crud.NewMemoryRepository("level", catalog.LevelHandlers()), logging.NoOp())
	ctx := context.Background()

	for _, l := range []*catalog.Level{
		{Name: "PhD", Slug: "phd", SortOrder: 3},
		{Name: "Bachelor", Slug: "bachelor", SortOrder: 1},
		{Name: "Master", Slug: "master", SortOrder: 2},
	} {
		if _, err := svc.Create(ctx, l); err != nil {
			t.Fatalf("create %s: %v", l.Slug, err)
		}
	}

	levels, err := svc.List(ctx, crud.ListQuery{Order: crud.Order{Column: "sort_order"}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(levels) != 3 {
		t.Fatalf("len = %d, want 3", len(levels))
	}
	if levels[0].Slug != "bachelor" || levels[2].Slug != "phd" {
		t.Fatalf("order wrong: %s..%s", levels[0].Slug, levels[2].Slug)
	}
}

func TestCountryDuplicateSlugConflicts(t *testing.T) {
	svc := catalog.NewCountryService(
		crud.NewMemoryRepository("country", catalog.CountryHandlers()), logging.NoOp())
	ctx := context.Background()

	if _, err := svc.Create(ctx, &catalog.Country{Name: "Germany", Slug: "germany"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.Create(ctx, &catalog.Country{Name: "Germany Again", Slug: "germany"})
	if !crud.IsConflict(err) {
		t.Fatalf("err = %v, want conflict", err)
	}
}
