package scholarships_test

import (
	"context"
	"testing"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/logging"
	"github.com/fullsco/fullsco/internal/scholarships"
)

func newService() *scholarships.Service {
	return scholarships.NewService(
		crud.NewMemoryRepository("scholarship", scholarships.Handlers()), logging.NoOp())
}

func TestFeaturedFilter(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	seed := []*scholarships.Scholarship{
		{Title: "DAAD", Slug: "daad", IsFeatured: true, IsPublished: true},
		{Title: "Chevening", Slug: "chevening", IsPublished: true},
		{Title: "Fulbright", Slug: "fulbright", IsFeatured: true},
	}
	for _, s := range seed {
		if _, err := svc.Create(ctx, s); err != nil {
			t.Fatalf("create %s: %v", s.Slug, err)
		}
	}

	featured, err := svc.List(ctx, crud.ListQuery{Filters: map[string]any{"is_featured": true}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(featured) != 2 {
		t.Fatalf("featured = %d, want 2", len(featured))
	}
}

func TestUpdatePartialPatch(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &scholarships.Scholarship{Title: "DAAD", Slug: "daad"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, func(s *scholarships.Scholarship) error {
		s.IsPublished = true
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.IsPublished {
		t.Fatal("IsPublished not applied")
	}
	if updated.Title != "DAAD" || updated.Slug != "daad" {
		t.Fatalf("untouched fields changed: %q %q", updated.Title, updated.Slug)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatal("created_at changed on update")
	}
}

func TestGetMissingID(t *testing.T) {
	svc := newService()
	if _, err := svc.Get(context.Background(), 404); !crud.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}
