package stats_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/logging"
	"github.com/fullsco/fullsco/internal/stats"
	"github.com/fullsco/fullsco/internal/storage"
)

func newBunService(t *testing.T) *stats.Service {
	t.Helper()
	db, err := storage.NewMemoryDB()
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitSchema(context.Background(), db, stats.Models()...); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return stats.NewBunService(db, logging.NoOp())
}

func TestBunReorderWritesAllPositions(t *testing.T) {
	svc := newBunService(t)
	ctx := context.Background()

	ids := make([]int64, 0, 3)
	for i := 0; i < 3; i++ {
		st, err := svc.Create(ctx, &stats.Statistic{
			Title: fmt.Sprintf("Counter %d", i),
			Value: fmt.Sprintf("%d", (i+1)*100),
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ids = append(ids, st.ID)
	}

	// Reverse the creation order.
	if err := svc.Reorder(ctx, []int64{ids[2], ids[1], ids[0]}); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	ordered, err := svc.List(ctx, crud.ListQuery{Order: crud.Order{Column: "display_order"}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ordered) != 3 {
		t.Fatalf("listed %d statistics, want 3", len(ordered))
	}
	want := []int64{ids[2], ids[1], ids[0]}
	for i, st := range ordered {
		if st.ID != want[i] {
			t.Fatalf("position %d holds id %d, want %d", i+1, st.ID, want[i])
		}
		if st.DisplayOrder != i+1 {
			t.Fatalf("display order = %d, want %d", st.DisplayOrder, i+1)
		}
	}
}
