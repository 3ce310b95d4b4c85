package stats_test

import (
	"context"
	"testing"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/logging"
	"github.com/fullsco/fullsco/internal/stats"
)

func newService() *stats.Service {
	repo := crud.NewMemoryRepository("statistic", stats.Handlers())
	return stats.NewService(repo, stats.NewMemoryReorderStore(repo), logging.NoOp())
}

func seed(t *testing.T, svc *stats.Service, n int) []int64 {
	t.Helper()
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		st, err := svc.Create(context.Background(), &stats.Statistic{
			Title: "Counter",
			Value: "1000+",
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		ids = append(ids, st.ID)
	}
	return ids
}

func TestReorderAssignsSequentialPositions(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	ids := seed(t, svc, 3)

	// reverse the current order
	if err := svc.Reorder(ctx, []int64{ids[2], ids[0], ids[1]}); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	want := map[int64]int{ids[2]: 1, ids[0]: 2, ids[1]: 3}
	for id, pos := range want {
		st, err := svc.Get(ctx, id)
		if err != nil {
			t.Fatalf("get %d: %v", id, err)
		}
		if st.DisplayOrder != pos {
			t.Fatalf("statistic %d order = %d, want %d", id, st.DisplayOrder, pos)
		}
	}
}

func TestReorderRejectsBadIDSets(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	ids := seed(t, svc, 3)

	cases := map[string][]int64{
		"unknown id": {ids[0], ids[1], 9999},
		"duplicate":  {ids[0], ids[0], ids[1]},
		"missing":    {ids[0], ids[1]},
	}
	for name, input := range cases {
		if err := svc.Reorder(ctx, input); !crud.IsValidation(err) {
			t.Errorf("%s: err = %v, want validation", name, err)
		}
	}
}
