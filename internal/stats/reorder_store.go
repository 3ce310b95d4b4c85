package stats

import (
	"context"
	"database/sql"
	"time"

	"github.com/uptrace/bun"

	"github.com/fullsco/fullsco/internal/crud"
)

// BunReorderStore writes display positions inside one transaction.
type BunReorderStore struct {
	db *bun.DB
}

func NewBunReorderStore(db *bun.DB) *BunReorderStore {
	return &BunReorderStore{db: db}
}

func (s *BunReorderStore) ApplyOrder(ctx context.Context, positions map[int64]int) error {
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now().UTC()
		for id, pos := range positions {
			if _, err := tx.NewUpdate().
				Model((*Statistic)(nil)).
				Set("display_order = ?", pos).
				Set("updated_at = ?", now).
				Where("id = ?", id).
				Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}

// MemoryReorderStore applies positions through the in-memory repository.
type MemoryReorderStore struct {
	repo crud.Repository[*Statistic]
}

func NewMemoryReorderStore(repo crud.Repository[*Statistic]) *MemoryReorderStore {
	return &MemoryReorderStore{repo: repo}
}

func (s *MemoryReorderStore) ApplyOrder(ctx context.Context, positions map[int64]int) error {
	for id, pos := range positions {
		record, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		record.DisplayOrder = pos
		if _, err := s.repo.Update(ctx, record, crud.UpdateOptions{}); err != nil {
			return err
		}
	}
	return nil
}
