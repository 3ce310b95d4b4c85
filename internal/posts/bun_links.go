package posts

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/logging"
)

// BunTagLinkStore persists join rows with bun transactions.
type BunTagLinkStore struct {
	db *bun.DB
}

func NewBunTagLinkStore(db *bun.DB) *BunTagLinkStore {
	return &BunTagLinkStore{db: db}
}

// NewBunService wires the post service onto one database handle.
func NewBunService(db *bun.DB, log logging.Logger) *Service {
	return NewService(
		crud.NewBunRepository(db, "post", PostHandlers()),
		crud.NewBunRepository(db, "tag", TagHandlers()),
		NewBunTagLinkStore(db),
		log,
	)
}

func (s *BunTagLinkStore) Replace(ctx context.Context, postID int64, tagIDs []int64) error {
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*PostTag)(nil)).
			Where("post_id = ?", postID).
			Exec(ctx); err != nil {
			return err
		}
		if len(tagIDs) == 0 {
			return nil
		}
		rows := make([]PostTag, 0, len(tagIDs))
		for _, tagID := range tagIDs {
			rows = append(rows, PostTag{PostID: postID, TagID: tagID})
		}
		_, err := tx.NewInsert().Model(&rows).Exec(ctx)
		return err
	})
}

func (s *BunTagLinkStore) TagIDs(ctx context.Context, postID int64) ([]int64, error) {
	var ids []int64
	err := s.db.NewSelect().
		Model((*PostTag)(nil)).
		Column("tag_id").
		Where("post_id = ?", postID).
		Order("tag_id ASC").
		Scan(ctx, &ids)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *BunTagLinkStore) DeletePost(ctx context.Context, postID int64) error {
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*PostTag)(nil)).
			Where("post_id = ?", postID).
			Exec(ctx); err != nil {
			return err
		}
		res, err := tx.NewDelete().
			Model((*Post)(nil)).
			Where("id = ?", postID).
			Exec(ctx)
		if err != nil {
			return err
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return &crud.NotFoundError{Resource: "post"}
		}
		return nil
	})
}
