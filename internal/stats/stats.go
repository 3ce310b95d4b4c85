// Package stats manages the homepage counters and their manual ordering.
package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/logging"
)

var (
	ErrReorderIncomplete = errors.New("stats: reorder must list every statistic exactly once")
	ErrReorderUnknownID  = errors.New("stats: reorder references an unknown statistic")
)

type Statistic struct {
	bun.BaseModel `bun:"table:statistics,alias:st"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	Title        string    `bun:"title,notnull" json:"title"`
	Value        string    `bun:"value,notnull" json:"value"`
	Icon         *string   `bun:"icon" json:"icon,omitempty"`
	DisplayOrder int       `bun:"display_order,notnull,default:0" json:"order"`
	CreatedAt    time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt    time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

func Models() []any {
	return []any{(*Statistic)(nil)}
}

func Handlers() crud.ModelHandlers[*Statistic] {
	return crud.ModelHandlers[*Statistic]{
		NewRecord: func() *Statistic { return &Statistic{} },
		GetID:     func(s *Statistic) int64 { return s.ID },
		SetID:     func(s *Statistic, id int64) { s.ID = id },
		Stamp: func(s *Statistic, now time.Time, created bool) {
			if created {
				s.CreatedAt = now
			}
			s.UpdatedAt = now
		},
		Clone: func(s *Statistic) *Statistic {
			out := *s
			if s.Icon != nil {
				v := *s.Icon
				out.Icon = &v
			}
			return &out
		},
	}
}

func validate(s *Statistic) error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&s.Value, validation.Required, validation.Length(1, 255)),
		validation.Field(&s.DisplayOrder, validation.Min(0)),
	)
}

// ReorderStore applies a full set of display positions atomically.
type ReorderStore interface {
	ApplyOrder(ctx context.Context, positions map[int64]int) error
}

// Service adds the reorder workflow on top of the generic statistic service.
type Service struct {
	*crud.Service[*Statistic]
	store ReorderStore
	log   logging.Logger
}

func NewService(repo crud.Repository[*Statistic], store ReorderStore, log logging.Logger) *Service {
	return &Service{
		Service: crud.NewService(repo, "statistic", Handlers(),
			crud.WithLogger[*Statistic](log),
			crud.WithValidator(validate),
		),
		store: store,
		log:   log,
	}
}

func NewBunService(db *bun.DB, log logging.Logger) *Service {
	return NewService(crud.NewBunRepository(db, "statistic", Handlers()), NewBunReorderStore(db), log)
}

// Reorder assigns display positions 1..N following the input sequence. The
// id list must cover every statistic exactly once; positions are written in
// one transaction so a failure cannot leave a partial ordering.
func (s *Service) Reorder(ctx context.Context, ids []int64) error {
	existing, err := s.List(ctx, crud.ListQuery{})
	if err != nil {
		return err
	}

	known := make(map[int64]struct{}, len(existing))
	for _, st := range existing {
		known[st.ID] = struct{}{}
	}

	positions := make(map[int64]int, len(ids))
	for idx, id := range ids {
		if _, ok := known[id]; !ok {
			return crud.WrapValidationError(fmt.Errorf("%w: %d", ErrReorderUnknownID, id))
		}
		if _, dup := positions[id]; dup {
			return crud.WrapValidationError(fmt.Errorf("%w (duplicate %d)", ErrReorderIncomplete, id))
		}
		positions[id] = idx + 1
	}
	if len(positions) != len(existing) {
		return crud.WrapValidationError(ErrReorderIncomplete)
	}

	if err := s.store.ApplyOrder(ctx, positions); err != nil {
		s.log.Error("reorder failed", "error", err)
		return err
	}
	return nil
}
