package crud

import (
	"context"
	"time"
)

// ModelHandlers adapts an entity model to the generic repository. Every
// FULLSCO entity is a flat record with an int64 identity; slugged entities
// additionally expose a unique identifier column used for public lookups.
type ModelHandlers[T any] struct {
	NewRecord func() T
	GetID     func(T) int64
	SetID     func(T, int64)

	// GetIdentifier names the unique string column ("slug", "path",
	// "email"); empty means the entity has none.
	GetIdentifier      func() string
	GetIdentifierValue func(T) string
	SetIdentifierValue func(T, string)

	// Stamp lets the persistence layer own created_at/updated_at.
	Stamp func(record T, now time.Time, created bool)

	// Clone produces a defensive copy for in-memory storage.
	Clone func(T) T
}

// ListQuery narrows List results. Filters are column equality checks, the
// only filter shape the API exposes.
type ListQuery struct {
	Filters map[string]any
	Order   Order
	Limit   int
	Offset  int
}

// Order describes a single-column sort.
type Order struct {
	Column string
	Desc   bool
}

// UpdateOptions controls column scope and identifier re-checks on update.
type UpdateOptions struct {
	// Columns limits the update to the named columns; empty updates all.
	Columns []string
	// CheckIdentifier re-validates identifier uniqueness inside the same
	// transaction as the write. Set when the caller changed the field.
	CheckIdentifier bool
}

// Repository is the storage contract shared by every entity. Create runs the
// uniqueness check and insert in a single transaction; the schema carries a
// matching UNIQUE constraint so concurrent creates cannot both pass.
type Repository[T any] interface {
	List(ctx context.Context, q ListQuery) ([]T, error)
	GetByID(ctx context.Context, id int64) (T, error)
	GetByIdentifier(ctx context.Context, value string) (T, error)
	Create(ctx context.Context, record T) (T, error)
	Update(ctx context.Context, record T, opts UpdateOptions) (T, error)
	Delete(ctx context.Context, id int64) error
}
