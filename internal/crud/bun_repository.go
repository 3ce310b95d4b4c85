package crud

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
)

// BunRepository implements Repository over a bun database. One instance per
// entity, parameterized by ModelHandlers instead of a hand-written class.
type BunRepository[T any] struct {
	db       *bun.DB
	resource string
	handlers ModelHandlers[T]
	now      func() time.Time
}

// NewBunRepository constructs a repository for the given entity model.
func NewBunRepository[T any](db *bun.DB, resource string, handlers ModelHandlers[T]) *BunRepository[T] {
	return &BunRepository[T]{
		db:       db,
		resource: resource,
		handlers: handlers,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// DB exposes the underlying handle for entity-specific repositories that
// need multi-statement transactions.
func (r *BunRepository[T]) DB() *bun.DB { return r.db }

// Handlers exposes the model adapters for wrapping repositories.
func (r *BunRepository[T]) Handlers() ModelHandlers[T] { return r.handlers }

func (r *BunRepository[T]) List(ctx context.Context, q ListQuery) ([]T, error) {
	records := []T{}
	query := r.db.NewSelect().Model(&records)
	query = applyListQuery(query, q)
	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("%s list: %w", r.resource, err)
	}
	return records, nil
}

func (r *BunRepository[T]) GetByID(ctx context.Context, id int64) (T, error) {
	record := r.handlers.NewRecord()
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		var zero T
		if errors.Is(err, sql.ErrNoRows) {
			return zero, &NotFoundError{Resource: r.resource, Key: fmt.Sprintf("%d", id)}
		}
		return zero, fmt.Errorf("%s get: %w", r.resource, err)
	}
	return record, nil
}

func (r *BunRepository[T]) GetByIdentifier(ctx context.Context, value string) (T, error) {
	var zero T
	column := r.identifierColumn()
	if column == "" {
		return zero, ErrIdentifierUnsupported
	}
	record := r.handlers.NewRecord()
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.? = ?", bun.Ident(column), value).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, &NotFoundError{Resource: r.resource, Key: value}
		}
		return zero, fmt.Errorf("%s get by %s: %w", r.resource, column, err)
	}
	return record, nil
}

// Create inserts the record. When the entity carries a unique identifier the
// existence check and the insert share one transaction, and the UNIQUE
// constraint backs it up for writers that raced past the check.
func (r *BunRepository[T]) Create(ctx context.Context, record T) (T, error) {
	var zero T
	if r.handlers.Stamp != nil {
		r.handlers.Stamp(record, r.now(), true)
	}

	column := r.identifierColumn()
	value := r.identifierValue(record)

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if column != "" && value != "" {
			exists, err := tx.NewSelect().
				Model(r.handlers.NewRecord()).
				Where("?TableAlias.? = ?", bun.Ident(column), value).
				Exists(ctx)
			if err != nil {
				return fmt.Errorf("%s uniqueness check: %w", r.resource, err)
			}
			if exists {
				return &ConflictError{Resource: r.resource, Field: column, Value: value}
			}
		}
		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			// The driver does not say which column fired, so the error
			// stays unattributed rather than blaming the identifier.
			return zero, &ConflictError{Resource: r.resource}
		}
		return zero, err
	}
	return record, nil
}

func (r *BunRepository[T]) Update(ctx context.Context, record T, opts UpdateOptions) (T, error) {
	var zero T
	if r.handlers.Stamp != nil {
		r.handlers.Stamp(record, r.now(), false)
	}

	id := r.handlers.GetID(record)
	column := r.identifierColumn()
	value := r.identifierValue(record)

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if opts.CheckIdentifier && column != "" && value != "" {
			exists, err := tx.NewSelect().
				Model(r.handlers.NewRecord()).
				Where("?TableAlias.? = ?", bun.Ident(column), value).
				Where("?TableAlias.id != ?", id).
				Exists(ctx)
			if err != nil {
				return fmt.Errorf("%s uniqueness check: %w", r.resource, err)
			}
			if exists {
				return &ConflictError{Resource: r.resource, Field: column, Value: value}
			}
		}

		query := tx.NewUpdate().Model(record).Where("?TableAlias.id = ?", id)
		if len(opts.Columns) > 0 {
			query = query.Column(opts.Columns...)
		}
		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%s update rows affected: %w", r.resource, err)
		}
		if affected == 0 {
			return &NotFoundError{Resource: r.resource, Key: fmt.Sprintf("%d", id)}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return zero, &ConflictError{Resource: r.resource}
		}
		return zero, err
	}
	return record, nil
}

func (r *BunRepository[T]) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model(r.handlers.NewRecord()).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("%s delete: %w", r.resource, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s delete rows affected: %w", r.resource, err)
	}
	if affected == 0 {
		return &NotFoundError{Resource: r.resource, Key: fmt.Sprintf("%d", id)}
	}
	return nil
}

func (r *BunRepository[T]) identifierColumn() string {
	if r.handlers.GetIdentifier == nil {
		return ""
	}
	return r.handlers.GetIdentifier()
}

func (r *BunRepository[T]) identifierValue(record T) string {
	if r.handlers.GetIdentifierValue == nil {
		return ""
	}
	return r.handlers.GetIdentifierValue(record)
}

func applyListQuery(query *bun.SelectQuery, q ListQuery) *bun.SelectQuery {
	for column, value := range q.Filters {
		query = query.Where("?TableAlias.? = ?", bun.Ident(column), value)
	}
	if q.Order.Column != "" {
		direction := "ASC"
		if q.Order.Desc {
			direction = "DESC"
		}
		query = query.OrderExpr("?TableAlias.? ?", bun.Ident(q.Order.Column), bun.Safe(direction))
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	if q.Offset > 0 {
		query = query.Offset(q.Offset)
	}
	return query
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
