package crud

import (
	"context"
	"errors"
	"strings"

	"github.com/fullsco/fullsco/internal/logging"
	slug "github.com/goliatone/go-slug"
)

var (
	ErrSlugRequired = errors.New("slug is required")
	ErrSlugInvalid  = errors.New("slug contains invalid characters")
)

// Service is the generic entity use-case layer: validation, slug rules, and
// error logging around a Repository. Each entity package instantiates it
// with its own handlers and rules.
type Service[T any] struct {
	repo     Repository[T]
	resource string
	handlers ModelHandlers[T]
	validate func(T) error
	log      logging.Logger
	slugged  bool
}

// ServiceOption configures a Service at construction time.
type ServiceOption[T any] func(*Service[T])

// WithLogger attaches a module logger.
func WithLogger[T any](log logging.Logger) ServiceOption[T] {
	return func(s *Service[T]) {
		if log != nil {
			s.log = log
		}
	}
}

// WithValidator sets the entity validation rules applied on create and on
// the patched record during update.
func WithValidator[T any](validate func(T) error) ServiceOption[T] {
	return func(s *Service[T]) {
		s.validate = validate
	}
}

// NewService builds the generic service for one entity. Entities whose
// unique identifier column is "slug" get normalization and shape checks for
// free; other identifier columns (path, email) are validated by the entity's
// own rules.
func NewService[T any](repo Repository[T], resource string, handlers ModelHandlers[T], opts ...ServiceOption[T]) *Service[T] {
	s := &Service[T]{
		repo:     repo,
		resource: resource,
		log:      logging.NoOp(),
	}
	if handlers.GetIdentifier != nil && handlers.GetIdentifier() == "slug" {
		s.slugged = true
	}
	s.handlers = handlers
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service[T]) List(ctx context.Context, q ListQuery) ([]T, error) {
	records, err := s.repo.List(ctx, q)
	if err != nil {
		s.log.Error("list failed", "resource", s.resource, "error", err)
		return nil, err
	}
	return records, nil
}

func (s *Service[T]) Get(ctx context.Context, id int64) (T, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByIdentifier looks up by the entity's unique string column.
func (s *Service[T]) GetByIdentifier(ctx context.Context, value string) (T, error) {
	var zero T
	value = strings.TrimSpace(value)
	if value == "" {
		return zero, &NotFoundError{Resource: s.resource}
	}
	return s.repo.GetByIdentifier(ctx, value)
}

func (s *Service[T]) Create(ctx context.Context, record T) (T, error) {
	var zero T
	if err := s.prepareIdentifier(record); err != nil {
		return zero, err
	}
	if s.validate != nil {
		if err := s.validate(record); err != nil {
			return zero, WrapValidationError(err)
		}
	}
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		if !IsConflict(err) {
			s.log.Error("create failed", "resource", s.resource, "error", err)
		}
		return zero, err
	}
	return created, nil
}

// Update loads the record, lets apply mutate it, and persists the result.
// An empty patch changes nothing but updated_at; identifier uniqueness is
// re-checked only when apply changed the field.
func (s *Service[T]) Update(ctx context.Context, id int64, apply func(T) error) (T, error) {
	var zero T
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return zero, err
	}

	before := s.identifierValue(record)
	if apply != nil {
		if err := apply(record); err != nil {
			return zero, WrapValidationError(err)
		}
	}
	if err := s.prepareIdentifier(record); err != nil {
		return zero, err
	}
	if s.validate != nil {
		if err := s.validate(record); err != nil {
			return zero, WrapValidationError(err)
		}
	}

	updated, err := s.repo.Update(ctx, record, UpdateOptions{
		CheckIdentifier: s.identifierValue(record) != before,
	})
	if err != nil {
		if !IsConflict(err) && !IsNotFound(err) {
			s.log.Error("update failed", "resource", s.resource, "id", id, "error", err)
		}
		return zero, err
	}
	return updated, nil
}

func (s *Service[T]) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if !IsNotFound(err) {
			s.log.Error("delete failed", "resource", s.resource, "id", id, "error", err)
		}
		return err
	}
	return nil
}

// Repo exposes the underlying repository for entity-specific extensions.
func (s *Service[T]) Repo() Repository[T] { return s.repo }

func (s *Service[T]) prepareIdentifier(record T) error {
	if !s.slugged {
		return nil
	}
	value := strings.TrimSpace(s.identifierValue(record))
	if value == "" {
		return WrapValidationError(ErrSlugRequired)
	}
	normalized, err := slug.Normalize(value)
	if err != nil || !slug.IsValid(normalized) {
		return WrapValidationError(ErrSlugInvalid)
	}
	s.handlers.SetIdentifierValue(record, normalized)
	return nil
}

func (s *Service[T]) identifierValue(record T) string {
	if s.handlers.GetIdentifierValue == nil {
		return ""
	}
	return s.handlers.GetIdentifierValue(record)
}
