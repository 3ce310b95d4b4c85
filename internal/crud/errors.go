package crud

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

var ErrIdentifierUnsupported = errors.New("crud: entity has no unique identifier column")

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// ConflictError reports a uniqueness violation. Field and Value are set only
// when the violated column is known.
type ConflictError struct {
	Resource string
	Field    string
	Value    string
}

func (e *ConflictError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s already exists", e.Resource)
	}
	if e.Value == "" {
		return fmt.Sprintf("%s %s already exists", e.Resource, e.Field)
	}
	return fmt.Sprintf("%s %s %q already exists", e.Resource, e.Field, e.Value)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// IsConflict reports whether err wraps a ConflictError.
func IsConflict(err error) bool {
	var conflict *ConflictError
	return errors.As(err, &conflict)
}

const validationFailedCode = "ENTITY_VALIDATION_FAILED"

// WrapValidationError tags validation failures so the transport layer can map
// them without matching message text.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "entity validation failed").
		WithTextCode(validationFailedCode)
}

// IsValidation reports whether err carries the validation category.
func IsValidation(err error) bool {
	if err == nil {
		return false
	}
	return goerrors.IsCategory(err, goerrors.CategoryValidation)
}
