package pageobject

import (
	"errors"
	"fmt"
)

var (
	// ErrReadOnlyField is returned when assigning to a declared field.
	ErrReadOnlyField = errors.New("field is read-only")
	// ErrUnknownField is returned when a name is not declared in the schema.
	ErrUnknownField = errors.New("field is not declared")
	// ErrNotElement is returned when an element accessor names a component.
	ErrNotElement = errors.New("field is not an element")
	// ErrNotComponent is returned when a component accessor names an element.
	ErrNotComponent = errors.New("field is not a component")
	// ErrNilSchema is returned by Load when no schema is given.
	ErrNilSchema = errors.New("page schema is nil")
)

// FieldError ties one of the errors above to a schema field.
type FieldError struct {
	Schema string
	Field  string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.Schema, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
