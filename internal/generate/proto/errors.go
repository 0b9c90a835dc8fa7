package protogen

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedType is returned for a field whose type has no proto3
	// mapping.
	ErrUnsupportedType = errors.New("unsupported type")
	// ErrUnresolvedElementType is returned for a collection field whose
	// element type is unknown.
	ErrUnresolvedElementType = errors.New("unresolved element type")
)

// FieldError reports the first field that could not be mapped.
type FieldError struct {
	Field    string
	TypeName string
	Err      error
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Err, e.TypeName)
	}
	return fmt.Sprintf("field %s: %s: %s", e.Field, e.Err, e.TypeName)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
