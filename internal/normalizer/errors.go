package normalizer

import (
	"errors"
	"fmt"
)

// ErrMissingField is matched by every MissingFieldError via errors.Is.
var ErrMissingField = errors.New("missing required field")

// MissingFieldError reports a required field that is absent from a record.
type MissingFieldError struct {
	Record string
	Field  string
	Index  int
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s.%s at item index %d", ErrMissingField, e.Record, e.Field, e.Index)
}

// Unwrap allows errors.Is(err, ErrMissingField).
func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}
