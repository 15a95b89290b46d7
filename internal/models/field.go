// Package models defines the raw listing records and the normalized entities
// produced from them.
package models

import (
	"bytes"
	"encoding/json"
)

// Field wraps a JSON value and records whether its key was present
// and whether it held a JSON null.
type Field[T any] struct {
	Value   T
	Present bool
	Null    bool
}

// UnmarshalJSON is only invoked when the key exists in the object.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Present = true

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true

		return nil
	}

	return json.Unmarshal(data, &f.Value)
}

// Valid reports whether the key was present with a non-null value.
func (f Field[T]) Valid() bool {
	return f.Present && !f.Null
}

// Ptr returns a pointer to the value, or nil when absent or null.
func (f Field[T]) Ptr() *T {
	if !f.Valid() {
		return nil
	}

	v := f.Value

	return &v
}

// Set returns a present, non-null field holding v.
func Set[T any](v T) Field[T] {
	return Field[T]{Value: v, Present: true}
}

// Null returns a present field holding JSON null.
func Null[T any]() Field[T] {
	return Field[T]{Present: true, Null: true}
}
