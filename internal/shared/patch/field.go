// Package patch provides tri-state optional fields for partial updates.
// A Field distinguishes between a field absent from the patch, a field
// explicitly set to null, and a field set to a value.
package patch

import (
	"bytes"
	"encoding/json"
)

type state uint8

const (
	unchanged state = iota
	explicitNull
	hasValue
)

// Field is a tri-state patch value. The zero value means "unchanged".
type Field[T any] struct {
	state state
	value T
}

// Unchanged returns a field that is not part of the patch.
func Unchanged[T any]() Field[T] {
	return Field[T]{}
}

// Null returns a field explicitly set to null.
func Null[T any]() Field[T] {
	return Field[T]{state: explicitNull}
}

// Set returns a field set to the given value.
func Set[T any](v T) Field[T] {
	return Field[T]{state: hasValue, value: v}
}

// IsUnchanged reports whether the field was absent from the patch.
func (f Field[T]) IsUnchanged() bool {
	return f.state == unchanged
}

// IsNull reports whether the field was explicitly set to null.
func (f Field[T]) IsNull() bool {
	return f.state == explicitNull
}

// HasValue reports whether the field carries a value.
func (f Field[T]) HasValue() bool {
	return f.state == hasValue
}

// Value returns the carried value and whether one is present.
func (f Field[T]) Value() (T, bool) {
	return f.value, f.state == hasValue
}

// Ptr returns a pointer to the value, or nil for null/unchanged fields.
func (f Field[T]) Ptr() *T {
	if f.state != hasValue {
		return nil
	}
	v := f.value
	return &v
}

// UnmarshalJSON implements json.Unmarshaler. A missing key leaves the field
// unchanged because UnmarshalJSON is never invoked for absent keys.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = Null[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Set(v)
	return nil
}

// MarshalJSON implements json.Marshaler. Unchanged fields marshal as null;
// callers that need key omission should check IsUnchanged first.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.state == hasValue {
		return json.Marshal(f.value)
	}
	return []byte("null"), nil
}
