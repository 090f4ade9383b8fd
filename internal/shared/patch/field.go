// Package patch は部分更新リクエストで「未指定」「明示的なnull」「値あり」を区別するための型を提供します。
package patch

import (
	"bytes"
	"encoding/json"
)

// Field holds one optional, nullable JSON field.
//
//	absent  → Set=false
//	null    → Set=true, Null=true
//	value   → Set=true, Null=false, Value=v
//
// Field must be used as a non-pointer struct field so that encoding/json calls UnmarshalJSON for null.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Value returns a Field carrying v.
func Value[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null returns a Field explicitly set to null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// HasValue reports whether the field was sent with a non-null value.
func (f Field[T]) HasValue() bool {
	return f.Set && !f.Null
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		var zero T
		f.Null = true
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(b, &f.Value)
}

// MarshalJSON renders null for absent or null fields.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.HasValue() {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
