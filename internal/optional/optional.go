// Package optional provides a three-state field wrapper for partial updates.
//
// JSON cannot distinguish an absent field from an explicit null once both
// decode to a nil pointer. Optional keeps the two apart: Present is false
// when the field was omitted and true when it appeared, with Value nil for
// an explicit null.
package optional

import (
	"encoding/json"
	"reflect"

	"github.com/danielgtaylor/huma/v2"
)

// Optional wraps a nullable field in a partial-update request.
type Optional[T any] struct {
	// Present is true when the field appeared in the request body.
	Present bool
	// Value is the decoded value, nil when the field was an explicit null.
	Value *T
}

// Of returns a present Optional holding v.
func Of[T any](v T) Optional[T] {
	return Optional[T]{Present: true, Value: &v}
}

// Null returns a present Optional holding an explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{Present: true}
}

// UnmarshalJSON is only called when the field is present in the body, so
// its mere invocation flips Present.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// MarshalJSON renders the wrapped value, with absent encoding as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Schema describes the field as a nullable variant of T's schema.
func (o Optional[T]) Schema(r huma.Registry) *huma.Schema {
	var v T
	inner := r.Schema(reflect.TypeOf(v), true, "")

	s := *inner
	s.Extensions = map[string]any{"nullable": true}
	return &s
}
