package fivem

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Field is a value projected out of an endpoint document. Present is false
// when the key was missing or null; Value then holds the zero value.
type Field[T any] struct {
	Value   T
	Present bool
}

// Get returns the value and whether it was present.
func (f Field[T]) Get() (T, bool) { return f.Value, f.Present }

// Or returns the value, or def when the field was absent.
func (f Field[T]) Or(def T) T {
	if !f.Present {
		return def
	}
	return f.Value
}

func (f Field[T]) String() string {
	if !f.Present {
		return "<unknown>"
	}
	return fmt.Sprint(f.Value)
}

func present[T any](v T) Field[T] { return Field[T]{Value: v, Present: true} }

func lookup(doc gjson.Result, path string) (gjson.Result, bool) {
	r := doc.Get(path)
	if !r.Exists() || r.Type == gjson.Null {
		return r, false
	}
	return r, true
}

// Values are coerced loosely: FiveM reports many numbers and flags as strings.

func intField(doc gjson.Result, path string) Field[int] {
	r, ok := lookup(doc, path)
	if !ok {
		return Field[int]{}
	}
	return present(int(r.Int()))
}

func stringField(doc gjson.Result, path string) Field[string] {
	r, ok := lookup(doc, path)
	if !ok {
		return Field[string]{}
	}
	return present(r.String())
}

func boolField(doc gjson.Result, path string) Field[bool] {
	r, ok := lookup(doc, path)
	if !ok {
		return Field[bool]{}
	}
	return present(r.Bool())
}
