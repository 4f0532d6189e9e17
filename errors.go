package resourceez

import (
	"fmt"
	"reflect"
)

// A ResolutionError reports a model type whose declared fields cannot be
// classified, such as a non-empty interface field or a duplicate declared
// key. It is surfaced on the first resolution of the owning type and never
// at construction time.
type ResolutionError struct {
	Type   reflect.Type
	Field  string // Go field name; empty when the type itself is at fault
	Reason string
}

func (e *ResolutionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("resourceez: cannot resolve %s: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("resourceez: cannot resolve field %s of %s: %s", e.Field, e.Type, e.Reason)
}

// A MissingFieldError reports a declared field with no corresponding key in
// the raw mapping being constructed. Declared fields are never defaulted.
type MissingFieldError struct {
	Type  reflect.Type
	Field string // raw mapping key
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("resourceez: missing field %q constructing %s", e.Field, e.Type)
}

// A ShapeError reports a declared field whose raw value does not match its
// resolved shape: a non-mapping where an object was declared, a non-sequence
// where a list of objects was declared, or a scalar value that cannot be
// assigned to the declared Go type.
type ShapeError struct {
	Type  reflect.Type
	Field string // raw mapping key; empty for a top-level sequence element
	Index int    // offending sequence element, -1 otherwise
	Want  Shape
	Value any          // the raw value that mismatched
	Got   reflect.Type // Go type of a mismatched scalar target, nil otherwise
}

func (e *ShapeError) Error() string {
	got := "null"
	if e.Value != nil {
		got = fmt.Sprintf("%T", e.Value)
	}
	loc := fmt.Sprintf("field %q", e.Field)
	if e.Field == "" {
		loc = "element"
	}
	if e.Index >= 0 {
		loc = fmt.Sprintf("%s[%d]", loc, e.Index)
	}
	if e.Want == Scalar && e.Got != nil {
		return fmt.Sprintf("resourceez: %s of %s: cannot use %s as %s", loc, e.Type, got, e.Got)
	}
	return fmt.Sprintf("resourceez: %s of %s: expected %s, got %s", loc, e.Type, e.Want, got)
}
