package resourceez

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Shape classifies how a declared field is treated during construction.
type Shape int

const (
	// Scalar fields take their raw value as-is, with no recursion. Any
	// declared type that is not an object or list-of-objects shape falls
	// back to Scalar.
	Scalar Shape = iota
	// Object fields declare a nested model type; the raw value must be a
	// mapping and is constructed recursively.
	Object
	// ListOfObject fields declare a slice of a model type; the raw value
	// must be an ordered sequence of mappings, each constructed recursively.
	ListOfObject
)

func (s Shape) String() string {
	switch s {
	case Object:
		return "object"
	case ListOfObject:
		return "list of objects"
	default:
		return "scalar"
	}
}

// fieldShape is one resolved entry of a model type's shape table.
type fieldShape struct {
	key   string // raw mapping key (tag name, or the Go field name)
	index int    // struct field index
	shape Shape
	elem  reflect.Type // model struct type for Object/ListOfObject fields
	ptr   bool         // the model type is declared through a pointer
}

// shapeTable is the immutable per-type result of annotation resolution.
// Entries appear in declaration order.
type shapeTable struct {
	fields     []fieldShape
	byKey      map[string]int
	modelIndex int // index of the embedded Model field
}

// Resolver derives and caches shape tables, one per model type. Tables are
// computed on first use and published once; concurrent first-time resolution
// may recompute an identical table but a caller never observes a partial one.
// The zero Resolver is ready to use. Most callers rely on the package-level
// default; tests that declare throwaway types can inject a fresh Resolver via
// WithResolver, or call Reset between runs.
type Resolver struct {
	tables sync.Map // reflect.Type -> *shapeTable
}

// NewResolver returns a Resolver with an empty cache.
func NewResolver() *Resolver { return &Resolver{} }

// Reset discards all cached shape tables.
func (r *Resolver) Reset() { r.tables.Clear() }

var defaultResolver = NewResolver()

// resolve returns the shape table for t, computing and caching it on first
// use. t must be a struct type embedding Model.
func (r *Resolver) resolve(t reflect.Type) (*shapeTable, error) {
	if cached, ok := r.tables.Load(t); ok {
		return cached.(*shapeTable), nil
	}
	tbl, err := buildShapeTable(t)
	if err != nil {
		return nil, err
	}
	actual, _ := r.tables.LoadOrStore(t, tbl)
	return actual.(*shapeTable), nil
}

var modelType = reflect.TypeOf(Model{})

// isModelType reports whether t is a struct type that embeds Model directly.
func isModelType(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous && sf.Type == modelType {
			return true
		}
	}
	return false
}

func buildShapeTable(t reflect.Type) (*shapeTable, error) {
	tbl := &shapeTable{byKey: make(map[string]int), modelIndex: -1}

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous && sf.Type == modelType {
			tbl.modelIndex = i
			continue
		}
		// Declared fields come from the type's own annotations only:
		// embedded types do not contribute, unlike encoding/json.
		if sf.Anonymous || !sf.IsExported() {
			continue
		}

		tag := sf.Tag.Get("resource")
		if tag == "-" {
			continue
		}
		key := strings.Split(tag, ",")[0]
		if key == "" {
			key = sf.Name
		}

		fs, err := classifyField(t, sf)
		if err != nil {
			return nil, err
		}
		fs.key = key
		fs.index = i

		if _, dup := tbl.byKey[key]; dup {
			return nil, &ResolutionError{Type: t, Field: sf.Name, Reason: fmt.Sprintf("duplicate declared key %q", key)}
		}
		tbl.byKey[key] = len(tbl.fields)
		tbl.fields = append(tbl.fields, fs)
	}

	if tbl.modelIndex < 0 {
		return nil, &ResolutionError{Type: t, Reason: "not a model type (does not embed resourceez.Model)"}
	}
	return tbl, nil
}

// classifyField decides the shape of a single declared field. Model types and
// pointers to them are Object; slices of either are ListOfObject; everything
// else that can hold a raw value is Scalar. Types that can never be populated
// from a raw mapping fail closed.
func classifyField(owner reflect.Type, sf reflect.StructField) (fieldShape, error) {
	ft := sf.Type
	switch {
	case isModelType(ft):
		return fieldShape{shape: Object, elem: ft}, nil
	case ft.Kind() == reflect.Pointer && isModelType(ft.Elem()):
		return fieldShape{shape: Object, elem: ft.Elem(), ptr: true}, nil
	case ft.Kind() == reflect.Slice:
		el := ft.Elem()
		if isModelType(el) {
			return fieldShape{shape: ListOfObject, elem: el}, nil
		}
		if el.Kind() == reflect.Pointer && isModelType(el.Elem()) {
			return fieldShape{shape: ListOfObject, elem: el.Elem(), ptr: true}, nil
		}
		return fieldShape{shape: Scalar}, nil
	case ft.Kind() == reflect.Interface && ft.NumMethod() > 0:
		return fieldShape{}, &ResolutionError{Type: owner, Field: sf.Name, Reason: fmt.Sprintf("non-empty interface %s (union types are not supported)", ft)}
	case ft.Kind() == reflect.Chan, ft.Kind() == reflect.Func, ft.Kind() == reflect.UnsafePointer:
		return fieldShape{}, &ResolutionError{Type: owner, Field: sf.Name, Reason: fmt.Sprintf("%s cannot be populated from a raw mapping", ft)}
	default:
		return fieldShape{shape: Scalar}, nil
	}
}

// findModel returns the embedded Model value of a model struct, if present.
func findModel(rv reflect.Value) (Model, bool) {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous && sf.Type == modelType {
			return rv.Field(i).Interface().(Model), true
		}
	}
	return Model{}, false
}
