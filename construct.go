package resourceez

import (
	"fmt"
	"math"
	"reflect"
)

// Construct populates the model struct pointed to by v from an already
// decoded raw mapping.
//
// Every declared field of v's type must have a corresponding key in raw;
// a missing key fails with a MissingFieldError. Declared object and
// list-of-objects fields are constructed recursively; a raw value of the
// wrong shape fails with a ShapeError. Keys that no declared field claims
// pass through untyped and are reachable via Get and Extras. Construction
// is all-or-nothing: any failure in a nested sub-resource aborts the whole
// call, and no partially constructed instance is published.
//
// The instance retains raw itself, not a copy, so Raw returns the original
// mapping exactly. Callers must not mutate raw after construction.
func Construct(v any, raw map[string]any, opts ...Option) error {
	o, err := newOptions(opts)
	if err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("resourceez: Construct(nil mapping)")
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("resourceez: Construct(non-pointer %T or nil)", v)
	}
	elem := rv.Elem()
	if elem.Kind() != reflect.Struct {
		return fmt.Errorf("resourceez: Construct target %s is not a model struct", elem.Type())
	}

	cs := &constructState{depth: o.maxDepth, resolver: o.resolver}
	return cs.construct(elem, raw)
}

// ConstructList populates the slice pointed to by v, whose element type must
// be a model struct or a pointer to one, from a raw sequence of mappings.
// Elements are constructed in order; a null element yields a zero element.
func ConstructList(v any, raw []any, opts ...Option) error {
	o, err := newOptions(opts)
	if err != nil {
		return err
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("resourceez: ConstructList(non-pointer %T or nil)", v)
	}
	sl := rv.Elem()
	if sl.Kind() != reflect.Slice {
		return fmt.Errorf("resourceez: ConstructList target %s is not a slice", sl.Type())
	}

	elem := sl.Type().Elem()
	isPtr := elem.Kind() == reflect.Pointer
	mt := elem
	if isPtr {
		mt = elem.Elem()
	}
	if !isModelType(mt) {
		return fmt.Errorf("resourceez: ConstructList element %s is not a model struct", elem)
	}

	cs := &constructState{depth: o.maxDepth, resolver: o.resolver}
	out := reflect.MakeSlice(sl.Type(), len(raw), len(raw))
	for i, el := range raw {
		if el == nil {
			continue
		}
		sub, ok := el.(map[string]any)
		if !ok {
			return &ShapeError{Type: mt, Index: i, Want: Object, Value: el}
		}
		target := out.Index(i)
		if isPtr {
			target.Set(reflect.New(mt))
			target = target.Elem()
		}
		if err := cs.construct(target, sub); err != nil {
			return err
		}
	}
	sl.Set(out)
	return nil
}

type constructState struct {
	depth    int
	resolver *Resolver
}

// construct walks the shape table of rv's type against raw, building nested
// instances recursively and attaching the raw snapshot last, once every
// declared field has been populated.
func (cs *constructState) construct(rv reflect.Value, raw map[string]any) error {
	cs.depth--
	if cs.depth <= 0 {
		return fmt.Errorf("resourceez: reached max recursion depth")
	}
	defer func() { cs.depth++ }()

	t := rv.Type()
	tbl, err := cs.resolver.resolve(t)
	if err != nil {
		return err
	}

	for _, f := range tbl.fields {
		val, ok := raw[f.key]
		if !ok {
			return &MissingFieldError{Type: t, Field: f.key}
		}
		fv := rv.Field(f.index)
		if val == nil {
			// A present-but-null value leaves the field at its zero value;
			// Raw stays authoritative for null vs absent.
			fv.Set(reflect.Zero(fv.Type()))
			continue
		}

		switch f.shape {
		case Object:
			sub, ok := val.(map[string]any)
			if !ok {
				return &ShapeError{Type: t, Field: f.key, Index: -1, Want: Object, Value: val}
			}
			target := fv
			if f.ptr {
				fv.Set(reflect.New(f.elem))
				target = fv.Elem()
			}
			if err := cs.construct(target, sub); err != nil {
				return err
			}
		case ListOfObject:
			list, ok := val.([]any)
			if !ok {
				return &ShapeError{Type: t, Field: f.key, Index: -1, Want: ListOfObject, Value: val}
			}
			out := reflect.MakeSlice(fv.Type(), len(list), len(list))
			for i, el := range list {
				if el == nil {
					continue
				}
				sub, ok := el.(map[string]any)
				if !ok {
					return &ShapeError{Type: t, Field: f.key, Index: i, Want: Object, Value: el}
				}
				target := out.Index(i)
				if f.ptr {
					target.Set(reflect.New(f.elem))
					target = target.Elem()
				}
				if err := cs.construct(target, sub); err != nil {
					return err
				}
			}
			fv.Set(out)
		default:
			if err := cs.assignScalar(fv, val, t, f.key); err != nil {
				return err
			}
		}
	}

	extras := make(map[string]any)
	for k, v := range raw {
		if _, declared := tbl.byKey[k]; !declared {
			extras[k] = v
		}
	}
	rv.Field(tbl.modelIndex).Addr().Interface().(*Model).attach(raw, extras)
	return nil
}

// assignScalar assigns a raw value to a declared scalar field. Direct
// assignment is preferred; numeric values cross kinds with overflow checks
// (decoded JSON numbers arrive as float64), and []any / map[string]any raw
// collections convert element-wise into typed scalar collections. val is
// never nil here.
func (cs *constructState) assignScalar(fv reflect.Value, val any, owner reflect.Type, key string) error {
	vv := reflect.ValueOf(val)
	ft := fv.Type()

	if vv.Type().AssignableTo(ft) {
		fv.Set(vv)
		return nil
	}

	mismatch := &ShapeError{Type: owner, Field: key, Index: -1, Want: Scalar, Value: val, Got: ft}

	switch fv.Kind() {
	case reflect.Pointer:
		fv.Set(reflect.New(ft.Elem()))
		return cs.assignScalar(fv.Elem(), val, owner, key)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var i int64
		switch vv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			i = vv.Int()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			u := vv.Uint()
			if u > math.MaxInt64 {
				return fmt.Errorf("resourceez: value %d overflows field %q of type %s", u, key, ft)
			}
			i = int64(u)
		case reflect.Float32, reflect.Float64:
			f := vv.Float()
			if f != math.Trunc(f) {
				return mismatch
			}
			i = int64(f)
		default:
			return mismatch
		}
		if fv.OverflowInt(i) {
			return fmt.Errorf("resourceez: value %d overflows field %q of type %s", i, key, ft)
		}
		fv.SetInt(i)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var u uint64
		switch vv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			i := vv.Int()
			if i < 0 {
				return fmt.Errorf("resourceez: negative value %d for field %q of type %s", i, key, ft)
			}
			u = uint64(i)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			u = vv.Uint()
		case reflect.Float32, reflect.Float64:
			f := vv.Float()
			if f != math.Trunc(f) || f < 0 {
				return mismatch
			}
			u = uint64(f)
		default:
			return mismatch
		}
		if fv.OverflowUint(u) {
			return fmt.Errorf("resourceez: value %d overflows field %q of type %s", u, key, ft)
		}
		fv.SetUint(u)
		return nil

	case reflect.Float32, reflect.Float64:
		var f float64
		switch vv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			f = float64(vv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			f = float64(vv.Uint())
		case reflect.Float32, reflect.Float64:
			f = vv.Float()
		default:
			return mismatch
		}
		if fv.OverflowFloat(f) {
			return fmt.Errorf("resourceez: value %f overflows field %q of type %s", f, key, ft)
		}
		fv.SetFloat(f)
		return nil

	case reflect.String:
		if vv.Kind() == reflect.String {
			fv.SetString(vv.String())
			return nil
		}
		return mismatch

	case reflect.Slice:
		list, ok := val.([]any)
		if !ok {
			return mismatch
		}
		out := reflect.MakeSlice(ft, len(list), len(list))
		for i, el := range list {
			if el == nil {
				continue
			}
			if err := cs.assignScalar(out.Index(i), el, owner, key); err != nil {
				return err
			}
		}
		fv.Set(out)
		return nil

	case reflect.Map:
		if ft.Key().Kind() != reflect.String {
			return mismatch
		}
		sub, ok := val.(map[string]any)
		if !ok {
			return mismatch
		}
		out := reflect.MakeMapWithSize(ft, len(sub))
		for k, el := range sub {
			ev := reflect.New(ft.Elem()).Elem()
			if el != nil {
				if err := cs.assignScalar(ev, el, owner, key); err != nil {
					return err
				}
			}
			out.SetMapIndex(reflect.ValueOf(k), ev)
		}
		fv.Set(out)
		return nil

	default:
		return mismatch
	}
}
