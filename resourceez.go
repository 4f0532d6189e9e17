package resourceez

import (
	"fmt"
	"reflect"

	json "github.com/goccy/go-json"
)

// Unmarshal decodes JSON-encoded data into a generic raw tree and constructs
// the model instance (or slice of instances) pointed to by v from it.
//
// See the documentation for Construct for the construction semantics.
func Unmarshal(data []byte, v any, opts ...Option) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("resourceez: Unmarshal(non-pointer %T or nil)", v)
	}

	if rv.Elem().Kind() == reflect.Slice {
		var raw []any
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("resourceez: decoding payload: %w", err)
		}
		return ConstructList(v, raw, opts...)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("resourceez: decoding payload: %w", err)
	}
	return Construct(v, raw, opts...)
}

// Marshal returns the JSON encoding of the raw snapshot behind v: the
// original mapping a model instance was constructed from, a sequence of
// such mappings for a slice of instances, or a plain raw tree passed
// through directly. Marshaling an instance that was never constructed is
// an error; raw snapshots are retained, never rebuilt from typed fields.
func Marshal(v any) ([]byte, error) {
	raw, err := rawOf(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(raw)
}

// rawOf recovers the raw tree behind a model instance, a pointer to one, or
// a slice of either. Plain raw trees pass through untouched.
func rawOf(v any) (any, error) {
	switch r := v.(type) {
	case nil:
		return nil, fmt.Errorf("resourceez: Marshal(nil)")
	case map[string]any:
		return r, nil
	case []any:
		return r, nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("resourceez: Marshal(nil %T)", v)
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		m, ok := findModel(rv)
		if !ok {
			return nil, fmt.Errorf("resourceez: Marshal of non-model type %s", rv.Type())
		}
		if m.raw == nil {
			return nil, fmt.Errorf("resourceez: Marshal of unconstructed %s instance", rv.Type())
		}
		return m.raw, nil
	case reflect.Slice:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			raw, err := rawOf(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = raw
		}
		return out, nil
	default:
		return nil, fmt.Errorf("resourceez: Marshal of unsupported type %s", rv.Type())
	}
}
