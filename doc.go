/*
Package resourceez lets an API client declare only the fields of a nested,
semi-structured document (typically a decoded REST response) that it actually
cares about, and have everything else pass through untouched and recoverable.

A model type is a struct that embeds [Model] and tags its fields of interest:

	type SubResource struct {
		resourceez.Model

		ID   int    `resource:"id"`
		Name string `resource:"name"`
	}

	type Resource struct {
		resourceez.Model

		ANumber int           `resource:"a_number"`
		Subs    []SubResource `resource:"subresource_list"`
	}

Declared fields recurse automatically: a field whose type is another model
type is constructed from the corresponding nested mapping, and a slice of a
model type is constructed element by element. Every other declared type is a
plain scalar pass-through. Keys the type does not declare are carried along
untyped and reachable via [Model.Get] and [Model.Extras]; they are never
validated or recursed into.

Construction starts from an already decoded raw tree, or directly from JSON
bytes:

	raw := map[string]any{
		"a_number":         42,
		"subresource_list": []any{map[string]any{"id": 1, "name": "Alice"}},
		"something_else":   map[string]any{"foo": "bar"},
	}

	var res Resource
	if err := resourceez.Construct(&res, raw); err != nil {
		// handle error
	}
	// res.ANumber == 42, res.Subs[0].Name == "Alice",
	// res.Get("something_else") returns the untouched mapping.

The instance retains the original mapping in full, so the round trip is
exact regardless of which fields were declared:

	res.Raw() // the very map passed to Construct

Construction fails with a typed error rather than guessing: a declared field
absent from the mapping is a [MissingFieldError], a declared object or list
field with a raw value of the wrong shape is a [ShapeError], and a field
whose declared type cannot be classified at all is a [ResolutionError]. No
validation beyond these shape checks is performed.

For wire data, [Unmarshal] and [Marshal] convert between JSON bytes and
constructed instances, with [Decoder] and [Encoder] as their stream
counterparts.
*/
package resourceez
