package resourceez_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tjweldon/resourceez"
	"github.com/tjweldon/resourceez/internal/testutil"
)

func TestUnmarshal(t *testing.T) {
	t.Run("Into Model Struct", func(t *testing.T) {
		data, err := testutil.ReadTestData("resource.json")
		require.NoError(t, err)

		var res Resource
		require.NoError(t, resourceez.Unmarshal(data, &res))
		require.Equal(t, 42, res.ANumber)
		require.Len(t, res.Subs, 2)
		require.Equal(t, "Alice", res.Subs[0].Name)

		// Undeclared keys survive decoding untouched.
		v, ok := res.Get("something_else")
		require.True(t, ok)
		require.Equal(t, map[string]any{"foo": "bar"}, v)
	})

	t.Run("Into Slice Of Models", func(t *testing.T) {
		data := []byte(`[{"id": 1, "name": "Alice"}, {"id": 2, "name": "Bob"}]`)

		var subs []SubResource
		require.NoError(t, resourceez.Unmarshal(data, &subs))
		require.Len(t, subs, 2)
		require.Equal(t, 2, subs[1].ID)
	})

	t.Run("Invalid Payload", func(t *testing.T) {
		var res Resource
		err := resourceez.Unmarshal([]byte(`{not json`), &res)
		require.Error(t, err)
		require.Contains(t, err.Error(), "resourceez: decoding payload")
	})

	t.Run("Non Pointer Target", func(t *testing.T) {
		var res Resource
		err := resourceez.Unmarshal([]byte(`{}`), res)
		require.EqualError(t, err, "resourceez: Unmarshal(non-pointer resourceez_test.Resource or nil)")
	})
}

func TestMarshal(t *testing.T) {
	t.Run("Round Trip Through Bytes", func(t *testing.T) {
		raw := sampleRaw()
		raw["a_number"] = float64(42) // decoded JSON numbers are float64

		var res Resource
		require.NoError(t, resourceez.Construct(&res, raw))

		out, err := resourceez.Marshal(&res)
		require.NoError(t, err)

		var again Resource
		require.NoError(t, resourceez.Unmarshal(out, &again))
		require.Equal(t, res.Raw(), again.Raw())
	})

	t.Run("Value Instance", func(t *testing.T) {
		var res Resource
		require.NoError(t, resourceez.Construct(&res, sampleRaw()))

		out, err := resourceez.Marshal(res)
		require.NoError(t, err)
		require.Contains(t, string(out), `"something_else"`)
	})

	t.Run("Slice Of Instances", func(t *testing.T) {
		var subs []SubResource
		raw := []any{
			map[string]any{"id": 1, "name": "Alice"},
			map[string]any{"id": 2, "name": "Bob"},
		}
		require.NoError(t, resourceez.ConstructList(&subs, raw))

		out, err := resourceez.Marshal(subs)
		require.NoError(t, err)
		require.JSONEq(t, `[{"id":1,"name":"Alice"},{"id":2,"name":"Bob"}]`, string(out))
	})

	t.Run("Plain Raw Tree", func(t *testing.T) {
		out, err := resourceez.Marshal(map[string]any{"a": 1})
		require.NoError(t, err)
		require.JSONEq(t, `{"a":1}`, string(out))
	})

	t.Run("Unconstructed Instance", func(t *testing.T) {
		var res Resource
		_, err := resourceez.Marshal(&res)
		require.EqualError(t, err, "resourceez: Marshal of unconstructed resourceez_test.Resource instance")
	})

	t.Run("Non Model Value", func(t *testing.T) {
		_, err := resourceez.Marshal(struct{ A int }{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "Marshal of non-model type")
	})

	t.Run("Nil", func(t *testing.T) {
		_, err := resourceez.Marshal(nil)
		require.EqualError(t, err, "resourceez: Marshal(nil)")
	})
}

func TestDecoder(t *testing.T) {
	t.Run("Decodes From A Reader", func(t *testing.T) {
		data, err := testutil.ReadTestData("resource.json")
		require.NoError(t, err)

		var res Resource
		require.NoError(t, resourceez.NewDecoder(bytes.NewReader(data)).Decode(&res))
		require.Equal(t, 42, res.ANumber)
	})

	t.Run("Forwards Options", func(t *testing.T) {
		var n Node
		d := resourceez.NewDecoder(strings.NewReader(`{"next":{"next":{"next":null}}}`), resourceez.MaxDepth(2))
		err := d.Decode(&n)
		require.Error(t, err)
		require.Contains(t, err.Error(), "max recursion depth")
	})

	t.Run("Nil Reader", func(t *testing.T) {
		var res Resource
		err := resourceez.NewDecoder(nil).Decode(&res)
		require.EqualError(t, err, "resourceez: Decode(nil reader)")
	})
}

func TestEncoder(t *testing.T) {
	var res Resource
	require.NoError(t, resourceez.Construct(&res, sampleRaw()))

	var buf bytes.Buffer
	require.NoError(t, resourceez.NewEncoder(&buf).Encode(&res))

	out := buf.String()
	require.True(t, strings.HasSuffix(out, "\n"))

	var again Resource
	require.NoError(t, resourceez.Unmarshal(buf.Bytes(), &again))
	require.Equal(t, 42, again.ANumber)
	require.Len(t, again.Subs, 2)
}
