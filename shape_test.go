package resourceez

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type leaf struct {
	Model

	Label string `resource:"label"`
}

type trunk struct {
	Model

	ID       int            `resource:"id"`
	Single   leaf           `resource:"single"`
	Optional *leaf          `resource:"optional"`
	Many     []leaf         `resource:"many"`
	ManyPtr  []*leaf        `resource:"many_ptr"`
	Loose    any            `resource:"loose"`
	Tags     []string       `resource:"tags"`
	Counts   map[string]int `resource:"counts"`
	Ignored  string         `resource:"-"`
	Untagged bool
	hidden   string //nolint:unused
}

func TestBuildShapeTable(t *testing.T) {
	tbl, err := buildShapeTable(reflect.TypeOf(trunk{}))
	require.NoError(t, err)
	require.Equal(t, 0, tbl.modelIndex)

	var keys []string
	for _, f := range tbl.fields {
		keys = append(keys, f.key)
	}
	// Declaration order, minus the excluded and unexported fields,
	// with the untagged field keyed by its Go name.
	require.Equal(t, []string{"id", "single", "optional", "many", "many_ptr", "loose", "tags", "counts", "Untagged"}, keys)

	leafType := reflect.TypeOf(leaf{})
	shapes := map[string]fieldShape{}
	for _, f := range tbl.fields {
		shapes[f.key] = f
	}

	require.Equal(t, Scalar, shapes["id"].shape)
	require.Equal(t, Object, shapes["single"].shape)
	require.Equal(t, leafType, shapes["single"].elem)
	require.False(t, shapes["single"].ptr)
	require.Equal(t, Object, shapes["optional"].shape)
	require.True(t, shapes["optional"].ptr)
	require.Equal(t, ListOfObject, shapes["many"].shape)
	require.Equal(t, leafType, shapes["many"].elem)
	require.Equal(t, ListOfObject, shapes["many_ptr"].shape)
	require.True(t, shapes["many_ptr"].ptr)
	require.Equal(t, Scalar, shapes["loose"].shape)
	require.Equal(t, Scalar, shapes["tags"].shape)
	require.Equal(t, Scalar, shapes["counts"].shape)
}

func TestBuildShapeTable_EmbeddedFieldsAreNotDeclared(t *testing.T) {
	type base struct {
		Model

		Inherited string `resource:"inherited"`
	}
	type derived struct {
		base

		Own string `resource:"own"`
	}

	tbl, err := buildShapeTable(reflect.TypeOf(derived{}))
	// derived embeds base, not Model, so it is not itself a model type.
	require.Error(t, err)
	require.Nil(t, tbl)
}

func TestResolver_CachesTables(t *testing.T) {
	r := NewResolver()
	typ := reflect.TypeOf(trunk{})

	first, err := r.resolve(typ)
	require.NoError(t, err)
	second, err := r.resolve(typ)
	require.NoError(t, err)

	// Repeated resolution yields the published table, not a recomputation.
	require.Same(t, first, second)
}

func TestResolver_ConcurrentFirstResolution(t *testing.T) {
	r := NewResolver()
	typ := reflect.TypeOf(trunk{})

	const workers = 32
	tables := make([]*shapeTable, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tbl, err := r.resolve(typ)
			require.NoError(t, err)
			tables[i] = tbl
		}(i)
	}
	wg.Wait()

	// Whichever goroutine published first, every caller sees the same
	// complete table; a torn table is impossible.
	for _, tbl := range tables {
		require.Same(t, tables[0], tbl)
		require.Len(t, tbl.fields, 9)
	}
}

func TestResolver_Reset(t *testing.T) {
	r := NewResolver()
	typ := reflect.TypeOf(trunk{})

	first, err := r.resolve(typ)
	require.NoError(t, err)

	r.Reset()
	again, err := r.resolve(typ)
	require.NoError(t, err)
	require.Equal(t, first.fields, again.fields)
}

func TestShapeString(t *testing.T) {
	require.Equal(t, "scalar", Scalar.String())
	require.Equal(t, "object", Object.String())
	require.Equal(t, "list of objects", ListOfObject.String())
}

func TestIsModelType(t *testing.T) {
	require.True(t, isModelType(reflect.TypeOf(leaf{})))
	require.False(t, isModelType(reflect.TypeOf(struct{ A int }{})))
	require.False(t, isModelType(reflect.TypeOf(42)))
	// Embedding must be direct; a pointer embed does not count.
	require.False(t, isModelType(reflect.TypeOf(struct{ *Model }{})))
}
