package npz

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/npyz/errs"
	"github.com/arloliu/npyz/ndarray"
)

func vec(t *testing.T, values ...float64) *ndarray.Array {
	t.Helper()

	a, err := ndarray.FromSlice([]int{len(values)}, values)
	require.NoError(t, err)

	return a
}

func TestPositionalName(t *testing.T) {
	require.Equal(t, "arr_0", PositionalName(0))
	require.Equal(t, "arr_12", PositionalName(12))
}

func TestMerge_PositionalThenKeyword(t *testing.T) {
	a, b, c := vec(t, 1), vec(t, 2), vec(t, 3)

	set, err := Merge([]*ndarray.Array{a, b}, map[string]*ndarray.Array{"y": c})
	require.NoError(t, err)

	require.Equal(t, []string{"arr_0", "arr_1", "y"}, set.Names())
	require.Empty(t, set.Overridden())

	got, ok := set.Get("arr_1")
	require.True(t, ok)
	require.Same(t, b, got)
}

func TestMerge_KeywordWins(t *testing.T) {
	a, b, c := vec(t, 1), vec(t, 2), vec(t, 3)

	set, err := Merge([]*ndarray.Array{a, c}, map[string]*ndarray.Array{"arr_0": b})
	require.NoError(t, err)

	require.Equal(t, 2, set.Len())
	require.Equal(t, []string{"arr_0", "arr_1"}, set.Names(), "override keeps position")
	require.Equal(t, []string{"arr_0"}, set.Overridden())

	got, _ := set.Get("arr_0")
	require.Same(t, b, got)

	origin, ok := set.Origin("arr_0")
	require.True(t, ok)
	require.Equal(t, Keyword, origin)
	origin, _ = set.Origin("arr_1")
	require.Equal(t, Positional, origin)
	_, ok = set.Origin("missing")
	require.False(t, ok)
}

func TestMerge_KeywordOrder(t *testing.T) {
	set, err := Merge(nil, map[string]*ndarray.Array{
		"zeta":  vec(t, 1),
		"alpha": vec(t, 2),
		"mid":   vec(t, 3),
	})
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "mid", "zeta"}, set.Names())
}

func TestMerge_Empty(t *testing.T) {
	set, err := Merge(nil, nil)
	require.NoError(t, err)
	require.Equal(t, 0, set.Len())
	require.Empty(t, set.Names())
}

func TestMerge_EmptyKeywordName(t *testing.T) {
	_, err := Merge(nil, map[string]*ndarray.Array{"": vec(t, 1)})
	require.ErrorIs(t, err, errs.ErrInvalidArrayName)
}

func TestArraySet_SetAndAll(t *testing.T) {
	set := NewArraySet()

	replaced, err := set.Set("x", vec(t, 1))
	require.NoError(t, err)
	require.False(t, replaced)

	_, err = set.Set("w", vec(t, 2))
	require.NoError(t, err)

	replaced, err = set.Set("x", vec(t, 3))
	require.NoError(t, err)
	require.True(t, replaced)

	var names []string
	for name, a := range set.All() {
		names = append(names, name)
		require.NotNil(t, a)
	}
	require.Equal(t, []string{"x", "w"}, names)

	// stop early
	count := 0
	for range set.All() {
		count++
		break
	}
	require.Equal(t, 1, count)

	_, ok := set.Get("missing")
	require.False(t, ok)
}

func TestArraySet_NamesIsCopy(t *testing.T) {
	set := NewArraySet()
	_, _ = set.Set("a", vec(t, 1))

	names := set.Names()
	names[0] = "changed"
	require.Equal(t, []string{"a"}, set.Names())
}

func TestSetFromMap(t *testing.T) {
	set, err := SetFromMap(map[string]*ndarray.Array{"b": vec(t, 1), "a": vec(t, 2)})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, set.Names())

	_, err = SetFromMap(map[string]*ndarray.Array{"": vec(t, 1)})
	require.ErrorIs(t, err, errs.ErrInvalidArrayName)
}
