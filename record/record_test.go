package record

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapRecord(t *testing.T) {
	r := New(map[string]interface{}{"color": "red", "size": 2.0}, "A")
	require.Equal(t, "A", r.Category())

	names := r.AttributeNames()
	sort.Strings(names)
	require.Equal(t, []string{"color", "size"}, names)

	v, err := r.Value("color")
	require.NoError(t, err)
	require.Equal(t, "red", v)

	v, err = r.Value("shape")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestCategoryCounts(t *testing.T) {
	records := []Record{
		New(nil, "A"),
		New(nil, "B"),
		New(nil, "A"),
	}
	require.Equal(t, map[string]int{"A": 2, "B": 1}, CategoryCounts(records))
	require.Empty(t, CategoryCounts(nil))
}

func TestDiscreteAttributeValid(t *testing.T) {
	a := NewDiscreteAttribute("color", []string{"red", "blue"})
	require.Equal(t, "color", a.Name())
	require.Equal(t, []string{"red", "blue"}, a.AvailableValues())

	ok, err := a.Valid("red")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = a.Valid(nil)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = a.Valid("green")
	require.Error(t, err)
	require.False(t, ok)

	ok, err = a.Valid(2.0)
	require.Error(t, err)
	require.False(t, ok)
}

func TestContinuousAttributeValid(t *testing.T) {
	a := NewContinuousAttribute("size")
	require.Equal(t, "size", a.Name())

	ok, err := a.Valid(2.0)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = a.Valid(nil)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = a.Valid("big")
	require.Error(t, err)
	require.False(t, ok)
}
