package rule

import (
	"testing"

	"github.com/madfrog2018/decision-tree/record"
	"github.com/stretchr/testify/require"
)

func TestEqualPredicate(t *testing.T) {
	ok, err := Equal.Test("red", "red")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = Equal.Test("blue", "red")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = Equal.Test(nil, "red")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestNotEqualPredicate(t *testing.T) {
	ok, err := NotEqual.Test("blue", "red")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = NotEqual.Test("red", "red")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = NotEqual.Test(nil, "red")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOrderedPredicatesOnNumbers(t *testing.T) {
	ok, err := GreaterOrEqual.Test(3.0, 2.0)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = GreaterOrEqual.Test(2.0, 2.0)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = GreaterOrEqual.Test(1.5, 2.0)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = LessOrEqual.Test(1.5, 2.0)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = LessOrEqual.Test(3, 2.0)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOrderedPredicatesOnStrings(t *testing.T) {
	ok, err := GreaterOrEqual.Test("b", "a")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = LessOrEqual.Test("b", "a")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOrderedPredicatesOnMismatchedTypes(t *testing.T) {
	// A value the predicate cannot compare fails the test without
	// aborting the search.
	ok, err := GreaterOrEqual.Test(true, 2.0)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = GreaterOrEqual.Test("b", 2.0)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = GreaterOrEqual.Test(nil, 2.0)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestExistsPredicate(t *testing.T) {
	ok, err := Exists.Test("anything", nil)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = Exists.Test(nil, nil)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPredicatesCompareAsValues(t *testing.T) {
	// Predicates end up in slices and maps that get compared in tests
	// and deduplicated by callers, so they must be plain comparable
	// values, equal whenever they denote the same test.
	require.Equal(t, []Predicate{GreaterOrEqual, LessOrEqual}, []Predicate{GreaterOrEqual, LessOrEqual})
	seen := map[Predicate]bool{GreaterOrEqual: true}
	require.True(t, seen[GreaterOrEqual])
	require.False(t, seen[LessOrEqual])
}

func TestRuleMatch(t *testing.T) {
	r := New("color", Equal, "red")
	ok, err := r.Match(record.New(map[string]interface{}{"color": "red"}, "A"))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.Match(record.New(map[string]interface{}{"color": "blue"}, "B"))
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = r.Match(record.New(map[string]interface{}{"shape": "circle"}, "A"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRuleEquality(t *testing.T) {
	r := New("color", Equal, "red")
	require.True(t, r.Equal(New("color", Equal, "red")))
	require.False(t, r.Equal(New("color", Equal, "blue")))
	require.False(t, r.Equal(New("shape", Equal, "red")))
	require.False(t, r.Equal(New("color", NotEqual, "red")))
	require.False(t, r.Equal(nil))
}

func TestRuleKeyDeduplicates(t *testing.T) {
	require.Equal(t, New("color", Equal, "red").Key(), New("color", Equal, "red").Key())
	require.NotEqual(t, New("color", Equal, "red").Key(), New("color", Equal, "blue").Key())
	require.NotEqual(t, New("color", Equal, "red").Key(), New("color", NotEqual, "red").Key())
	require.NotEqual(t, New("size", GreaterOrEqual, 2.0).Key(), New("size", LessOrEqual, 2.0).Key())
	// Values of different types can share a print form but are
	// distinct reference values, so they must not collapse into one
	// candidate.
	require.NotEqual(t, New("size", Equal, "1").Key(), New("size", Equal, 1).Key())
	require.NotEqual(t, New("size", Equal, 1).Key(), New("size", Equal, 1.0).Key())
}

func TestRuleString(t *testing.T) {
	require.Equal(t, "color is red", New("color", Equal, "red").String())
	require.Equal(t, "size >= 2", New("size", GreaterOrEqual, 2).String())
}
