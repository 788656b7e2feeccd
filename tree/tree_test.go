package tree

import (
	"testing"

	"github.com/madfrog2018/decision-tree/record"
	"github.com/madfrog2018/decision-tree/rule"
	"github.com/stretchr/testify/require"
)

func colorTree() *Tree {
	return NewInternal(
		rule.New("color", rule.Equal, "red"),
		NewLeaf("A"),
		NewLeaf("B"),
	)
}

func TestClassify(t *testing.T) {
	tr := colorTree()

	category, err := tr.Classify(record.New(map[string]interface{}{"color": "red"}, ""))
	require.NoError(t, err)
	require.Equal(t, "A", category)

	category, err = tr.Classify(record.New(map[string]interface{}{"color": "blue"}, ""))
	require.NoError(t, err)
	require.Equal(t, "B", category)
}

func TestClassifyIsDeterministic(t *testing.T) {
	tr := colorTree()
	rec := record.New(map[string]interface{}{"color": "red"}, "")
	first, err := tr.Classify(rec)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		category, err := tr.Classify(rec)
		require.NoError(t, err)
		require.Equal(t, first, category)
	}
}

func TestMergeRedundantRulesCollapsesAgreeingLeaves(t *testing.T) {
	tr := NewInternal(
		rule.New("color", rule.Equal, "red"),
		NewLeaf("A"),
		NewLeaf("A"),
	)
	tr.MergeRedundantRules()
	require.True(t, tr.IsLeaf())
	require.Equal(t, "A", tr.Category)
	require.Nil(t, tr.MatchSubtree)
	require.Nil(t, tr.NotMatchSubtree)
}

func TestMergeRedundantRulesCollapsesBottomUp(t *testing.T) {
	// The redundant split is nested below another redundant split, so
	// collapsing must happen after recursion for one pass to suffice.
	tr := NewInternal(
		rule.New("color", rule.Equal, "red"),
		NewInternal(
			rule.New("shape", rule.Equal, "circle"),
			NewLeaf("A"),
			NewLeaf("A"),
		),
		NewLeaf("A"),
	)
	tr.MergeRedundantRules()
	require.True(t, tr.IsLeaf())
	require.Equal(t, "A", tr.Category)
}

func TestMergeRedundantRulesPreservesClassification(t *testing.T) {
	tr := NewInternal(
		rule.New("color", rule.Equal, "red"),
		NewInternal(
			rule.New("shape", rule.Equal, "circle"),
			NewLeaf("A"),
			NewLeaf("A"),
		),
		NewLeaf("B"),
	)
	records := []record.Record{
		record.New(map[string]interface{}{"color": "red", "shape": "circle"}, ""),
		record.New(map[string]interface{}{"color": "red", "shape": "square"}, ""),
		record.New(map[string]interface{}{"color": "blue", "shape": "circle"}, ""),
	}
	before := make([]string, len(records))
	for i, rec := range records {
		category, err := tr.Classify(rec)
		require.NoError(t, err)
		before[i] = category
	}
	tr.MergeRedundantRules()
	for i, rec := range records {
		category, err := tr.Classify(rec)
		require.NoError(t, err)
		require.Equal(t, before[i], category)
	}
}

func TestMergeRedundantRulesIsIdempotent(t *testing.T) {
	tr := NewInternal(
		rule.New("color", rule.Equal, "red"),
		NewInternal(
			rule.New("shape", rule.Equal, "circle"),
			NewLeaf("A"),
			NewLeaf("A"),
		),
		NewLeaf("B"),
	)
	tr.MergeRedundantRules()
	countAfterFirst := tr.Count()
	tr.MergeRedundantRules()
	require.Equal(t, countAfterFirst, tr.Count())
	require.False(t, tr.IsLeaf())
	require.True(t, tr.MatchSubtree.IsLeaf())
	require.Equal(t, "A", tr.MatchSubtree.Category)
	require.Equal(t, "B", tr.NotMatchSubtree.Category)
}

func TestTraverseOrder(t *testing.T) {
	tr := colorTree()

	var topdown []string
	err := tr.Traverse(false, func(n *Tree) error {
		if n.IsLeaf() {
			topdown = append(topdown, n.Category)
		} else {
			topdown = append(topdown, "*")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"*", "A", "B"}, topdown)

	var bottomup []string
	err = tr.Traverse(true, func(n *Tree) error {
		if n.IsLeaf() {
			bottomup = append(bottomup, n.Category)
		} else {
			bottomup = append(bottomup, "*")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "*"}, bottomup)
}

func TestTest(t *testing.T) {
	tr := colorTree()
	records := []record.Record{
		record.New(map[string]interface{}{"color": "red"}, "A"),
		record.New(map[string]interface{}{"color": "blue"}, "B"),
		record.New(map[string]interface{}{"color": "blue"}, "A"),
		record.New(map[string]interface{}{"color": "red"}, "A"),
	}
	accuracy, err := tr.Test(records)
	require.NoError(t, err)
	require.InDelta(t, 0.75, accuracy, 1e-9)

	_, err = tr.Test(nil)
	require.Equal(t, ErrNoRecords, err)
}

func TestString(t *testing.T) {
	s := colorTree().String()
	require.Contains(t, s, "color is red")
	require.Contains(t, s, "match: (A)")
	require.Contains(t, s, "other: (B)")
}
