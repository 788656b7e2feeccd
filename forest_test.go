package dtree

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/madfrog2018/decision-tree/record"
	"github.com/madfrog2018/decision-tree/rule"
	"github.com/stretchr/testify/require"
)

func forestTrainingSet(size int) []record.Record {
	items := make([]record.Record, 0, size)
	for i := 0; i < size; i++ {
		color := "red"
		category := "A"
		if i%2 == 0 {
			color = "blue"
			category = "B"
		}
		items = append(items, record.New(map[string]interface{}{
			"color": color,
			"id":    fmt.Sprintf("%d", i),
		}, category))
	}
	return items
}

func forestBuilder(items []record.Record) *Builder {
	return NewBuilder().
		TrainingSet(items).
		DefaultPredicates(rule.Equal).
		Ignore("id")
}

func TestGrowForestSizeAndVotes(t *testing.T) {
	b := forestBuilder(forestTrainingSet(100))
	forest, err := GrowForest(b, 5)
	require.NoError(t, err)
	require.Equal(t, 5, forest.Size())
	require.Len(t, forest.Trees(), 5)

	votes, err := forest.Classify(record.New(map[string]interface{}{"color": "red"}, ""))
	require.NoError(t, err)
	var total int
	for _, count := range votes {
		total += count
	}
	require.Equal(t, 5, total)
	require.Equal(t, "A", PredictedCategory(votes))
}

func TestGrowForestRejectsNonPositiveSize(t *testing.T) {
	b := forestBuilder(forestTrainingSet(10))
	_, err := GrowForest(b, 0)
	require.Error(t, err)
}

func TestGrowForestConcurrently(t *testing.T) {
	b := forestBuilder(forestTrainingSet(100))
	forest, err := GrowForestConcurrently(b, 7, 3)
	require.NoError(t, err)
	require.Equal(t, 7, forest.Size())
	for _, tr := range forest.Trees() {
		require.NotNil(t, tr)
	}

	votes, err := forest.Classify(record.New(map[string]interface{}{"color": "blue"}, ""))
	require.NoError(t, err)
	var total int
	for _, count := range votes {
		total += count
	}
	require.Equal(t, 7, total)

	_, err = GrowForestConcurrently(b, 5, 0)
	require.Error(t, err)
}

func TestMemberTrainingSets(t *testing.T) {
	items := forestTrainingSet(10)
	subsets, err := memberTrainingSets(items, 3, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Len(t, subsets, 3)

	// chunkSize is 10/3 = 3: member i gets its contiguous chunk of 3
	// plus the records at positions not divisible by i+1.
	require.Len(t, subsets[0], 3)
	require.Len(t, subsets[1], 3+5)
	require.Len(t, subsets[2], 3+6)
}

func TestMemberTrainingSetsDeterministicGivenShuffle(t *testing.T) {
	items := forestTrainingSet(20)
	first, err := memberTrainingSets(items, 4, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	second, err := memberTrainingSets(items, 4, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestMemberTrainingSetsDoNotMutateInput(t *testing.T) {
	items := forestTrainingSet(10)
	original := make([]record.Record, len(items))
	copy(original, items)
	_, err := memberTrainingSets(items, 2, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	require.Equal(t, original, items)
}

func TestModuloSubset(t *testing.T) {
	items := forestTrainingSet(6)
	// n=1 keeps nothing: every position is a multiple of 1.
	require.Empty(t, moduloSubset(items, 1))
	// n=2 keeps the odd positions.
	subset := moduloSubset(items, 2)
	require.Equal(t, []record.Record{items[1], items[3], items[5]}, subset)
	// n=3 keeps positions 1, 2, 4, 5.
	require.Len(t, moduloSubset(items, 3), 4)
}

func TestPredictedCategoryTieBreak(t *testing.T) {
	require.Equal(t, "A", PredictedCategory(map[string]int{"B": 2, "A": 2}))
	require.Equal(t, "B", PredictedCategory(map[string]int{"B": 3, "A": 2}))
	require.Equal(t, "", PredictedCategory(nil))
}
