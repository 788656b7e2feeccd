package dtree

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/madfrog2018/decision-tree/record"
	"github.com/madfrog2018/decision-tree/tree"
)

/*
Forest is an ensemble of decision trees independently grown from
resampled subsets of one training set. Classification queries fan out
to every tree and the per-tree answers are tallied into a category vote
histogram.
*/
type Forest struct {
	trees []*tree.Tree
}

/*
GrowForest takes a configured Builder and an ensemble size and grows a
forest of that many trees.

The builder's training set is copied and shuffled once. Member i trains
on the i-th contiguous chunk of size total/size of the shuffled set,
joined with the shuffled records whose position is not a multiple of
i+1; the trailing records of a set not evenly divisible by the ensemble
size belong to no chunk. Each member tree is merged with
MergeRedundantRules after growing.

A size larger than the training set yields empty chunks and degenerate
trees rather than an error; only a non-positive size is rejected.
*/
func GrowForest(b *Builder, size int) (*Forest, error) {
	subsets, err := memberTrainingSets(b.TrainingRecords(), size, newRand())
	if err != nil {
		return nil, err
	}
	forest := &Forest{trees: make([]*tree.Tree, size)}
	for i, subset := range subsets {
		t, err := b.TrainingSet(subset).Build()
		if err != nil {
			return nil, fmt.Errorf("growing forest member %d: %v", i, err)
		}
		forest.trees[i] = t.MergeRedundantRules()
	}
	return forest, nil
}

/*
GrowForestConcurrently grows a forest like GrowForest but trains up to
workers ensemble members at a time. Member subsets are drawn up front
from a single shuffle, so concurrency changes only the wall-clock time,
never what each member trains on.
*/
func GrowForestConcurrently(b *Builder, size, workers int) (*Forest, error) {
	if workers < 1 {
		return nil, fmt.Errorf("growing forest: worker count must be positive, got %d", workers)
	}
	subsets, err := memberTrainingSets(b.TrainingRecords(), size, newRand())
	if err != nil {
		return nil, err
	}
	forest := &Forest{trees: make([]*tree.Tree, size)}
	errs := make([]error, size)
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, subset := range subsets {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, member *Builder) {
			defer wg.Done()
			defer func() { <-sem }()
			t, err := member.Build()
			if err != nil {
				errs[i] = fmt.Errorf("growing forest member %d: %v", i, err)
				return
			}
			forest.trees[i] = t.MergeRedundantRules()
		}(i, b.clone().TrainingSet(subset))
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return forest, nil
}

/*
Classify takes a record, queries every tree in the forest with it and
returns a map from category to the number of trees that voted for it.
Picking a single winner from the histogram is left to the caller; see
PredictedCategory.
*/
func (f *Forest) Classify(rec record.Record) (map[string]int, error) {
	votes := make(map[string]int)
	for _, t := range f.trees {
		category, err := t.Classify(rec)
		if err != nil {
			return nil, err
		}
		votes[category]++
	}
	return votes, nil
}

// Trees returns the ensemble members in growing order.
func (f *Forest) Trees() []*tree.Tree {
	return f.trees
}

// Size returns the number of trees in the forest.
func (f *Forest) Size() int {
	return len(f.trees)
}

/*
PredictedCategory takes a vote histogram as returned by Classify and
returns the category with the most votes, resolving ties to the
lexicographically smallest category. It returns the empty string for an
empty histogram.
*/
func PredictedCategory(votes map[string]int) string {
	var best string
	bestCount := -1
	for category, count := range votes {
		if count > bestCount || (count == bestCount && category < best) {
			bestCount = count
			best = category
		}
	}
	return best
}

func memberTrainingSets(items []record.Record, size int, r *rand.Rand) ([][]record.Record, error) {
	if size < 1 {
		return nil, fmt.Errorf("growing forest: ensemble size must be positive, got %d", size)
	}
	shuffled := make([]record.Record, len(items))
	copy(shuffled, items)
	shuffle(shuffled, r)
	chunkSize := len(shuffled) / size
	subsets := make([][]record.Record, size)
	for i := 0; i < size; i++ {
		subset := make([]record.Record, 0, chunkSize+len(shuffled))
		subset = append(subset, shuffled[i*chunkSize:(i+1)*chunkSize]...)
		subset = append(subset, moduloSubset(shuffled, i+1)...)
		subsets[i] = subset
	}
	return subsets, nil
}

// moduloSubset keeps the records whose position is not a multiple of n.
// Higher member indices thus retain larger fractions of the shuffled
// set; the policy is deterministic given the shuffle.
func moduloSubset(items []record.Record, n int) []record.Record {
	var result []record.Record
	for i, item := range items {
		if i%n != 0 {
			result = append(result, item)
		}
	}
	return result
}

func shuffle(items []record.Record, r *rand.Rand) {
	for n := len(items); n > 1; n-- {
		randIndex := r.Intn(n)
		items[n-1], items[randIndex] = items[randIndex], items[n-1]
	}
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
