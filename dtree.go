/*
Package dtree grows decision trees from labeled records by recursive
entropy-based partitioning, and aggregates them into random forests.

A tree is built by exhaustively searching, at every node, for the rule
(attribute, predicate, reference value) whose match/not-match partition
of the node's records yields the highest information gain, and recursing
into both partitions until the records are pure, too few, or no rule
gains anything. The resulting trees live in the tree package and can be
simplified with their MergeRedundantRules pass.
*/
package dtree

import (
	"math"
	"sort"

	"github.com/madfrog2018/decision-tree/record"
	"github.com/madfrog2018/decision-tree/rule"
	"github.com/madfrog2018/decision-tree/tree"
)

/*
Build takes a slice of labeled records and grows a decision tree
predicting their categories.

minimalLeafSize is the node size at or below which splitting stops and a
leaf is emitted. attributePredicates maps attribute names to the
predicates to try for them; defaultPredicates are tried for attributes
absent from that map; attributes in ignoredAttributes are never split
on.

Build stops splitting when the records share a single category, when no
candidate rule achieves a strictly positive information gain, or when
the minimal leaf size is reached, emitting a leaf with the most frequent
category (ties resolved to the lexicographically smallest one).

An empty records slice degenerates to a leaf with the empty category;
callers are expected to guard the top-level call against empty training
sets.
*/
func Build(items []record.Record, minimalLeafSize int, attributePredicates map[string][]rule.Predicate, defaultPredicates []rule.Predicate, ignoredAttributes []string) (*tree.Tree, error) {
	ignored := make(map[string]bool, len(ignoredAttributes))
	for _, attribute := range ignoredAttributes {
		ignored[attribute] = true
	}
	return build(items, minimalLeafSize, attributePredicates, defaultPredicates, ignored)
}

func build(items []record.Record, minimalLeafSize int, attributePredicates map[string][]rule.Predicate, defaultPredicates []rule.Predicate, ignored map[string]bool) (*tree.Tree, error) {
	if len(items) <= minimalLeafSize {
		return makeLeaf(items), nil
	}
	if entropy(items) == 0 {
		// all categories the same
		return makeLeaf(items), nil
	}
	split, err := findBestSplit(items, attributePredicates, defaultPredicates, ignored)
	if err != nil {
		return nil, err
	}
	if split == nil {
		// no rule reduces entropy
		return makeLeaf(items), nil
	}
	matchSubtree, err := build(split.matched, minimalLeafSize, attributePredicates, defaultPredicates, ignored)
	if err != nil {
		return nil, err
	}
	notMatchSubtree, err := build(split.notMatched, minimalLeafSize, attributePredicates, defaultPredicates, ignored)
	if err != nil {
		return nil, err
	}
	return tree.NewInternal(split.rule, matchSubtree, notMatchSubtree), nil
}

func makeLeaf(items []record.Record) *tree.Tree {
	return tree.NewLeaf(mostFrequentCategory(items))
}

/*
mostFrequentCategory returns the category labeling the most records.
Equally frequent categories are resolved to the lexicographically
smallest one, so that leaves do not depend on map iteration order.
*/
func mostFrequentCategory(items []record.Record) string {
	counts := record.CategoryCounts(items)
	var best string
	bestCount := -1
	for category, count := range counts {
		if count > bestCount || (count == bestCount && category < best) {
			bestCount = count
			best = category
		}
	}
	return best
}

/*
entropy returns the Shannon entropy, in nats, of the category
distribution of the given records. It is 0 for an empty slice and for
any slice sharing a single category.
*/
func entropy(items []record.Record) float64 {
	counts := record.CategoryCounts(items)
	total := float64(len(items))
	var result float64
	for _, count := range counts {
		p := float64(count) / total
		result -= p * math.Log(p)
	}
	return result
}

/*
PredicatesForAttributes takes a slice of attribute descriptions and
returns a predicate map suitable for Build or Builder.PredicatesFor:
discrete attributes are tested for equality against observed values,
continuous attributes are thresholded with ordering predicates.
*/
func PredicatesForAttributes(attributes []record.Attribute) map[string][]rule.Predicate {
	predicates := make(map[string][]rule.Predicate, len(attributes))
	for _, attribute := range attributes {
		switch attribute.(type) {
		case *record.DiscreteAttribute:
			predicates[attribute.Name()] = []rule.Predicate{rule.Equal}
		case *record.ContinuousAttribute:
			predicates[attribute.Name()] = []rule.Predicate{rule.GreaterOrEqual, rule.LessOrEqual}
		}
	}
	return predicates
}

func sortedAttributeNames(rec record.Record) []string {
	names := rec.AttributeNames()
	sort.Strings(names)
	return names
}
