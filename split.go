package dtree

import (
	"github.com/madfrog2018/decision-tree/record"
	"github.com/madfrog2018/decision-tree/rule"
)

/*
splitResult partitions a set of records into the ones matching a rule
and the ones not matching it. It only lives for the duration of one
induction pass.
*/
type splitResult struct {
	rule       *rule.Rule
	matched    []record.Record
	notMatched []record.Record
}

/*
findBestSplit enumerates candidate rules over the given records and
returns the split with the highest information gain, or nil if no
candidate achieves a strictly positive gain.

Candidates are built from every record's value for every non-ignored
attribute, combined with the predicates configured for that attribute
(its own list if any, the default list otherwise). A rule equal to one
already tested in this pass is skipped. Records and predicate lists are
scanned in order and attribute names in lexicographic order, and only a
strict improvement replaces the best split, so the first rule reaching
the maximum gain wins.
*/
func findBestSplit(items []record.Record, attributePredicates map[string][]rule.Predicate, defaultPredicates []rule.Predicate, ignored map[string]bool) (*splitResult, error) {
	initialEntropy := entropy(items)
	total := float64(len(items))
	var bestGain float64
	var best *splitResult
	tested := make(map[string]bool)
	for _, item := range items {
		for _, attribute := range sortedAttributeNames(item) {
			if ignored[attribute] {
				continue
			}
			value, err := item.Value(attribute)
			if err != nil {
				return nil, err
			}
			for _, predicate := range predicatesForAttribute(attribute, attributePredicates, defaultPredicates) {
				candidate := rule.New(attribute, predicate, value)
				if tested[candidate.Key()] {
					continue
				}
				tested[candidate.Key()] = true
				split, err := splitByRule(candidate, items)
				if err != nil {
					return nil, err
				}
				pMatched := float64(len(split.matched)) / total
				pNotMatched := float64(len(split.notMatched)) / total
				gain := initialEntropy - pMatched*entropy(split.matched) - pNotMatched*entropy(split.notMatched)
				if gain > bestGain {
					bestGain = gain
					best = split
				}
			}
		}
	}
	return best, nil
}

func splitByRule(r *rule.Rule, items []record.Record) (*splitResult, error) {
	split := &splitResult{rule: r}
	for _, item := range items {
		ok, err := r.Match(item)
		if err != nil {
			return nil, err
		}
		if ok {
			split.matched = append(split.matched, item)
		} else {
			split.notMatched = append(split.notMatched, item)
		}
	}
	return split, nil
}

func predicatesForAttribute(attribute string, attributePredicates map[string][]rule.Predicate, defaultPredicates []rule.Predicate) []rule.Predicate {
	if predicates := attributePredicates[attribute]; len(predicates) > 0 {
		return predicates
	}
	return defaultPredicates
}
