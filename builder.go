package dtree

import (
	"github.com/madfrog2018/decision-tree/record"
	"github.com/madfrog2018/decision-tree/rule"
	"github.com/madfrog2018/decision-tree/tree"
)

/*
Builder accumulates the configuration to grow decision trees: the
training set, the minimal leaf size, the predicates to try per
attribute, the default predicates for the remaining attributes and the
attributes to ignore. Its setters return the builder itself so calls
can be chained, and Build grows a tree with the current configuration.

A Builder is also what GrowForest trains its ensemble members through,
swapping the training set between members while keeping the rest of the
configuration shared.
*/
type Builder struct {
	trainingSet         []record.Record
	minimalLeafSize     int
	attributePredicates map[string][]rule.Predicate
	defaultPredicates   []rule.Predicate
	ignoredAttributes   []string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{attributePredicates: make(map[string][]rule.Predicate)}
}

// TrainingSet sets the records trees will be grown from.
func (b *Builder) TrainingSet(records []record.Record) *Builder {
	b.trainingSet = records
	return b
}

// TrainingRecords returns the records trees are grown from.
func (b *Builder) TrainingRecords() []record.Record {
	return b.trainingSet
}

// MinimalLeafSize sets the node size at or below which splitting stops.
func (b *Builder) MinimalLeafSize(size int) *Builder {
	b.minimalLeafSize = size
	return b
}

// PredicatesFor sets the predicates to try when splitting on the given
// attribute, overriding the default predicates for it.
func (b *Builder) PredicatesFor(attribute string, predicates ...rule.Predicate) *Builder {
	b.attributePredicates[attribute] = predicates
	return b
}

// AttributePredicates sets the whole per-attribute predicate map at
// once, replacing any previous PredicatesFor calls.
func (b *Builder) AttributePredicates(predicates map[string][]rule.Predicate) *Builder {
	if predicates == nil {
		predicates = make(map[string][]rule.Predicate)
	}
	b.attributePredicates = predicates
	return b
}

// DefaultPredicates sets the predicates to try for attributes without
// their own predicate list.
func (b *Builder) DefaultPredicates(predicates ...rule.Predicate) *Builder {
	b.defaultPredicates = predicates
	return b
}

// Ignore adds attributes that will never be split on.
func (b *Builder) Ignore(attributes ...string) *Builder {
	b.ignoredAttributes = append(b.ignoredAttributes, attributes...)
	return b
}

// Build grows a decision tree with the current configuration.
func (b *Builder) Build() (*tree.Tree, error) {
	return Build(b.trainingSet, b.minimalLeafSize, b.attributePredicates, b.defaultPredicates, b.ignoredAttributes)
}

// clone returns a copy of the builder sharing its predicate
// configuration but not its training set slice header, so concurrent
// forest members can swap training sets independently.
func (b *Builder) clone() *Builder {
	return &Builder{
		trainingSet:         b.trainingSet,
		minimalLeafSize:     b.minimalLeafSize,
		attributePredicates: b.attributePredicates,
		defaultPredicates:   b.defaultPredicates,
		ignoredAttributes:   b.ignoredAttributes,
	}
}
