// Package tree provides the decision-tree model produced by induction:
// a binary tree whose leaves hold categories and whose internal nodes
// hold rules, with classification, redundant-rule merging, traversal
// and accuracy testing over it.
package tree

import (
	"fmt"
	"strings"

	"github.com/madfrog2018/decision-tree/record"
	"github.com/madfrog2018/decision-tree/rule"
)

// Error represents an error related with trees.
type Error string

/*
ErrNoRecords is the error returned by Test when given no records to
measure the tree against.
*/
const ErrNoRecords = Error("cannot test a tree against no records")

func (e Error) Error() string {
	return string(e)
}

/*
Tree is a node of a decision tree. A node is either a leaf, holding the
category predicted for records that reach it, or an internal node,
holding a rule and the two subtrees for records that match and do not
match it.

A node is a leaf iff its Rule is nil; internal nodes always have both
subtrees set. Nodes are built bottom-up during induction and mutated
only by MergeRedundantRules afterwards.
*/
type Tree struct {
	// The category predicted by this node. Empty on internal nodes.
	Category string
	// The rule records are tested against on this node. Nil on leaves.
	Rule *rule.Rule
	// The subtree for records matching the rule. Nil on leaves.
	MatchSubtree *Tree
	// The subtree for records not matching the rule. Nil on leaves.
	NotMatchSubtree *Tree
}

/*
NewLeaf takes a category and returns a leaf node predicting it.
*/
func NewLeaf(category string) *Tree {
	return &Tree{Category: category}
}

/*
NewInternal takes a rule and the match and not-match subtrees and
returns an internal node holding them.
*/
func NewInternal(r *rule.Rule, matchSubtree, notMatchSubtree *Tree) *Tree {
	return &Tree{Rule: r, MatchSubtree: matchSubtree, NotMatchSubtree: notMatchSubtree}
}

// IsLeaf returns whether the node is a leaf.
func (t *Tree) IsLeaf() bool {
	return t.Rule == nil
}

/*
Classify takes a record and walks the tree from this node, evaluating
each internal node's rule against the record and descending into the
match or not-match subtree accordingly, until a leaf is reached. It
returns the leaf's category, or an error if a rule cannot be evaluated
against the record.
*/
func (t *Tree) Classify(rec record.Record) (string, error) {
	n := t
	for !n.IsLeaf() {
		if n.MatchSubtree == nil || n.NotMatchSubtree == nil {
			panic(fmt.Sprintf("decision tree invariant violated: internal node { %v } lacks a subtree", n.Rule))
		}
		ok, err := n.Rule.Match(rec)
		if err != nil {
			return "", fmt.Errorf("classifying record: %v", err)
		}
		if ok {
			n = n.MatchSubtree
		} else {
			n = n.NotMatchSubtree
		}
	}
	return n.Category, nil
}

/*
MergeRedundantRules simplifies the tree in place, collapsing every
internal node whose two subtrees are leaves predicting the same category
into a leaf predicting it. Subtrees are merged before their parent, so
chains of redundant rules collapse in a single pass. The pass never
changes what Classify returns for any record, and applying it a second
time is a no-op. It returns the receiver.
*/
func (t *Tree) MergeRedundantRules() *Tree {
	if t.MatchSubtree != nil {
		t.MatchSubtree.MergeRedundantRules()
	}
	if t.NotMatchSubtree != nil {
		t.NotMatchSubtree.MergeRedundantRules()
	}
	if t.Rule != nil &&
		t.MatchSubtree.IsLeaf() && t.NotMatchSubtree.IsLeaf() &&
		t.MatchSubtree.Category == t.NotMatchSubtree.Category {
		t.Category = t.MatchSubtree.Category
		t.Rule = nil
		t.MatchSubtree = nil
		t.NotMatchSubtree = nil
	}
	return t
}

/*
Traverse takes a bottomup boolean and an error-returning function and
goes through the tree running the function with every node. Traverse
calls the function on a node before its subtrees if bottomup is false,
and after them if bottomup is true. If a call returns an error the
traversing is aborted and the error is returned.
*/
func (t *Tree) Traverse(bottomup bool, f func(*Tree) error) error {
	if !bottomup {
		if err := f(t); err != nil {
			return err
		}
	}
	if t.MatchSubtree != nil {
		if err := t.MatchSubtree.Traverse(bottomup, f); err != nil {
			return err
		}
	}
	if t.NotMatchSubtree != nil {
		if err := t.NotMatchSubtree.Traverse(bottomup, f); err != nil {
			return err
		}
	}
	if bottomup {
		if err := f(t); err != nil {
			return err
		}
	}
	return nil
}

/*
Test takes a slice of labeled records and returns the fraction of them
the tree classifies into their own category. It returns ErrNoRecords if
the slice is empty, or an error if a record cannot be classified.
*/
func (t *Tree) Test(records []record.Record) (float64, error) {
	if len(records) == 0 {
		return 0.0, ErrNoRecords
	}
	var hits float64
	for _, rec := range records {
		category, err := t.Classify(rec)
		if err != nil {
			return 0.0, err
		}
		if category == rec.Category() {
			hits += 1.0
		}
	}
	return hits / float64(len(records)), nil
}

// Count returns the number of nodes in the tree.
func (t *Tree) Count() int {
	var count int
	t.Traverse(false, func(*Tree) error {
		count++
		return nil
	})
	return count
}

func (t *Tree) String() string {
	if t.IsLeaf() {
		return fmt.Sprintf("(%s)\n", t.Category)
	}
	result := fmt.Sprintf("{ %v }\n|\n", t.Rule)
	subtrees := []*Tree{t.MatchSubtree, t.NotMatchSubtree}
	labels := []string{"match", "other"}
	for i, subtree := range subtrees {
		for j, line := range strings.Split(subtree.String(), "\n") {
			if len(line) == 0 {
				continue
			}
			if j == 0 {
				result = fmt.Sprintf("%s|__%s: %s\n", result, labels[i], line)
			} else if i == len(subtrees)-1 {
				result = fmt.Sprintf("%s   %s\n", result, line)
			} else {
				result = fmt.Sprintf("%s|  %s\n", result, line)
			}
		}
	}
	return result
}
