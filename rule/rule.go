/*
Package rule provides the boolean tests decision trees are built from:
predicates comparing an attribute value against a reference value, and
rules binding an attribute name, a predicate and a reference value
together.
*/
package rule

import (
	"fmt"

	"github.com/madfrog2018/decision-tree/record"
)

/*
Rule binds an attribute name, a predicate and a reference value. It is
immutable once constructed. Two rules are equal iff their attribute,
predicate and reference value are equal; that value equality is what
deduplicates candidate splits within one search pass.
*/
type Rule struct {
	attribute string
	predicate Predicate
	value     interface{}
}

/*
New takes an attribute name, a predicate and a reference value and
returns a rule binding them.
*/
func New(attribute string, predicate Predicate, value interface{}) *Rule {
	return &Rule{attribute, predicate, value}
}

/*
Match takes a record and returns whether the record's value for the
rule's attribute satisfies the rule's predicate against its reference
value, or an error if the value cannot be obtained or evaluated.
*/
func (r *Rule) Match(rec record.Record) (bool, error) {
	value, err := rec.Value(r.attribute)
	if err != nil {
		return false, fmt.Errorf("matching rule on %s: %v", r.attribute, err)
	}
	return r.predicate.Test(value, r.value)
}

// Attribute returns the name of the attribute the rule tests.
func (r *Rule) Attribute() string {
	return r.attribute
}

// Predicate returns the predicate the rule applies.
func (r *Rule) Predicate() Predicate {
	return r.predicate
}

// Value returns the reference value the rule tests against.
func (r *Rule) Value() interface{} {
	return r.value
}

/*
Equal takes another rule and returns whether both rules have the same
attribute, predicate and reference value.
*/
func (r *Rule) Equal(other *Rule) bool {
	if other == nil {
		return false
	}
	return r.attribute == other.attribute &&
		r.predicate.Name() == other.predicate.Name() &&
		r.value == other.value
}

/*
Key returns a stable string identifying the rule by its attribute,
predicate and reference value. Rules that are Equal share the same key,
which makes it usable to deduplicate candidate rules in a map. The
value's dynamic type is part of the key, so values of different types
with the same print form yield distinct keys.
*/
func (r *Rule) Key() string {
	return fmt.Sprintf("%s|%s|%T|%v", r.attribute, r.predicate.Name(), r.value, r.value)
}

func (r *Rule) String() string {
	switch r.predicate.Name() {
	case "eq":
		return fmt.Sprintf("%s is %v", r.attribute, r.value)
	case "neq":
		return fmt.Sprintf("%s is not %v", r.attribute, r.value)
	case "gte":
		return fmt.Sprintf("%s >= %v", r.attribute, r.value)
	case "lte":
		return fmt.Sprintf("%s <= %v", r.attribute, r.value)
	case "exists":
		return fmt.Sprintf("%s is defined", r.attribute)
	}
	return fmt.Sprintf("%s %s %v", r.attribute, r.predicate.Name(), r.value)
}
