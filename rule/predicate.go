package rule

import "fmt"

/*
Predicate represents a reusable boolean test comparing an attribute value
taken from a record against a reference value taken from the training set.

Its Test method takes the candidate value and the reference value and
returns whether the candidate satisfies the predicate, or an error if the
values cannot be evaluated at all.

Its Name method returns a stable identifier for the predicate, used to
compare rules for equality.
*/
type Predicate interface {
	Name() string
	Test(value, reference interface{}) (bool, error)
}

var (
	// Equal is satisfied when the value equals the reference value.
	Equal Predicate = equalPredicate{}
	// NotEqual is satisfied when the value is defined and differs from
	// the reference value.
	NotEqual Predicate = notEqualPredicate{}
	// GreaterOrEqual is satisfied when the value is greater than or
	// equal to the reference value. Values are compared as float64
	// numbers, or lexicographically when both are strings.
	GreaterOrEqual Predicate = orderedPredicate{name: "gte"}
	// LessOrEqual is satisfied when the value is less than or equal to
	// the reference value, under the same comparison rules as
	// GreaterOrEqual.
	LessOrEqual Predicate = orderedPredicate{name: "lte"}
	// Exists is satisfied when the record defines any value for the
	// attribute, regardless of the reference value.
	Exists Predicate = existsPredicate{}
)

type equalPredicate struct{}

func (equalPredicate) Name() string {
	return "eq"
}

func (equalPredicate) Test(value, reference interface{}) (bool, error) {
	if value == nil {
		return false, nil
	}
	return value == reference, nil
}

type notEqualPredicate struct{}

func (notEqualPredicate) Name() string {
	return "neq"
}

func (notEqualPredicate) Test(value, reference interface{}) (bool, error) {
	if value == nil {
		return false, nil
	}
	return value != reference, nil
}

type existsPredicate struct{}

func (existsPredicate) Name() string {
	return "exists"
}

func (existsPredicate) Test(value, _ interface{}) (bool, error) {
	return value != nil, nil
}

// orderedPredicate holds no state beyond its direction, so predicate
// values stay comparable and usable as map keys.
type orderedPredicate struct {
	name string
}

func (p orderedPredicate) Name() string {
	return p.name
}

func (p orderedPredicate) satisfied(cmp int) bool {
	if p.name == "gte" {
		return cmp >= 0
	}
	return cmp <= 0
}

/*
Test compares the value against the reference value. Numeric values are
compared as float64, string values lexicographically. A nil or otherwise
incomparable value does not satisfy the predicate but is not an error,
so that mixed training data degrades to a non-match instead of aborting
an induction pass.
*/
func (p orderedPredicate) Test(value, reference interface{}) (bool, error) {
	if value == nil {
		return false, nil
	}
	if vs, ok := value.(string); ok {
		rs, ok := reference.(string)
		if !ok {
			return false, nil
		}
		switch {
		case vs < rs:
			return p.satisfied(-1), nil
		case vs > rs:
			return p.satisfied(1), nil
		}
		return p.satisfied(0), nil
	}
	vf, ok := toFloat64(value)
	if !ok {
		return false, nil
	}
	rf, ok := toFloat64(reference)
	if !ok {
		return false, fmt.Errorf("predicate %s got incomparable reference value of type %T", p.name, reference)
	}
	switch {
	case vf < rf:
		return p.satisfied(-1), nil
	case vf > rf:
		return p.satisfied(1), nil
	}
	return p.satisfied(0), nil
}

func toFloat64(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
