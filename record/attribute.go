package record

import "fmt"

/*
Attribute describes a property records can define a value for. It is
metadata: data sources use it to decide how to parse and store values,
and callers use it to derive which predicates make sense for the
attribute.
*/
type Attribute interface {
	Name() string
	Valid(interface{}) (bool, error)
}

/*
DiscreteAttribute describes an attribute that can only take a value
among a finite set of strings.
*/
type DiscreteAttribute struct {
	name            string
	availableValues []string
}

/*
ContinuousAttribute describes an attribute that takes a numeric value.
*/
type ContinuousAttribute struct {
	name string
}

/*
NewDiscreteAttribute takes a name and a slice of available value strings
and returns a discrete attribute with them.
*/
func NewDiscreteAttribute(name string, availableValues []string) *DiscreteAttribute {
	return &DiscreteAttribute{name, availableValues}
}

/*
NewContinuousAttribute takes a name and returns a continuous attribute
with that name.
*/
func NewContinuousAttribute(name string) *ContinuousAttribute {
	return &ContinuousAttribute{name}
}

/*
Name returns the name of the attribute.
*/
func (da *DiscreteAttribute) Name() string {
	return da.name
}

/*
Valid receives a value and returns a boolean and an error. When the value
is nil or one of the attribute's available values it returns true and nil,
otherwise false and an error describing the reason.
*/
func (da *DiscreteAttribute) Valid(value interface{}) (bool, error) {
	if value == nil {
		return true, nil
	}
	vs, ok := value.(string)
	if !ok {
		return false, fmt.Errorf("discrete attribute %s expects string value, got %T value", da.name, value)
	}
	for _, av := range da.availableValues {
		if av == vs {
			return true, nil
		}
	}
	return false, fmt.Errorf("discrete attribute %s got unknown value %s", da.name, vs)
}

/*
AvailableValues returns the values the attribute can take.
*/
func (da *DiscreteAttribute) AvailableValues() []string {
	return da.availableValues
}

func (da *DiscreteAttribute) String() string {
	return da.name
}

/*
Name returns the name of the attribute.
*/
func (ca *ContinuousAttribute) Name() string {
	return ca.name
}

/*
Valid receives a value and returns a boolean and an error. When the value
is nil or a float64 it returns true and nil, otherwise false and an error
describing the reason.
*/
func (ca *ContinuousAttribute) Valid(value interface{}) (bool, error) {
	if value == nil {
		return true, nil
	}
	_, ok := value.(float64)
	if !ok {
		return false, fmt.Errorf("continuous attribute %s expects float64 value, got %T value", ca.name, value)
	}
	return true, nil
}

func (ca *ContinuousAttribute) String() string {
	return ca.name
}
