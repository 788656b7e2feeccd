package record

import "fmt"

/*
Record represents a labeled observation: a bag of named attribute values
plus the category the observation belongs to.

Its AttributeNames method returns the names of the attributes the record
defines a value for.

Its Value method returns the value for the given attribute name, or an
error if the value cannot be obtained. A nil value without an error means
the record does not define the attribute.

Its Category method returns the label of the record.
*/
type Record interface {
	AttributeNames() []string
	Value(attribute string) (interface{}, error)
	Category() string
}

// Error represents an error related with records.
type Error string

/*
ErrMissingAttribute is the error strict Record implementations return
from Value when asked about an attribute the record does not define,
as opposed to map-backed records which report a nil value instead.
*/
const ErrMissingAttribute = Error("record does not define the attribute")

func (e Error) Error() string {
	return string(e)
}

type mapRecord struct {
	attributeValues map[string]interface{}
	category        string
}

/*
New takes a map of attribute names to values and a category label and
returns a Record backed by them.
*/
func New(attributeValues map[string]interface{}, category string) Record {
	return &mapRecord{attributeValues, category}
}

func (r *mapRecord) AttributeNames() []string {
	names := make([]string, 0, len(r.attributeValues))
	for name := range r.attributeValues {
		names = append(names, name)
	}
	return names
}

func (r *mapRecord) Value(attribute string) (interface{}, error) {
	return r.attributeValues[attribute], nil
}

func (r *mapRecord) Category() string {
	return r.category
}

func (r *mapRecord) String() string {
	return fmt.Sprintf("[%v -> %s]", r.attributeValues, r.category)
}

/*
CategoryCounts takes a slice of records and returns a map from each
category present in the slice to the number of records labeled with it.
*/
func CategoryCounts(records []Record) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Category()]++
	}
	return counts
}
