/*
Package yaml parses attribute metadata from YAML documents.

A metadata document declares, under a top-level attributes key, one
entry per attribute: a list of admissible string values for a discrete
attribute, or the keyword 'continuous' for a numeric one.

	attributes:
	  color:
	    - red
	    - blue
	  size: continuous
*/
package yaml

import (
	"fmt"
	"os"

	"github.com/madfrog2018/decision-tree/record"
	yaml "gopkg.in/yaml.v2"
)

const continuousKeyword = "continuous"

/*
ReadAttributes takes the bytes of a metadata document and returns the
attributes it declares, or an error if the document cannot be parsed,
declares no attributes or declares one in an unknown form.
*/
func ReadAttributes(md []byte) ([]record.Attribute, error) {
	var doc struct {
		Attributes map[string]interface{} `yaml:"attributes"`
	}
	err := yaml.Unmarshal(md, &doc)
	if err != nil {
		return nil, fmt.Errorf("parsing attribute metadata: %v", err)
	}
	if doc.Attributes == nil {
		return nil, fmt.Errorf("attribute metadata declares no attributes")
	}
	attributes := make([]record.Attribute, 0, len(doc.Attributes))
	for name, declaration := range doc.Attributes {
		a, err := parseAttribute(name, declaration)
		if err != nil {
			return nil, err
		}
		attributes = append(attributes, a)
	}
	return attributes, nil
}

/*
ReadAttributesFromFile takes a filepath, reads the metadata document it
points to and returns the attributes declared on it, or an error if the
file cannot be read or its contents do not parse as attribute metadata.
*/
func ReadAttributesFromFile(filepath string) ([]record.Attribute, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading attribute metadata file %s: %v", filepath, err)
	}
	attributes, err := ReadAttributes(md)
	if err != nil {
		return nil, fmt.Errorf("parsing attribute metadata file %s: %v", filepath, err)
	}
	return attributes, nil
}

func parseAttribute(name string, declaration interface{}) (record.Attribute, error) {
	switch d := declaration.(type) {
	case string:
		if d != continuousKeyword {
			return nil, fmt.Errorf("attribute %s: unknown keyword %q, expected %q or a value list", name, d, continuousKeyword)
		}
		return record.NewContinuousAttribute(name), nil
	case []interface{}:
		values := make([]string, 0, len(d))
		for _, v := range d {
			values = append(values, fmt.Sprintf("%v", v))
		}
		return record.NewDiscreteAttribute(name, values), nil
	}
	return nil, fmt.Errorf("attribute %s: declaration of type %T is neither a value list nor %q", name, declaration, continuousKeyword)
}
