/*
Package csv provides methods to read labeled records from and write them
to CSV streams.

The header or first row of the CSV content is expected to consist of
attribute names and the name of the category attribute. The rest of the
rows should consist of valid values for those attributes and/or the '?'
string to indicate an undefined value.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/madfrog2018/decision-tree/record"
)

/*
ReadRecords takes an io.Reader for a CSV stream, a slice of attributes
and the name of the category attribute, and returns the records parsed
from the reader or an error.
*/
func ReadRecords(reader io.Reader, attributes []record.Attribute, categoryAttribute string) ([]record.Record, error) {
	var records []record.Record
	err := ReadRecordsByRecord(reader, attributes, categoryAttribute, func(_ int, r record.Record) (bool, error) {
		records = append(records, r)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

/*
ReadRecordsByRecord takes an io.Reader for a CSV stream, a slice of
attributes, the name of the category attribute and a lambda function on
an integer and a record. It parses the records from the reader and calls
the lambda with each record and its index. If the lambda returns true it
continues with the next record, otherwise it stops. An error is returned
if something goes wrong reading the stream or parsing a record.
*/
func ReadRecordsByRecord(reader io.Reader, attributes []record.Attribute, categoryAttribute string, lambda func(int, record.Record) (bool, error)) error {
	attributesByName := make(map[string]record.Attribute, len(attributes))
	for _, a := range attributes {
		attributesByName[a.Name()] = a
	}
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header: %v", err)
	}
	columns, categoryColumn, err := parseAttributesFromCSVHeader(header, attributesByName, categoryAttribute)
	if err != nil {
		return err
	}
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading body: %v", err)
		}
		rec, err := parseRecordFromCSVRow(row, columns, categoryColumn)
		if err != nil {
			return fmt.Errorf("parsing line %d: %v", l, err)
		}
		ok, err := lambda(l-2, rec)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

/*
ReadRecordsFromFilePath takes a filepath string, a slice of attributes
and the name of the category attribute, opens the file the filepath
points to (os.Stdin when the filepath is "") and uses ReadRecords to
parse records from it.
*/
func ReadRecordsFromFilePath(filepath string, attributes []record.Attribute, categoryAttribute string) ([]record.Record, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading records: %v", err)
		}
	}
	defer f.Close()
	records, err := ReadRecords(f, attributes, categoryAttribute)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return records, err
}

/*
WriteRecords takes an io.Writer, a slice of records, a slice of
attributes and the name of the category attribute and dumps the records
to the writer in CSV format, one column per attribute plus a trailing
category column. Undefined values are written as '?'.
*/
func WriteRecords(writer io.Writer, records []record.Record, attributes []record.Attribute, categoryAttribute string) error {
	w := csv.NewWriter(writer)
	header := make([]string, 0, len(attributes)+1)
	for _, a := range attributes {
		header = append(header, a.Name())
	}
	header = append(header, categoryAttribute)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %v", err)
	}
	row := make([]string, len(attributes)+1)
	for _, rec := range records {
		for i, a := range attributes {
			v, err := rec.Value(a.Name())
			if err != nil {
				return fmt.Errorf("writing record: %v", err)
			}
			if v == nil {
				row[i] = "?"
			} else {
				row[i] = fmt.Sprintf("%v", v)
			}
		}
		row[len(attributes)] = rec.Category()
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing record: %v", err)
		}
	}
	w.Flush()
	return w.Error()
}

func parseAttributesFromCSVHeader(header []string, attributes map[string]record.Attribute, categoryAttribute string) ([]record.Attribute, int, error) {
	columns := make([]record.Attribute, len(header))
	categoryColumn := -1
	for i, name := range header {
		if name == categoryAttribute {
			if categoryColumn >= 0 {
				return nil, 0, fmt.Errorf("parsing header: category attribute %s appears twice", name)
			}
			categoryColumn = i
			continue
		}
		a, ok := attributes[name]
		if !ok {
			return nil, 0, fmt.Errorf("parsing header: reference to unknown attribute %s", name)
		}
		columns[i] = a
	}
	if categoryColumn < 0 {
		return nil, 0, fmt.Errorf("parsing header: category attribute %s not present", categoryAttribute)
	}
	return columns, categoryColumn, nil
}

func parseRecordFromCSVRow(row []string, columns []record.Attribute, categoryColumn int) (record.Record, error) {
	attributeValues := make(map[string]interface{})
	var category string
	for i, v := range row {
		if i == categoryColumn {
			category = v
			continue
		}
		a := columns[i]
		var value interface{}
		var err error
		if v != "?" {
			if _, ok := a.(*record.ContinuousAttribute); ok {
				value, err = strconv.ParseFloat(v, 64)
				if err != nil {
					return nil, fmt.Errorf("converting %s to float64: %v", v, err)
				}
			} else {
				value = v
			}
		}
		if ok, err := a.Valid(value); !ok {
			return nil, fmt.Errorf("invalid value %v of type %T for attribute %s: %v", value, value, a.Name(), err)
		}
		if value != nil {
			attributeValues[a.Name()] = value
		}
	}
	return record.New(attributeValues, category), nil
}
