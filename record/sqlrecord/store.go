/*
Package sqlrecord provides a store of labeled records with an SQL
database as backend, through an Adapter interface with implementations
for SQLite3 and PostgreSQL in its subpackages.

Unlike stores that push query criteria down to the database, this store
only needs full scans and inserts: tree induction trains on records
loaded into memory.
*/
package sqlrecord

import (
	"context"
	"fmt"

	"github.com/madfrog2018/decision-tree/record"
)

/*
Store is a collection of labeled records backed by an SQL database
through an Adapter.
*/
type Store struct {
	db                Adapter
	attributes        []record.Attribute
	categoryAttribute string
	columnAttributes  map[string]record.Attribute
	attributeColumns  map[string]string
	discreteColumns   []string
	continuousColumns []string
	categoryColumn    string
}

/*
Open takes an Adapter to a database backend, a slice of attributes and
the name of the attribute holding the record category, and returns a
Store working on the adapter's records table, or an error if the
attribute names cannot be mapped to backend columns. The table is
expected to exist already; use Create otherwise.
*/
func Open(ctx context.Context, dbAdapter Adapter, attributes []record.Attribute, categoryAttribute string) (*Store, error) {
	s := &Store{db: dbAdapter, attributes: attributes, categoryAttribute: categoryAttribute}
	err := s.initAttributeColumns()
	if err != nil {
		return nil, err
	}
	return s, nil
}

/*
Create works like Open but also ensures the records table exists on the
backend.
*/
func Create(ctx context.Context, dbAdapter Adapter, attributes []record.Attribute, categoryAttribute string) (*Store, error) {
	s, err := Open(ctx, dbAdapter, attributes, categoryAttribute)
	if err != nil {
		return nil, err
	}
	err = s.db.CreateRecordTable(ctx, s.discreteColumns, s.continuousColumns)
	if err != nil {
		return nil, err
	}
	return s, nil
}

/*
Write takes a slice of records and inserts them into the backing table,
returning the number of records written and an error if the insertion
fails.
*/
func (s *Store) Write(ctx context.Context, records []record.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	rawRecords := make([]map[string]interface{}, 0, len(records))
	for _, r := range records {
		raw, err := s.newRawRecord(r)
		if err != nil {
			return 0, err
		}
		rawRecords = append(rawRecords, raw)
	}
	return s.db.AddRecords(ctx, rawRecords, s.discreteColumns, s.continuousColumns)
}

/*
Read returns a channel on which the records in the store are sent and a
channel on which at most one reading error is sent. Both channels are
closed when the reading ends.
*/
func (s *Store) Read(ctx context.Context) (<-chan record.Record, <-chan error) {
	recordStream := make(chan record.Record)
	errStream := make(chan error, 1)
	go func() {
		err := s.db.IterateOnRecords(
			ctx,
			s.discreteColumns,
			s.continuousColumns,
			func(_ int, raw map[string]interface{}) (bool, error) {
				r, err := s.newRecord(raw)
				if err != nil {
					return false, err
				}
				select {
				case <-ctx.Done():
					return false, ctx.Err()
				case recordStream <- r:
				}
				return true, nil
			})
		if err != nil {
			errStream <- err
		}
		close(errStream)
		close(recordStream)
	}()
	return recordStream, errStream
}

/*
ReadAll reads every record in the store into a slice.
*/
func (s *Store) ReadAll(ctx context.Context) ([]record.Record, error) {
	var records []record.Record
	count, err := s.db.CountRecords(ctx)
	if err == nil {
		records = make([]record.Record, 0, count)
	}
	recordChan, errs := s.Read(ctx)
	for r := range recordChan {
		records = append(records, r)
	}
	err = <-errs
	return records, err
}

// Count returns the number of records in the store.
func (s *Store) Count(ctx context.Context) (int, error) {
	return s.db.CountRecords(ctx)
}

func (s *Store) newRawRecord(r record.Record) (map[string]interface{}, error) {
	raw := make(map[string]interface{})
	for _, a := range s.attributes {
		v, err := r.Value(a.Name())
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		if ok, err := a.Valid(v); !ok {
			return nil, fmt.Errorf("writing record: %v", err)
		}
		raw[s.attributeColumns[a.Name()]] = v
	}
	raw[s.categoryColumn] = r.Category()
	return raw, nil
}

func (s *Store) newRecord(raw map[string]interface{}) (record.Record, error) {
	category, ok := raw[s.categoryColumn].(string)
	if !ok {
		return nil, fmt.Errorf("reading record: missing or non-text category column %s", s.categoryColumn)
	}
	attributeValues := make(map[string]interface{})
	for column, v := range raw {
		if column == s.categoryColumn {
			continue
		}
		a, ok := s.columnAttributes[column]
		if !ok {
			return nil, fmt.Errorf("reading record: unexpected column %s", column)
		}
		if ok, err := a.Valid(v); !ok {
			return nil, fmt.Errorf("reading record: %v", err)
		}
		attributeValues[a.Name()] = v
	}
	return record.New(attributeValues, category), nil
}

func (s *Store) initAttributeColumns() error {
	s.columnAttributes = make(map[string]record.Attribute)
	s.attributeColumns = make(map[string]string)
	for _, a := range s.attributes {
		if a.Name() == s.categoryAttribute {
			return fmt.Errorf("invalid attribute %s: collides with the category attribute", a.Name())
		}
		column, err := s.db.ColumnName(a.Name())
		if err != nil {
			return fmt.Errorf("invalid attribute %s: %v", a.Name(), err)
		}
		if oa, ok := s.columnAttributes[column]; ok {
			return fmt.Errorf("%s and %s attribute names translate to the same column name %s", a.Name(), oa.Name(), column)
		}
		s.columnAttributes[column] = a
		s.attributeColumns[a.Name()] = column
		if _, ok := a.(*record.DiscreteAttribute); ok {
			s.discreteColumns = append(s.discreteColumns, column)
		} else {
			s.continuousColumns = append(s.continuousColumns, column)
		}
	}
	categoryColumn, err := s.db.ColumnName(s.categoryAttribute)
	if err != nil {
		return fmt.Errorf("invalid category attribute %s: %v", s.categoryAttribute, err)
	}
	if oa, ok := s.columnAttributes[categoryColumn]; ok {
		return fmt.Errorf("category attribute %s and %s translate to the same column name %s", s.categoryAttribute, oa.Name(), categoryColumn)
	}
	s.categoryColumn = categoryColumn
	s.discreteColumns = append(s.discreteColumns, categoryColumn)
	return nil
}
