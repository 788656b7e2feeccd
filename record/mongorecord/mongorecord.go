/*
Package mongorecord provides a store of labeled records with a MongoDB
database as backend.
*/
package mongorecord

import (
	"context"
	"fmt"
	"strings"

	"github.com/madfrog2018/decision-tree/record"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const recordsCollectionName = "records"

/*
Store is a collection of labeled records backed by a MongoDB database,
to which records can be added and from which they can be sequentially
read.
*/
type Store struct {
	session           *mgo.Session
	attributes        []record.Attribute
	categoryAttribute string
}

/*
Open takes a MongoDB database session, a slice of attributes and the
name of the field holding the record category, and returns a Store that
works on the records collection of the session's default database, or
an error if the attribute names cannot be used as document fields or
the indexes cannot be set up.
*/
func Open(ctx context.Context, session *mgo.Session, attributes []record.Attribute, categoryAttribute string) (*Store, error) {
	s := &Store{session, attributes, categoryAttribute}
	err := s.ensureIndexes()
	if err != nil {
		return nil, err
	}
	return s, nil
}

/*
Write takes a slice of records and inserts them into the backing
collection as one document each, with a field per defined attribute
value plus the category field. It returns the number of records written
and an error if the insertion fails.
*/
func (s *Store) Write(ctx context.Context, records []record.Record) (int, error) {
	docs := make([]interface{}, 0, len(records))
	for _, r := range records {
		doc := make(bson.M)
		for _, a := range s.attributes {
			value, err := r.Value(a.Name())
			if err != nil {
				return 0, err
			}
			if value != nil {
				doc[a.Name()] = value
			}
		}
		doc[s.categoryAttribute] = r.Category()
		docs = append(docs, doc)
	}
	err := s.recordsCollection().Insert(docs...)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

/*
Read returns a channel on which the records in the store are sent and a
channel on which at most one reading error is sent. Both channels are
closed when the reading ends, because of the given context expiring, an
error or the records running out.
*/
func (s *Store) Read(ctx context.Context) (<-chan record.Record, <-chan error) {
	records := make(chan record.Record)
	errs := make(chan error, 1)
	go func() {
		var doc bson.M
		var err error
		iter := s.recordsCollection().Find(nil).Iter()
		defer iter.Close()
		for iter.Next(&doc) {
			r, rerr := s.newRecord(doc)
			if rerr != nil {
				err = rerr
				break
			}
			select {
			case <-ctx.Done():
				err = ctx.Err()
			case records <- r:
			}
			if err != nil {
				break
			}
			doc = nil
		}
		if err == nil {
			err = iter.Err()
		}
		if err != nil {
			errs <- err
		}
		close(errs)
		close(records)
	}()
	return records, errs
}

/*
ReadAll reads every record in the store into a slice.
*/
func (s *Store) ReadAll(ctx context.Context) ([]record.Record, error) {
	var records []record.Record
	count, err := s.Count(ctx)
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
	return s.recordsCollection().Count()
}

/*
CountCategories returns a map from category to the number of records
labeled with it, aggregated on the database.
*/
func (s *Store) CountCategories(ctx context.Context) (map[string]int, error) {
	iter := s.recordsCollection().Pipe([]bson.M{{"$group": bson.M{"_id": fmt.Sprintf("$%s", s.categoryAttribute), "count": bson.M{"$sum": 1}}}}).Iter()
	defer iter.Close()
	var doc bson.M
	result := make(map[string]int)
	for iter.Next(&doc) {
		count, ok := doc["count"].(int)
		if !ok {
			return nil, fmt.Errorf("counting categories: mongo aggregation query returned a %T instead of an int as count", doc["count"])
		}
		result[fmt.Sprintf("%v", doc["_id"])] = count
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) newRecord(doc bson.M) (record.Record, error) {
	category, ok := doc[s.categoryAttribute].(string)
	if !ok {
		return nil, fmt.Errorf("reading record %v: missing or non-string category field %s", doc["_id"], s.categoryAttribute)
	}
	attributeValues := make(map[string]interface{})
	for _, a := range s.attributes {
		v, ok := doc[a.Name()]
		if !ok {
			continue
		}
		if ok, err := a.Valid(v); !ok {
			return nil, fmt.Errorf("reading record %v: %v", doc["_id"], err)
		}
		attributeValues[a.Name()] = v
	}
	return record.New(attributeValues, category), nil
}

func (s *Store) ensureIndexes() error {
	names := make([]string, 0, len(s.attributes)+1)
	for _, a := range s.attributes {
		if a.Name() == s.categoryAttribute {
			return fmt.Errorf("invalid attribute name %q: collides with the category field", a.Name())
		}
		names = append(names, a.Name())
	}
	names = append(names, s.categoryAttribute)
	for _, name := range names {
		if name == "_id" {
			return fmt.Errorf("invalid attribute name %q: reserved collection field", "_id")
		}
		if strings.ContainsAny(name, ".$") {
			return fmt.Errorf("invalid attribute name %q: contains reserved characters %q or %q", name, ".", "$")
		}
		index := mgo.Index{
			Key:        []string{name},
			Background: true,
			Sparse:     true,
		}
		err := s.recordsCollection().EnsureIndex(index)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) recordsCollection() *mgo.Collection {
	return s.session.DB("").C(recordsCollectionName)
}
