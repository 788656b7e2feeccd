package sqlrecord

import "context"

/*
Adapter is an interface providing the methods needed to implement a
record Store with an SQL database backend. Implementations translate
the operations into the SQL dialect of their backend and carry the
driver import.
*/
type Adapter interface {
	// ColumnName translates an attribute name into the column name
	// representing it, or returns an error if the attribute name
	// cannot be used on the backend.
	ColumnName(attributeName string) (string, error)
	// CreateRecordTable ensures the records table exists with a text
	// column per discrete attribute and category, and a numeric column
	// per continuous attribute.
	CreateRecordTable(ctx context.Context, discreteColumns, continuousColumns []string) error
	// AddRecords inserts the given raw records, maps from column name
	// to a string (discrete columns), float64 (continuous columns) or
	// nil (undefined) value. It returns the number of records inserted.
	AddRecords(ctx context.Context, rawRecords []map[string]interface{}, discreteColumns, continuousColumns []string) (int, error)
	// IterateOnRecords scans the records table and calls the lambda
	// with each raw record and its index, stopping when the lambda
	// returns false.
	IterateOnRecords(ctx context.Context, discreteColumns, continuousColumns []string, lambda func(int, map[string]interface{}) (bool, error)) error
	// CountRecords returns the number of rows in the records table.
	CountRecords(ctx context.Context) (int, error)
}
