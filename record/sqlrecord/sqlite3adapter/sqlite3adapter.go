/*
Package sqlite3adapter provides an implementation of the Adapter
interface in the sqlrecord package that works over an SQLite3 database
file.
*/
package sqlite3adapter

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/madfrog2018/decision-tree/record/sqlrecord"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

// MaxRecordInsertionsPerStatement is the maximum number of records
// added with a single insert command by the AddRecords method of the
// adapter. Adding more records results in more insert commands.
const MaxRecordInsertionsPerStatement = 10

type adapter struct {
	db *sql.DB
}

/*
New takes a path to an SQLite3 database file and returns an Adapter
that works on the file's database or an error if it fails to open as an
SQLite3 database.
*/
func New(path string) (sqlrecord.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	return &adapter{db}, nil
}

func (a *adapter) ColumnName(attributeName string) (string, error) {
	if attributeName == "id" {
		return "", fmt.Errorf("'%s' is reserved and cannot be used as attribute name", attributeName)
	}
	if strings.ContainsAny(attributeName, `"`) {
		return "", fmt.Errorf(`attribute name '%s' contains invalid character '"'`, attributeName)
	}
	return attributeName, nil
}

func (a *adapter) CreateRecordTable(ctx context.Context, discreteColumns, continuousColumns []string) error {
	var stmtBuffer bytes.Buffer
	stmtBuffer.WriteString(`CREATE TABLE IF NOT EXISTS records (
		id INTEGER PRIMARY KEY AUTOINCREMENT`)
	for _, c := range discreteColumns {
		fmt.Fprintf(&stmtBuffer, `,
		"%s" TEXT`, c)
	}
	for _, c := range continuousColumns {
		fmt.Fprintf(&stmtBuffer, `,
		"%s" REAL`, c)
	}
	stmtBuffer.WriteString(`)`)
	_, err := a.db.ExecContext(ctx, stmtBuffer.String())
	if err != nil {
		return fmt.Errorf("creating records table: %v", err)
	}
	return nil
}

func (a *adapter) AddRecords(ctx context.Context, rawRecords []map[string]interface{}, discreteColumns, continuousColumns []string) (int, error) {
	if len(rawRecords) == 0 {
		return 0, nil
	}
	columns := append(append([]string{}, discreteColumns...), continuousColumns...)
	if len(columns) == 0 {
		return 0, fmt.Errorf("no attributes to store")
	}
	inserted := 0
	for inserted < len(rawRecords) {
		chunkEnd := inserted + MaxRecordInsertionsPerStatement
		if chunkEnd > len(rawRecords) {
			chunkEnd = len(rawRecords)
		}
		chunk := rawRecords[inserted:chunkEnd]
		stmt, values := buildInsertStatement(chunk, columns)
		_, err := a.db.ExecContext(ctx, stmt, values...)
		if err != nil {
			return inserted, fmt.Errorf("inserting records %d to %d: %v", inserted, chunkEnd, err)
		}
		inserted = chunkEnd
	}
	return inserted, nil
}

func (a *adapter) IterateOnRecords(ctx context.Context, discreteColumns, continuousColumns []string, lambda func(int, map[string]interface{}) (bool, error)) error {
	var queryBuffer bytes.Buffer
	queryBuffer.WriteString(`SELECT "`)
	queryBuffer.WriteString(strings.Join(discreteColumns, `", "`))
	if len(discreteColumns) > 0 && len(continuousColumns) > 0 {
		queryBuffer.WriteString(`", "`)
	}
	queryBuffer.WriteString(strings.Join(continuousColumns, `", "`))
	queryBuffer.WriteString(`" FROM records ORDER BY id`)
	rows, err := a.db.QueryContext(ctx, queryBuffer.String())
	if err != nil {
		return err
	}
	defer rows.Close()
	for j := 0; rows.Next(); j++ {
		raw := make(map[string]interface{})
		discreteValues := make([]sql.NullString, len(discreteColumns))
		continuousValues := make([]sql.NullFloat64, len(continuousColumns))
		values := make([]interface{}, 0, len(discreteColumns)+len(continuousColumns))
		for i := range discreteValues {
			values = append(values, &discreteValues[i])
		}
		for i := range continuousValues {
			values = append(values, &continuousValues[i])
		}
		err = rows.Scan(values...)
		if err != nil {
			return err
		}
		for i, c := range discreteColumns {
			if discreteValues[i].Valid {
				raw[c] = discreteValues[i].String
			}
		}
		for i, c := range continuousColumns {
			if continuousValues[i].Valid {
				raw[c] = continuousValues[i].Float64
			}
		}
		ok, err := lambda(j, raw)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return rows.Err()
}

func (a *adapter) CountRecords(ctx context.Context) (int, error) {
	var count int
	err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func buildInsertStatement(rawRecords []map[string]interface{}, columns []string) (string, []interface{}) {
	var stmtBuffer bytes.Buffer
	stmtBuffer.WriteString(`INSERT INTO records ("`)
	stmtBuffer.WriteString(strings.Join(columns, `", "`))
	stmtBuffer.WriteString(`") VALUES `)
	values := make([]interface{}, 0, len(rawRecords)*len(columns))
	for i, raw := range rawRecords {
		if i > 0 {
			stmtBuffer.WriteString(", ")
		}
		stmtBuffer.WriteString("(?")
		for j := 1; j < len(columns); j++ {
			stmtBuffer.WriteString(", ?")
		}
		stmtBuffer.WriteString(")")
		for _, c := range columns {
			values = append(values, raw[c])
		}
	}
	return stmtBuffer.String(), values
}
