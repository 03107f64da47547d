// Package rowmap turns SQL query results into generic, read-only records keyed by column name.
// It is meant for applications that run many read-only queries and want direct access to row data
// without declaring a struct (or an ORM model) for every result shape.
//
// Every column value is exposed as text. A [Materializer] reads a result set once and remembers
// the records it produced for that result set, so asking again for the same rows does not rescan them.
package rowmap

import (
	"errors"
	"fmt"
)

// Rows represents the result set of a database query.
// It's implemented by [sql.Rows].
//
// Rows is owned by the caller: this package advances it but never closes or rewinds it.
type Rows interface {
	Columns() ([]string, error)
	Err() error
	Next() bool
	Scan(dest ...any) error
}

// AllRows is the block size meaning "every row of the result set".
const AllRows = -1

// ErrNoData is returned by [Materializer.Seq] and [Materializer.All] when there is nothing to iterate,
// either because no rows were given or because the result set is empty.
var ErrNoData = errors.New("rowmap: no data")

// An AccessError reports a failure of the underlying result set while reading column metadata or row values.
// Err is the error returned by the result set, unchanged.
type AccessError struct {
	Op  string // "columns", "scan" or "next"
	Err error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("rowmap: %s: %v", e.Op, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

// Materialize reads all rows into records without keeping a cache.
// It returns nil (and no error) if rows is nil or yields no rows. See [Materializer.Materialize].
func Materialize(rows Rows) ([]Record, error) {
	if rows == nil {
		return nil, nil
	}
	return readRecords(rows)
}
