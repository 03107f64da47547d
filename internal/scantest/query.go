// Package scantest provides an in-memory result set for tests.
package scantest

import (
	"database/sql"
	"errors"
	"fmt"
)

// Rows is a forward-only result set over fixed values. It counts calls so tests
// can check that a result set was (or wasn't) read.
type Rows struct {
	columns []string
	values  [][]any
	i       int
	err     error

	// ScanErr, if set, is returned by Scan for row ScanErrAt (1-based).
	ScanErr   error
	ScanErrAt int

	// ColumnsErr, if set, is returned by Columns.
	ColumnsErr error

	NextCalls    int
	ColumnsCalls int
	closed       bool
}

var (
	errRowsClosed = errors.New("scantest: Rows are closed")
	errNoRow      = errors.New("scantest: Scan called without calling Next")
)

// UserColumns and UserValues describe a small users table.
var (
	UserColumns = []string{"id", "name"}
	UserValues  = [][]any{
		{int64(1), []byte("alice")},
		{int64(2), []byte("bob")},
	}
)

// NewRows returns Rows over values. Every row must have len(columns) values.
func NewRows(columns []string, values ...[]any) *Rows {
	return &Rows{
		columns: columns,
		values:  values,
	}
}

// NewUsers returns Rows over [UserColumns] and [UserValues].
func NewUsers() *Rows {
	return NewRows(UserColumns, UserValues...)
}

func (r *Rows) Columns() ([]string, error) {
	r.ColumnsCalls++
	if r.ColumnsErr != nil {
		return nil, r.ColumnsErr
	}
	if r.closed {
		return nil, errRowsClosed
	}
	return r.columns, nil
}

func (r *Rows) Err() error {
	return r.err
}

func (r *Rows) SetErr(v error) {
	r.err = v
}

func (r *Rows) Close() error {
	r.closed = true
	return nil
}

// Closed reports whether Close was called.
func (r *Rows) Closed() bool {
	return r.closed
}

func (r *Rows) Next() bool {
	r.NextCalls++
	if r.err != nil || r.closed {
		return false
	}
	if r.i >= len(r.values) {
		return false
	}
	r.i++
	return true
}

func (r *Rows) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if r.closed {
		return errRowsClosed
	}
	if r.i == 0 {
		return errNoRow
	}
	if r.ScanErr != nil && r.ScanErrAt == r.i {
		return r.ScanErr
	}
	row := r.values[r.i-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scantest: invalid Scan, need %d arguments", len(row))
	}
	for i, v := range row {
		scanner, ok := dest[i].(sql.Scanner)
		if !ok {
			return fmt.Errorf("scantest: scan %s: %T is not a sql.Scanner", r.columns[i], dest[i])
		}
		if err := scanner.Scan(v); err != nil {
			return fmt.Errorf("scantest: scan %s: %w", r.columns[i], err)
		}
	}
	return nil
}
