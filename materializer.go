package rowmap

import (
	"iter"
	"slices"
)

// A Materializer reads result sets into records and remembers the records of the last result set it read.
// Asking again for the same result set returns the remembered records without touching the rows;
// asking for a different one replaces them.
//
// A Materializer is not safe for concurrent use by multiple goroutines: use one per goroutine or
// guard it with a lock. The zero value is ready to use.
type Materializer struct {
	c slot

	// blockSize is reserved for reading result sets in blocks of rows. It's recorded but
	// currently has no effect, every row is read.
	blockSize int
}

// New returns a Materializer without a remembered result set.
func New() *Materializer {
	return &Materializer{blockSize: AllRows}
}

// With returns a Materializer that remembers rows, without reading them yet.
// Call [Materializer.List] or [Materializer.All] to read them.
//
//	records, err := rowmap.With(rows).List()
func With(rows Rows) *Materializer {
	return WithBlockSize(rows, AllRows)
}

// WithBlockSize is like [With] but also records a block size, the number of rows to read at a time.
// Any n < 1 means [AllRows].
//
// The block size is reserved for future use: every call still reads all rows.
func WithBlockSize(rows Rows, n int) *Materializer {
	if n < 1 {
		n = AllRows
	}
	m := &Materializer{blockSize: n}
	m.c.bind(rows)
	return m
}

// BlockSize returns the block size m was created with, or [AllRows].
func (m *Materializer) BlockSize() int {
	if m.blockSize < 1 {
		return AllRows
	}
	return m.blockSize
}

// Cached reports whether m holds the records of a result set.
func (m *Materializer) Cached() bool {
	return m.c.filled
}

// Materialize reads all rows into records, one per row, in row order.
//
// If rows is the result set m remembers, the remembered records are returned and rows is not read again.
// Otherwise rows is read until exhausted and becomes the remembered result set. Rows is never closed.
//
// Materialize returns nil (and no error) if rows is nil or yields no rows.
// Any error of the result set is returned as an [*AccessError]; it leaves the remembered result set untouched.
func (m *Materializer) Materialize(rows Rows) ([]Record, error) {
	if rows == nil {
		return nil, nil
	}
	if records, ok := m.c.lookup(rows); ok {
		return records, nil
	}
	records, err := readRecords(rows)
	if err != nil {
		return nil, err
	}
	m.c.store(rows, records)
	return records, nil
}

// List materializes the remembered result set. It returns nil if there is none.
func (m *Materializer) List() ([]Record, error) {
	return m.Materialize(m.c.rows)
}

// Seq materializes rows and returns an iterator over the records.
// It returns [ErrNoData] where Materialize would return nil.
func (m *Materializer) Seq(rows Rows) (iter.Seq[Record], error) {
	records, err := m.Materialize(rows)
	if err != nil {
		return nil, err
	}
	if records == nil {
		return nil, ErrNoData
	}
	return slices.Values(records), nil
}

// All is like [Materializer.Seq] for the remembered result set.
func (m *Materializer) All() (iter.Seq[Record], error) {
	return m.Seq(m.c.rows)
}

func readRecords(rows Rows) ([]Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, &AccessError{Op: "columns", Err: err}
	}
	l := newLayout(columns)
	row := make([]Null[string], len(columns))
	scanValues := make([]any, len(columns))
	for i := range row {
		scanValues[i] = &row[i]
	}
	var records []Record
	for rows.Next() {
		if err := rows.Scan(scanValues...); err != nil {
			return nil, &AccessError{Op: "scan", Err: err}
		}
		values := make([]Null[string], len(l.columns))
		for i, v := range row {
			values[l.dest[i]] = v
		}
		records = append(records, Record{l: l, values: values})
		clear(row)
	}
	if err := rows.Err(); err != nil {
		return nil, &AccessError{Op: "next", Err: err}
	}
	return records, nil
}
