package rowmap

import (
	"bytes"
	"encoding/json"
	"iter"
	"strings"
)

// layout maps the column labels of one result set to value positions.
// It's built once per result set and shared by all of its records.
type layout struct {
	columns []string       // unique labels, in column order
	index   map[string]int // label -> position in columns
	dest    []int          // result set column position -> position in columns
}

func newLayout(columns []string) *layout {
	l := &layout{
		columns: make([]string, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
		dest:    make([]int, len(columns)),
	}
	for i, column := range columns {
		x, ok := l.index[column]
		if !ok {
			// a repeated label keeps its first position, the last value wins
			x = len(l.columns)
			l.columns = append(l.columns, column)
			l.index[column] = x
		}
		l.dest[i] = x
	}
	return l
}

// A Record is one row of a result set: an immutable mapping from column label to text value.
// Labels are unique and enumerate in the column order of the result set.
// A SQL NULL is kept as an invalid [Null] value.
//
// The zero Record has no columns.
type Record struct {
	l      *layout
	values []Null[string]
}

// Len returns the number of columns in r.
func (r Record) Len() int {
	return len(r.values)
}

// Columns returns a copy of the column labels of r.
func (r Record) Columns() []string {
	if r.l == nil {
		return nil
	}
	return append([]string(nil), r.l.columns...)
}

// Value returns the value of column, and whether r has that column.
func (r Record) Value(column string) (Null[string], bool) {
	if r.l == nil {
		return Null[string]{}, false
	}
	x, ok := r.l.index[column]
	if !ok {
		return Null[string]{}, false
	}
	return r.values[x], true
}

// Lookup returns the text of column. ok is false if r has no such column or its value is NULL.
func (r Record) Lookup(column string) (text string, ok bool) {
	v, _ := r.Value(column)
	return v.Some, v.Valid
}

// Get returns the text of column, or the empty string if r has no such column or its value is NULL.
func (r Record) Get(column string) string {
	v, _ := r.Value(column)
	return v.Some
}

// IsNull reports whether column holds a SQL NULL. It's false for unknown columns.
func (r Record) IsNull(column string) bool {
	v, ok := r.Value(column)
	return ok && !v.Valid
}

// All returns an iterator over the columns and values of r, in column order.
func (r Record) All() iter.Seq2[string, Null[string]] {
	return func(yield func(string, Null[string]) bool) {
		for i, v := range r.values {
			if !yield(r.l.columns[i], v) {
				return
			}
		}
	}
}

// Map returns a copy of r as a plain map. NULL values become empty strings.
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(r.values))
	for column, v := range r.All() {
		m[column] = v.Some
	}
	return m
}

// MarshalJSON implements [json.Marshaler].
// The record is encoded as an object with keys in column order; NULL values are encoded as null.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range r.values {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(r.l.columns[i])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := v.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r Record) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, v := range r.values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(r.l.columns[i])
		sb.WriteByte(':')
		if v.Valid {
			sb.WriteString(v.Some)
		} else {
			sb.WriteString("<null>")
		}
	}
	sb.WriteByte('}')
	return sb.String()
}
