package rowmap

import "reflect"

// slot caches the records of at most one result set.
// Storing a different result set replaces the previous entry; entries are never merged.
type slot struct {
	rows    Rows     // the remembered result set
	records []Record // nil if the result set had no rows
	filled  bool     // records were read from rows
}

// bind remembers rows without reading them.
func (s *slot) bind(rows Rows) {
	s.rows, s.records, s.filled = rows, nil, false
}

func (s *slot) lookup(rows Rows) ([]Record, bool) {
	if !s.filled || !sameRows(s.rows, rows) {
		return nil, false
	}
	return s.records, true
}

func (s *slot) store(rows Rows, records []Record) {
	s.rows, s.records, s.filled = rows, records, true
}

// sameRows reports whether a and b are the same result set.
// Only reference implementations, like *sql.Rows, can be the same: they compare by address.
// Value implementations are never the same, even when their contents are equal.
func sameRows(a, b Rows) bool {
	if a == nil || b == nil {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Chan, reflect.Map:
		return va.Pointer() == vb.Pointer()
	default:
		// func values don't have an identity either, closures share their code pointer
		return false
	}
}
