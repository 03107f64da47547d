package rowmap

import (
	"bytes"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Null represents a nullable type of T.
// The zero value for Null[T] is its null state (Valid is false).
//
// Record values are Null[string]: a SQL NULL is kept apart from an empty string.
type Null[T any] struct {
	Some  T    // the actual value
	Valid bool // Valid is true if this value is not null
}

// NewNull returns a new nullable type of T, initialized with the given value.
func NewNull[T any](value T) Null[T] {
	return Null[T]{
		Some:  value,
		Valid: true,
	}
}

// Set sets the value.
func (n *Null[T]) Set(value T) {
	n.Some, n.Valid = value, true
}

// Invalidate sets n to its null value.
func (n *Null[T]) Invalidate() {
	var zero T
	n.Some, n.Valid = zero, false
}

// Scan implements [sql.Scanner].
// When T is string, any non-nil driver value is converted to its text form.
func (n *Null[T]) Scan(value any) error {
	if value == nil {
		n.Invalidate()
		return nil
	}
	var ptr any = &n.Some
	if s, ok := ptr.(*string); ok {
		text, ok, err := asText(value)
		if err != nil {
			n.Invalidate()
			return err
		}
		*s, n.Valid = text, ok
	} else if scanner, ok := ptr.(sql.Scanner); ok {
		// *T implements Scanner, use this to scan the value.
		if err := scanner.Scan(value); err != nil {
			return err
		}
		n.Valid = true
	} else if n.Some, n.Valid = value.(T); !n.Valid {
		return fmt.Errorf("rowmap.Null: converting value type %T to %T is unsupported", value, n.Some)
	}
	return nil
}

// Value implements [driver.Valuer].
func (n Null[T]) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	var some any = n.Some
	if valuer, ok := some.(driver.Valuer); ok {
		return valuer.Value()
	}
	return some, nil
}

// Ptr returns a pointer to the value if valid, otherwise nil.
func (n Null[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}
	return &n.Some
}

var nullBytes = []byte("null")

// MarshalJSON implements [json.Marshaler].
func (n Null[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return nullBytes, nil
	}
	return json.Marshal(n.Some)
}

// UnmarshalJSON implements [json.Unmarshaler].
func (n *Null[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, nullBytes) {
		n.Invalidate()
		return nil
	}
	if err := json.Unmarshal(data, &n.Some); err != nil {
		return fmt.Errorf("rowmap.Null: could not unmarshal type %T: %w", n.Some, err)
	}
	n.Valid = true
	return nil
}

func (n Null[T]) String() string {
	if n.Valid {
		return fmt.Sprintf("rowmap.Null[%T]{%[1]v}", n.Some)
	}
	return fmt.Sprintf("rowmap.Null[%T]{<null>}", n.Some)
}

// asText converts a driver value to text. It reports false if the value is NULL.
func asText(value any) (string, bool, error) {
	if valuer, ok := value.(driver.Valuer); ok {
		v, err := valuer.Value()
		if err != nil {
			return "", false, err
		}
		value = v
	}
	if value == nil {
		return "", false, nil
	}
	return formatText(value), true, nil
}

func formatText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case sql.RawBytes:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}
