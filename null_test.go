package rowmap_test

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/semrekkers/rowmap"
	"github.com/semrekkers/rowmap/internal/mocks"

	"github.com/golang/mock/gomock"
)

const testValue = "This is a test value"

func TestNewNull(t *testing.T) {
	v := rowmap.NewNull(testValue)

	if !v.Valid {
		t.Error("v.Valid != true")
	}
	if v.Some != testValue {
		t.Error("v.Some != <testValue>")
	}
}

func TestNullSet(t *testing.T) {
	var v rowmap.Null[string]

	v.Set(testValue)

	if !v.Valid {
		t.Error("v.Valid != true")
	}
	if v.Some != testValue {
		t.Error("v.Some != <testValue>")
	}
}

func TestNullInvalidate(t *testing.T) {
	v := rowmap.NewNull(testValue)

	v.Invalidate()

	if v.Valid {
		t.Error("v.Valid != false")
	}
	if v.Some != "" {
		t.Error("v.Some != <zero>")
	}
}

func TestNullPtr(t *testing.T) {
	var v rowmap.Null[string]

	invalidPtr := v.Ptr()
	v.Set(testValue)
	ptr := v.Ptr()

	if invalidPtr != nil {
		t.Error("invalidPtr != nil")
	}
	if *ptr != testValue {
		t.Error("*v.Ptr() != <testValue>")
	}
}

func TestNullScan(t *testing.T) {
	var v rowmap.Null[string]

	err := v.Scan(testValue)

	if err != nil {
		t.Error("v.Scan(...):", err)
	}
	if !v.Valid {
		t.Error("v.Valid != true")
	}
	if v.Some != testValue {
		t.Error("v.Some != <testValue>")
	}
}

func TestNullScanScanner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	scanner := mocks.NewMockScanner(ctrl)
	scanner.EXPECT().
		Scan(testValue).
		Times(1).
		Return(nil)
	v := rowmap.NewNull(struct {
		*mocks.MockScanner
	}{scanner})

	err := v.Scan(testValue)

	if err != nil {
		t.Error("v.Scan(...):", err)
	}
	if !v.Valid {
		t.Error("v.Valid != true")
	}
}

func TestNullValue(t *testing.T) {
	v := rowmap.NewNull(testValue)

	x, err := v.Value()

	if err != nil {
		t.Error("v.Value():", err)
	}
	if x != testValue {
		t.Error("x != <testValue>")
	}
}

func TestNullMarshalJSON(t *testing.T) {
	tests := []struct {
		input  rowmap.Null[string]
		expect string
	}{
		{rowmap.Null[string]{}, `null`},
		{rowmap.NewNull(""), `""`},
		{rowmap.NewNull("Test value"), `"Test value"`},
	}

	for i, tc := range tests {
		t.Run(fmt.Sprintf("Case_%d", i), func(t *testing.T) {
			out, err := tc.input.MarshalJSON()

			if err != nil {
				t.Error("input.MarshalJSON():", err)
			}
			if got := string(out); got != tc.expect {
				t.Errorf("expected: %q, got: %q", tc.expect, got)
			}
		})
	}
}

func TestNullUnmarshalJSON(t *testing.T) {
	tests := []struct {
		input  string
		expect rowmap.Null[string]
	}{
		{`null`, rowmap.Null[string]{}},
		{`""`, rowmap.NewNull("")},
		{`"Test value"`, rowmap.NewNull("Test value")},
	}

	for i, tc := range tests {
		t.Run(fmt.Sprintf("Case_%d", i), func(t *testing.T) {
			var v rowmap.Null[string]

			err := v.UnmarshalJSON([]byte(tc.input))

			if err != nil {
				t.Error("v.UnmarshalJSON(...):", err)
			}
			if v != tc.expect {
				t.Errorf("expected: %v, got: %v", tc.expect, v)
			}
		})
	}
}

type textValuer struct {
	v   any
	err error
}

func (tv textValuer) Value() (driver.Value, error) {
	return tv.v, tv.err
}

func TestNullScanText(t *testing.T) {
	tests := []struct {
		input  any
		expect rowmap.Null[string]
	}{
		{nil, rowmap.Null[string]{}},
		{"", rowmap.NewNull("")},
		{"plain", rowmap.NewNull("plain")},
		{[]byte("bytes"), rowmap.NewNull("bytes")},
		{sql.RawBytes("raw"), rowmap.NewNull("raw")},
		{int64(1146), rowmap.NewNull("1146")},
		{int64(-1), rowmap.NewNull("-1")},
		{float64(0.25), rowmap.NewNull("0.25")},
		{false, rowmap.NewNull("false")},
		{true, rowmap.NewNull("true")},
		{int(5), rowmap.NewNull("5")},
		{int32(-3), rowmap.NewNull("-3")},
		{uint64(18446744073709551615), rowmap.NewNull("18446744073709551615")},
		{float32(0.5), rowmap.NewNull("0.5")},
		{float64(1e21), rowmap.NewNull("1e+21")},
		{[]byte{}, rowmap.NewNull("")},
		{time.Date(2023, 10, 10, 13, 14, 21, 0, time.FixedZone("CEST", 2*60*60)), rowmap.NewNull("2023-10-10T13:14:21+02:00")},
		{[]int{1, 2}, rowmap.NewNull("[1 2]")},
		{time.Date(2023, 10, 10, 13, 14, 21, 0, time.UTC), rowmap.NewNull("2023-10-10T13:14:21Z")},
		{textValuer{v: "valued"}, rowmap.NewNull("valued")},
		{textValuer{v: nil}, rowmap.Null[string]{}},
	}

	for i, tc := range tests {
		t.Run(fmt.Sprintf("Case_%d", i), func(t *testing.T) {
			v := rowmap.NewNull("stale")

			err := v.Scan(tc.input)

			if err != nil {
				t.Error("v.Scan(...):", err)
			}
			if v != tc.expect {
				t.Errorf("expected: %v, got: %v", tc.expect, v)
			}
		})
	}
}

func TestNullScanTextValuerError(t *testing.T) {
	var (
		errValue = errors.New("no value")
		v        = rowmap.NewNull("stale")
	)

	err := v.Scan(textValuer{err: errValue})

	if err != errValue {
		t.Errorf("err{%v} != errValue", err)
	}
	if v.Valid {
		t.Error("v.Valid != false")
	}
	if v.Some != "" {
		t.Errorf("v.Some{%q} != \"\"", v.Some)
	}
}

func TestNullScanUnsupported(t *testing.T) {
	var v rowmap.Null[int64]

	err := v.Scan("not a number")

	if err == nil || err.Error() != "rowmap.Null: converting value type string to int64 is unsupported" {
		t.Errorf("err{%v} != `rowmap.Null: converting value type ...`", err)
	}
}

func ExampleNull() {
	var x rowmap.Null[string]
	fmt.Println("Zero value is null:", x)
	x.Set("My value")
	fmt.Println("Now x is set to the value:", x)
	fmt.Println("And x.Valid is true:", x.Valid)
	// Output:
	// Zero value is null: rowmap.Null[string]{<null>}
	// Now x is set to the value: rowmap.Null[string]{My value}
	// And x.Valid is true: true
}
