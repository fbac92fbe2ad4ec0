package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ValueType defines the storage type for a cell
type ValueType string

const (
	ValueTypeString  ValueType = "string"
	ValueTypeNumber  ValueType = "number"
	ValueTypeMissing ValueType = "missing"
)

// Value is a typed cell: a string, a number, or a missing marker
type Value struct {
	Type       ValueType
	StringVal  *string
	NumericVal *float64
}

// NewString creates a string value
func NewString(s string) Value {
	return Value{Type: ValueTypeString, StringVal: &s}
}

// NewNumber creates a numeric value
func NewNumber(n float64) Value {
	return Value{Type: ValueTypeNumber, NumericVal: &n}
}

// NewMissing creates a missing value
func NewMissing() Value {
	return Value{Type: ValueTypeMissing}
}

// IsMissing returns true for missing markers, including the zero Value
func (v Value) IsMissing() bool {
	return v.Type == ValueTypeMissing || v.Type == ""
}

// IsNumber returns true if the value holds a number
func (v Value) IsNumber() bool {
	return v.Type == ValueTypeNumber && v.NumericVal != nil
}

// IsString returns true if the value holds a string
func (v Value) IsString() bool {
	return v.Type == ValueTypeString && v.StringVal != nil
}

// AsFloat64 returns the numeric value, or 0 if not numeric
func (v Value) AsFloat64() float64 {
	if v.NumericVal != nil {
		return *v.NumericVal
	}
	return 0
}

// String renders the value; numbers use the shortest exact form
func (v Value) String() string {
	switch {
	case v.IsString():
		return *v.StringVal
	case v.IsNumber():
		return strconv.FormatFloat(*v.NumericVal, 'f', -1, 64)
	}
	return "<missing>"
}

// MarshalJSON emits the bare cell: a string, a number, or null
func (v Value) MarshalJSON() ([]byte, error) {
	switch {
	case v.IsString():
		return json.Marshal(*v.StringVal)
	case v.IsNumber():
		return json.Marshal(*v.NumericVal)
	}
	return []byte("null"), nil
}

// UnmarshalJSON reads what MarshalJSON writes: a string, a number, or null
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = NewMissing()
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = NewString(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("cell must be a string, a number or null: %w", err)
	}
	*v = NewNumber(n)
	return nil
}

// Row is one data row keyed by column name
type Row struct {
	Index int              // 0-based position among data rows
	Cells map[string]Value // every header has an entry
}

// Get returns the cell for a column; unknown columns read as missing
func (r Row) Get(column string) Value {
	if v, ok := r.Cells[column]; ok {
		return v
	}
	return NewMissing()
}

// RecordSet is an ordered table loaded from one source
type RecordSet struct {
	Source  string   // path the table was loaded from
	Headers []string // column order
	Rows    []Row
}

// Len returns the number of data rows
func (rs *RecordSet) Len() int {
	return len(rs.Rows)
}

// Column returns every value of one column in row order
func (rs *RecordSet) Column(name string) []Value {
	values := make([]Value, len(rs.Rows))
	for i, row := range rs.Rows {
		values[i] = row.Get(name)
	}
	return values
}

// Head returns the first n rows
func (rs *RecordSet) Head(n int) []Row {
	if n < 0 {
		n = 0
	}
	if n > len(rs.Rows) {
		n = len(rs.Rows)
	}
	return rs.Rows[:n]
}

// Records returns the rows as ordered maps suitable for encoding
func (rs *RecordSet) Records() []map[string]Value {
	out := make([]map[string]Value, len(rs.Rows))
	for i, row := range rs.Rows {
		m := make(map[string]Value, len(rs.Headers))
		for _, h := range rs.Headers {
			m[h] = row.Get(h)
		}
		out[i] = m
	}
	return out
}
