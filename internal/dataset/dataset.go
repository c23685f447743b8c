// Package dataset provides the tabular data a chart is rendered against:
// a column-oriented Frame, loaders for common file formats and helpers for
// column introspection.
package dataset

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// ErrNoColumn is returned when a column is looked up that the table does
// not have.
var ErrNoColumn = errors.New("no such column")

// InvalidInputError is returned by From for values it cannot treat as a
// table.
type InvalidInputError struct {
	Type   string
	Reason string
}

// Error implements the error interface
func (e *InvalidInputError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid dataset input (%s): %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("invalid dataset input: unsupported type %s", e.Type)
}

// Is matches any *InvalidInputError.
func (e *InvalidInputError) Is(target error) bool {
	_, ok := target.(*InvalidInputError)
	return ok
}

// Table is a fixed, read-only table of string cells.
type Table interface {
	// Columns returns the column names in their original order.
	Columns() []string
	// Len returns the number of rows.
	Len() int
	// Strings returns the cells of one column.
	Strings(column string) ([]string, error)
}

// Frame is the in-memory Table used by every loader.
type Frame struct {
	columns []string
	data    map[string][]string
	n       int
}

// NewFrame builds a frame from a header and rows. Short rows are padded
// with empty cells; long rows are an error.
func NewFrame(columns []string, rows [][]string) (*Frame, error) {
	f := &Frame{
		columns: append([]string(nil), columns...),
		data:    make(map[string][]string, len(columns)),
		n:       len(rows),
	}
	for _, c := range columns {
		if _, dup := f.data[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		f.data[c] = make([]string, len(rows))
	}
	for i, row := range rows {
		if len(row) > len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, header has %d", i+1, len(row), len(columns))
		}
		for j, cell := range row {
			f.data[columns[j]][i] = cell
		}
	}
	return f, nil
}

// Columns implements Table.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

// Len implements Table.
func (f *Frame) Len() int { return f.n }

// Strings implements Table.
func (f *Frame) Strings(column string) ([]string, error) {
	col, ok := f.data[column]
	if !ok {
		return nil, fmt.Errorf("%q: %w", column, ErrNoColumn)
	}
	return col, nil
}

// Head returns a frame holding the first n rows, or f itself when it is
// not longer than n. n <= 0 means no limit.
func (f *Frame) Head(n int) *Frame {
	if n <= 0 || n >= f.n {
		return f
	}
	out := &Frame{columns: f.columns, data: make(map[string][]string, len(f.data)), n: n}
	for k, v := range f.data {
		out.data[k] = v[:n]
	}
	return out
}

// From wraps data as a Table. It accepts a Table, a [][]string whose first
// row is the header, or a slice of records.
func From(data any) (Table, error) {
	switch v := data.(type) {
	case nil:
		return nil, &InvalidInputError{Type: "nil"}
	case Table:
		return v, nil
	case [][]string:
		if len(v) == 0 {
			return nil, &InvalidInputError{Type: "[][]string", Reason: "missing header row"}
		}
		f, err := NewFrame(v[0], v[1:])
		if err != nil {
			return nil, &InvalidInputError{Type: "[][]string", Reason: err.Error()}
		}
		return f, nil
	case []map[string]any:
		return fromRecords(v)
	default:
		return nil, &InvalidInputError{Type: fmt.Sprintf("%T", data)}
	}
}

// fromRecords builds a frame from records. Columns are the union of all
// keys, sorted by name.
func fromRecords(records []map[string]any) (*Frame, error) {
	seen := make(map[string]bool)
	var columns []string
	for _, r := range records {
		for k := range r {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	sort.Strings(columns)

	rows := make([][]string, len(records))
	for i, r := range records {
		row := make([]string, len(columns))
		for j, c := range columns {
			row[j] = formatCell(r[c])
		}
		rows[i] = row
	}
	return NewFrame(columns, rows)
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
