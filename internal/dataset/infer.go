package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aclements/go-moremath/stats"
)

var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02", "2006/01/02"}

// InferType guesses the field type of a column: quantitative when every
// non-empty cell is a number, temporal when every one is a date, nominal
// otherwise. Empty columns are nominal.
func InferType(t Table, column string) (string, error) {
	cells, err := t.Strings(column)
	if err != nil {
		return "", err
	}
	numeric, temporal, n := true, true, 0
	for _, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		n++
		if numeric {
			if _, err := strconv.ParseFloat(c, 64); err != nil {
				numeric = false
			}
		}
		if temporal {
			if _, ok := parseTime(c); !ok {
				temporal = false
			}
		}
		if !numeric && !temporal {
			break
		}
	}
	switch {
	case n == 0:
		return "nominal", nil
	case numeric:
		return "quantitative", nil
	case temporal:
		return "temporal", nil
	default:
		return "nominal", nil
	}
}

// Floats parses a column as numbers. Temporal cells become Unix seconds.
// Empty cells are an error.
func Floats(t Table, column string) ([]float64, error) {
	cells, err := t.Strings(column)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(cells))
	for i, c := range cells {
		c = strings.TrimSpace(c)
		if v, err := strconv.ParseFloat(c, 64); err == nil {
			out[i] = v
			continue
		}
		if ts, ok := parseTime(c); ok {
			out[i] = float64(ts.Unix())
			continue
		}
		return nil, fmt.Errorf("column %q row %d: %q is not a number", column, i+1, c)
	}
	return out, nil
}

// Records returns the table as a list of objects. Quantitative columns
// hold float64 values, every other column holds strings; empty cells are
// nil.
func Records(t Table) ([]map[string]any, error) {
	columns := t.Columns()
	numeric := make(map[string]bool, len(columns))
	cols := make(map[string][]string, len(columns))
	for _, c := range columns {
		typ, err := InferType(t, c)
		if err != nil {
			return nil, err
		}
		numeric[c] = typ == "quantitative"
		cols[c], _ = t.Strings(c)
	}

	out := make([]map[string]any, t.Len())
	for i := range out {
		rec := make(map[string]any, len(columns))
		for _, c := range columns {
			cell := cols[c][i]
			switch {
			case strings.TrimSpace(cell) == "":
				rec[c] = nil
			case numeric[c]:
				v, _ := strconv.ParseFloat(strings.TrimSpace(cell), 64)
				rec[c] = v
			default:
				rec[c] = cell
			}
		}
		out[i] = rec
	}
	return out, nil
}

// Summary describes one column.
type Summary struct {
	Column   string  `json:"column" yaml:"column"`
	Type     string  `json:"type" yaml:"type"`
	Count    int     `json:"count" yaml:"count"`
	Missing  int     `json:"missing" yaml:"missing"`
	Distinct int     `json:"distinct" yaml:"distinct"`
	Min      float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max      float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Mean     float64 `json:"mean,omitempty" yaml:"mean,omitempty"`
	StdDev   float64 `json:"stddev,omitempty" yaml:"stddev,omitempty"`
}

// Summarize computes a Summary for every column. Numeric statistics are
// only filled for quantitative columns.
func Summarize(t Table) ([]Summary, error) {
	columns := t.Columns()
	out := make([]Summary, 0, len(columns))
	for _, c := range columns {
		s, err := summarizeColumn(t, c)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func summarizeColumn(t Table, column string) (Summary, error) {
	typ, err := InferType(t, column)
	if err != nil {
		return Summary{}, err
	}
	cells, _ := t.Strings(column)

	s := Summary{Column: column, Type: typ}
	distinct := make(map[string]bool)
	var values []float64
	for _, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" {
			s.Missing++
			continue
		}
		s.Count++
		distinct[c] = true
		if typ == "quantitative" {
			v, _ := strconv.ParseFloat(c, 64)
			values = append(values, v)
		}
	}
	s.Distinct = len(distinct)

	if len(values) > 0 {
		s.Min, s.Max = stats.Bounds(values)
		s.Mean = stats.Mean(values)
		if len(values) > 1 {
			s.StdDev = stats.StdDev(values)
		}
	}
	return s, nil
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
