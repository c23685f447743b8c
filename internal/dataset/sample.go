package dataset

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed samples/*.csv
var samples embed.FS

// SampleNames lists the built-in datasets.
func SampleNames() []string {
	entries, err := samples.ReadDir("samples")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".csv"))
	}
	sort.Strings(names)
	return names
}

// Sample loads a built-in dataset by name, e.g. "cars".
func Sample(name string) (*Frame, error) {
	data, err := samples.ReadFile(path.Join("samples", name+".csv"))
	if err != nil {
		return nil, fmt.Errorf("unknown sample %q (available: %s)", name, strings.Join(SampleNames(), ", "))
	}
	return ReadCSV(bytes.NewReader(data), ',')
}

// DropMissing returns the rows of t that have a value in every one of the
// given columns.
func DropMissing(t Table, columns ...string) (*Frame, error) {
	all := t.Columns()
	cols := make(map[string][]string, len(all))
	for _, c := range all {
		cols[c], _ = t.Strings(c)
	}
	for _, c := range columns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("%q: %w", c, ErrNoColumn)
		}
	}

	var rows [][]string
	for i := 0; i < t.Len(); i++ {
		keep := true
		for _, c := range columns {
			if strings.TrimSpace(cols[c][i]) == "" {
				keep = false
				break
			}
		}
		if !keep {
			continue
		}
		row := make([]string, len(all))
		for j, c := range all {
			row[j] = cols[c][i]
		}
		rows = append(rows, row)
	}
	return NewFrame(all, rows)
}
