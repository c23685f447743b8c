// Package chart holds the encoding state of a chart, the reducer that merges
// control events into it and the compiler that turns it into a declarative
// chart specification.
package chart

import (
	"fmt"

	"github.com/yildizm/ChartShelf/internal/vocab"
)

// MarkRow is the row index of events that target the mark instead of an
// encoding row.
const MarkRow = -1

// EncodingRow maps one data column to one visual channel.
type EncodingRow struct {
	Channel string
	// Field is a column name or vocab.Wildcard; empty means no column yet.
	Field string
	// Options holds only the advanced options the user has touched.
	Options map[string]any
}

// HasField reports whether a column has been chosen for the row.
func (r *EncodingRow) HasField() bool {
	return r.Field != ""
}

// MarkSpec is the chosen mark and its mark-level options.
type MarkSpec struct {
	Mark    string
	Options map[string]any
}

// ChartState is the full selection of one session: a mark and an ordered
// list of encoding rows. Row order is creation order.
type ChartState struct {
	Mark      MarkSpec
	Encodings []*EncodingRow

	columns []string
}

// UpdateEvent is one control interaction. Row is MarkRow for mark-level
// events. A nil Value means "unset".
type UpdateEvent struct {
	Row   int
	Title OptionTitle
	Value any
}

// NewChartState creates a state with n empty rows. Row i starts on the
// channel at position i. columns limits the fields the reducer accepts; a
// nil slice accepts any field.
func NewChartState(columns []string, n int) *ChartState {
	s := &ChartState{
		Mark: MarkSpec{
			Mark:    vocab.DefaultMark,
			Options: make(map[string]any),
		},
	}
	if columns != nil {
		s.columns = append([]string(nil), columns...)
	}
	for i := 0; i < n; i++ {
		s.AddRow()
	}
	return s
}

// AddRow appends an empty row and returns its index.
func (s *ChartState) AddRow() int {
	idx := len(s.Encodings)
	s.Encodings = append(s.Encodings, &EncodingRow{
		Channel: vocab.ChannelForRow(idx),
		Options: make(map[string]any),
	})
	return idx
}

// Row returns the row at index i.
func (s *ChartState) Row(i int) (*EncodingRow, error) {
	if i < 0 || i >= len(s.Encodings) {
		return nil, fmt.Errorf("row %d of %d: %w", i, len(s.Encodings), ErrRowOutOfRange)
	}
	return s.Encodings[i], nil
}

// Columns returns the dataset columns the state accepts as fields.
func (s *ChartState) Columns() []string {
	return append([]string(nil), s.columns...)
}

// OptionsFor returns the current option document of a row, or of the mark
// when row is MarkRow.
func (s *ChartState) OptionsFor(row int) (map[string]any, error) {
	if row == MarkRow {
		return s.Mark.Options, nil
	}
	r, err := s.Row(row)
	if err != nil {
		return nil, err
	}
	return r.Options, nil
}

// DuplicateChannels lists channels that more than one complete row is
// assigned to. Compile keeps the last of them.
func (s *ChartState) DuplicateChannels() []string {
	count := make(map[string]int)
	var dups []string
	for _, r := range s.Encodings {
		if !r.HasField() {
			continue
		}
		count[r.Channel]++
		if count[r.Channel] == 2 {
			dups = append(dups, r.Channel)
		}
	}
	return dups
}

func (s *ChartState) knowsColumn(name string) bool {
	if s.columns == nil || name == vocab.Wildcard {
		return true
	}
	return vocab.Contains(s.columns, name)
}
