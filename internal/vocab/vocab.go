// Package vocab holds the closed vocabularies of the control panel: encoding
// channels, mark names, field types, aggregates, scale types and the advanced
// options that each channel or mark exposes.
package vocab

import (
	"fmt"
	"sort"
)

// Sentinel values shared by the controls and the reducer.
const (
	// AutoDetect asks the renderer to infer a field type. It is never
	// stored; the reducer drops the type option instead.
	AutoDetect = "auto detect"

	// Wildcard selects "all columns" where a renderer supports it.
	Wildcard = "*"

	// DefaultMark is the mark a new chart starts with.
	DefaultMark = "mark_point"
)

// Advanced option names.
const (
	OptType                   = "type"
	OptBin                    = "bin"
	OptAggregate              = "aggregate"
	OptZero                   = "zero"
	OptScale                  = "scale"
	OptText                   = "text"
	OptColor                  = "color"
	OptApplyColorToBackground = "applyColorToBackground"
	OptShortTimeLabels        = "shortTimeLabels"
)

// Channels are listed by display priority: x, y and color first, the rest
// alphabetically.
var channels = []string{"x", "y", "color", "column", "opacity", "row", "shape", "size", "text"}

var marks = []string{
	"mark_point", "mark_line", "mark_bar", "mark_tick", "mark_text",
	"mark_square", "mark_rule", "mark_circle", "mark_area",
}

var fieldTypes = []string{"quantitative", "ordinal", "nominal", "temporal"}

var aggregates = []string{
	"mean", "min", "max", "median", "average", "sum", "count", "distinct",
	"variance", "stdev", "q1", "q3", "argmin", "argmax",
}

var scaleTypes = []string{"linear", "log", "pow", "sqrt", "symlog", "time", "utc", "ordinal", "band", "point"}

var markColors = []string{"black", "steelblue", "orange", "red", "green", "purple", "gray"}

var (
	channelOptions = []string{OptType, OptBin, OptAggregate}
	markOptions    = []string{OptColor, OptApplyColorToBackground, OptShortTimeLabels}
)

// Channels returns the encoding channels in display order.
func Channels() []string { return clone(channels) }

// Marks returns the mark names.
func Marks() []string { return clone(marks) }

// FieldTypes returns the field types a renderer understands.
func FieldTypes() []string { return clone(fieldTypes) }

// Aggregates returns the aggregate function names.
func Aggregates() []string { return clone(aggregates) }

// ScaleTypes returns the scale type names.
func ScaleTypes() []string { return clone(scaleTypes) }

// MarkColors returns the named colors offered for the mark color option.
func MarkColors() []string { return clone(markColors) }

// IsChannel reports whether name is an encoding channel.
func IsChannel(name string) bool { return Contains(channels, name) }

// IsMark reports whether name is a mark.
func IsMark(name string) bool { return Contains(marks, name) }

// AdvancedOptionsFor returns the advanced options for a channel or a mark.
func AdvancedOptionsFor(name string) ([]string, error) {
	switch {
	case IsMark(name):
		return clone(markOptions), nil
	case IsChannel(name):
		opts := clone(channelOptions)
		switch name {
		case "x", "y":
			opts = append(opts, OptZero, OptScale)
		case "text":
			opts = append(opts, OptText)
		}
		return opts, nil
	default:
		return nil, &UnknownKeyError{Vocabulary: "channel or mark", Key: name}
	}
}

// DefaultOption returns the value an option control starts with when the
// user has not touched it. Aggregate and color default to nil ("none").
func DefaultOption(name string) any {
	switch name {
	case OptBin, OptApplyColorToBackground, OptShortTimeLabels:
		return false
	case OptZero:
		return true
	case OptScale:
		return "linear"
	case OptType:
		return AutoDetect
	case OptText:
		return ""
	default:
		return nil
	}
}

// ChannelForRow returns the channel a freshly created row starts with.
func ChannelForRow(row int) string {
	if row < 0 {
		row = 0
	}
	return channels[row%len(channels)]
}

// Contains reports whether list holds s.
func Contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Check validates the tables: no duplicates anywhere, and every channel
// after the first three in alphabetical order.
func Check() error {
	tables := map[string][]string{
		"channels":    channels,
		"marks":       marks,
		"field types": fieldTypes,
		"aggregates":  aggregates,
		"scale types": scaleTypes,
	}
	for name, list := range tables {
		seen := make(map[string]bool, len(list))
		for _, v := range list {
			if seen[v] {
				return fmt.Errorf("vocab: duplicate %s entry %q", name, v)
			}
			seen[v] = true
		}
	}
	if len(channels) < 3 || channels[0] != "x" || channels[1] != "y" || channels[2] != "color" {
		return fmt.Errorf("vocab: channels must start with x, y, color")
	}
	if !sort.StringsAreSorted(channels[3:]) {
		return fmt.Errorf("vocab: channels after color must be alphabetical")
	}
	return nil
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
