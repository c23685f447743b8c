package formatter

import (
	"encoding/json"
	"sort"

	"github.com/yildizm/ChartShelf/internal/chart"
	"github.com/yildizm/ChartShelf/internal/dataset"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(spec *chart.ChartSpecification) ([]byte, error) {
	return json.MarshalIndent(createSpecOutput(spec), "", "  ")
}

func (f *jsonFormatter) FormatColumns(columns []dataset.Summary) ([]byte, error) {
	return json.MarshalIndent(&ColumnsOutput{Columns: columns}, "", "  ")
}

// SpecOutput is the serialized form of a chart specification. Encodings are
// listed in channel display order so the output is stable.
type SpecOutput struct {
	Summary     string            `json:"summary" yaml:"summary"`
	Mark        string            `json:"mark" yaml:"mark"`
	MarkOptions map[string]any    `json:"mark_options,omitempty" yaml:"mark_options,omitempty"`
	Encodings   []*EncodingOutput `json:"encodings" yaml:"encodings"`
}

// EncodingOutput is one compiled channel.
type EncodingOutput struct {
	Channel   string         `json:"channel" yaml:"channel"`
	Shorthand string         `json:"shorthand" yaml:"shorthand"`
	Clause    map[string]any `json:"clause" yaml:"clause"`
}

// ColumnsOutput wraps column summaries.
type ColumnsOutput struct {
	Columns []dataset.Summary `json:"columns" yaml:"columns"`
}

func createSpecOutput(spec *chart.ChartSpecification) *SpecOutput {
	out := &SpecOutput{
		Summary:   spec.Summary(),
		Mark:      spec.Mark,
		Encodings: make([]*EncodingOutput, 0, len(spec.Encodings)),
	}
	if len(spec.MarkOptions) > 0 {
		out.MarkOptions = spec.MarkOptions
	}
	for _, ch := range spec.Channels() {
		clause := spec.Encodings[ch]
		out.Encodings = append(out.Encodings, &EncodingOutput{
			Channel:   ch,
			Shorthand: chart.Shorthand(clause),
			Clause:    clause,
		})
	}
	return out
}

// optionKeys returns the clause keys other than field, sorted.
func optionKeys(clause chart.EncodingClause) []string {
	keys := make([]string, 0, len(clause))
	for k := range clause {
		if k != "field" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
