package chart

import (
	"github.com/yildizm/ChartShelf/internal/vocab"
)

// EncodingClause is the compiled form of one row: the field plus its
// options, with scale and zero folded into a nested scale object.
type EncodingClause map[string]any

// ChartSpecification is the declarative chart handed to a renderer.
type ChartSpecification struct {
	Mark        string                    `json:"mark" yaml:"mark"`
	MarkOptions map[string]any            `json:"markOptions" yaml:"markOptions"`
	Encodings   map[string]EncodingClause `json:"encodings" yaml:"encodings"`
}

// CompileReport describes what Compile left out.
type CompileReport struct {
	// Incomplete lists the rows skipped because no field was chosen.
	Incomplete []int
	// Overwritten lists channels whose clause was replaced by a later row.
	Overwritten []string
}

// CompileRow compiles one row. It returns false when the row has no field.
func CompileRow(row *EncodingRow) (EncodingClause, bool) {
	if !row.HasField() {
		return nil, false
	}

	clause := EncodingClause{"field": row.Field}
	var scale map[string]any
	for key, value := range row.Options {
		switch key {
		case vocab.OptScale:
			if scale == nil {
				scale = make(map[string]any, 2)
			}
			scale["type"] = value
		case vocab.OptZero:
			if scale == nil {
				scale = make(map[string]any, 2)
			}
			scale["zero"] = value
		default:
			clause[key] = value
		}
	}
	if scale != nil {
		clause["scale"] = scale
	}
	return clause, true
}

// Compile turns the state into a chart specification. Rows are visited in
// creation order and a later row on the same channel replaces an earlier one.
func Compile(s *ChartState) ChartSpecification {
	spec, _ := CompileWithReport(s)
	return spec
}

// CompileWithReport is Compile that also reports skipped and overwritten rows.
func CompileWithReport(s *ChartState) (ChartSpecification, CompileReport) {
	var report CompileReport
	spec := ChartSpecification{
		Mark:        s.Mark.Mark,
		MarkOptions: copyOptions(s.Mark.Options),
		Encodings:   make(map[string]EncodingClause, len(s.Encodings)),
	}
	for i, row := range s.Encodings {
		clause, ok := CompileRow(row)
		if !ok {
			report.Incomplete = append(report.Incomplete, i)
			continue
		}
		if _, seen := spec.Encodings[row.Channel]; seen {
			report.Overwritten = append(report.Overwritten, row.Channel)
		}
		spec.Encodings[row.Channel] = clause
	}
	return spec, report
}

// Channels returns the compiled channels in vocabulary display order.
func (c ChartSpecification) Channels() []string {
	out := make([]string, 0, len(c.Encodings))
	for _, ch := range vocab.Channels() {
		if _, ok := c.Encodings[ch]; ok {
			out = append(out, ch)
		}
	}
	return out
}

func copyOptions(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
