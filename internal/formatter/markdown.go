package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/ChartShelf/internal/chart"
	"github.com/yildizm/ChartShelf/internal/dataset"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(spec *chart.ChartSpecification) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Chart Specification\n\n")
	fmt.Fprintf(&b, "`%s`\n\n", spec.Summary())

	f.writeMarkSection(&b, spec)
	f.writeEncodingTable(&b, spec)

	return []byte(b.String()), nil
}

// writeMarkSection writes the mark and its options
func (f *markdownFormatter) writeMarkSection(b *strings.Builder, spec *chart.ChartSpecification) {
	b.WriteString("## Mark\n\n")
	fmt.Fprintf(b, "**%s**\n\n", spec.Mark)
	if len(spec.MarkOptions) == 0 {
		return
	}

	b.WriteString("| Option | Value |\n")
	b.WriteString("|--------|-------|\n")
	for _, k := range optionKeys(spec.MarkOptions) {
		fmt.Fprintf(b, "| %s | %v |\n", k, spec.MarkOptions[k])
	}
	b.WriteString("\n")
}

// writeEncodingTable writes one table row per compiled channel
func (f *markdownFormatter) writeEncodingTable(b *strings.Builder, spec *chart.ChartSpecification) {
	b.WriteString("## Encodings\n\n")
	channels := spec.Channels()
	if len(channels) == 0 {
		b.WriteString("_No channel has a field yet._\n")
		return
	}

	b.WriteString("| Channel | Field | Options | Shorthand |\n")
	b.WriteString("|---------|-------|---------|-----------|\n")
	for _, ch := range channels {
		clause := spec.Encodings[ch]
		opts := make([]string, 0, len(clause))
		for _, k := range optionKeys(clause) {
			opts = append(opts, fmt.Sprintf("%s=%v", k, clause[k]))
		}
		fmt.Fprintf(b, "| %s | %v | %s | `%s` |\n", ch, clause["field"], strings.Join(opts, ", "), chart.Shorthand(clause))
	}
}

func (f *markdownFormatter) FormatColumns(columns []dataset.Summary) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Columns\n\n")
	b.WriteString("| Column | Type | Count | Missing | Distinct | Min | Max | Mean | Std Dev |\n")
	b.WriteString("|--------|------|-------|---------|----------|-----|-----|------|---------|\n")
	for _, c := range columns {
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %d | %s |\n",
			c.Column, c.Type, formatNumber(c.Count), c.Missing, c.Distinct, numericCells(c, " | "))
	}

	return []byte(b.String()), nil
}
