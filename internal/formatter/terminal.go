package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/go-termfmt"

	"github.com/yildizm/ChartShelf/internal/chart"
	"github.com/yildizm/ChartShelf/internal/dataset"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = true
	return &terminalFormatter{opts: opts}
}

// NewPlainTerminal is NewTerminal without color or emoji.
func NewPlainTerminal() Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = false
	opts.Emoji = false
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(spec *chart.ChartSpecification) ([]byte, error) {
	var b strings.Builder

	symbol := termfmt.GetEmoji("summary", f.opts)
	fmt.Fprintf(&b, "%s %s\n\n", symbol, spec.Summary())

	f.writeMark(&b, spec)
	f.writeEncodings(&b, spec)

	return []byte(b.String()), nil
}

// writeMark writes the mark with its options as children
func (f *terminalFormatter) writeMark(b *strings.Builder, spec *chart.ChartSpecification) {
	item := termfmt.TreeItem{Label: "Mark", Value: spec.Mark, Last: true}
	keys := optionKeys(spec.MarkOptions)
	for i, k := range keys {
		item.Children = append(item.Children, termfmt.TreeItem{
			Label: k,
			Value: fmt.Sprint(spec.MarkOptions[k]),
			Last:  i == len(keys)-1,
		})
	}
	b.WriteString(termfmt.TreeViewWithOptions([]termfmt.TreeItem{item}, f.opts) + "\n\n")
}

// writeEncodings writes one tree item per compiled channel
func (f *terminalFormatter) writeEncodings(b *strings.Builder, spec *chart.ChartSpecification) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	b.WriteString(symbol + " Encodings\n")

	channels := spec.Channels()
	if len(channels) == 0 {
		b.WriteString("└─ none yet, pick a field for a row\n")
		return
	}

	items := make([]termfmt.TreeItem, 0, len(channels))
	for i, ch := range channels {
		clause := spec.Encodings[ch]
		item := termfmt.TreeItem{
			Label: ch,
			Value: chart.Shorthand(clause),
			Last:  i == len(channels)-1,
		}
		keys := optionKeys(clause)
		for j, k := range keys {
			item.Children = append(item.Children, termfmt.TreeItem{
				Label: k,
				Value: fmt.Sprint(clause[k]),
				Last:  j == len(keys)-1,
			})
		}
		items = append(items, item)
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n")
}

func (f *terminalFormatter) FormatColumns(columns []dataset.Summary) ([]byte, error) {
	var b strings.Builder

	symbol := termfmt.GetEmoji("statistics", f.opts)
	fmt.Fprintf(&b, "%s %d columns\n", symbol, len(columns))

	items := make([]termfmt.TreeItem, 0, len(columns))
	for i, c := range columns {
		children := []termfmt.TreeItem{
			{Label: "Count", Value: formatNumber(c.Count)},
			{Label: "Missing", Value: fmt.Sprintf("%d", c.Missing)},
			{Label: "Distinct", Value: fmt.Sprintf("%d", c.Distinct)},
		}
		if c.Type == "quantitative" && c.Count > 0 {
			children = append(children,
				termfmt.TreeItem{Label: "Range", Value: formatFloat(c.Min) + " .. " + formatFloat(c.Max)},
				termfmt.TreeItem{Label: "Mean", Value: fmt.Sprintf("%.2f ± %.2f", c.Mean, c.StdDev)},
			)
		}
		children = append(children, termfmt.TreeItem{
			Label: "Complete",
			Value: termfmt.CreateConfidenceBar(completeness(c), f.opts),
			Last:  true,
		})
		items = append(items, termfmt.TreeItem{
			Label:    c.Column,
			Value:    c.Type,
			Last:     i == len(columns)-1,
			Children: children,
		})
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n")

	return []byte(b.String()), nil
}
