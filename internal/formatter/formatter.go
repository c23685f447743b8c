// Package formatter renders a compiled chart specification and dataset
// column summaries for humans and tools.
package formatter

import (
	"fmt"

	"github.com/yildizm/ChartShelf/internal/chart"
	"github.com/yildizm/ChartShelf/internal/dataset"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(spec *chart.ChartSpecification) ([]byte, error)
	FormatColumns(columns []dataset.Summary) ([]byte, error)
}

// Names lists the formats New accepts.
var Names = []string{"json", "yaml", "text", "markdown"}

// New returns the formatter for name. color only affects text output.
func New(name string, color bool) (Formatter, error) {
	switch name {
	case "json":
		return NewJSON(), nil
	case "yaml":
		return NewYAML(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "text", "":
		return NewTerminal(color), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", name)
	}
}
