package formatter

import (
	"gopkg.in/yaml.v3"

	"github.com/yildizm/ChartShelf/internal/chart"
	"github.com/yildizm/ChartShelf/internal/dataset"
)

// yamlFormatter formats output as YAML, the same shape as JSON
type yamlFormatter struct{}

// NewYAML creates a new YAML formatter
func NewYAML() Formatter {
	return &yamlFormatter{}
}

func (f *yamlFormatter) Format(spec *chart.ChartSpecification) ([]byte, error) {
	return yaml.Marshal(createSpecOutput(spec))
}

func (f *yamlFormatter) FormatColumns(columns []dataset.Summary) ([]byte, error) {
	return yaml.Marshal(&ColumnsOutput{Columns: columns})
}
