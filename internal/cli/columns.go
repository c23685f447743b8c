package cli

import (
	"github.com/spf13/cobra"

	"github.com/yildizm/ChartShelf/internal/dataset"
	"github.com/yildizm/ChartShelf/internal/formatter"
)

func newColumnsCommand() *cobra.Command {
	var data datasetFlags

	cmd := &cobra.Command{
		Use:   "columns [dataset]",
		Short: "Summarize the columns of a dataset",
		Long: `Print every column with its inferred type, how many values are present and,
for quantitative columns, their range, mean and standard deviation.

Examples:
  chartshelf columns cars.csv
  chartshelf columns --sample cars -o json
  chartshelf columns app.log`,
		Args: datasetArgs(&data),
		RunE: func(cmd *cobra.Command, args []string) error {
			frame, name, err := data.load(args)
			if err != nil {
				return err
			}
			summaries, err := dataset.Summarize(frame)
			if err != nil {
				return err
			}
			log.Debug("summarized %d columns of %s", len(summaries), name)

			f, err := formatter.New(getOutputFormat(), useColor())
			if err != nil {
				return err
			}
			text, err := f.FormatColumns(summaries)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(text)
			return err
		},
	}

	data.register(cmd)
	return cmd
}
