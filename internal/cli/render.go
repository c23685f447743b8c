package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yildizm/ChartShelf/internal/chart"
	"github.com/yildizm/ChartShelf/internal/formatter"
	"github.com/yildizm/ChartShelf/internal/logger"
	"github.com/yildizm/ChartShelf/internal/render"
	"github.com/yildizm/ChartShelf/internal/script"
	"github.com/yildizm/ChartShelf/internal/session"
)

// renderJob loads a dataset, replays an event script on a fresh state and
// renders the result once.
type renderJob struct {
	data   datasetFlags
	sess   sessionFlags
	events string
	args   []string
}

func (j *renderJob) run() (render.Artifact, chart.ChartSpecification, error) {
	frame, _, err := j.data.load(j.args)
	if err != nil {
		return render.Artifact{}, chart.ChartSpecification{}, err
	}
	if j.sess.rows < 0 {
		return render.Artifact{}, chart.ChartSpecification{}, fmt.Errorf("--rows must be non-negative")
	}

	state := chart.NewChartState(frame.Columns(), j.sess.rows)
	if j.events != "" {
		cmds, err := script.Load(j.events)
		if err != nil {
			return render.Artifact{}, chart.ChartSpecification{}, err
		}
		if err := script.Run(script.StateTarget{State: state}, cmds); err != nil {
			return render.Artifact{}, chart.ChartSpecification{}, fmt.Errorf("%s: %w", j.events, err)
		}
		log.Debug("applied %d events from %s", len(cmds), j.events)
	}

	spec, report := chart.CompileWithReport(state)
	if dups := state.DuplicateChannels(); len(dups) > 0 {
		log.WarnWithFields("several rows share a channel, the last one wins", []logger.Field{logger.F("channels", dups)})
	}
	if len(report.Incomplete) > 0 {
		log.DebugWithFields("rows without a field were skipped", []logger.Field{logger.F("rows", report.Incomplete)})
	}

	backend, err := newBackend(j.sess.backend)
	if err != nil {
		return render.Artifact{}, spec, err
	}
	art, err := render.Build(backend, spec, frame)
	return art, spec, err
}

func newRenderCommand() *cobra.Command {
	var (
		job renderJob
		out string
	)

	cmd := &cobra.Command{
		Use:   "render [dataset]",
		Short: "Render a chart from an event script",
		Long: `Replay an event script against a dataset and write the chart.

The script is either a YAML list of steps or one command per line:

  mark line
  set 0 field Horsepower
  set 1 field Acceleration
  set 1 aggregate mean

With --out the chart goes to that file and the compiled chart is printed
in the --output format; without it the chart is written to stdout.

Examples:
  chartshelf render cars.csv --events chart.txt > chart.vl.json
  chartshelf render --sample cars --events chart.yaml --backend svg --out chart.svg
  chartshelf render data.xlsx --events chart.txt --out chart.json -o markdown`,
		Args: datasetArgs(&job.data),
		RunE: func(cmd *cobra.Command, args []string) error {
			job.sess.resolve(cmd)
			job.args = args

			art, spec, err := job.run()
			if err != nil {
				return err
			}

			if out == "" {
				_, err := cmd.OutOrStdout().Write(art.Body)
				return err
			}
			if err := (&session.FileDisplay{Path: out}).Show(nil, art); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			log.Info("wrote %s (%s)", out, art.Summary)

			f, err := formatter.New(getOutputFormat(), useColor())
			if err != nil {
				return err
			}
			text, err := f.Format(&spec)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(text)
			return err
		},
	}

	job.data.register(cmd)
	job.sess.register(cmd)
	cmd.Flags().StringVarP(&job.events, "events", "e", "", "event script (.yaml, .yml or line commands)")
	cmd.Flags().StringVar(&out, "out", "", "write the chart to this file")

	return cmd
}
