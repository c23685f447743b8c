package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yildizm/ChartShelf/internal/config"
	"github.com/yildizm/ChartShelf/internal/dataset"
	"github.com/yildizm/ChartShelf/internal/logger"
	"github.com/yildizm/ChartShelf/internal/render"
	"github.com/yildizm/ChartShelf/internal/render/svg"
	"github.com/yildizm/ChartShelf/internal/render/termplot"
	"github.com/yildizm/ChartShelf/internal/render/vegalite"
	"github.com/yildizm/ChartShelf/internal/session"
)

// datasetFlags are shared by every command that opens a dataset.
type datasetFlags struct {
	sample  string
	sheet   string
	maxRows int
}

func (f *datasetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sample, "sample", "", "use a built-in dataset instead of a file ("+strings.Join(dataset.SampleNames(), ", ")+")")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "xlsx sheet to read (default: data.sheet or the first sheet)")
	cmd.Flags().IntVar(&f.maxRows, "max-rows", 0, "read at most this many rows (default: data.max_rows)")
}

// datasetArgs accepts a dataset path unless --sample is set.
func datasetArgs(f *datasetFlags) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if f.sample != "" {
			return cobra.NoArgs(cmd, args)
		}
		if len(args) != 1 {
			return fmt.Errorf("expected one dataset file (%s) or --sample", strings.Join(dataset.Formats(), ", "))
		}
		return nil
	}
}

// load opens the dataset and returns it with a display name.
func (f *datasetFlags) load(args []string) (*dataset.Frame, string, error) {
	if f.sample != "" {
		frame, err := dataset.Sample(f.sample)
		return frame, "sample " + f.sample, err
	}

	path := args[0]
	frame, err := dataset.Load(path, f.options(GetGlobalConfig().Data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to load %s: %w", path, err)
	}
	log.DebugWithFields("dataset loaded", []logger.Field{
		logger.F("path", filepath.Base(path)),
		logger.Count(frame.Len()),
		logger.F("columns", len(frame.Columns())),
	})
	return frame, path, nil
}

func (f *datasetFlags) options(cfg config.DataConfig) dataset.LoadOptions {
	opts := dataset.LoadOptions{
		Sheet:     cfg.Sheet,
		LogFormat: cfg.LogFormat,
		MaxRows:   cfg.MaxRows,
	}
	if f.sheet != "" {
		opts.Sheet = f.sheet
	}
	if f.maxRows > 0 {
		opts.MaxRows = f.maxRows
	}
	return opts
}

// newBackend builds a renderer sized from the render section.
func newBackend(name string) (render.Backend, error) {
	rc := GetGlobalConfig().Render
	opts := render.Options{Width: rc.Width, Height: rc.Height, Title: rc.Title}
	switch name {
	case "", "vegalite":
		return vegalite.New(opts), nil
	case "svg":
		return svg.New(opts), nil
	case "term":
		return termplot.New(opts), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (must be one of: %s)", name, strings.Join(config.Backends, ", "))
	}
}

// sessionFlags are shared by the commands that run a session.
type sessionFlags struct {
	rows    int
	backend string
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	cfg := GetGlobalConfig().Session
	cmd.Flags().IntVar(&f.rows, "rows", cfg.InitialRows, "encoding rows to start with")
	cmd.Flags().StringVarP(&f.backend, "backend", "b", cfg.Backend, "renderer ("+strings.Join(config.Backends, ", ")+")")
}

// resolve fills flags the user did not set from the loaded configuration.
func (f *sessionFlags) resolve(cmd *cobra.Command) {
	cfg := GetGlobalConfig().Session
	if !cmd.Flags().Changed("rows") {
		f.rows = cfg.InitialRows
	}
	if !cmd.Flags().Changed("backend") {
		f.backend = cfg.Backend
	}
}

func (f *sessionFlags) start(data dataset.Table, extra ...session.Option) (*session.Controller, error) {
	backend, err := newBackend(f.backend)
	if err != nil {
		return nil, err
	}
	opts := append([]session.Option{
		session.WithInitialRows(f.rows),
		session.WithBackend(backend),
		session.WithLogger(log),
	}, extra...)
	return session.InteractWith(data, opts...)
}
