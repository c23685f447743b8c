package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yildizm/ChartShelf/internal/config"
	"github.com/yildizm/ChartShelf/internal/dataset"
	"github.com/yildizm/ChartShelf/internal/session"
	"github.com/yildizm/ChartShelf/internal/shell"
	"github.com/yildizm/ChartShelf/internal/ui"
)

func newInteractCommand() *cobra.Command {
	var (
		data  datasetFlags
		sess  sessionFlags
		noTUI bool
	)

	cmd := &cobra.Command{
		Use:   "interact [dataset]",
		Short: "Build a chart with the full-screen control panel",
		Long: `Open the control panel on a dataset. Move between controls with the arrow
keys, change dropdowns with left and right, press enter on "options" to
reveal a row's advanced options and "a" to add a row.

Without a terminal, or with --no-tui, the line shell is used instead.

Examples:
  chartshelf interact cars.csv
  chartshelf interact --sample cars --rows 4
  chartshelf interact --backend svg --no-tui metrics.xlsx`,
		Args: datasetArgs(&data),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess.resolve(cmd)
			frame, name, err := data.load(args)
			if err != nil {
				return err
			}

			if noTUI || !stdoutIsTerminal() {
				return runShell(cmd, &sess, frame, name)
			}

			// The panel draws the term preview; other backends show a summary.
			if !cmd.Flags().Changed("backend") {
				sess.backend = "term"
			}
			restore, err := redirectLogs()
			if err != nil {
				return err
			}
			defer restore()

			ctrl, err := sess.start(frame)
			if err != nil {
				return err
			}
			log.Info("interacting with %s", name)
			return ui.Run(ctrl)
		},
	}

	data.register(cmd)
	sess.register(cmd)
	cmd.Flags().BoolVar(&noTUI, "no-tui", false, "use the line shell instead of the full-screen panel")

	return cmd
}

// redirectLogs keeps log lines off the alt screen. Verbose runs log to a
// file in the temp directory.
func redirectLogs() (func(), error) {
	if !isVerbose() {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }, nil
	}
	path := filepath.Join(os.TempDir(), "chartshelf.log")
	// #nosec G304 - fixed name in the temp directory
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Logging to %s\n", path)
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}

func newShellCommand() *cobra.Command {
	var (
		data datasetFlags
		sess sessionFlags
	)

	cmd := &cobra.Command{
		Use:   "shell [dataset]",
		Short: "Build a chart from a command prompt",
		Long: `Start a line-oriented shell on a dataset. It accepts the event script
commands (set, unset, mark, markopt, add, reveal) plus show, status and spec.
Tab completes rows, option names, columns and values.

Examples:
  chartshelf shell cars.csv
  chartshelf shell --sample cars --backend term`,
		Args: datasetArgs(&data),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess.resolve(cmd)
			frame, name, err := data.load(args)
			if err != nil {
				return err
			}
			return runShell(cmd, &sess, frame, name)
		},
	}

	data.register(cmd)
	sess.register(cmd)

	return cmd
}

func runShell(cmd *cobra.Command, sess *sessionFlags, data *dataset.Frame, name string) error {
	cfg := GetGlobalConfig()

	// With interactive on, every change also prints the panel and the chart.
	ctrl, err := sess.start(data,
		session.WithInteractive(interactiveMode(cfg.Session.Interactive)),
		session.WithDisplay(session.NewWriterDisplay(cmd.OutOrStdout(), false)),
	)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows, %d columns, session %s\n", name, data.Len(), len(data.Columns()), ctrl.ID()[:8])

	history := config.ExpandPath(cfg.Shell.HistoryFile)
	if history != "" {
		if err := os.MkdirAll(filepath.Dir(history), 0o750); err != nil {
			log.Warn("history disabled: %v", err)
			history = ""
		}
	}
	sh, err := shell.New(ctrl, shell.Config{
		HistoryFile: history,
		Prompt:      cfg.Shell.Prompt,
		Stdout:      cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()
	return sh.Run(ctx)
}
