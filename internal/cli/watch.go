package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yildizm/ChartShelf/internal/logger"
	"github.com/yildizm/ChartShelf/internal/session"
)

func newWatchCommand() *cobra.Command {
	var (
		job      renderJob
		out      string
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [dataset]",
		Short: "Re-render a chart whenever its dataset or script changes",
		Long: `Render a chart like "render --out" and keep it up to date: every change to
the dataset or the event script re-renders the file. A failed render is
logged and the previous chart is left in place. Press Ctrl+C to stop.

Examples:
  chartshelf watch metrics.csv --events chart.yaml --out chart.vl.json
  chartshelf watch app.log --events errors.txt --backend svg --out errors.svg`,
		Args: datasetArgs(&job.data),
		RunE: func(cmd *cobra.Command, args []string) error {
			job.sess.resolve(cmd)
			job.args = args
			if out == "" {
				return fmt.Errorf("--out is required")
			}
			if !cmd.Flags().Changed("debounce") {
				debounce = GetGlobalConfig().Session.Debounce
			}

			var files []string
			if job.data.sample == "" {
				files = append(files, args[0])
			}
			if job.events != "" {
				files = append(files, job.events)
			}

			w := &chartWatcher{
				job:      &job,
				display:  &session.FileDisplay{Path: out},
				debounce: debounce,
				log:      log.WithComponent("watch"),
			}
			return w.watch(files)
		},
	}

	job.data.register(cmd)
	job.sess.register(cmd)
	cmd.Flags().StringVarP(&job.events, "events", "e", "", "event script (.yaml, .yml or line commands)")
	cmd.Flags().StringVar(&out, "out", "", "chart file to keep up to date")
	cmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "wait this long for more changes before rendering (default: session.debounce)")

	return cmd
}

// chartWatcher re-runs a render job when one of its input files changes.
type chartWatcher struct {
	job      *renderJob
	display  session.Display
	debounce time.Duration
	log      *logger.Logger
}

// rebuild renders once. Errors are logged and leave the last chart alone.
func (w *chartWatcher) rebuild() bool {
	art, spec, err := w.job.run()
	if err != nil {
		w.log.ErrorWithFields("render failed, keeping the previous chart", []logger.Field{logger.Error(err)})
		return false
	}
	if err := w.display.Show(nil, art); err != nil {
		w.log.ErrorWithFields("failed to write chart", []logger.Field{logger.Error(err)})
		return false
	}
	w.log.Info("rendered %s", spec.Summary())
	return true
}

func (w *chartWatcher) watch(files []string) error {
	for _, f := range files {
		if err := validateWatchFilePath(f); err != nil {
			return fmt.Errorf("invalid file path %s: %w", f, err)
		}
	}

	watcher, err := createWatcher(files)
	if err != nil {
		return err
	}
	defer cleanupWatcher(watcher)

	w.rebuild()
	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Watching %s\n", strings.Join(files, ", "))
		fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop...\n\n")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return w.loop(ctx, watcher, watchedNames(files))
}

// loop waits for changes to the watched names and renders once they have
// been quiet for the debounce interval.
func (w *chartWatcher) loop(ctx context.Context, watcher *fsnotify.Watcher, names map[string]bool) error {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("stopping")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !names[filepath.Clean(event.Name)] || !relevant(event) {
				continue
			}
			w.log.DebugWithFields("change", []logger.Field{logger.F("file", event.Name), logger.F("op", event.Op.String())})
			timer.Reset(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.Warn("watcher error: %v", err)

		case <-timer.C:
			w.rebuild()
		}
	}
}

// relevant drops chmod-only events. Editors that save through a rename
// show up as Create on the watched name.
func relevant(event fsnotify.Event) bool {
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// createWatcher watches the directories of files, so that files replaced
// by a rename keep being seen.
func createWatcher(files []string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	added := make(map[string]bool)
	for _, f := range files {
		dir := filepath.Dir(filepath.Clean(f))
		if added[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			cleanupWatcher(watcher)
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		added[dir] = true
	}
	return watcher, nil
}

func watchedNames(files []string) map[string]bool {
	names := make(map[string]bool, len(files))
	for _, f := range files {
		names[filepath.Clean(f)] = true
	}
	return names
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}

// validateWatchFilePath validates that a file path is safe to watch
func validateWatchFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot watch directory, must be a file")
	}
	return nil
}
