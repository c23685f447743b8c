package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yildizm/ChartShelf/internal/config"
	"github.com/yildizm/ChartShelf/internal/emoji"
	"github.com/yildizm/ChartShelf/internal/formatter"
	"github.com/yildizm/ChartShelf/internal/logger"
	"github.com/yildizm/ChartShelf/internal/ui"
)

// skipConfig marks commands that load the configuration themselves.
const skipConfig = "skip-config"

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string

	globalConfig *config.Config
	log          = logger.NewWithCallback("cli", isVerbose)
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chartshelf",
		Short: "Build charts from tabular data, one control at a time",
		Long: `ChartShelf turns a table into a chart through a panel of controls: pick a
mark, map columns to channels and tune each channel's options. Every change
re-renders the chart as Vega-Lite JSON, SVG or a terminal preview.

Datasets can be CSV, TSV, JSON, JSON lines, XLSX sheets or log files.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)

			if cmd.Annotations[skipConfig] == "true" {
				return nil
			}
			return loadGlobalConfig(cmd)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text",
		"output format ("+strings.Join(formatter.Names, ", ")+")")

	rootCmd.AddCommand(newInteractCommand())
	rootCmd.AddCommand(newShellCommand())
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newColumnsCommand())
	rootCmd.AddCommand(newVocabCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

// loadGlobalConfig loads the configuration and lets explicit flags win
// over it.
func loadGlobalConfig(cmd *cobra.Command) error {
	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	globalConfig = cfg

	if !cmd.Flag("verbose").Changed && cfg.Output.Verbose {
		verbose = true
	}
	if !cmd.Flag("output").Changed && cfg.Output.DefaultFormat != "" {
		outputFmt = cfg.Output.DefaultFormat
	}
	if cfg.Output.ColorMode == "never" {
		noColor = true
	}
	if noColor {
		// lipgloss and the ui styles both honor NO_COLOR.
		if err := os.Setenv("NO_COLOR", "1"); err != nil {
			return err
		}
	}
	if !ui.SetThemeByName(cfg.Output.Theme) && cfg.Output.Theme != "" {
		log.Warn("unknown theme %s, using default", cfg.Output.Theme)
	}

	log.DebugWithFields("configuration loaded", []logger.Field{
		logger.F("backend", cfg.Session.Backend),
		logger.F("format", outputFmt),
	})
	return nil
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Annotations: map[string]string{
			skipConfig: "true",
		},
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ChartShelf %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// GetGlobalConfig returns the loaded configuration, or the defaults when
// none was loaded.
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		return config.DefaultConfig()
	}
	return globalConfig
}

// Global helpers
func isVerbose() bool {
	return verbose
}

func getOutputFormat() string {
	return outputFmt
}

func useColor() bool {
	if noColor {
		return false
	}
	if GetGlobalConfig().Output.ColorMode == "always" {
		return true
	}
	return stdoutIsTerminal()
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// interactiveMode resolves session.interactive: auto follows the terminal.
func interactiveMode(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return stdoutIsTerminal()
	}
}
