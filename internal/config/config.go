package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version string        `yaml:"version" json:"version"`
	Session SessionConfig `yaml:"session" json:"session"`
	Render  RenderConfig  `yaml:"render" json:"render"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Data    DataConfig    `yaml:"data" json:"data"`
	Shell   ShellConfig   `yaml:"shell" json:"shell"`
}

// SessionConfig configures new chart sessions
type SessionConfig struct {
	InitialRows int           `yaml:"initial_rows" json:"initial_rows"`
	Interactive string        `yaml:"interactive" json:"interactive"` // auto|always|never
	Backend     string        `yaml:"backend" json:"backend"`         // vegalite|svg|term
	Debounce    time.Duration `yaml:"debounce" json:"debounce"`       // watch re-render delay
}

// RenderConfig configures chart size and title
type RenderConfig struct {
	Width  int    `yaml:"width" json:"width"`
	Height int    `yaml:"height" json:"height"`
	Title  string `yaml:"title" json:"title"`
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // json|yaml|text|markdown
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`               // default verbosity
	Theme         string `yaml:"theme" json:"theme"`                   // default|high-contrast|minimal
}

// DataConfig configures dataset loading
type DataConfig struct {
	Sheet     string `yaml:"sheet" json:"sheet"`           // xlsx sheet, first when empty
	LogFormat string `yaml:"log_format" json:"log_format"` // auto|json|logfmt|text
	MaxRows   int    `yaml:"max_rows" json:"max_rows"`     // 0 reads everything
}

// ShellConfig configures the REPL
type ShellConfig struct {
	HistoryFile string `yaml:"history_file" json:"history_file"`
	Prompt      string `yaml:"prompt" json:"prompt"`
}

// Known values, shared with the CLI for flag help.
var (
	Backends     = []string{"vegalite", "svg", "term"}
	Formats      = []string{"json", "yaml", "text", "markdown"}
	Themes       = []string{"default", "high-contrast", "minimal"}
	LogFormats   = []string{"auto", "json", "logfmt", "text"}
	Interactions = []string{"auto", "always", "never"}
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Session: SessionConfig{
			InitialRows: 3,
			Interactive: "auto",
			Backend:     "vegalite",
			Debounce:    200 * time.Millisecond,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Verbose:       false,
			Theme:         "default",
		},
		Data: DataConfig{
			LogFormat: "auto",
		},
		Shell: ShellConfig{
			HistoryFile: "~/.cache/chartshelf/history",
			Prompt:      "chart> ",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateSessionConfig(); err != nil {
		return err
	}
	if err := c.validateRenderConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if err := c.validateDataConfig(); err != nil {
		return err
	}
	return nil
}

// validateSessionConfig validates session-related configuration
func (c *Config) validateSessionConfig() error {
	if c.Session.InitialRows < 0 {
		return fmt.Errorf("initial_rows must be non-negative")
	}
	if err := oneOf("session backend", c.Session.Backend, Backends); err != nil {
		return err
	}
	if err := oneOf("interactive mode", c.Session.Interactive, Interactions); err != nil {
		return err
	}
	if c.Session.Debounce < 0 {
		return fmt.Errorf("debounce must be non-negative")
	}
	return nil
}

// validateRenderConfig validates chart size
func (c *Config) validateRenderConfig() error {
	if c.Render.Width < 0 || c.Render.Height < 0 {
		return fmt.Errorf("render width and height must be non-negative")
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if err := oneOf("output format", c.Output.DefaultFormat, Formats); err != nil {
		return err
	}
	if err := oneOf("color mode", c.Output.ColorMode, []string{"auto", "always", "never"}); err != nil {
		return err
	}
	return oneOf("theme", c.Output.Theme, Themes)
}

// validateDataConfig validates dataset loading options
func (c *Config) validateDataConfig() error {
	if err := oneOf("log format", c.Data.LogFormat, LogFormats); err != nil {
		return err
	}
	if c.Data.MaxRows < 0 {
		return fmt.Errorf("max_rows must be non-negative")
	}
	return nil
}

// oneOf accepts an empty value, which means "use the default".
func oneOf(what, value string, valid []string) error {
	if value == "" {
		return nil
	}
	for _, v := range valid {
		if v == value {
			return nil
		}
	}
	return fmt.Errorf("invalid %s: %s (must be one of: %s)", what, value, strings.Join(valid, ", "))
}
