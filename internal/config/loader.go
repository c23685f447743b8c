package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.chartshelf.yaml",               // Project-specific config (highest priority)
	"~/.config/chartshelf/config.yaml", // User config
	"/etc/chartshelf/config.yaml",      // System config (lowest priority)
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables
// 3. ./.chartshelf.yaml
// 4. ~/.config/chartshelf/config.yaml
// 5. /etc/chartshelf/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// Lowest priority first, so later files win.
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := ExpandPath(l.configPaths[i])
			if fileExists(expandedPath) {
				if err := l.loadFromFile(config, expandedPath); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", expandedPath, err)
				}
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile loads configuration from a YAML file and merges it with existing config
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() before reaching here
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var fileConfig Config
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	mergeConfigs(config, &fileConfig)
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// Session Config
		"CHARTSHELF_SESSION_INITIAL_ROWS": func(v string) error { return parseInt(v, &config.Session.InitialRows) },
		"CHARTSHELF_SESSION_INTERACTIVE":  func(v string) error { config.Session.Interactive = v; return nil },
		"CHARTSHELF_SESSION_BACKEND":      func(v string) error { config.Session.Backend = v; return nil },
		"CHARTSHELF_SESSION_DEBOUNCE":     func(v string) error { return parseDuration(v, &config.Session.Debounce) },

		// Render Config
		"CHARTSHELF_RENDER_WIDTH":  func(v string) error { return parseInt(v, &config.Render.Width) },
		"CHARTSHELF_RENDER_HEIGHT": func(v string) error { return parseInt(v, &config.Render.Height) },
		"CHARTSHELF_RENDER_TITLE":  func(v string) error { config.Render.Title = v; return nil },

		// Output Config
		"CHARTSHELF_OUTPUT_DEFAULT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },
		"CHARTSHELF_OUTPUT_COLOR_MODE":     func(v string) error { config.Output.ColorMode = v; return nil },
		"CHARTSHELF_OUTPUT_VERBOSE":        func(v string) error { return parseBool(v, &config.Output.Verbose) },
		"CHARTSHELF_OUTPUT_THEME":          func(v string) error { config.Output.Theme = v; return nil },

		// Data Config
		"CHARTSHELF_DATA_SHEET":      func(v string) error { config.Data.Sheet = v; return nil },
		"CHARTSHELF_DATA_LOG_FORMAT": func(v string) error { config.Data.LogFormat = v; return nil },
		"CHARTSHELF_DATA_MAX_ROWS":   func(v string) error { return parseInt(v, &config.Data.MaxRows) },

		// Shell Config
		"CHARTSHELF_SHELL_HISTORY_FILE": func(v string) error { config.Shell.HistoryFile = v; return nil },
		"CHARTSHELF_SHELL_PROMPT":       func(v string) error { config.Shell.Prompt = v; return nil },
	}

	for envVar, setter := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, ExpandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := ExpandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// Helper functions

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/etc/passwd") ||
		strings.HasPrefix(absPath, "/etc/shadow") ||
		strings.HasPrefix(absPath, "/proc/") ||
		strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// mergeConfigs merges source config into destination config
// Only non-zero values from source overwrite destination
func mergeConfigs(dst, src *Config) {
	if src.Version != "" {
		dst.Version = src.Version
	}

	mergeSessionConfig(&dst.Session, &src.Session)
	mergeRenderConfig(&dst.Render, &src.Render)
	mergeOutputConfig(&dst.Output, &src.Output)
	mergeDataConfig(&dst.Data, &src.Data)
	mergeShellConfig(&dst.Shell, &src.Shell)
}

func mergeSessionConfig(dst, src *SessionConfig) {
	if src.InitialRows != 0 {
		dst.InitialRows = src.InitialRows
	}
	if src.Interactive != "" {
		dst.Interactive = src.Interactive
	}
	if src.Backend != "" {
		dst.Backend = src.Backend
	}
	if src.Debounce != 0 {
		dst.Debounce = src.Debounce
	}
}

func mergeRenderConfig(dst, src *RenderConfig) {
	if src.Width != 0 {
		dst.Width = src.Width
	}
	if src.Height != 0 {
		dst.Height = src.Height
	}
	if src.Title != "" {
		dst.Title = src.Title
	}
}

func mergeOutputConfig(dst, src *OutputConfig) {
	if src.DefaultFormat != "" {
		dst.DefaultFormat = src.DefaultFormat
	}
	if src.ColorMode != "" {
		dst.ColorMode = src.ColorMode
	}
	if src.Theme != "" {
		dst.Theme = src.Theme
	}
	// A zero bool cannot be told apart from an absent key, so files can only
	// switch verbose on; CHARTSHELF_OUTPUT_VERBOSE=false switches it off.
	if src.Verbose {
		dst.Verbose = true
	}
}

func mergeDataConfig(dst, src *DataConfig) {
	if src.Sheet != "" {
		dst.Sheet = src.Sheet
	}
	if src.LogFormat != "" {
		dst.LogFormat = src.LogFormat
	}
	if src.MaxRows != 0 {
		dst.MaxRows = src.MaxRows
	}
}

func mergeShellConfig(dst, src *ShellConfig) {
	if src.HistoryFile != "" {
		dst.HistoryFile = src.HistoryFile
	}
	if src.Prompt != "" {
		dst.Prompt = src.Prompt
	}
}

// Type conversion helpers

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
