package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil {
		t.Fatal("NewLoader returned nil")
	}
	if len(loader.configPaths) != 3 {
		t.Errorf("Expected 3 config paths, got %d", len(loader.configPaths))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	loader := &Loader{configPaths: []string{filepath.Join(t.TempDir(), "absent.yaml")}}

	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}
	if cfg.Session.Backend != "vegalite" {
		t.Errorf("Expected default backend vegalite, got %s", cfg.Session.Backend)
	}
	if cfg.Output.DefaultFormat != "text" {
		t.Errorf("Expected default output format text, got %s", cfg.Output.DefaultFormat)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test-config.yaml")

	configContent := `version: "1.0"
session:
  initial_rows: 5
  backend: svg
  debounce: 1s
render:
  width: 640
  title: "Cars"
output:
  default_format: "json"
  verbose: true
data:
  sheet: Data
  max_rows: 1000
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	cfg, err := NewLoader().LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config from file: %v", err)
	}

	if cfg.Session.InitialRows != 5 {
		t.Errorf("Expected 5 initial rows, got %d", cfg.Session.InitialRows)
	}
	if cfg.Session.Backend != "svg" {
		t.Errorf("Expected backend svg, got %s", cfg.Session.Backend)
	}
	if cfg.Session.Debounce != time.Second {
		t.Errorf("Expected debounce 1s, got %v", cfg.Session.Debounce)
	}
	if cfg.Session.Interactive != "auto" {
		t.Errorf("Expected untouched interactive mode auto, got %s", cfg.Session.Interactive)
	}
	if cfg.Render.Width != 640 || cfg.Render.Title != "Cars" {
		t.Errorf("Unexpected render config %+v", cfg.Render)
	}
	if cfg.Output.DefaultFormat != "json" {
		t.Errorf("Expected output format json, got %s", cfg.Output.DefaultFormat)
	}
	if !cfg.Output.Verbose {
		t.Errorf("Expected verbose to be true")
	}
	if cfg.Data.Sheet != "Data" || cfg.Data.MaxRows != 1000 {
		t.Errorf("Unexpected data config %+v", cfg.Data)
	}
	if cfg.Shell.Prompt != "chart> " {
		t.Errorf("Expected default prompt to survive the merge, got %q", cfg.Shell.Prompt)
	}
}

func TestLoadConfigPriority(t *testing.T) {
	dir := t.TempDir()
	system := filepath.Join(dir, "system.yaml")
	project := filepath.Join(dir, "project.yaml")

	if err := os.WriteFile(system, []byte("session:\n  backend: term\n  initial_rows: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(project, []byte("session:\n  backend: svg\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	loader := &Loader{configPaths: []string{project, filepath.Join(dir, "user.yaml"), system}}
	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Session.Backend != "svg" {
		t.Errorf("Expected the project file to win, got backend %s", cfg.Session.Backend)
	}
	if cfg.Session.InitialRows != 2 {
		t.Errorf("Expected rows from the system file, got %d", cfg.Session.InitialRows)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name: "invalid yaml",
			content: `session:
  backend: "svg
`,
			errMsg: "failed to parse YAML",
		},
		{
			name:    "invalid value",
			content: "session:\n  backend: excel\n",
			errMsg:  "configuration validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			_, err := NewLoader().LoadConfig(configPath)
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Expected error containing %q, got %v", tt.errMsg, err)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("CHARTSHELF_SESSION_BACKEND", "term")
	t.Setenv("CHARTSHELF_SESSION_INITIAL_ROWS", "6")
	t.Setenv("CHARTSHELF_SESSION_DEBOUNCE", "50ms")
	t.Setenv("CHARTSHELF_OUTPUT_VERBOSE", "true")
	t.Setenv("CHARTSHELF_DATA_LOG_FORMAT", "logfmt")
	t.Setenv("CHARTSHELF_SHELL_PROMPT", "> ")

	cfg := DefaultConfig()
	if err := NewLoader().applyEnvOverrides(cfg); err != nil {
		t.Fatalf("Failed to apply env overrides: %v", err)
	}

	if cfg.Session.Backend != "term" {
		t.Errorf("Expected backend term, got %s", cfg.Session.Backend)
	}
	if cfg.Session.InitialRows != 6 {
		t.Errorf("Expected 6 rows, got %d", cfg.Session.InitialRows)
	}
	if cfg.Session.Debounce != 50*time.Millisecond {
		t.Errorf("Expected debounce 50ms, got %v", cfg.Session.Debounce)
	}
	if !cfg.Output.Verbose {
		t.Errorf("Expected verbose to be true")
	}
	if cfg.Data.LogFormat != "logfmt" {
		t.Errorf("Expected log format logfmt, got %s", cfg.Data.LogFormat)
	}
	if cfg.Shell.Prompt != "> " {
		t.Errorf("Expected prompt '> ', got %q", cfg.Shell.Prompt)
	}
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("output:\n  verbose: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CHARTSHELF_OUTPUT_VERBOSE", "false")

	cfg, err := NewLoader().LoadConfig(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Verbose {
		t.Error("Expected the environment to switch verbose off")
	}
}

func TestApplyEnvOverridesInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
	}{
		{"invalid int", "CHARTSHELF_DATA_MAX_ROWS", "not-a-number"},
		{"invalid bool", "CHARTSHELF_OUTPUT_VERBOSE", "not-a-bool"},
		{"invalid duration", "CHARTSHELF_SESSION_DEBOUNCE", "not-a-duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.value)

			err := NewLoader().applyEnvOverrides(DefaultConfig())
			if err == nil {
				t.Error("Expected error for invalid env var value, but got none")
			} else if !strings.Contains(err.Error(), tt.envVar) {
				t.Errorf("Expected error to name %s, got %v", tt.envVar, err)
			}
		})
	}
}

func TestParseHelpers(t *testing.T) {
	var d time.Duration
	if err := parseDuration("30s", &d); err != nil || d != 30*time.Second {
		t.Errorf("parseDuration(30s) = %v, %v", d, err)
	}
	if err := parseDuration("invalid", &d); err == nil {
		t.Error("Expected error for invalid duration, but got none")
	}

	var n int
	if err := parseInt("42", &n); err != nil || n != 42 {
		t.Errorf("parseInt(42) = %d, %v", n, err)
	}
	if err := parseInt("not-a-number", &n); err == nil {
		t.Error("Expected error for invalid int, but got none")
	}

	var b bool
	if err := parseBool("true", &b); err != nil || !b {
		t.Errorf("parseBool(true) = %v, %v", b, err)
	}
	if err := parseBool("not-a-bool", &b); err == nil {
		t.Error("Expected error for invalid bool, but got none")
	}
}

func TestFindConfigFile(t *testing.T) {
	if _, found := FindConfigFile(); found {
		t.Skip("a config file is installed on this machine")
	}

	tempConfigPath := "./.chartshelf.yaml"
	if err := os.WriteFile(tempConfigPath, []byte("version: \"1.0\"\n"), 0o600); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}
	defer func() { _ = os.Remove(tempConfigPath) }()

	configPath, found := FindConfigFile()
	if !found {
		t.Error("Expected config file to be found, but none was found")
	}
	if configPath != tempConfigPath {
		t.Errorf("Expected config path %s, got %s", tempConfigPath, configPath)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandPath("~/.config/chartshelf/config.yaml"); got != filepath.Join(home, ".config/chartshelf/config.yaml") {
		t.Errorf("ExpandPath() = %s", got)
	}
	if got := ExpandPath("/etc/chartshelf/config.yaml"); got != "/etc/chartshelf/config.yaml" {
		t.Errorf("ExpandPath() changed an absolute path: %s", got)
	}
}

func TestValidateConfigPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
		errMsg  string
	}{
		{name: "valid yaml file", path: "config.yaml"},
		{name: "valid yml file", path: "config.yml"},
		{name: "relative path with valid extension", path: "./configs/app.yaml"},
		{name: "path traversal attempt", path: "../../../etc/passwd", wantErr: true, errMsg: "path traversal not allowed"},
		{name: "non-yaml file", path: "config.txt", wantErr: true, errMsg: "config file must have .yaml or .yml extension"},
		{name: "system file access", path: "/etc/passwd.yaml", wantErr: true, errMsg: "access to system files not allowed"},
		{name: "proc filesystem access", path: "/proc/version.yaml", wantErr: true, errMsg: "access to system files not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfigPath(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error but got none")
				} else if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("Expected error message to contain '%s', got '%s'", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}
