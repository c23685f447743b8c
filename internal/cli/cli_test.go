package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yildizm/ChartShelf/internal/logger"
	"github.com/yildizm/ChartShelf/internal/session"
)

const carsCSV = `Acceleration,Cylinders,Origin
12,8,USA
15,4,Japan
14.5,4,Europe
`

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cmd := NewRootCommand("dev", "none", "unknown")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "ChartShelf development (local-build)") {
		t.Errorf("output = %q", out)
	}
}

func TestRenderToStdout(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "cars.csv", carsCSV)
	events := writeFile(t, dir, "chart.txt", "mark bar\nset 0 field Origin\nset 1 field Acceleration\nset 1 aggregate mean\n")

	out, err := execute(t, "render", data, "--events", events)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if doc["$schema"] == nil || doc["mark"] == nil {
		t.Errorf("document = %v", doc)
	}
}

func TestRenderToFile(t *testing.T) {
	dir := t.TempDir()
	events := writeFile(t, dir, "chart.yaml", `
- {do: set, row: 0, title: field, value: Horsepower}
- {do: set, row: 1, title: field, value: Acceleration}
- {title: mark, value: mark_line}
`)
	target := filepath.Join(dir, "chart.svg")

	out, err := execute(t, "render", "--sample", "cars", "--events", events, "--backend", "svg", "--out", target, "-o", "json")
	if err != nil {
		t.Fatal(err)
	}
	body, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "<svg") {
		t.Errorf("%s is not an SVG document", target)
	}

	var spec struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(out), &spec); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, out)
	}
	if spec.Summary != "mark_line x=Horsepower y=Acceleration" {
		t.Errorf("summary = %q", spec.Summary)
	}
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "cars.csv", carsCSV)
	bad := writeFile(t, dir, "bad.txt", "set 0 field Weight\n")

	tests := []struct {
		name   string
		args   []string
		errSub string
	}{
		{name: "no dataset", args: []string{"render"}, errSub: "expected one dataset file"},
		{name: "sample and file", args: []string{"render", data, "--sample", "cars"}, errSub: "unknown command"},
		{name: "unknown column", args: []string{"render", data, "--events", bad}, errSub: "line 1"},
		{name: "unknown backend", args: []string{"render", data, "--backend", "png"}, errSub: "unknown backend"},
		{name: "missing file", args: []string{"render", filepath.Join(dir, "nope.csv")}, errSub: "failed to load"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.errSub) {
				t.Errorf("error = %v, want it to contain %q", err, tt.errSub)
			}
		})
	}
}

func TestColumnsCommand(t *testing.T) {
	out, err := execute(t, "columns", "--sample", "cars", "-o", "json")
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Columns []struct {
			Column string `json:"column"`
			Type   string `json:"type"`
		} `json:"columns"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	types := make(map[string]string)
	for _, c := range doc.Columns {
		types[c.Column] = c.Type
	}
	if types["Horsepower"] != "quantitative" || types["Origin"] != "nominal" {
		t.Errorf("types = %v", types)
	}
}

func TestVocabCommand(t *testing.T) {
	tests := []struct {
		args []string
		want []string
	}{
		{args: []string{"vocab"}, want: []string{"marks:", "mark_point", "channels:", "aggregates:"}},
		{args: []string{"vocab", "x"}, want: []string{"zero", "scale", "linear"}},
		{args: []string{"vocab", "line"}, want: []string{"shortTimeLabels", "applyColorToBackground"}},
		{args: []string{"vocab", "text", "-o", "yaml"}, want: []string{"option: text"}},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}

	if _, err := execute(t, "vocab", "bogus"); err == nil {
		t.Error("vocab bogus succeeded")
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf", "chartshelf.yaml")

	if _, err := execute(t, "config", "init", "--path", path); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "config", "init", "--path", path); err == nil {
		t.Error("second init without --force succeeded")
	}

	out, err := execute(t, "--config", path, "config", "validate")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Configuration is valid") || !strings.Contains(out, "Backend: vegalite, 3 initial rows") {
		t.Errorf("output = %q", out)
	}

	bad := writeFile(t, dir, "bad.yaml", "session:\n  backend: png\n")
	out, err = execute(t, "--config", bad, "config", "validate")
	if err == nil || !strings.Contains(out, "validation failed") {
		t.Errorf("invalid config: err = %v, out = %q", err, out)
	}

	out, err = execute(t, "--config", path, "config", "show", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"backend": "vegalite"`) {
		t.Errorf("show output = %q", out)
	}
}

func TestConfigFlowsIntoCommands(t *testing.T) {
	dir := t.TempDir()
	conf := writeFile(t, dir, "c.yaml", "output:\n  default_format: yaml\n")

	out, err := execute(t, "--config", conf, "vocab", "x")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "- option: type") {
		t.Errorf("config default_format ignored:\n%s", out)
	}

	out, err = execute(t, "--config", conf, "-o", "text", "vocab", "x")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "option:") {
		t.Errorf("--output did not win over the config:\n%s", out)
	}
}

func TestInteractiveMode(t *testing.T) {
	if !interactiveMode("always") {
		t.Error("always is not interactive")
	}
	if interactiveMode("never") {
		t.Error("never is interactive")
	}
	// Test binaries do not run with a terminal on stdout.
	if interactiveMode("auto") != stdoutIsTerminal() {
		t.Error("auto does not follow the terminal")
	}
}

func TestValidateWatchFilePath(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.csv", carsCSV)

	tests := []struct {
		path    string
		wantErr bool
	}{
		{path: file},
		{path: "", wantErr: true},
		{path: "../a.csv", wantErr: true},
		{path: dir, wantErr: true},
		{path: filepath.Join(dir, "missing.csv"), wantErr: true},
	}
	for _, tt := range tests {
		if err := validateWatchFilePath(tt.path); (err != nil) != tt.wantErr {
			t.Errorf("validateWatchFilePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
	}
}

func newTestWatcher(t *testing.T, dir string) (*chartWatcher, string, string) {
	t.Helper()
	data := writeFile(t, dir, "cars.csv", carsCSV)
	events := writeFile(t, dir, "chart.txt", "set 0 field Acceleration\n")
	out := filepath.Join(dir, "chart.json")

	w := &chartWatcher{
		job: &renderJob{
			sess:   sessionFlags{rows: 2, backend: "vegalite"},
			events: events,
			args:   []string{data},
		},
		display:  &session.FileDisplay{Path: out},
		debounce: time.Millisecond,
		log:      logger.Nop(),
	}
	return w, events, out
}

func TestChartWatcherKeepsChartOnFailure(t *testing.T) {
	dir := t.TempDir()
	w, events, out := newTestWatcher(t, dir)

	if !w.rebuild() {
		t.Fatal("first rebuild failed")
	}
	first, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}

	writeFile(t, dir, filepath.Base(events), "set 0 field Weight\n")
	if w.rebuild() {
		t.Fatal("rebuild with an unknown column succeeded")
	}
	after, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, after) {
		t.Error("a failed rebuild replaced the chart")
	}
}

func TestChartWatcherLoop(t *testing.T) {
	dir := t.TempDir()
	w, events, out := newTestWatcher(t, dir)

	watcher := &fsnotify.Watcher{
		Events: make(chan fsnotify.Event),
		Errors: make(chan error),
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.loop(ctx, watcher, watchedNames([]string{events})) }()

	// Changes to other files in the directory are ignored.
	watcher.Events <- fsnotify.Event{Name: filepath.Join(dir, "notes.txt"), Op: fsnotify.Write}
	watcher.Events <- fsnotify.Event{Name: events, Op: fsnotify.Chmod}

	writeFile(t, dir, filepath.Base(events), "set 0 field Origin\n")
	watcher.Events <- fsnotify.Event{Name: events, Op: fsnotify.Write}

	deadline := time.Now().Add(5 * time.Second)
	for {
		body, err := os.ReadFile(out)
		if err == nil && strings.Contains(string(body), `"Origin"`) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("chart was not rendered after the change")
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("loop() = %v", err)
	}
}
