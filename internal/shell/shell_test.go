package shell

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/yildizm/ChartShelf/internal/chart"
	"github.com/yildizm/ChartShelf/internal/session"
)

var grid = [][]string{
	{"Acceleration", "Horsepower", "Origin"},
	{"12", "130", "USA"},
	{"15", "88", "Japan"},
}

func newTestShell(t *testing.T) (*Shell, *bytes.Buffer) {
	t.Helper()
	c, err := session.InteractWith(grid, session.WithInitialRows(2))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	return &Shell{ctrl: c, out: &buf}, &buf
}

func TestHandleAppliesScriptLines(t *testing.T) {
	s, out := newTestShell(t)
	for _, line := range []string{
		"set 0 field Acceleration",
		"# comment",
		"",
		"set 1 field Horsepower",
		"set 1 aggregate mean",
		"mark line",
	} {
		if err := s.Handle(line); err != nil {
			t.Fatalf("Handle(%q) error = %v", line, err)
		}
	}
	if got := s.ctrl.Spec().Summary(); got != "mark_line x=Acceleration y=mean(Horsepower)" {
		t.Errorf("Summary() = %q", got)
	}
	if !strings.Contains(out.String(), "mark mark_line | 0 x=Acceleration | 1 y=mean(Horsepower)") {
		t.Errorf("status line missing:\n%s", out.String())
	}
}

func TestHandleCommands(t *testing.T) {
	s, out := newTestShell(t)

	if err := s.Handle("quit"); !errors.Is(err, errQuit) {
		t.Errorf("Handle(quit) = %v", err)
	}

	out.Reset()
	if err := s.Handle("help"); err != nil || !strings.Contains(out.String(), "markopt <title> <value>") {
		t.Errorf("help = %v:\n%s", err, out.String())
	}

	out.Reset()
	if err := s.Handle("set 0 field Origin"); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := s.Handle("show"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "row 0:") || !strings.Contains(out.String(), `"field": "Origin"`) {
		t.Errorf("show output:\n%s", out.String())
	}

	out.Reset()
	if err := s.Handle("spec"); err != nil || strings.TrimSpace(out.String()) != "mark_point x=Origin" {
		t.Errorf("spec = %v, %q", err, out.String())
	}
}

func TestHandleReportsErrors(t *testing.T) {
	s, _ := newTestShell(t)
	tests := []struct {
		line string
		is   error
	}{
		{line: "set 0 field Weight", is: chart.ErrUnknownColumn},
		{line: "set 9 bin true", is: chart.ErrRowOutOfRange},
		{line: "frobnicate"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			err := s.Handle(tt.line)
			if err == nil {
				t.Fatal("Handle() succeeded")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("Handle() error = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestAddAndReveal(t *testing.T) {
	s, _ := newTestShell(t)
	if err := s.Handle("add"); err != nil {
		t.Fatal(err)
	}
	if n := len(s.ctrl.State().Encodings); n != 3 {
		t.Fatalf("rows = %d, want 3", n)
	}
	if err := s.Handle("reveal mark"); err != nil {
		t.Fatal(err)
	}
	if !s.ctrl.Panel().Mark.Revealed() {
		t.Error("mark options not revealed")
	}
}

func TestCompleter(t *testing.T) {
	rows := 2
	c := NewCompleter(func() []string { return []string{"Acceleration", "Horsepower"} }, func() int { return rows })

	tests := []struct {
		line    string
		want    []string
		wantLen int
	}{
		{line: "ma", want: []string{"rk ", "rkopt "}, wantLen: 2},
		{line: "set ", want: []string{"0 ", "1 ", "mark "}, wantLen: 0},
		{line: "set 0 ag", want: []string{"gregate "}, wantLen: 2},
		{line: "set 0 field H", want: []string{"orsepower "}, wantLen: 1},
		{line: "set mark c", want: []string{"olor "}, wantLen: 1},
		{line: "set 0 bin ", want: []string{"true ", "false "}, wantLen: 0},
		{line: "markopt color re", want: []string{"d "}, wantLen: 2},
		{line: "mark mark_l", want: []string{"ine "}, wantLen: 6},
		{line: "set 0 text ", want: nil, wantLen: 0},
		{line: "show ", want: nil, wantLen: 0},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, n := c.Do([]rune(tt.line), len(tt.line))
			var words []string
			for _, r := range got {
				words = append(words, string(r))
			}
			if !reflect.DeepEqual(words, tt.want) || n != tt.wantLen {
				t.Errorf("Do(%q) = %q, %d; want %q, %d", tt.line, words, n, tt.want, tt.wantLen)
			}
		})
	}

	rows = 3
	got, _ := c.Do([]rune("reveal 2"), 8)
	if len(got) != 1 || string(got[0]) != " " {
		t.Errorf("rows added later are not completed: %q", got)
	}
}
