package script

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/yildizm/ChartShelf/internal/chart"
)

// Step is one entry of a YAML script:
//
//   - {row: 0, title: field, value: Horsepower}
//   - {title: mark, value: mark_line}
//   - {do: add}
//   - {do: reveal, row: 1}
//
// A missing or "none" value unsets the option. Row may be left out for
// mark-level titles.
type Step struct {
	Do    string `yaml:"do,omitempty"`
	Row   *int   `yaml:"row,omitempty"`
	Title string `yaml:"title,omitempty"`
	Value any    `yaml:"value,omitempty"`
}

// Load reads a script file. .yaml and .yml files hold a list of steps;
// anything else is read line by line.
func Load(path string) ([]Command, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read script: %w", err)
		}
		return ParseYAML(data)
	default:
		return Parse(f)
	}
}

// Parse reads line-grammar commands from r.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		cmd, ok, err := ParseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if ok {
			cmd.Line = line
			cmds = append(cmds, cmd)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return cmds, nil
}

// ParseYAML decodes a YAML list of steps.
func ParseYAML(data []byte) ([]Command, error) {
	var steps []Step
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	cmds := make([]Command, 0, len(steps))
	for i, s := range steps {
		cmd, err := s.Command()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// Command converts the step.
func (s Step) Command() (Command, error) {
	switch s.Do {
	case "add":
		return Command{Action: ActionAdd}, nil
	case "reveal":
		if s.Row == nil {
			return Command{Action: ActionReveal, Row: chart.MarkRow}, nil
		}
		return Command{Action: ActionReveal, Row: *s.Row}, nil
	case "", "set", "unset":
	default:
		return Command{}, fmt.Errorf("%w: unknown step %q", ErrSyntax, s.Do)
	}

	title, err := chart.ParseOptionTitle(s.Title)
	if err != nil {
		return Command{}, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	row := chart.MarkRow
	switch {
	case s.Row != nil:
		row = *s.Row
	case !markLevel(title):
		return Command{}, fmt.Errorf("%w: %s needs a row", ErrSyntax, title)
	}

	value := s.Value
	if str, ok := value.(string); ok {
		value = ParseValue(str)
	}
	if s.Do == "unset" {
		value = nil
	}
	return Command{Action: ActionEvent, Event: chart.UpdateEvent{Row: row, Title: title, Value: value}}, nil
}

func markLevel(t chart.OptionTitle) bool {
	switch t {
	case chart.TitleMark, chart.TitleColor, chart.TitleApplyColorToBackground, chart.TitleShortTimeLabels:
		return true
	}
	return false
}
