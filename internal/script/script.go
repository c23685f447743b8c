// Package script reads control events from text so a chart can be driven
// without a terminal. The same line grammar backs the interactive shell:
//
//	set <row> <title> <value>
//	unset <row> <title>
//	mark <name>
//	markopt <title> <value>
//	add
//	reveal <row>
//
// <row> is an encoding row index or "mark". Values "true" and "false" are
// booleans, "none" unsets, anything else is a string. Quoting follows the
// shell, so `set 0 text "Miles per gallon"` works.
package script

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/yildizm/ChartShelf/internal/chart"
)

// Action is what a command does.
type Action int

const (
	// ActionEvent applies Command.Event.
	ActionEvent Action = iota
	// ActionAdd appends an encoding row.
	ActionAdd
	// ActionReveal toggles the advanced options of Command.Row.
	ActionReveal
)

func (a Action) String() string {
	switch a {
	case ActionEvent:
		return "event"
	case ActionAdd:
		return "add"
	case ActionReveal:
		return "reveal"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Command is one parsed script step.
type Command struct {
	Action Action
	Event  chart.UpdateEvent
	Row    int
	// Line is the 1-based source line, 0 when unknown.
	Line int
}

// ErrSyntax is wrapped by every parse error.
var ErrSyntax = errors.New("syntax error")

// Verbs lists the command words of the line grammar.
var Verbs = []string{"set", "unset", "mark", "markopt", "add", "reveal"}

// ParseLine parses one line. ok is false for blank lines and # comments.
func ParseLine(line string) (cmd Command, ok bool, err error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Command{}, false, nil
	}
	words, err := shellquote.Split(trimmed)
	if err != nil {
		return Command{}, false, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	verb, args := words[0], words[1:]
	switch verb {
	case "set":
		if err := arity(verb, args, 3); err != nil {
			return Command{}, false, err
		}
		ev, err := event(args[0], args[1], ParseValue(args[2]))
		return Command{Action: ActionEvent, Event: ev}, err == nil, err
	case "unset":
		if err := arity(verb, args, 2); err != nil {
			return Command{}, false, err
		}
		ev, err := event(args[0], args[1], nil)
		return Command{Action: ActionEvent, Event: ev}, err == nil, err
	case "mark":
		if err := arity(verb, args, 1); err != nil {
			return Command{}, false, err
		}
		name := args[0]
		if !strings.HasPrefix(name, "mark_") {
			name = "mark_" + name
		}
		ev := chart.UpdateEvent{Row: chart.MarkRow, Title: chart.TitleMark, Value: name}
		return Command{Action: ActionEvent, Event: ev}, true, nil
	case "markopt":
		if err := arity(verb, args, 2); err != nil {
			return Command{}, false, err
		}
		ev, err := event("mark", args[0], ParseValue(args[1]))
		return Command{Action: ActionEvent, Event: ev}, err == nil, err
	case "add":
		if err := arity(verb, args, 0); err != nil {
			return Command{}, false, err
		}
		return Command{Action: ActionAdd}, true, nil
	case "reveal":
		if err := arity(verb, args, 1); err != nil {
			return Command{}, false, err
		}
		row, err := ParseRow(args[0])
		if err != nil {
			return Command{}, false, err
		}
		return Command{Action: ActionReveal, Row: row}, true, nil
	default:
		return Command{}, false, fmt.Errorf("%w: unknown command %q", ErrSyntax, verb)
	}
}

// ParseValue converts a word into an event value.
func ParseValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	case "none":
		return nil
	default:
		return s
	}
}

// ParseRow accepts a row index or "mark".
func ParseRow(s string) (int, error) {
	if s == "mark" {
		return chart.MarkRow, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: row %q is not a row index or \"mark\"", ErrSyntax, s)
	}
	return n, nil
}

func event(row, title string, value any) (chart.UpdateEvent, error) {
	r, err := ParseRow(row)
	if err != nil {
		return chart.UpdateEvent{}, err
	}
	t, err := chart.ParseOptionTitle(title)
	if err != nil {
		return chart.UpdateEvent{}, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return chart.UpdateEvent{Row: r, Title: t, Value: value}, nil
}

func arity(verb string, args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("%w: %s takes %d argument(s), got %d", ErrSyntax, verb, n, len(args))
	}
	return nil
}
