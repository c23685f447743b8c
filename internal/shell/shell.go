// Package shell provides a line-oriented REPL over a chart session. It
// accepts the script grammar (set, unset, mark, markopt, add, reveal) plus a
// few commands of its own.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/yildizm/ChartShelf/internal/script"
	"github.com/yildizm/ChartShelf/internal/session"
)

// DefaultPrompt is used when Config.Prompt is empty.
const DefaultPrompt = "chart> "

// Config holds shell configuration.
type Config struct {
	HistoryFile string
	Prompt      string
	// Stdout defaults to os.Stdout.
	Stdout io.Writer
}

// Shell is the interactive command-line interface.
type Shell struct {
	ctrl *session.Controller
	rl   *readline.Instance
	out  io.Writer
}

var errQuit = errors.New("quit")

// New creates a shell on ctrl.
func New(ctrl *session.Controller, cfg Config) (*Shell, error) {
	prompt := cfg.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	out := cfg.Stdout
	if out == nil {
		out = os.Stdout
	}

	completer := NewCompleter(
		func() []string { return ctrl.Data().Columns() },
		func() int { return len(ctrl.State().Encodings) },
	)
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer,
		Stdout:          out,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start readline: %w", err)
	}
	return &Shell{ctrl: ctrl, rl: rl, out: out}, nil
}

// Run reads commands until EOF, quit, or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	defer s.rl.Close()

	fmt.Fprintln(s.out, "Type help for commands. Tab completes rows, options and values.")
	s.printStatus()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if err := s.Handle(line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}
}

// Handle runs one input line. It returns errQuit for quit and exit.
func (s *Shell) Handle(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	switch strings.Fields(line)[0] {
	case "quit", "exit", "q":
		return errQuit
	case "help", "h":
		s.printHelp()
		return nil
	case "show":
		s.printShow()
		return nil
	case "status":
		s.printStatus()
		return nil
	case "spec":
		spec := s.ctrl.Spec()
		fmt.Fprintln(s.out, spec.Summary())
		return nil
	}

	cmd, ok, err := script.ParseLine(line)
	if err != nil || !ok {
		return err
	}
	if err := script.Exec(s.ctrl, cmd); err != nil {
		return err
	}
	s.printStatus()
	return nil
}

func (s *Shell) printStatus() {
	fmt.Fprintf(s.out, "mark %s", s.ctrl.State().Mark.Mark)
	for i := range s.ctrl.State().Encodings {
		fmt.Fprintf(s.out, " | %d %s", i, s.ctrl.RowStatus(i))
	}
	fmt.Fprintln(s.out)
}

func (s *Shell) printShow() {
	fmt.Fprint(s.out, session.DescribePanel(s.ctrl.Panel()))
	art := s.ctrl.Artifact()
	switch {
	case art.Empty():
		fmt.Fprintln(s.out, "(nothing rendered yet)")
	case art.IsText() || strings.HasSuffix(art.MediaType, "json"):
		s.out.Write(art.Body)
		fmt.Fprintln(s.out)
	default:
		fmt.Fprintf(s.out, "%s (%d bytes): %s\n", art.MediaType, len(art.Body), art.Summary)
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `Commands:
  set <row> <title> <value>   change a control (row is a number or "mark")
  unset <row> <title>         reset an option
  mark <name>                 choose the mark, e.g. "mark line"
  markopt <title> <value>     change a mark option
  add                         add an encoding row
  reveal <row>                show or hide the advanced options of a row
  show                        print the panel and the chart
  status                      print one line per row
  spec                        print the compiled chart
  quit                        leave`)
}
