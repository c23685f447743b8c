package script

import (
	"fmt"

	"github.com/yildizm/ChartShelf/internal/chart"
)

// Target is what a script drives; *session.Controller implements it.
type Target interface {
	Apply(ev chart.UpdateEvent) error
	AddRow() (int, error)
	ToggleOptions(row int) (bool, error)
}

// Exec runs one command against t.
func Exec(t Target, cmd Command) error {
	switch cmd.Action {
	case ActionEvent:
		return t.Apply(cmd.Event)
	case ActionAdd:
		_, err := t.AddRow()
		return err
	case ActionReveal:
		_, err := t.ToggleOptions(cmd.Row)
		return err
	default:
		return fmt.Errorf("unknown action %v", cmd.Action)
	}
}

// Run executes cmds in order and stops at the first failure. The error
// names the source line when it is known.
func Run(t Target, cmds []Command) error {
	for i, cmd := range cmds {
		if err := Exec(t, cmd); err != nil {
			if cmd.Line > 0 {
				return fmt.Errorf("line %d: %w", cmd.Line, err)
			}
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

// StateTarget applies a script straight to a chart state, without a panel
// or a render after every step. Revealing options is a no-op beyond
// checking the row.
type StateTarget struct {
	State *chart.ChartState
}

// Apply implements Target.
func (t StateTarget) Apply(ev chart.UpdateEvent) error {
	return chart.Reduce(t.State, ev)
}

// AddRow implements Target.
func (t StateTarget) AddRow() (int, error) {
	return t.State.AddRow(), nil
}

// ToggleOptions implements Target.
func (t StateTarget) ToggleOptions(row int) (bool, error) {
	if row == chart.MarkRow {
		return false, nil
	}
	_, err := t.State.Row(row)
	return false, err
}
