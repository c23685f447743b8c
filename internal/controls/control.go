// Package controls models the widgets of the chart control panel: dropdowns,
// checkboxes, text inputs, buttons and the containers that group them.
// Front ends (the TUI, the shell) drive these controls; the controls turn
// value changes into chart.UpdateEvents.
package controls

import (
	"errors"
	"fmt"

	"github.com/yildizm/ChartShelf/internal/chart"
)

// Kind is the widget type of a control.
type Kind int

// Widget kinds.
const (
	Dropdown Kind = iota
	Checkbox
	TextInput
	Button
	Container
)

func (k Kind) String() string {
	switch k {
	case Dropdown:
		return "dropdown"
	case Checkbox:
		return "checkbox"
	case TextInput:
		return "text"
	case Button:
		return "button"
	case Container:
		return "container"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Role says what a control is for within its row.
type Role string

const (
	RoleField    Role = "field"
	RoleEncoding Role = "encoding"
	RoleButton   Role = "button"
	RoleAdvanced Role = "advanced"
	RoleMark     Role = "mark"
	RoleOption   Role = "option"
)

// ErrDisabled is returned when a disabled control is changed or pressed.
var ErrDisabled = errors.New("control is disabled")

// InvalidChoiceError reports a value that a control does not offer.
type InvalidChoiceError struct {
	Title chart.OptionTitle
	Value any
}

// Error implements the error interface
func (e *InvalidChoiceError) Error() string {
	return fmt.Sprintf("%v is not a valid choice for %s", e.Value, e.Title)
}

// Change is delivered to observers when a control's value changes or a
// button is pressed.
type Change struct {
	Owner *Control
	New   any
	Old   any
}

// Control is one widget. Row is chart.MarkRow for mark controls.
type Control struct {
	Kind        Kind
	Role        Role
	Title       chart.OptionTitle
	Description string
	// Options are the choices of a dropdown. A nil entry means "none".
	Options  []any
	Value    any
	Row      int
	Disabled bool
	Hidden   bool
	Children []*Control

	observers []func(Change)
}

// Observe registers fn to be called on every change.
func (c *Control) Observe(fn func(Change)) {
	c.observers = append(c.observers, fn)
}

// Set changes the value and notifies observers if it differs from the
// current one.
func (c *Control) Set(v any) error {
	if c.Disabled {
		return fmt.Errorf("%s: %w", c.Title, ErrDisabled)
	}
	if err := c.validate(v); err != nil {
		return err
	}
	if v == c.Value {
		return nil
	}
	old := c.Value
	c.Value = v
	c.notify(Change{Owner: c, New: v, Old: old})
	return nil
}

// Seed sets the value without notifying observers. It is used to bring a
// control in line with state that changed elsewhere.
func (c *Control) Seed(v any) {
	c.Value = v
}

// Press fires a button.
func (c *Control) Press() error {
	if c.Kind != Button {
		return fmt.Errorf("press %s: not a button", c.Kind)
	}
	if c.Disabled {
		return fmt.Errorf("%s: %w", c.Description, ErrDisabled)
	}
	c.notify(Change{Owner: c})
	return nil
}

// Cycle moves a dropdown to the next (step > 0) or previous option.
func (c *Control) Cycle(step int) error {
	if c.Kind != Dropdown || len(c.Options) == 0 {
		return nil
	}
	idx := c.index()
	n := len(c.Options)
	next := ((idx+step)%n + n) % n
	return c.Set(c.Options[next])
}

// Toggle flips a checkbox.
func (c *Control) Toggle() error {
	if c.Kind != Checkbox {
		return nil
	}
	b, _ := c.Value.(bool)
	return c.Set(!b)
}

// Append adds children to a container.
func (c *Control) Append(children ...*Control) {
	c.Children = append(c.Children, children...)
}

// Clear removes every child of a container.
func (c *Control) Clear() {
	c.Children = nil
}

// Label is the display text of the current value.
func (c *Control) Label() string {
	return Label(c.Value)
}

// Label renders a control value; nil shows as "none".
func Label(v any) string {
	if v == nil {
		return "none"
	}
	return fmt.Sprint(v)
}

func (c *Control) index() int {
	for i, o := range c.Options {
		if o == c.Value {
			return i
		}
	}
	return 0
}

func (c *Control) validate(v any) error {
	switch c.Kind {
	case Dropdown:
		for _, o := range c.Options {
			if o == v {
				return nil
			}
		}
		return &InvalidChoiceError{Title: c.Title, Value: v}
	case Checkbox:
		if _, ok := v.(bool); !ok {
			return &InvalidChoiceError{Title: c.Title, Value: v}
		}
	case TextInput:
		if _, ok := v.(string); !ok {
			return &InvalidChoiceError{Title: c.Title, Value: v}
		}
	case Button, Container:
		return fmt.Errorf("%s controls hold no value", c.Kind)
	}
	return nil
}

func (c *Control) notify(ch Change) {
	for _, fn := range c.observers {
		fn(ch)
	}
}
