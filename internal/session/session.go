// Package session drives one interactive chart: it owns the encoding state
// and the control panel, applies control events through the reducer and
// re-renders after every change.
package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/yildizm/ChartShelf/internal/chart"
	"github.com/yildizm/ChartShelf/internal/controls"
	"github.com/yildizm/ChartShelf/internal/dataset"
	"github.com/yildizm/ChartShelf/internal/logger"
	"github.com/yildizm/ChartShelf/internal/render"
	"github.com/yildizm/ChartShelf/internal/render/vegalite"
)

// DefaultRows is the number of encoding rows a session starts with.
const DefaultRows = 3

// Display shows the panel and the latest artifact, replacing whatever it
// showed before.
type Display interface {
	Show(panel *controls.Panel, art render.Artifact) error
}

// Option configures InteractWith.
type Option func(*settings)

type settings struct {
	rows        int
	interactive bool
	backend     render.Backend
	display     Display
	log         *logger.Logger
}

// WithInitialRows sets the number of encoding rows.
func WithInitialRows(n int) Option {
	return func(s *settings) { s.rows = n }
}

// WithInteractive controls whether artifacts are sent to the display.
func WithInteractive(b bool) Option {
	return func(s *settings) { s.interactive = b }
}

// WithBackend sets the renderer. The default is Vega-Lite.
func WithBackend(b render.Backend) Option {
	return func(s *settings) { s.backend = b }
}

// WithDisplay sets where interactive sessions show their output.
func WithDisplay(d Display) Option {
	return func(s *settings) { s.display = d }
}

// WithLogger sets the session logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) { s.log = l }
}

// Controller is one chart session. It is not safe for concurrent use; a
// single front end owns it.
type Controller struct {
	id          string
	data        dataset.Table
	state       *chart.ChartState
	panel       *controls.Panel
	backend     render.Backend
	display     Display
	interactive bool
	log         *logger.Logger

	last render.Artifact
	// pending collects the error of an event raised by a control, since
	// control observers cannot return one.
	pending error
}

// InteractWith starts a session over data. data may be anything
// dataset.From accepts. The chart is rendered once before returning; a
// backend that cannot draw the empty chart is logged, not fatal.
func InteractWith(data any, opts ...Option) (*Controller, error) {
	s := settings{rows: DefaultRows}
	for _, opt := range opts {
		opt(&s)
	}
	if s.rows < 0 {
		return nil, &dataset.InvalidInputError{Type: "rows", Reason: fmt.Sprintf("negative row count %d", s.rows)}
	}

	table, err := dataset.From(data)
	if err != nil {
		return nil, err
	}
	if s.backend == nil {
		s.backend = vegalite.New(render.Options{})
	}
	if s.log == nil {
		s.log = logger.Nop()
	}

	id := uuid.New().String()
	c := &Controller{
		id:          id,
		data:        table,
		state:       chart.NewChartState(table.Columns(), s.rows),
		backend:     s.backend,
		display:     s.display,
		interactive: s.interactive,
		log:         s.log.WithComponent("session").With(logger.F("session", id[:8])),
	}
	c.panel = controls.NewPanel(table.Columns(), s.rows, c.onEvent)
	c.panel.OnReveal(c.onReveal)

	c.log.Info("session started with %d columns, %d rows, backend %s", len(table.Columns()), s.rows, s.backend.Name())
	if _, err := c.Render(); err != nil {
		c.log.WarnWithFields("initial render failed", []logger.Field{logger.Error(err)})
	}
	return c, nil
}

// ID returns the session id.
func (c *Controller) ID() string { return c.id }

// Panel returns the control panel.
func (c *Controller) Panel() *controls.Panel { return c.panel }

// State returns the encoding state. Callers must not modify it; all
// changes go through Apply.
func (c *Controller) State() *chart.ChartState { return c.state }

// Data returns the dataset the chart is rendered against.
func (c *Controller) Data() dataset.Table { return c.data }

// Backend returns the renderer.
func (c *Controller) Backend() render.Backend { return c.backend }

// Artifact returns the last successfully rendered artifact.
func (c *Controller) Artifact() render.Artifact { return c.last }

// Spec compiles the current state.
func (c *Controller) Spec() chart.ChartSpecification {
	return chart.Compile(c.state)
}

// Apply reduces one event into the state and re-renders. A rejected event
// leaves the state and the display as they were. When rendering fails the
// state keeps the change but the previous artifact stays on display.
func (c *Controller) Apply(ev chart.UpdateEvent) error {
	if err := chart.Reduce(c.state, ev); err != nil {
		c.log.DebugWithFields("event rejected", []logger.Field{logger.Row(ev.Row), logger.F("title", ev.Title), logger.Error(err)})
		if syncErr := c.panel.Sync(c.state); syncErr != nil {
			return errors.Join(err, syncErr)
		}
		return fmt.Errorf("%s on row %d: %w", ev.Title, ev.Row, err)
	}
	if err := c.panel.Sync(c.state); err != nil {
		return err
	}
	_, err := c.Render()
	return err
}

// ToggleOptions shows or hides the advanced options of a row, or of the
// mark for chart.MarkRow, then re-renders.
func (c *Controller) ToggleOptions(row int) (bool, error) {
	name, existing := c.state.Mark.Mark, c.state.Mark.Options
	if row != chart.MarkRow {
		r, err := c.state.Row(row)
		if err != nil {
			return false, err
		}
		name, existing = r.Channel, r.Options
	}
	shown, err := c.panel.ToggleOptions(row, name, existing)
	if err != nil {
		return false, err
	}
	_, err = c.Render()
	return shown, err
}

// AddRow appends an encoding row to both the state and the panel and
// returns its index.
func (c *Controller) AddRow() (int, error) {
	idx := c.state.AddRow()
	b := c.panel.AddRow("")
	if b.Row != idx {
		return idx, fmt.Errorf("panel row %d does not match state row %d", b.Row, idx)
	}
	_, err := c.Render()
	return idx, err
}

// Render compiles the state and renders it. On success the artifact is
// kept and, for interactive sessions, shown.
func (c *Controller) Render() (render.Artifact, error) {
	spec, report := chart.CompileWithReport(c.state)
	if dups := c.state.DuplicateChannels(); len(dups) > 0 {
		c.log.WarnWithFields("several rows share a channel, the last one wins", []logger.Field{logger.F("channels", dups)})
	}
	if len(report.Incomplete) > 0 {
		c.log.DebugWithFields("rows without a field were skipped", []logger.Field{logger.F("rows", report.Incomplete)})
	}

	art, err := render.Build(c.backend, spec, c.data)
	if err != nil {
		c.log.DebugWithFields("render failed", []logger.Field{logger.Error(err)})
		return render.Artifact{}, err
	}
	c.last = art
	c.log.Debug("rendered %s", art.Summary)

	if c.interactive && c.display != nil {
		if err := c.display.Show(c.panel, art); err != nil {
			return art, fmt.Errorf("display: %w", err)
		}
	}
	return art, nil
}

// Set changes a control and returns the error of the event it raised.
func (c *Controller) Set(ctrl *controls.Control, v any) error {
	return c.drive(func() error { return ctrl.Set(v) })
}

// Cycle moves a dropdown by step and applies the change.
func (c *Controller) Cycle(ctrl *controls.Control, step int) error {
	return c.drive(func() error { return ctrl.Cycle(step) })
}

// Toggle flips a checkbox and applies the change.
func (c *Controller) Toggle(ctrl *controls.Control) error {
	return c.drive(func() error { return ctrl.Toggle() })
}

// Press fires a button.
func (c *Controller) Press(ctrl *controls.Control) error {
	return c.drive(ctrl.Press)
}

func (c *Controller) drive(fn func() error) error {
	c.pending = nil
	if err := fn(); err != nil {
		return err
	}
	err := c.pending
	c.pending = nil
	return err
}

func (c *Controller) onEvent(ev chart.UpdateEvent) {
	if err := c.Apply(ev); err != nil && c.pending == nil {
		c.pending = err
	}
}

func (c *Controller) onReveal(row int) {
	if _, err := c.ToggleOptions(row); err != nil && c.pending == nil {
		c.pending = err
	}
}
