package controls

import (
	"fmt"

	"github.com/yildizm/ChartShelf/internal/chart"
	"github.com/yildizm/ChartShelf/internal/vocab"
)

// Sink receives the events produced by the panel's controls.
type Sink func(chart.UpdateEvent)

// Panel is the full control set: the mark bundle plus one bundle per
// encoding row. Bundle i always belongs to state row i.
type Panel struct {
	Mark *RowControlBundle
	Rows []*RowControlBundle

	columns  []string
	sink     Sink
	onReveal func(row int)
}

// NewPanel builds the mark controls and rows encoding rows. Control changes
// are sent to sink as typed events.
func NewPanel(columns []string, rows int, sink Sink) *Panel {
	p := &Panel{
		columns: append([]string(nil), columns...),
		sink:    sink,
	}
	p.Mark = BuildMarkControls()
	p.bind(p.Mark.Selector)
	p.bindButton(p.Mark)
	for i := 0; i < rows; i++ {
		p.AddRow("")
	}
	return p
}

// OnReveal sets the function called when an options button is pressed.
func (p *Panel) OnReveal(fn func(row int)) {
	p.onReveal = fn
}

// AddRow appends a bundle for a new encoding row. The channel argument
// overrides the positional default when non-empty.
func (p *Panel) AddRow(channel string) *RowControlBundle {
	row := len(p.Rows)
	if channel == "" {
		channel = vocab.ChannelForRow(row)
	}
	b := BuildEncodingRowControls(p.columns, channel, row)
	b.Selector.Observe(func(c Change) {
		b.Button.Disabled = c.New == nil
	})
	p.bind(b.Selector)
	p.bind(b.Channel)
	p.bindButton(b)
	p.Rows = append(p.Rows, b)
	return b
}

// Bundle returns the bundle of a row, or the mark bundle for chart.MarkRow.
func (p *Panel) Bundle(row int) (*RowControlBundle, error) {
	if row == chart.MarkRow {
		return p.Mark, nil
	}
	if row < 0 || row >= len(p.Rows) {
		return nil, fmt.Errorf("panel row %d of %d: %w", row, len(p.Rows), chart.ErrRowOutOfRange)
	}
	return p.Rows[row], nil
}

// ToggleOptions shows the advanced options of a row, built for the channel
// or mark name and seeded from existing. When they are already shown it
// hides and clears them. It reports whether the options are now visible.
func (p *Panel) ToggleOptions(row int, name string, existing map[string]any) (bool, error) {
	b, err := p.Bundle(row)
	if err != nil {
		return false, err
	}
	if b.Revealed() {
		b.Advanced.Clear()
		b.Advanced.Hidden = true
		return false, nil
	}
	if err := p.fillAdvanced(b, name, existing); err != nil {
		return false, err
	}
	b.Advanced.Hidden = false
	return true, nil
}

// Sync re-seeds every control from the state without emitting events.
// Visible advanced containers are rebuilt for the current channel or mark.
func (p *Panel) Sync(s *chart.ChartState) error {
	p.Mark.Selector.Seed(s.Mark.Mark)
	if p.Mark.Revealed() {
		if err := p.fillAdvanced(p.Mark, s.Mark.Mark, s.Mark.Options); err != nil {
			return err
		}
	}
	for i, row := range s.Encodings {
		if i >= len(p.Rows) {
			return fmt.Errorf("panel has %d rows, state has %d", len(p.Rows), len(s.Encodings))
		}
		b := p.Rows[i]
		if row.HasField() {
			b.Selector.Seed(row.Field)
		} else {
			b.Selector.Seed(nil)
		}
		b.Channel.Seed(row.Channel)
		b.Button.Disabled = !row.HasField()
		if b.Revealed() {
			if err := p.fillAdvanced(b, row.Channel, row.Options); err != nil {
				return err
			}
		}
	}
	return nil
}

// Controls returns every visible control in display order: the mark bundle
// first, then the rows.
func (p *Panel) Controls() []*Control {
	out := p.Mark.Controls()
	for _, b := range p.Rows {
		out = append(out, b.Controls()...)
	}
	return out
}

func (p *Panel) fillAdvanced(b *RowControlBundle, name string, existing map[string]any) error {
	children, err := RevealOptions(b.Row, name, existing)
	if err != nil {
		return err
	}
	for _, c := range children {
		p.bind(c)
	}
	b.Advanced.Clear()
	b.Advanced.Append(children...)
	return nil
}

// bind forwards value changes of c to the sink. Row and title are taken
// from the control when it is built, never from its position.
func (p *Panel) bind(c *Control) {
	row, title := c.Row, c.Title
	c.Observe(func(ch Change) {
		if p.sink != nil {
			p.sink(chart.UpdateEvent{Row: row, Title: title, Value: ch.New})
		}
	})
}

func (p *Panel) bindButton(b *RowControlBundle) {
	row := b.Row
	b.Button.Observe(func(Change) {
		if p.onReveal != nil {
			p.onReveal(row)
		}
	})
}
