// Package ui is the full-screen chart panel built on bubbletea.
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/ChartShelf/internal/chart"
	"github.com/yildizm/ChartShelf/internal/controls"
	"github.com/yildizm/ChartShelf/internal/emoji"
	"github.com/yildizm/ChartShelf/internal/session"
)

// PanelModel shows the control panel next to the last rendered chart. Every
// key press goes through the session controller, so the panel, the state
// and the chart never disagree.
type PanelModel struct {
	ctrl   *session.Controller
	styles *Styles

	width  int
	height int
	focus  int

	editing bool
	input   []rune

	showHelp bool
	status   string
	err      error
	quitting bool
}

// NewPanelModel creates a model on ctrl using the current theme.
func NewPanelModel(ctrl *session.Controller) *PanelModel {
	return &PanelModel{
		ctrl:   ctrl,
		styles: GetStyles(),
		status: "ready",
	}
}

// Init implements tea.Model
func (m *PanelModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *PanelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m.handleEditKey(msg)
		}
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m *PanelModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k", "shift+tab":
		m.moveFocus(-1)
	case "down", "j", "tab":
		m.moveFocus(1)
	case "left", "h":
		m.act("cycle", func(c *controls.Control) error { return m.ctrl.Cycle(c, -1) })
	case "right", "l":
		m.act("cycle", func(c *controls.Control) error { return m.ctrl.Cycle(c, 1) })
	case " ":
		m.act("toggle", m.ctrl.Toggle)
	case "enter":
		m.activate()
	case "a":
		m.addRow()
	case "i":
		m.startEdit()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *PanelModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEsc:
		m.editing = false
		m.input = nil
		m.status = "edit cancelled"
	case tea.KeyEnter:
		text := string(m.input)
		m.editing = false
		m.input = nil
		m.act("edit", func(c *controls.Control) error { return m.ctrl.Set(c, text) })
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	}
	return m, nil
}

// Focused returns the control under the cursor.
func (m *PanelModel) Focused() *controls.Control {
	all := m.ctrl.Panel().Controls()
	if len(all) == 0 {
		return nil
	}
	if m.focus >= len(all) {
		m.focus = len(all) - 1
	}
	return all[m.focus]
}

func (m *PanelModel) moveFocus(step int) {
	n := len(m.ctrl.Panel().Controls())
	if n == 0 {
		return
	}
	m.focus = ((m.focus+step)%n + n) % n
}

// act runs fn on the focused control and records the outcome. A failed
// change leaves the previous chart on screen.
func (m *PanelModel) act(what string, fn func(*controls.Control) error) {
	c := m.Focused()
	if c == nil {
		return
	}
	if err := fn(c); err != nil {
		m.err = err
		m.status = what + " failed"
		return
	}
	m.err = nil
	m.status = m.ctrl.Spec().Summary()
	// Pressing a button can hide controls below the cursor.
	m.Focused()
}

func (m *PanelModel) activate() {
	c := m.Focused()
	if c == nil {
		return
	}
	switch c.Kind {
	case controls.Button:
		m.act("press", m.ctrl.Press)
	case controls.Checkbox:
		m.act("toggle", m.ctrl.Toggle)
	case controls.TextInput:
		m.startEdit()
	default:
		m.act("cycle", func(c *controls.Control) error { return m.ctrl.Cycle(c, 1) })
	}
}

func (m *PanelModel) addRow() {
	row, err := m.ctrl.AddRow()
	if err != nil {
		m.err = err
		m.status = "add failed"
		return
	}
	m.err = nil
	m.status = fmt.Sprintf("added row %d", row)
}

func (m *PanelModel) startEdit() {
	c := m.Focused()
	if c == nil || c.Kind != controls.TextInput {
		m.status = "only text options can be edited"
		return
	}
	m.editing = true
	s, _ := c.Value.(string)
	m.input = []rune(s)
}

// View implements tea.Model
func (m *PanelModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(emoji.GetEmoji("chart") + " ChartShelf"))
	b.WriteString("\n\n")

	panel := m.renderPanel()
	chartView := m.renderChart()
	if m.width >= 100 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panel, "  ", chartView))
	} else {
		b.WriteString(panel)
		b.WriteString("\n")
		b.WriteString(chartView)
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(m.renderHelp())
	} else {
		b.WriteString(m.styles.Muted.Render("↑/↓ move  ←/→ change  space toggle  enter press  a add row  i edit  ? help  q quit"))
	}
	return b.String()
}

func (m *PanelModel) renderPanel() string {
	p := m.ctrl.Panel()
	focused := m.Focused()

	var b strings.Builder
	b.WriteString(m.styles.Row.Render("mark"))
	b.WriteString("\n")
	m.renderBundle(&b, p.Mark, focused)
	for _, r := range p.Rows {
		b.WriteString(m.styles.Row.Render(fmt.Sprintf("row %d", r.Row)))
		b.WriteString(m.styles.Muted.Render("  " + m.ctrl.RowStatus(r.Row)))
		b.WriteString("\n")
		m.renderBundle(&b, r, focused)
	}
	return b.String()
}

func (m *PanelModel) renderBundle(b *strings.Builder, bundle *controls.RowControlBundle, focused *controls.Control) {
	for _, c := range bundle.Controls() {
		indent := "  "
		if c.Kind != controls.Button && c != bundle.Selector && c != bundle.Channel {
			indent = "    "
		}
		line := indent + m.controlText(c)
		switch {
		case c == focused:
			line = m.styles.Focused.Render(line)
		case c.Disabled:
			line = m.styles.Disabled.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func (m *PanelModel) controlText(c *controls.Control) string {
	switch c.Kind {
	case controls.Button:
		if m.revealed(c) {
			return "[- " + c.Description + "]"
		}
		return "[+ " + c.Description + "]"
	case controls.Checkbox:
		mark := "[ ]"
		if b, _ := c.Value.(bool); b {
			mark = "[x]"
		}
		return mark + " " + c.Description
	case controls.TextInput:
		if m.editing && c == m.Focused() {
			return c.Description + ": " + string(m.input) + "█"
		}
		return c.Description + ": " + fmt.Sprintf("%q", c.Label())
	default:
		return m.styles.Label.Render(c.Description+":") + " " + m.styles.Value.Render("‹ "+c.Label()+" ›")
	}
}

func (m *PanelModel) revealed(button *controls.Control) bool {
	p := m.ctrl.Panel()
	if button.Row == chart.MarkRow {
		return p.Mark.Revealed()
	}
	b, err := p.Bundle(button.Row)
	return err == nil && b.Revealed()
}

func (m *PanelModel) renderChart() string {
	art := m.ctrl.Artifact()
	var body string
	switch {
	case art.Empty():
		body = m.styles.Muted.Render("nothing rendered yet, pick a field")
	case art.IsText():
		body = strings.TrimRight(string(art.Body), "\n")
	default:
		body = fmt.Sprintf("%s\n%s\n%d bytes", art.Summary, m.styles.Muted.Render(art.MediaType), len(art.Body))
	}
	return m.styles.Chart.Render(body)
}

func (m *PanelModel) renderStatus() string {
	if m.err != nil {
		return m.styles.Error.Render(emoji.GetEmoji("error") + " " + m.status + ": " + m.err.Error())
	}
	return m.styles.Success.Render(m.status)
}

func (m *PanelModel) renderHelp() string {
	return m.styles.Muted.Render(`up/k, down/j, tab  move between controls
left/h, right/l     previous or next choice
space               toggle a checkbox
enter               press a button, toggle, or edit text
a                   add an encoding row
i                   edit a text option (enter commits, esc cancels)
q, ctrl+c           quit`)
}

// Err returns the error of the last action, nil when it succeeded.
func (m *PanelModel) Err() error {
	return m.err
}

// Run shows the panel full screen until the user quits.
func Run(ctrl *session.Controller) error {
	p := tea.NewProgram(NewPanelModel(ctrl), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
