package session

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yildizm/ChartShelf/internal/chart"
	"github.com/yildizm/ChartShelf/internal/controls"
	"github.com/yildizm/ChartShelf/internal/render"
)

const clearScreen = "\x1b[H\x1b[2J"

// WriterDisplay writes a text view of the panel followed by the artifact.
// Text artifacts are written as is; others are summarized.
type WriterDisplay struct {
	w     io.Writer
	clear bool
}

// NewWriterDisplay creates a display on w. When clear is set the terminal
// is cleared before every frame.
func NewWriterDisplay(w io.Writer, clear bool) *WriterDisplay {
	return &WriterDisplay{w: w, clear: clear}
}

// Show implements Display.
func (d *WriterDisplay) Show(panel *controls.Panel, art render.Artifact) error {
	var b strings.Builder
	if d.clear {
		b.WriteString(clearScreen)
	}
	b.WriteString(DescribePanel(panel))
	b.WriteString("\n")
	if art.IsText() {
		b.Write(art.Body)
	} else {
		fmt.Fprintf(&b, "%s (%d bytes): %s\n", art.MediaType, len(art.Body), art.Summary)
	}
	_, err := io.WriteString(d.w, b.String())
	return err
}

// FileDisplay writes each artifact body to a file, replacing the previous
// one through a rename so readers never see a partial chart.
type FileDisplay struct {
	Path string
}

// Show implements Display.
func (d *FileDisplay) Show(_ *controls.Panel, art render.Artifact) error {
	dir := filepath.Dir(d.Path)
	tmp, err := os.CreateTemp(dir, ".chartshelf-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(art.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), d.Path)
}

// DescribePanel renders the panel as plain text, one line per row.
func DescribePanel(p *controls.Panel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "mark: %s%s\n", p.Mark.Selector.Label(), describeOptions(p.Mark))
	for _, r := range p.Rows {
		fmt.Fprintf(&b, "row %d: %-8s = %s%s\n", r.Row, r.Channel.Label(), r.Selector.Label(), describeOptions(r))
	}
	return b.String()
}

func describeOptions(b *controls.RowControlBundle) string {
	if !b.Revealed() {
		return ""
	}
	parts := make([]string, 0, len(b.Advanced.Children))
	for _, c := range b.Advanced.Children {
		parts = append(parts, fmt.Sprintf("%s=%s", c.Title, c.Label()))
	}
	return " [" + strings.Join(parts, " ") + "]"
}

// RowStatus is the shorthand of one row, e.g. "x=mean(Horsepower:Q)".
func (c *Controller) RowStatus(row int) string {
	r, err := c.state.Row(row)
	if err != nil {
		return err.Error()
	}
	clause, ok := chart.CompileRow(r)
	if !ok {
		return r.Channel + ": no field"
	}
	return r.Channel + "=" + chart.Shorthand(clause)
}
