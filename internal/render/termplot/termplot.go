// Package termplot draws a quick terminal preview of a chart with ntcharts.
// Quantitative fields are plotted directly; nominal and ordinal fields are
// spread over evenly spaced category positions.
package termplot

import (
	"fmt"
	"math"
	"sort"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/aclements/go-moremath/stats"
	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/ChartShelf/internal/dataset"
	"github.com/yildizm/ChartShelf/internal/render"
	"github.com/yildizm/ChartShelf/internal/vocab"
)

const (
	defaultWidth  = 60
	defaultHeight = 16
)

// Point runes by mark.
var markRunes = map[string]rune{
	"mark_point":  '•',
	"mark_circle": '●',
	"mark_square": '■',
	"mark_tick":   '┃',
	"mark_bar":    '█',
	"mark_rule":   '│',
	"mark_text":   '◦',
}

// Backend is the terminal preview renderer.
type Backend struct {
	opts render.Options
}

// New creates a terminal backend. Sizes are in cells.
func New(opts render.Options) *Backend {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	return &Backend{opts: opts}
}

// Name implements render.Backend.
func (b *Backend) Name() string { return "term" }

// Channel implements render.Backend. Every channel is accepted; only x and
// y are drawn.
func (b *Backend) Channel(channel, field string, opts map[string]any) (render.Clause, error) {
	return render.NewEncoding(channel, field, opts)
}

// NewChart implements render.Backend.
func (b *Backend) NewChart(mark string, markOptions map[string]any) (render.Chart, error) {
	if !vocab.IsMark(mark) {
		return nil, &vocab.UnknownKeyError{Vocabulary: "mark", Key: mark}
	}
	c := &Chart{opts: b.opts, mark: mark, style: lipgloss.NewStyle()}
	if name, ok := markOptions[vocab.OptColor].(string); ok {
		c.style = c.style.Foreground(lipgloss.Color(ansiColor(name)))
	}
	return c, nil
}

// Chart is a terminal preview under construction.
type Chart struct {
	opts      render.Options
	mark      string
	style     lipgloss.Style
	encodings map[string]*render.Encoding
}

// Encode implements render.Chart.
func (c *Chart) Encode(clauses map[string]render.Clause) error {
	enc, err := render.Encodings(clauses)
	if err != nil {
		return err
	}
	c.encodings = enc
	return nil
}

// Render implements render.Chart. Without x and y it renders a short note
// instead of a plot.
func (c *Chart) Render(t dataset.Table) (render.Artifact, error) {
	x, y := c.encodings["x"], c.encodings["y"]
	if x == nil || y == nil {
		return render.Artifact{
			MediaType: render.MediaTerminal,
			Body:      []byte("choose a field for x and y to see a preview\n"),
		}, nil
	}
	if x.Field == vocab.Wildcard || y.Field == vocab.Wildcard {
		return render.Artifact{}, fmt.Errorf("wildcard field: %w", render.ErrUnsupported)
	}

	frame, err := dataset.DropMissing(t, x.Field, y.Field)
	if err != nil {
		return render.Artifact{}, err
	}
	xs, xLabels, err := positions(x, frame)
	if err != nil {
		return render.Artifact{}, err
	}
	ys, yLabels, err := positions(y, frame)
	if err != nil {
		return render.Artifact{}, err
	}
	if agg := y.Aggregate(); agg != "" {
		xs, ys = aggregate(xs, ys, agg)
	} else if agg := x.Aggregate(); agg != "" {
		ys, xs = aggregate(ys, xs, agg)
	}

	minX, maxX := bounds(xs)
	minY, maxY := bounds(ys)
	lc := linechart.New(c.opts.Width, c.opts.Height, minX, maxX, minY, maxY,
		linechart.WithXYSteps(2, 2))
	lc.Clear()
	lc.DrawXYAxisAndLabel()

	switch c.mark {
	case "mark_line", "mark_area":
		order := make([]int, len(xs))
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool { return xs[order[a]] < xs[order[b]] })
		for i := 1; i < len(order); i++ {
			p1 := canvas.Float64Point{X: xs[order[i-1]], Y: ys[order[i-1]]}
			p2 := canvas.Float64Point{X: xs[order[i]], Y: ys[order[i]]}
			lc.DrawLineWithStyle(p1, p2, runes.ArcLineStyle, c.style)
		}
	default:
		r := markRunes[c.mark]
		for i := range xs {
			lc.DrawRuneWithStyle(canvas.Float64Point{X: xs[i], Y: ys[i]}, r, c.style)
		}
	}

	body := lc.View() + "\n" + legend(x, xLabels, y, yLabels)
	return render.Artifact{MediaType: render.MediaTerminal, Body: []byte(body)}, nil
}

// positions maps a column to numbers. Categories are numbered in order of
// first appearance and returned as labels.
func positions(e *render.Encoding, t dataset.Table) ([]float64, []string, error) {
	typ, err := e.Type(t)
	if err != nil {
		return nil, nil, err
	}
	if typ == "quantitative" || typ == "temporal" {
		vals, err := dataset.Floats(t, e.Field)
		return vals, nil, err
	}
	cells, err := t.Strings(e.Field)
	if err != nil {
		return nil, nil, err
	}
	index := make(map[string]int)
	var labels []string
	out := make([]float64, len(cells))
	for i, c := range cells {
		n, ok := index[c]
		if !ok {
			n = len(labels)
			index[c] = n
			labels = append(labels, c)
		}
		out[i] = float64(n)
	}
	return out, labels, nil
}

// aggregate groups values by key and reduces each group. Unknown
// functions fall back to the mean.
func aggregate(keys, values []float64, fn string) ([]float64, []float64) {
	groups := make(map[float64][]float64)
	var order []float64
	for i, k := range keys {
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], values[i])
	}
	sort.Float64s(order)

	outK := make([]float64, 0, len(order))
	outV := make([]float64, 0, len(order))
	for _, k := range order {
		g := groups[k]
		var v float64
		switch fn {
		case "min":
			v, _ = stats.Bounds(g)
		case "max":
			_, v = stats.Bounds(g)
		case "sum":
			for _, x := range g {
				v += x
			}
		case "count":
			v = float64(len(g))
		case "median":
			v = stats.Sample{Xs: g}.Quantile(0.5)
		default:
			v = stats.Mean(g)
		}
		outK = append(outK, k)
		outV = append(outV, v)
	}
	return outK, outV
}

func bounds(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 1
	}
	lo, hi := stats.Bounds(xs)
	if lo == hi {
		pad := math.Max(math.Abs(lo)*0.1, 1)
		return lo - pad, hi + pad
	}
	return lo, hi
}

func legend(x *render.Encoding, xLabels []string, y *render.Encoding, yLabels []string) string {
	s := fmt.Sprintf("x: %s  y: %s", x.Field, y.Field)
	if len(xLabels) > 0 {
		s += fmt.Sprintf("\nx categories: %v", xLabels)
	}
	if len(yLabels) > 0 {
		s += fmt.Sprintf("\ny categories: %v", yLabels)
	}
	return s + "\n"
}

func ansiColor(name string) string {
	switch name {
	case "red":
		return "9"
	case "green":
		return "10"
	case "orange":
		return "214"
	case "steelblue":
		return "67"
	case "purple":
		return "5"
	case "gray":
		return "8"
	default:
		return "15"
	}
}
