// Package svg renders chart specifications to SVG with go-gg.
//
// go-gg covers a subset of the chart vocabulary: point, circle, square,
// line, area and text marks; the x, y, color, size, opacity, text, row and
// column channels; mean, min and max aggregation on one positional
// channel; linear and ordinal scales. Everything else fails with
// render.ErrUnsupported.
package svg

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"

	"github.com/yildizm/ChartShelf/internal/chart"
	"github.com/yildizm/ChartShelf/internal/dataset"
	"github.com/yildizm/ChartShelf/internal/render"
	"github.com/yildizm/ChartShelf/internal/vocab"
)

const (
	defaultWidth  = 500
	defaultHeight = 350
)

var namedColors = map[string]color.Color{
	"black":     color.Black,
	"steelblue": color.RGBA{R: 70, G: 130, B: 180, A: 255},
	"orange":    color.RGBA{R: 255, G: 165, A: 255},
	"red":       color.RGBA{R: 255, A: 255},
	"green":     color.RGBA{G: 128, A: 255},
	"purple":    color.RGBA{R: 128, B: 128, A: 255},
	"gray":      color.Gray{Y: 128},
}

var supportedMarks = map[string]bool{
	"mark_point": true, "mark_circle": true, "mark_square": true,
	"mark_line": true, "mark_area": true, "mark_text": true,
}

var supportedChannels = map[string]bool{
	"x": true, "y": true, "color": true, "size": true, "opacity": true,
	"text": true, "row": true, "column": true,
}

// Backend is the go-gg renderer.
type Backend struct {
	opts render.Options
}

// New creates an SVG backend. Zero sizes fall back to 500x350.
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
func (b *Backend) Name() string { return "svg" }

// Channel implements render.Backend.
func (b *Backend) Channel(channel, field string, opts map[string]any) (render.Clause, error) {
	if !supportedChannels[channel] {
		return nil, fmt.Errorf("channel %s: %w", channel, render.ErrUnsupported)
	}
	if field == vocab.Wildcard {
		return nil, fmt.Errorf("wildcard field: %w", render.ErrUnsupported)
	}
	e, err := render.NewEncoding(channel, field, opts)
	if err != nil {
		return nil, err
	}
	if e.Binned() {
		return nil, fmt.Errorf("bin: %w", render.ErrUnsupported)
	}
	if typ, _, _ := e.Scale(); typ != "" && scaleKind(typ) == "" {
		return nil, fmt.Errorf("scale %s: %w", typ, render.ErrUnsupported)
	}
	if agg := e.Aggregate(); agg != "" {
		if aggregator(agg, field) == nil {
			return nil, fmt.Errorf("aggregate %s: %w", agg, render.ErrUnsupported)
		}
		if channel != "x" && channel != "y" {
			return nil, fmt.Errorf("aggregate on %s: %w", channel, render.ErrUnsupported)
		}
	}
	return e, nil
}

// NewChart implements render.Backend.
func (b *Backend) NewChart(mark string, markOptions map[string]any) (render.Chart, error) {
	if !vocab.IsMark(mark) {
		return nil, &vocab.UnknownKeyError{Vocabulary: "mark", Key: mark}
	}
	if !supportedMarks[mark] {
		return nil, fmt.Errorf("mark %s: %w", mark, render.ErrUnsupported)
	}
	c := &Chart{opts: b.opts, mark: mark}
	if name, ok := markOptions[vocab.OptColor].(string); ok {
		col, found := namedColors[name]
		if !found {
			return nil, fmt.Errorf("color %q: %w", name, render.ErrUnsupported)
		}
		c.color = col
	}
	return c, nil
}

// Chart is a go-gg plot under construction.
type Chart struct {
	opts      render.Options
	mark      string
	color     color.Color
	encodings map[string]*render.Encoding
}

// Encode implements render.Chart.
func (c *Chart) Encode(clauses map[string]render.Clause) error {
	enc, err := render.Encodings(clauses)
	if err != nil {
		return err
	}
	var aggregated int
	for _, e := range enc {
		if e.Aggregate() != "" {
			aggregated++
		}
	}
	if aggregated > 1 {
		return fmt.Errorf("more than one aggregate: %w", render.ErrUnsupported)
	}
	if c.mark == "mark_text" && enc["text"] == nil {
		return fmt.Errorf("mark_text needs a text channel")
	}
	c.encodings = enc
	return nil
}

// Render implements render.Chart.
func (c *Chart) Render(t dataset.Table) (render.Artifact, error) {
	plot, err := c.Plot(t)
	if err != nil {
		return render.Artifact{}, err
	}
	var buf bytes.Buffer
	if err := plot.WriteSVG(&buf, c.opts.Width, c.opts.Height); err != nil {
		return render.Artifact{}, fmt.Errorf("failed to write svg: %w", err)
	}
	return render.Artifact{MediaType: render.MediaSVG, Body: buf.Bytes()}, nil
}

// Plot builds the go-gg plot without rendering it.
func (c *Chart) Plot(t dataset.Table) (*gg.Plot, error) {
	if c.encodings["x"] == nil || c.encodings["y"] == nil {
		return nil, fmt.Errorf("x and y are required: %w", render.ErrUnsupported)
	}

	tab, err := c.table(t)
	if err != nil {
		return nil, err
	}
	plot := gg.NewPlot(tab)

	x, y := c.col("x"), c.col("y")
	if stat, agg := c.aggregate(); stat != nil {
		plot.Stat(stat)
		if c.encodings["x"].Aggregate() != "" {
			x = agg
		} else {
			y = agg
		}
	}

	for _, axis := range []string{"x", "y"} {
		if s := c.scale(axis); s != nil {
			plot.SetScale(axis, s)
		}
		plot.Add(gg.AxisLabel(axis, chart.Shorthand(chart.EncodingClause(c.encodings[axis].Dict()))))
	}
	if f := c.col("row"); f != "" {
		plot.Add(gg.FacetY{Col: f})
	}
	if f := c.col("column"); f != "" {
		plot.Add(gg.FacetX{Col: f})
	}

	switch c.mark {
	case "mark_line":
		layer := gg.LayerLines{X: x, Y: y, Color: c.col("color")}
		if layer.Color == "" && c.color != nil {
			layer.Color = plot.Const(c.color)
		}
		plot.Add(layer)
	case "mark_area":
		layer := gg.LayerArea{X: x, Upper: y, Fill: c.col("color")}
		if layer.Fill == "" && c.color != nil {
			layer.Fill = plot.Const(c.color)
		}
		plot.Add(layer)
	case "mark_text":
		plot.Add(gg.LayerTags{X: x, Y: y, Label: c.col("text")})
	default:
		layer := gg.LayerPoints{
			X:       x,
			Y:       y,
			Color:   c.col("color"),
			Opacity: c.col("opacity"),
			Size:    c.col("size"),
		}
		if layer.Color == "" && c.color != nil {
			layer.Color = plot.Const(c.color)
		}
		plot.Add(layer)
	}

	if c.opts.Title != "" {
		plot.Add(gg.Title(c.opts.Title))
	}
	return plot, nil
}

// col returns the field of a channel, or "".
func (c *Chart) col(channel string) string {
	if e := c.encodings[channel]; e != nil {
		return e.Field
	}
	return ""
}

// table copies the columns used by the encodings into a go-gg table. Rows
// with a missing cell in any used column are dropped.
func (c *Chart) table(t dataset.Table) (*table.Table, error) {
	var used []string
	seen := make(map[string]bool)
	for _, ch := range vocab.Channels() {
		e := c.encodings[ch]
		if e == nil || seen[e.Field] {
			continue
		}
		seen[e.Field] = true
		used = append(used, e.Field)
	}

	frame, err := dataset.DropMissing(t, used...)
	if err != nil {
		return nil, err
	}

	b := new(table.Builder)
	for _, ch := range vocab.Channels() {
		e := c.encodings[ch]
		if e == nil || !seen[e.Field] {
			continue
		}
		seen[e.Field] = false

		typ, err := e.Type(frame)
		if err != nil {
			return nil, err
		}
		switch {
		case (typ == "quantitative" || typ == "temporal") && ch != "row" && ch != "column":
			vals, err := dataset.Floats(frame, e.Field)
			if err != nil {
				return nil, err
			}
			b.Add(e.Field, vals)
		default:
			vals, err := frame.Strings(e.Field)
			if err != nil {
				return nil, err
			}
			b.Add(e.Field, vals)
		}
	}
	return b.Done(), nil
}

// aggregate returns the stat for the aggregated positional channel and the
// name of the column it produces.
func (c *Chart) aggregate() (gg.Stat, string) {
	var target *render.Encoding
	for _, ch := range []string{"x", "y"} {
		if e := c.encodings[ch]; e.Aggregate() != "" {
			target = e
		}
	}
	if target == nil {
		return nil, ""
	}

	var groups []string
	for _, ch := range vocab.Channels() {
		e := c.encodings[ch]
		if e == nil || e == target || e.Field == target.Field {
			continue
		}
		groups = append(groups, e.Field)
	}
	agg := target.Aggregate()
	return ggstat.Agg(groups...)(aggregator(agg, target.Field)), aggColumn(agg, target.Field)
}

func aggregator(name, field string) ggstat.Aggregator {
	switch name {
	case "mean", "average":
		return ggstat.AggMean(field)
	case "min":
		return ggstat.AggMin(field)
	case "max":
		return ggstat.AggMax(field)
	}
	return nil
}

// aggColumn is the column go-gg names the aggregate output.
func aggColumn(name, field string) string {
	if name == "average" {
		name = "mean"
	}
	return name + " " + field
}

func scaleKind(typ string) string {
	switch typ {
	case "linear":
		return "linear"
	case "ordinal", "band", "point":
		return "ordinal"
	}
	return ""
}

func (c *Chart) scale(axis string) gg.Scaler {
	typ, zero, hasZero := c.encodings[axis].Scale()
	switch scaleKind(typ) {
	case "ordinal":
		return gg.NewOrdinalScale()
	case "linear":
		s := gg.NewLinearScaler()
		if hasZero && zero {
			s = s.Include(0)
		}
		return s
	}
	if hasZero && zero {
		return gg.NewLinearScaler().Include(0)
	}
	return nil
}
