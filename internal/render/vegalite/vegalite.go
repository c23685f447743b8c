// Package vegalite renders chart specifications as Vega-Lite v5 JSON
// documents with the data inlined.
package vegalite

import (
	"encoding/json"
	"fmt"

	"github.com/yildizm/ChartShelf/internal/dataset"
	"github.com/yildizm/ChartShelf/internal/render"
	"github.com/yildizm/ChartShelf/internal/vocab"
)

// Schema is the $schema URL written into every document.
const Schema = "https://vega.github.io/schema/vega-lite/v5.json"

// Backend is the Vega-Lite renderer.
type Backend struct {
	opts render.Options
}

// New creates a Vega-Lite backend. Zero width or height is left out of the
// document so the viewer picks a size.
func New(opts render.Options) *Backend {
	return &Backend{opts: opts}
}

// Name implements render.Backend.
func (b *Backend) Name() string { return "vegalite" }

// Channel implements render.Backend.
func (b *Backend) Channel(channel, field string, opts map[string]any) (render.Clause, error) {
	return render.NewEncoding(channel, field, opts)
}

// NewChart implements render.Backend.
func (b *Backend) NewChart(mark string, markOptions map[string]any) (render.Chart, error) {
	if !vocab.IsMark(mark) {
		return nil, &vocab.UnknownKeyError{Vocabulary: "mark", Key: mark}
	}
	c := &Chart{
		opts: b.opts,
		mark: map[string]any{"type": render.MarkName(mark)},
	}
	for k, v := range markOptions {
		switch k {
		case vocab.OptColor:
			if v != nil {
				c.mark["color"] = v
			}
		case vocab.OptApplyColorToBackground:
			c.background, _ = v.(bool)
		case vocab.OptShortTimeLabels:
			c.shortTime, _ = v.(bool)
		default:
			return nil, fmt.Errorf("mark option %q: %w", k, render.ErrUnsupported)
		}
	}
	return c, nil
}

// Chart is a Vega-Lite document under construction.
type Chart struct {
	opts       render.Options
	mark       map[string]any
	background bool
	shortTime  bool
	encodings  map[string]*render.Encoding
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

// Render implements render.Chart.
func (c *Chart) Render(t dataset.Table) (render.Artifact, error) {
	doc, err := c.Document(t)
	if err != nil {
		return render.Artifact{}, err
	}
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return render.Artifact{}, fmt.Errorf("failed to marshal document: %w", err)
	}
	return render.Artifact{MediaType: render.MediaVegaLite, Body: body}, nil
}

// Document builds the Vega-Lite document as a plain map.
func (c *Chart) Document(t dataset.Table) (map[string]any, error) {
	values, err := dataset.Records(t)
	if err != nil {
		return nil, err
	}

	encoding := make(map[string]any, len(c.encodings))
	for ch, e := range c.encodings {
		def, err := channelDef(e, t)
		if err != nil {
			return nil, fmt.Errorf("channel %s: %w", ch, err)
		}
		encoding[ch] = def
	}

	doc := map[string]any{
		"$schema":  Schema,
		"data":     map[string]any{"values": values},
		"mark":     c.mark,
		"encoding": encoding,
	}
	if c.opts.Title != "" {
		doc["title"] = c.opts.Title
	}
	if c.opts.Width > 0 {
		doc["width"] = c.opts.Width
	}
	if c.opts.Height > 0 {
		doc["height"] = c.opts.Height
	}
	if color, ok := c.mark["color"]; ok && c.background {
		doc["background"] = color
	}
	if c.shortTime {
		doc["config"] = map[string]any{"timeFormat": "%b %d"}
	}
	return doc, nil
}

// channelDef turns an encoding into a Vega-Lite field definition. The
// wildcard is only valid with count, which Vega-Lite expresses without a
// field.
func channelDef(e *render.Encoding, t dataset.Table) (map[string]any, error) {
	def := make(map[string]any, len(e.Options)+2)
	if e.Field == vocab.Wildcard {
		if e.Aggregate() != "count" {
			return nil, fmt.Errorf("field %q needs the count aggregate", vocab.Wildcard)
		}
	} else {
		if _, err := t.Strings(e.Field); err != nil {
			return nil, err
		}
		def["field"] = e.Field
	}

	typ, err := e.Type(t)
	if err != nil {
		return nil, err
	}
	def["type"] = typ

	for k, v := range e.Options {
		switch k {
		case vocab.OptType:
		case vocab.OptText:
			// The text option only selects the field.
		default:
			def[k] = v
		}
	}
	return def, nil
}
