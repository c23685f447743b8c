// Package render defines the contract between a compiled chart
// specification and the library that draws it. Backends live in the
// subpackages: vegalite (JSON), svg (go-gg) and termplot (ntcharts).
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yildizm/ChartShelf/internal/chart"
	"github.com/yildizm/ChartShelf/internal/dataset"
	"github.com/yildizm/ChartShelf/internal/vocab"
)

// ErrUnsupported is returned by backends for marks, channels or options
// they cannot draw.
var ErrUnsupported = errors.New("not supported by renderer")

// Media types of the built-in backends.
const (
	MediaVegaLite = "application/vnd.vegalite.v5+json"
	MediaSVG      = "image/svg+xml"
	MediaTerminal = "text/plain; charset=utf-8"
)

// Artifact is a rendered chart.
type Artifact struct {
	MediaType string
	Body      []byte
	// Summary is the one-line shorthand of the specification it was
	// rendered from.
	Summary string
}

// Empty reports whether nothing has been rendered yet.
func (a Artifact) Empty() bool {
	return len(a.Body) == 0
}

// IsText reports whether Body can be written to a terminal as is.
func (a Artifact) IsText() bool {
	return strings.HasPrefix(a.MediaType, "text/")
}

// Clause is one channel encoding as built by a backend.
type Clause interface {
	// Dict returns the inspectable form of the clause.
	Dict() map[string]any
}

// Chart is a chart under construction.
type Chart interface {
	Encode(clauses map[string]Clause) error
	Render(t dataset.Table) (Artifact, error)
}

// Backend constructs charts and channel clauses.
type Backend interface {
	Name() string
	NewChart(mark string, markOptions map[string]any) (Chart, error)
	Channel(channel, field string, opts map[string]any) (Clause, error)
}

// Options are shared by backends that draw to a fixed size.
type Options struct {
	Width  int
	Height int
	Title  string
}

// Build renders spec against t: the chart is created from the mark name
// and mark options, one clause is built per channel and the clauses are
// encoded before rendering.
func Build(b Backend, spec chart.ChartSpecification, t dataset.Table) (Artifact, error) {
	c, err := b.NewChart(spec.Mark, spec.MarkOptions)
	if err != nil {
		return Artifact{}, fmt.Errorf("%s: %w", b.Name(), err)
	}

	clauses := make(map[string]Clause, len(spec.Encodings))
	for _, ch := range spec.Channels() {
		enc := spec.Encodings[ch]
		field, _ := enc["field"].(string)
		opts := make(map[string]any, len(enc))
		for k, v := range enc {
			if k != "field" {
				opts[k] = v
			}
		}
		clause, err := b.Channel(ch, field, opts)
		if err != nil {
			return Artifact{}, fmt.Errorf("%s: channel %s: %w", b.Name(), ch, err)
		}
		clauses[ch] = clause
	}

	if err := c.Encode(clauses); err != nil {
		return Artifact{}, fmt.Errorf("%s: %w", b.Name(), err)
	}
	art, err := c.Render(t)
	if err != nil {
		return Artifact{}, fmt.Errorf("%s: %w", b.Name(), err)
	}
	art.Summary = spec.Summary()
	return art, nil
}

// Encoding is a plain Clause that backends can share.
type Encoding struct {
	Channel string
	Field   string
	Options map[string]any
}

// Dict implements Clause.
func (e *Encoding) Dict() map[string]any {
	d := make(map[string]any, len(e.Options)+1)
	for k, v := range e.Options {
		d[k] = v
	}
	d["field"] = e.Field
	return d
}

// Aggregate returns the aggregate function, or "" when there is none.
func (e *Encoding) Aggregate() string {
	s, _ := e.Options[vocab.OptAggregate].(string)
	return s
}

// Binned reports whether the field is binned.
func (e *Encoding) Binned() bool {
	b, _ := e.Options[vocab.OptBin].(bool)
	return b
}

// Scale returns the nested scale type and zero flag. hasZero is false
// when zero was left to the renderer.
func (e *Encoding) Scale() (typ string, zero, hasZero bool) {
	scale, _ := e.Options["scale"].(map[string]any)
	typ, _ = scale["type"].(string)
	zero, hasZero = scale["zero"].(bool)
	return typ, zero, hasZero
}

// Type returns the declared field type, or infers one from t when the
// type was left to auto-detection. The wildcard is quantitative.
func (e *Encoding) Type(t dataset.Table) (string, error) {
	if s, ok := e.Options[vocab.OptType].(string); ok && s != "" {
		return s, nil
	}
	if e.Field == vocab.Wildcard {
		return "quantitative", nil
	}
	return dataset.InferType(t, e.Field)
}

// NewEncoding checks the channel and copies the options.
func NewEncoding(channel, field string, opts map[string]any) (*Encoding, error) {
	if !vocab.IsChannel(channel) {
		return nil, &vocab.UnknownKeyError{Vocabulary: "channel", Key: channel}
	}
	if field == "" {
		return nil, fmt.Errorf("channel %s has no field", channel)
	}
	cp := make(map[string]any, len(opts))
	for k, v := range opts {
		cp[k] = v
	}
	return &Encoding{Channel: channel, Field: field, Options: cp}, nil
}

// MarkName strips the "mark_" prefix: "mark_point" becomes "point".
func MarkName(mark string) string {
	return strings.TrimPrefix(mark, "mark_")
}

// Encodings converts clauses built by NewEncoding back to *Encoding.
// Clauses of another type are an error.
func Encodings(clauses map[string]Clause) (map[string]*Encoding, error) {
	out := make(map[string]*Encoding, len(clauses))
	for ch, c := range clauses {
		e, ok := c.(*Encoding)
		if !ok {
			return nil, fmt.Errorf("channel %s: foreign clause %T", ch, c)
		}
		out[ch] = e
	}
	return out, nil
}
