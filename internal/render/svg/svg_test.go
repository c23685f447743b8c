package svg

import (
	"bytes"
	"errors"
	"testing"

	"github.com/yildizm/ChartShelf/internal/chart"
	"github.com/yildizm/ChartShelf/internal/dataset"
	"github.com/yildizm/ChartShelf/internal/render"
)

func cars(t *testing.T) dataset.Table {
	t.Helper()
	tbl, err := dataset.Sample("cars")
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

func spec(mark string, enc map[string]chart.EncodingClause) chart.ChartSpecification {
	return chart.ChartSpecification{Mark: mark, MarkOptions: map[string]any{}, Encodings: enc}
}

func TestRenderPoints(t *testing.T) {
	s := spec("mark_point", map[string]chart.EncodingClause{
		"x": {"field": "Horsepower"},
		"y": {"field": "Acceleration", "scale": map[string]any{"zero": true}},
	})
	art, err := render.Build(New(render.Options{Title: "cars"}), s, cars(t))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if art.MediaType != render.MediaSVG {
		t.Errorf("MediaType = %q", art.MediaType)
	}
	if !bytes.Contains(art.Body, []byte("<svg")) {
		t.Errorf("body does not look like svg: %.80s", art.Body)
	}
}

func TestRenderAggregatedLine(t *testing.T) {
	s := spec("mark_line", map[string]chart.EncodingClause{
		"x": {"field": "Cylinders"},
		"y": {"field": "Miles_per_Gallon", "aggregate": "mean"},
	})
	art, err := render.Build(New(render.Options{Width: 300, Height: 200}), s, cars(t))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !bytes.Contains(art.Body, []byte("<svg")) {
		t.Errorf("body does not look like svg: %.80s", art.Body)
	}
}

func TestPlotUsesAggregateColumn(t *testing.T) {
	b := New(render.Options{})
	c, err := b.NewChart("mark_point", nil)
	if err != nil {
		t.Fatal(err)
	}
	x, _ := b.Channel("x", "Origin", nil)
	y, err := b.Channel("y", "Horsepower", map[string]any{"aggregate": "max"})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Encode(map[string]render.Clause{"x": x, "y": y}); err != nil {
		t.Fatal(err)
	}
	stat, col := c.(*Chart).aggregate()
	if stat == nil || col != "max Horsepower" {
		t.Errorf("aggregate() = %v, %q; want max Horsepower", stat, col)
	}
}

func TestUnsupported(t *testing.T) {
	tests := []struct {
		name string
		spec chart.ChartSpecification
	}{
		{"bar mark", spec("mark_bar", nil)},
		{"shape channel", spec("mark_point", map[string]chart.EncodingClause{"shape": {"field": "Origin"}})},
		{"bin", spec("mark_point", map[string]chart.EncodingClause{"x": {"field": "Horsepower", "bin": true}})},
		{"median", spec("mark_point", map[string]chart.EncodingClause{"y": {"field": "Horsepower", "aggregate": "median"}})},
		{"log scale", spec("mark_point", map[string]chart.EncodingClause{"x": {"field": "Horsepower", "scale": map[string]any{"type": "log"}}})},
		{"wildcard", spec("mark_point", map[string]chart.EncodingClause{"y": {"field": "*", "aggregate": "count"}})},
		{"missing y", spec("mark_point", map[string]chart.EncodingClause{"x": {"field": "Horsepower"}})},
		{"aggregate on color", spec("mark_point", map[string]chart.EncodingClause{"color": {"field": "Horsepower", "aggregate": "mean"}})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := render.Build(New(render.Options{}), tt.spec, cars(t))
			if !errors.Is(err, render.ErrUnsupported) {
				t.Errorf("Build() error = %v, want ErrUnsupported", err)
			}
		})
	}
}

func TestMarkColor(t *testing.T) {
	b := New(render.Options{})
	if _, err := b.NewChart("mark_point", map[string]any{"color": "orange"}); err != nil {
		t.Errorf("NewChart(orange) error = %v", err)
	}
	if _, err := b.NewChart("mark_point", map[string]any{"color": "chartreuse"}); !errors.Is(err, render.ErrUnsupported) {
		t.Errorf("NewChart(chartreuse) error = %v", err)
	}
}
