package termplot

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/yildizm/ChartShelf/internal/chart"
	"github.com/yildizm/ChartShelf/internal/dataset"
	"github.com/yildizm/ChartShelf/internal/render"
)

func TestRenderPreview(t *testing.T) {
	cars, err := dataset.Sample("cars")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		mark string
		enc  map[string]chart.EncodingClause
		want []string
	}{
		{
			name: "scatter",
			mark: "mark_point",
			enc:  map[string]chart.EncodingClause{"x": {"field": "Horsepower"}, "y": {"field": "Acceleration"}},
			want: []string{"x: Horsepower  y: Acceleration"},
		},
		{
			name: "categories",
			mark: "mark_line",
			enc: map[string]chart.EncodingClause{
				"x": {"field": "Origin"},
				"y": {"field": "Miles_per_Gallon", "aggregate": "mean"},
			},
			want: []string{"x categories: [USA Japan Europe]"},
		},
		{
			name: "no axes",
			mark: "mark_point",
			enc:  map[string]chart.EncodingClause{"color": {"field": "Origin"}},
			want: []string{"choose a field for x and y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := chart.ChartSpecification{Mark: tt.mark, MarkOptions: map[string]any{"color": "red"}, Encodings: tt.enc}
			art, err := render.Build(New(render.Options{Width: 40, Height: 10}), spec, cars)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if !art.IsText() {
				t.Errorf("MediaType = %q, want text", art.MediaType)
			}
			for _, w := range tt.want {
				if !strings.Contains(string(art.Body), w) {
					t.Errorf("preview missing %q:\n%s", w, art.Body)
				}
			}
		})
	}
}

func TestRenderWildcard(t *testing.T) {
	cars, _ := dataset.Sample("cars")
	spec := chart.ChartSpecification{
		Mark:      "mark_bar",
		Encodings: map[string]chart.EncodingClause{"x": {"field": "Origin"}, "y": {"field": "*", "aggregate": "count"}},
	}
	if _, err := render.Build(New(render.Options{}), spec, cars); !errors.Is(err, render.ErrUnsupported) {
		t.Errorf("Build() error = %v, want ErrUnsupported", err)
	}
}

func TestAggregate(t *testing.T) {
	keys := []float64{2, 1, 2, 1, 3}
	vals := []float64{10, 1, 20, 3, 7}

	tests := []struct {
		fn   string
		want []float64
	}{
		{"mean", []float64{2, 15, 7}},
		{"min", []float64{1, 10, 7}},
		{"max", []float64{3, 20, 7}},
		{"sum", []float64{4, 30, 7}},
		{"count", []float64{2, 2, 1}},
	}
	for _, tt := range tests {
		gotK, gotV := aggregate(keys, vals, tt.fn)
		if !reflect.DeepEqual(gotK, []float64{1, 2, 3}) {
			t.Errorf("%s keys = %v", tt.fn, gotK)
		}
		if !reflect.DeepEqual(gotV, tt.want) {
			t.Errorf("%s values = %v, want %v", tt.fn, gotV, tt.want)
		}
	}
}

func TestBoundsPadsFlatData(t *testing.T) {
	lo, hi := bounds([]float64{5, 5})
	if lo >= 5 || hi <= 5 {
		t.Errorf("bounds = %v, %v; want padding around 5", lo, hi)
	}
	if lo, hi := bounds(nil); lo != 0 || hi != 1 {
		t.Errorf("bounds(nil) = %v, %v", lo, hi)
	}
}
