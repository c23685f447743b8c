package vegalite

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/yildizm/ChartShelf/internal/chart"
	"github.com/yildizm/ChartShelf/internal/dataset"
	"github.com/yildizm/ChartShelf/internal/render"
	"github.com/yildizm/ChartShelf/internal/vocab"
)

func carsTable(t *testing.T) dataset.Table {
	t.Helper()
	tbl, err := dataset.From([][]string{
		{"Acceleration", "Cylinders", "Origin"},
		{"12", "8", "USA"},
		{"15", "4", "Japan"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

func buildSpec(t *testing.T, events ...chart.UpdateEvent) chart.ChartSpecification {
	t.Helper()
	s := chart.NewChartState([]string{"Acceleration", "Cylinders", "Origin"}, 3)
	for _, ev := range events {
		if err := chart.Reduce(s, ev); err != nil {
			t.Fatalf("Reduce(%+v) error = %v", ev, err)
		}
	}
	return chart.Compile(s)
}

func decode(t *testing.T, art render.Artifact) map[string]any {
	t.Helper()
	if art.MediaType != render.MediaVegaLite {
		t.Errorf("MediaType = %q", art.MediaType)
	}
	var doc map[string]any
	if err := json.Unmarshal(art.Body, &doc); err != nil {
		t.Fatalf("artifact is not JSON: %v", err)
	}
	return doc
}

func TestRenderDocument(t *testing.T) {
	spec := buildSpec(t,
		chart.UpdateEvent{Row: 0, Title: chart.TitleField, Value: "Acceleration"},
		chart.UpdateEvent{Row: 0, Title: chart.TitleScale, Value: "log"},
		chart.UpdateEvent{Row: 1, Title: chart.TitleField, Value: "Cylinders"},
		chart.UpdateEvent{Row: 1, Title: chart.TitleType, Value: "O"},
		chart.UpdateEvent{Row: 2, Title: chart.TitleField, Value: "Origin"},
		chart.UpdateEvent{Row: chart.MarkRow, Title: chart.TitleMark, Value: "mark_circle"},
		chart.UpdateEvent{Row: chart.MarkRow, Title: chart.TitleColor, Value: "red"},
	)

	art, err := render.Build(New(render.Options{Width: 400, Title: "cars"}), spec, carsTable(t))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	doc := decode(t, art)

	if doc["$schema"] != Schema || doc["title"] != "cars" || doc["width"] != 400.0 {
		t.Errorf("header = %v %v %v", doc["$schema"], doc["title"], doc["width"])
	}
	if _, ok := doc["height"]; ok {
		t.Error("zero height was written")
	}
	wantMark := map[string]any{"type": "circle", "color": "red"}
	if !reflect.DeepEqual(doc["mark"], wantMark) {
		t.Errorf("mark = %v, want %v", doc["mark"], wantMark)
	}

	enc := doc["encoding"].(map[string]any)
	wantX := map[string]any{"field": "Acceleration", "type": "quantitative", "scale": map[string]any{"type": "log"}}
	if !reflect.DeepEqual(enc["x"], wantX) {
		t.Errorf("x = %v, want %v", enc["x"], wantX)
	}
	wantY := map[string]any{"field": "Cylinders", "type": "ordinal"}
	if !reflect.DeepEqual(enc["y"], wantY) {
		t.Errorf("y = %v, want %v", enc["y"], wantY)
	}
	wantColor := map[string]any{"field": "Origin", "type": "nominal"}
	if !reflect.DeepEqual(enc["color"], wantColor) {
		t.Errorf("color = %v, want %v", enc["color"], wantColor)
	}

	values := doc["data"].(map[string]any)["values"].([]any)
	if len(values) != 2 {
		t.Fatalf("inline values = %d, want 2", len(values))
	}
	first := values[0].(map[string]any)
	if first["Acceleration"] != 12.0 || first["Origin"] != "USA" {
		t.Errorf("first record = %v", first)
	}
	if art.Summary != "mark_circle x=Acceleration y=Cylinders:O color=Origin" {
		t.Errorf("Summary = %q", art.Summary)
	}
}

func TestRenderMarkOptions(t *testing.T) {
	spec := buildSpec(t,
		chart.UpdateEvent{Row: chart.MarkRow, Title: chart.TitleColor, Value: "steelblue"},
		chart.UpdateEvent{Row: chart.MarkRow, Title: chart.TitleApplyColorToBackground, Value: true},
		chart.UpdateEvent{Row: chart.MarkRow, Title: chart.TitleShortTimeLabels, Value: true},
	)
	art, err := render.Build(New(render.Options{}), spec, carsTable(t))
	if err != nil {
		t.Fatal(err)
	}
	doc := decode(t, art)
	if doc["background"] != "steelblue" {
		t.Errorf("background = %v", doc["background"])
	}
	if _, ok := doc["config"]; !ok {
		t.Error("shortTimeLabels did not set a time format")
	}
	if enc := doc["encoding"].(map[string]any); len(enc) != 0 {
		t.Errorf("encoding = %v, want empty", enc)
	}
}

func TestRenderWildcardCount(t *testing.T) {
	spec := buildSpec(t,
		chart.UpdateEvent{Row: 0, Title: chart.TitleField, Value: "Origin"},
		chart.UpdateEvent{Row: 1, Title: chart.TitleField, Value: vocab.Wildcard},
		chart.UpdateEvent{Row: 1, Title: chart.TitleAggregate, Value: "count"},
	)
	art, err := render.Build(New(render.Options{}), spec, carsTable(t))
	if err != nil {
		t.Fatal(err)
	}
	y := decode(t, art)["encoding"].(map[string]any)["y"]
	want := map[string]any{"aggregate": "count", "type": "quantitative"}
	if !reflect.DeepEqual(y, want) {
		t.Errorf("y = %v, want %v", y, want)
	}
}

func TestRenderErrors(t *testing.T) {
	t.Run("unknown field", func(t *testing.T) {
		spec := chart.ChartSpecification{
			Mark:      "mark_point",
			Encodings: map[string]chart.EncodingClause{"x": {"field": "Weight"}},
		}
		_, err := render.Build(New(render.Options{}), spec, carsTable(t))
		if !errors.Is(err, dataset.ErrNoColumn) {
			t.Errorf("Build() error = %v, want ErrNoColumn", err)
		}
	})
	t.Run("unknown mark", func(t *testing.T) {
		spec := chart.ChartSpecification{Mark: "mark_blob"}
		_, err := render.Build(New(render.Options{}), spec, carsTable(t))
		if !errors.Is(err, &vocab.UnknownKeyError{}) {
			t.Errorf("Build() error = %v", err)
		}
	})
	t.Run("wildcard without count", func(t *testing.T) {
		spec := chart.ChartSpecification{
			Mark:      "mark_bar",
			Encodings: map[string]chart.EncodingClause{"y": {"field": "*"}},
		}
		if _, err := render.Build(New(render.Options{}), spec, carsTable(t)); err == nil {
			t.Error("Build() succeeded with a bare wildcard")
		}
	})
}
