package vocab

import (
	"errors"
	"reflect"
	"testing"
)

// Channels and marks of the Vega-Lite v5 grammar that the tables may use.
var vegaLiteChannels = map[string]bool{
	"x": true, "y": true, "x2": true, "y2": true, "color": true, "fill": true,
	"stroke": true, "opacity": true, "shape": true, "size": true, "text": true,
	"tooltip": true, "detail": true, "order": true, "row": true, "column": true,
	"facet": true, "href": true,
}

var vegaLiteMarks = map[string]bool{
	"point": true, "line": true, "bar": true, "tick": true, "text": true,
	"square": true, "rule": true, "circle": true, "area": true, "rect": true,
	"trail": true, "geoshape": true, "image": true, "arc": true,
}

func TestCheck(t *testing.T) {
	if err := Check(); err != nil {
		t.Fatalf("Check() = %v", err)
	}
}

func TestTablesMatchVegaLite(t *testing.T) {
	for _, ch := range Channels() {
		if !vegaLiteChannels[ch] {
			t.Errorf("channel %q is not a Vega-Lite channel", ch)
		}
	}
	for _, m := range Marks() {
		if len(m) < 6 || m[:5] != "mark_" || !vegaLiteMarks[m[5:]] {
			t.Errorf("mark %q does not name a Vega-Lite mark", m)
		}
	}
}

func TestChannelsOrder(t *testing.T) {
	got := Channels()
	if got[0] != "x" || got[1] != "y" || got[2] != "color" {
		t.Fatalf("Channels() starts with %v, want x y color", got[:3])
	}
}

func TestAdvancedOptionsFor(t *testing.T) {
	tests := []struct {
		name string
		want []string
	}{
		{"x", []string{"type", "bin", "aggregate", "zero", "scale"}},
		{"y", []string{"type", "bin", "aggregate", "zero", "scale"}},
		{"color", []string{"type", "bin", "aggregate"}},
		{"text", []string{"type", "bin", "aggregate", "text"}},
		{"mark_bar", []string{"color", "applyColorToBackground", "shortTimeLabels"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AdvancedOptionsFor(tt.name)
			if err != nil {
				t.Fatalf("AdvancedOptionsFor(%q) error = %v", tt.name, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AdvancedOptionsFor(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestAdvancedOptionsForUnknown(t *testing.T) {
	_, err := AdvancedOptionsFor("bogus")
	var uk *UnknownKeyError
	if !errors.As(err, &uk) {
		t.Fatalf("expected *UnknownKeyError, got %v", err)
	}
	if uk.Key != "bogus" {
		t.Errorf("Key = %q, want bogus", uk.Key)
	}
}

func TestTablesAreCopies(t *testing.T) {
	ch := Channels()
	ch[0] = "mutated"
	if Channels()[0] != "x" {
		t.Error("Channels() exposes the backing slice")
	}
}

func TestDefaultOption(t *testing.T) {
	tests := map[string]any{
		OptBin:                    false,
		OptZero:                   true,
		OptScale:                  "linear",
		OptType:                   AutoDetect,
		OptAggregate:              nil,
		OptColor:                  nil,
		OptApplyColorToBackground: false,
		OptShortTimeLabels:        false,
	}
	for name, want := range tests {
		if got := DefaultOption(name); got != want {
			t.Errorf("DefaultOption(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"Q", "quantitative", false},
		{"nominal", "nominal", false},
		{"t", "temporal", false},
		{"auto", AutoDetect, false},
		{"auto detect", AutoDetect, false},
		{"weird", "", true},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestChannelForRow(t *testing.T) {
	if got := ChannelForRow(0); got != "x" {
		t.Errorf("ChannelForRow(0) = %q", got)
	}
	if got := ChannelForRow(1); got != "y" {
		t.Errorf("ChannelForRow(1) = %q", got)
	}
	if got := ChannelForRow(len(Channels())); got != "x" {
		t.Errorf("ChannelForRow wraps to %q, want x", got)
	}
}
