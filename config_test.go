package glyph

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	const in = `
[stroke]
width = 12.0
join = "miter"
start_cap = "butt"

[pattern]
copies = "fixed"
count = 3
scale = [2.0, 0.5]
`
	got, err := LoadConfig(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultConfig()
	want.Stroke.Width = 12
	want.Stroke.Join = MiterJoin
	want.Stroke.StartCap = ButtCap
	want.Pattern.Copies = FixedCopies
	want.Pattern.Count = 3
	want.Pattern.Scale = [2]float64{2, 0.5}
	diff(t, want, got)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"unknown key", "[stroke]\ncolor = \"red\"\n", nil},
		{"unknown section", "[fill]\n", nil},
		{"bad enum", "[stroke]\njoin = \"pointy\"\n", nil},
		{"syntax", "[stroke\n", nil},
		{"invalid spacing", "[pattern]\nspacing = 0.0\n", ErrInvalidSpacing},
		{"invalid dash width", "[dash]\nwidth = -1.0\n", ErrInvalidDashes},
		{"too many subdivisions", "[pattern]\nsubdivisions = 40\n", ErrInvalidSubdivisions},
	}
	for _, tt := range tests {
		_, err := LoadConfig(strings.NewReader(tt.in))
		if err == nil {
			t.Errorf("%s: got no error", tt.name)
			continue
		}
		if tt.want != nil && !errors.Is(err, tt.want) {
			t.Errorf("%s: got error %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"stroke width", func(c *Config) { c.Stroke.Width = 0 }},
		{"miter limit", func(c *Config) { c.Stroke.MiterLimit = 0.5 }},
		{"spacing", func(c *Config) { c.Pattern.Spacing = -1 }},
		{"count", func(c *Config) { c.Pattern.Count = 0 }},
		{"subdivisions", func(c *Config) { c.Pattern.Subdivisions = -1 }},
		{"tolerance", func(c *Config) { c.Pattern.FlattenTolerance = 0 }},
		{"dash width", func(c *Config) { c.Dash.Width = 0 }},
		{"nan spacing", func(c *Config) { c.Pattern.Spacing = math.NaN() }},
		{"infinite spacing", func(c *Config) { c.Pattern.Spacing = math.Inf(1) }},
		{"count over limit", func(c *Config) { c.Pattern.Count = maxCopies + 1 }},
		{"too many subdivisions", func(c *Config) { c.Pattern.Subdivisions = MaxSubdivisions + 1 }},
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.modify(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: got no error", tt.name)
		}
	}
}

func TestConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stroke.EndCap = SquareCap
	cfg.Pattern.Copies = SingleCopy
	cfg.Pattern.Subdivisions = 4
	cfg.Dash.Offset = 2.5

	var buf bytes.Buffer
	if err := cfg.Save(&buf); err != nil {
		t.Fatal(err)
	}
	got, err := LoadConfig(&buf)
	if err != nil {
		t.Fatalf("loading saved config: %v\n%s", err, buf.String())
	}
	diff(t, cfg, got)
}

func TestConfigFactories(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stroke.Width = 8
	cfg.Stroke.Join = BevelJoin
	cfg.Stroke.Mirror = false
	c := openLine(Pt(0, 0), Pt(10, 0), Pt(20, 0))

	v := cfg.VariableWidthStroke(c)
	diff(t, []float64{4, 4, 4}, handleWidths(v))
	diff(t, BevelJoin, v.Join)
	if v.Mirror {
		t.Error("stroke mirrors handles although the config says not to")
	}

	pattern := Outline{square(0, 0, 1)}
	p := cfg.PatternAlongPath(pattern)
	pattern[0].Nodes[0].Pt = Pt(9, 9)
	diff(t, Pt(0, 0), p.Pattern[0].Nodes[0].Pt)
	diff(t, cfg.Pattern.Spacing, p.Spacing)
	diff(t, Vec(1, 1), p.PatternScale)
	diff(t, true, p.CenterPattern)

	d := cfg.DashAlongPath([]float64{3, 1})
	diff(t, []float64{3, 1}, d.Dashes)
	diff(t, cfg.Dash.Width, d.Width)
	diff(t, ButtCap, d.Cap)
}

func TestEnumText(t *testing.T) {
	var j Join
	if err := j.UnmarshalText([]byte("round")); err != nil {
		t.Fatal(err)
	}
	diff(t, RoundJoin, j)
	if _, err := Join(42).MarshalText(); err == nil {
		t.Error("marshaling an invalid join succeeded")
	}
	var i Interpolation
	if err := i.UnmarshalText([]byte("none")); err != nil {
		t.Fatal(err)
	}
	diff(t, InterpNone, i)
	if err := i.UnmarshalText([]byte("cubic")); err == nil {
		t.Error("unmarshaling an unknown interpolation succeeded")
	}
}
