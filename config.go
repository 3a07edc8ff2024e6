package glyph

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the parameters new operations are created with.
type Config struct {
	Stroke  StrokeConfig  `toml:"stroke"`
	Pattern PatternConfig `toml:"pattern"`
	Dash    DashConfig    `toml:"dash"`
}

type StrokeConfig struct {
	// Total width of new strokes.
	Width      float64 `toml:"width"`
	StartCap   Cap     `toml:"start_cap"`
	EndCap     Cap     `toml:"end_cap"`
	Join       Join    `toml:"join"`
	MiterLimit float64 `toml:"miter_limit"`
	Mirror     bool    `toml:"mirror"`
}

type PatternConfig struct {
	Copies           CopyMode   `toml:"copies"`
	Count            int        `toml:"count"`
	Spacing          float64    `toml:"spacing"`
	Center           bool       `toml:"center"`
	Stretch          bool       `toml:"stretch"`
	Simplify         bool       `toml:"simplify"`
	Subdivisions     int        `toml:"subdivisions"`
	Scale            [2]float64 `toml:"scale"`
	FlattenTolerance float64    `toml:"flatten_tolerance"`
}

type DashConfig struct {
	Width     float64 `toml:"width"`
	Offset    float64 `toml:"offset"`
	Cap       Cap     `toml:"cap"`
	MinLength float64 `toml:"min_length"`
}

// DefaultConfig returns the configuration used when none is loaded.
func DefaultConfig() Config {
	return Config{
		Stroke: StrokeConfig{
			Width:      20,
			StartCap:   RoundCap,
			EndCap:     RoundCap,
			Join:       RoundJoin,
			MiterLimit: 4,
			Mirror:     true,
		},
		Pattern: PatternConfig{
			Copies:           RepeatedCopies,
			Count:            1,
			Spacing:          4,
			Center:           true,
			Scale:            [2]float64{1, 1},
			FlattenTolerance: DefaultFlattenTolerance,
		},
		Dash: DashConfig{
			Width: 30,
			Cap:   ButtCap,
		},
	}
}

// LoadConfig reads a TOML configuration from r. Keys missing from the input
// keep their default values; unknown keys are an error.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Config{}, fmt.Errorf("config:%d:%d: %w", row, col, err)
		}
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg to w as TOML.
func (cfg Config) Save(w io.Writer) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Validate reports the first value in cfg that operations can't be built
// with.
func (cfg Config) Validate() error {
	switch {
	case cfg.Stroke.Width <= 0:
		return fmt.Errorf("config: stroke width %g must be positive", cfg.Stroke.Width)
	case cfg.Stroke.MiterLimit < 1:
		return fmt.Errorf("config: miter limit %g is less than 1", cfg.Stroke.MiterLimit)
	case !(cfg.Pattern.Spacing > 0) || math.IsInf(cfg.Pattern.Spacing, 0):
		return fmt.Errorf("config: pattern spacing %g: %w", cfg.Pattern.Spacing, ErrInvalidSpacing)
	case cfg.Pattern.Count <= 0 || cfg.Pattern.Count > maxCopies:
		return fmt.Errorf("config: pattern count %d: %w", cfg.Pattern.Count, ErrInvalidSpacing)
	case cfg.Pattern.Subdivisions < 0:
		return fmt.Errorf("config: negative pattern subdivisions %d", cfg.Pattern.Subdivisions)
	case cfg.Pattern.Subdivisions > MaxSubdivisions:
		return fmt.Errorf("config: pattern subdivisions %d: %w", cfg.Pattern.Subdivisions, ErrInvalidSubdivisions)
	case cfg.Pattern.FlattenTolerance <= 0:
		return fmt.Errorf("config: flatten tolerance %g must be positive", cfg.Pattern.FlattenTolerance)
	case cfg.Dash.Width <= 0:
		return fmt.Errorf("config: dash width %g: %w", cfg.Dash.Width, ErrInvalidDashes)
	}
	return nil
}

// VariableWidthStroke returns a stroke for c using the configured defaults.
func (cfg Config) VariableWidthStroke(c Contour) VariableWidthStroke {
	v := NewVariableWidthStroke(c, cfg.Stroke.Width)
	v.StartCap = cfg.Stroke.StartCap
	v.EndCap = cfg.Stroke.EndCap
	v.Join = cfg.Stroke.Join
	v.MiterLimit = cfg.Stroke.MiterLimit
	v.Mirror = cfg.Stroke.Mirror
	return v
}

// PatternAlongPath returns an operation stamping a copy of pattern, using
// the configured defaults.
func (cfg Config) PatternAlongPath(pattern Outline) PatternAlongPath {
	return PatternAlongPath{
		Pattern:          pattern.Clone(),
		Copies:           cfg.Pattern.Copies,
		Count:            cfg.Pattern.Count,
		Spacing:          cfg.Pattern.Spacing,
		CenterPattern:    cfg.Pattern.Center,
		Stretch:          cfg.Pattern.Stretch,
		Simplify:         cfg.Pattern.Simplify,
		Subdivisions:     cfg.Pattern.Subdivisions,
		PatternScale:     Vec(cfg.Pattern.Scale[0], cfg.Pattern.Scale[1]),
		FlattenTolerance: cfg.Pattern.FlattenTolerance,
	}
}

// DashAlongPath returns an operation dashing with the given on/off lengths,
// using the configured defaults.
func (cfg Config) DashAlongPath(dashes []float64) DashAlongPath {
	d := DashAlongPath{
		Offset:    cfg.Dash.Offset,
		Width:     cfg.Dash.Width,
		Cap:       cfg.Dash.Cap,
		MinLength: cfg.Dash.MinLength,
	}
	return d.withDashes(dashes)
}

func (j Join) MarshalText() ([]byte, error) {
	if j < BevelJoin || j > RoundJoin {
		return nil, fmt.Errorf("invalid join %d", int(j))
	}
	return []byte(j.String()), nil
}

func (j *Join) UnmarshalText(b []byte) error {
	return unmarshalEnum(j, "join", string(b), BevelJoin, MiterJoin, RoundJoin)
}

func (c Cap) MarshalText() ([]byte, error) {
	if c < ButtCap || c > RoundCap {
		return nil, fmt.Errorf("invalid cap %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Cap) UnmarshalText(b []byte) error {
	return unmarshalEnum(c, "cap", string(b), ButtCap, SquareCap, RoundCap)
}

func (m CopyMode) MarshalText() ([]byte, error) {
	if m < RepeatedCopies || m > FixedCopies {
		return nil, fmt.Errorf("invalid copy mode %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *CopyMode) UnmarshalText(b []byte) error {
	return unmarshalEnum(m, "copy mode", string(b), RepeatedCopies, SingleCopy, FixedCopies)
}

func (i Interpolation) MarshalText() ([]byte, error) {
	if i < InterpLinear || i > InterpNone {
		return nil, fmt.Errorf("invalid interpolation %d", int(i))
	}
	return []byte(i.String()), nil
}

func (i *Interpolation) UnmarshalText(b []byte) error {
	return unmarshalEnum(i, "interpolation", string(b), InterpLinear, InterpNone)
}

func unmarshalEnum[T fmt.Stringer](dst *T, what, s string, values ...T) error {
	for _, v := range values {
		if v.String() == s {
			*dst = v
			return nil
		}
	}
	return fmt.Errorf("unknown %s %q", what, s)
}
