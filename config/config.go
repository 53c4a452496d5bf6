// Package config loads the explorer settings from TOML, layered over the
// compiled-in defaults.
package config

import (
	"math"
	"os"
	"time"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/pkg/errors"

	"github.com/lixenwraith/mandelterm/fractal"
	"github.com/lixenwraith/mandelterm/input"
	"github.com/lixenwraith/mandelterm/parameter"
	"github.com/lixenwraith/mandelterm/salvage"
	"github.com/lixenwraith/mandelterm/viewport"
)

// ErrInvalidConfig is a configuration value outside its accepted range
var ErrInvalidConfig = errors.New("invalid config")

// DefaultFile is the config path relative to the XDG config directories
const DefaultFile = "mandelterm/config.toml"

// Config is the full explorer configuration
type Config struct {
	View       View              `toml:"view"`
	Zoom       Zoom              `toml:"zoom"`
	Pan        Pan               `toml:"pan"`
	Iterations Iterations        `toml:"iterations"`
	Render     Render            `toml:"render"`
	Display    Display           `toml:"display"`
	Audio      Audio             `toml:"audio"`
	Keys       map[string]string `toml:"keys"`
}

// View is the initial framing
type View struct {
	CenterRe float64 `toml:"center_re"`
	CenterIm float64 `toml:"center_im"`
	Span     float64 `toml:"span"` // Plane width covered by the terminal
	Aspect   float64 `toml:"aspect"`
}

type Zoom struct {
	Factor        float64 `toml:"factor"`
	Tolerance     float64 `toml:"tolerance"`
	SalvageRadius int     `toml:"salvage_radius"`
}

type Pan struct {
	CellsX int `toml:"cells_x"`
	CellsY int `toml:"cells_y"`
}

type Iterations struct {
	Base  float64 `toml:"base"`
	Slope float64 `toml:"slope"`
	Floor int     `toml:"floor"`
	Step  int     `toml:"step"`
}

type Render struct {
	Chunks       int           `toml:"chunks"`
	PollInterval time.Duration `toml:"poll_interval"`
	MaxFailures  int           `toml:"max_failures"`
}

type Display struct {
	Inside  string `toml:"inside"`
	Outside string `toml:"outside"`
	Status  bool   `toml:"status"`
}

type Audio struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

// Default returns the compiled-in configuration
func Default() *Config {
	return &Config{
		View: View{
			CenterRe: parameter.DefaultCenterRe,
			CenterIm: parameter.DefaultCenterIm,
			Span:     parameter.DefaultSpan,
			Aspect:   parameter.VerticalAspect,
		},
		Zoom: Zoom{
			Factor:        parameter.ZoomFactor,
			Tolerance:     parameter.ZoomTolerance,
			SalvageRadius: parameter.SalvageRadius,
		},
		Pan: Pan{
			CellsX: parameter.PanCellsX,
			CellsY: parameter.PanCellsY,
		},
		Iterations: Iterations{
			Base:  parameter.IterationBase,
			Slope: parameter.IterationSlope,
			Floor: parameter.IterationFloor,
			Step:  parameter.IterationStep,
		},
		Render: Render{
			Chunks:       parameter.RenderChunks,
			PollInterval: parameter.PollInterval,
			MaxFailures:  parameter.MaxRenderFailures,
		},
		Display: Display{
			Inside:  string(parameter.InsideGlyph),
			Outside: string(parameter.OutsideGlyph),
			Status:  true,
		},
		Audio: Audio{
			Enabled: false,
			Volume:  parameter.AudioVolume,
		},
	}
}

// Load decodes path over the defaults and validates the result
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return cfg, nil
}

// Find resolves the config to use
// An explicit path must exist; otherwise the XDG config directories are
// searched and a missing file yields the defaults with an empty path
func Find(explicit string) (*Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}

	path, err := xdg.SearchConfigFile(DefaultFile)
	if err != nil {
		return Default(), "", nil
	}
	if _, err := os.Stat(path); err != nil {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Validate rejects out-of-range values, naming the first offending field
func (c *Config) Validate() error {
	switch {
	case !finite(c.View.CenterRe) || !finite(c.View.CenterIm):
		return invalid("view.center", "must be finite")
	case !positive(c.View.Span):
		return invalid("view.span", "must be positive")
	case !positive(c.View.Aspect):
		return invalid("view.aspect", "must be positive")
	case !positive(c.Zoom.Factor) || c.Zoom.Factor == 1:
		return invalid("zoom.factor", "must be positive and not 1")
	case !positive(c.Zoom.Tolerance):
		return invalid("zoom.tolerance", "must be positive")
	case c.Zoom.SalvageRadius < 0:
		return invalid("zoom.salvage_radius", "must not be negative")
	case c.Pan.CellsX < 1 || c.Pan.CellsY < 1:
		return invalid("pan", "cells must be at least 1")
	case !positive(c.Iterations.Base):
		return invalid("iterations.base", "must be positive")
	case !finite(c.Iterations.Slope) || c.Iterations.Slope < 0:
		return invalid("iterations.slope", "must not be negative")
	case c.Iterations.Floor < 1:
		return invalid("iterations.floor", "must be at least 1")
	case c.Iterations.Step < 1:
		return invalid("iterations.step", "must be at least 1")
	case c.Render.Chunks < 1:
		return invalid("render.chunks", "must be at least 1")
	case c.Render.PollInterval <= 0:
		return invalid("render.poll_interval", "must be positive")
	case c.Render.MaxFailures < 1:
		return invalid("render.max_failures", "must be at least 1")
	case utf8.RuneCountInString(c.Display.Inside) != 1:
		return invalid("display.inside", "must be a single character")
	case utf8.RuneCountInString(c.Display.Outside) != 1:
		return invalid("display.outside", "must be a single character")
	case !finite(c.Audio.Volume) || c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return invalid("audio.volume", "must be within [0, 1]")
	}
	if _, err := input.LoadKeyConfig(c.Keys); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "keys: %v", err)
	}
	return nil
}

// ViewportOptions builds the viewport framing for a terminal width cells wide
func (c *Config) ViewportOptions(width int) viewport.Options {
	width = max(width, 1)
	return viewport.Options{
		Center:    complex(c.View.CenterRe, c.View.CenterIm),
		Scale:     c.View.Span / float64(width),
		Aspect:    c.View.Aspect,
		Tolerance: c.Zoom.Tolerance,
		Hood:      salvage.Square(c.Zoom.SalvageRadius),
	}
}

// Budget builds the iteration budget with zero user offset
func (c *Config) Budget() fractal.Budget {
	return fractal.Budget{
		Base:  c.Iterations.Base,
		Slope: c.Iterations.Slope,
		Floor: c.Iterations.Floor,
	}
}

// KeyTable merges the [keys] overrides into the default bindings
func (c *Config) KeyTable() (*input.KeyTable, error) {
	overrides, err := input.LoadKeyConfig(c.Keys)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "keys: %v", err)
	}
	return input.MergeKeyTable(input.DefaultKeyTable(), overrides), nil
}

// Glyphs returns the inside and outside display runes
func (c *Config) Glyphs() (inside, outside rune) {
	inside, _ = utf8.DecodeRuneInString(c.Display.Inside)
	outside, _ = utf8.DecodeRuneInString(c.Display.Outside)
	return inside, outside
}

func invalid(field, reason string) error {
	return errors.Wrapf(ErrInvalidConfig, "%s %s", field, reason)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func positive(v float64) bool {
	return finite(v) && v > 0
}
