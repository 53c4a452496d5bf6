// Package viewport maps screen cells to the complex plane and owns the pixel
// buffer, keeping it consistent with pan and zoom.
package viewport

import (
	"math"
	"math/cmplx"

	"github.com/pkg/errors"

	"github.com/lixenwraith/mandelterm/core"
	"github.com/lixenwraith/mandelterm/parameter"
	"github.com/lixenwraith/mandelterm/salvage"
)

var (
	// ErrInvalidZoom is a zoom factor that is not a positive finite number
	ErrInvalidZoom = errors.New("invalid zoom factor")

	// ErrPrecisionLimit is a zoom-in past what float64 can resolve
	ErrPrecisionLimit = errors.New("zoom precision limit reached")
)

// Options tunes a Viewport, zero fields take the parameter defaults
type Options struct {
	Center    complex128
	Scale     float64 // Plane units per cell along x
	Aspect    float64 // Vertical stretch of a cell relative to its width
	Tolerance float64 // Drift in cells a pending zoom may accumulate
	Hood      salvage.Neighborhood
}

// DefaultOptions frames the whole set across width cells
func DefaultOptions(width int) Options {
	if width < 1 {
		width = 1
	}
	return Options{
		Center:    complex(parameter.DefaultCenterRe, parameter.DefaultCenterIm),
		Scale:     parameter.DefaultSpan / float64(width),
		Aspect:    parameter.VerticalAspect,
		Tolerance: parameter.ZoomTolerance,
		Hood:      salvage.Square(parameter.SalvageRadius),
	}
}

// Viewport owns the view state and the pixel buffer it describes
type Viewport struct {
	width, height int

	center       complex128
	scale        float64
	pendingRatio float64
	aspect       float64
	tolerance    float64
	hood         salvage.Neighborhood

	buffer *core.Buffer[core.PixelState]
}

// New creates a width x height viewport with every cell marked Recompute
func New(width, height int, opts Options) *Viewport {
	def := DefaultOptions(width)
	if opts.Scale <= 0 || math.IsInf(opts.Scale, 0) || math.IsNaN(opts.Scale) {
		opts.Scale = def.Scale
	}
	if opts.Aspect <= 0 {
		opts.Aspect = def.Aspect
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = def.Tolerance
	}
	if opts.Hood == nil {
		opts.Hood = def.Hood
	}

	buf := core.NewBuffer(width, height, core.Recompute())
	return &Viewport{
		width:        buf.Width(),
		height:       buf.Height(),
		center:       opts.Center,
		scale:        opts.Scale,
		pendingRatio: 1.0,
		aspect:       opts.Aspect,
		tolerance:    opts.Tolerance,
		hood:         opts.Hood,
		buffer:       buf,
	}
}

// Size returns the screen dimensions in cells
func (v *Viewport) Size() (width, height int) {
	return v.width, v.height
}

// Center returns the plane point at the screen center
func (v *Viewport) Center() complex128 {
	return v.center
}

// Scale returns the committed plane units per cell along x
func (v *Viewport) Scale() float64 {
	return v.scale
}

// Aspect returns the vertical cell stretch
func (v *Viewport) Aspect() float64 {
	return v.aspect
}

// PendingZoom reports whether a zoom is accumulated but not yet committed
func (v *Viewport) PendingZoom() bool {
	return v.pendingRatio != 1.0
}

// ScreenToPlane returns the plane point sampled by cell (x, y)
// Screen rows grow downward, the imaginary axis upward
func (v *Viewport) ScreenToPlane(x, y int) (complex128, error) {
	if x < 0 || x >= v.width || y < 0 || y >= v.height {
		return 0, errors.Wrapf(core.ErrOutOfBounds, "screen (%d,%d) in %dx%d view", x, y, v.width, v.height)
	}
	return v.toPlane(x, y), nil
}

func (v *Viewport) toPlane(x, y int) complex128 {
	dx := float64(x-v.width/2) * v.scale
	dy := -float64(y-v.height/2) * v.scale * v.aspect
	return v.center + complex(dx, dy)
}

// PlaneToScreen returns the cell nearest to plane point p
func (v *Viewport) PlaneToScreen(p complex128) (int, int, error) {
	d := p - v.center
	fx := math.Round(real(d)/v.scale) + float64(v.width/2)
	fy := math.Round(-imag(d)/(v.scale*v.aspect)) + float64(v.height/2)
	if cmplx.IsNaN(p) || fx < 0 || fy < 0 || fx >= float64(v.width) || fy >= float64(v.height) {
		return 0, 0, errors.Wrapf(core.ErrOutOfBounds, "plane point %v outside view", p)
	}
	return int(fx), int(fy), nil
}
