package parameter

import "time"

// View defaults
const (
	// DefaultCenterRe/Im frame the whole set on startup
	DefaultCenterRe = -0.5
	DefaultCenterIm = 0.0

	// DefaultSpan is the plane width covered by the screen on startup
	DefaultSpan = 3.5

	// VerticalAspect compensates for terminal cells being about twice as tall as wide
	VerticalAspect = 2.0

	// MinScale is the smallest plane step per cell before float64 runs out of precision
	MinScale = 1e-15
)

// Zoom and pan
const (
	// ZoomFactor is the scale ratio applied per zoom keystroke
	ZoomFactor = 1.05

	// ZoomTolerance is the positional drift in cells a pending zoom may accumulate before commit
	ZoomTolerance = 2.0

	// SalvageRadius is the neighborhood radius inspected when reusing cells on zoom
	SalvageRadius = 2

	// PanCellsX/Y is the distance moved per pan keystroke
	PanCellsX = 4
	PanCellsY = 2
)

// Iteration budget: max(Base*(1-Slope*log10(scale)), Floor) + offset
const (
	IterationBase  = 100.0
	IterationSlope = 0.1
	IterationFloor = 500
	IterationStep  = 50

	// IterationCeiling caps the user offset so a held key cannot stall rendering
	IterationCeiling = 1_000_000
)

// Escape-time thresholds on |z|^2
const (
	EscapeRadiusSq   = 4.0
	CollapseRadiusSq = 0.01
)

// Loop and render scheduling
const (
	// RenderChunks is the number of work partitions per recompute pass
	RenderChunks = 8

	// PollInterval is the idle sleep between input polls
	PollInterval = 10 * time.Millisecond

	// MaxRenderFailures is the number of consecutive dropped frames tolerated before exit
	MaxRenderFailures = 3

	// InputQueueSize is the buffered capacity between the terminal reader and the loop
	InputQueueSize = 64

	// StatsLogInterval is the period of registry snapshots written to the debug log
	StatsLogInterval = 5 * time.Second
)

// Display glyphs
const (
	InsideGlyph  = '*'
	OutsideGlyph = ' '
)
