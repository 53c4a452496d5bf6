// Package engine runs the interactive loop: it owns the viewport, reacts to
// input actions, schedules recompute passes and presents complete frames.
package engine

import (
	"log/slog"
	"time"

	"github.com/lixenwraith/mandelterm/audio"
	"github.com/lixenwraith/mandelterm/fractal"
	"github.com/lixenwraith/mandelterm/input"
	"github.com/lixenwraith/mandelterm/parameter"
	"github.com/lixenwraith/mandelterm/render"
	"github.com/lixenwraith/mandelterm/salvage"
	"github.com/lixenwraith/mandelterm/status"
	"github.com/lixenwraith/mandelterm/viewport"
)

// Input is a non-blocking event source
type Input interface {
	Poll() (input.Event, bool)
}

// Overlay receives the status snapshot before each frame is presented
type Overlay interface {
	DrawStatus(status.Snapshot) error
}

// Cue plays audible feedback
type Cue interface {
	Play(audio.Cue)
}

// Options configures an Explorer, zero fields take the parameter defaults
type Options struct {
	Center    complex128
	Span      float64 // Plane width across the screen at home
	Aspect    float64
	Tolerance float64
	Hood      salvage.Neighborhood

	ZoomFactor float64
	PanCellsX  int
	PanCellsY  int

	Budget   fractal.Budget
	IterStep int

	Chunks        int
	Classify      fractal.Classifier
	PollInterval  time.Duration
	MaxFailures   int
	StatsInterval time.Duration // Zero disables periodic stats logging
}

// DefaultOptions returns the stock configuration
func DefaultOptions() Options {
	return Options{
		Center:       complex(parameter.DefaultCenterRe, parameter.DefaultCenterIm),
		Span:         parameter.DefaultSpan,
		Aspect:       parameter.VerticalAspect,
		Tolerance:    parameter.ZoomTolerance,
		Hood:         salvage.Square(parameter.SalvageRadius),
		ZoomFactor:   parameter.ZoomFactor,
		PanCellsX:    parameter.PanCellsX,
		PanCellsY:    parameter.PanCellsY,
		Budget:       fractal.DefaultBudget(),
		IterStep:     parameter.IterationStep,
		Chunks:       parameter.RenderChunks,
		PollInterval: parameter.PollInterval,
		MaxFailures:  parameter.MaxRenderFailures,
	}
}

// withDefaults fills zero fields from DefaultOptions, Center is taken as given
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Span <= 0 {
		o.Span = def.Span
	}
	if o.Aspect <= 0 {
		o.Aspect = def.Aspect
	}
	if o.Tolerance <= 0 {
		o.Tolerance = def.Tolerance
	}
	if o.Hood == nil {
		o.Hood = def.Hood
	}
	if o.ZoomFactor <= 0 || o.ZoomFactor == 1 {
		o.ZoomFactor = def.ZoomFactor
	}
	if o.PanCellsX < 1 {
		o.PanCellsX = def.PanCellsX
	}
	if o.PanCellsY < 1 {
		o.PanCellsY = def.PanCellsY
	}
	if o.Budget.Base <= 0 || o.Budget.Floor < 1 {
		o.Budget = def.Budget
	}
	if o.IterStep < 1 {
		o.IterStep = def.IterStep
	}
	if o.Chunks < 1 {
		o.Chunks = def.Chunks
	}
	if o.PollInterval <= 0 {
		o.PollInterval = def.PollInterval
	}
	if o.MaxFailures < 1 {
		o.MaxFailures = def.MaxFailures
	}
	return o
}

// Explorer is the interactive loop coordinator
// All state is owned by the goroutine calling Run or Step; only the registry
// is read concurrently
type Explorer struct {
	opts Options

	view      *viewport.Viewport
	scheduler *render.Scheduler
	budget    fractal.Budget

	input   Input
	sink    render.Sink
	overlay Overlay
	cue     Cue

	registry *status.Registry
	meter    status.FrameMeter
	clock    Clock
	logger   *slog.Logger

	dirty    bool // View changed since the last presented frame
	failures int  // Consecutive dropped frames
}

// Option customizes an Explorer at construction
type Option func(*Explorer)

// WithOverlay draws a status box over every frame
func WithOverlay(o Overlay) Option {
	return func(e *Explorer) { e.overlay = o }
}

// WithCue plays audible feedback
func WithCue(c Cue) Option {
	return func(e *Explorer) { e.cue = c }
}

// WithClock replaces the system clock
func WithClock(c Clock) Option {
	return func(e *Explorer) { e.clock = c }
}

// WithLogger sets the logger, default discards
func WithLogger(l *slog.Logger) Option {
	return func(e *Explorer) { e.logger = l }
}

// WithRegistry publishes metrics into an existing registry
func WithRegistry(r *status.Registry) Option {
	return func(e *Explorer) { e.registry = r }
}

// New creates an explorer for a width x height screen at the home view
func New(width, height int, in Input, sink render.Sink, opts Options, options ...Option) *Explorer {
	opts = opts.withDefaults()
	e := &Explorer{
		opts:      opts,
		scheduler: render.NewScheduler(opts.Chunks, opts.Classify),
		budget:    opts.Budget,
		input:     in,
		sink:      sink,
		cue:       audio.Silent{},
		registry:  status.NewRegistry(),
		clock:     SystemClock{},
		logger:    slog.New(slog.DiscardHandler),
		dirty:     true,
	}
	for _, o := range options {
		o(e)
	}

	e.view = viewport.New(width, height, e.homeOptions(width))
	e.publish()
	return e
}

// homeOptions frames the configured home view across width cells
func (e *Explorer) homeOptions(width int) viewport.Options {
	return viewport.Options{
		Center:    e.opts.Center,
		Scale:     e.opts.Span / float64(max(width, 1)),
		Aspect:    e.opts.Aspect,
		Tolerance: e.opts.Tolerance,
		Hood:      e.opts.Hood,
	}
}

// View exposes the viewport for inspection
func (e *Explorer) View() *viewport.Viewport {
	return e.view
}

// Registry returns the live metrics
func (e *Explorer) Registry() *status.Registry {
	return e.registry
}

// Budget returns the current iteration budget
func (e *Explorer) Budget() fractal.Budget {
	return e.budget
}

// MaxIterations returns the budget at the current scale
func (e *Explorer) MaxIterations() int {
	return e.budget.MaxIterations(e.view.Scale())
}

func (e *Explorer) publish() {
	e.registry.PublishView(e.view.Center(), e.view.Scale(), e.MaxIterations(), e.budget.Offset)
}
