package status

import (
	"math"
	"sync/atomic"
	"time"
)

// View is the committed view state, published as one immutable value so
// readers never see a center from one frame with the scale of another
type View struct {
	Center        complex128
	Scale         float64
	MaxIterations int
	Offset        int
}

// Registry holds the live view metrics
// The loop writes after every frame; readers on other goroutines (periodic
// logging) take a Snapshot without locking
type Registry struct {
	view    atomic.Pointer[View]
	fpsBits atomic.Uint64

	Frames      atomic.Int64
	Recomputed  atomic.Int64 // Cells computed by the last render pass
	Salvaged    atomic.Int64 // Cells reused by the last zoom commit
	RenderNanos atomic.Int64 // Duration of the last render pass
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	r := &Registry{}
	r.view.Store(&View{})
	return r
}

// Snapshot is a read-only copy of the registry
type Snapshot struct {
	Scale         float64
	Center        complex128
	MaxIterations int
	Offset        int
	Frames        int64
	FPS           float64
	Recomputed    int
	Salvaged      int
	RenderTime    time.Duration
}

// Snapshot loads every metric
func (r *Registry) Snapshot() Snapshot {
	v := r.view.Load()
	return Snapshot{
		Scale:         v.Scale,
		Center:        v.Center,
		MaxIterations: v.MaxIterations,
		Offset:        v.Offset,
		Frames:        r.Frames.Load(),
		FPS:           r.FPS(),
		Recomputed:    int(r.Recomputed.Load()),
		Salvaged:      int(r.Salvaged.Load()),
		RenderTime:    time.Duration(r.RenderNanos.Load()),
	}
}

// PublishView records the committed view state
func (r *Registry) PublishView(center complex128, scale float64, maxIterations, offset int) {
	r.view.Store(&View{
		Center:        center,
		Scale:         scale,
		MaxIterations: maxIterations,
		Offset:        offset,
	})
}

// SetFPS records the smoothed frame rate
func (r *Registry) SetFPS(fps float64) {
	r.fpsBits.Store(math.Float64bits(fps))
}

// FPS returns the last recorded frame rate
func (r *Registry) FPS() float64 {
	return math.Float64frombits(r.fpsBits.Load())
}
