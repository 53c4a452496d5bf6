package render

import "github.com/lixenwraith/mandelterm/core"

// Canvas is the cell store a recompute pass reads work from and writes results to
type Canvas interface {
	WorkItems() []core.WorkItem
	Put(s core.PixelState, x, y int) error
}

// Frame is a read-only view of a full grid of cells
type Frame interface {
	Size() (width, height int)
	Get(x, y int) (core.PixelState, error)
}

// Sink receives one classified cell per position, then presents the frame
// Present must fail with core.ErrIncompleteFrame if any cell was not emitted
type Sink interface {
	Emit(x, y int, c core.Classification)
	Present() error
}
