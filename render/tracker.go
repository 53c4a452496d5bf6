package render

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/mandelterm/core"
)

// Tracker records which cells were emitted during the current frame
type Tracker struct {
	width   int
	height  int
	emitted []bool
	count   int
}

// NewTracker creates a tracker for a width x height frame
func NewTracker(width, height int) *Tracker {
	t := &Tracker{}
	t.Resize(width, height)
	return t
}

// Resize adjusts dimensions and clears all marks, reallocates only if capacity insufficient
func (t *Tracker) Resize(width, height int) {
	size := max(width, 0) * max(height, 0)
	if cap(t.emitted) < size {
		t.emitted = make([]bool, size)
	} else {
		t.emitted = t.emitted[:size]
	}
	t.width = width
	t.height = height
	t.Reset()
}

// Mark records an emission at (x, y), returns false when out of bounds
func (t *Tracker) Mark(x, y int) bool {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return false
	}
	idx := y*t.width + x
	if !t.emitted[idx] {
		t.emitted[idx] = true
		t.count++
	}
	return true
}

// Check returns core.ErrIncompleteFrame naming the first cell not emitted
func (t *Tracker) Check() error {
	if t.count == len(t.emitted) {
		return nil
	}
	for i, ok := range t.emitted {
		if !ok {
			return errors.Wrapf(core.ErrIncompleteFrame, "cell (%d,%d) not emitted, %d/%d cells",
				i%t.width, i/t.width, t.count, len(t.emitted))
		}
	}
	return nil
}

// Reset clears all marks for the next frame
func (t *Tracker) Reset() {
	clear(t.emitted)
	t.count = 0
}
