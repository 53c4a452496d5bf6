package viewport

import "github.com/lixenwraith/mandelterm/core"

// WorkItems lists every Recompute cell with the plane point it samples
func (v *Viewport) WorkItems() []core.WorkItem {
	var items []core.WorkItem
	v.buffer.Range(func(x, y int, s core.PixelState) {
		if s.IsRecompute() {
			items = append(items, core.WorkItem{Point: v.toPlane(x, y), X: x, Y: y})
		}
	})
	return items
}

// Get returns the state of cell (x, y)
func (v *Viewport) Get(x, y int) (core.PixelState, error) {
	return v.buffer.Get(x, y)
}

// Put stores the state of cell (x, y)
func (v *Viewport) Put(s core.PixelState, x, y int) error {
	return v.buffer.Put(s, x, y)
}

// Complete reports whether every cell holds a value
func (v *Viewport) Complete() bool {
	complete := true
	v.buffer.Range(func(_, _ int, s core.PixelState) {
		if s.IsRecompute() {
			complete = false
		}
	})
	return complete
}

// Invalidate marks every cell Recompute
func (v *Viewport) Invalidate() {
	v.buffer.Fill(core.Recompute())
}
