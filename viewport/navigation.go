package viewport

import (
	"math"

	"github.com/pkg/errors"

	"github.com/lixenwraith/mandelterm/core"
	"github.com/lixenwraith/mandelterm/parameter"
	"github.com/lixenwraith/mandelterm/salvage"
)

// Pan moves the view by cells in dir
// The buffer content shifts the opposite way so drawn cells stay put on the plane,
// and the side brought into view is marked Recompute
func (v *Viewport) Pan(dir core.Direction, cells int) {
	if cells <= 0 {
		return
	}

	step := float64(cells) * v.scale
	switch dir {
	case core.Right:
		v.center += complex(step, 0)
	case core.Left:
		v.center -= complex(step, 0)
	case core.Up:
		v.center += complex(0, step*v.aspect)
	case core.Down:
		v.center -= complex(0, step*v.aspect)
	default:
		return
	}
	v.buffer.Shift(dir.Opposite(), cells, core.Recompute())
}

// Zoom accumulates factor (> 1 zooms in) and commits once the pending change would
// move rendered content by more than the tolerance
// Returns whether the buffer was rebuilt and the salvage outcome
func (v *Viewport) Zoom(factor float64) (bool, salvage.Stats, error) {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return false, salvage.Stats{}, errors.Wrapf(ErrInvalidZoom, "factor %v", factor)
	}

	next := v.pendingRatio / factor
	if factor > 1 && v.scale*next < parameter.MinScale {
		return false, salvage.Stats{}, errors.Wrapf(ErrPrecisionLimit, "scale %.3g", v.scale*next)
	}
	v.pendingRatio = next

	if v.drift() <= v.tolerance {
		return false, salvage.Stats{}, nil
	}
	return true, v.commit(), nil
}

// CommitZoom applies any pending zoom regardless of drift
func (v *Viewport) CommitZoom() (bool, salvage.Stats) {
	if !v.PendingZoom() {
		return false, salvage.Stats{}
	}
	return true, v.commit()
}

// Reset jumps to a new view, every cell becomes Recompute
func (v *Viewport) Reset(center complex128, scale float64) {
	v.center = center
	if scale > 0 {
		v.scale = scale
	}
	v.pendingRatio = 1.0
	v.buffer.Fill(core.Recompute())
}

// drift is how far, in cells, the screen edge would move if the pending zoom applied
func (v *Viewport) drift() float64 {
	return math.Abs(1-v.pendingRatio) * float64(max(v.width, v.height))
}

func (v *Viewport) commit() salvage.Stats {
	next, stats := salvage.Rebuild(v.buffer, v.pendingRatio, v.hood)
	v.buffer = next
	v.scale *= v.pendingRatio
	v.pendingRatio = 1.0
	return stats
}
