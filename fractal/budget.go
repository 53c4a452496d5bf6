package fractal

import (
	"math"

	"github.com/lixenwraith/mandelterm/parameter"
)

// Budget derives the per-frame iteration count from the view scale
// Deeper zoom (smaller scale) needs more iterations to resolve the boundary
type Budget struct {
	Base   float64
	Slope  float64
	Floor  int
	Offset int // User adjustment, may be negative
}

// DefaultBudget returns the budget with zero user offset
func DefaultBudget() Budget {
	return Budget{
		Base:  parameter.IterationBase,
		Slope: parameter.IterationSlope,
		Floor: parameter.IterationFloor,
	}
}

// MaxIterations returns max(Base*(1-Slope*log10(scale)), Floor) + Offset, never below 1
func (b Budget) MaxIterations(scale float64) int {
	n := b.Floor
	if scale > 0 {
		derived := b.Base * (1 - b.Slope*math.Log10(scale))
		if derived > float64(n) && derived < math.MaxInt32 {
			n = int(derived)
		}
	}
	n += b.Offset
	if n < 1 {
		n = 1
	}
	return n
}

// Adjust shifts the user offset by delta, keeping the offset in
// [1-Floor, IterationCeiling] so the total stays positive at any scale
func (b *Budget) Adjust(delta int) {
	b.Offset += delta
	if lo := 1 - b.Floor; b.Offset < lo {
		b.Offset = lo
	}
	if b.Offset > parameter.IterationCeiling {
		b.Offset = parameter.IterationCeiling
	}
}
