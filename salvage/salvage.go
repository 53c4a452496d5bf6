// Package salvage rebuilds the pixel buffer after a zoom by reusing the
// previous frame wherever the local neighborhood agrees.
//
// Deep interior and exterior regions carry over instantly; only cells near the
// set boundary (mixed neighborhoods) or with unknown neighbors are invalidated.
package salvage

import (
	"math"

	"github.com/lixenwraith/mandelterm/core"
)

// Offset is a relative cell position
type Offset struct {
	DX, DY int
}

// Neighborhood is the set of offsets inspected around a source cell
type Neighborhood []Offset

// Square returns the (2r+1)^2 offsets of a square of radius r, center included
func Square(radius int) Neighborhood {
	if radius < 0 {
		radius = 0
	}
	hood := make(Neighborhood, 0, (2*radius+1)*(2*radius+1))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			hood = append(hood, Offset{DX: dx, DY: dy})
		}
	}
	return hood
}

// Stats counts the outcome of one rebuild
type Stats struct {
	Salvaged    int
	Invalidated int
}

// SourceCell maps a new-frame cell to the nearest old-frame cell for a scale ratio
// (new scale / old scale), both frames sharing the same center
func SourceCell(x, y, width, height int, ratio float64) (int, int) {
	cx, cy := width/2, height/2
	ox := math.Round(float64(x-cx)*ratio) + float64(cx)
	oy := math.Round(float64(y-cy)*ratio) + float64(cy)
	return int(ox), int(oy)
}

// Rebuild returns a new buffer for the zoomed frame, old is not modified
func Rebuild(old *core.Buffer[core.PixelState], ratio float64, hood Neighborhood) (*core.Buffer[core.PixelState], Stats) {
	w, h := old.Width(), old.Height()
	next := core.NewBuffer(w, h, core.Recompute())
	var stats Stats

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			ox, oy := SourceCell(x, y, w, h, ratio)
			state := judge(old, ox, oy, hood)
			if state.IsRecompute() {
				stats.Invalidated++
				continue
			}
			// In bounds by construction
			_ = next.Put(state, x, y)
			stats.Salvaged++
		}
	}
	return next, stats
}

// judge returns Value(c) when every in-bounds neighbor of (ox, oy) holds c,
// Recompute when the source is off-grid, a neighbor is unknown, or classes mix
func judge(old *core.Buffer[core.PixelState], ox, oy int, hood Neighborhood) core.PixelState {
	if !old.InBounds(ox, oy) {
		return core.Recompute()
	}

	var (
		seen  bool
		class core.Classification
	)
	for _, off := range hood {
		nx, ny := ox+off.DX, oy+off.DY
		if !old.InBounds(nx, ny) {
			continue
		}
		cell, _ := old.Get(nx, ny)
		c, ok := cell.Classification()
		if !ok {
			return core.Recompute()
		}
		if seen && c != class {
			return core.Recompute()
		}
		seen, class = true, c
	}

	if !seen {
		return core.Recompute()
	}
	return core.ValueOf(class)
}
