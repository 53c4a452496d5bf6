package fractal

import (
	"github.com/lixenwraith/mandelterm/core"
	"github.com/lixenwraith/mandelterm/parameter"
)

// Classifier maps a plane point and an iteration budget to a classification
type Classifier func(point complex128, maxIterations int) core.Classification

// Classify runs the escape-time test for z <- z^2 + point starting at z = 0
// |z|^2 above the escape radius is Outside; an orbit collapsing near the origin
// is taken as bounded and stops early; exhausting the budget is Inside
func Classify(point complex128, maxIterations int) core.Classification {
	cr, ci := real(point), imag(point)
	var zr, zi float64

	for i := 0; i < maxIterations; i++ {
		zr, zi = zr*zr-zi*zi+cr, 2*zr*zi+ci
		norm := zr*zr + zi*zi
		if norm > parameter.EscapeRadiusSq {
			return core.Outside
		}
		if norm < parameter.CollapseRadiusSq {
			return core.Inside
		}
	}
	return core.Inside
}
