package status

import (
	"fmt"
	"math"
)

// Lines formats the status box text
func Lines(s Snapshot) []string {
	zoom := 0.0
	if s.Scale > 0 {
		zoom = -math.Log10(s.Scale)
	}
	return []string{
		fmt.Sprintf("Scale (log10): %.3f", zoom),
		fmt.Sprintf("Position: %.7f + i*%.7f", real(s.Center), imag(s.Center)),
		fmt.Sprintf("Iterations: %d (%+d)", s.MaxIterations, s.Offset),
		fmt.Sprintf("Frame: %d cells, %d reused, %s, %.0f fps",
			s.Recomputed, s.Salvaged, s.RenderTime.Round(100_000), s.FPS),
	}
}
