package status

import "time"

// fpsSmoothing is the weight of the newest sample in the moving average
const fpsSmoothing = 0.2

// FrameMeter tracks an exponentially smoothed frame rate
type FrameMeter struct {
	last time.Time
	fps  float64
}

// Tick records a presented frame at now and returns the smoothed rate
func (m *FrameMeter) Tick(now time.Time) float64 {
	if !m.last.IsZero() {
		if dt := now.Sub(m.last).Seconds(); dt > 0 {
			sample := 1 / dt
			if m.fps == 0 {
				m.fps = sample
			} else {
				m.fps += fpsSmoothing * (sample - m.fps)
			}
		}
	}
	m.last = now
	return m.fps
}
