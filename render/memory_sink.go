package render

import (
	"strings"

	"github.com/lixenwraith/mandelterm/core"
)

// MemorySink is a Sink that keeps the last presented frame in memory
// Used for headless rendering and tests
type MemorySink struct {
	width, height int
	pending       []core.Classification
	presented     []core.Classification
	tracker       *Tracker
	frames        int
}

// NewMemorySink creates a sink for a width x height frame
func NewMemorySink(width, height int) *MemorySink {
	return &MemorySink{
		width:     width,
		height:    height,
		pending:   make([]core.Classification, width*height),
		presented: make([]core.Classification, width*height),
		tracker:   NewTracker(width, height),
	}
}

// Emit records the classification of (x, y), out of bounds cells are ignored
func (m *MemorySink) Emit(x, y int, c core.Classification) {
	if m.tracker.Mark(x, y) {
		m.pending[y*m.width+x] = c
	}
}

// Present publishes the pending frame if every cell was emitted
func (m *MemorySink) Present() error {
	if err := m.tracker.Check(); err != nil {
		return err
	}
	copy(m.presented, m.pending)
	m.tracker.Reset()
	m.frames++
	return nil
}

// Frames returns the number of frames presented
func (m *MemorySink) Frames() int {
	return m.frames
}

// At returns the presented classification of (x, y)
func (m *MemorySink) At(x, y int) (core.Classification, bool) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height || m.frames == 0 {
		return core.Outside, false
	}
	return m.presented[y*m.width+x], true
}

// Lines renders the presented frame as one string per row
func (m *MemorySink) Lines(inside, outside rune) []string {
	lines := make([]string, m.height)
	var sb strings.Builder
	for y := 0; y < m.height; y++ {
		sb.Reset()
		for x := 0; x < m.width; x++ {
			if m.presented[y*m.width+x] == core.Inside {
				sb.WriteRune(inside)
			} else {
				sb.WriteRune(outside)
			}
		}
		lines[y] = sb.String()
	}
	return lines
}
