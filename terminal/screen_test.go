package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/mandelterm/core"
	"github.com/lixenwraith/mandelterm/input"
	"github.com/lixenwraith/mandelterm/render"
	"github.com/lixenwraith/mandelterm/status"
)

func newTestScreen(t *testing.T, width, height int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := NewWithScreen(sim, Options{})
	require.NoError(t, err)
	t.Cleanup(s.Fini)

	sim.SetSize(width, height)
	s.Resize(width, height)
	return s, sim
}

func fill(s *Screen, c core.Classification) {
	w, h := s.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s.Emit(x, y, c)
		}
	}
}

func contentAt(sim tcell.SimulationScreen, x, y int) rune {
	cells, w, _ := sim.GetContents()
	c := cells[y*w+x]
	if len(c.Runes) == 0 {
		return ' '
	}
	return c.Runes[0]
}

// waitEvent returns the next action event, skipping resizes
func waitEvent(t *testing.T, s *Screen) input.Event {
	t.Helper()
	var ev input.Event
	require.Eventually(t, func() bool {
		var ok bool
		ev, ok = s.Poll()
		return ok && ev.Type == input.EventAction
	}, time.Second, 5*time.Millisecond)
	return ev
}

func TestScreen_PresentDrawsGlyphs(t *testing.T) {
	s, sim := newTestScreen(t, 6, 3)

	fill(s, core.Outside)
	s.Emit(2, 1, core.Inside)
	require.NoError(t, s.Present())

	assert.Equal(t, '*', contentAt(sim, 2, 1))
	assert.Equal(t, ' ', contentAt(sim, 0, 0))
}

func TestScreen_PresentRejectsIncompleteFrame(t *testing.T) {
	s, _ := newTestScreen(t, 4, 2)

	s.Emit(0, 0, core.Inside)
	err := s.Present()
	assert.ErrorIs(t, err, core.ErrIncompleteFrame)
}

func TestScreen_RenderPresent(t *testing.T) {
	s, sim := newTestScreen(t, 3, 2)

	frame := &constFrame{w: 3, h: 2, class: core.Inside}
	require.NoError(t, render.Present(frame, s))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, '*', contentAt(sim, x, y))
		}
	}
}

func TestScreen_StatusOverlay(t *testing.T) {
	s, sim := newTestScreen(t, 60, 8)

	require.NoError(t, s.DrawStatus(status.Snapshot{Scale: 0.01, MaxIterations: 120}))
	fill(s, core.Outside)
	require.NoError(t, s.Present())

	assert.Equal(t, '-', contentAt(sim, 0, 0))
	assert.Equal(t, '-', contentAt(sim, 0, 5))
	assert.Equal(t, 'S', contentAt(sim, 1, 1))
	assert.Equal(t, 'I', contentAt(sim, 1, 3))

	s.ClearStatus()
	fill(s, core.Outside)
	require.NoError(t, s.Present())
	assert.Equal(t, ' ', contentAt(sim, 0, 0))
}

func TestScreen_StatusTruncated(t *testing.T) {
	s, sim := newTestScreen(t, 8, 8)

	require.NoError(t, s.DrawStatus(status.Snapshot{Scale: 1}))
	fill(s, core.Inside)
	require.NoError(t, s.Present())

	for x := 0; x < 8; x++ {
		assert.Equal(t, '-', contentAt(sim, x, 0))
	}
	assert.Equal(t, 'S', contentAt(sim, 1, 1))
}

func TestScreen_KeyEvents(t *testing.T) {
	s, sim := newTestScreen(t, 10, 4)

	sim.InjectKey(tcell.KeyRune, 'y', tcell.ModNone) // unbound, dropped
	sim.InjectKey(tcell.KeyRune, 'z', tcell.ModNone)
	ev := waitEvent(t, s)
	assert.Equal(t, input.EventAction, ev.Type)
	assert.Equal(t, input.ActionZoomIn, ev.Action)

	sim.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)
	ev = waitEvent(t, s)
	assert.Equal(t, input.ActionPanLeft, ev.Action)
}

func TestScreen_CustomKeys(t *testing.T) {
	keys := input.DefaultKeyTable()
	keys.Runes['p'] = input.ActionQuit

	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := NewWithScreen(sim, Options{Keys: keys, Inside: '#'})
	require.NoError(t, err)
	t.Cleanup(s.Fini)

	sim.InjectKey(tcell.KeyRune, 'p', tcell.ModNone)
	ev := waitEvent(t, s)
	assert.Equal(t, input.ActionQuit, ev.Action)
}

func TestScreen_ResizeEvent(t *testing.T) {
	s, sim := newTestScreen(t, 10, 4)

	sim.SetSize(5, 2)
	require.NoError(t, sim.PostEvent(tcell.NewEventResize(5, 2)))

	var ev input.Event
	require.Eventually(t, func() bool {
		var ok bool
		ev, ok = s.Poll()
		return ok && ev.Type == input.EventResize && ev.Width == 5
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, 5, ev.Width)
	assert.Equal(t, 2, ev.Height)
	w, h := s.Size()
	assert.Equal(t, 5, w)
	assert.Equal(t, 2, h)

	fill(s, core.Outside)
	assert.NoError(t, s.Present())
}

func TestScreen_PollDrains(t *testing.T) {
	s, _ := newTestScreen(t, 4, 2)
	// Init may queue a resize; drain until empty
	require.Eventually(t, func() bool {
		_, ok := s.Poll()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestScreen_FiniIdempotent(t *testing.T) {
	s, _ := newTestScreen(t, 4, 2)
	s.Fini()
	assert.NotPanics(t, s.Fini)
}

type constFrame struct {
	w, h  int
	class core.Classification
}

func (f *constFrame) Size() (int, int) { return f.w, f.h }

func (f *constFrame) Get(x, y int) (core.PixelState, error) {
	return core.ValueOf(f.class), nil
}
