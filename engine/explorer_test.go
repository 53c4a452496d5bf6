package engine

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/mandelterm/audio"
	"github.com/lixenwraith/mandelterm/core"
	"github.com/lixenwraith/mandelterm/fractal"
	"github.com/lixenwraith/mandelterm/input"
	"github.com/lixenwraith/mandelterm/render"
	"github.com/lixenwraith/mandelterm/status"
)

const (
	testWidth  = 20
	testHeight = 10
)

// scriptInput replays events then reports idle
type scriptInput struct {
	events []input.Event
}

func (s *scriptInput) Poll() (input.Event, bool) {
	if len(s.events) == 0 {
		return input.Event{}, false
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, true
}

func (s *scriptInput) push(actions ...input.Action) {
	for _, a := range actions {
		s.events = append(s.events, input.ActionEvent(a))
	}
}

type cueRecorder struct {
	mu   sync.Mutex
	cues []audio.Cue
}

func (c *cueRecorder) Play(cue audio.Cue) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cues = append(c.cues, cue)
}

func (c *cueRecorder) played() []audio.Cue {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]audio.Cue(nil), c.cues...)
}

type overlayRecorder struct {
	snaps []status.Snapshot
}

func (o *overlayRecorder) DrawStatus(s status.Snapshot) error {
	o.snaps = append(o.snaps, s)
	return nil
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestExplorer(t *testing.T, opts Options, options ...Option) (*Explorer, *scriptInput, *render.MemorySink, *cueRecorder) {
	t.Helper()
	in := &scriptInput{}
	sink := render.NewMemorySink(testWidth, testHeight)
	cue := &cueRecorder{}
	options = append([]Option{WithCue(cue)}, options...)
	e := New(testWidth, testHeight, in, sink, opts, options...)
	return e, in, sink, cue
}

func TestExplorer_FirstFrame(t *testing.T) {
	e, _, sink, _ := newTestExplorer(t, DefaultOptions())

	quit, err := e.Tick()
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, 1, sink.Frames())
	assert.True(t, e.View().Complete())

	snap := e.Registry().Snapshot()
	assert.EqualValues(t, 1, snap.Frames)
	assert.Equal(t, testWidth*testHeight, snap.Recomputed)

	// Origin is inside the set
	x, y, err := e.View().PlaneToScreen(0)
	require.NoError(t, err)
	c, ok := sink.At(x, y)
	require.True(t, ok)
	assert.Equal(t, core.Inside, c)

	// Nothing changed, nothing presented
	_, err = e.Tick()
	require.NoError(t, err)
	assert.Equal(t, 1, sink.Frames())
}

func TestExplorer_PanRecomputesRevealedColumns(t *testing.T) {
	e, in, sink, _ := newTestExplorer(t, DefaultOptions())
	_, err := e.Tick()
	require.NoError(t, err)

	before := e.View().Center()
	scale := e.View().Scale()

	in.push(input.ActionPanRight)
	_, err = e.Tick()
	require.NoError(t, err)

	assert.Equal(t, 2, sink.Frames())
	assert.InDelta(t, real(before)+4*scale, real(e.View().Center()), 1e-12)
	assert.Equal(t, 4*testHeight, e.Registry().Snapshot().Recomputed)

	in.push(input.ActionPanUp)
	_, err = e.Tick()
	require.NoError(t, err)
	assert.Equal(t, 2*testWidth, e.Registry().Snapshot().Recomputed)
}

func TestExplorer_ZoomCommitsWhenIdle(t *testing.T) {
	e, in, _, _ := newTestExplorer(t, DefaultOptions())
	_, err := e.Tick()
	require.NoError(t, err)
	scale := e.View().Scale()

	// A single 1.05 step drifts under the tolerance on a 20 cell view
	in.push(input.ActionZoomIn)
	_, err = e.Tick()
	require.NoError(t, err)

	assert.False(t, e.View().PendingZoom())
	assert.InDelta(t, scale/1.05, e.View().Scale(), 1e-15)
	assert.True(t, e.View().Complete())
}

func TestExplorer_ZoomOutAndIn(t *testing.T) {
	e, in, _, _ := newTestExplorer(t, DefaultOptions())
	scale := e.View().Scale()

	in.push(input.ActionZoomOut, input.ActionZoomOut, input.ActionZoomIn, input.ActionZoomIn)
	_, err := e.Tick()
	require.NoError(t, err)
	assert.InDelta(t, scale, e.View().Scale(), 1e-12)
}

func TestExplorer_PrecisionLimitIsNotFatal(t *testing.T) {
	opts := DefaultOptions()
	opts.Span = 1e-14 // 5e-16 per cell, already under the limit
	e, in, _, cue := newTestExplorer(t, opts)
	scale := e.View().Scale()

	in.push(input.ActionZoomIn)
	quit, err := e.Tick()
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, scale, e.View().Scale())
	assert.Contains(t, cue.played(), audio.CueError)
}

func TestExplorer_IterationKeys(t *testing.T) {
	e, in, _, cue := newTestExplorer(t, DefaultOptions())
	_, err := e.Tick()
	require.NoError(t, err)
	base := e.MaxIterations()

	in.push(input.ActionIterUp)
	_, err = e.Tick()
	require.NoError(t, err)
	assert.Equal(t, base+50, e.MaxIterations())
	assert.Equal(t, testWidth*testHeight, e.Registry().Snapshot().Recomputed)
	assert.Equal(t, 50, e.Registry().Snapshot().Offset)

	in.push(input.ActionIterDown, input.ActionIterDown)
	_, err = e.Tick()
	require.NoError(t, err)
	assert.Equal(t, base-50, e.MaxIterations())

	assert.Equal(t, []audio.Cue{audio.CueTickUp, audio.CueTickDown, audio.CueTickDown}, cue.played())
}

func TestExplorer_IterationFloorRefused(t *testing.T) {
	opts := DefaultOptions()
	opts.Budget = fractal.Budget{Base: 100, Slope: 0.1, Floor: 1}
	opts.IterStep = 10
	e, in, _, cue := newTestExplorer(t, opts)

	in.push(input.ActionIterDown)
	_, err := e.Tick()
	require.NoError(t, err)
	assert.Equal(t, []audio.Cue{audio.CueError}, cue.played())
	assert.GreaterOrEqual(t, e.MaxIterations(), 1)
}

func TestExplorer_Home(t *testing.T) {
	e, in, _, cue := newTestExplorer(t, DefaultOptions())
	center := e.View().Center()
	scale := e.View().Scale()

	in.push(input.ActionPanLeft, input.ActionPanDown, input.ActionIterUp, input.ActionZoomIn, input.ActionHome)
	_, err := e.Tick()
	require.NoError(t, err)

	assert.Equal(t, center, e.View().Center())
	assert.Equal(t, scale, e.View().Scale())
	assert.Zero(t, e.Budget().Offset)
	assert.Contains(t, cue.played(), audio.CueBell)
}

func TestExplorer_Resize(t *testing.T) {
	e, _, _, _ := newTestExplorer(t, DefaultOptions())
	e.View().Pan(core.Right, 3)
	center := e.View().Center()
	scale := e.View().Scale()

	quit, err := e.Handle(input.ResizeEvent(30, 12))
	require.NoError(t, err)
	assert.False(t, quit)

	w, h := e.View().Size()
	assert.Equal(t, 30, w)
	assert.Equal(t, 12, h)
	assert.Equal(t, center, e.View().Center())
	assert.Equal(t, scale, e.View().Scale())
	assert.Len(t, e.View().WorkItems(), 30*12)
}

func TestExplorer_ResizeCommitsPendingZoom(t *testing.T) {
	e, _, _, _ := newTestExplorer(t, DefaultOptions())
	_, err := e.Tick()
	require.NoError(t, err)
	scale := e.View().Scale()

	committed, _, err := e.View().Zoom(1.05)
	require.NoError(t, err)
	require.False(t, committed)
	require.True(t, e.View().PendingZoom())

	_, err = e.Handle(input.ResizeEvent(30, 12))
	require.NoError(t, err)

	assert.InDelta(t, scale/1.05, e.View().Scale(), 1e-15)
	assert.Positive(t, e.Registry().Snapshot().Salvaged)
}

func TestExplorer_OverlaySeesView(t *testing.T) {
	overlay := &overlayRecorder{}
	e, _, _, _ := newTestExplorer(t, DefaultOptions(), WithOverlay(overlay))

	_, err := e.Tick()
	require.NoError(t, err)
	require.Len(t, overlay.snaps, 1)
	assert.Equal(t, e.View().Scale(), overlay.snaps[0].Scale)
	assert.Equal(t, e.MaxIterations(), overlay.snaps[0].MaxIterations)
}

func TestExplorer_WorkerFailureRetried(t *testing.T) {
	var failed atomic.Bool
	opts := DefaultOptions()
	opts.Classify = func(c complex128, maxIter int) core.Classification {
		if failed.CompareAndSwap(false, true) {
			panic("transient")
		}
		return fractal.Classify(c, maxIter)
	}
	e, _, sink, cue := newTestExplorer(t, opts)

	_, err := e.Tick()
	require.NoError(t, err)
	assert.Zero(t, sink.Frames())
	assert.Equal(t, []audio.Cue{audio.CueError}, cue.played())

	_, err = e.Tick()
	require.NoError(t, err)
	assert.Equal(t, 1, sink.Frames())
}

func TestExplorer_WorkerFailureFatal(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxFailures = 3
	opts.Classify = func(complex128, int) core.Classification {
		panic("broken")
	}
	e, _, sink, _ := newTestExplorer(t, opts)

	for i := 0; i < 2; i++ {
		_, err := e.Tick()
		require.NoError(t, err)
	}
	_, err := e.Tick()
	assert.ErrorIs(t, err, core.ErrWorkerFailure)
	assert.Zero(t, sink.Frames())
}

func TestExplorer_RunQuits(t *testing.T) {
	e, in, sink, _ := newTestExplorer(t, DefaultOptions())
	in.push(input.ActionPanRight, input.ActionQuit)

	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop on quit")
	}
	// Quit arrived in the same drain, no frame was paid for
	assert.Zero(t, sink.Frames())
}

func TestExplorer_RunLogsStats(t *testing.T) {
	var logs syncBuffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	opts := DefaultOptions()
	opts.PollInterval = time.Millisecond
	opts.StatsInterval = 5 * time.Millisecond
	e, _, sink, _ := newTestExplorer(t, opts, WithLogger(logger))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	require.NoError(t, e.Run(ctx))

	assert.Equal(t, 1, sink.Frames())
	assert.Contains(t, logs.String(), "msg=stats")
	assert.Contains(t, logs.String(), "frames=1")
}

func TestExplorer_FrameMeterUsesClock(t *testing.T) {
	clock := NewMockClock(time.Unix(0, 0))
	e, in, _, _ := newTestExplorer(t, DefaultOptions(), WithClock(clock))

	_, err := e.Tick()
	require.NoError(t, err)
	clock.Advance(100 * time.Millisecond)
	in.push(input.ActionPanLeft)
	_, err = e.Tick()
	require.NoError(t, err)

	assert.InDelta(t, 10.0, e.Registry().Snapshot().FPS, 1e-9)
}
