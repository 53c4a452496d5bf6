package engine

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/mandelterm/audio"
	"github.com/lixenwraith/mandelterm/core"
	"github.com/lixenwraith/mandelterm/render"
)

// Run drives the loop until Quit, context cancellation or a fatal error
func (e *Explorer) Run(ctx context.Context) error {
	if e.opts.StatsInterval > 0 {
		statsCtx, cancel := context.WithCancel(ctx)
		done := make(chan struct{})
		core.Go(func() {
			defer close(done)
			e.logStats(statsCtx, e.opts.StatsInterval)
		})
		defer func() {
			cancel()
			<-done
		}()
	}

	ticker := time.NewTicker(e.opts.PollInterval)
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		quit, err := e.Tick()
		if err != nil || quit {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Tick performs one loop iteration: handle every queued event, commit any
// pending zoom once input is idle, then present a frame if the view changed
func (e *Explorer) Tick() (quit bool, err error) {
drainInput:
	for {
		ev, ok := e.input.Poll()
		if !ok {
			break drainInput
		}
		if quit, err = e.Handle(ev); err != nil || quit {
			return quit, err
		}
	}

	if committed, stats := e.view.CommitZoom(); committed {
		e.noteSalvage(stats)
	}
	if !e.dirty {
		return false, nil
	}
	return false, e.Frame()
}

// Frame recomputes invalidated cells and presents the view
// A failed recompute pass drops the frame and leaves the view dirty for the
// next iteration, until MaxFailures consecutive failures end the session
func (e *Explorer) Frame() error {
	maxIter := e.MaxIterations()
	stats, err := e.scheduler.Render(e.view, maxIter)
	if err != nil {
		if !errors.Is(err, core.ErrWorkerFailure) {
			return err
		}
		e.failures++
		e.logger.Warn("frame dropped", "error", err, "consecutive", e.failures)
		e.cue.Play(audio.CueError)
		if e.failures >= e.opts.MaxFailures {
			return errors.Wrapf(err, "%d consecutive render failures", e.failures)
		}
		return nil
	}
	e.failures = 0

	e.registry.Recomputed.Store(int64(stats.Items))
	e.registry.RenderNanos.Store(int64(stats.Elapsed))
	e.publish()

	if e.overlay != nil {
		if err := e.overlay.DrawStatus(e.registry.Snapshot()); err != nil {
			return errors.Wrap(err, "draw status")
		}
	}
	if err := render.Present(e.view, e.sink); err != nil {
		return err
	}

	e.registry.Frames.Add(1)
	e.registry.SetFPS(e.meter.Tick(e.clock.Now()))
	e.dirty = false
	return nil
}

// logStats writes a registry snapshot at every interval
func (e *Explorer) logStats(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s := e.registry.Snapshot()
			e.logger.Info("stats",
				"frames", s.Frames,
				"fps", s.FPS,
				"scale", s.Scale,
				"center", s.Center,
				"iterations", s.MaxIterations,
				"recomputed", s.Recomputed,
				"salvaged", s.Salvaged,
				"render", s.RenderTime,
			)
		}
	}
}
