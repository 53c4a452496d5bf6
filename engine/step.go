package engine

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/mandelterm/audio"
	"github.com/lixenwraith/mandelterm/core"
	"github.com/lixenwraith/mandelterm/input"
	"github.com/lixenwraith/mandelterm/salvage"
	"github.com/lixenwraith/mandelterm/viewport"
)

// Handle applies one input event, returns true when the session should end
func (e *Explorer) Handle(ev input.Event) (quit bool, err error) {
	switch ev.Type {
	case input.EventResize:
		e.Resize(ev.Width, ev.Height)
		return false, nil
	case input.EventAction:
		return e.Step(ev.Action)
	}
	return false, nil
}

// Step applies one action to the view
func (e *Explorer) Step(a input.Action) (quit bool, err error) {
	switch a {
	case input.ActionQuit:
		return true, nil

	case input.ActionPanLeft:
		e.pan(core.Left, e.opts.PanCellsX)
	case input.ActionPanRight:
		e.pan(core.Right, e.opts.PanCellsX)
	case input.ActionPanUp:
		e.pan(core.Up, e.opts.PanCellsY)
	case input.ActionPanDown:
		e.pan(core.Down, e.opts.PanCellsY)

	case input.ActionZoomIn:
		return false, e.zoom(e.opts.ZoomFactor)
	case input.ActionZoomOut:
		return false, e.zoom(1 / e.opts.ZoomFactor)

	case input.ActionIterUp:
		e.adjustIterations(e.opts.IterStep, audio.CueTickUp)
	case input.ActionIterDown:
		e.adjustIterations(-e.opts.IterStep, audio.CueTickDown)

	case input.ActionHome:
		w, _ := e.view.Size()
		home := e.homeOptions(w)
		e.view.Reset(home.Center, home.Scale)
		e.budget.Offset = 0
		e.dirty = true
		e.cue.Play(audio.CueBell)
		e.logger.Debug("view reset", "center", home.Center, "scale", home.Scale)
	}
	return false, nil
}

func (e *Explorer) pan(dir core.Direction, cells int) {
	e.view.Pan(dir, cells)
	e.dirty = true
}

// zoom refuses past the precision limit without ending the session
func (e *Explorer) zoom(factor float64) error {
	committed, stats, err := e.view.Zoom(factor)
	switch {
	case errors.Is(err, viewport.ErrPrecisionLimit):
		e.logger.Info("zoom refused", "error", err)
		e.cue.Play(audio.CueError)
		return nil
	case err != nil:
		return err
	}
	if committed {
		e.noteSalvage(stats)
	}
	return nil
}

func (e *Explorer) adjustIterations(delta int, cue audio.Cue) {
	before := e.budget.Offset
	e.budget.Adjust(delta)
	if e.budget.Offset == before {
		e.cue.Play(audio.CueError)
		return
	}
	e.view.Invalidate()
	e.dirty = true
	e.cue.Play(cue)
	e.logger.Debug("iterations adjusted", "offset", e.budget.Offset, "max", e.MaxIterations())
}

func (e *Explorer) noteSalvage(stats salvage.Stats) {
	e.registry.Salvaged.Store(int64(stats.Salvaged))
	e.dirty = true
	e.logger.Debug("zoom committed",
		"scale", e.view.Scale(), "salvaged", stats.Salvaged, "invalidated", stats.Invalidated)
}

// Resize rebuilds the viewport at the same center and scale, including any pending zoom
func (e *Explorer) Resize(width, height int) {
	if w, h := e.view.Size(); w == width && h == height {
		return
	}
	if committed, stats := e.view.CommitZoom(); committed {
		e.noteSalvage(stats)
	}

	opts := e.homeOptions(width)
	opts.Center = e.view.Center()
	opts.Scale = e.view.Scale()
	e.view = viewport.New(width, height, opts)
	e.dirty = true
	e.logger.Debug("resized", "width", width, "height", height)
}
