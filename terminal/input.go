package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/mandelterm/input"
)

// Poll returns the next decoded event without blocking
// Resize events are applied to the sink before being returned
func (s *Screen) Poll() (input.Event, bool) {
	select {
	case ev := <-s.events:
		if ev.Type == input.EventResize {
			s.Resize(ev.Width, ev.Height)
		}
		return ev, true
	default:
		return input.Event{}, false
	}
}

// readLoop decodes tcell events until the screen is finalized
func (s *Screen) readLoop() {
	defer close(s.doneCh)

	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}

		var out input.Event
		switch e := ev.(type) {
		case *tcell.EventKey:
			action := s.keys.Resolve(e.Key(), e.Rune())
			if action == input.ActionNone {
				continue
			}
			out = input.ActionEvent(action)
		case *tcell.EventResize:
			w, h := e.Size()
			out = input.ResizeEvent(w, h)
		default:
			continue
		}

		select {
		case s.events <- out:
		case <-s.stopCh:
			return
		}
	}
}
