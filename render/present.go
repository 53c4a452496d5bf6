package render

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/mandelterm/core"
)

// Present emits every cell of frame to sink and presents it
// Fails fast with core.ErrIncompleteFrame, before emitting anything, if a cell is still Recompute
func Present(frame Frame, sink Sink) error {
	w, h := frame.Size()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s, err := frame.Get(x, y)
			if err != nil {
				return err
			}
			if s.IsRecompute() {
				return errors.Wrapf(core.ErrIncompleteFrame, "cell (%d,%d) not rendered", x, y)
			}
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s, _ := frame.Get(x, y)
			c, _ := s.Classification()
			sink.Emit(x, y, c)
		}
	}
	return sink.Present()
}
