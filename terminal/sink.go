package terminal

import (
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/mandelterm/core"
	"github.com/lixenwraith/mandelterm/status"
)

// Emit draws the glyph for one classified cell
func (s *Screen) Emit(x, y int, c core.Classification) {
	if !s.tracker.Mark(x, y) {
		return
	}
	if c == core.Inside {
		s.screen.SetContent(x, y, s.inside, nil, s.styles.Inside)
	} else {
		s.screen.SetContent(x, y, s.outside, nil, s.styles.Outside)
	}
}

// DrawStatus queues the status box, drawn over the frame on the next Present
func (s *Screen) DrawStatus(snap status.Snapshot) error {
	s.status = status.Lines(snap)
	return nil
}

// ClearStatus removes the queued status box
func (s *Screen) ClearStatus() {
	s.status = nil
}

// Present shows the frame once every cell has been emitted
func (s *Screen) Present() error {
	if err := s.tracker.Check(); err != nil {
		return err
	}
	s.drawStatus()
	s.screen.Show()
	s.tracker.Reset()
	return nil
}

// drawStatus renders the queued lines in a box ruled with '-' above and below
func (s *Screen) drawStatus() {
	if len(s.status) == 0 || s.width < 3 || s.height < 3 {
		return
	}

	boxWidth := 0
	for _, line := range s.status {
		boxWidth = max(boxWidth, runewidth.StringWidth(line)+2)
	}
	boxWidth = min(boxWidth, s.width)

	rows := min(len(s.status), s.height-2)
	s.rule(0, boxWidth)
	for i := 0; i < rows; i++ {
		s.text(i+1, boxWidth, s.status[i])
	}
	s.rule(rows+1, boxWidth)
}

func (s *Screen) rule(y, width int) {
	for x := 0; x < width; x++ {
		s.screen.SetContent(x, y, '-', nil, s.styles.Status)
	}
}

// text writes " line " padded to width, truncating what does not fit
func (s *Screen) text(y, width int, line string) {
	line = runewidth.Truncate(line, width-2, "")
	s.screen.SetContent(0, y, ' ', nil, s.styles.Status)
	x := 1
	for _, r := range line {
		s.screen.SetContent(x, y, r, nil, s.styles.Status)
		x += max(runewidth.RuneWidth(r), 1)
	}
	for ; x < width; x++ {
		s.screen.SetContent(x, y, ' ', nil, s.styles.Status)
	}
}
