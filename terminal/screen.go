package terminal

import (
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/lixenwraith/mandelterm/core"
	"github.com/lixenwraith/mandelterm/input"
	"github.com/lixenwraith/mandelterm/parameter"
	"github.com/lixenwraith/mandelterm/render"
)

// ErrNotTerminal is returned when stdin is not attached to a terminal
var ErrNotTerminal = errors.New("stdin is not a terminal")

// readerStopTimeout bounds the wait for the reader goroutine on Fini
const readerStopTimeout = 200 * time.Millisecond

// Options configures a Screen, zero fields take defaults
type Options struct {
	Keys    *input.KeyTable
	Inside  rune
	Outside rune
	Styles  *Styles
}

// Styles are the cell styles used for drawing
type Styles struct {
	Inside  tcell.Style
	Outside tcell.Style
	Status  tcell.Style
}

// DefaultStyles returns the default palette
func DefaultStyles() *Styles {
	return &Styles{
		Inside:  tcell.StyleDefault.Foreground(tcell.ColorSilver),
		Outside: tcell.StyleDefault,
		Status:  tcell.StyleDefault.Reverse(true),
	}
}

// Screen implements the loop's input source, frame sink and status overlay on tcell
type Screen struct {
	screen tcell.Screen
	keys   *input.KeyTable
	styles *Styles

	inside  rune
	outside rune

	width   int
	height  int
	tracker *render.Tracker
	status  []string

	events chan input.Event
	stopCh chan struct{}
	doneCh chan struct{}

	finiOnce sync.Once
}

// New opens the controlling terminal
func New(opts Options) (*Screen, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, ErrNotTerminal
	}
	ts, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "create screen")
	}
	return NewWithScreen(ts, opts)
}

// NewWithScreen initializes ts and starts the input reader
// Used directly with tcell.SimulationScreen in tests
func NewWithScreen(ts tcell.Screen, opts Options) (*Screen, error) {
	if err := ts.Init(); err != nil {
		return nil, errors.Wrap(err, "init screen")
	}
	ts.HideCursor()
	ts.Clear()

	if opts.Keys == nil {
		opts.Keys = input.DefaultKeyTable()
	}
	if opts.Inside == 0 {
		opts.Inside = parameter.InsideGlyph
	}
	if opts.Outside == 0 {
		opts.Outside = parameter.OutsideGlyph
	}
	if opts.Styles == nil {
		opts.Styles = DefaultStyles()
	}

	s := &Screen{
		screen:  ts,
		keys:    opts.Keys,
		styles:  opts.Styles,
		inside:  opts.Inside,
		outside: opts.Outside,
		tracker: render.NewTracker(0, 0),
		events:  make(chan input.Event, parameter.InputQueueSize),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	s.Resize(ts.Size())

	core.Go(s.readLoop)
	return s, nil
}

// Size returns the current frame dimensions
func (s *Screen) Size() (width, height int) {
	return s.width, s.height
}

// Resize adopts new dimensions, the next frame must cover every cell again
func (s *Screen) Resize(width, height int) {
	s.width, s.height = width, height
	s.tracker.Resize(width, height)
	s.screen.Sync()
}

// Fini stops the reader and restores the terminal, safe to call multiple times
func (s *Screen) Fini() {
	s.finiOnce.Do(func() {
		close(s.stopCh)
		s.screen.Fini()
		select {
		case <-s.doneCh:
		case <-time.After(readerStopTimeout):
		}
	})
}
