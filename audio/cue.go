package audio

// Cue is an audible feedback event
type Cue uint8

const (
	CueError    Cue = iota // Zoom refused, frame dropped
	CueTickUp              // Iteration budget raised
	CueTickDown            // Iteration budget lowered
	CueBell                // View reset
)

func (c Cue) String() string {
	switch c {
	case CueError:
		return "error"
	case CueTickUp:
		return "tick_up"
	case CueTickDown:
		return "tick_down"
	case CueBell:
		return "bell"
	default:
		return "unknown"
	}
}

// Silent discards every cue
type Silent struct{}

// Play does nothing
func (Silent) Play(Cue) {}

// Close does nothing
func (Silent) Close() {}
