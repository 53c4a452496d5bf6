package core

// Classification is the escape-time verdict for a point of the complex plane
type Classification uint8

const (
	Outside Classification = iota
	Inside
)

// String returns the lowercase name of the classification
func (c Classification) String() string {
	if c == Inside {
		return "inside"
	}
	return "outside"
}

// PixelState is either Recompute or a computed Classification
// Zero value is Recompute so freshly allocated grids start invalidated
type PixelState struct {
	computed bool
	class    Classification
}

// Recompute returns the state for a cell whose classification is unknown
func Recompute() PixelState {
	return PixelState{}
}

// ValueOf returns the state holding a computed classification
func ValueOf(c Classification) PixelState {
	return PixelState{computed: true, class: c}
}

// IsRecompute reports whether the cell must be computed before display
func (p PixelState) IsRecompute() bool {
	return !p.computed
}

// Classification returns the computed value, false when the cell is Recompute
func (p PixelState) Classification() (Classification, bool) {
	return p.class, p.computed
}

func (p PixelState) String() string {
	if !p.computed {
		return "recompute"
	}
	return p.class.String()
}

// WorkItem pairs a logical cell with the plane point it samples
type WorkItem struct {
	Point complex128
	X, Y  int
}
