package input

// Action is a core operation requested by a key
type Action uint8

const (
	ActionNone Action = iota
	ActionPanLeft
	ActionPanRight
	ActionPanUp
	ActionPanDown
	ActionZoomIn
	ActionZoomOut
	ActionIterUp
	ActionIterDown
	ActionHome
	ActionQuit
)

// EventType distinguishes input event categories
type EventType uint8

const (
	EventAction EventType = iota
	EventResize
)

// Event is a decoded input event handed to the loop
type Event struct {
	Type   EventType
	Action Action
	Width  int // For EventResize
	Height int // For EventResize
}

// ActionEvent wraps an action into an Event
func ActionEvent(a Action) Event {
	return Event{Type: EventAction, Action: a}
}

// ResizeEvent reports new terminal dimensions
func ResizeEvent(width, height int) Event {
	return Event{Type: EventResize, Width: width, Height: height}
}
