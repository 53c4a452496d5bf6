package input

import "sort"

// actionRegistry maps canonical action names to actions
// Used by the keymap loader to resolve TOML action strings
var actionRegistry = map[string]Action{
	// Unbind sentinel
	"none": ActionNone,

	"pan_left":  ActionPanLeft,
	"pan_right": ActionPanRight,
	"pan_up":    ActionPanUp,
	"pan_down":  ActionPanDown,

	"zoom_in":  ActionZoomIn,
	"zoom_out": ActionZoomOut,

	"iterations_up":   ActionIterUp,
	"iterations_down": ActionIterDown,

	"home": ActionHome,
	"quit": ActionQuit,
}

var actionNames = func() map[Action]string {
	m := make(map[Action]string, len(actionRegistry))
	for name, a := range actionRegistry {
		m[a] = name
	}
	return m
}()

// ActionByName resolves a canonical action name
func ActionByName(name string) (Action, bool) {
	a, ok := actionRegistry[name]
	return a, ok
}

// ActionNames returns all registered action names in sorted order
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String returns the canonical action name
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}
