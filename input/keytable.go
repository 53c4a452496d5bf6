package input

import (
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// KeyTable maps keys to actions
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, function keys)
	SpecialKeys map[tcell.Key]Action

	// Printable rune bindings
	Runes map[rune]Action
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]Action{
			tcell.KeyLeft:   ActionPanLeft,
			tcell.KeyRight:  ActionPanRight,
			tcell.KeyUp:     ActionPanUp,
			tcell.KeyDown:   ActionPanDown,
			tcell.KeyPgUp:   ActionZoomIn,
			tcell.KeyPgDn:   ActionZoomOut,
			tcell.KeyHome:   ActionHome,
			tcell.KeyEscape: ActionQuit,
			tcell.KeyCtrlC:  ActionQuit,
			tcell.KeyCtrlQ:  ActionQuit,
		},
		Runes: map[rune]Action{
			'h': ActionPanLeft,
			'j': ActionPanDown,
			'k': ActionPanUp,
			'l': ActionPanRight,
			'z': ActionZoomIn,
			'+': ActionZoomIn,
			'=': ActionZoomIn,
			'x': ActionZoomOut,
			'-': ActionZoomOut,
			']': ActionIterUp,
			'[': ActionIterDown,
			'0': ActionHome,
			'q': ActionQuit,
		},
	}
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	c := &KeyTable{
		SpecialKeys: make(map[tcell.Key]Action, len(kt.SpecialKeys)),
		Runes:       make(map[rune]Action, len(kt.Runes)),
	}
	for k, v := range kt.SpecialKeys {
		c.SpecialKeys[k] = v
	}
	for k, v := range kt.Runes {
		c.Runes[k] = v
	}
	return c
}

// Resolve returns the action bound to a key event, ActionNone if unbound
func (kt *KeyTable) Resolve(key tcell.Key, r rune) Action {
	if key == tcell.KeyRune {
		return kt.Runes[r]
	}
	return kt.SpecialKeys[key]
}

// Binding is a printable key/action pair
type Binding struct {
	Key    string
	Action Action
}

// Bindings lists every binding sorted by action then key
func (kt *KeyTable) Bindings() []Binding {
	out := make([]Binding, 0, len(kt.SpecialKeys)+len(kt.Runes))
	for k, a := range kt.SpecialKeys {
		name, ok := tcell.KeyNames[k]
		if !ok {
			continue
		}
		out = append(out, Binding{Key: name, Action: a})
	}
	for r, a := range kt.Runes {
		out = append(out, Binding{Key: runeName(r), Action: a})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Action != out[j].Action {
			return out[i].Action < out[j].Action
		}
		return strings.ToLower(out[i].Key) < strings.ToLower(out[j].Key)
	})
	return out
}

func runeName(r rune) string {
	for name, alias := range runeAliases {
		if alias == r {
			return name
		}
	}
	return string(r)
}
