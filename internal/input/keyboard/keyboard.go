// Package keyboard models keyboard state and state changes, mirroring the
// shape of the mouse package: a State snapshot, a Diff of changed
// properties, and a StateChange pairing the two snapshots.
package keyboard

import (
	"sort"
	"strings"
)

// Key identifies a physical key. Printable keys carry their rune; named
// keys use the negative range so they never collide with runes.
type Key rune

const (
	// KeyUnknown indicates an unrecognized key.
	KeyUnknown Key = -iota - 1
	// KeyEscape is the escape key.
	KeyEscape
	// KeyEnter is the return key.
	KeyEnter
	// KeyTab is the tab key.
	KeyTab
	// KeyBackspace is the backspace key.
	KeyBackspace
	// KeyDelete is the forward-delete key.
	KeyDelete
	// KeyUp is the up arrow.
	KeyUp
	// KeyDown is the down arrow.
	KeyDown
	// KeyLeft is the left arrow.
	KeyLeft
	// KeyRight is the right arrow.
	KeyRight
	// KeyHome is the home key.
	KeyHome
	// KeyEnd is the end key.
	KeyEnd
	// KeyPageUp is the page-up key.
	KeyPageUp
	// KeyPageDown is the page-down key.
	KeyPageDown
)

// String returns the key name, or the rune itself for printable keys.
func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "escape"
	case KeyEnter:
		return "enter"
	case KeyTab:
		return "tab"
	case KeyBackspace:
		return "backspace"
	case KeyDelete:
		return "delete"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	case KeyPageUp:
		return "page-up"
	case KeyPageDown:
		return "page-down"
	case KeyUnknown:
		return "unknown"
	default:
		if k > 0 {
			return string(rune(k))
		}
		return "unknown"
	}
}

// Modifier is a bitset of held modifier keys.
type Modifier uint8

const (
	// ModShift marks a held shift key.
	ModShift Modifier = 1 << iota
	// ModCtrl marks a held control key.
	ModCtrl
	// ModAlt marks a held alt/option key.
	ModAlt
	// ModSuper marks a held super/command key.
	ModSuper

	// ModNone is the empty modifier set.
	ModNone Modifier = 0
)

// Has reports whether the set contains the given modifier.
func (m Modifier) Has(other Modifier) bool {
	return m&other != 0
}

// String returns a plus-separated list of modifier names.
func (m Modifier) String() string {
	var names []string
	if m.Has(ModShift) {
		names = append(names, "shift")
	}
	if m.Has(ModCtrl) {
		names = append(names, "ctrl")
	}
	if m.Has(ModAlt) {
		names = append(names, "alt")
	}
	if m.Has(ModSuper) {
		names = append(names, "super")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "+")
}

// Property identifies a part of the keyboard state.
type Property uint32

const (
	// PropertyKeys marks a change in the pressed-key set.
	PropertyKeys Property = 1 << iota
	// PropertyModifiers marks a change of the modifier set.
	PropertyModifiers

	// PropertyNone is the empty property set.
	PropertyNone Property = 0
)

// Has reports whether the set contains the given property.
func (p Property) Has(other Property) bool {
	return p&other != 0
}

// State is a snapshot of the keyboard: the set of held keys plus the
// modifier mask. The zero value is the all-released state.
type State struct {
	pressed   map[Key]struct{}
	modifiers Modifier
}

// PressKey marks a key as held.
func (s *State) PressKey(k Key) {
	if s.pressed == nil {
		s.pressed = make(map[Key]struct{})
	}
	s.pressed[k] = struct{}{}
}

// ReleaseKey marks a key as released.
func (s *State) ReleaseKey(k Key) {
	delete(s.pressed, k)
}

// IsKeyPressed reports whether a key is currently held.
func (s *State) IsKeyPressed(k Key) bool {
	_, held := s.pressed[k]
	return held
}

// PressedKeys returns the held keys in stable (sorted) order.
func (s *State) PressedKeys() []Key {
	if len(s.pressed) == 0 {
		return nil
	}
	keys := make([]Key, 0, len(s.pressed))
	for k := range s.pressed {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Modifiers returns the held modifier set.
func (s *State) Modifiers() Modifier {
	return s.modifiers
}

// SetModifiers replaces the held modifier set.
func (s *State) SetModifiers(m Modifier) {
	s.modifiers = m
}

// Clone returns an independent copy of the state. State holds a map, so a
// plain assignment would alias the pressed-key set.
func (s *State) Clone() State {
	clone := State{modifiers: s.modifiers}
	if len(s.pressed) > 0 {
		clone.pressed = make(map[Key]struct{}, len(s.pressed))
		for k := range s.pressed {
			clone.pressed[k] = struct{}{}
		}
	}
	return clone
}

// Diff returns the set of properties in which s differs from other.
func (s *State) Diff(other State) Property {
	diff := PropertyNone
	if !sameKeys(s.pressed, other.pressed) {
		diff |= PropertyKeys
	}
	if s.modifiers != other.modifiers {
		diff |= PropertyModifiers
	}
	return diff
}

// String returns a readable snapshot description.
func (s *State) String() string {
	names := make([]string, 0, len(s.pressed))
	for _, k := range s.PressedKeys() {
		names = append(names, k.String())
	}
	keys := "none"
	if len(names) > 0 {
		keys = strings.Join(names, "+")
	}
	return "keys=" + keys + " modifiers=" + s.modifiers.String()
}

func sameKeys(a, b map[Key]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// StateChange carries the current and previous snapshots of one keyboard
// state transition along with the set of changed properties.
type StateChange struct {
	Current  State
	Previous State
	Changed  Property
}
