// Package mouse models mouse state and state changes.
//
// State is a value type holding the full mouse snapshot (button states,
// position, accumulated scroll, in-window flag). Diff compares two snapshots
// and reports which properties changed, so consumers can react only to the
// parts of the state they care about.
package mouse

import (
	"fmt"
	"math"
	"strings"
)

// Button represents a mouse button.
type Button uint8

const (
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft Button = iota
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// Button4 is the first extra button (usually back navigation).
	Button4
	// Button5 is the second extra button (usually forward navigation).
	Button5
	// ButtonVScroll is the virtual vertical scroll button.
	ButtonVScroll
	// ButtonHScroll is the virtual horizontal scroll button.
	ButtonHScroll
	// ButtonUnknown indicates an unrecognized button.
	ButtonUnknown

	buttonCount = int(ButtonUnknown)
)

// String returns the button name.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	case Button4:
		return "button-4"
	case Button5:
		return "button-5"
	case ButtonVScroll:
		return "v-scroll"
	case ButtonHScroll:
		return "h-scroll"
	default:
		return "unknown"
	}
}

// ButtonState is the pressed/released state of a single button.
type ButtonState uint8

const (
	// ButtonReleased means the button is up.
	ButtonReleased ButtonState = iota
	// ButtonPressed means the button is down.
	ButtonPressed
)

// Position is a mouse position in screen cells.
type Position struct {
	X int
	Y int
}

// Scroll is an accumulated scroll offset.
type Scroll struct {
	X float64
	Y float64
}

// minScrollDelta is the smallest scroll movement considered intentional.
const minScrollDelta = 0.00001

// ScrollButtonAndDelta maps a scroll delta to the dominant virtual scroll
// button and its magnitude. Returns ButtonUnknown when the delta is below
// the noise threshold on both axes.
func ScrollButtonAndDelta(delta Scroll) (Button, float64) {
	if math.Abs(delta.Y) > minScrollDelta {
		return ButtonVScroll, delta.Y
	}
	if math.Abs(delta.X) > minScrollDelta {
		return ButtonHScroll, delta.X
	}
	return ButtonUnknown, 0
}

// Property identifies a part of the mouse state. Properties combine into a
// bitset describing which parts changed between two snapshots.
type Property uint32

const (
	// PropertyButtons marks a change in any button state.
	PropertyButtons Property = 1 << iota
	// PropertyPosition marks a change of the pointer position.
	PropertyPosition
	// PropertyScroll marks a change of the accumulated scroll offset.
	PropertyScroll
	// PropertyInWindow marks the pointer entering or leaving the window.
	PropertyInWindow

	// PropertyNone is the empty property set.
	PropertyNone Property = 0
)

// Has reports whether the set contains the given property.
func (p Property) Has(other Property) bool {
	return p&other != 0
}

// String returns a pipe-separated list of property names.
func (p Property) String() string {
	var names []string
	if p.Has(PropertyButtons) {
		names = append(names, "buttons")
	}
	if p.Has(PropertyPosition) {
		names = append(names, "position")
	}
	if p.Has(PropertyScroll) {
		names = append(names, "scroll")
	}
	if p.Has(PropertyInWindow) {
		names = append(names, "in-window")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// State is a full snapshot of the mouse. The zero value is the released,
// origin-positioned, out-of-window state.
type State struct {
	buttons  [buttonCount]ButtonState
	position Position
	scroll   Scroll
	inWindow bool
}

// Button returns the state of a single button.
func (s *State) Button(b Button) ButtonState {
	if int(b) >= buttonCount {
		return ButtonReleased
	}
	return s.buttons[b]
}

// SetButton sets the state of a single button.
func (s *State) SetButton(b Button, state ButtonState) {
	if int(b) < buttonCount {
		s.buttons[b] = state
	}
}

// PressButton marks a button as pressed.
func (s *State) PressButton(b Button) {
	s.SetButton(b, ButtonPressed)
}

// ReleaseButton marks a button as released.
func (s *State) ReleaseButton(b Button) {
	s.SetButton(b, ButtonReleased)
}

// PressedButtons returns the buttons currently held, in button order.
func (s *State) PressedButtons() []Button {
	var pressed []Button
	for b := 0; b < buttonCount; b++ {
		if s.buttons[b] == ButtonPressed {
			pressed = append(pressed, Button(b))
		}
	}
	return pressed
}

// Position returns the pointer position.
func (s *State) Position() Position {
	return s.position
}

// SetPosition moves the pointer position.
func (s *State) SetPosition(p Position) {
	s.position = p
}

// Scroll returns the accumulated scroll offset.
func (s *State) Scroll() Scroll {
	return s.scroll
}

// AddScrollDelta accumulates a scroll movement.
func (s *State) AddScrollDelta(delta Scroll) {
	s.scroll.X += delta.X
	s.scroll.Y += delta.Y
}

// ResetScroll clears the accumulated scroll offset.
func (s *State) ResetScroll() {
	s.scroll = Scroll{}
}

// InWindow reports whether the pointer is inside the window.
func (s *State) InWindow() bool {
	return s.inWindow
}

// SetInWindow sets the pointer-in-window flag.
func (s *State) SetInWindow(inWindow bool) {
	s.inWindow = inWindow
}

// Diff returns the set of properties in which s differs from other.
func (s *State) Diff(other State) Property {
	diff := PropertyNone
	if s.buttons != other.buttons {
		diff |= PropertyButtons
	}
	if s.position != other.position {
		diff |= PropertyPosition
	}
	if s.scroll != other.scroll {
		diff |= PropertyScroll
	}
	if s.inWindow != other.inWindow {
		diff |= PropertyInWindow
	}
	return diff
}

// String returns a readable snapshot description.
func (s *State) String() string {
	names := make([]string, 0, buttonCount)
	for _, b := range s.PressedButtons() {
		names = append(names, b.String())
	}
	pressed := "none"
	if len(names) > 0 {
		pressed = strings.Join(names, "+")
	}
	return fmt.Sprintf("(%d, %d) buttons=%s scroll=(%.1f, %.1f) in-window=%t",
		s.position.X, s.position.Y, pressed, s.scroll.X, s.scroll.Y, s.inWindow)
}

// StateChange carries the current and previous snapshots of one mouse state
// transition along with the set of changed properties.
type StateChange struct {
	Current  State
	Previous State
	Changed  Property
}
