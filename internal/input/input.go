// Package input tracks aggregate input state and broadcasts state changes.
//
// The Tracker is fed raw input transitions (button presses, pointer moves,
// key presses) by a platform backend, folds them into mouse and keyboard
// state snapshots, and emits a StateChange carrying the exact diff to every
// connected receiver. Transitions that do not change the state emit nothing.
package input

import (
	"github.com/dshills/pulse/internal/event"
	"github.com/dshills/pulse/internal/input/keyboard"
	"github.com/dshills/pulse/internal/input/mouse"
)

// Events is the contract delivered by the Tracker to connected receivers.
type Events interface {
	// OnMouseStateChanged is invoked after every effective mouse state
	// transition with the current and previous snapshots.
	OnMouseStateChanged(change mouse.StateChange)

	// OnKeyboardStateChanged is invoked after every effective keyboard
	// state transition with the current and previous snapshots.
	OnKeyboardStateChanged(change keyboard.StateChange)
}

// Tracker owns the authoritative input state and multicasts changes.
type Tracker struct {
	event.Emitter[Events]

	mouseState    mouse.State
	keyboardState keyboard.State
}

// NewTracker creates an input tracker with released initial state.
func NewTracker() *Tracker {
	return &Tracker{}
}

// MouseState returns the current mouse snapshot.
func (t *Tracker) MouseState() mouse.State {
	return t.mouseState
}

// KeyboardState returns a copy of the current keyboard snapshot.
func (t *Tracker) KeyboardState() keyboard.State {
	return t.keyboardState.Clone()
}

// MouseButtonChanged records a button transition and emits the change.
func (t *Tracker) MouseButtonChanged(button mouse.Button, state mouse.ButtonState) {
	previous := t.mouseState
	t.mouseState.SetButton(button, state)
	t.emitMouseChange(previous)
}

// MousePositionChanged records a pointer move and emits the change.
func (t *Tracker) MousePositionChanged(position mouse.Position) {
	previous := t.mouseState
	t.mouseState.SetPosition(position)
	t.emitMouseChange(previous)
}

// MouseScrollChanged accumulates a scroll delta and emits the change.
func (t *Tracker) MouseScrollChanged(delta mouse.Scroll) {
	previous := t.mouseState
	t.mouseState.AddScrollDelta(delta)
	t.emitMouseChange(previous)
}

// MouseInWindowChanged records the pointer entering or leaving the window
// and emits the change.
func (t *Tracker) MouseInWindowChanged(inWindow bool) {
	previous := t.mouseState
	t.mouseState.SetInWindow(inWindow)
	t.emitMouseChange(previous)
}

// KeyChanged records a key transition and emits the change.
func (t *Tracker) KeyChanged(key keyboard.Key, pressed bool) {
	previous := t.keyboardState.Clone()
	if pressed {
		t.keyboardState.PressKey(key)
	} else {
		t.keyboardState.ReleaseKey(key)
	}
	t.emitKeyboardChange(previous)
}

// ModifiersChanged records a modifier transition and emits the change.
func (t *Tracker) ModifiersChanged(modifiers keyboard.Modifier) {
	previous := t.keyboardState.Clone()
	t.keyboardState.SetModifiers(modifiers)
	t.emitKeyboardChange(previous)
}

func (t *Tracker) emitMouseChange(previous mouse.State) {
	changed := t.mouseState.Diff(previous)
	if changed == mouse.PropertyNone {
		return
	}
	change := mouse.StateChange{
		Current:  t.mouseState,
		Previous: previous,
		Changed:  changed,
	}
	t.Emit(func(cb Events) { cb.OnMouseStateChanged(change) })
}

func (t *Tracker) emitKeyboardChange(previous keyboard.State) {
	changed := t.keyboardState.Diff(previous)
	if changed == keyboard.PropertyNone {
		return
	}
	change := keyboard.StateChange{
		Current:  t.keyboardState.Clone(),
		Previous: previous,
		Changed:  changed,
	}
	t.Emit(func(cb Events) { cb.OnKeyboardStateChanged(change) })
}
