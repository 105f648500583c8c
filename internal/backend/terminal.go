// Package backend drives a tcell terminal screen and translates raw
// terminal events into input.Tracker transitions.
package backend

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/pulse/internal/input"
	"github.com/dshills/pulse/internal/input/keyboard"
	"github.com/dshills/pulse/internal/input/mouse"
)

// Terminal wraps a tcell screen. Drawing methods are safe for concurrent
// use; Run must be called from a single goroutine.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex

	// last observed raw button mask, for press/release diffing
	buttons tcell.ButtonMask
}

// NewTerminal creates a terminal backend on the process TTY.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewWithScreen creates a terminal backend over an existing screen. Tests
// use this with a tcell simulation screen.
func NewWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Init prepares the screen and enables mouse and focus reporting.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	t.screen.EnableFocus()
	return nil
}

// Shutdown restores the terminal to its previous state.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

// Size returns the screen dimensions in cells.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

// Clear erases the screen buffer.
func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

// Show flushes pending buffer changes to the terminal.
func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

// SetText writes a string starting at the given cell.
func (t *Terminal) SetText(x, y int, text string, style tcell.Style) {
	t.mu.Lock()
	defer t.mu.Unlock()

	col := x
	for _, r := range text {
		t.screen.SetContent(col, y, r, nil, style)
		col++
	}
}

// Events starts delivering terminal events on the returned channel until
// quit is closed or the screen is finalized. The channel is closed when
// delivery stops.
func (t *Terminal) Events(quit <-chan struct{}) <-chan tcell.Event {
	events := make(chan tcell.Event)
	go t.screen.ChannelEvents(events, quit)
	return events
}

// Feed translates one terminal event into tracker transitions. Callers are
// expected to feed all events from a single goroutine.
func (t *Terminal) Feed(ev tcell.Event, tracker *input.Tracker) {
	t.dispatch(ev, tracker)
}

// Run consumes terminal events and feeds them into the tracker until the
// context is canceled or the screen is finalized.
func (t *Terminal) Run(ctx context.Context, tracker *input.Tracker) error {
	quit := make(chan struct{})
	events := t.Events(quit)

	for {
		select {
		case <-ctx.Done():
			close(quit)
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			t.dispatch(ev, tracker)
		}
	}
}

func (t *Terminal) dispatch(ev tcell.Event, tracker *input.Tracker) {
	switch e := ev.(type) {
	case *tcell.EventMouse:
		x, y := e.Position()
		tracker.MousePositionChanged(mouse.Position{X: x, Y: y})
		tracker.ModifiersChanged(convertMod(e.Modifiers()))
		t.updateButtons(e.Buttons(), tracker)

	case *tcell.EventKey:
		tracker.ModifiersChanged(convertMod(e.Modifiers()))
		key := convertKey(e)
		// Terminals report key presses only; synthesize the release so
		// the pressed set does not accumulate stale keys.
		tracker.KeyChanged(key, true)
		tracker.KeyChanged(key, false)

	case *tcell.EventFocus:
		tracker.MouseInWindowChanged(e.Focused)

	case *tcell.EventResize:
		t.mu.Lock()
		t.screen.Sync()
		t.mu.Unlock()
	}
}

var buttonMasks = []struct {
	mask   tcell.ButtonMask
	button mouse.Button
}{
	{tcell.Button1, mouse.ButtonLeft},
	{tcell.Button2, mouse.ButtonMiddle},
	{tcell.Button3, mouse.ButtonRight},
	{tcell.Button4, mouse.Button4},
	{tcell.Button5, mouse.Button5},
}

func (t *Terminal) updateButtons(raw tcell.ButtonMask, tracker *input.Tracker) {
	for _, bm := range buttonMasks {
		had := t.buttons&bm.mask != 0
		has := raw&bm.mask != 0
		if has == had {
			continue
		}
		state := mouse.ButtonReleased
		if has {
			state = mouse.ButtonPressed
		}
		tracker.MouseButtonChanged(bm.button, state)
	}

	switch {
	case raw&tcell.WheelUp != 0:
		tracker.MouseScrollChanged(mouse.Scroll{Y: 1})
	case raw&tcell.WheelDown != 0:
		tracker.MouseScrollChanged(mouse.Scroll{Y: -1})
	case raw&tcell.WheelLeft != 0:
		tracker.MouseScrollChanged(mouse.Scroll{X: -1})
	case raw&tcell.WheelRight != 0:
		tracker.MouseScrollChanged(mouse.Scroll{X: 1})
	}

	t.buttons = raw &^ (tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight)
}

// convertKey maps a tcell key event to a keyboard key.
func convertKey(e *tcell.EventKey) keyboard.Key {
	switch e.Key() {
	case tcell.KeyRune:
		return keyboard.Key(e.Rune())
	case tcell.KeyEscape:
		return keyboard.KeyEscape
	case tcell.KeyEnter:
		return keyboard.KeyEnter
	case tcell.KeyTab:
		return keyboard.KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return keyboard.KeyBackspace
	case tcell.KeyDelete:
		return keyboard.KeyDelete
	case tcell.KeyUp:
		return keyboard.KeyUp
	case tcell.KeyDown:
		return keyboard.KeyDown
	case tcell.KeyLeft:
		return keyboard.KeyLeft
	case tcell.KeyRight:
		return keyboard.KeyRight
	case tcell.KeyHome:
		return keyboard.KeyHome
	case tcell.KeyEnd:
		return keyboard.KeyEnd
	case tcell.KeyPgUp:
		return keyboard.KeyPageUp
	case tcell.KeyPgDn:
		return keyboard.KeyPageDown
	default:
		return keyboard.KeyUnknown
	}
}

// convertMod maps a tcell modifier mask to a keyboard modifier mask.
func convertMod(m tcell.ModMask) keyboard.Modifier {
	var result keyboard.Modifier
	if m&tcell.ModShift != 0 {
		result |= keyboard.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= keyboard.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= keyboard.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= keyboard.ModSuper
	}
	return result
}
