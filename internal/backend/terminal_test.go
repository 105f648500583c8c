package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/pulse/internal/event"
	"github.com/dshills/pulse/internal/input"
	"github.com/dshills/pulse/internal/input/keyboard"
	"github.com/dshills/pulse/internal/input/mouse"
)

type recorder struct {
	event.Receiver[input.Events]

	mouseChanges    []mouse.StateChange
	keyboardChanges []keyboard.StateChange
}

func newRecorder() *recorder {
	r := &recorder{}
	r.Bind(r)
	return r
}

func (r *recorder) OnMouseStateChanged(change mouse.StateChange) {
	r.mouseChanges = append(r.mouseChanges, change)
}

func (r *recorder) OnKeyboardStateChanged(change keyboard.StateChange) {
	r.keyboardChanges = append(r.keyboardChanges, change)
}

func newTestTerminal(t *testing.T) *Terminal {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewWithScreen(sim)
	if err := term.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(term.Shutdown)
	return term
}

func TestTerminal_MousePressAndMove(t *testing.T) {
	term := newTestTerminal(t)
	tracker := input.NewTracker()
	rec := newRecorder()
	tracker.Connect(rec)

	term.dispatch(tcell.NewEventMouse(10, 5, tcell.Button1, 0), tracker)

	state := tracker.MouseState()
	if got := state.Button(mouse.ButtonLeft); got != mouse.ButtonPressed {
		t.Errorf("left button = %v, want pressed", got)
	}
	if got := state.Position(); got != (mouse.Position{X: 10, Y: 5}) {
		t.Errorf("position = %+v, want {10 5}", got)
	}

	term.dispatch(tcell.NewEventMouse(12, 5, tcell.Button1, 0), tracker)
	term.dispatch(tcell.NewEventMouse(12, 5, tcell.ButtonNone, 0), tracker)

	state = tracker.MouseState()
	if got := state.Button(mouse.ButtonLeft); got != mouse.ButtonReleased {
		t.Errorf("left button after release = %v, want released", got)
	}
	if len(rec.mouseChanges) == 0 {
		t.Fatal("no mouse changes recorded")
	}
}

func TestTerminal_WheelScrolls(t *testing.T) {
	term := newTestTerminal(t)
	tracker := input.NewTracker()

	term.dispatch(tcell.NewEventMouse(0, 0, tcell.WheelUp, 0), tracker)
	term.dispatch(tcell.NewEventMouse(0, 0, tcell.WheelUp, 0), tracker)
	term.dispatch(tcell.NewEventMouse(0, 0, tcell.WheelDown, 0), tracker)

	state := tracker.MouseState()
	if got := state.Scroll(); got != (mouse.Scroll{Y: 1}) {
		t.Errorf("scroll = %+v, want {0 1}", got)
	}
}

func TestTerminal_KeyPressSynthesizesRelease(t *testing.T) {
	term := newTestTerminal(t)
	tracker := input.NewTracker()
	rec := newRecorder()
	tracker.Connect(rec)

	term.dispatch(tcell.NewEventKey(tcell.KeyHome, 0, 0), tracker)

	if len(rec.keyboardChanges) != 2 {
		t.Fatalf("keyboard changes = %d, want 2", len(rec.keyboardChanges))
	}
	if !rec.keyboardChanges[0].Current.IsKeyPressed(keyboard.KeyHome) {
		t.Error("first change does not show home pressed")
	}
	if rec.keyboardChanges[1].Current.IsKeyPressed(keyboard.KeyHome) {
		t.Error("second change still shows home pressed")
	}
}

func TestTerminal_RuneKey(t *testing.T) {
	term := newTestTerminal(t)
	tracker := input.NewTracker()
	rec := newRecorder()
	tracker.Connect(rec)

	term.dispatch(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModShift), tracker)

	if len(rec.keyboardChanges) == 0 {
		t.Fatal("no keyboard changes recorded")
	}
	first := rec.keyboardChanges[0]
	if !first.Current.IsKeyPressed(keyboard.Key('a')) {
		t.Error("rune key not recorded as pressed")
	}
	if first.Current.Modifiers() != keyboard.ModShift {
		t.Errorf("modifiers = %v, want shift", first.Current.Modifiers())
	}
}

func TestTerminal_FocusTracksInWindow(t *testing.T) {
	term := newTestTerminal(t)
	tracker := input.NewTracker()

	term.dispatch(tcell.NewEventFocus(true), tracker)
	state := tracker.MouseState()
	if !state.InWindow() {
		t.Error("InWindow() = false after focus gained")
	}
	term.dispatch(tcell.NewEventFocus(false), tracker)
	state = tracker.MouseState()
	if state.InWindow() {
		t.Error("InWindow() = true after focus lost")
	}
}

func TestTerminal_SetText(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewWithScreen(sim)
	if err := term.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer term.Shutdown()
	sim.SetSize(20, 4)

	term.SetText(1, 1, "ok", tcell.StyleDefault)
	term.Show()

	cells, w, _ := sim.GetContents()
	if got := cells[1*w+1].Runes[0]; got != 'o' {
		t.Errorf("cell (1,1) = %q, want 'o'", got)
	}
	if got := cells[1*w+2].Runes[0]; got != 'k' {
		t.Errorf("cell (2,1) = %q, want 'k'", got)
	}
}
