package cli

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/pulse/internal/app"
	"github.com/dshills/pulse/internal/backend"
	"github.com/dshills/pulse/internal/camera"
	"github.com/dshills/pulse/internal/event"
)

// hud renders the camera state once per frame. It listens on two
// contracts, so it holds a bound receiver per emitter instead of
// embedding one.
type hud struct {
	frames *event.Receiver[app.FrameEvents]
	views  *event.Receiver[camera.ViewEvents]

	term *backend.Terminal
	view camera.View
}

func newHUD(term *backend.Terminal, cam *camera.ArcBall) *hud {
	h := &hud{
		term: term,
		view: cam.View(),
	}
	h.frames = event.NewReceiver[app.FrameEvents](h)
	h.views = event.NewReceiver[camera.ViewEvents](h)
	return h
}

func (h *hud) OnViewChanged(view camera.View) {
	h.view = view
}

func (h *hud) OnFrame(frame app.Frame) {
	h.term.Clear()
	h.term.SetText(1, 1, fmt.Sprintf("pulse %s  frame %d", version, frame.Index), tcell.StyleDefault)
	h.term.SetText(1, 2, fmt.Sprintf("eye  %7.2f %7.2f %7.2f", h.view.Eye.X, h.view.Eye.Y, h.view.Eye.Z), tcell.StyleDefault)
	h.term.SetText(1, 3, fmt.Sprintf("aim  %7.2f %7.2f %7.2f", h.view.Aim.X, h.view.Aim.Y, h.view.Aim.Z), tcell.StyleDefault)
	h.term.SetText(1, 5, "drag: rotate   scroll: zoom   home: reset   esc: quit", tcell.StyleDefault)
	h.term.Show()
}
