// Package camera provides an arc-ball orbit camera driven by input events.
//
// The ArcBall is both ends of the event mechanism at once: it receives
// input state changes from a connected input.Tracker and emits view changes
// to its own connected receivers whenever the orbit or zoom is updated.
package camera

import (
	"math"

	"github.com/dshills/pulse/internal/event"
	"github.com/dshills/pulse/internal/input"
	"github.com/dshills/pulse/internal/input/keyboard"
	"github.com/dshills/pulse/internal/input/mouse"
)

// View is the camera view state delivered to receivers.
type View struct {
	// Eye is the camera position.
	Eye Vec3

	// Aim is the look-at target.
	Aim Vec3

	// Up is the camera up direction.
	Up Vec3
}

// LookDirection returns the vector from eye to aim.
func (v View) LookDirection() Vec3 {
	return v.Aim.Sub(v.Eye)
}

// ViewEvents is the contract emitted on every view mutation.
type ViewEvents interface {
	OnViewChanged(view View)
}

// Pivot selects the point the camera rotates around.
type Pivot int

const (
	// PivotAim rotates the eye around the aim point (orbit).
	PivotAim Pivot = iota
	// PivotEye rotates the aim around the eye point (look around).
	PivotEye
)

// DistanceRange bounds the eye-to-aim distance reachable by zooming.
type DistanceRange struct {
	Min float64
	Max float64
}

// ArcBall is an orbit camera: pressing anchors a point on a virtual sphere,
// dragging rotates the view so the anchor follows the pointer, scrolling
// zooms within the configured distance range.
type ArcBall struct {
	event.Emitter[ViewEvents]
	event.Receiver[input.Events]

	pivot         Pivot
	radiusRatio   float64
	sensitivity   float64
	zoomSteps     int
	zoomRange     DistanceRange
	screenWidth   float64
	screenHeight  float64
	view          View
	pressedOnBall Vec3
	pressedView   View
	dragging      bool
}

// Option configures an ArcBall.
type Option func(*ArcBall)

// WithPivot sets the rotation pivot.
func WithPivot(p Pivot) Option {
	return func(c *ArcBall) {
		c.pivot = p
	}
}

// WithRadiusRatio sets the virtual sphere diameter as a fraction of the
// smaller screen dimension.
func WithRadiusRatio(ratio float64) Option {
	return func(c *ArcBall) {
		if ratio > 0 {
			c.radiusRatio = ratio
		}
	}
}

// WithSensitivity scales the rotation angle produced by a drag gesture.
func WithSensitivity(s float64) Option {
	return func(c *ArcBall) {
		if s > 0 {
			c.sensitivity = s
		}
	}
}

// WithZoomSteps sets how many scroll steps span the zoom distance range.
func WithZoomSteps(steps int) Option {
	return func(c *ArcBall) {
		if steps > 0 {
			c.zoomSteps = steps
		}
	}
}

// WithZoomDistanceRange bounds the zoom distance.
func WithZoomDistanceRange(r DistanceRange) Option {
	return func(c *ArcBall) {
		if r.Min > 0 && r.Max > r.Min {
			c.zoomRange = r
		}
	}
}

// NewArcBall creates an arc-ball camera with the given initial view.
func NewArcBall(view View, opts ...Option) *ArcBall {
	c := &ArcBall{
		pivot:       PivotAim,
		radiusRatio: 0.9,
		sensitivity: 1,
		zoomSteps:   10,
		zoomRange:   DistanceRange{Min: 1, Max: 1000},
		view:        view,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Bind(c)
	return c
}

// Reconfigure applies options to a live camera, typically when the
// configuration is loaded or reloaded. Invalid values are ignored the same
// way the constructor ignores them.
func (c *ArcBall) Reconfigure(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// View returns the current view state.
func (c *ArcBall) View() View {
	return c.view
}

// SetView replaces the view state and notifies connected receivers.
func (c *ArcBall) SetView(view View) {
	c.view = view
	c.emitViewChanged()
}

// Resize updates the screen size used for sphere projection.
func (c *ArcBall) Resize(width, height int) {
	c.screenWidth = float64(width)
	c.screenHeight = float64(height)
}

// Close detaches the camera from both sides of the event graph: its view
// receivers and the input emitters it is connected to.
func (c *ArcBall) Close() {
	c.Emitter.Close()
	c.Receiver.Close()
}

// OnMouseStateChanged implements input.Events, translating raw state
// transitions into press/drag/zoom gestures.
func (c *ArcBall) OnMouseStateChanged(change mouse.StateChange) {
	leftHeld := change.Current.Button(mouse.ButtonLeft) == mouse.ButtonPressed

	if change.Changed.Has(mouse.PropertyButtons) {
		if leftHeld {
			c.mousePressed(change.Current.Position())
		} else {
			c.dragging = false
		}
	}
	if change.Changed.Has(mouse.PropertyPosition) && c.dragging {
		c.mouseDragged(change.Current.Position())
	}
	if change.Changed.Has(mouse.PropertyScroll) {
		delta := change.Current.Scroll()
		delta.X -= change.Previous.Scroll().X
		delta.Y -= change.Previous.Scroll().Y
		if button, amount := mouse.ScrollButtonAndDelta(delta); button == mouse.ButtonVScroll {
			c.mouseScrolled(amount)
		}
	}
}

// OnKeyboardStateChanged implements input.Events. Home resets the view to
// the state captured at the last press.
func (c *ArcBall) OnKeyboardStateChanged(change keyboard.StateChange) {
	if !change.Changed.Has(keyboard.PropertyKeys) {
		return
	}
	if change.Current.IsKeyPressed(keyboard.KeyHome) && c.dragging {
		c.dragging = false
		c.view = c.pressedView
		c.emitViewChanged()
	}
}

func (c *ArcBall) mousePressed(pos mouse.Position) {
	c.pressedOnBall = c.sphereProjection(pos)
	c.pressedView = c.view
	c.dragging = true
}

func (c *ArcBall) mouseDragged(pos mouse.Position) {
	current := c.sphereProjection(pos)

	dot := c.pressedOnBall.Dot(current)
	axis := c.pressedOnBall.Cross(current)
	if axis.Length() == 0 {
		return
	}
	angle := math.Acos(clamp(dot, -1, 1)) * c.sensitivity
	axis = axis.Normalized()

	// Rotation is applied to the view captured at press time, so a drag is
	// one absolute gesture rather than an accumulation of deltas.
	switch c.pivot {
	case PivotAim:
		arm := c.pressedView.Eye.Sub(c.pressedView.Aim).RotatedAround(axis, angle)
		c.view.Eye = c.pressedView.Aim.Add(arm)
	case PivotEye:
		arm := c.pressedView.Aim.Sub(c.pressedView.Eye).RotatedAround(axis, angle)
		c.view.Aim = c.pressedView.Eye.Add(arm)
	}
	c.view.Up = c.pressedView.Up.RotatedAround(axis, angle)
	c.emitViewChanged()
}

func (c *ArcBall) mouseScrolled(delta float64) {
	look := c.view.LookDirection()
	distance := look.Length()
	if distance == 0 {
		return
	}

	step := (c.zoomRange.Max - c.zoomRange.Min) / float64(c.zoomSteps)
	newDistance := clamp(distance-delta*step, c.zoomRange.Min, c.zoomRange.Max)
	if newDistance == distance {
		return
	}

	c.view.Eye = c.view.Aim.Sub(look.Normalized().Scale(newDistance))
	c.emitViewChanged()
}

// sphereProjection maps a screen position onto the virtual unit sphere
// centered on the screen.
func (c *ArcBall) sphereProjection(pos mouse.Position) Vec3 {
	radius := c.radiusInPixels()
	if radius == 0 {
		return Vec3{Z: 1}
	}

	x := (float64(pos.X) - c.screenWidth/2) / radius
	// Screen Y grows downward; sphere Y grows upward.
	y := (c.screenHeight/2 - float64(pos.Y)) / radius

	lengthSq := x*x + y*y
	if lengthSq > 1 {
		// Outside the sphere: project onto its silhouette edge.
		length := math.Sqrt(lengthSq)
		return Vec3{X: x / length, Y: y / length}
	}
	return Vec3{X: x, Y: y, Z: math.Sqrt(1 - lengthSq)}
}

func (c *ArcBall) radiusInPixels() float64 {
	return math.Min(c.screenWidth, c.screenHeight) * c.radiusRatio / 2
}

func (c *ArcBall) emitViewChanged() {
	view := c.view
	c.Emit(func(cb ViewEvents) { cb.OnViewChanged(view) })
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
