// Package event provides typed event connections between emitters and receivers.
//
// The connection mechanism is Pulse's decoupling primitive: components that
// produce notifications (input state changes, animation ticks, view updates,
// context lifecycle) multicast strongly-typed calls to any number of
// consumers without either side tracking the other's lifetime by hand.
//
// # Roles
//
// An event contract is an ordinary Go interface listing callback methods:
//
//	type ViewEvents interface {
//	    OnViewChanged(view View)
//	}
//
// An Emitter[C] holds the ordered set of receivers currently connected for
// contract C and multicasts calls to them. A Receiver[C] implements the
// contract (via its bound target) and tracks which emitters it is connected
// to, purely so it can detach from all of them when it is closed.
//
// Concrete emitters embed Emitter[C] and wrap Emit in named methods:
//
//	type Controller struct {
//	    event.Emitter[ViewEvents]
//	}
//
//	func (c *Controller) emitViewChanged(view View) {
//	    c.Emit(func(cb ViewEvents) { cb.OnViewChanged(view) })
//	}
//
// Concrete receivers embed Receiver[C], implement C, and bind themselves:
//
//	type Overlay struct {
//	    event.Receiver[ViewEvents]
//	    view View
//	}
//
//	func NewOverlay() *Overlay {
//	    o := &Overlay{}
//	    o.Bind(o)
//	    return o
//	}
//
//	func (o *Overlay) OnViewChanged(view View) { o.view = view }
//
// Because Connect accepts Connectable[C], which only types embedding
// Receiver[C] can satisfy, connecting an emitter and receiver of different
// contracts is a compile-time error.
//
// # Connection bookkeeping
//
// Every Connect registers the receiver on the emitter's side and the emitter
// on the receiver's side in the same operation; every Disconnect removes both
// halves. Connect is idempotent and Disconnect of an unconnected pair is a
// no-op. Closing either endpoint detaches it from all of its peers, so
// neither side is ever left holding a reference to a closed peer.
//
// # Emission
//
// Emit invokes the callback on every receiver connected when the emission
// started, in registration order. Receivers may connect, disconnect, or close
// themselves from inside a callback: receivers added during an emission do
// not receive that emission, and receivers removed during it are skipped
// without being invoked.
//
// # Goroutine model
//
// A connected graph of emitters and receivers belongs to one goroutine.
// Connect, Disconnect, Emit, and Close are synchronous and take no internal
// locks; callers that produce events on other goroutines (terminal polling,
// file watching) hand them to the owning goroutine over a channel.
package event
