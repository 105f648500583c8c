package event

// Receiver is the consuming half of an event connection for contract C.
// It holds back-references to every emitter it is connected to for exactly
// one purpose: detaching from all of them when the receiver is closed.
//
// A concrete receiver embeds Receiver[C], implements C, and calls Bind on
// itself during construction. The zero value is valid but must be bound
// before it can be connected.
type Receiver[C any] struct {
	target   C
	bound    bool
	emitters map[*Emitter[C]]struct{}
}

// NewReceiver returns a receiver bound to the given callback target.
// Useful for standalone adapters; types embedding Receiver[C] call Bind
// instead.
func NewReceiver[C any](target C) *Receiver[C] {
	r := &Receiver[C]{}
	r.Bind(target)
	return r
}

// Bind fixes the callback target invoked by connected emitters. It must be
// called before the receiver is connected, normally with the embedding type
// itself as the target.
func (r *Receiver[C]) Bind(target C) {
	r.target = target
	r.bound = true
}

// Close disconnects the receiver from every emitter it is connected to, so
// that no emitter retains a reference to it. It is safe to call from inside
// one of the receiver's own callbacks during an in-progress emission, and
// calling it on an unconnected receiver is a no-op. The receiver remains
// bound and may be reconnected afterwards.
func (r *Receiver[C]) Close() {
	if len(r.emitters) == 0 {
		return
	}
	// Snapshot: each disconnect mutates r.emitters.
	connected := make([]*Emitter[C], 0, len(r.emitters))
	for e := range r.emitters {
		connected = append(connected, e)
	}
	for _, e := range connected {
		e.disconnect(r)
	}
}

// EmitterCount returns the number of emitters this receiver is currently
// connected to.
func (r *Receiver[C]) EmitterCount() int {
	return len(r.emitters)
}

// receiver implements Connectable[C].
func (r *Receiver[C]) receiver() *Receiver[C] {
	return r
}

func (r *Receiver[C]) attach(e *Emitter[C]) {
	if r.emitters == nil {
		r.emitters = make(map[*Emitter[C]]struct{})
	}
	r.emitters[e] = struct{}{}
}

func (r *Receiver[C]) detach(e *Emitter[C]) {
	delete(r.emitters, e)
}
