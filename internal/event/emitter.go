package event

// Connectable is satisfied by any type that embeds Receiver[C].
// It is the only way to obtain a receiver for Connect and Disconnect, which
// makes connecting an emitter and receiver of different contracts a
// compile-time error.
type Connectable[C any] interface {
	receiver() *Receiver[C]
}

// Emitter multicasts strongly-typed calls to zero or more connected
// receivers sharing the event contract C. The zero value is ready to use.
//
// An Emitter never owns its receivers: closing an emitter detaches the
// connected receivers but leaves them valid and independently closable.
type Emitter[C any] struct {
	// receivers preserves registration order. Slots are nilled instead of
	// removed while an emission is in progress, then compacted after the
	// outermost Emit returns.
	receivers []*Receiver[C]

	// index tracks membership for idempotent Connect and O(1) Disconnect.
	index map[*Receiver[C]]struct{}

	// emitDepth counts nested emissions triggered from callbacks.
	emitDepth int

	needsCompact bool
}

// Connect registers the receiver to be invoked by future emissions.
// Connecting an already-connected receiver is a no-op, so a receiver is
// never invoked twice per emission. The reciprocal back-reference on the
// receiver's side is added in the same operation.
//
// Connect panics if the receiver has not been bound to a callback target;
// that is a construction-time programming error, not a runtime condition.
func (e *Emitter[C]) Connect(c Connectable[C]) {
	r := c.receiver()
	if !r.bound {
		panic("event: cannot connect a receiver that has no bound target")
	}
	if _, connected := e.index[r]; connected {
		return
	}
	if e.index == nil {
		e.index = make(map[*Receiver[C]]struct{})
	}
	e.index[r] = struct{}{}
	e.receivers = append(e.receivers, r)
	r.attach(e)
}

// Disconnect removes the connection symmetrically. Disconnecting a receiver
// that is not connected is a no-op. It is safe to call from inside a
// callback invoked by this emitter's own in-progress emission, including for
// the receiver currently being visited.
func (e *Emitter[C]) Disconnect(c Connectable[C]) {
	e.disconnect(c.receiver())
}

func (e *Emitter[C]) disconnect(r *Receiver[C]) {
	if _, connected := e.index[r]; !connected {
		return
	}
	delete(e.index, r)
	r.detach(e)

	for i, cur := range e.receivers {
		if cur != r {
			continue
		}
		if e.emitDepth > 0 {
			// Removing the element would shift the slice under the
			// in-progress iteration; nil the slot and compact later.
			e.receivers[i] = nil
			e.needsCompact = true
		} else {
			e.receivers = append(e.receivers[:i], e.receivers[i+1:]...)
		}
		return
	}
}

// Emit invokes call once for every receiver connected when the emission
// started, in registration order, forwarding whatever the closure captures
// unchanged. Receivers that connect during the emission are not visited;
// receivers that disconnect (or close) during it are skipped.
func (e *Emitter[C]) Emit(call func(C)) {
	if len(e.receivers) == 0 {
		return
	}
	e.emitDepth++
	// Bound the iteration to the receivers present at the start; anything
	// appended by a callback lands beyond this point.
	count := len(e.receivers)
	for i := 0; i < count; i++ {
		r := e.receivers[i]
		if r == nil {
			continue
		}
		call(r.target)
	}
	e.emitDepth--
	if e.emitDepth == 0 && e.needsCompact {
		e.compact()
	}
}

// Close disconnects every connected receiver, removing this emitter from
// each receiver's connection set. Receivers are not notified; they simply
// become disconnected. The emitter remains usable afterwards.
func (e *Emitter[C]) Close() {
	for i, r := range e.receivers {
		if r == nil {
			continue
		}
		r.detach(e)
		delete(e.index, r)
		e.receivers[i] = nil
	}
	if e.emitDepth > 0 {
		e.needsCompact = true
		return
	}
	e.receivers = nil
	e.needsCompact = false
}

// ConnectedCount returns the number of currently connected receivers.
func (e *Emitter[C]) ConnectedCount() int {
	return len(e.index)
}

// IsConnected reports whether the receiver is currently connected.
func (e *Emitter[C]) IsConnected(c Connectable[C]) bool {
	_, connected := e.index[c.receiver()]
	return connected
}

// compact drops the slots nilled by disconnects that happened during an
// emission, preserving registration order of the survivors.
func (e *Emitter[C]) compact() {
	live := e.receivers[:0]
	for _, r := range e.receivers {
		if r != nil {
			live = append(live, r)
		}
	}
	// Release the tail so closed receivers are not retained.
	for i := len(live); i < len(e.receivers); i++ {
		e.receivers[i] = nil
	}
	e.receivers = live
	e.needsCompact = false
}
