package animation

import (
	"time"

	"github.com/dshills/pulse/internal/event"
)

// Pool drives a set of animations and emits their lifecycle events.
// Animations are updated in the order they were added; finished ones are
// dropped from the pool after their completion event is emitted. Add and
// Stop are safe to call from inside an animation's Update and from
// lifecycle callbacks.
type Pool struct {
	event.Emitter[Events]

	// entries preserves registration order. Slots are nilled instead of
	// removed while a sweep is in progress, then compacted after the
	// outermost Update returns.
	entries []*entry

	updateDepth  int
	needsCompact bool
	paused       bool
}

// NewPool creates an empty animation pool.
func NewPool() *Pool {
	return &Pool{}
}

// Add starts an animation, assigns it an ID, and emits the started event.
// An animation added from inside Update joins the pool immediately but is
// not visited by the sweep in progress.
func (p *Pool) Add(a Animation, now time.Time) Info {
	info := newInfo(now)
	p.entries = append(p.entries, &entry{animation: a, info: info})
	p.Emit(func(cb Events) { cb.OnAnimationStarted(info) })
	return info
}

// Stop removes a running animation by ID and emits the finished event.
// Stopping an unknown ID is a no-op. Stopping from inside Update removes
// the animation before the sweep reaches it.
func (p *Pool) Stop(id string) {
	for i, e := range p.entries {
		if e == nil || e.info.ID != id {
			continue
		}
		p.remove(i)
		info := e.info
		p.Emit(func(cb Events) { cb.OnAnimationFinished(info) })
		return
	}
}

func (p *Pool) remove(i int) {
	if p.updateDepth > 0 {
		// Removing the element would shift the slice under the in-progress
		// sweep; nil the slot and compact later.
		p.entries[i] = nil
		p.needsCompact = true
		return
	}
	p.entries = append(p.entries[:i], p.entries[i+1:]...)
}

// Update advances every animation present when the sweep started to the
// given time. Animations that report completion are removed and their
// finished events emitted after the sweep.
func (p *Pool) Update(now time.Time) {
	if p.paused || len(p.entries) == 0 {
		return
	}

	p.updateDepth++
	// Bound the sweep to the entries present at the start; anything
	// appended by a callback lands beyond this point.
	count := len(p.entries)
	var finished []Info
	for i := 0; i < count; i++ {
		e := p.entries[i]
		if e == nil {
			continue
		}
		if !e.animation.Update(now.Sub(e.info.StartedAt)) {
			// The callback may have stopped this very animation; it has
			// already been removed and its finished event emitted then.
			if p.entries[i] == e {
				p.entries[i] = nil
				p.needsCompact = true
				finished = append(finished, e.info)
			}
		}
	}
	p.updateDepth--
	if p.updateDepth == 0 && p.needsCompact {
		p.compact()
	}

	for _, info := range finished {
		info := info
		p.Emit(func(cb Events) { cb.OnAnimationFinished(info) })
	}
}

// compact drops the slots nilled during a sweep, preserving registration
// order of the survivors.
func (p *Pool) compact() {
	live := p.entries[:0]
	for _, e := range p.entries {
		if e != nil {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(p.entries); i++ {
		p.entries[i] = nil
	}
	p.entries = live
	p.needsCompact = false
}

// Pause suspends updates; running animations keep their start times.
func (p *Pool) Pause() {
	p.paused = true
}

// Resume re-enables updates after a pause.
func (p *Pool) Resume() {
	p.paused = false
}

// IsPaused reports whether updates are suspended.
func (p *Pool) IsPaused() bool {
	return p.paused
}

// Count returns the number of running animations.
func (p *Pool) Count() int {
	count := 0
	for _, e := range p.entries {
		if e != nil {
			count++
		}
	}
	return count
}
