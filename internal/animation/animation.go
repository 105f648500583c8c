// Package animation runs time-based animations and broadcasts their
// lifecycle through event connections.
package animation

import (
	"time"

	"github.com/google/uuid"
)

// Animation is a unit of time-based work driven by the pool. Update is
// called once per pool update with the time elapsed since the animation
// started; returning false marks the animation as finished.
type Animation interface {
	Update(elapsed time.Duration) bool
}

// Func adapts a plain function to the Animation interface.
type Func func(elapsed time.Duration) bool

// Update implements Animation.
func (f Func) Update(elapsed time.Duration) bool {
	return f(elapsed)
}

// Timed wraps an animation so it finishes after a fixed duration, whatever
// the wrapped update returns.
func Timed(duration time.Duration, a Animation) Animation {
	return Func(func(elapsed time.Duration) bool {
		if elapsed >= duration {
			return false
		}
		return a.Update(elapsed)
	})
}

// Info identifies a running animation in lifecycle events.
type Info struct {
	// ID is the pool-assigned animation identifier.
	ID string

	// StartedAt is when the animation was added to the pool.
	StartedAt time.Time
}

// Events is the lifecycle contract emitted by the Pool.
type Events interface {
	// OnAnimationStarted is invoked when an animation is added.
	OnAnimationStarted(info Info)

	// OnAnimationFinished is invoked when an animation reports completion
	// or is stopped.
	OnAnimationFinished(info Info)
}

// entry pairs an animation with its lifecycle info.
type entry struct {
	animation Animation
	info      Info
}

func newInfo(now time.Time) Info {
	return Info{
		ID:        uuid.NewString(),
		StartedAt: now,
	}
}
