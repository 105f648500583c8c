// Package app wires the application together: configuration, input
// tracking, camera, animations and the terminal backend, with a frame loop
// that drives them from a single goroutine.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/pulse/internal/animation"
	"github.com/dshills/pulse/internal/backend"
	"github.com/dshills/pulse/internal/camera"
	"github.com/dshills/pulse/internal/config"
	"github.com/dshills/pulse/internal/event"
	"github.com/dshills/pulse/internal/input"
)

// LifecycleEvents is the contract for application lifecycle notifications.
type LifecycleEvents interface {
	// OnContextInitialized is invoked once the backend and configuration
	// are ready, before the first frame.
	OnContextInitialized()

	// OnContextClosing is invoked when the run loop has stopped but
	// resources are still alive.
	OnContextClosing()

	// OnContextReleased is invoked after the backend has been shut down.
	OnContextReleased()
}

// Frame describes one tick of the run loop.
type Frame struct {
	Index uint64
	Now   time.Time
	Delta time.Duration
}

// FrameEvents is the contract for per-frame notifications.
type FrameEvents interface {
	OnFrame(frame Frame)
}

// App owns the object graph and the run loop.
type App struct {
	id           string
	log          zerolog.Logger
	cfgPath      string
	rateOverride int

	lifecycle event.Emitter[LifecycleEvents]
	frames    event.Emitter[FrameEvents]

	config  *config.Manager
	tracker *input.Tracker
	camera  *camera.ArcBall
	pool    *animation.Pool
	term    *backend.Terminal

	// cfgReceiver listens to config changes and retunes the camera.
	cfgReceiver *event.Receiver[config.Events]
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the application logger.
func WithLogger(log zerolog.Logger) Option {
	return func(a *App) { a.log = log }
}

// WithConfigPath sets the configuration file to load and watch.
func WithConfigPath(path string) Option {
	return func(a *App) { a.cfgPath = path }
}

// WithTerminal sets the terminal backend. Without one the app runs
// headless: the loop still ticks, but no input arrives.
func WithTerminal(term *backend.Terminal) Option {
	return func(a *App) { a.term = term }
}

// WithFrameRate overrides the configured frame rate. Zero means use the
// configuration.
func WithFrameRate(rate int) Option {
	return func(a *App) { a.rateOverride = rate }
}

// New builds the application graph. The camera is connected to the input
// tracker; everything else is wired by the caller through the Connect
// methods.
func New(opts ...Option) *App {
	a := &App{
		id:  uuid.NewString(),
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.With().Str("instance", a.id).Logger()

	a.config = config.NewManager(a.cfgPath, a.log)
	a.tracker = input.NewTracker()
	a.pool = animation.NewPool()

	a.camera = camera.NewArcBall(camera.View{
		Eye: camera.Vec3{Z: 10},
		Up:  camera.Vec3{Y: 1},
	})
	a.tracker.Connect(a.camera)

	// Camera settings follow the configuration: applied when Load emits
	// the initial config and re-applied on every live reload.
	a.cfgReceiver = event.NewReceiver[config.Events](a)
	a.config.Connect(a.cfgReceiver)
	a.OnConfigChanged(a.config.Current())

	return a
}

// OnConfigChanged implements config.Events, retuning the camera to the
// loaded settings.
func (a *App) OnConfigChanged(cfg config.Config) {
	a.camera.Reconfigure(
		camera.WithSensitivity(cfg.MouseSensitivity),
		camera.WithZoomSteps(cfg.ZoomSteps),
		camera.WithZoomDistanceRange(camera.DistanceRange{Min: cfg.ZoomMin, Max: cfg.ZoomMax}),
	)
}

// ID returns the unique instance identifier.
func (a *App) ID() string { return a.id }

// Config returns the configuration manager.
func (a *App) Config() *config.Manager { return a.config }

// Tracker returns the input tracker.
func (a *App) Tracker() *input.Tracker { return a.tracker }

// Camera returns the arc-ball camera.
func (a *App) Camera() *camera.ArcBall { return a.camera }

// Animations returns the animation pool.
func (a *App) Animations() *animation.Pool { return a.pool }

// ConnectLifecycle connects a receiver to lifecycle notifications.
func (a *App) ConnectLifecycle(c event.Connectable[LifecycleEvents]) {
	a.lifecycle.Connect(c)
}

// ConnectFrames connects a receiver to per-frame notifications.
func (a *App) ConnectFrames(c event.Connectable[FrameEvents]) {
	a.frames.Connect(c)
}

// Run loads configuration, initializes the backend and drives the frame
// loop until the context is canceled or escape is pressed.
func (a *App) Run(ctx context.Context) error {
	if _, err := a.config.Load(); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if a.term != nil {
		if err := a.term.Init(); err != nil {
			return fmt.Errorf("initializing terminal: %w", err)
		}
		a.camera.Resize(a.term.Size())
	}

	a.lifecycle.Emit(func(cb LifecycleEvents) { cb.OnContextInitialized() })
	a.log.Info().Msg("context initialized")

	var watch <-chan struct{}
	if a.cfgPath != "" {
		ch, err := a.config.Watch(ctx)
		if err != nil {
			a.log.Warn().Err(err).Msg("config watch unavailable")
		} else {
			watch = ch
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	quit := make(chan struct{})
	var events <-chan tcell.Event
	if a.term != nil {
		events = a.term.Events(quit)
	}

	g.Go(func() error {
		defer close(quit)
		return a.loop(ctx, events, watch)
	})

	err := g.Wait()

	a.lifecycle.Emit(func(cb LifecycleEvents) { cb.OnContextClosing() })
	if a.term != nil {
		a.term.Shutdown()
	}
	a.lifecycle.Emit(func(cb LifecycleEvents) { cb.OnContextReleased() })
	a.log.Info().Msg("context released")

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close detaches every connection in the graph. The app must not be used
// afterwards.
func (a *App) Close() {
	a.lifecycle.Close()
	a.frames.Close()
	a.cfgReceiver.Close()
	a.camera.Close()
	a.pool.Close()
	a.tracker.Close()
	a.config.Close()
}

func (a *App) frameRate() int {
	if a.rateOverride > 0 {
		return a.rateOverride
	}
	return a.config.Current().FrameRate
}

func (a *App) loop(ctx context.Context, events <-chan tcell.Event, watch <-chan struct{}) error {
	rate := a.frameRate()
	ticker := time.NewTicker(frameInterval(rate))
	defer ticker.Stop()

	var index uint64
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch e := ev.(type) {
			case *tcell.EventKey:
				if e.Key() == tcell.KeyEscape {
					return nil
				}
			case *tcell.EventResize:
				a.camera.Resize(e.Size())
			}
			a.term.Feed(ev, a.tracker)

		case _, ok := <-watch:
			if !ok {
				watch = nil
				continue
			}
			a.config.Reload()
			if current := a.frameRate(); current != rate {
				rate = current
				ticker.Reset(frameInterval(rate))
			}

		case now := <-ticker.C:
			index++
			frame := Frame{Index: index, Now: now, Delta: now.Sub(last)}
			last = now
			a.pool.Update(now)
			a.frames.Emit(func(cb FrameEvents) { cb.OnFrame(frame) })
		}
	}
}

func frameInterval(rate int) time.Duration {
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}
