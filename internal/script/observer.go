// Package script runs Lua observers that react to application events.
//
// A script declares interest by defining global functions:
//
//	function on_frame(index, delta_seconds) ... end
//	function on_view_changed(eye_x, eye_y, eye_z) ... end
//	function on_config_changed(cfg) ... end
//	function on_animation_started(id) ... end
//	function on_animation_finished(id) ... end
//
// The Observer adapts those functions into event receivers; missing
// functions simply mean the script ignores that event. Script errors are
// logged and never propagate into the emitting frame.
package script

import (
	"fmt"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/pulse/internal/animation"
	"github.com/dshills/pulse/internal/app"
	"github.com/dshills/pulse/internal/camera"
	"github.com/dshills/pulse/internal/config"
	"github.com/dshills/pulse/internal/event"
)

// Observer hosts one Lua script and exposes a receiver per event contract
// it can observe. Receivers not connected by the caller stay idle.
type Observer struct {
	state *lua.LState
	log   zerolog.Logger

	frame *event.Receiver[app.FrameEvents]
	view  *event.Receiver[camera.ViewEvents]
	cfg   *event.Receiver[config.Events]
	anim  *event.Receiver[animation.Events]
}

// New creates an observer from Lua source code.
func New(source string, log zerolog.Logger) (*Observer, error) {
	o := &Observer{
		state: lua.NewState(),
		log:   log.With().Str("component", "script").Logger(),
	}
	if err := o.state.DoString(source); err != nil {
		o.state.Close()
		return nil, fmt.Errorf("loading script: %w", err)
	}
	o.bindReceivers()
	return o, nil
}

// Open creates an observer from a Lua script file.
func Open(path string, log zerolog.Logger) (*Observer, error) {
	o := &Observer{
		state: lua.NewState(),
		log:   log.With().Str("component", "script").Str("path", path).Logger(),
	}
	if err := o.state.DoFile(path); err != nil {
		o.state.Close()
		return nil, fmt.Errorf("loading script %s: %w", path, err)
	}
	o.bindReceivers()
	return o, nil
}

func (o *Observer) bindReceivers() {
	o.frame = event.NewReceiver[app.FrameEvents](o)
	o.view = event.NewReceiver[camera.ViewEvents](o)
	o.cfg = event.NewReceiver[config.Events](o)
	o.anim = event.NewReceiver[animation.Events](o)
}

// FrameReceiver returns the receiver to connect to a frame-event emitter.
func (o *Observer) FrameReceiver() *event.Receiver[app.FrameEvents] {
	return o.frame
}

// ViewReceiver returns the receiver to connect to a view-event emitter.
func (o *Observer) ViewReceiver() *event.Receiver[camera.ViewEvents] {
	return o.view
}

// ConfigReceiver returns the receiver to connect to a config-event emitter.
func (o *Observer) ConfigReceiver() *event.Receiver[config.Events] {
	return o.cfg
}

// AnimationReceiver returns the receiver to connect to an animation-event
// emitter.
func (o *Observer) AnimationReceiver() *event.Receiver[animation.Events] {
	return o.anim
}

// Close detaches all receivers from their emitters and shuts the Lua state
// down.
func (o *Observer) Close() {
	o.frame.Close()
	o.view.Close()
	o.cfg.Close()
	o.anim.Close()
	o.state.Close()
}

// OnFrame implements app.FrameEvents.
func (o *Observer) OnFrame(frame app.Frame) {
	o.call("on_frame", lua.LNumber(frame.Index), lua.LNumber(frame.Delta.Seconds()))
}

// OnViewChanged implements camera.ViewEvents.
func (o *Observer) OnViewChanged(view camera.View) {
	o.call("on_view_changed",
		lua.LNumber(view.Eye.X), lua.LNumber(view.Eye.Y), lua.LNumber(view.Eye.Z))
}

// OnConfigChanged implements config.Events.
func (o *Observer) OnConfigChanged(cfg config.Config) {
	table := o.state.NewTable()
	o.state.SetField(table, "frame_rate", lua.LNumber(cfg.FrameRate))
	o.state.SetField(table, "mouse_sensitivity", lua.LNumber(cfg.MouseSensitivity))
	o.state.SetField(table, "zoom_steps", lua.LNumber(cfg.ZoomSteps))
	o.state.SetField(table, "zoom_min", lua.LNumber(cfg.ZoomMin))
	o.state.SetField(table, "zoom_max", lua.LNumber(cfg.ZoomMax))
	o.state.SetField(table, "log_level", lua.LString(cfg.LogLevel))
	o.call("on_config_changed", table)
}

// OnAnimationStarted implements animation.Events.
func (o *Observer) OnAnimationStarted(info animation.Info) {
	o.call("on_animation_started", lua.LString(info.ID))
}

// OnAnimationFinished implements animation.Events.
func (o *Observer) OnAnimationFinished(info animation.Info) {
	o.call("on_animation_finished", lua.LString(info.ID))
}

// call invokes a global Lua function if the script defined it.
func (o *Observer) call(name string, args ...lua.LValue) {
	fn := o.state.GetGlobal(name)
	if fn == lua.LNil {
		return
	}
	err := o.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, args...)
	if err != nil {
		o.log.Warn().Err(err).Str("function", name).Msg("script callback failed")
	}
}
