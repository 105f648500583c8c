// Package config loads application configuration from TOML and broadcasts
// configuration changes through event connections.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the application settings.
type Config struct {
	// FrameRate is the target update rate in frames per second.
	FrameRate int `toml:"frame_rate"`

	// MouseSensitivity scales drag rotation speed.
	MouseSensitivity float64 `toml:"mouse_sensitivity"`

	// ZoomSteps is the number of scroll steps spanning the zoom range.
	ZoomSteps int `toml:"zoom_steps"`

	// ZoomMin is the closest eye-to-aim distance reachable by zooming.
	ZoomMin float64 `toml:"zoom_min"`

	// ZoomMax is the farthest eye-to-aim distance reachable by zooming.
	ZoomMax float64 `toml:"zoom_max"`

	// LogLevel selects the zerolog level (trace, debug, info, warn, error).
	LogLevel string `toml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		FrameRate:        60,
		MouseSensitivity: 1.0,
		ZoomSteps:        10,
		ZoomMin:          1,
		ZoomMax:          1000,
		LogLevel:         "info",
	}
}

// Validate checks the configuration for values the application cannot run
// with.
func (c Config) Validate() error {
	if c.FrameRate <= 0 {
		return fmt.Errorf("%w: frame_rate must be positive, got %d", ErrInvalidConfig, c.FrameRate)
	}
	if c.MouseSensitivity <= 0 {
		return fmt.Errorf("%w: mouse_sensitivity must be positive, got %g", ErrInvalidConfig, c.MouseSensitivity)
	}
	if c.ZoomSteps <= 0 {
		return fmt.Errorf("%w: zoom_steps must be positive, got %d", ErrInvalidConfig, c.ZoomSteps)
	}
	if c.ZoomMin <= 0 || c.ZoomMax <= c.ZoomMin {
		return fmt.Errorf("%w: zoom range [%g, %g] must be positive and increasing",
			ErrInvalidConfig, c.ZoomMin, c.ZoomMax)
	}
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// Events is the contract emitted by the Manager when the configuration
// changes.
type Events interface {
	OnConfigChanged(cfg Config)
}
