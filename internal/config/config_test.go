package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dshills/pulse/internal/event"
)

func TestParse_AppliesDefaultsForAbsentKeys(t *testing.T) {
	cfg, err := Parse([]byte(`frame_rate = 30`))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if cfg.FrameRate != 30 {
		t.Errorf("expected frame_rate 30, got %d", cfg.FrameRate)
	}

	defaults := Default()
	if cfg.MouseSensitivity != defaults.MouseSensitivity {
		t.Errorf("expected default mouse_sensitivity %g, got %g", defaults.MouseSensitivity, cfg.MouseSensitivity)
	}
	if cfg.LogLevel != defaults.LogLevel {
		t.Errorf("expected default log_level %q, got %q", defaults.LogLevel, cfg.LogLevel)
	}
}

func TestParse_FullDocument(t *testing.T) {
	data := []byte(`
frame_rate = 120
mouse_sensitivity = 2.5
zoom_steps = 20
zoom_min = 0.5
zoom_max = 50.0
log_level = "debug"
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	want := Config{
		FrameRate:        120,
		MouseSensitivity: 2.5,
		ZoomSteps:        20,
		ZoomMin:          0.5,
		ZoomMax:          50.0,
		LogLevel:         "debug",
	}
	if cfg != want {
		t.Errorf("Parse() = %+v, want %+v", cfg, want)
	}
}

func TestParse_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"zero frame rate", `frame_rate = 0`},
		{"negative sensitivity", `mouse_sensitivity = -1.0`},
		{"inverted zoom range", "zoom_min = 10.0\nzoom_max = 5.0"},
		{"unknown log level", `log_level = "loud"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestParse_MalformedTOML(t *testing.T) {
	_, err := Parse([]byte(`frame_rate = `))
	if err == nil {
		t.Error("expected parse error for malformed TOML")
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults for missing file, got %+v", cfg)
	}
}

// configRecorder collects configuration change events.
type configRecorder struct {
	event.Receiver[Events]

	changes []Config
}

func newConfigRecorder() *configRecorder {
	r := &configRecorder{}
	r.Bind(r)
	return r
}

func (r *configRecorder) OnConfigChanged(cfg Config) {
	r.changes = append(r.changes, cfg)
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "pulse.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestManager_LoadEmitsChange(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `frame_rate = 30`)
	manager := NewManager(path, zerolog.Nop())
	rec := newConfigRecorder()
	manager.Connect(rec)

	cfg, err := manager.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.FrameRate != 30 {
		t.Errorf("expected frame_rate 30, got %d", cfg.FrameRate)
	}
	if len(rec.changes) != 1 || rec.changes[0] != cfg {
		t.Errorf("expected one change event carrying %+v, got %v", cfg, rec.changes)
	}
	if manager.Current() != cfg {
		t.Errorf("expected Current() = %+v, got %+v", cfg, manager.Current())
	}
}

func TestManager_ReloadKeepsPreviousOnError(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `frame_rate = 30`)
	manager := NewManager(path, zerolog.Nop())
	rec := newConfigRecorder()
	manager.Connect(rec)

	if _, err := manager.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	writeConfig(t, dir, `frame_rate = 0`)
	manager.Reload()

	if len(rec.changes) != 1 {
		t.Errorf("expected no change event for invalid reload, got %d", len(rec.changes))
	}
	if manager.Current().FrameRate != 30 {
		t.Errorf("expected previous config kept, got frame_rate %d", manager.Current().FrameRate)
	}
}

func TestManager_ReloadSkipsUnchangedConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `frame_rate = 30`)
	manager := NewManager(path, zerolog.Nop())
	rec := newConfigRecorder()
	manager.Connect(rec)

	if _, err := manager.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	manager.Reload()

	if len(rec.changes) != 1 {
		t.Errorf("expected no change event for identical reload, got %d", len(rec.changes))
	}
}
