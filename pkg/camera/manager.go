package camera

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/exposure"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/geometry"
)

// Manager holds the current capture configuration and handles updates.
type Manager struct {
	config Config
	caps   Capabilities
	mu     sync.RWMutex

	// Callback when config changes (for applying to hardware)
	OnConfigChange func(cfg Config) error
}

// NewManager creates a manager with default config for the given sensor.
func NewManager(caps Capabilities) *Manager {
	return &Manager{
		config: DefaultConfig(),
		caps:   caps,
	}
}

// Capabilities returns the sensor capabilities.
func (m *Manager) Capabilities() Capabilities {
	return m.caps
}

// GetConfig returns the current capture configuration.
func (m *Manager) GetConfig() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// SetConfig updates the capture configuration.
func (m *Manager) SetConfig(cfg Config) error {
	if errs := cfg.Validate(m.caps); len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}

	m.mu.Lock()
	m.config = cfg
	callback := m.OnConfigChange
	m.mu.Unlock()

	if callback != nil {
		if err := callback(cfg); err != nil {
			return fmt.Errorf("failed to apply config: %w", err)
		}
	}

	return nil
}

// ApplySuggestion translates an accepted exposure suggestion into capture
// settings. Suggestions needing a missing hardware control fail with
// ErrUnsupportedCapability so the caller can fall back to automatic mode.
func (m *Manager) ApplySuggestion(s exposure.Suggestion) error {
	cfg := m.GetConfig()

	switch s.Type {
	case exposure.TypeAutomatic:
		cfg.ISO = 0
		cfg.ShutterSpeed = 0
		cfg.ExposureValue = 0

	case exposure.TypeManual:
		if !m.caps.ManualExposure {
			return fmt.Errorf("%w: manual exposure", ErrUnsupportedCapability)
		}
		if s.Manual == nil {
			return fmt.Errorf("manual suggestion without settings")
		}
		cfg.ISO = clampInt(s.Manual.ISO, m.caps.MinISO, m.caps.MaxISO)
		cfg.ShutterSpeed = geometry.Clamp(s.Manual.ShutterSpeed, m.caps.FastestShutter, m.caps.SlowestShutter)
		if m.caps.ApertureControl {
			cfg.Aperture = s.Manual.Aperture
		}

	case exposure.TypeCompensation:
		if !m.caps.ExposureCompensation {
			return fmt.Errorf("%w: exposure compensation", ErrUnsupportedCapability)
		}
		cfg.ExposureValue = geometry.Clamp(cfg.ExposureValue+s.EVDelta, -2.0, 2.0)

	default:
		return fmt.Errorf("unknown suggestion type %q", s.Type)
	}

	return m.SetConfig(cfg)
}

// ApplyFocusPoint steers the autofocus to a normalized point. Requires
// manual-focus capable hardware.
func (m *Manager) ApplyFocusPoint(p geometry.Point) error {
	if !m.caps.ManualFocus {
		return fmt.Errorf("%w: manual focus", ErrUnsupportedCapability)
	}

	cfg := m.GetConfig()
	cfg.AfMode = "manual"
	cfg.FocusX = geometry.Clamp01(p.X)
	cfg.FocusY = geometry.Clamp01(p.Y)
	return m.SetConfig(cfg)
}

// UpdateConfig updates specific fields of the configuration.
// Accepts a map of field names to values.
func (m *Manager) UpdateConfig(params map[string]interface{}) error {
	m.mu.Lock()
	cfg := m.config
	m.mu.Unlock()

	// Check for preset first
	if presetName, ok := params["preset"].(string); ok {
		preset := GetPreset(presetName)
		if preset == nil {
			return fmt.Errorf("unknown preset: %s", presetName)
		}
		cfg = *preset
		// Remove preset from params so we can still apply other overrides
		delete(params, "preset")
	}

	for key, value := range params {
		switch key {
		case "width":
			if v, ok := toInt(value); ok {
				cfg.Width = v
			}
		case "height":
			if v, ok := toInt(value); ok {
				cfg.Height = v
			}
		case "framerate":
			if v, ok := toInt(value); ok {
				cfg.Framerate = v
			}
		case "quality":
			if v, ok := toInt(value); ok {
				cfg.Quality = v
			}
		case "exposure_value":
			if v, ok := toFloat(value); ok {
				cfg.ExposureValue = v
			}
		case "iso":
			if v, ok := toInt(value); ok {
				cfg.ISO = v
			}
		case "shutter_speed":
			if v, ok := toFloat(value); ok {
				cfg.ShutterSpeed = v
			}
		case "aperture":
			if v, ok := toFloat(value); ok {
				cfg.Aperture = v
			}
		case "constraint_mode":
			if v, ok := value.(string); ok {
				cfg.ConstraintMode = v
			}
		case "zoom_level":
			if v, ok := toFloat(value); ok {
				cfg.ZoomLevel = v
			}
		case "af_mode":
			if v, ok := value.(string); ok {
				cfg.AfMode = v
			}
		case "focus_x":
			if v, ok := toFloat(value); ok {
				cfg.FocusX = v
			}
		case "focus_y":
			if v, ok := toFloat(value); ok {
				cfg.FocusY = v
			}
		}
	}

	return m.SetConfig(cfg)
}

// GetConfigJSON returns the current config as a map for JSON serialization.
func (m *Manager) GetConfigJSON() map[string]interface{} {
	cfg := m.GetConfig()

	// Convert to map via JSON for consistent serialization
	data, _ := json.Marshal(cfg)
	var result map[string]interface{}
	json.Unmarshal(data, &result)

	return result
}

// Helper functions for type conversion

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func toInt(v interface{}) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		return int(val), true
	case json.Number:
		i, err := val.Int64()
		if err == nil {
			return int(i), true
		}
	}
	return 0, false
}

func toFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		if err == nil {
			return f, true
		}
	}
	return 0, false
}
