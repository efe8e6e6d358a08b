// Package camera provides runtime-configurable capture settings and applies
// accepted exposure suggestions to the hardware layer.
package camera

import "errors"

// ErrUnsupportedCapability is returned when a suggestion needs a hardware
// control the sensor does not expose. Callers fall back to automatic mode.
var ErrUnsupportedCapability = errors.New("camera: unsupported hardware capability")

// Config holds all capture configuration parameters.
// These can be modified via the camera API at runtime.
type Config struct {
	// === Resolution ===
	Width     int `json:"width"`     // Frame width in pixels
	Height    int `json:"height"`    // Frame height in pixels
	Framerate int `json:"framerate"` // Target FPS
	Quality   int `json:"quality"`   // JPEG quality 1-100

	// === Exposure ===
	// ExposureValue is EV compensation in stops (-2.0 to +2.0).
	// Positive = brighter, negative = darker.
	ExposureValue float64 `json:"exposure_value"`

	// ISO is manual sensor sensitivity. Set to 0 for auto.
	ISO int `json:"iso"`

	// ShutterSpeed is manual exposure time in seconds. Set to 0 for auto.
	ShutterSpeed float64 `json:"shutter_speed"`

	// Aperture is the f-number. Set to 0 on fixed-aperture hardware.
	Aperture float64 `json:"aperture"`

	// ConstraintMode controls scene brightness optimization.
	// Values: "normal", "highlight", "shadows"
	ConstraintMode string `json:"constraint_mode"`

	// === Digital Zoom ===
	ZoomLevel float64 `json:"zoom_level"` // 1.0 to 4.0

	// === Autofocus ===
	// AfMode controls autofocus behavior.
	// Values: "manual", "auto", "continuous"
	AfMode string `json:"af_mode"`

	// Normalized AF point, honored when AfMode is "manual".
	FocusX float64 `json:"focus_x"`
	FocusY float64 `json:"focus_y"`
}

// Capabilities describes what the attached sensor can actually do. A zero
// value means a fully automatic camera with no manual controls.
type Capabilities struct {
	Sensor         string  `json:"sensor"`
	MaxWidth       int     `json:"max_width"`
	MaxHeight      int     `json:"max_height"`
	MinISO         int     `json:"min_iso"`
	MaxISO         int     `json:"max_iso"`
	FastestShutter float64 `json:"fastest_shutter"` // Seconds
	SlowestShutter float64 `json:"slowest_shutter"` // Seconds
	MaxZoom        float64 `json:"max_zoom"`

	ManualExposure       bool `json:"manual_exposure"`
	ExposureCompensation bool `json:"exposure_compensation"`
	ManualFocus          bool `json:"manual_focus"`
	ApertureControl      bool `json:"aperture_control"`
}

// DefaultCapabilities models a typical mirrorless-class sensor with full
// manual control.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		Sensor:         "imx708_wide",
		MaxWidth:       4608,
		MaxHeight:      2592,
		MinISO:         100,
		MaxISO:         12800,
		FastestShutter: 1.0 / 4000.0,
		SlowestShutter: 30.0,
		MaxZoom:        4.0,

		ManualExposure:       true,
		ExposureCompensation: true,
		ManualFocus:          true,
		ApertureControl:      false,
	}
}

// DefaultConfig returns the recommended high-resolution configuration.
// 1920x1080 keeps detection accuracy high without starving the pipeline.
func DefaultConfig() Config {
	return Config{
		Width:     1920,
		Height:    1080,
		Framerate: 30,
		Quality:   85,

		// Fully automatic exposure
		ExposureValue:  0.0,
		ISO:            0,
		ShutterSpeed:   0,
		Aperture:       0,
		ConstraintMode: "normal",

		ZoomLevel: 1.0,

		// Continuous autofocus until a focus point is applied
		AfMode: "continuous",
		FocusX: 0.5,
		FocusY: 0.5,
	}
}

// Validate checks config values against the sensor capabilities.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate(caps Capabilities) []string {
	var errs []string

	if c.Width < 160 || c.Width > caps.MaxWidth {
		errs = append(errs, "width out of sensor range")
	}
	if c.Height < 120 || c.Height > caps.MaxHeight {
		errs = append(errs, "height out of sensor range")
	}
	if c.Framerate < 1 || c.Framerate > 120 {
		errs = append(errs, "framerate must be between 1 and 120")
	}
	if c.Quality < 1 || c.Quality > 100 {
		errs = append(errs, "quality must be between 1 and 100")
	}

	if c.ExposureValue < -2.0 || c.ExposureValue > 2.0 {
		errs = append(errs, "exposure_value must be between -2.0 and 2.0")
	}
	if c.ISO != 0 && (c.ISO < caps.MinISO || c.ISO > caps.MaxISO) {
		errs = append(errs, "iso must be 0 (auto) or within the sensor range")
	}
	if c.ShutterSpeed != 0 && (c.ShutterSpeed < caps.FastestShutter || c.ShutterSpeed > caps.SlowestShutter) {
		errs = append(errs, "shutter_speed must be 0 (auto) or within the sensor range")
	}

	validConstraintModes := map[string]bool{"normal": true, "highlight": true, "shadows": true}
	if c.ConstraintMode != "" && !validConstraintModes[c.ConstraintMode] {
		errs = append(errs, "constraint_mode must be normal, highlight, or shadows")
	}

	if c.ZoomLevel < 1.0 || c.ZoomLevel > caps.MaxZoom {
		errs = append(errs, "zoom_level out of range")
	}

	validAfModes := map[string]bool{"manual": true, "auto": true, "continuous": true}
	if c.AfMode != "" && !validAfModes[c.AfMode] {
		errs = append(errs, "af_mode must be manual, auto, or continuous")
	}
	if c.FocusX < 0 || c.FocusX > 1 || c.FocusY < 0 || c.FocusY > 1 {
		errs = append(errs, "focus point must be normalized to [0,1]")
	}

	return errs
}
