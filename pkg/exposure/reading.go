// Package exposure converts luminance summaries into typed exposure readings
// and mode-dependent exposure suggestions.
package exposure

import (
	"time"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/perception"
)

// Defaults applied when the luminance summary omits optional fields.
// Analysis never fails solely because a field is absent.
const (
	defaultBrightness = 0.5
	defaultContrast   = 0.5
)

// Clipping holds the fraction of pixels lost at each end of the histogram.
type Clipping struct {
	Highlights float64 `json:"highlights"`
	Shadows    float64 `json:"shadows"`
}

// Reading is one immutable exposure measurement.
type Reading struct {
	Timestamp  time.Time `json:"timestamp"`
	EV         float64   `json:"ev"`
	Brightness float64   `json:"brightness"`
	Contrast   float64   `json:"contrast"`
	Clipping   Clipping  `json:"clipping"`
}

// NewReading extracts a Reading from a luminance summary, filling absent
// optional fields with defaults. A nil summary yields an all-defaults reading.
func NewReading(lum *perception.Luminance, now time.Time) Reading {
	r := Reading{
		Timestamp:  now,
		Brightness: defaultBrightness,
		Contrast:   defaultContrast,
	}
	if lum == nil {
		return r
	}

	r.EV = lum.EV
	if lum.Brightness != nil {
		r.Brightness = *lum.Brightness
	}
	if lum.Contrast != nil {
		r.Contrast = *lum.Contrast
	}
	if lum.HighlightClipping != nil {
		r.Clipping.Highlights = *lum.HighlightClipping
	}
	if lum.ShadowClipping != nil {
		r.Clipping.Shadows = *lum.ShadowClipping
	}
	return r
}

// SceneClass classifies overall scene brightness.
type SceneClass int

const (
	SceneNormal SceneClass = iota
	SceneLowLight
	SceneBrightLight
)

// String returns the scene class name.
func (c SceneClass) String() string {
	switch c {
	case SceneLowLight:
		return "low_light"
	case SceneBrightLight:
		return "bright_light"
	default:
		return "normal"
	}
}

// Scene classifies the reading. Derived purely from the reading itself.
func (r Reading) Scene() SceneClass {
	switch {
	case r.Brightness < 0.3:
		return SceneLowLight
	case r.Brightness > 0.8:
		return SceneBrightLight
	default:
		return SceneNormal
	}
}

// Backlit reports whether the reading looks like a backlit scene: strong
// contrast with blown highlights behind the subject.
func (r Reading) Backlit() bool {
	return r.Contrast > 0.7 && r.Clipping.Highlights > 0.05
}
