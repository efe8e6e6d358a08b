// Package perception defines the contract between the assistance engine and
// the external perception service. Every detection category is independently
// optional: a provider may support any subset, and a failed category degrades
// to an empty contribution rather than failing the analysis pass.
package perception

import (
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/geometry"
)

// Face is a detected face with a normalized bounding box.
type Face struct {
	Box        geometry.Rect `json:"box"`
	Confidence float64       `json:"confidence"`
}

// Joint is a single body-pose keypoint.
type Joint struct {
	Name       string         `json:"name"`
	Position   geometry.Point `json:"position"`
	Confidence float64        `json:"confidence"`
}

// BodyPose is one detected person described by its joints.
type BodyPose struct {
	Joints     []Joint `json:"joints"`
	Confidence float64 `json:"confidence"`
}

// Object is a generic rectangle-like observation (saliency, text block,
// detected thing). Label may be empty.
type Object struct {
	Label      string        `json:"label"`
	Box        geometry.Rect `json:"box"`
	Confidence float64       `json:"confidence"`
}

// Horizon is the measured horizon tilt for the current frame.
type Horizon struct {
	// TiltDegrees is the angle off level; 0 means perfectly level.
	TiltDegrees float64 `json:"tilt_degrees"`
	Confidence  float64 `json:"confidence"`
}

// Luminance summarizes scene brightness for exposure analysis.
// Optional fields are pointers; absent fields get engine-side defaults
// (brightness 0.5, contrast 0.5, clipping 0).
type Luminance struct {
	EV                float64  `json:"ev"`
	Brightness        *float64 `json:"brightness,omitempty"`
	Contrast          *float64 `json:"contrast,omitempty"`
	HighlightClipping *float64 `json:"highlight_clipping,omitempty"`
	ShadowClipping    *float64 `json:"shadow_clipping,omitempty"`
}

// Results aggregates one analysis pass worth of perception output.
// Nil/empty categories mean "nothing detected or category unavailable".
type Results struct {
	Faces     []Face     `json:"faces,omitempty"`
	Bodies    []BodyPose `json:"bodies,omitempty"`
	Objects   []Object   `json:"objects,omitempty"`
	Horizon   *Horizon   `json:"horizon,omitempty"`
	Luminance *Luminance `json:"luminance,omitempty"`

	// Partial records per-category failures that degraded this result.
	// A non-empty Partial still yields a usable Results.
	Partial []error `json:"-"`
}

// Degraded returns true if at least one category failed.
func (r *Results) Degraded() bool {
	return len(r.Partial) > 0
}
