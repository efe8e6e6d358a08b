// Package subject fuses heterogeneous perception results into one ranked
// subject list and selects the autofocus point from it.
package subject

import (
	"github.com/google/uuid"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/geometry"
)

// Kind classifies what a subject is.
type Kind int

const (
	KindFace Kind = iota
	KindBody
	KindObject
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindFace:
		return "face"
	case KindBody:
		return "body"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Subject is one detected entity in the current analysis pass. Subjects are
// rebuilt from scratch each pass; only the trend tracker's bounded history
// outlives a frame.
type Subject struct {
	Kind        Kind          `json:"kind"`
	BoundingBox geometry.Rect `json:"bounding_box"`
	Confidence  float64       `json:"confidence"`

	// IsPrimary marks the first-seen subject of each kind. At most one
	// subject per kind carries this flag.
	IsPrimary bool `json:"is_primary"`

	TrackingID uuid.UUID `json:"tracking_id"`
}

// Center returns the center of the subject's bounding box.
func (s Subject) Center() geometry.Point {
	return s.BoundingBox.Center()
}
