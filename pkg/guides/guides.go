// Package guides generates composition overlay guides in normalized [0,1]
// frame space. The static archetypes are pure functions of the guide type;
// leading lines and horizon are derived from the current frame's perception
// results and vary per analysis.
package guides

import (
	"errors"
	"math"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/geometry"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/perception"
)

// Type identifies a composition guide archetype.
type Type string

const (
	RuleOfThirds    Type = "rule_of_thirds"
	GoldenRatio     Type = "golden_ratio"
	LeadingLines    Type = "leading_lines"
	Symmetry        Type = "symmetry"
	Centered        Type = "centered"
	DynamicSymmetry Type = "dynamic_symmetry"
	Horizon         Type = "horizon"
)

// ErrInvalidType is returned for unknown guide types.
var ErrInvalidType = errors.New("guides: invalid guide type")

// Validate checks the guide type at the API boundary.
func (t Type) Validate() error {
	switch t {
	case RuleOfThirds, GoldenRatio, LeadingLines, Symmetry, Centered, DynamicSymmetry, Horizon:
		return nil
	default:
		return ErrInvalidType
	}
}

// Guide is one overlay: a set of line segments plus an optional marker point.
type Guide struct {
	Type       Type                   `json:"type"`
	Lines      []geometry.LineSegment `json:"lines"`
	Marker     *geometry.Point        `json:"marker,omitempty"`
	Confidence float64                `json:"confidence"`
	IsActive   bool                   `json:"is_active"`
}

// phi is the golden ratio.
var phi = (1 + math.Sqrt(5)) / 2

// horizonLevelToleranceDegrees bounds how far off level the measured horizon
// may be for the horizon guide to activate. The guide signals "already
// level", not "needs leveling"; renderers must respect that semantics.
const horizonLevelToleranceDegrees = 5.0

func vline(x float64) geometry.LineSegment {
	return geometry.LineSegment{From: geometry.Point{X: x, Y: 0}, To: geometry.Point{X: x, Y: 1}}
}

func hline(y float64) geometry.LineSegment {
	return geometry.LineSegment{From: geometry.Point{X: 0, Y: y}, To: geometry.Point{X: 1, Y: y}}
}

// RuleOfThirdsGuide returns the classic 3x3 grid: verticals at x=1/3, 2/3 and
// horizontals at y=1/3, 2/3.
func RuleOfThirdsGuide() Guide {
	return Guide{
		Type: RuleOfThirds,
		Lines: []geometry.LineSegment{
			vline(1.0 / 3.0),
			vline(2.0 / 3.0),
			hline(1.0 / 3.0),
			hline(2.0 / 3.0),
		},
		Confidence: 1.0,
		IsActive:   true,
	}
}

// GoldenRatioGuide returns lines at x = 1/phi and 1 - 1/phi on both axes.
func GoldenRatioGuide() Guide {
	a := 1 / phi
	b := 1 - 1/phi
	return Guide{
		Type: GoldenRatio,
		Lines: []geometry.LineSegment{
			vline(a),
			vline(b),
			hline(a),
			hline(b),
		},
		Confidence: 1.0,
		IsActive:   true,
	}
}

// SymmetryGuide returns the vertical and horizontal center lines.
func SymmetryGuide() Guide {
	return Guide{
		Type: Symmetry,
		Lines: []geometry.LineSegment{
			vline(0.5),
			hline(0.5),
		},
		Confidence: 1.0,
		IsActive:   true,
	}
}

// CenteredGuide returns no lines; rendering the (0.5, 0.5) marker is the
// caller's responsibility.
func CenteredGuide() Guide {
	return Guide{
		Type:       Centered,
		Marker:     &geometry.Point{X: 0.5, Y: 0.5},
		Confidence: 1.0,
		IsActive:   true,
	}
}

// DynamicSymmetryGuide returns the two main diagonals plus two half-diagonals
// from each edge midpoint.
func DynamicSymmetryGuide() Guide {
	return Guide{
		Type: DynamicSymmetry,
		Lines: []geometry.LineSegment{
			// Main diagonals
			{From: geometry.Point{X: 0, Y: 0}, To: geometry.Point{X: 1, Y: 1}},
			{From: geometry.Point{X: 1, Y: 0}, To: geometry.Point{X: 0, Y: 1}},
			// Half-diagonals from the top and bottom midpoints
			{From: geometry.Point{X: 0.5, Y: 0}, To: geometry.Point{X: 0, Y: 1}},
			{From: geometry.Point{X: 0.5, Y: 0}, To: geometry.Point{X: 1, Y: 1}},
			{From: geometry.Point{X: 0.5, Y: 1}, To: geometry.Point{X: 0, Y: 0}},
			{From: geometry.Point{X: 0.5, Y: 1}, To: geometry.Point{X: 1, Y: 0}},
			// Half-diagonals from the left and right midpoints
			{From: geometry.Point{X: 0, Y: 0.5}, To: geometry.Point{X: 1, Y: 0}},
			{From: geometry.Point{X: 0, Y: 0.5}, To: geometry.Point{X: 1, Y: 1}},
			{From: geometry.Point{X: 1, Y: 0.5}, To: geometry.Point{X: 0, Y: 0}},
			{From: geometry.Point{X: 1, Y: 0.5}, To: geometry.Point{X: 0, Y: 1}},
		},
		Confidence: 1.0,
		IsActive:   true,
	}
}

// LeadingLinesGuide derives corner-to-corner diagonals from each detected
// rectangle-like observation. Inactive (and empty) when nothing was detected.
func LeadingLinesGuide(objects []perception.Object) Guide {
	var lines []geometry.LineSegment
	for _, obj := range objects {
		box := obj.Box
		lines = append(lines,
			geometry.LineSegment{
				From: geometry.Point{X: box.X, Y: box.Y},
				To:   geometry.Point{X: box.X + box.W, Y: box.Y + box.H},
			},
			geometry.LineSegment{
				From: geometry.Point{X: box.X + box.W, Y: box.Y},
				To:   geometry.Point{X: box.X, Y: box.Y + box.H},
			},
		)
	}

	confidence := 0.0
	if len(lines) > 0 {
		confidence = 0.7
	}

	return Guide{
		Type:       LeadingLines,
		Lines:      lines,
		Confidence: confidence,
		IsActive:   len(lines) > 0,
	}
}

// HorizonGuide derives the horizon overlay from the measured tilt. Active
// only when the horizon is within 5 degrees of level: it confirms "already
// level" rather than prompting a correction.
func HorizonGuide(h *perception.Horizon) Guide {
	g := Guide{
		Type:  Horizon,
		Lines: []geometry.LineSegment{hline(0.5)},
	}
	if h == nil {
		return g
	}

	g.Confidence = h.Confidence
	g.IsActive = math.Abs(h.TiltDegrees) <= horizonLevelToleranceDegrees
	return g
}

// Static returns the static guide for the given type, or false for the
// derived types (leading lines, horizon).
func Static(t Type) (Guide, bool) {
	switch t {
	case RuleOfThirds:
		return RuleOfThirdsGuide(), true
	case GoldenRatio:
		return GoldenRatioGuide(), true
	case Symmetry:
		return SymmetryGuide(), true
	case Centered:
		return CenteredGuide(), true
	case DynamicSymmetry:
		return DynamicSymmetryGuide(), true
	default:
		return Guide{}, false
	}
}
