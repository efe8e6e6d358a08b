package subject

import "github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/geometry"

// DefaultFocusPoint is returned when no subject is detected: horizontal
// center, biased above vertical center toward a thirds-friendly framing.
var DefaultFocusPoint = geometry.Point{X: 0.5, Y: 0.4}

// SelectFocusPoint picks the autofocus point from a fused subject list.
//
// The priority chain encodes a trust hierarchy independent of the list's
// confidence sort: primary face > any face > any body > highest-confidence
// object > default. A face always outranks an object even when the object
// carries more confidence and therefore sorts first.
func SelectFocusPoint(subjects []Subject) geometry.Point {
	// 1. Primary face
	for _, s := range subjects {
		if s.Kind == KindFace && s.IsPrimary {
			return s.Center()
		}
	}

	// 2. Any face
	for _, s := range subjects {
		if s.Kind == KindFace {
			return s.Center()
		}
	}

	// 3. Any body
	for _, s := range subjects {
		if s.Kind == KindBody {
			return s.Center()
		}
	}

	// 4. Highest-confidence object: first object after the confidence sort
	for _, s := range subjects {
		if s.Kind == KindObject {
			return s.Center()
		}
	}

	// 5. Nothing detected
	return DefaultFocusPoint
}
