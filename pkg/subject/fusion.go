package subject

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/geometry"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/perception"
)

// jointConfidenceFloor filters unreliable pose keypoints out of the
// bounding-box envelope.
const jointConfidenceFloor = 0.5

// Fuse merges face, body-pose, and object observations into one subject list
// sorted by descending confidence (stable: ties keep arrival order).
//
// The first face and first body in the service's own ranked output are marked
// primary, not the highest-confidence one. Downstream consumers tend to read
// primary as "most important", so this can surprise; it matches the shipped
// behavior and the tests pin it down deliberately.
//
// Fuse is pure: given the same results it always returns equal subjects aside
// from the freshly generated tracking IDs.
func Fuse(results perception.Results) []Subject {
	subjects := make([]Subject, 0, len(results.Faces)+len(results.Bodies)+len(results.Objects))

	facePrimary := false
	for _, face := range results.Faces {
		s := Subject{
			Kind:        KindFace,
			BoundingBox: face.Box,
			Confidence:  face.Confidence,
			TrackingID:  uuid.New(),
		}
		if !facePrimary {
			s.IsPrimary = true
			facePrimary = true
		}
		subjects = append(subjects, s)
	}

	bodyPrimary := false
	for _, body := range results.Bodies {
		box, ok := poseEnvelope(body)
		if !ok {
			// No joint cleared the confidence floor; the pose is noise.
			continue
		}
		s := Subject{
			Kind:        KindBody,
			BoundingBox: box,
			Confidence:  body.Confidence,
			TrackingID:  uuid.New(),
		}
		if !bodyPrimary {
			s.IsPrimary = true
			bodyPrimary = true
		}
		subjects = append(subjects, s)
	}

	for _, obj := range results.Objects {
		subjects = append(subjects, Subject{
			Kind:        KindObject,
			BoundingBox: obj.Box,
			Confidence:  obj.Confidence,
			TrackingID:  uuid.New(),
		})
	}

	sort.SliceStable(subjects, func(i, j int) bool {
		return subjects[i].Confidence > subjects[j].Confidence
	})

	return subjects
}

// poseEnvelope computes the axis-aligned envelope of all joints above the
// confidence floor. Returns false when no joint qualifies.
func poseEnvelope(body perception.BodyPose) (geometry.Rect, bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	found := false

	for _, joint := range body.Joints {
		if joint.Confidence <= jointConfidenceFloor {
			continue
		}
		found = true
		minX = math.Min(minX, joint.Position.X)
		minY = math.Min(minY, joint.Position.Y)
		maxX = math.Max(maxX, joint.Position.X)
		maxY = math.Max(maxY, joint.Position.Y)
	}

	if !found {
		return geometry.Rect{}, false
	}

	return geometry.Rect{
		X: minX,
		Y: minY,
		W: maxX - minX,
		H: maxY - minY,
	}, true
}
