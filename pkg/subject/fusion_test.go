package subject

import (
	"testing"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/geometry"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/perception"
)

const floatTolerance = 1e-9

func floatEquals(a, b float64) bool {
	diff := a - b
	return diff > -floatTolerance && diff < floatTolerance
}

func TestFuse_FirstFaceIsPrimary(t *testing.T) {
	results := perception.Results{
		Faces: []perception.Face{
			{Box: geometry.Rect{X: 0.1, Y: 0.1, W: 0.2, H: 0.2}, Confidence: 0.6},
			{Box: geometry.Rect{X: 0.5, Y: 0.5, W: 0.2, H: 0.2}, Confidence: 0.9},
		},
	}

	subjects := Fuse(results)
	if len(subjects) != 2 {
		t.Fatalf("expected 2 subjects, got %d", len(subjects))
	}

	// First-seen rule: the first face in arrival order is primary even
	// though the second has higher confidence.
	primaries := 0
	for _, s := range subjects {
		if s.IsPrimary {
			primaries++
			if !floatEquals(s.Confidence, 0.6) {
				t.Errorf("primary face confidence: got %v, want 0.6 (first-seen, not highest)", s.Confidence)
			}
		}
	}
	if primaries != 1 {
		t.Errorf("expected exactly 1 primary face, got %d", primaries)
	}
}

func TestFuse_SortsByConfidenceDescending(t *testing.T) {
	results := perception.Results{
		Faces: []perception.Face{
			{Box: geometry.Rect{X: 0.1, Y: 0.1, W: 0.2, H: 0.2}, Confidence: 0.5},
		},
		Objects: []perception.Object{
			{Box: geometry.Rect{X: 0.6, Y: 0.6, W: 0.3, H: 0.3}, Confidence: 0.95},
			{Box: geometry.Rect{X: 0.2, Y: 0.7, W: 0.1, H: 0.1}, Confidence: 0.7},
		},
	}

	subjects := Fuse(results)
	if len(subjects) != 3 {
		t.Fatalf("expected 3 subjects, got %d", len(subjects))
	}

	for i := 1; i < len(subjects); i++ {
		if subjects[i].Confidence > subjects[i-1].Confidence {
			t.Errorf("subjects not sorted descending at index %d: %v > %v",
				i, subjects[i].Confidence, subjects[i-1].Confidence)
		}
	}
	if subjects[0].Kind != KindObject {
		t.Errorf("highest-confidence subject should be the 0.95 object, got %s", subjects[0].Kind)
	}
}

func TestFuse_StableSortKeepsArrivalOrderOnTies(t *testing.T) {
	results := perception.Results{
		Objects: []perception.Object{
			{Label: "first", Box: geometry.Rect{X: 0.1, Y: 0.1, W: 0.1, H: 0.1}, Confidence: 0.8},
			{Label: "second", Box: geometry.Rect{X: 0.5, Y: 0.5, W: 0.1, H: 0.1}, Confidence: 0.8},
		},
	}

	subjects := Fuse(results)
	if len(subjects) != 2 {
		t.Fatalf("expected 2 subjects, got %d", len(subjects))
	}
	if !floatEquals(subjects[0].BoundingBox.X, 0.1) {
		t.Errorf("tie broke arrival order: got box.X=%v first, want 0.1", subjects[0].BoundingBox.X)
	}
}

func TestFuse_PoseEnvelope(t *testing.T) {
	tests := []struct {
		name     string
		pose     perception.BodyPose
		wantBody bool
		wantRect geometry.Rect
	}{
		{
			name: "envelope of confident joints",
			pose: perception.BodyPose{
				Confidence: 0.8,
				Joints: []perception.Joint{
					{Name: "head", Position: geometry.Point{X: 0.4, Y: 0.2}, Confidence: 0.9},
					{Name: "hip", Position: geometry.Point{X: 0.5, Y: 0.6}, Confidence: 0.8},
					{Name: "foot", Position: geometry.Point{X: 0.45, Y: 0.9}, Confidence: 0.7},
				},
			},
			wantBody: true,
			wantRect: geometry.Rect{X: 0.4, Y: 0.2, W: 0.1, H: 0.7},
		},
		{
			name: "low-confidence joints excluded from envelope",
			pose: perception.BodyPose{
				Confidence: 0.8,
				Joints: []perception.Joint{
					{Name: "head", Position: geometry.Point{X: 0.4, Y: 0.2}, Confidence: 0.9},
					{Name: "hip", Position: geometry.Point{X: 0.5, Y: 0.6}, Confidence: 0.8},
					{Name: "ghost", Position: geometry.Point{X: 0.0, Y: 0.0}, Confidence: 0.1},
				},
			},
			wantBody: true,
			wantRect: geometry.Rect{X: 0.4, Y: 0.2, W: 0.1, H: 0.4},
		},
		{
			name: "pose with no confident joints discarded",
			pose: perception.BodyPose{
				Confidence: 0.8,
				Joints: []perception.Joint{
					{Name: "head", Position: geometry.Point{X: 0.4, Y: 0.2}, Confidence: 0.3},
				},
			},
			wantBody: false,
		},
		{
			name:     "pose with zero joints discarded",
			pose:     perception.BodyPose{Confidence: 0.8},
			wantBody: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			subjects := Fuse(perception.Results{Bodies: []perception.BodyPose{tc.pose}})

			if !tc.wantBody {
				if len(subjects) != 0 {
					t.Fatalf("expected pose to be discarded, got %d subjects", len(subjects))
				}
				return
			}

			if len(subjects) != 1 {
				t.Fatalf("expected 1 body subject, got %d", len(subjects))
			}
			got := subjects[0].BoundingBox
			if !floatEquals(got.X, tc.wantRect.X) || !floatEquals(got.Y, tc.wantRect.Y) ||
				!floatEquals(got.W, tc.wantRect.W) || !floatEquals(got.H, tc.wantRect.H) {
				t.Errorf("envelope: got %+v, want %+v", got, tc.wantRect)
			}
		})
	}
}

func TestFuse_AtMostOnePrimaryPerKind(t *testing.T) {
	results := perception.Results{
		Faces: []perception.Face{
			{Box: geometry.Rect{X: 0.1, Y: 0.1, W: 0.1, H: 0.1}, Confidence: 0.9},
			{Box: geometry.Rect{X: 0.3, Y: 0.3, W: 0.1, H: 0.1}, Confidence: 0.8},
		},
		Bodies: []perception.BodyPose{
			{Confidence: 0.7, Joints: []perception.Joint{
				{Position: geometry.Point{X: 0.2, Y: 0.2}, Confidence: 0.9},
				{Position: geometry.Point{X: 0.4, Y: 0.8}, Confidence: 0.9},
			}},
			{Confidence: 0.6, Joints: []perception.Joint{
				{Position: geometry.Point{X: 0.6, Y: 0.2}, Confidence: 0.9},
				{Position: geometry.Point{X: 0.8, Y: 0.8}, Confidence: 0.9},
			}},
		},
		Objects: []perception.Object{
			{Box: geometry.Rect{X: 0.7, Y: 0.7, W: 0.2, H: 0.2}, Confidence: 0.99},
		},
	}

	subjects := Fuse(results)

	perKind := map[Kind]int{}
	for _, s := range subjects {
		if s.IsPrimary {
			perKind[s.Kind]++
		}
	}
	if perKind[KindFace] != 1 {
		t.Errorf("primary faces: got %d, want 1", perKind[KindFace])
	}
	if perKind[KindBody] != 1 {
		t.Errorf("primary bodies: got %d, want 1", perKind[KindBody])
	}
	if perKind[KindObject] != 0 {
		t.Errorf("primary objects: got %d, want 0 (objects are never primary)", perKind[KindObject])
	}
}

func TestFuse_EmptyResults(t *testing.T) {
	subjects := Fuse(perception.Results{})
	if len(subjects) != 0 {
		t.Errorf("expected no subjects from empty results, got %d", len(subjects))
	}
}

func TestFuse_UniqueTrackingIDs(t *testing.T) {
	results := perception.Results{
		Faces: []perception.Face{
			{Box: geometry.Rect{X: 0.1, Y: 0.1, W: 0.1, H: 0.1}, Confidence: 0.9},
			{Box: geometry.Rect{X: 0.3, Y: 0.3, W: 0.1, H: 0.1}, Confidence: 0.8},
		},
	}

	subjects := Fuse(results)
	seen := map[string]bool{}
	for _, s := range subjects {
		id := s.TrackingID.String()
		if seen[id] {
			t.Errorf("duplicate tracking ID %s", id)
		}
		seen[id] = true
	}
}
