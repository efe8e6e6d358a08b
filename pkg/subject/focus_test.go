package subject

import (
	"testing"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/geometry"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/perception"
)

func TestSelectFocusPoint_PrimaryFaceWins(t *testing.T) {
	subjects := []Subject{
		{Kind: KindObject, BoundingBox: geometry.Rect{X: 0.6, Y: 0.6, W: 0.2, H: 0.2}, Confidence: 0.99},
		{Kind: KindFace, BoundingBox: geometry.Rect{X: 0.3, Y: 0.3, W: 0.2, H: 0.2}, Confidence: 0.7},
		{Kind: KindFace, BoundingBox: geometry.Rect{X: 0.1, Y: 0.1, W: 0.2, H: 0.2}, Confidence: 0.5, IsPrimary: true},
	}

	got := SelectFocusPoint(subjects)
	want := geometry.Point{X: 0.2, Y: 0.2}
	if !floatEquals(got.X, want.X) || !floatEquals(got.Y, want.Y) {
		t.Errorf("focus point: got %+v, want primary face center %+v", got, want)
	}
}

func TestSelectFocusPoint_AnyFaceBeatsBody(t *testing.T) {
	subjects := []Subject{
		{Kind: KindBody, BoundingBox: geometry.Rect{X: 0.0, Y: 0.0, W: 0.4, H: 0.8}, Confidence: 0.9, IsPrimary: true},
		{Kind: KindFace, BoundingBox: geometry.Rect{X: 0.5, Y: 0.1, W: 0.2, H: 0.2}, Confidence: 0.4},
	}

	got := SelectFocusPoint(subjects)
	want := geometry.Point{X: 0.6, Y: 0.2}
	if !floatEquals(got.X, want.X) || !floatEquals(got.Y, want.Y) {
		t.Errorf("focus point: got %+v, want non-primary face center %+v", got, want)
	}
}

func TestSelectFocusPoint_BodyBeatsObject(t *testing.T) {
	subjects := []Subject{
		{Kind: KindObject, BoundingBox: geometry.Rect{X: 0.6, Y: 0.6, W: 0.2, H: 0.2}, Confidence: 0.95},
		{Kind: KindBody, BoundingBox: geometry.Rect{X: 0.1, Y: 0.1, W: 0.4, H: 0.8}, Confidence: 0.5},
	}

	got := SelectFocusPoint(subjects)
	want := geometry.Point{X: 0.3, Y: 0.5}
	if !floatEquals(got.X, want.X) || !floatEquals(got.Y, want.Y) {
		t.Errorf("focus point: got %+v, want body center %+v, never an object center", got, want)
	}
}

func TestSelectFocusPoint_ObjectFallback(t *testing.T) {
	// Post-sort list: first object is the highest-confidence one.
	subjects := []Subject{
		{Kind: KindObject, BoundingBox: geometry.Rect{X: 0.2, Y: 0.2, W: 0.2, H: 0.2}, Confidence: 0.9},
		{Kind: KindObject, BoundingBox: geometry.Rect{X: 0.6, Y: 0.6, W: 0.2, H: 0.2}, Confidence: 0.4},
	}

	got := SelectFocusPoint(subjects)
	want := geometry.Point{X: 0.3, Y: 0.3}
	if !floatEquals(got.X, want.X) || !floatEquals(got.Y, want.Y) {
		t.Errorf("focus point: got %+v, want first object center %+v", got, want)
	}
}

func TestSelectFocusPoint_EmptyListDefault(t *testing.T) {
	got := SelectFocusPoint(nil)
	if !floatEquals(got.X, 0.5) || !floatEquals(got.Y, 0.4) {
		t.Errorf("focus point: got %+v, want default (0.5, 0.4)", got)
	}
}

// TestFuseThenSelect distinguishes the overall confidence sort from the
// selection priority: the object sorts first, the face still wins focus.
func TestFuseThenSelect(t *testing.T) {
	results := perception.Results{
		Faces: []perception.Face{
			{Box: geometry.Rect{X: 0.1, Y: 0.1, W: 0.2, H: 0.2}, Confidence: 0.9},
		},
		Objects: []perception.Object{
			{Box: geometry.Rect{X: 0.6, Y: 0.6, W: 0.3, H: 0.3}, Confidence: 0.95},
		},
	}

	subjects := Fuse(results)
	if len(subjects) != 2 {
		t.Fatalf("expected 2 subjects, got %d", len(subjects))
	}

	// Sort order: object first on confidence.
	if subjects[0].Kind != KindObject {
		t.Errorf("sort order: first subject should be the object, got %s", subjects[0].Kind)
	}

	// The face is still primary (first-seen of its kind).
	if subjects[1].Kind != KindFace || !subjects[1].IsPrimary {
		t.Errorf("face should be primary despite sorting second: %+v", subjects[1])
	}

	// Selection priority: face center, not object center.
	got := SelectFocusPoint(subjects)
	want := geometry.Point{X: 0.2, Y: 0.2}
	if !floatEquals(got.X, want.X) || !floatEquals(got.Y, want.Y) {
		t.Errorf("focus point: got %+v, want face center %+v", got, want)
	}
}
