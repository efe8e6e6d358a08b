package guides

import (
	"math"
	"reflect"
	"testing"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/geometry"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/perception"
)

const floatTolerance = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func TestRuleOfThirdsGuide(t *testing.T) {
	g := RuleOfThirdsGuide()

	if len(g.Lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(g.Lines))
	}
	if !g.IsActive || !floatEquals(g.Confidence, 1.0) {
		t.Errorf("static guide should be active with confidence 1.0: %+v", g)
	}
	if !floatEquals(g.Lines[0].From.X, 1.0/3.0) || !floatEquals(g.Lines[1].From.X, 2.0/3.0) {
		t.Errorf("vertical lines at thirds: got %+v", g.Lines[:2])
	}
	if !floatEquals(g.Lines[2].From.Y, 1.0/3.0) || !floatEquals(g.Lines[3].From.Y, 2.0/3.0) {
		t.Errorf("horizontal lines at thirds: got %+v", g.Lines[2:])
	}
}

func TestGoldenRatioGuide(t *testing.T) {
	g := GoldenRatioGuide()

	if len(g.Lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(g.Lines))
	}

	inv := 2 / (1 + math.Sqrt(5))
	if !floatEquals(g.Lines[0].From.X, inv) {
		t.Errorf("first vertical at 1/phi: got %v, want %v", g.Lines[0].From.X, inv)
	}
	if !floatEquals(g.Lines[1].From.X, 1-inv) {
		t.Errorf("second vertical at 1-1/phi: got %v, want %v", g.Lines[1].From.X, 1-inv)
	}

	// 1/phi and 1-1/phi are distinct positions, not mirror duplicates.
	if floatEquals(g.Lines[0].From.X, g.Lines[1].From.X) {
		t.Error("golden ratio verticals should differ")
	}
}

func TestSymmetryGuide(t *testing.T) {
	g := SymmetryGuide()

	if len(g.Lines) != 2 {
		t.Fatalf("expected 2 center lines, got %d", len(g.Lines))
	}
	if !floatEquals(g.Lines[0].From.X, 0.5) || !floatEquals(g.Lines[1].From.Y, 0.5) {
		t.Errorf("center lines: got %+v", g.Lines)
	}
}

func TestCenteredGuide(t *testing.T) {
	g := CenteredGuide()

	if len(g.Lines) != 0 {
		t.Errorf("centered guide draws no lines, got %d", len(g.Lines))
	}
	if g.Marker == nil {
		t.Fatal("centered guide must carry a marker")
	}
	if !floatEquals(g.Marker.X, 0.5) || !floatEquals(g.Marker.Y, 0.5) {
		t.Errorf("marker: got %+v, want (0.5, 0.5)", g.Marker)
	}
}

func TestDynamicSymmetryGuide(t *testing.T) {
	g := DynamicSymmetryGuide()

	if len(g.Lines) != 10 {
		t.Fatalf("expected 2 diagonals + 8 half-diagonals = 10 lines, got %d", len(g.Lines))
	}

	// Main diagonals come first.
	if !reflect.DeepEqual(g.Lines[0], geometry.LineSegment{
		From: geometry.Point{X: 0, Y: 0}, To: geometry.Point{X: 1, Y: 1},
	}) {
		t.Errorf("first line should be the main diagonal, got %+v", g.Lines[0])
	}
}

func TestLeadingLinesGuide(t *testing.T) {
	t.Run("no detections leaves the guide inactive", func(t *testing.T) {
		g := LeadingLinesGuide(nil)
		if g.IsActive || len(g.Lines) != 0 {
			t.Errorf("expected inactive empty guide, got %+v", g)
		}
		if !floatEquals(g.Confidence, 0) {
			t.Errorf("confidence: got %v, want 0", g.Confidence)
		}
	})

	t.Run("each detection yields both box diagonals", func(t *testing.T) {
		objects := []perception.Object{
			{Box: geometry.Rect{X: 0.1, Y: 0.2, W: 0.4, H: 0.3}, Confidence: 0.8},
		}
		g := LeadingLinesGuide(objects)

		if !g.IsActive {
			t.Error("guide with lines should be active")
		}
		if len(g.Lines) != 2 {
			t.Fatalf("expected 2 diagonals, got %d", len(g.Lines))
		}
		if !floatEquals(g.Lines[0].To.X, 0.5) || !floatEquals(g.Lines[0].To.Y, 0.5) {
			t.Errorf("first diagonal endpoint: got %+v", g.Lines[0].To)
		}
	})
}

func TestHorizonGuide(t *testing.T) {
	tests := []struct {
		name       string
		horizon    *perception.Horizon
		wantActive bool
	}{
		{"nil measurement stays inactive", nil, false},
		{"level horizon activates", &perception.Horizon{TiltDegrees: 0, Confidence: 0.9}, true},
		{"tilt at tolerance activates", &perception.Horizon{TiltDegrees: 5.0, Confidence: 0.9}, true},
		{"negative tilt within tolerance activates", &perception.Horizon{TiltDegrees: -4.5, Confidence: 0.9}, true},
		{"tilt beyond tolerance stays inactive", &perception.Horizon{TiltDegrees: 7.2, Confidence: 0.9}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := HorizonGuide(tc.horizon)
			if g.IsActive != tc.wantActive {
				t.Errorf("IsActive: got %v, want %v", g.IsActive, tc.wantActive)
			}
			if len(g.Lines) != 1 || !floatEquals(g.Lines[0].From.Y, 0.5) {
				t.Errorf("horizon guide should draw the center horizontal, got %+v", g.Lines)
			}
		})
	}
}

// TestStaticIdempotent: requesting the same static guide twice yields
// identical geometry.
func TestStaticIdempotent(t *testing.T) {
	for _, typ := range []Type{RuleOfThirds, GoldenRatio, Symmetry, Centered, DynamicSymmetry} {
		a, ok := Static(typ)
		if !ok {
			t.Fatalf("Static(%s) should exist", typ)
		}
		b, _ := Static(typ)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("Static(%s) not idempotent: %+v vs %+v", typ, a, b)
		}
	}
}

func TestStatic_DerivedTypesExcluded(t *testing.T) {
	for _, typ := range []Type{LeadingLines, Horizon} {
		if _, ok := Static(typ); ok {
			t.Errorf("Static(%s) should report false for derived guides", typ)
		}
	}
}

func TestType_Validate(t *testing.T) {
	valid := []Type{RuleOfThirds, GoldenRatio, LeadingLines, Symmetry, Centered, DynamicSymmetry, Horizon}
	for _, typ := range valid {
		if err := typ.Validate(); err != nil {
			t.Errorf("Validate(%s): unexpected error %v", typ, err)
		}
	}
	if err := Type("spiral").Validate(); err == nil {
		t.Error("Validate(spiral): expected error, got nil")
	}
}
