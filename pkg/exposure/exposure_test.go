package exposure

import (
	"math"
	"testing"
	"time"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/perception"
)

const floatTolerance = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func fp(v float64) *float64 { return &v }

func TestNewReading_Defaults(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		lum  *perception.Luminance
		want Reading
	}{
		{
			name: "nil summary yields all defaults",
			lum:  nil,
			want: Reading{Timestamp: now, Brightness: 0.5, Contrast: 0.5},
		},
		{
			name: "absent optional fields get defaults",
			lum:  &perception.Luminance{EV: 1.2},
			want: Reading{Timestamp: now, EV: 1.2, Brightness: 0.5, Contrast: 0.5},
		},
		{
			name: "present fields pass through",
			lum: &perception.Luminance{
				EV:                -0.3,
				Brightness:        fp(0.25),
				Contrast:          fp(0.8),
				HighlightClipping: fp(0.12),
				ShadowClipping:    fp(0.02),
			},
			want: Reading{
				Timestamp:  now,
				EV:         -0.3,
				Brightness: 0.25,
				Contrast:   0.8,
				Clipping:   Clipping{Highlights: 0.12, Shadows: 0.02},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NewReading(tc.lum, now)
			if got != tc.want {
				t.Errorf("NewReading: got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestReading_Scene(t *testing.T) {
	tests := []struct {
		brightness float64
		want       SceneClass
	}{
		{0.1, SceneLowLight},
		{0.29, SceneLowLight},
		{0.3, SceneNormal},
		{0.5, SceneNormal},
		{0.8, SceneNormal},
		{0.85, SceneBrightLight},
	}

	for _, tc := range tests {
		r := Reading{Brightness: tc.brightness}
		if got := r.Scene(); got != tc.want {
			t.Errorf("Scene(brightness=%.2f): got %s, want %s", tc.brightness, got, tc.want)
		}
	}
}

func TestSuggest_BalancedHighlightClipping(t *testing.T) {
	r := Reading{
		Brightness: 0.7,
		Contrast:   0.5,
		Clipping:   Clipping{Highlights: 0.15},
	}

	s := Suggest(r, nil, ModeBalanced)

	if s.Type != TypeCompensation {
		t.Fatalf("type: got %s, want %s", s.Type, TypeCompensation)
	}
	if !floatEquals(s.EVDelta, -1.0) {
		t.Errorf("EV delta: got %v, want -1.0", s.EVDelta)
	}
	if s.Priority != PriorityHigh {
		t.Errorf("priority: got %s, want high", s.Priority)
	}
	if s.Impact != ImpactSignificant {
		t.Errorf("impact: got %s, want significant", s.Impact)
	}
}

func TestSuggest_BalancedDarkScene(t *testing.T) {
	r := Reading{
		Brightness: 0.15,
		Contrast:   0.5,
		Clipping:   Clipping{Shadows: 0.02},
	}

	s := Suggest(r, nil, ModeBalanced)

	if s.Type != TypeCompensation {
		t.Fatalf("type: got %s, want %s", s.Type, TypeCompensation)
	}
	if !floatEquals(s.EVDelta, 0.7) {
		t.Errorf("EV delta: got %v, want +0.7", s.EVDelta)
	}
	if s.Priority != PriorityMedium || s.Impact != ImpactModerate {
		t.Errorf("priority/impact: got %s/%s, want medium/moderate", s.Priority, s.Impact)
	}
}

func TestSuggest_BalancedWellExposed(t *testing.T) {
	r := Reading{EV: 0.2, Brightness: 0.55, Contrast: 0.7}

	s := Suggest(r, nil, ModeBalanced)

	if s.Type != TypeAutomatic {
		t.Fatalf("type: got %s, want automatic", s.Type)
	}
	if s.Impact != ImpactMinor {
		t.Errorf("impact: got %s, want minor", s.Impact)
	}
}

func TestSuggest_BalancedNoChange(t *testing.T) {
	r := Reading{EV: 1.0, Brightness: 0.5, Contrast: 0.4}

	s := Suggest(r, nil, ModeBalanced)

	if s.Type != TypeAutomatic || s.Impact != ImpactNone || s.Priority != PriorityLow {
		t.Errorf("got %s/%s/%s, want automatic/none/low", s.Type, s.Impact, s.Priority)
	}
}

func TestSuggest_CreativeLowLight(t *testing.T) {
	r := Reading{Brightness: 0.2, Contrast: 0.5}

	s := Suggest(r, nil, ModeCreative)

	if s.Type != TypeManual {
		t.Fatalf("type: got %s, want manual", s.Type)
	}
	if s.Manual == nil {
		t.Fatal("manual settings missing")
	}
	if s.Manual.ISO != 1600 {
		t.Errorf("ISO: got %d, want 1600", s.Manual.ISO)
	}
	if !floatEquals(s.Manual.ShutterSpeed, 1.0/30.0) {
		t.Errorf("shutter: got %v, want 1/30", s.Manual.ShutterSpeed)
	}
	if s.Impact != ImpactDramatic || s.Priority != PriorityHigh {
		t.Errorf("impact/priority: got %s/%s, want dramatic/high", s.Impact, s.Priority)
	}
}

func TestSuggest_CreativeBacklit(t *testing.T) {
	r := Reading{
		Brightness: 0.6,
		Contrast:   0.8,
		Clipping:   Clipping{Highlights: 0.08},
	}

	s := Suggest(r, nil, ModeCreative)

	if s.Type != TypeCompensation {
		t.Fatalf("type: got %s, want compensation", s.Type)
	}
	if !floatEquals(s.EVDelta, -0.7) {
		t.Errorf("EV delta: got %v, want -0.7", s.EVDelta)
	}
}

func TestSuggest_CreativeFallsBackToBalanced(t *testing.T) {
	r := Reading{
		Brightness: 0.7,
		Contrast:   0.5,
		Clipping:   Clipping{Highlights: 0.15},
	}

	creative := Suggest(r, nil, ModeCreative)
	balanced := Suggest(r, nil, ModeBalanced)

	if creative.Type != balanced.Type || !floatEquals(creative.EVDelta, balanced.EVDelta) {
		t.Errorf("creative should fall back to balanced: got %+v vs %+v", creative, balanced)
	}
}

func TestSuggest_TechnicalAlwaysManual(t *testing.T) {
	tests := []struct {
		name    string
		reading Reading
		wantISO int
	}{
		{"normal scene uses base ISO", Reading{Brightness: 0.5}, 200},
		{"low light raises ISO", Reading{Brightness: 0.2}, 800},
		{"bright scene uses base ISO", Reading{Brightness: 0.9}, 200},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := Suggest(tc.reading, nil, ModeTechnical)

			if s.Type != TypeManual || s.Manual == nil {
				t.Fatalf("technical must return manual settings, got %+v", s)
			}
			if s.Manual.ISO != tc.wantISO {
				t.Errorf("ISO: got %d, want %d", s.Manual.ISO, tc.wantISO)
			}
			if !floatEquals(s.Confidence, 0.9) {
				t.Errorf("confidence: got %v, want fixed 0.9", s.Confidence)
			}
			if s.Priority != PriorityHigh || s.Impact != ImpactSignificant {
				t.Errorf("priority/impact: got %s/%s, want high/significant", s.Priority, s.Impact)
			}
		})
	}
}

func TestSuggest_TechnicalShutterCountersEV(t *testing.T) {
	over := Suggest(Reading{Brightness: 0.5, EV: 1.0}, nil, ModeTechnical)
	under := Suggest(Reading{Brightness: 0.5, EV: -1.0}, nil, ModeTechnical)

	if over.Manual.ShutterSpeed >= under.Manual.ShutterSpeed {
		t.Errorf("overexposed scene should get faster shutter: %v vs %v",
			over.Manual.ShutterSpeed, under.Manual.ShutterSpeed)
	}
}

func TestSuggest_SteadyHistoryBoostsConfidence(t *testing.T) {
	r := Reading{EV: 1.0, Brightness: 0.5, Contrast: 0.4}

	base := Suggest(r, nil, ModeBalanced)

	steady := []Reading{
		{Brightness: 0.5}, {Brightness: 0.52}, {Brightness: 0.49},
	}
	boosted := Suggest(r, steady, ModeBalanced)

	if !floatEquals(boosted.Confidence, base.Confidence+0.05) {
		t.Errorf("steady history: got %v, want %v", boosted.Confidence, base.Confidence+0.05)
	}

	jumpy := []Reading{
		{Brightness: 0.2}, {Brightness: 0.7}, {Brightness: 0.4},
	}
	unboosted := Suggest(r, jumpy, ModeBalanced)
	if !floatEquals(unboosted.Confidence, base.Confidence) {
		t.Errorf("jumpy history: got %v, want %v", unboosted.Confidence, base.Confidence)
	}
}

func TestMode_Validate(t *testing.T) {
	for _, m := range []Mode{ModeBalanced, ModeCreative, ModeTechnical} {
		if err := m.Validate(); err != nil {
			t.Errorf("Validate(%s): unexpected error %v", m, err)
		}
	}
	if err := Mode("cinematic").Validate(); err == nil {
		t.Error("Validate(cinematic): expected error, got nil")
	}
}
