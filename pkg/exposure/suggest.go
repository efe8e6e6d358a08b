package exposure

import (
	"errors"
	"math"
)

// Mode selects the suggestion policy.
type Mode string

const (
	ModeBalanced  Mode = "balanced"
	ModeCreative  Mode = "creative"
	ModeTechnical Mode = "technical"
)

// ErrInvalidMode is returned for unknown suggestion modes.
var ErrInvalidMode = errors.New("exposure: invalid suggestion mode")

// Validate checks the mode at the API boundary.
func (m Mode) Validate() error {
	switch m {
	case ModeBalanced, ModeCreative, ModeTechnical:
		return nil
	default:
		return ErrInvalidMode
	}
}

// SuggestionType tags the kind of exposure change recommended.
type SuggestionType string

const (
	// TypeAutomatic keeps the camera's auto-exposure in charge.
	TypeAutomatic SuggestionType = "automatic"
	// TypeManual recommends explicit ISO/shutter/aperture settings.
	TypeManual SuggestionType = "manual"
	// TypeCompensation recommends an EV compensation delta.
	TypeCompensation SuggestionType = "exposure_compensation"
)

// Impact grades how visibly a suggestion would change the image.
type Impact int

const (
	ImpactNone Impact = iota
	ImpactMinor
	ImpactModerate
	ImpactSignificant
	ImpactDramatic
)

// String returns the impact name.
func (i Impact) String() string {
	switch i {
	case ImpactMinor:
		return "minor"
	case ImpactModerate:
		return "moderate"
	case ImpactSignificant:
		return "significant"
	case ImpactDramatic:
		return "dramatic"
	default:
		return "none"
	}
}

// Priority grades how urgently the suggestion should be shown.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

// String returns the priority name.
func (p Priority) String() string {
	switch p {
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	default:
		return "low"
	}
}

// ManualSettings holds explicit exposure settings for a manual suggestion.
type ManualSettings struct {
	ISO          int     `json:"iso"`
	ShutterSpeed float64 `json:"shutter_speed"` // Seconds
	Aperture     float64 `json:"aperture"`      // f-number
}

// Suggestion is a derived value, recomputed on every accepted analysis and
// never persisted.
type Suggestion struct {
	Type       SuggestionType  `json:"type"`
	Manual     *ManualSettings `json:"manual,omitempty"`  // Set when Type == TypeManual
	EVDelta    float64         `json:"ev_delta,omitempty"` // Set when Type == TypeCompensation
	Confidence float64         `json:"confidence"`
	Reason     string          `json:"reason"`
	Impact     Impact          `json:"impact"`
	Priority   Priority        `json:"priority"`
}

// Technical-mode exposure calculation constants.
const (
	baseISO         = 200
	lowLightISO     = 800
	baseShutter     = 1.0 / 120.0
	fastestShutter  = 1.0 / 4000.0
	slowestShutter  = 1.0 / 2.0
	defaultAperture = 2.8
)

// Suggest derives an exposure suggestion from the reading under the given
// mode. History lets the policy temper confidence: three agreeing recent
// readings earn a small bonus, a jumpy scene does not.
func Suggest(reading Reading, history []Reading, mode Mode) Suggestion {
	var s Suggestion
	switch mode {
	case ModeCreative:
		s = suggestCreative(reading)
	case ModeTechnical:
		return suggestTechnical(reading)
	default:
		s = suggestBalanced(reading)
	}

	if steady(history) && s.Confidence > 0 {
		s.Confidence = math.Min(1.0, s.Confidence+0.05)
	}
	return s
}

func suggestBalanced(r Reading) Suggestion {
	switch {
	case r.Clipping.Highlights > 0.1:
		return Suggestion{
			Type:       TypeCompensation,
			EVDelta:    -1.0,
			Confidence: 0.85,
			Reason:     "Highlights are clipping; reduce exposure to recover detail",
			Impact:     ImpactSignificant,
			Priority:   PriorityHigh,
		}
	case r.Brightness < 0.2 && r.Clipping.Shadows < 0.05:
		return Suggestion{
			Type:       TypeCompensation,
			EVDelta:    0.7,
			Confidence: 0.75,
			Reason:     "Scene is dark with headroom in the shadows; brighten exposure",
			Impact:     ImpactModerate,
			Priority:   PriorityMedium,
		}
	case math.Abs(r.EV) < 0.5 && r.Contrast > 0.6:
		return Suggestion{
			Type:       TypeAutomatic,
			Confidence: 0.7,
			Reason:     "Exposure is on target with good contrast",
			Impact:     ImpactMinor,
			Priority:   PriorityLow,
		}
	default:
		return Suggestion{
			Type:       TypeAutomatic,
			Confidence: 0.6,
			Reason:     "No exposure change needed",
			Impact:     ImpactNone,
			Priority:   PriorityLow,
		}
	}
}

func suggestCreative(r Reading) Suggestion {
	switch {
	case r.Scene() == SceneLowLight:
		return Suggestion{
			Type: TypeManual,
			Manual: &ManualSettings{
				ISO:          1600,
				ShutterSpeed: 1.0 / 30.0,
				Aperture:     1.8,
			},
			Confidence: 0.8,
			Reason:     "Low light: embrace the mood with high ISO and a slow shutter",
			Impact:     ImpactDramatic,
			Priority:   PriorityHigh,
		}
	case r.Backlit():
		return Suggestion{
			Type:       TypeCompensation,
			EVDelta:    -0.7,
			Confidence: 0.75,
			Reason:     "Backlit subject: underexpose for a silhouette effect",
			Impact:     ImpactSignificant,
			Priority:   PriorityMedium,
		}
	default:
		return suggestBalanced(r)
	}
}

// suggestTechnical always proposes explicit settings. Confidence is fixed at
// 0.9: it reflects certainty in the deterministic calculation, not the scene.
func suggestTechnical(r Reading) Suggestion {
	iso := baseISO
	if r.Scene() == SceneLowLight {
		iso = lowLightISO
	}

	// Counter the measured EV offset toward a mid-gray target: one stop of
	// measured overexposure halves the shutter time.
	shutter := baseShutter * math.Pow(2, -r.EV)
	shutter = math.Min(slowestShutter, math.Max(fastestShutter, shutter))

	return Suggestion{
		Type: TypeManual,
		Manual: &ManualSettings{
			ISO:          iso,
			ShutterSpeed: shutter,
			Aperture:     defaultAperture,
		},
		Confidence: 0.9,
		Reason:     "Computed manual settings for the measured scene brightness",
		Impact:     ImpactSignificant,
		Priority:   PriorityHigh,
	}
}

// steady reports whether the three most recent readings agree on brightness.
func steady(history []Reading) bool {
	if len(history) < 3 {
		return false
	}
	recent := history[len(history)-3:]
	lo, hi := recent[0].Brightness, recent[0].Brightness
	for _, r := range recent[1:] {
		lo = math.Min(lo, r.Brightness)
		hi = math.Max(hi, r.Brightness)
	}
	return hi-lo < 0.1
}
