package assist

import (
	"encoding/json"
	"time"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/exposure"
)

// Ring history capacities. Oldest entries are evicted on overflow.
const (
	focusHistoryCap    = 10
	exposureHistoryCap = 20
)

// trendDelta is the focus-score movement needed before the trend leaves
// Stable.
const trendDelta = 0.1

// FocusAnalysis is one immutable frame-quality snapshot.
type FocusAnalysis struct {
	Sharpness    float64   `json:"sharpness"`
	Contrast     float64   `json:"contrast"`
	EdgeStrength float64   `json:"edge_strength"`
	FocusScore   float64   `json:"focus_score"`
	Confidence   float64   `json:"confidence"`
	Timestamp    time.Time `json:"timestamp"`
}

// Trend describes how focus quality has moved over recent analyses.
type Trend int

const (
	TrendStable Trend = iota
	TrendImproving
	TrendDeclining
)

// String returns the trend name.
func (t Trend) String() string {
	switch t {
	case TrendImproving:
		return "improving"
	case TrendDeclining:
		return "declining"
	default:
		return "stable"
	}
}

// MarshalJSON encodes the trend as its name.
func (t Trend) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// Tracker keeps the bounded per-assistant histories and derives quality and
// trend from them. Not safe for concurrent use; callers serialize access
// through the assistant's publishing step.
type Tracker struct {
	focus    []FocusAnalysis
	exposure []exposure.Reading
}

// RecordFocus appends a focus analysis, evicting the oldest past capacity.
func (t *Tracker) RecordFocus(a FocusAnalysis) {
	t.focus = append(t.focus, a)
	if len(t.focus) > focusHistoryCap {
		t.focus = t.focus[len(t.focus)-focusHistoryCap:]
	}
}

// RecordExposure appends an exposure reading, evicting the oldest past
// capacity.
func (t *Tracker) RecordExposure(r exposure.Reading) {
	t.exposure = append(t.exposure, r)
	if len(t.exposure) > exposureHistoryCap {
		t.exposure = t.exposure[len(t.exposure)-exposureHistoryCap:]
	}
}

// FocusLen returns the number of retained focus analyses.
func (t *Tracker) FocusLen() int { return len(t.focus) }

// ExposureLen returns the number of retained exposure readings.
func (t *Tracker) ExposureLen() int { return len(t.exposure) }

// ExposureHistory returns the retained readings, oldest first. The slice is
// shared; callers must not mutate it.
func (t *Tracker) ExposureHistory() []exposure.Reading { return t.exposure }

// QualityScore returns the most recent focus score, or 0 with no history.
func (t *Tracker) QualityScore() float64 {
	if len(t.focus) == 0 {
		return 0
	}
	return t.focus[len(t.focus)-1].FocusScore
}

// TrendDirection compares the first and last of the three most recent focus
// scores. Fewer than three entries reports Stable by definition.
func (t *Tracker) TrendDirection() Trend {
	if len(t.focus) < 3 {
		return TrendStable
	}
	recent := t.focus[len(t.focus)-3:]
	delta := recent[2].FocusScore - recent[0].FocusScore
	switch {
	case delta > trendDelta:
		return TrendImproving
	case delta < -trendDelta:
		return TrendDeclining
	default:
		return TrendStable
	}
}
