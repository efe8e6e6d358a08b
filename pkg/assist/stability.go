package assist

import (
	"time"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/frame"
)

// Stability tuning constants. The floor interval bounds analysis frequency
// regardless of how often the scene appears to change.
const (
	stableThreshold      = 10
	changedInterval      = 200 * time.Millisecond
	maxInterval          = 2 * time.Second
	defaultFloorInterval = time.Second
)

// StabilityState is mutated every frame and owned exclusively by one
// Estimator. Never shared.
type StabilityState struct {
	LastFingerprint   uint64
	ConsecutiveStable uint32
	Score             float64
	Interval          time.Duration
}

// Estimator decides whether a frame deserves a full analysis pass. The
// fingerprint is deliberately cheap (metadata only, no pixel hash) so the
// check stays O(1) on the capture path.
type Estimator struct {
	state        StabilityState
	floor        time.Duration
	lastAccepted time.Time
}

// NewEstimator returns an estimator with the given floor interval. A
// non-positive floor falls back to the 1s default.
func NewEstimator(floor time.Duration) *Estimator {
	if floor <= 0 {
		floor = defaultFloorInterval
	}
	return &Estimator{
		state: StabilityState{Interval: changedInterval},
		floor: floor,
	}
}

// State returns a copy of the current stability state.
func (e *Estimator) State() StabilityState {
	return e.state
}

// ShouldAnalyze updates stability state for the frame and reports whether a
// full analysis should run now. Acceptance requires the adaptive interval
// (never below the floor) to have elapsed, and either a scene change or a
// 3x-floor staleness override so a falsely-stable scene cannot suppress
// analysis forever.
func (e *Estimator) ShouldAnalyze(f *frame.Frame, now time.Time) (bool, uint64) {
	fp := f.Fingerprint()
	changed := fp != e.state.LastFingerprint
	e.state.LastFingerprint = fp

	if changed {
		e.state.ConsecutiveStable = 0
		e.state.Score = max(0, e.state.Score-0.2)
		e.state.Interval = changedInterval
	} else {
		e.state.ConsecutiveStable++
		e.state.Score = min(1, e.state.Score+0.1)
		if e.state.ConsecutiveStable > stableThreshold {
			relaxed := 500*time.Millisecond + time.Duration(e.state.ConsecutiveStable)*100*time.Millisecond
			e.state.Interval = min(maxInterval, relaxed)
		}
	}

	elapsed := now.Sub(e.lastAccepted)
	if e.lastAccepted.IsZero() {
		elapsed = 3 * e.floor
	}

	wait := max(e.state.Interval, e.floor)
	if elapsed < wait {
		return false, fp
	}
	if !changed && elapsed < 3*e.floor {
		return false, fp
	}

	e.lastAccepted = now
	return true, fp
}
