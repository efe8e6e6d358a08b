package assist

import (
	"sync"
	"time"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/exposure"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/perception"
)

// exposureAssistant converts luminance summaries into readings and publishes
// the mode-dependent exposure suggestion.
type exposureAssistant struct {
	assistant

	pubMu      sync.RWMutex
	suggestion *exposure.Suggestion
	tracker    Tracker
}

// publish derives a reading and suggestion from one accepted pass. The
// suggestion is computed against the history before the new reading is
// recorded, so the steadiness bonus reflects the scene leading up to now.
func (ea *exposureAssistant) publish(res perception.Results, mode exposure.Mode, now time.Time) {
	if !ea.isEnabled() {
		return
	}

	reading := exposure.NewReading(res.Luminance, now)

	ea.pubMu.Lock()
	sugg := exposure.Suggest(reading, ea.tracker.ExposureHistory(), mode)
	ea.tracker.RecordExposure(reading)
	ea.suggestion = &sugg
	ea.pubMu.Unlock()
}
