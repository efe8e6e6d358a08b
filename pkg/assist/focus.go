package assist

import (
	"sync"
	"time"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/geometry"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/perception"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/subject"
)

// focusAssistant fuses detections into a subject list and publishes the
// selected autofocus point plus frame-quality history.
type focusAssistant struct {
	assistant

	pubMu    sync.RWMutex
	point    *geometry.Point
	subjects []subject.Subject
	tracker  Tracker
}

// publish swaps in the results of one accepted analysis pass. A result that
// arrives after the assistant was disabled is discarded, not rolled back.
func (fa *focusAssistant) publish(res perception.Results, now time.Time) {
	if !fa.isEnabled() {
		return
	}

	subjects := subject.Fuse(res)
	pt := subject.SelectFocusPoint(subjects)
	analysis := newFocusAnalysis(subjects, res.Luminance, now)

	fa.pubMu.Lock()
	fa.point = &pt
	fa.subjects = subjects
	fa.tracker.RecordFocus(analysis)
	fa.pubMu.Unlock()
}

// newFocusAnalysis derives frame-quality metrics from the fused subjects and
// the luminance summary. Without a dedicated sharpness measurement the
// luminance contrast serves as the sharpness and edge-strength proxy.
func newFocusAnalysis(subjects []subject.Subject, lum *perception.Luminance, now time.Time) FocusAnalysis {
	contrast := 0.5
	if lum != nil && lum.Contrast != nil {
		contrast = *lum.Contrast
	}

	// Post-sort, the first subject carries the highest confidence.
	confidence := 0.3
	if len(subjects) > 0 {
		confidence = subjects[0].Confidence
	}

	sharpness := geometry.Clamp01(contrast * 1.2)
	return FocusAnalysis{
		Sharpness:    sharpness,
		Contrast:     contrast,
		EdgeStrength: contrast,
		FocusScore:   geometry.Clamp01(0.6*confidence + 0.4*sharpness),
		Confidence:   confidence,
		Timestamp:    now,
	}
}
