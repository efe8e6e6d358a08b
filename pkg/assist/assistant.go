package assist

import (
	"sync"
	"time"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/frame"
)

// assistant holds the admission state shared by the focus, exposure and
// composition sub-engines. Each sub-engine owns its own instance; nothing
// here is shared across assistants.
type assistant struct {
	mu      sync.Mutex
	est     *Estimator
	enabled bool
	busy    bool
}

func newAssistant(floor time.Duration) assistant {
	return assistant{est: NewEstimator(floor), enabled: true}
}

// admit runs the synchronous stability check and claims the single in-flight
// slot. A true return must be paired with done(). A busy assistant rejects
// rather than queues.
func (a *assistant) admit(f *frame.Frame, now time.Time) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.enabled || a.busy {
		return false
	}
	ok, _ := a.est.ShouldAnalyze(f, now)
	if !ok {
		return false
	}
	a.busy = true
	return true
}

// done releases the in-flight slot.
func (a *assistant) done() {
	a.mu.Lock()
	a.busy = false
	a.mu.Unlock()
}

// analyzing reports whether a background pass is in flight.
func (a *assistant) analyzing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.busy
}

func (a *assistant) setEnabled(v bool) {
	a.mu.Lock()
	a.enabled = v
	a.mu.Unlock()
}

func (a *assistant) isEnabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}
