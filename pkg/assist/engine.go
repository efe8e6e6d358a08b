// Package assist implements the smart camera assistance engine: a per-frame
// pipeline that turns a borrowed video frame plus perception results into an
// autofocus point, an exposure suggestion and a set of composition guides.
// The expensive work runs off the capture path behind an adaptive stability
// throttle; consumers read an atomically published snapshot.
package assist

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/internal/log"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/exposure"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/frame"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/geometry"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/guides"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/perception"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/subject"
)

// Snapshot is the read-only published output of one engine. Consumers get a
// copy; the engine never mutates a snapshot after handing it out.
type Snapshot struct {
	FocusPoint         *geometry.Point      `json:"focus_point,omitempty"`
	Subjects           []subject.Subject    `json:"subjects,omitempty"`
	ExposureSuggestion *exposure.Suggestion `json:"exposure_suggestion,omitempty"`
	Guides             []guides.Guide       `json:"guides"`
	Analyzing          bool                 `json:"analyzing"`
	QualityScore       float64              `json:"quality_score"`
	Trend              Trend                `json:"trend"`
}

// Engine owns the three sub-assistants for one camera session. Create one
// per session; instances are never shared across sessions.
type Engine struct {
	provider perception.Provider
	logger   *slog.Logger

	cfgMu     sync.RWMutex
	cfg       Config
	onPublish func(Snapshot)

	fa focusAssistant
	ea exposureAssistant
	ca compositionAssistant
}

// New validates the configuration and builds an engine around the provider.
// A nil logger falls back to the process default.
func New(provider perception.Provider, cfg Config, logger *slog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.L()
	}

	e := &Engine{
		provider: provider,
		logger:   logger,
		cfg:      cfg,
	}
	e.fa.assistant = newAssistant(cfg.FloorInterval)
	e.ea.assistant = newAssistant(cfg.FloorInterval)
	e.ca.assistant = newAssistant(cfg.FloorInterval)
	return e, nil
}

// Analyze offers one frame to the engine. The stability checks run
// synchronously; when at least one assistant accepts, a single background
// perception pass serves all acceptors. Never blocks on perception, so the
// capture path cannot stall here.
func (e *Engine) Analyze(f *frame.Frame) {
	now := time.Now()

	runFocus := e.fa.admit(f, now)
	runExposure := e.ea.admit(f, now)
	runComp := e.ca.admit(f, now)
	if !runFocus && !runExposure && !runComp {
		return
	}

	// The caller only lends the pixel data for this call.
	owned := f.Clone()
	go e.run(owned, runFocus, runExposure, runComp)
}

func (e *Engine) run(f *frame.Frame, runFocus, runExposure, runComp bool) {
	var once sync.Once
	release := func() {
		once.Do(func() {
			if runFocus {
				e.fa.done()
			}
			if runExposure {
				e.ea.done()
			}
			if runComp {
				e.ca.done()
			}
		})
	}
	defer release()

	e.cfgMu.RLock()
	timeout := e.cfg.AnalysisTimeout
	mode := e.cfg.Mode
	types := append([]guides.Type(nil), e.cfg.Guides...)
	publish := e.onPublish
	e.cfgMu.RUnlock()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	res := perception.Gather(ctx, e.provider, f)
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		// Missed cycle; prior published results stay in place.
		e.logger.Warn("analysis missed cycle", "err", ErrAnalysisTimeout)
		return
	}
	if res.Degraded() {
		e.logger.Debug("perception degraded", "failures", len(res.Partial))
	}

	now := time.Now()
	if runFocus {
		e.fa.publish(res, now)
	}
	if runExposure {
		e.ea.publish(res, mode, now)
	}
	if runComp {
		e.ca.publish(res, types)
	}

	// Busy flags drop before the callback so the published snapshot does
	// not report the pass that produced it as still in flight.
	release()

	if publish != nil {
		publish(e.Snapshot())
	}
}

// Snapshot returns a copy of the current published outputs.
func (e *Engine) Snapshot() Snapshot {
	var s Snapshot

	e.fa.pubMu.RLock()
	if e.fa.point != nil {
		pt := *e.fa.point
		s.FocusPoint = &pt
	}
	s.Subjects = append([]subject.Subject(nil), e.fa.subjects...)
	s.QualityScore = e.fa.tracker.QualityScore()
	s.Trend = e.fa.tracker.TrendDirection()
	e.fa.pubMu.RUnlock()

	e.ea.pubMu.RLock()
	if e.ea.suggestion != nil {
		sugg := *e.ea.suggestion
		s.ExposureSuggestion = &sugg
	}
	e.ea.pubMu.RUnlock()

	e.ca.pubMu.RLock()
	s.Guides = append([]guides.Guide(nil), e.ca.guides...)
	e.ca.pubMu.RUnlock()

	s.Analyzing = e.fa.analyzing() || e.ea.analyzing() || e.ca.analyzing()
	return s
}

// OnPublish registers a callback invoked with a fresh snapshot after each
// completed analysis pass. Call before the first Analyze.
func (e *Engine) OnPublish(fn func(Snapshot)) {
	e.cfgMu.Lock()
	e.onPublish = fn
	e.cfgMu.Unlock()
}

// SetFocusEnabled toggles the focus assistant. Disabling mid-flight discards
// the eventual result instead of cancelling the work.
func (e *Engine) SetFocusEnabled(v bool) { e.fa.setEnabled(v) }

// SetExposureEnabled toggles the exposure assistant.
func (e *Engine) SetExposureEnabled(v bool) { e.ea.setEnabled(v) }

// SetCompositionEnabled toggles the composition assistant.
func (e *Engine) SetCompositionEnabled(v bool) { e.ca.setEnabled(v) }

// SetMode switches the exposure suggestion policy. Invalid modes are
// rejected before any frame sees them.
func (e *Engine) SetMode(m exposure.Mode) error {
	if err := m.Validate(); err != nil {
		return err
	}
	e.cfgMu.Lock()
	e.cfg.Mode = m
	e.cfgMu.Unlock()
	return nil
}

// SetGuides replaces the published guide set.
func (e *Engine) SetGuides(types []guides.Type) error {
	for _, t := range types {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	e.cfgMu.Lock()
	e.cfg.Guides = append([]guides.Type(nil), types...)
	e.cfgMu.Unlock()
	return nil
}

// Config returns a copy of the current configuration.
func (e *Engine) Config() Config {
	e.cfgMu.RLock()
	defer e.cfgMu.RUnlock()
	cfg := e.cfg
	cfg.Guides = append([]guides.Type(nil), e.cfg.Guides...)
	return cfg
}

// Close releases the perception backend.
func (e *Engine) Close() error {
	return e.provider.Close()
}
