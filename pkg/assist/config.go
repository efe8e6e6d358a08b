package assist

import (
	"fmt"
	"time"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/exposure"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/guides"
)

// Config holds engine settings validated before any frame is processed.
type Config struct {
	// Mode selects the exposure suggestion policy.
	Mode exposure.Mode

	// Guides lists the composition guide types to publish.
	Guides []guides.Type

	// FloorInterval bounds how often analysis may run regardless of the
	// scene-change signal. Must be at least one second.
	FloorInterval time.Duration

	// AnalysisTimeout bounds one background analysis pass.
	AnalysisTimeout time.Duration
}

// DefaultConfig returns the settings used when the caller has no opinion.
func DefaultConfig() Config {
	return Config{
		Mode:            exposure.ModeBalanced,
		Guides:          []guides.Type{guides.RuleOfThirds, guides.Horizon},
		FloorInterval:   time.Second,
		AnalysisTimeout: 2 * time.Second,
	}
}

// Validate rejects malformed configuration with ErrInvalidConfig.
func (c Config) Validate() error {
	if err := c.Mode.Validate(); err != nil {
		return fmt.Errorf("%w: mode %q", ErrInvalidConfig, c.Mode)
	}
	for _, g := range c.Guides {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("%w: guide type %q", ErrInvalidConfig, g)
		}
	}
	if c.FloorInterval < time.Second {
		return fmt.Errorf("%w: floor interval %s below 1s", ErrInvalidConfig, c.FloorInterval)
	}
	if c.AnalysisTimeout <= 0 {
		return fmt.Errorf("%w: analysis timeout %s", ErrInvalidConfig, c.AnalysisTimeout)
	}
	return nil
}
