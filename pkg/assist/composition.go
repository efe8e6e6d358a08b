package assist

import (
	"sync"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/guides"
	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/perception"
)

// compositionAssistant publishes the configured overlay guides. Static
// guides never change between passes; the derived ones (leading lines,
// horizon) are recomputed from the frame's perception results.
type compositionAssistant struct {
	assistant

	pubMu  sync.RWMutex
	guides []guides.Guide
}

func (ca *compositionAssistant) publish(res perception.Results, types []guides.Type) {
	if !ca.isEnabled() {
		return
	}

	out := make([]guides.Guide, 0, len(types))
	for _, t := range types {
		if g, ok := guides.Static(t); ok {
			out = append(out, g)
			continue
		}
		switch t {
		case guides.LeadingLines:
			out = append(out, guides.LeadingLinesGuide(res.Objects))
		case guides.Horizon:
			out = append(out, guides.HorizonGuide(res.Horizon))
		}
	}

	ca.pubMu.Lock()
	ca.guides = out
	ca.pubMu.Unlock()
}
