package assist

import "errors"

var (
	// ErrInvalidConfig is returned when configuration fails validation at
	// the API boundary, before any frame is processed.
	ErrInvalidConfig = errors.New("assist: invalid configuration")

	// ErrAnalysisTimeout marks background work that exceeded its budget.
	// Treated as a missed cycle, never surfaced to the user.
	ErrAnalysisTimeout = errors.New("assist: analysis timed out")
)
