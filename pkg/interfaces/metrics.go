package interfaces

import "time"

// ParseMetrics receives observations from every parse. source is the input
// dialect ("storage" or "markdown").
type ParseMetrics interface {
	ObserveParseDuration(source string, duration time.Duration)
	ObserveNodeCount(source string, count int)
	IncrementDiagnostic(reason string)
	IncrementFallback(source string)
}
