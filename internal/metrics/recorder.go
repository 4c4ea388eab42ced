package metrics

import "time"

// Outcome labels for navigation builds.
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Lookup result labels.
const (
	LookupHit  = "hit"
	LookupMiss = "miss"
)

// Recorder defines observability hooks for navigation builds and lookups.
type Recorder interface {
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome string)
	SetTreeSize(nodes, pages int)
	IncLookup(result string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(time.Duration) {}
func (NoopRecorder) IncBuildOutcome(string)              {}
func (NoopRecorder) SetTreeSize(int, int)                {}
func (NoopRecorder) IncLookup(string)                    {}
