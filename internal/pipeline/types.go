package pipeline

import "time"

// Stage describes a pipeline phase.
type Stage string

const (
	// StageRead loads source text through Storage.
	StageRead Stage = "read"
	// StageGenerate turns source text into test units.
	StageGenerate Stage = "generate"
	// StageWrite persists test units through Storage.
	StageWrite Stage = "write"
)

// Stages lists the phases in execution order.
var Stages = []Stage{StageRead, StageGenerate, StageWrite}

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the item is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates a worker picked the item up.
	StatusWorking Status = "working"
	// StatusDone indicates the item passed the stage.
	StatusDone Status = "done"
	// StatusError indicates the item failed in the stage.
	StatusError Status = "error"
)

// Event reports progress for a file. For the write stage File is the output
// path; Source always names the input path the item came from.
type Event struct {
	File    string
	Source  string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Must be goroutine-safe.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds stage durations.
type Timings struct {
	stages map[Stage]time.Duration
}

func (t *Timings) ensure() {
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
}

// Set stores a duration for the given stage.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] = dur
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	if t.stages == nil {
		return false
	}
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	return t.stages[stage]
}

// Sum returns the sum of durations across the provided stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}
