package orchestration

import (
	"time"

	"github.com/agbru/fingerprints/internal/format"
	"github.com/agbru/fingerprints/internal/progress"
)

// ProgressAggregator folds per-fingerprint updates into the progress of the
// whole pass and counts finished fingerprints.
type ProgressAggregator struct {
	state     *format.ProgressWithETA
	finished  []bool
	completed int
}

// NewProgressAggregator creates an aggregator for numTasks fingerprints. It
// returns nil if numTasks <= 0.
func NewProgressAggregator(numTasks int) *ProgressAggregator {
	if numTasks <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:    format.NewProgressWithETA(numTasks),
		finished: make([]bool, numTasks),
	}
}

// AggregatedProgress is the state of the pass after one update.
type AggregatedProgress struct {
	// AverageProgress is the mean progress over all fingerprints.
	AverageProgress float64
	// ETA is the estimated time remaining.
	ETA time.Duration
	// Completed counts fingerprints that reported full progress.
	Completed int
}

// Update records one update. Updates for unknown task indexes only refresh
// the estimate.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.TaskIndex, update.Value)
	i := update.TaskIndex
	if i >= 0 && i < len(a.finished) && update.Value >= 1 && !a.finished[i] {
		a.finished[i] = true
		a.completed++
	}
	return AggregatedProgress{AverageProgress: avg, ETA: eta, Completed: a.completed}
}

// DrainChannel discards updates until progressChan is closed.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
