//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package orchestration

import (
	"context"
	"io"
	"sync"

	"github.com/agbru/fingerprints/internal/artifact"
	"github.com/agbru/fingerprints/internal/fingerprint"
	"github.com/agbru/fingerprints/internal/game"
	"github.com/agbru/fingerprints/internal/progress"
)

// Fingerprinter computes fingerprints and knows where their artifacts live.
type Fingerprinter interface {
	// Generate computes the fingerprint of kind for p and writes its
	// artifacts under names derived from name.
	Generate(ctx context.Context, p game.Player, name string, kind fingerprint.Kind, cb progress.ProgressCallback) (artifact.Files, error)
	// Paths returns the artifact locations without computing anything.
	Paths(kind fingerprint.Kind, name string) artifact.Files
}

// ProgressReporter defines the interface for displaying progress of the
// update pass. This interface decouples the orchestration layer from the
// presentation layer.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed, then
	// calls wg.Done. numTasks is the number of fingerprints to compute.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numTasks int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numTasks int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numTasks int, out io.Writer) {
	f(wg, progressChan, numTasks, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}
