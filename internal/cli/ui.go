package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fingerprints/internal/format"
	"github.com/agbru/fingerprints/internal/orchestration"
	"github.com/agbru/fingerprints/internal/progress"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows for the decoupling of the `DisplayProgress` function from a
// specific spinner implementation, facilitating easier testing and maintenance.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts `spinner.Spinner` to the `Spinner` interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(out io.Writer, options ...spinner.Option) Spinner {
	options = append(options, spinner.WithWriter(out))
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress renders a spinner followed by the aggregated progress bar
// until progressChan is closed. It calls wg.Done on return.
//
// Parameters:
//   - wg: The wait group to signal on completion.
//   - progressChan: The channel of per-task progress updates.
//   - numTasks: The number of tasks contributing to the average.
//   - out: The writer the spinner renders to.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numTasks int, out io.Writer) {
	defer wg.Done()
	if numTasks <= 0 {
		orchestration.DrainChannel(progressChan)
		return
	}

	agg := orchestration.NewProgressAggregator(numTasks)
	s := newSpinner(out)
	s.UpdateSuffix(" " + format.FormatProgressBarWithETA(0, 0, ProgressBarWidth))
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	var last orchestration.AggregatedProgress
	render := func() {
		s.UpdateSuffix(fmt.Sprintf(" %s (%d/%d)",
			format.FormatProgressBarWithETA(last.AverageProgress, last.ETA, ProgressBarWidth),
			last.Completed, numTasks))
	}

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				last = orchestration.AggregatedProgress{AverageProgress: 1, Completed: numTasks}
				render()
				s.Stop()
				fmt.Fprintln(out)
				return
			}
			last = agg.Update(update)
		case <-ticker.C:
			render()
		}
	}
}
