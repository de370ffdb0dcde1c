package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/agbru/fingerprints/internal/format"
	"github.com/agbru/fingerprints/internal/metrics"
	"github.com/agbru/fingerprints/internal/orchestration"
	"github.com/agbru/fingerprints/internal/progress"
	"github.com/agbru/fingerprints/internal/sysmon"
	"github.com/agbru/fingerprints/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter for CLI output.
// It wraps the DisplayProgress function to provide a spinner and progress bar
// display while fingerprints are computed.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for ongoing computations.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numTasks int, out io.Writer) {
	DisplayProgress(wg, progressChan, numTasks, out)
}

// CLIColorProvider supplies the active theme's colors to error handling.
type CLIColorProvider struct{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// FormatSummaryTable renders the computed and failed results as a table.
// Cached results are only counted in the footer line.
func FormatSummaryTable(results []orchestration.Result) string {
	palette := ui.CurrentPalette()
	header := lipgloss.NewStyle().Foreground(palette.Accent).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Foreground(palette.Text).Padding(0, 1)
	statusStyle := map[orchestration.Status]lipgloss.Style{
		orchestration.StatusComputed: cell.Foreground(palette.Success),
		orchestration.StatusFailed:   cell.Foreground(palette.Error),
	}

	var rows [][]string
	var statuses []orchestration.Status
	for _, r := range results {
		if r.Status == orchestration.StatusCached {
			continue
		}
		detail := format.FormatExecutionDuration(r.Duration)
		if r.Err != nil {
			detail = r.Err.Error()
		}
		rows = append(rows, []string{r.Name, string(r.Kind), r.Status.String(), detail})
		statuses = append(statuses, r.Status)
	}

	c := orchestration.Summarize(results)
	footer := fmt.Sprintf("%d computed, %d cached, %d failed", c.Computed, c.Cached, c.Failed)
	if len(rows) == 0 {
		return footer + "\n"
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(palette.Border)).
		Headers("Strategy", "Kind", "Status", "Duration").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col == 2 && row < len(statuses) {
				return statusStyle[statuses[row]]
			}
			return cell
		})
	return t.Render() + "\n" + footer + "\n"
}

// DisplaySummary writes the run summary.
func DisplaySummary(results []orchestration.Result, out io.Writer) {
	fmt.Fprintf(out, "\n--- Update Summary ---\n")
	fmt.Fprint(out, FormatSummaryTable(results))
}

// DisplayMemoryStats shows the process memory usage after a run.
func DisplayMemoryStats(s metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "Memory: %s%s%s\n", ui.ColorCyan(), s, ui.ColorReset())
}

// DisplaySystemStats shows host CPU and memory usage.
func DisplaySystemStats(s sysmon.Stats, out io.Writer) {
	fmt.Fprintf(out, "System: %s%s%s\n", ui.ColorCyan(), s, ui.ColorReset())
}
