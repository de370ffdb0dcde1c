// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* and Print* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplaySummary], [DisplayPlan], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatSummaryTable], [FormatQuietSummary].
//
//   - Render* functions transform document content for the terminal.
//     Examples: [RenderMarkdown].

package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/agbru/fingerprints/internal/config"
	"github.com/agbru/fingerprints/internal/orchestration"
	"github.com/agbru/fingerprints/internal/ui"
)

// PreviewWidth is the word-wrap width of the report preview.
const PreviewWidth = 100

// PrintExecutionConfig displays the run configuration to the user.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	kinds, _ := cfg.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	timeout := "none"
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout.String()
	}
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Updating %s%s%s fingerprints, cache %s%s%s, timeout %s%s%s.\n",
		ui.ColorMagenta(), strings.Join(names, ", "), ui.ColorReset(),
		ui.ColorCyan(), cfg.CachePath, ui.ColorReset(),
		ui.ColorYellow(), timeout, ui.ColorReset())
	fmt.Fprintf(out, "Ashlock: probe %s%s%s, step %s%g%s, %d turns x %d repetitions.\n",
		ui.ColorCyan(), cfg.Probe, ui.ColorReset(), ui.ColorCyan(), cfg.Step, ui.ColorReset(),
		cfg.Ashlock.Turns, cfg.Ashlock.Repetitions)
	fmt.Fprintf(out, "Transitive: %s%d%s opponents, %d turns x %d repetitions (short run time: %d x %d).\n",
		ui.ColorCyan(), cfg.Opponents, ui.ColorReset(),
		cfg.Transitive.Turns, cfg.Transitive.Repetitions,
		cfg.TransitiveVShort.Turns, cfg.TransitiveVShort.Repetitions)
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// DisplayPlan lists the tasks that would be computed by a run.
func DisplayPlan(tasks []orchestration.Task, force bool, out io.Writer) {
	pending := 0
	for _, t := range tasks {
		switch {
		case t.HashErr != nil:
			fmt.Fprintf(out, "%s! %s (%s): %v%s\n", ui.ColorRed(), t.Name, t.Kind, t.HashErr, ui.ColorReset())
		case t.Stale || force:
			pending++
			fmt.Fprintf(out, "%s* %s (%s)%s\n", ui.ColorYellow(), t.Name, t.Kind, ui.ColorReset())
		}
	}
	fmt.Fprintf(out, "%d of %d fingerprints to compute.\n", pending, len(tasks))
}

// FormatQuietSummary returns a single line suitable for scripting.
func FormatQuietSummary(c orchestration.Counts) string {
	return fmt.Sprintf("computed=%d cached=%d failed=%d", c.Computed, c.Cached, c.Failed)
}

// RenderMarkdown renders Markdown for the terminal. theme is "auto",
// "dark", "light" or "none".
func RenderMarkdown(markdown string, width int, theme string) (string, error) {
	style := glamour.WithAutoStyle()
	switch theme {
	case "none":
		style = glamour.WithStandardStyle("notty")
	case "dark", "light":
		style = glamour.WithStandardStyle(theme)
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}

// DisplayReportPreview renders the report at path to out.
func DisplayReportPreview(path, theme string, out io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading report: %w", err)
	}
	rendered, err := RenderMarkdown(string(data), PreviewWidth, theme)
	if err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	_, err = io.WriteString(out, rendered)
	return err
}
