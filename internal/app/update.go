package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/agbru/fingerprints/internal/cache"
	"github.com/agbru/fingerprints/internal/cli"
	apperrors "github.com/agbru/fingerprints/internal/errors"
	"github.com/agbru/fingerprints/internal/fingerprint"
	"github.com/agbru/fingerprints/internal/game"
	"github.com/agbru/fingerprints/internal/game/memoryone"
	"github.com/agbru/fingerprints/internal/logging"
	"github.com/agbru/fingerprints/internal/metrics"
	"github.com/agbru/fingerprints/internal/orchestration"
	"github.com/agbru/fingerprints/internal/report"
	"github.com/agbru/fingerprints/internal/source"
	"github.com/agbru/fingerprints/internal/sysmon"
	"github.com/agbru/fingerprints/internal/ui"
)

// ReproduceCommand is printed in the report header.
const ReproduceCommand = "go run ./cmd/fingerprints"

// runUpdate runs one update pass and writes the report.
func (a *Application) runUpdate(ctx context.Context, out io.Writer) int {
	colors := cli.CLIColorProvider{}
	level, _ := logging.ParseLevel(a.Config.LogLevel)
	logger := logging.NewConsoleLogger(a.ErrWriter, level, a.Config.NoColor).With(logging.RunID(uuid.NewString()))

	db, err := cache.Open(a.Config.CachePath)
	if err != nil {
		logger.Error("opening cache", err)
		return apperrors.HandleRunError(err, a.ErrWriter, colors)
	}
	in, err := source.NewIntrospector(game.Sources())
	if err != nil {
		logger.Error("parsing strategy sources", err)
		return apperrors.HandleRunError(err, a.ErrWriter, colors)
	}

	kinds, _ := a.Config.Kinds()
	recorder := metrics.NewRecorder()
	memory := metrics.NewMemoryCollector()

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	updater := orchestration.NewUpdater(db, in, a.generator(),
		orchestration.WithKinds(kinds...),
		orchestration.WithForce(a.Config.Force),
		orchestration.WithLogger(logger),
		orchestration.WithMetrics(recorder),
		orchestration.WithProgressReporter(reporter, progressOut),
	)

	if a.Config.List {
		cli.DisplayPlan(updater.Plan(a.Groups), a.Config.Force, out)
		return apperrors.ExitSuccess
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
	}
	logger.Info("update started", logging.String("cache", db.Path()), logging.Int("entries", db.Len()))

	results, runErr := updater.Run(ctx, a.Groups)
	if a.Config.Timeout > 0 && errors.Is(runErr, context.DeadlineExceeded) {
		runErr = apperrors.TimeoutError{Operation: "update", Limit: a.Config.Timeout}
	}
	if runErr != nil {
		logger.Error("update pass incomplete", runErr)
	}

	if runErr == nil || !apperrors.IsContextError(runErr) {
		if err := a.writeReport(updater); err != nil {
			logger.Error("writing report", err)
			runErr = apperrors.WrapError(err, "writing report %s", a.Config.ReportPath)
		} else {
			logger.Info("report written", logging.String("path", a.Config.ReportPath))
		}
	}

	if a.Config.Compact && runErr == nil {
		if err := db.Compact(); err != nil {
			logger.Error("compacting cache", err)
			runErr = apperrors.WrapError(err, "compacting %s", a.Config.CachePath)
		}
	}

	if a.Config.MetricsFile != "" {
		if err := recorder.WriteTextfile(a.Config.MetricsFile); err != nil {
			logger.Error("writing metrics", err, logging.String("path", a.Config.MetricsFile))
		}
	}

	if a.Config.Quiet {
		fmt.Fprintln(out, cli.FormatQuietSummary(orchestration.Summarize(results)))
	} else {
		cli.DisplaySummary(results, out)
		if a.Config.Verbose {
			cli.DisplayMemoryStats(memory.Snapshot(), out)
			cli.DisplaySystemStats(sysmon.Sample(), out)
		}
	}

	if a.Config.Preview && runErr == nil {
		if err := cli.DisplayReportPreview(a.Config.ReportPath, a.previewTheme(), out); err != nil {
			logger.Error("rendering preview", err)
		}
	}

	return apperrors.HandleRunError(runErr, a.ErrWriter, colors)
}

// writeReport renders the report for every configured group.
func (a *Application) writeReport(updater *orchestration.Updater) error {
	header := report.Header{
		LibraryVersion: game.Version,
		TableVersion:   memoryone.Version,
		Command:        ReproduceCommand,
		Probe:          a.Config.Probe,
		Step:           a.Config.Step,
		Params:         a.selectedParams(),
	}
	return report.Write(a.Config.ReportPath, updater.Document(header, a.Groups))
}

// selectedParams returns the parameters of the kinds being updated.
func (a *Application) selectedParams() map[fingerprint.Kind]fingerprint.Params {
	all := a.Config.Params()
	kinds, _ := a.Config.Kinds()
	params := make(map[fingerprint.Kind]fingerprint.Params, len(kinds))
	for _, k := range kinds {
		params[k] = all[k]
	}
	return params
}

// previewTheme is the glamour style of the report preview.
func (a *Application) previewTheme() string {
	if a.Config.NoColor || ui.GetCurrentTheme().Name == "none" {
		return "none"
	}
	return a.Config.Theme
}
