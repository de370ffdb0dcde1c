// Package app wires configuration, the fingerprint cache, the generators and
// the report writer into the fingerprints command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/fingerprints/internal/artifact"
	"github.com/agbru/fingerprints/internal/cli"
	"github.com/agbru/fingerprints/internal/config"
	apperrors "github.com/agbru/fingerprints/internal/errors"
	"github.com/agbru/fingerprints/internal/fingerprint"
	"github.com/agbru/fingerprints/internal/game"
	"github.com/agbru/fingerprints/internal/orchestration"
	"github.com/agbru/fingerprints/internal/ui"
)

// Application represents the fingerprints application instance.
type Application struct {
	Config    config.AppConfig
	Groups    []orchestration.Group
	ErrWriter io.Writer

	fingerprinter orchestration.Fingerprinter
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithGroups replaces the default strategy groups.
func WithGroups(groups ...orchestration.Group) AppOption {
	return func(a *Application) { a.Groups = groups }
}

// WithFingerprinter replaces the artifact generator built from the
// configuration.
func WithFingerprinter(fp orchestration.Fingerprinter) AppOption {
	return func(a *Application) { a.fingerprinter = fp }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Groups == nil {
		app.Groups = orchestration.DefaultGroups()
	}

	programName := "fingerprints"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}
	if a.Config.Version {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	ui.InitTheme(a.Config.NoColor, a.Config.Theme)

	if a.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Config.Timeout)
		defer cancel()
	}
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return a.runUpdate(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	kinds := fingerprint.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	if err := cli.GenerateCompletion(out, a.Config.Completion, names); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// generator returns the configured Fingerprinter.
func (a *Application) generator() orchestration.Fingerprinter {
	if a.fingerprinter != nil {
		return a.fingerprinter
	}
	probe, _ := game.ByName(a.Config.Probe)
	return artifact.NewGenerator(artifact.Config{
		Dir:       a.Config.AssetsDir,
		Probe:     probe,
		Step:      a.Config.Step,
		Opponents: a.Config.Opponents,
		Params:    a.Config.Params(),
	})
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
