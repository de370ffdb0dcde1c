// Package config defines the run configuration of the fingerprint updater.
// Values come from command-line flags, FINGERPRINTS_* environment variables
// and an optional YAML file, in that order of priority, on top of defaults
// that reproduce the historical parameters.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/fingerprints/internal/errors"
	"github.com/agbru/fingerprints/internal/fingerprint"
	"github.com/agbru/fingerprints/internal/game"
	"github.com/agbru/fingerprints/internal/logging"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "FINGERPRINTS_"

// KindParams holds the simulation size of one fingerprint kind.
type KindParams struct {
	Turns       int `yaml:"turns"`
	Repetitions int `yaml:"repetitions"`
}

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// CachePath is the CSV file recording the hash of every fingerprint.
	CachePath string
	// AssetsDir receives the images and data files.
	AssetsDir string
	// ReportPath is the Markdown report to write.
	ReportPath string

	Probe     string
	Step      float64
	Opponents int
	Seed      uint64
	Workers   int
	// KindsList is a comma-separated list of kinds, or "all".
	KindsList string

	Ashlock          KindParams
	Transitive       KindParams
	TransitiveVShort KindParams

	Force   bool
	List    bool
	Compact bool
	Preview bool
	Verbose bool
	Quiet   bool
	NoColor bool

	Timeout     time.Duration
	LogLevel    string
	Theme       string
	MetricsFile string
	ConfigFile  string
	Completion  string
	Version     bool
}

// Default returns the configuration used when nothing is overridden.
func Default() AppConfig {
	p := fingerprint.DefaultParams()
	kp := KindParams{Turns: p.Turns, Repetitions: p.Repetitions}
	return AppConfig{
		CachePath:        "db.csv",
		AssetsDir:        "assets",
		ReportPath:       "README.md",
		Probe:            game.TitForTat{}.Name(),
		Step:             fingerprint.DefaultStep,
		Opponents:        fingerprint.DefaultOpponents,
		KindsList:        "all",
		Ashlock:          kp,
		Transitive:       kp,
		TransitiveVShort: kp,
		LogLevel:         "info",
		Theme:            "auto",
	}
}

// ParseConfig parses command-line arguments, applies the configuration file
// and environment overrides, and validates the result.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	config := Default()

	fs.StringVar(&config.CachePath, "cache", config.CachePath, "Path of the hash cache file.")
	fs.StringVar(&config.AssetsDir, "assets", config.AssetsDir, "Directory receiving images and data files.")
	fs.StringVar(&config.ReportPath, "report", config.ReportPath, "Path of the generated Markdown report.")
	fs.StringVar(&config.Probe, "probe", config.Probe, "Base probe strategy of the Ashlock fingerprint.")
	fs.Float64Var(&config.Step, "step", config.Step, "Grid spacing of the Ashlock fingerprint.")
	fs.IntVar(&config.Opponents, "opponents", config.Opponents, "Number of Random opponents of the transitive fingerprint.")
	fs.Uint64Var(&config.Seed, "seed", config.Seed, "Seed of the match random sources.")
	fs.IntVar(&config.Workers, "workers", config.Workers, "Concurrent matches per fingerprint (0 = number of CPUs).")
	fs.StringVar(&config.KindsList, "kinds", config.KindsList, `Fingerprint kinds to update: "all" or a comma-separated list of Ashlock, Transitive, Transitive_v_short.`)
	fs.IntVar(&config.Ashlock.Turns, "ashlock-turns", config.Ashlock.Turns, "Turns per match of the Ashlock fingerprint.")
	fs.IntVar(&config.Ashlock.Repetitions, "ashlock-repetitions", config.Ashlock.Repetitions, "Repetitions of the Ashlock fingerprint.")
	fs.IntVar(&config.Transitive.Turns, "transitive-turns", config.Transitive.Turns, "Turns per match of the transitive fingerprint.")
	fs.IntVar(&config.Transitive.Repetitions, "transitive-repetitions", config.Transitive.Repetitions, "Repetitions of the transitive fingerprint.")
	fs.IntVar(&config.TransitiveVShort.Turns, "v-short-turns", config.TransitiveVShort.Turns, "Turns per match of the transitive fingerprint against short run time strategies.")
	fs.IntVar(&config.TransitiveVShort.Repetitions, "v-short-repetitions", config.TransitiveVShort.Repetitions, "Repetitions of the transitive fingerprint against short run time strategies.")
	fs.BoolVar(&config.Force, "force", false, "Recompute every fingerprint regardless of the cache.")
	fs.BoolVar(&config.List, "list", false, "List stale fingerprints and exit without computing.")
	fs.BoolVar(&config.Compact, "compact", false, "Rewrite the cache with one row per entry after the run.")
	fs.BoolVar(&config.Preview, "preview", false, "Render the written report in the terminal.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for -verbose.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Display memory and system statistics.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for -quiet.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Suppress progress and summary output.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.Theme, "theme", config.Theme, "Color theme: auto, dark or light.")
	fs.DurationVar(&config.Timeout, "timeout", 0, "Maximum run time (0 = no limit).")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "Log level: debug, info, warn, error or disabled.")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile after the run.")
	fs.StringVar(&config.ConfigFile, "config", "", "YAML file with default values.")
	fs.StringVar(&config.Completion, "completion", "", "Generate a completion script for the given shell (bash, zsh, fish, powershell).")
	fs.BoolVar(&config.Version, "version", false, "Display version information and exit.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	config, err := resolve(fs, config)
	if err != nil {
		fmt.Fprintf(errorWriter, "Error: %v\n", err)
		return AppConfig{}, err
	}
	return config, nil
}

// resolve applies the file and environment layers to the parsed flags and
// validates the result.
func resolve(fs *flag.FlagSet, config AppConfig) (AppConfig, error) {
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if !isFlagSet(fs, "config") {
		config.ConfigFile = getEnvString("CONFIG", config.ConfigFile)
	}
	if config.ConfigFile != "" {
		file, err := LoadFile(config.ConfigFile)
		if err != nil {
			return AppConfig{}, err
		}
		file.apply(&config, fs)
	}
	applyEnvOverrides(&config, fs)

	if err := config.Validate(); err != nil {
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the consistency of the configuration.
func (c AppConfig) Validate() error {
	for _, kp := range []struct {
		field string
		value int
	}{
		{"ashlock-turns", c.Ashlock.Turns},
		{"ashlock-repetitions", c.Ashlock.Repetitions},
		{"transitive-turns", c.Transitive.Turns},
		{"transitive-repetitions", c.Transitive.Repetitions},
		{"v-short-turns", c.TransitiveVShort.Turns},
		{"v-short-repetitions", c.TransitiveVShort.Repetitions},
		{"opponents", c.Opponents},
	} {
		if kp.value <= 0 {
			return apperrors.ValidationError{Field: kp.field, Message: fmt.Sprintf("must be positive, got %d", kp.value)}
		}
	}
	if _, err := fingerprint.GridSize(c.Step); err != nil {
		return apperrors.ValidationError{Field: "step", Message: err.Error()}
	}
	if c.Workers < 0 {
		return apperrors.ValidationError{Field: "workers", Message: "must not be negative"}
	}
	if c.Timeout < 0 {
		return apperrors.ValidationError{Field: "timeout", Message: "must not be negative"}
	}
	if _, ok := game.ByName(c.Probe); !ok {
		return apperrors.ValidationError{Field: "probe", Message: fmt.Sprintf("unknown strategy %q", c.Probe)}
	}
	if _, err := c.Kinds(); err != nil {
		return apperrors.ValidationError{Field: "kinds", Message: err.Error()}
	}
	switch c.Theme {
	case "auto", "dark", "light":
	default:
		return apperrors.ValidationError{Field: "theme", Message: fmt.Sprintf("unknown theme %q", c.Theme)}
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.ValidationError{Field: "log-level", Message: err.Error()}
	}
	if c.Quiet && c.Verbose {
		return apperrors.ValidationError{Field: "quiet", Message: "cannot be combined with verbose"}
	}
	return nil
}

// Kinds resolves KindsList. The result keeps report order.
func (c AppConfig) Kinds() ([]fingerprint.Kind, error) {
	list := strings.TrimSpace(c.KindsList)
	if list == "" || strings.EqualFold(list, "all") {
		return fingerprint.Kinds(), nil
	}
	selected := make(map[fingerprint.Kind]bool)
	for _, part := range strings.Split(list, ",") {
		k, err := fingerprint.ParseKind(part)
		if err != nil {
			return nil, err
		}
		selected[k] = true
	}
	var kinds []fingerprint.Kind
	for _, k := range fingerprint.Kinds() {
		if selected[k] {
			kinds = append(kinds, k)
		}
	}
	return kinds, nil
}

// Params returns the simulation parameters of every kind.
func (c AppConfig) Params() map[fingerprint.Kind]fingerprint.Params {
	build := func(kp KindParams) fingerprint.Params {
		return fingerprint.Params{Turns: kp.Turns, Repetitions: kp.Repetitions, Seed: c.Seed, Workers: c.Workers}
	}
	return map[fingerprint.Kind]fingerprint.Params{
		fingerprint.Ashlock:          build(c.Ashlock),
		fingerprint.Transitive:       build(c.Transitive),
		fingerprint.TransitiveVShort: build(c.TransitiveVShort),
	}
}
