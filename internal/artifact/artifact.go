// Package artifact writes the files produced for one fingerprint of one
// strategy: a heatmap image and the data behind it.
package artifact

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/agbru/fingerprints/internal/fingerprint"
	"github.com/agbru/fingerprints/internal/format"
	"github.com/agbru/fingerprints/internal/game"
	"github.com/agbru/fingerprints/internal/plot"
	"github.com/agbru/fingerprints/internal/progress"
)

// Files locates the artifacts of one fingerprint.
type Files struct {
	Image string
	Data  string
}

// Paths returns the artifact locations for a strategy display name:
// <dir>/<prefix><filename>.png and .csv.
func Paths(dir string, kind fingerprint.Kind, name string) Files {
	base := filepath.Join(dir, kind.Prefix()+format.Filename(name))
	return Files{Image: base + ".png", Data: base + ".csv"}
}

// Config holds the simulation parameters of every kind.
type Config struct {
	// Dir receives the artifacts.
	Dir string
	// Probe is the base probe of the Ashlock fingerprint.
	Probe game.Player
	// Step is the Ashlock grid spacing.
	Step float64
	// Opponents is the number of Random opponents of the transitive kind.
	Opponents int
	// Params holds turns and repetitions per kind.
	Params map[fingerprint.Kind]fingerprint.Params
}

// DefaultConfig reproduces the historical parameters: 200 turns and 50
// repetitions for every kind, a 0.01 grid probed by Tit For Tat and 30
// transitive opponents.
func DefaultConfig(dir string) Config {
	params := make(map[fingerprint.Kind]fingerprint.Params)
	for _, k := range fingerprint.Kinds() {
		params[k] = fingerprint.DefaultParams()
	}
	return Config{
		Dir:       dir,
		Probe:     game.TitForTat{},
		Step:      fingerprint.DefaultStep,
		Opponents: fingerprint.DefaultOpponents,
		Params:    params,
	}
}

// Generator computes fingerprints and writes their artifacts.
type Generator struct {
	cfg          Config
	shortRunTime []game.Player
}

// NewGenerator creates a generator. Strategies used as opponents of the
// short-run-time kind are resolved once.
func NewGenerator(cfg Config) *Generator {
	return &Generator{cfg: cfg, shortRunTime: game.ShortRunTime()}
}

// Paths returns the artifact locations for name under the configured
// directory.
func (g *Generator) Paths(kind fingerprint.Kind, name string) Files {
	return Paths(g.cfg.Dir, kind, name)
}

// Generate computes the fingerprint of kind for p and writes the image and
// data files named after name.
func (g *Generator) Generate(ctx context.Context, p game.Player, name string, kind fingerprint.Kind, cb progress.ProgressCallback) (Files, error) {
	files := g.Paths(kind, name)
	params, ok := g.cfg.Params[kind]
	if !ok {
		params = fingerprint.DefaultParams()
	}

	var (
		img       image.Image
		writeData func(io.Writer) error
	)
	switch kind {
	case fingerprint.Ashlock:
		res, err := fingerprint.ComputeAshlock(ctx, p, g.cfg.Probe, g.cfg.Step, params, cb)
		if err != nil {
			return Files{}, err
		}
		img, err = plot.Heatmap(res.Grid(), plot.Seismic, plot.Options{
			Width: 400, Height: 400, OriginLower: true, BarWidth: 20,
		})
		if err != nil {
			return Files{}, err
		}
		writeData = res.WriteCSV
	case fingerprint.Transitive, fingerprint.TransitiveVShort:
		opponents := g.shortRunTime
		if kind == fingerprint.Transitive {
			opponents = fingerprint.RandomOpponents(g.cfg.Opponents)
		}
		res, err := fingerprint.ComputeTransitive(ctx, p, opponents, params, cb)
		if err != nil {
			return Files{}, err
		}
		img, err = plot.Heatmap(res.Data, plot.Viridis, plot.Options{
			Width: 600, Height: 300, Min: 0, Max: 1, BarWidth: 20,
		})
		if err != nil {
			return Files{}, err
		}
		writeData = res.WriteCSV
	default:
		return Files{}, fmt.Errorf("unsupported fingerprint kind %q", kind)
	}

	if err := writeFile(files.Data, writeData); err != nil {
		return Files{}, err
	}
	if err := writeFile(files.Image, func(w io.Writer) error { return plot.WritePNG(w, img) }); err != nil {
		return Files{}, err
	}
	return files, nil
}

// writeFile creates path and its parent directory, then fills it with fill.
func writeFile(path string, fill func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := fill(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
