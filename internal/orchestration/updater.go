package orchestration

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/fingerprints/internal/artifact"
	"github.com/agbru/fingerprints/internal/cache"
	apperrors "github.com/agbru/fingerprints/internal/errors"
	"github.com/agbru/fingerprints/internal/fingerprint"
	"github.com/agbru/fingerprints/internal/game"
	"github.com/agbru/fingerprints/internal/game/memoryone"
	"github.com/agbru/fingerprints/internal/logging"
	"github.com/agbru/fingerprints/internal/metrics"
	"github.com/agbru/fingerprints/internal/progress"
	"github.com/agbru/fingerprints/internal/report"
	"github.com/agbru/fingerprints/internal/source"
)

// ProgressBufferMultiplier sizes the progress channel per pending task so a
// slow display rarely drops updates.
const ProgressBufferMultiplier = 5

// progressStep is the smallest progress change forwarded to the display.
const progressStep = 0.01

const tracerName = "github.com/agbru/fingerprints/internal/orchestration"

// Group is a titled list of strategies, reported under its own heading.
type Group struct {
	Title   string
	Players []game.Player
}

// DefaultGroups returns the short-run-time classic strategies followed by
// the memory-one table strategies.
func DefaultGroups() []Group {
	return []Group{
		{Title: report.LibraryGroup, Players: game.ShortRunTime()},
		{Title: report.TableGroup, Players: memoryone.All()},
	}
}

// Label is the name a strategy is cached and reported under: its original
// name when it has one, otherwise its display name.
func Label(p game.Player) string {
	if o, ok := p.(game.OriginalNamer); ok {
		return o.OriginalName()
	}
	return p.Name()
}

// Task is one (strategy, kind) pair of the pass.
type Task struct {
	Group  string
	Player game.Player
	Name   string
	Kind   fingerprint.Kind
	// Hash is the content hash of the strategy's source.
	Hash string
	// Stale reports that the cache has no entry or a different hash.
	Stale bool
	// HashErr is set when no source text could be found for the strategy.
	HashErr error
}

// Status is the outcome of a task.
type Status int

const (
	StatusCached Status = iota
	StatusComputed
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusCached:
		return "cached"
	case StatusComputed:
		return "computed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of one task.
type Result struct {
	Task
	Status   Status
	Files    artifact.Files
	Duration time.Duration
	Err      error
}

// Counts tallies results by status.
type Counts struct {
	Cached, Computed, Failed int
}

// Summarize counts results by status.
func Summarize(results []Result) Counts {
	var c Counts
	for _, r := range results {
		switch r.Status {
		case StatusCached:
			c.Cached++
		case StatusComputed:
			c.Computed++
		case StatusFailed:
			c.Failed++
		}
	}
	return c
}

// Updater runs the update pass over a cache.
type Updater struct {
	cache         *cache.DB
	introspector  *source.Introspector
	fingerprinter Fingerprinter
	kinds         []fingerprint.Kind
	force         bool
	logger        logging.Logger
	metrics       *metrics.Recorder
	reporter      ProgressReporter
	out           io.Writer
	tracer        trace.Tracer
}

// Option configures an Updater.
type Option func(*Updater)

// WithKinds restricts the pass to the given kinds.
func WithKinds(kinds ...fingerprint.Kind) Option {
	return func(u *Updater) { u.kinds = kinds }
}

// WithForce recomputes every fingerprint regardless of the cache.
func WithForce(force bool) Option {
	return func(u *Updater) { u.force = force }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(u *Updater) { u.logger = l }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m *metrics.Recorder) Option {
	return func(u *Updater) { u.metrics = m }
}

// WithProgressReporter displays progress of the computations on out.
func WithProgressReporter(r ProgressReporter, out io.Writer) Option {
	return func(u *Updater) {
		u.reporter = r
		u.out = out
	}
}

// WithTracer sets the tracer used for one span per computation.
func WithTracer(t trace.Tracer) Option {
	return func(u *Updater) { u.tracer = t }
}

// NewUpdater creates an updater. By default it handles every kind, logs
// nothing and displays no progress.
func NewUpdater(db *cache.DB, in *source.Introspector, fp Fingerprinter, opts ...Option) *Updater {
	u := &Updater{
		cache:         db,
		introspector:  in,
		fingerprinter: fp,
		kinds:         fingerprint.Kinds(),
		logger:        logging.NewZerologAdapter(zerolog.Nop()),
		reporter:      NullProgressReporter{},
		out:           io.Discard,
		tracer:        otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Plan hashes every strategy and lists the tasks of the pass in order,
// without computing anything.
func (u *Updater) Plan(groups []Group) []Task {
	var tasks []Task
	for _, g := range groups {
		for _, p := range g.Players {
			name := Label(p)
			hash, err := u.introspector.Signature(p)
			for _, kind := range u.kinds {
				t := Task{Group: g.Title, Player: p, Name: name, Kind: kind, Hash: hash, HashErr: err}
				if err == nil {
					t.Stale = u.cache.Stale(cache.Key{Name: name, Kind: string(kind)}, hash)
				}
				tasks = append(tasks, t)
			}
		}
	}
	return tasks
}

func (u *Updater) pending(t Task) bool {
	return t.HashErr == nil && (t.Stale || u.force)
}

// Run executes the pass. Strategies are processed one after the other; a
// fingerprint is computed only when its cache entry is stale. Failures of
// individual fingerprints are logged and returned joined after the pass
// completes. Cancellation and cache write errors stop the pass at once.
func (u *Updater) Run(ctx context.Context, groups []Group) ([]Result, error) {
	tasks := u.Plan(groups)
	numPending := 0
	for _, t := range tasks {
		if u.pending(t) {
			numPending++
		}
	}

	progressChan := make(chan progress.ProgressUpdate, max(numPending, 1)*ProgressBufferMultiplier)
	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go u.reporter.DisplayProgress(&displayWg, progressChan, numPending, u.out)

	results, failures, err := u.runTasks(ctx, tasks, progressChan)

	close(progressChan)
	displayWg.Wait()

	if err != nil {
		return results, err
	}
	return results, errors.Join(failures...)
}

func (u *Updater) runTasks(ctx context.Context, tasks []Task, progressChan chan<- progress.ProgressUpdate) ([]Result, []error, error) {
	results := make([]Result, 0, len(tasks))
	var failures []error
	index := 0

	for _, t := range tasks {
		if err := ctx.Err(); err != nil {
			return results, failures, err
		}
		fields := []logging.Field{logging.Strategy(t.Name), logging.Kind(string(t.Kind))}

		switch {
		case t.HashErr != nil:
			err := apperrors.FingerprintError{Strategy: t.Name, Kind: string(t.Kind), Cause: t.HashErr}
			u.logger.Error("cannot hash strategy source", t.HashErr, fields...)
			u.metrics.Failed(string(t.Kind))
			results = append(results, Result{Task: t, Status: StatusFailed, Err: err})
			failures = append(failures, err)

		case !u.pending(t):
			u.logger.Debug("fingerprint up to date", fields...)
			u.metrics.CacheHit(string(t.Kind))
			results = append(results, Result{Task: t, Status: StatusCached, Files: u.fingerprinter.Paths(t.Kind, t.Name)})

		default:
			cb := progress.Throttle(progress.ToChannel(progressChan, index), progressStep)
			index++
			res, err := u.compute(ctx, t, cb)
			results = append(results, res)
			if err != nil {
				return results, failures, err
			}
			if res.Err != nil {
				failures = append(failures, res.Err)
			}
		}
	}
	return results, failures, nil
}

// compute generates one fingerprint and records its hash. The returned
// error is fatal for the pass; a failed computation is reported in the
// result only.
func (u *Updater) compute(ctx context.Context, t Task, cb progress.ProgressCallback) (Result, error) {
	ctx, span := u.tracer.Start(ctx, "fingerprint.generate", trace.WithAttributes(
		attribute.String("strategy", t.Name),
		attribute.String("kind", string(t.Kind)),
		attribute.String("hash", t.Hash),
	))
	defer span.End()

	fields := []logging.Field{logging.Strategy(t.Name), logging.Kind(string(t.Kind))}
	u.logger.Debug("computing fingerprint", append(fields, logging.Hash(t.Hash))...)

	start := time.Now()
	files, err := u.fingerprinter.Generate(ctx, t.Player, t.Name, t.Kind, cb)
	res := Result{Task: t, Files: files, Duration: time.Since(start)}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fingerprint failed")
		res.Status = StatusFailed
		res.Err = apperrors.FingerprintError{Strategy: t.Name, Kind: string(t.Kind), Cause: err}
		if apperrors.IsContextError(err) {
			return res, res.Err
		}
		u.metrics.Failed(string(t.Kind))
		u.logger.Error("fingerprint failed", err, fields...)
		return res, nil
	}

	if err := u.cache.Record(cache.Key{Name: t.Name, Kind: string(t.Kind)}, t.Hash); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "cache write failed")
		res.Status = StatusFailed
		res.Err = err
		return res, err
	}
	res.Status = StatusComputed
	u.metrics.Computed(string(t.Kind), res.Duration)
	u.logger.Info("fingerprint computed", append(fields, logging.Float64("seconds", res.Duration.Seconds()))...)
	return res, nil
}

// Document builds the report for groups. Every strategy gets a section
// whether or not it was recomputed.
func (u *Updater) Document(header report.Header, groups []Group) *report.Document {
	doc := &report.Document{Header: header}
	for _, g := range groups {
		for _, p := range g.Players {
			name := Label(p)
			s := report.Section{Name: name}
			for _, kind := range u.kinds {
				s.Links = append(s.Links, report.Link{Kind: kind, Files: u.fingerprinter.Paths(kind, name)})
			}
			doc.AddSection(g.Title, s)
		}
	}
	return doc
}
