package fingerprint

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/agbru/fingerprints/internal/game"
)

func TestKinds(t *testing.T) {
	t.Parallel()
	tests := []struct {
		kind   Kind
		prefix string
	}{
		{Ashlock, ""},
		{Transitive, "transitive_"},
		{TransitiveVShort, "transitive_v_short_"},
	}
	for _, tt := range tests {
		if got := tt.kind.Prefix(); got != tt.prefix {
			t.Errorf("%s.Prefix() = %q, want %q", tt.kind, got, tt.prefix)
		}
		parsed, err := ParseKind(string(tt.kind))
		if err != nil || parsed != tt.kind {
			t.Errorf("ParseKind(%q) = %q, %v", tt.kind, parsed, err)
		}
	}
	if _, err := ParseKind("spatial"); err == nil {
		t.Error("ParseKind should reject unknown kinds")
	}
	if k, err := ParseKind("transitive"); err != nil || k != Transitive {
		t.Errorf("ParseKind should ignore case, got %q, %v", k, err)
	}
}

func TestParamsValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{"defaults", DefaultParams(), false},
		{"zero turns", Params{Turns: 0, Repetitions: 1}, true},
		{"zero repetitions", Params{Turns: 1, Repetitions: 0}, true},
		{"negative workers", Params{Turns: 1, Repetitions: 1, Workers: -1}, true},
	}
	for _, tt := range tests {
		if err := tt.params.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestGridSize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		step    float64
		want    int
		wantErr bool
	}{
		{0.01, 101, false},
		{0.1, 11, false},
		{0.25, 5, false},
		{0.5, 3, false},
		{1, 2, false},
		{0, 0, true},
		{-0.1, 0, true},
		{1.5, 0, true},
	}
	for _, tt := range tests {
		got, err := GridSize(tt.step)
		if (err != nil) != tt.wantErr {
			t.Errorf("GridSize(%g) error = %v, wantErr %v", tt.step, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("GridSize(%g) = %d, want %d", tt.step, got, tt.want)
		}
	}
}

func TestLinspace(t *testing.T) {
	t.Parallel()
	if diff := cmp.Diff([]float64{0, 0.25, 0.5, 0.75, 1}, Linspace(5)); diff != "" {
		t.Errorf("Linspace(5) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0}, Linspace(1)); diff != "" {
		t.Errorf("Linspace(1) mismatch (-want +got):\n%s", diff)
	}
}

func TestAshlockCorners(t *testing.T) {
	t.Parallel()
	params := Params{Turns: 20, Repetitions: 2, Seed: 1}
	res, err := ComputeAshlock(context.Background(), game.Cooperator{}, game.TitForTat{}, 0.5, params, nil)
	if err != nil {
		t.Fatalf("ComputeAshlock: %v", err)
	}
	if res.Num != 3 || len(res.Points) != 9 {
		t.Fatalf("got %d points on a %d grid, want 9 on 3", len(res.Points), res.Num)
	}

	tests := []struct {
		idx   int
		x, y  float64
		score float64
	}{
		{0, 0, 0, game.Reward}, // plain Tit For Tat
		{2, 0, 1, game.Sucker}, // dual of an unconditional cooperator
		{6, 1, 0, game.Reward}, // dual of an unconditional defector
		{8, 1, 1, game.Sucker}, // dual Tit For Tat
	}
	for _, tt := range tests {
		pt := res.Points[tt.idx]
		if pt.X != tt.x || pt.Y != tt.y {
			t.Errorf("point %d at (%g, %g), want (%g, %g)", tt.idx, pt.X, pt.Y, tt.x, tt.y)
		}
		if pt.Score != tt.score {
			t.Errorf("score at (%g, %g) = %g, want %g", tt.x, tt.y, pt.Score, tt.score)
		}
	}

	grid := res.Grid()
	if grid[2][0] != game.Sucker || grid[0][2] != game.Reward {
		t.Errorf("Grid() should index rows by y, got %v", grid)
	}
}

func TestAshlockDeterministicAcrossWorkers(t *testing.T) {
	t.Parallel()
	run := func(workers int) *AshlockResult {
		params := Params{Turns: 15, Repetitions: 3, Seed: 42, Workers: workers}
		res, err := ComputeAshlock(context.Background(), game.Random{P: 0.5}, game.TitForTat{}, 0.25, params, nil)
		if err != nil {
			t.Fatalf("ComputeAshlock: %v", err)
		}
		return res
	}
	if diff := cmp.Diff(run(1), run(4)); diff != "" {
		t.Errorf("results depend on worker count (-1 worker +4 workers):\n%s", diff)
	}
}

func TestAshlockProgress(t *testing.T) {
	t.Parallel()
	var (
		mu   sync.Mutex
		seen []float64
	)
	cb := func(v float64) {
		mu.Lock()
		seen = append(seen, v)
		mu.Unlock()
	}
	params := Params{Turns: 5, Repetitions: 1, Workers: 3}
	if _, err := ComputeAshlock(context.Background(), game.Defector{}, game.TitForTat{}, 0.5, params, cb); err != nil {
		t.Fatalf("ComputeAshlock: %v", err)
	}
	if len(seen) != 9 {
		t.Fatalf("got %d progress updates, want 9", len(seen))
	}
	for i := 1; i < len(seen); i++ {
		if seen[i] <= seen[i-1] {
			t.Errorf("progress should increase, got %v", seen)
			break
		}
	}
	if seen[len(seen)-1] != 1 {
		t.Errorf("last progress = %g, want 1", seen[len(seen)-1])
	}
}

func TestComputeCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ComputeAshlock(ctx, game.TitForTat{}, game.TitForTat{}, 0.1, DefaultParams(), nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ComputeAshlock error = %v, want context.Canceled", err)
	}
	_, err = ComputeTransitive(ctx, game.TitForTat{}, RandomOpponents(5), DefaultParams(), nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ComputeTransitive error = %v, want context.Canceled", err)
	}
}

func TestComputeInvalidInput(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	if _, err := ComputeAshlock(ctx, game.TitForTat{}, game.TitForTat{}, 0, DefaultParams(), nil); err == nil {
		t.Error("ComputeAshlock should reject a zero step")
	}
	if _, err := ComputeTransitive(ctx, game.TitForTat{}, nil, DefaultParams(), nil); err == nil {
		t.Error("ComputeTransitive should reject an empty opponent list")
	}
	if _, err := ComputeTransitive(ctx, game.TitForTat{}, RandomOpponents(2), Params{}, nil); err == nil {
		t.Error("ComputeTransitive should reject zero turns")
	}
}

func TestRandomOpponents(t *testing.T) {
	t.Parallel()
	opponents := RandomOpponents(3)
	var names []string
	for _, o := range opponents {
		names = append(names, o.Name())
	}
	want := []string{"Random: 0", "Random: 0.5", "Random: 1"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("RandomOpponents(3) mismatch (-want +got):\n%s", diff)
	}
}

func TestTransitive(t *testing.T) {
	t.Parallel()
	params := Params{Turns: 4, Repetitions: 3, Seed: 7}
	res, err := ComputeTransitive(context.Background(), game.TitForTat{}, RandomOpponents(2), params, nil)
	if err != nil {
		t.Fatalf("ComputeTransitive: %v", err)
	}
	want := [][]float64{
		{1, 0, 0, 0}, // against a defector
		{1, 1, 1, 1}, // against a cooperator
	}
	if diff := cmp.Diff(want, res.Data); diff != "" {
		t.Errorf("Data mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	if err := res.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if got, want := buf.String(), "1,0,0,0\n1,1,1,1\n"; got != want {
		t.Errorf("WriteCSV() = %q, want %q", got, want)
	}
}

type countingPlayer struct {
	calls *atomic.Int64
}

func (countingPlayer) Name() string { return "Counting" }

func (c countingPlayer) Strategy(game.History, *rand.Rand) game.Action {
	c.calls.Add(1)
	return game.C
}

func TestTransitiveRepetitions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		opponent game.Player
		want     int64
	}{
		{"deterministic pair plays once", game.Defector{}, 3},
		{"stochastic opponent plays every repetition", game.Random{P: 0.5}, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := countingPlayer{calls: new(atomic.Int64)}
			params := Params{Turns: 3, Repetitions: 5, Seed: 1}
			if _, err := ComputeTransitive(context.Background(), p, []game.Player{tt.opponent}, params, nil); err != nil {
				t.Fatalf("ComputeTransitive: %v", err)
			}
			if got := p.calls.Load(); got != tt.want {
				t.Errorf("strategy called %d times, want %d", got, tt.want)
			}
		})
	}
}

func TestAshlockWriteCSV(t *testing.T) {
	t.Parallel()
	res := &AshlockResult{Num: 2, Points: []Point{
		{X: 0, Y: 0, Score: 3},
		{X: 0, Y: 1, Score: 0.25},
		{X: 1, Y: 0, Score: 2.5},
		{X: 1, Y: 1, Score: 1},
	}}
	var buf bytes.Buffer
	if err := res.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	want := "x,y,score\n0,0,3\n0,1,0.25\n1,0,2.5\n1,1,1\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteCSV() = %q, want %q", got, want)
	}
}
