package fingerprint

import (
	"context"
	"fmt"
	"math"

	"github.com/agbru/fingerprints/internal/game"
	"github.com/agbru/fingerprints/internal/progress"
)

// DefaultStep is the grid spacing of the Ashlock fingerprint.
const DefaultStep = 0.01

// Point is one cell of an Ashlock fingerprint.
type Point struct {
	X, Y  float64
	Score float64
}

// AshlockResult holds the score at every grid point. Points are ordered
// with X as the outer loop and Y as the inner loop.
type AshlockResult struct {
	Probe  string
	Num    int
	Points []Point
}

// Grid returns the scores as rows of constant Y, with Y increasing from the
// first row to the last and X increasing along each row.
func (r *AshlockResult) Grid() [][]float64 {
	grid := make([][]float64, r.Num)
	for j := range grid {
		grid[j] = make([]float64, r.Num)
	}
	for idx, pt := range r.Points {
		i, j := idx/r.Num, idx%r.Num
		grid[j][i] = pt.Score
	}
	return grid
}

// GridSize returns the number of points per axis for a step: one more than
// the number of whole steps that fit in [0, 1].
func GridSize(step float64) (int, error) {
	if !(step > 0 && step <= 1) {
		return 0, fmt.Errorf("step must be in (0, 1], got %g", step)
	}
	// Tolerate representation error so that 1/0.1 counts as 10 steps.
	return int(math.Floor(1/step+1e-9)) + 1, nil
}

// Linspace returns num evenly spaced values over [0, 1].
func Linspace(num int) []float64 {
	out := make([]float64, num)
	if num == 1 {
		return out
	}
	for i := range out {
		out[i] = float64(i) / float64(num-1)
	}
	return out
}

// ProbeAt returns the probe player used at grid point (x, y). Below the
// anti-diagonal the probe is a Joss-Ann transformation of the base probe;
// on and above it, the dual of the transformation at the mirrored point.
func ProbeAt(probe game.Player, x, y float64) game.Player {
	if x+y < 1 {
		return game.JossAnn(probe, x, y)
	}
	return game.Dual(game.JossAnn(probe, 1-x, 1-y))
}

// ComputeAshlock plays player against the probe transformed at every point
// of a grid with the given step.
func ComputeAshlock(ctx context.Context, player, probe game.Player, step float64, params Params, cb progress.ProgressCallback) (*AshlockResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	num, err := GridSize(step)
	if err != nil {
		return nil, err
	}
	axis := Linspace(num)

	points := make([]Point, num*num)
	for i, x := range axis {
		for j, y := range axis {
			points[i*num+j] = Point{X: x, Y: y}
		}
	}

	err = runTasks(ctx, len(points), params.workers(), cb, func(idx int) {
		pt := &points[idx]
		opponent := ProbeAt(probe, pt.X, pt.Y)
		var total float64
		for rep := 0; rep < params.Repetitions; rep++ {
			m := game.Play(player, opponent, params.Turns, params.rng(idx, rep))
			score, _ := m.FinalScorePerTurn()
			total += score
		}
		pt.Score = total / float64(params.Repetitions)
	})
	if err != nil {
		return nil, err
	}
	return &AshlockResult{Probe: probe.Name(), Num: num, Points: points}, nil
}
