package fingerprint

import (
	"context"
	"errors"

	"github.com/agbru/fingerprints/internal/game"
	"github.com/agbru/fingerprints/internal/progress"
)

// DefaultOpponents is the number of Random opponents of the transitive
// fingerprint.
const DefaultOpponents = 30

// TransitiveResult holds, for each opponent, the strategy's cooperation rate
// on every turn averaged over repetitions.
type TransitiveResult struct {
	Opponents []string
	Data      [][]float64
}

// RandomOpponents returns Random players whose cooperation probabilities are
// n evenly spaced values over [0, 1].
func RandomOpponents(n int) []game.Player {
	out := make([]game.Player, n)
	for i, p := range Linspace(n) {
		out[i] = game.Random{P: p}
	}
	return out
}

// ComputeTransitive plays player against each opponent.
func ComputeTransitive(ctx context.Context, player game.Player, opponents []game.Player, params Params, cb progress.ProgressCallback) (*TransitiveResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(opponents) == 0 {
		return nil, errors.New("transitive fingerprint needs at least one opponent")
	}

	data := make([][]float64, len(opponents))
	err := runTasks(ctx, len(opponents), params.workers(), cb, func(idx int) {
		// Deterministic pairs play the same match every time.
		reps := params.Repetitions
		if !game.IsStochastic(player) && !game.IsStochastic(opponents[idx]) {
			reps = 1
		}
		rates := make([]float64, params.Turns)
		for rep := 0; rep < reps; rep++ {
			m := game.Play(player, opponents[idx], params.Turns, params.rng(idx, rep))
			for t, c := range m.Cooperation() {
				rates[t] += c
			}
		}
		for t := range rates {
			rates[t] /= float64(reps)
		}
		data[idx] = rates
	})
	if err != nil {
		return nil, err
	}

	names := make([]string, len(opponents))
	for i, o := range opponents {
		names[i] = o.Name()
	}
	return &TransitiveResult{Opponents: names, Data: data}, nil
}
