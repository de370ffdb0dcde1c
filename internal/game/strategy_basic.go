package game

import (
	"fmt"
	"math/rand/v2"
)

// Cooperator always cooperates.
type Cooperator struct{}

func (Cooperator) Name() string { return "Cooperator" }

func (Cooperator) Strategy(History, *rand.Rand) Action { return C }

// Defector always defects.
type Defector struct{}

func (Defector) Name() string { return "Defector" }

func (Defector) Strategy(History, *rand.Rand) Action { return D }

// Random cooperates with probability P.
type Random struct {
	P float64
}

func (r Random) Name() string { return fmt.Sprintf("Random: %g", r.P) }

func (Random) LongRunTime() bool { return false }

// Stochastic is false for the degenerate probabilities zero and one.
func (r Random) Stochastic() bool { return r.P > 0 && r.P < 1 }

func (r Random) Strategy(_ History, rng *rand.Rand) Action {
	if r.P <= 0 {
		return D
	}
	if r.P >= 1 {
		return C
	}
	if rng.Float64() < r.P {
		return C
	}
	return D
}

// Alternator starts by cooperating and then alternates.
type Alternator struct{}

func (Alternator) Name() string { return "Alternator" }

func (Alternator) Strategy(h History, _ *rand.Rand) Action {
	if h.Len() == 0 {
		return C
	}
	return h.LastOwn().Flip()
}

// CyclerCCD repeats the cycle C, C, D.
type CyclerCCD struct{}

func (CyclerCCD) Name() string { return "Cycler CCD" }

func (CyclerCCD) Strategy(h History, _ *rand.Rand) Action {
	if h.Len()%3 == 2 {
		return D
	}
	return C
}
