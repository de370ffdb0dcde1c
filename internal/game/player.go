package game

import "math/rand/v2"

// Player is a Prisoner's Dilemma strategy.
//
// Strategy must be a pure function of the history and the random source so
// that a single Player value can be shared by concurrent matches.
type Player interface {
	// Name is the display name, e.g. "Tit For Tat".
	Name() string
	// Strategy chooses the next move.
	Strategy(h History, rng *rand.Rand) Action
}

// Classifier is implemented by strategies that report their traits.
// Strategies that do not implement it are taken to be deterministic and
// quick to play.
type Classifier interface {
	// LongRunTime reports strategies that are expensive to play. They are
	// excluded from the short-run-time set.
	LongRunTime() bool
	// Stochastic reports whether the strategy's moves depend on the random
	// source.
	Stochastic() bool
}

// IsLongRunTime reports whether p is classified as long running.
func IsLongRunTime(p Player) bool {
	c, ok := p.(Classifier)
	return ok && c.LongRunTime()
}

// IsStochastic reports whether p may play differently given the same
// history.
func IsStochastic(p Player) bool {
	c, ok := p.(Classifier)
	return ok && c.Stochastic()
}

// Unwrapper is implemented by players built at run time around another
// player (transformers). Such players have no source of their own.
type Unwrapper interface {
	Unwrap() Player
}

// OriginalNamer is implemented by players that carry an identifier distinct
// from their display name.
type OriginalNamer interface {
	OriginalName() string
}
