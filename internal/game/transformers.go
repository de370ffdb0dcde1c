package game

import "math/rand/v2"

// JossAnn wraps p so that it cooperates with probability x, defects with
// probability y and otherwise plays p's move. When x+y exceeds one both are
// scaled down proportionally.
func JossAnn(p Player, x, y float64) Player {
	if s := x + y; s > 1 {
		x, y = x/s, y/s
	}
	return jossAnn{inner: p, x: x, y: y}
}

type jossAnn struct {
	inner Player
	x, y  float64
}

func (j jossAnn) Name() string { return "Joss-Ann " + j.inner.Name() }

func (j jossAnn) Unwrap() Player { return j.inner }

func (j jossAnn) LongRunTime() bool { return IsLongRunTime(j.inner) }

func (j jossAnn) Stochastic() bool {
	return (j.x > 0 && j.x < 1) || (j.y > 0 && j.y < 1) || (j.x+j.y < 1 && IsStochastic(j.inner))
}

func (j jossAnn) Strategy(h History, rng *rand.Rand) Action {
	proposed := j.inner.Strategy(h, rng)
	r := rng.Float64()
	switch {
	case r < j.x:
		return C
	case r < j.x+j.y:
		return D
	}
	return proposed
}

// Dual wraps p so that it plays the opposite of what p would play had its
// own past moves been inverted.
func Dual(p Player) Player {
	return dual{inner: p}
}

type dual struct {
	inner Player
}

func (d dual) Name() string { return "Dual " + d.inner.Name() }

func (d dual) Unwrap() Player { return d.inner }

func (d dual) LongRunTime() bool { return IsLongRunTime(d.inner) }

func (d dual) Stochastic() bool { return IsStochastic(d.inner) }

func (d dual) Strategy(h History, rng *rand.Rand) Action {
	return d.inner.Strategy(h.Flipped(), rng).Flip()
}
