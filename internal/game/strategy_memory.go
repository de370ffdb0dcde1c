package game

import "math/rand/v2"

// Grudger cooperates until the opponent defects once, then defects forever.
type Grudger struct{}

func (Grudger) Name() string { return "Grudger" }

func (Grudger) Strategy(h History, _ *rand.Rand) Action {
	if h.OppCount(D) > 0 {
		return D
	}
	return C
}

// WinStayLoseShift repeats its last move after a reward or temptation payoff
// and switches otherwise.
type WinStayLoseShift struct{}

func (WinStayLoseShift) Name() string { return "Win-Stay Lose-Shift" }

func (WinStayLoseShift) Strategy(h History, _ *rand.Rand) Action {
	if h.Len() == 0 {
		return C
	}
	last := h.LastOwn()
	if h.LastOpp() == C {
		return last
	}
	return last.Flip()
}

// Appeaser switches its move whenever the opponent defects.
type Appeaser struct{}

func (Appeaser) Name() string { return "Appeaser" }

func (Appeaser) Strategy(h History, _ *rand.Rand) Action {
	if h.Len() == 0 {
		return C
	}
	if h.LastOpp() == D {
		return h.LastOwn().Flip()
	}
	return h.LastOwn()
}

// GoByMajority cooperates while the opponent has cooperated at least as often
// as it has defected.
type GoByMajority struct{}

func (GoByMajority) Name() string { return "Go By Majority" }

func (GoByMajority) Strategy(h History, _ *rand.Rand) Action {
	if h.OppCount(C) >= h.OppCount(D) {
		return C
	}
	return D
}

// Prober opens with D, C, C. If the opponent did not retaliate on turns two
// and three it defects for the rest of the match, otherwise it plays
// Tit For Tat.
type Prober struct{}

func (Prober) Name() string { return "Prober" }

func (Prober) Strategy(h History, _ *rand.Rand) Action {
	n := h.Len()
	switch {
	case n == 0:
		return D
	case n < 3:
		return C
	case h.Opp(1) == C && h.Opp(2) == C:
		return D
	}
	return h.LastOpp()
}

// Adaptive opens with six cooperations and five defections, then plays the
// move that has earned the higher average payoff so far. Each turn rescans
// the whole history, which makes it a long-running strategy.
type Adaptive struct{}

func (Adaptive) Name() string { return "Adaptive" }

func (Adaptive) LongRunTime() bool { return true }

func (Adaptive) Stochastic() bool { return false }

func (Adaptive) Strategy(h History, _ *rand.Rand) Action {
	n := h.Len()
	switch {
	case n < 6:
		return C
	case n < 11:
		return D
	}
	var sum, count [2]int
	for i := 0; i < n; i++ {
		own := h.Own(i)
		s, _ := Payoff(own, h.Opp(i))
		sum[own] += s
		count[own]++
	}
	if count[C] == 0 || count[D] == 0 {
		return h.LastOwn()
	}
	if float64(sum[C])/float64(count[C]) > float64(sum[D])/float64(count[D]) {
		return C
	}
	return D
}
