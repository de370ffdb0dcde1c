package game

import "math/rand/v2"

// TitForTat cooperates first and then copies the opponent's last move.
type TitForTat struct{}

func (TitForTat) Name() string { return "Tit For Tat" }

func (TitForTat) Strategy(h History, _ *rand.Rand) Action {
	if h.Len() == 0 {
		return C
	}
	return h.LastOpp()
}

// TitFor2Tats defects only after two consecutive opponent defections.
type TitFor2Tats struct{}

func (TitFor2Tats) Name() string { return "Tit For 2 Tats" }

func (TitFor2Tats) Strategy(h History, _ *rand.Rand) Action {
	n := h.Len()
	if n < 2 {
		return C
	}
	if h.Opp(n-1) == D && h.Opp(n-2) == D {
		return D
	}
	return C
}

// SuspiciousTitForTat defects first and then copies the opponent.
type SuspiciousTitForTat struct{}

func (SuspiciousTitForTat) Name() string { return "Suspicious Tit For Tat" }

func (SuspiciousTitForTat) Strategy(h History, _ *rand.Rand) Action {
	if h.Len() == 0 {
		return D
	}
	return h.LastOpp()
}

// HardTitForTat defects if the opponent defected in any of the last three
// turns.
type HardTitForTat struct{}

func (HardTitForTat) Name() string { return "Hard Tit For Tat" }

func (HardTitForTat) Strategy(h History, _ *rand.Rand) Action {
	n := h.Len()
	for i := max(0, n-3); i < n; i++ {
		if h.Opp(i) == D {
			return D
		}
	}
	return C
}

// ForgivingTitForTat retaliates against the last defection only when the
// opponent has defected in more than 10% of the turns so far.
type ForgivingTitForTat struct{}

func (ForgivingTitForTat) Name() string { return "Forgiving Tit For Tat" }

func (ForgivingTitForTat) Strategy(h History, _ *rand.Rand) Action {
	n := h.Len()
	if n == 0 {
		return C
	}
	if h.LastOpp() == D && float64(h.OppCount(D))/float64(n) > 0.1 {
		return D
	}
	return C
}

// Bully defects first and then plays the opposite of the opponent's last
// move.
type Bully struct{}

func (Bully) Name() string { return "Bully" }

func (Bully) Strategy(h History, _ *rand.Rand) Action {
	if h.Len() == 0 {
		return D
	}
	return h.LastOpp().Flip()
}
