package game

import "math/rand/v2"

// Standard Prisoner's Dilemma payoffs.
const (
	Reward     = 3 // R: mutual cooperation
	Sucker     = 0 // S: cooperate against a defector
	Temptation = 5 // T: defect against a cooperator
	Punishment = 1 // P: mutual defection
)

// Payoff returns the scores of a player playing a against an opponent
// playing b.
func Payoff(a, b Action) (int, int) {
	switch {
	case a == C && b == C:
		return Reward, Reward
	case a == C && b == D:
		return Sucker, Temptation
	case a == D && b == C:
		return Temptation, Sucker
	default:
		return Punishment, Punishment
	}
}

// Match is the record of a completed match between two players.
type Match struct {
	Actions1 []Action
	Actions2 []Action
}

// Play runs a match of the given number of turns. Both players choose their
// move from the history of previous turns only.
func Play(p1, p2 Player, turns int, rng *rand.Rand) Match {
	m := Match{
		Actions1: make([]Action, turns),
		Actions2: make([]Action, turns),
	}
	for t := 0; t < turns; t++ {
		a1 := p1.Strategy(NewHistory(m.Actions1[:t], m.Actions2[:t]), rng)
		a2 := p2.Strategy(NewHistory(m.Actions2[:t], m.Actions1[:t]), rng)
		m.Actions1[t] = a1
		m.Actions2[t] = a2
	}
	return m
}

// Turns returns the number of turns played.
func (m Match) Turns() int { return len(m.Actions1) }

// Scores returns the total score of each player.
func (m Match) Scores() (int, int) {
	var s1, s2 int
	for t := range m.Actions1 {
		a, b := Payoff(m.Actions1[t], m.Actions2[t])
		s1 += a
		s2 += b
	}
	return s1, s2
}

// FinalScorePerTurn returns each player's total score divided by the number
// of turns. An empty match scores zero.
func (m Match) FinalScorePerTurn() (float64, float64) {
	if len(m.Actions1) == 0 {
		return 0, 0
	}
	s1, s2 := m.Scores()
	n := float64(len(m.Actions1))
	return float64(s1) / n, float64(s2) / n
}

// Cooperation returns, for each turn, 1 if the first player cooperated and
// 0 otherwise.
func (m Match) Cooperation() []float64 {
	out := make([]float64, len(m.Actions1))
	for t, a := range m.Actions1 {
		if a == C {
			out[t] = 1
		}
	}
	return out
}
