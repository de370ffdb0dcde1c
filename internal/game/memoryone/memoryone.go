// Package memoryone provides a group of strategies defined by a table rather
// than by code: each one is a memory-one player given by its probability of
// cooperating after each of the four possible previous outcomes.
//
// These players have no source text of their own. Their identity for change
// detection is their [Player.Definition].
package memoryone

import (
	"fmt"
	"math/rand/v2"

	"github.com/agbru/fingerprints/internal/game"
)

// Version identifies the table in generated reports.
const Version = "0.4.0"

// Vector holds the probability of cooperating after the previous outcomes
// CC, CD, DC and DD, where the first letter is the player's own move.
type Vector [4]float64

// Player is a memory-one strategy built from a table row.
type Player struct {
	name         string
	originalName string
	start        float64
	vector       Vector
}

// New builds a memory-one player. start is the probability of cooperating
// on the first turn.
func New(name, originalName string, start float64, v Vector) Player {
	return Player{name: name, originalName: originalName, start: start, vector: v}
}

// Name returns the display name.
func (p Player) Name() string { return p.name }

// OriginalName returns the table key.
func (p Player) OriginalName() string { return p.originalName }

// Vector returns the four-vector.
func (p Player) Vector() Vector { return p.vector }

// Definition returns a canonical text of the table row. Any change to the
// row changes the text.
func (p Player) Definition() string {
	v := p.vector
	return fmt.Sprintf("%s start=%g vector=%g,%g,%g,%g", p.originalName, p.start, v[0], v[1], v[2], v[3])
}

// LongRunTime is always false.
func (Player) LongRunTime() bool { return false }

// Stochastic reports whether any probability of the row lies strictly
// between zero and one.
func (p Player) Stochastic() bool {
	for _, v := range append([]float64{p.start}, p.vector[:]...) {
		if v > 0 && v < 1 {
			return true
		}
	}
	return false
}

// Strategy implements game.Player.
func (p Player) Strategy(h game.History, rng *rand.Rand) game.Action {
	prob := p.start
	if h.Len() > 0 {
		idx := 0
		if h.LastOwn() == game.D {
			idx += 2
		}
		if h.LastOpp() == game.D {
			idx++
		}
		prob = p.vector[idx]
	}
	switch {
	case prob >= 1:
		return game.C
	case prob <= 0:
		return game.D
	case rng.Float64() < prob:
		return game.C
	}
	return game.D
}

var table = []Player{
	New("Firm But Fair", "FirmButFair", 1, Vector{1, 0, 1, 2.0 / 3}),
	New("Generous Tit For Tat", "GTFT", 1, Vector{1, 1.0 / 3, 1, 1.0 / 3}),
	New("Soft Joss", "SoftJoss", 1, Vector{1, 0.1, 1, 0.1}),
	New("Stochastic Cooperator", "StochasticCooperator", 1, Vector{0.935, 0.229, 0.266, 0.42}),
	New("Stochastic WSLS", "StochasticWSLS", 1, Vector{0.95, 0.05, 0.05, 0.95}),
	New("ZD-Extort-2", "ZDExtort2", 1, Vector{8.0 / 9, 0.5, 1.0 / 3, 0}),
	New("ZD-GTFT-2", "ZDGTFT2", 1, Vector{1, 1.0 / 8, 1, 1.0 / 4}),
}

// All returns every table player in table order.
func All() []game.Player {
	out := make([]game.Player, len(table))
	for i, p := range table {
		out[i] = p
	}
	return out
}

// ByOriginalName looks up a table player by its key.
func ByOriginalName(key string) (Player, bool) {
	for _, p := range table {
		if p.originalName == key {
			return p, true
		}
	}
	return Player{}, false
}
