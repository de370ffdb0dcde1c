package game

// History is one player's view of a match in progress: its own moves and
// its opponent's moves, oldest first. Both sequences have the same length.
//
// A History is a cheap value; [History.Flipped] returns a view in which the
// player's own moves read inverted, which is how the Dual transformer lets a
// wrapped strategy reason about the moves it "would" have made.
type History struct {
	own     []Action
	opp     []Action
	flipped bool
}

// NewHistory builds a History over the given sequences. The slices are not
// copied.
func NewHistory(own, opp []Action) History {
	return History{own: own, opp: opp}
}

// Len returns the number of completed turns.
func (h History) Len() int { return len(h.own) }

// Own returns the player's move at turn i.
func (h History) Own(i int) Action {
	if h.flipped {
		return h.own[i].Flip()
	}
	return h.own[i]
}

// Opp returns the opponent's move at turn i.
func (h History) Opp(i int) Action { return h.opp[i] }

// LastOwn returns the player's previous move. It must not be called on an
// empty history.
func (h History) LastOwn() Action { return h.Own(len(h.own) - 1) }

// LastOpp returns the opponent's previous move. It must not be called on an
// empty history.
func (h History) LastOpp() Action { return h.opp[len(h.opp)-1] }

// OppCount returns how many times the opponent played a.
func (h History) OppCount(a Action) int {
	n := 0
	for _, x := range h.opp {
		if x == a {
			n++
		}
	}
	return n
}

// Flipped returns a view with the player's own moves inverted.
func (h History) Flipped() History {
	h.flipped = !h.flipped
	return h
}
