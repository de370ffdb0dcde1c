package game

// Action is a single move of one player in one turn.
type Action uint8

const (
	// C is cooperation.
	C Action = iota
	// D is defection.
	D
)

// Flip returns the opposite action.
func (a Action) Flip() Action {
	if a == C {
		return D
	}
	return C
}

// String returns "C" or "D".
func (a Action) String() string {
	if a == C {
		return "C"
	}
	return "D"
}
