package game

import (
	"io/fs"
	"math/rand/v2"
	"strings"
	"testing"
)

// actions parses a "CDDC" string.
func actions(s string) []Action {
	out := make([]Action, len(s))
	for i, r := range s {
		if r == 'D' {
			out[i] = D
		}
	}
	return out
}

func format(as []Action) string {
	var b strings.Builder
	for _, a := range as {
		b.WriteString(a.String())
	}
	return b.String()
}

// scripted replays a fixed sequence, then cooperates.
type scripted struct{ moves []Action }

func (s scripted) Name() string { return "Scripted" }

func (s scripted) Strategy(h History, _ *rand.Rand) Action {
	if h.Len() < len(s.moves) {
		return s.moves[h.Len()]
	}
	return C
}

func TestClassicStrategies(t *testing.T) {
	t.Parallel()
	tests := []struct {
		player   Player
		opponent string
		want     string
	}{
		{Cooperator{}, "DDDD", "CCCC"},
		{Defector{}, "CCCC", "DDDD"},
		{TitForTat{}, "CDDCC", "CCDDC"},
		{TitFor2Tats{}, "CDDDCC", "CCCDDC"},
		{SuspiciousTitForTat{}, "CCDC", "DCCD"},
		{HardTitForTat{}, "DCCCCC", "CDDDCC"},
		{Bully{}, "CDCC", "DDCD"},
		{Grudger{}, "CCDCCC", "CCCDDD"},
		{WinStayLoseShift{}, "CDCDD", "CCDDC"},
		{Appeaser{}, "CDCDC", "CCDDC"},
		{GoByMajority{}, "DDCCC", "CDDDC"},
		{Alternator{}, "CCCCC", "CDCDC"},
		{CyclerCCD{}, "CCCCCC", "CCDCCD"},
		{Prober{}, "CCCCC", "DCCDD"},
		{Prober{}, "CDCCD", "DCCCC"},
		{ForgivingTitForTat{}, "CCCCCCCCCCDD", "CCCCCCCCCCCC"},
		{ForgivingTitForTat{}, "CDC", "CCD"},
	}

	for _, tt := range tests {
		t.Run(tt.player.Name()+"/"+tt.opponent, func(t *testing.T) {
			t.Parallel()
			opp := scripted{moves: actions(tt.opponent)}
			m := Play(tt.player, opp, len(tt.opponent), rand.New(rand.NewPCG(1, 1)))
			if got := format(m.Actions1); got != tt.want {
				t.Errorf("%s against %s = %s, want %s", tt.player.Name(), tt.opponent, got, tt.want)
			}
		})
	}
}

func TestRandomExtremes(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(7, 7))
	m := Play(Random{P: 1}, Random{P: 0}, 50, rng)
	if got := format(m.Actions1); got != strings.Repeat("C", 50) {
		t.Errorf("Random: 1 should always cooperate, got %s", got)
	}
	if got := format(m.Actions2); got != strings.Repeat("D", 50) {
		t.Errorf("Random: 0 should always defect, got %s", got)
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()
	all := All()
	if len(all) == 0 {
		t.Fatal("registry is empty")
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Name() >= all[i].Name() {
			t.Errorf("registry not sorted: %q before %q", all[i-1].Name(), all[i].Name())
		}
	}
	short := ShortRunTime()
	if len(short) != len(all)-1 {
		t.Errorf("ShortRunTime() = %d players, want %d", len(short), len(all)-1)
	}
	for _, p := range short {
		if p.Name() == "Adaptive" {
			t.Error("ShortRunTime() should exclude Adaptive")
		}
	}
	p, ok := ByName("Tit For Tat")
	if !ok || p.Name() != "Tit For Tat" {
		t.Errorf("ByName(Tit For Tat) = %v, %v", p, ok)
	}
	if _, ok := ByName("Nobody"); ok {
		t.Error("ByName should miss unknown names")
	}
	if len(Names()) != len(all) {
		t.Errorf("Names() length mismatch")
	}
}

func TestClassifier(t *testing.T) {
	t.Parallel()
	tests := []struct {
		p          Player
		long, stoc bool
	}{
		{TitForTat{}, false, false},
		{Adaptive{}, true, false},
		{Random{P: 0.5}, false, true},
		{Random{P: 1}, false, false},
		{Dual(Adaptive{}), true, false},
		{JossAnn(TitForTat{}, 0.2, 0.3), false, true},
		{JossAnn(Random{P: 0.5}, 0, 0), false, true},
		{JossAnn(Random{P: 0.5}, 1, 0), false, false},
		{JossAnn(TitForTat{}, 0, 0), false, false},
	}
	for _, tt := range tests {
		if got := IsLongRunTime(tt.p); got != tt.long {
			t.Errorf("IsLongRunTime(%s) = %v, want %v", tt.p.Name(), got, tt.long)
		}
		if got := IsStochastic(tt.p); got != tt.stoc {
			t.Errorf("IsStochastic(%s) = %v, want %v", tt.p.Name(), got, tt.stoc)
		}
	}
}

func TestAdaptive(t *testing.T) {
	t.Parallel()
	m := Play(Adaptive{}, Cooperator{}, 14, nil)
	// Defecting against a cooperator pays 5 against 3 for cooperating.
	if got, want := format(m.Actions1), "CCCCCCDDDDDDDD"; got != want {
		t.Errorf("Adaptive vs Cooperator = %s, want %s", got, want)
	}
	m = Play(Adaptive{}, TitForTat{}, 14, nil)
	if got, want := format(m.Actions1), "CCCCCCDDDDDCCC"; got != want {
		t.Errorf("Adaptive vs Tit For Tat = %s, want %s", got, want)
	}
}

func TestSourcesAreEmbedded(t *testing.T) {
	t.Parallel()
	data, err := fs.ReadFile(Sources(), "strategy_titfortat.go")
	if err != nil {
		t.Fatalf("reading embedded source: %v", err)
	}
	if !strings.Contains(string(data), "type TitForTat struct") {
		t.Error("embedded source should contain the TitForTat declaration")
	}
}
