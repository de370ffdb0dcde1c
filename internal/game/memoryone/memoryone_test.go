package memoryone

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/agbru/fingerprints/internal/game"
)

func TestDeterministicRowsBehaveLikeTheirClassic(t *testing.T) {
	t.Parallel()
	// A {1,0,1,0} vector starting with C is Tit For Tat.
	tft := New("TFT", "TFT", 1, Vector{1, 0, 1, 0})
	rng := rand.New(rand.NewPCG(1, 2))

	for _, opp := range game.All() {
		if game.IsStochastic(opp) {
			continue
		}
		got := game.Play(tft, opp, 30, rng)
		want := game.Play(game.TitForTat{}, opp, 30, rng)
		for i := range got.Actions1 {
			if got.Actions1[i] != want.Actions1[i] {
				t.Fatalf("against %s turn %d: got %v, want %v", opp.Name(), i, got.Actions1[i], want.Actions1[i])
			}
		}
	}
}

func TestStochastic(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		start float64
		v     Vector
		want  bool
	}{
		{"deterministic", 1, Vector{1, 0, 1, 0}, false},
		{"random vector", 1, Vector{1, 1.0 / 3, 1, 1.0 / 3}, true},
		{"random start", 0.5, Vector{1, 0, 1, 0}, true},
	}
	for _, tt := range tests {
		if got := game.IsStochastic(New("X", "X", tt.start, tt.v)); got != tt.want {
			t.Errorf("%s: IsStochastic = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDefinitionChangesWithTheRow(t *testing.T) {
	t.Parallel()
	a := New("X", "X", 1, Vector{1, 0, 1, 0.5})
	b := New("X", "X", 1, Vector{1, 0, 1, 0.25})
	if a.Definition() == b.Definition() {
		t.Fatalf("definitions should differ: %q", a.Definition())
	}
	if !strings.HasPrefix(a.Definition(), "X ") {
		t.Errorf("definition should start with the key, got %q", a.Definition())
	}
}

func TestTableKeysAreUnique(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	for _, p := range All() {
		key := p.(game.OriginalNamer).OriginalName()
		if seen[key] {
			t.Errorf("duplicate key %q", key)
		}
		seen[key] = true
		if _, ok := ByOriginalName(key); !ok {
			t.Errorf("ByOriginalName(%q) not found", key)
		}
	}
}
