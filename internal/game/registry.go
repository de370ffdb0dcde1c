package game

import (
	"embed"
	"io/fs"
	"slices"
)

// Version identifies the strategy library in generated reports.
const Version = "1.3.0"

//go:embed strategy_*.go
var sources embed.FS

// Sources returns the embedded Go source of the classic strategies.
func Sources() fs.FS { return sources }

var classics = []Player{
	Adaptive{},
	Alternator{},
	Appeaser{},
	Bully{},
	Cooperator{},
	CyclerCCD{},
	Defector{},
	ForgivingTitForTat{},
	GoByMajority{},
	Grudger{},
	HardTitForTat{},
	Prober{},
	Random{P: 0.5},
	SuspiciousTitForTat{},
	TitFor2Tats{},
	TitForTat{},
	WinStayLoseShift{},
}

// All returns every classic strategy, ordered by name.
func All() []Player {
	return slices.Clone(classics)
}

// ShortRunTime returns the strategies that are not classified as long
// running.
func ShortRunTime() []Player {
	out := make([]Player, 0, len(classics))
	for _, p := range classics {
		if IsLongRunTime(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ByName looks up a classic strategy by its display name.
func ByName(name string) (Player, bool) {
	for _, p := range classics {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// Names returns the display names of all classic strategies.
func Names() []string {
	names := make([]string, len(classics))
	for i, p := range classics {
		names[i] = p.Name()
	}
	return names
}
