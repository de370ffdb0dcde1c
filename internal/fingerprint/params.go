package fingerprint

import (
	"fmt"
	"math/rand/v2"
	"runtime"
)

// Params controls how many matches are played for a fingerprint.
type Params struct {
	Turns       int
	Repetitions int
	// Seed makes runs reproducible. Two runs with the same seed produce the
	// same data.
	Seed uint64
	// Workers bounds the number of concurrent tasks. Zero means GOMAXPROCS.
	Workers int
}

// DefaultParams returns 200 turns and 50 repetitions.
func DefaultParams() Params {
	return Params{Turns: 200, Repetitions: 50}
}

// Validate reports the first invalid field.
func (p Params) Validate() error {
	switch {
	case p.Turns <= 0:
		return fmt.Errorf("turns must be positive, got %d", p.Turns)
	case p.Repetitions <= 0:
		return fmt.Errorf("repetitions must be positive, got %d", p.Repetitions)
	case p.Workers < 0:
		return fmt.Errorf("workers must not be negative, got %d", p.Workers)
	}
	return nil
}

func (p Params) workers() int {
	if p.Workers > 0 {
		return p.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// rng returns the random source of repetition rep of task.
func (p Params) rng(task, rep int) *rand.Rand {
	return rand.New(rand.NewPCG(p.Seed, uint64(task)<<32|uint64(rep)))
}
