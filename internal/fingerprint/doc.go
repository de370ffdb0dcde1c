// Package fingerprint computes behavioural fingerprints of Prisoner's
// Dilemma strategies.
//
// Two families are supported. The Ashlock fingerprint plays a strategy
// against a probe transformed at every point of a grid over the unit square
// and records the strategy's mean score per turn. The transitive fingerprint
// plays a strategy against a list of opponents and records its cooperation
// rate on every turn.
//
// The points or opponents of a fingerprint are independent, so they are
// evaluated by a bounded pool of workers. Each match draws from its own
// random source derived from the seed, the task index and the repetition,
// which makes results identical for any number of workers.
package fingerprint
