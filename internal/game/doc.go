// Package game implements the iterated Prisoner's Dilemma: actions, match
// histories, the classic strategies and the Joss-Ann and Dual transformers
// used to build fingerprint probes.
//
// The source of every classic strategy is embedded in the binary (see
// [Sources]) so that its text can be hashed to detect changes between runs.
package game
