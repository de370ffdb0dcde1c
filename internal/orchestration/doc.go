// Package orchestration runs the update pass: it decides which fingerprints
// are stale, regenerates them, records their new hashes and assembles the
// report. It decouples the pass from presentation via the ProgressReporter
// interface and from computation via the Fingerprinter interface.
package orchestration
