// Package logging wraps zerolog behind the small Logger interface used by
// the update pass, with field helpers for strategies, kinds and runs.
package logging
