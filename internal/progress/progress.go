// Package progress defines the progress messages exchanged between the
// fingerprint computations and the display layer.
package progress

// ProgressUpdate reports the completion of one task.
type ProgressUpdate struct {
	// TaskIndex identifies the task within the current batch.
	TaskIndex int
	// Value is the completed fraction, in [0, 1].
	Value float64
}

// ProgressCallback receives the completed fraction of a single task.
type ProgressCallback func(value float64)

// ToChannel returns a callback forwarding values to ch for task index. Sends
// never block: an update is dropped when the channel is full, since a later
// one supersedes it.
func ToChannel(ch chan<- ProgressUpdate, index int) ProgressCallback {
	return func(value float64) {
		select {
		case ch <- ProgressUpdate{TaskIndex: index, Value: value}:
		default:
		}
	}
}

// Throttle wraps cb so it only fires when the value advanced by at least
// step since the last call, or reached 1. It is not safe for concurrent use.
func Throttle(cb ProgressCallback, step float64) ProgressCallback {
	if cb == nil {
		return func(float64) {}
	}
	last := -1.0
	return func(value float64) {
		if value >= 1 || value-last >= step {
			last = value
			cb(value)
		}
	}
}
