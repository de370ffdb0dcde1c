package metrics

import (
	"fmt"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
)

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	HeapSys      uint64 // bytes obtained from OS for heap
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	HeapObjects  uint64 // number of allocated heap objects
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct {
	start MemorySnapshot
}

// NewMemoryCollector creates a collector and takes a baseline snapshot.
func NewMemoryCollector() *MemoryCollector {
	mc := &MemoryCollector{}
	mc.start = mc.Snapshot()
	return mc
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}

// GCSinceStart returns the collections run since the collector was created.
func (mc *MemoryCollector) GCSinceStart() uint32 {
	return mc.Snapshot().NumGC - mc.start.NumGC
}

// String summarises the snapshot in human-readable units.
func (s MemorySnapshot) String() string {
	return fmt.Sprintf("heap %s (%s reserved), sys %s, %d GC (%s paused)",
		humanize.Bytes(s.HeapAlloc), humanize.Bytes(s.HeapSys), humanize.Bytes(s.Sys),
		s.NumGC, time.Duration(s.PauseTotalNs))
}
