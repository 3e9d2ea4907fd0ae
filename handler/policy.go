package handler

import (
	"sync/atomic"

	"github.com/alefranz/logwire/core"
)

// OverflowPolicy defines how to handle full async queues
type OverflowPolicy int

const (
	// DropNewest drops the incoming record when the queue is full
	DropNewest OverflowPolicy = iota
	// DropOldest drops the oldest queued record when the queue is full
	DropOldest
	// Block blocks the caller until space is available (with timeout)
	Block
)

// String returns the string representation of the policy
func (p OverflowPolicy) String() string {
	switch p {
	case DropNewest:
		return "DropNewest"
	case DropOldest:
		return "DropOldest"
	case Block:
		return "Block"
	default:
		return "Unknown"
	}
}

// DefaultLevelPolicy returns the default level-based overflow policies:
// lose diagnostics under pressure, block briefly for failures.
func DefaultLevelPolicy() map[core.Level]OverflowPolicy {
	return map[core.Level]OverflowPolicy{
		core.TraceLevel:       DropNewest,
		core.DebugLevel:       DropNewest,
		core.InformationLevel: DropNewest,
		core.WarningLevel:     DropNewest,
		core.ErrorLevel:       Block,
		core.CriticalLevel:    Block,
	}
}

// Stats tracks handler statistics with atomic per-level counters
type Stats struct {
	// dropped is indexed by core.Level
	dropped [core.CriticalLevel + 1]uint64
	// BlockedTotal counts times logging blocked due to a full queue
	BlockedTotal uint64
	// ProcessedTotal counts total processed records
	ProcessedTotal uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementDropped atomically increments the dropped counter for a level
func (s *Stats) IncrementDropped(level core.Level) {
	if !level.Known() {
		return
	}
	atomic.AddUint64(&s.dropped[level], 1)
}

// IncrementBlocked atomically increments the blocked counter
func (s *Stats) IncrementBlocked() {
	atomic.AddUint64(&s.BlockedTotal, 1)
}

// IncrementProcessed atomically increments the processed counter
func (s *Stats) IncrementProcessed() {
	atomic.AddUint64(&s.ProcessedTotal, 1)
}

// GetDropped returns the dropped count for a level
func (s *Stats) GetDropped(level core.Level) uint64 {
	if !level.Known() {
		return 0
	}
	return atomic.LoadUint64(&s.dropped[level])
}

// GetBlocked returns the blocked count
func (s *Stats) GetBlocked() uint64 {
	return atomic.LoadUint64(&s.BlockedTotal)
}

// GetProcessed returns the processed count
func (s *Stats) GetProcessed() uint64 {
	return atomic.LoadUint64(&s.ProcessedTotal)
}

// GetTotalDropped returns the total dropped across all levels
func (s *Stats) GetTotalDropped() uint64 {
	var total uint64
	for level := core.TraceLevel; level <= core.CriticalLevel; level++ {
		total += atomic.LoadUint64(&s.dropped[level])
	}
	return total
}

// Snapshot is a point-in-time copy of the counters
type Snapshot struct {
	DroppedTotal   map[core.Level]uint64
	BlockedTotal   uint64
	ProcessedTotal uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	dropped := make(map[core.Level]uint64, core.CriticalLevel+1)
	for level := core.TraceLevel; level <= core.CriticalLevel; level++ {
		dropped[level] = s.GetDropped(level)
	}
	return Snapshot{
		DroppedTotal:   dropped,
		BlockedTotal:   s.GetBlocked(),
		ProcessedTotal: s.GetProcessed(),
	}
}
