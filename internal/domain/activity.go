package domain

import (
	"sync"
	"time"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// LogEntry is immutable once appended. Seq is the ordering key; Timestamp
// is rendered for display only and two entries may share one.
type LogEntry struct {
	Seq       uint64
	Message   string
	Severity  Severity
	Timestamp string
}

const DefaultActivityLogCapacity = 100

// ActivityLog is a bounded, append-only record of operational events. When
// the capacity is exceeded the oldest entry is evicted. Append never fails.
type ActivityLog struct {
	mu       sync.Mutex
	capacity int
	nextSeq  uint64
	entries  []LogEntry
	now      func() time.Time
}

func NewActivityLog(capacity int, now func() time.Time) *ActivityLog {
	if capacity <= 0 {
		capacity = DefaultActivityLogCapacity
	}
	if now == nil {
		now = time.Now
	}

	return &ActivityLog{capacity: capacity, now: now}
}

func (l *ActivityLog) Append(message string, severity Severity) LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextSeq++
	entry := LogEntry{
		Seq:       l.nextSeq,
		Message:   message,
		Severity:  severity,
		Timestamp: l.now().Format("15:04:05"),
	}

	l.entries = append(l.entries, entry)
	if len(l.entries) > l.capacity {
		l.entries = append(l.entries[:0], l.entries[len(l.entries)-l.capacity:]...)
	}

	return entry
}

// Entries returns a snapshot in insertion order.
func (l *ActivityLog) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	snapshot := make([]LogEntry, len(l.entries))
	copy(snapshot, l.entries)

	return snapshot
}

// Recent returns up to n entries, newest first. n <= 0 returns all retained
// entries.
func (l *ActivityLog) Recent(n int) []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}

	snapshot := make([]LogEntry, 0, n)
	for i := len(l.entries) - 1; i >= len(l.entries)-n; i-- {
		snapshot = append(snapshot, l.entries[i])
	}

	return snapshot
}

func (l *ActivityLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}
