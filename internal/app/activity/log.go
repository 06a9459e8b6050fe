// Package activity keeps the append-only audit trail of a conversation
// session, separate from the transcript itself.
package activity

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/farum-demo/internal/domain"
)

// Log is an append-only list of entries. The only way to drop entries
// is Clear, which empties the whole log.
type Log struct {
	mu      sync.RWMutex
	entries []domain.LogEntry
	now     func() time.Time
}

// NewLog creates an empty log stamping entries with now.
func NewLog(now func() time.Time) *Log {
	if now == nil {
		now = time.Now
	}
	return &Log{now: now}
}

// Append adds a new entry stamped with the current time.
func (l *Log) Append(title, detail string, payload any) domain.LogEntry {
	entry := domain.LogEntry{
		ID:      domain.EntryID(uuid.NewString()),
		Time:    l.now(),
		Title:   title,
		Detail:  detail,
		Payload: payload,
	}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()

	return entry
}

func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// Entries returns a copy of the log in append order.
func (l *Log) Entries() []domain.LogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
