package store

import (
	"sync"

	"github.com/bilbo-wu/teacher-focus-api/internal/models"
)

// LogStore holds behavioural log entries, newest first. Entries are
// append-only; nothing in the core mutates or deletes them.
type LogStore struct {
	mu      sync.RWMutex
	entries []models.LogEntry
}

// NewLogStore constructs an empty log store.
func NewLogStore() *LogStore {
	return &LogStore{}
}

// Add prepends the entry.
func (s *LogStore) Add(entry models.LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append([]models.LogEntry{entry}, s.entries...)
}

// ListByStudent returns the entries referencing the student, newest first.
func (s *LogStore) ListByStudent(studentID string) []models.LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.LogEntry, 0)
	for _, e := range s.entries {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out
}
