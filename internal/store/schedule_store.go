package store

import (
	"sort"
	"sync"

	"github.com/bilbo-wu/teacher-focus-api/internal/models"
)

// ScheduleStore holds every schedule item across all dates. The collection
// is kept sorted by start time ascending after each mutation; the sort is
// stable so items with equal start times keep insertion order.
type ScheduleStore struct {
	mu    sync.RWMutex
	items []models.ScheduleItem
}

// NewScheduleStore constructs an empty schedule store.
func NewScheduleStore() *ScheduleStore {
	return &ScheduleStore{}
}

// Insert appends the item and re-sorts the collection.
func (s *ScheduleStore) Insert(item models.ScheduleItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
	s.resort()
}

// InsertBatch appends all items in order and re-sorts once.
func (s *ScheduleStore) InsertBatch(items []models.ScheduleItem) {
	if len(items) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, items...)
	s.resort()
}

// Upsert replaces the item with a matching ID or appends when none matches,
// then re-sorts. It reports whether an existing item was replaced.
func (s *ScheduleStore) Upsert(item models.ScheduleItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	replaced := false
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		s.items = append(s.items, item)
	}
	s.resort()
	return replaced
}

// Delete removes the item with the given ID. Missing IDs are a no-op.
func (s *ScheduleStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the item with the given ID.
func (s *ScheduleStore) Get(id string) (models.ScheduleItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.items {
		if s.items[i].ID == id {
			return s.items[i], true
		}
	}
	return models.ScheduleItem{}, false
}

// ListByDate returns a copy of the items for one date, in start-time order.
func (s *ScheduleStore) ListByDate(date string) []models.ScheduleItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ScheduleItem, 0)
	for _, item := range s.items {
		if item.Date == date {
			out = append(out, item)
		}
	}
	return out
}

// All returns a copy of the whole collection.
func (s *ScheduleStore) All() []models.ScheduleItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ScheduleItem, len(s.items))
	copy(out, s.items)
	return out
}

// resort must be called with the write lock held. Start times are
// zero-padded "HH:mm" strings, so lexicographic order is time order.
func (s *ScheduleStore) resort() {
	sort.SliceStable(s.items, func(i, j int) bool {
		return s.items[i].StartTime < s.items[j].StartTime
	})
}
