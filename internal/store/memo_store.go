package store

import (
	"sync"

	"github.com/bilbo-wu/teacher-focus-api/internal/models"
)

// MemoStore holds freeform memos, newest first.
type MemoStore struct {
	mu    sync.RWMutex
	memos []models.Memo
}

// NewMemoStore constructs an empty memo store.
func NewMemoStore() *MemoStore {
	return &MemoStore{}
}

// Add prepends the memo.
func (s *MemoStore) Add(memo models.Memo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memos = append([]models.Memo{memo}, s.memos...)
}

// Get returns the memo with the given ID.
func (s *MemoStore) Get(id string) (models.Memo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.memos {
		if s.memos[i].ID == id {
			return s.memos[i], true
		}
	}
	return models.Memo{}, false
}

// Delete removes the memo with the given ID. Missing IDs are a no-op.
func (s *MemoStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.memos {
		if s.memos[i].ID == id {
			s.memos = append(s.memos[:i], s.memos[i+1:]...)
			return true
		}
	}
	return false
}

// List returns a copy of all memos, newest first.
func (s *MemoStore) List() []models.Memo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Memo, len(s.memos))
	copy(out, s.memos)
	return out
}
