package store

import (
	"sync"

	"github.com/bilbo-wu/teacher-focus-api/internal/models"
)

// TaskStore holds the to-do list, newest first.
type TaskStore struct {
	mu    sync.RWMutex
	tasks []models.Task
}

// NewTaskStore constructs an empty task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{}
}

// Add prepends the task.
func (s *TaskStore) Add(task models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append([]models.Task{task}, s.tasks...)
}

// Get returns the task with the given ID.
func (s *TaskStore) Get(id string) (models.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return s.tasks[i], true
		}
	}
	return models.Task{}, false
}

// Toggle flips the completion flag of the task with the given ID and returns
// the updated value.
func (s *TaskStore) Toggle(id string) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].IsCompleted = !s.tasks[i].IsCompleted
			return s.tasks[i], true
		}
	}
	return models.Task{}, false
}

// List returns a copy of all tasks.
func (s *TaskStore) List() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}
