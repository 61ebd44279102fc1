package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/bilbo-wu/teacher-focus-api/internal/models"
)

// StudentStore holds the roster in insertion order. Duplicate name+class
// pairs are allowed; imports never de-duplicate.
type StudentStore struct {
	mu       sync.RWMutex
	students []models.Student
}

// NewStudentStore constructs an empty roster.
func NewStudentStore() *StudentStore {
	return &StudentStore{}
}

// Append adds the students to the end of the roster.
func (s *StudentStore) Append(students ...models.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students = append(s.students, students...)
}

// Get returns the student with the given ID.
func (s *StudentStore) Get(id string) (models.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.students {
		if s.students[i].ID == id {
			return s.students[i], true
		}
	}
	return models.Student{}, false
}

// List returns students matching the filter plus the total match count.
// Search matches name or class name, case-insensitively.
func (s *StudentStore) List(filter models.StudentFilter) ([]models.Student, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.Student, 0, len(s.students))
	needle := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, st := range s.students {
		if needle != "" &&
			!strings.Contains(strings.ToLower(st.Name), needle) &&
			!strings.Contains(strings.ToLower(st.ClassName), needle) {
			continue
		}
		matched = append(matched, st)
	}

	total := len(matched)
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	start := (page - 1) * size
	if start >= total {
		return []models.Student{}, total
	}
	end := start + size
	if end > total {
		end = total
	}
	out := make([]models.Student, end-start)
	copy(out, matched[start:end])
	return out, total
}

// GroupByClass returns the roster grouped by class name, classes sorted
// alphabetically and members kept in insertion order.
func (s *StudentStore) GroupByClass() []models.ClassGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byClass := make(map[string][]models.Student)
	names := make([]string, 0)
	for _, st := range s.students {
		if _, ok := byClass[st.ClassName]; !ok {
			names = append(names, st.ClassName)
		}
		byClass[st.ClassName] = append(byClass[st.ClassName], st)
	}
	sort.Strings(names)

	groups := make([]models.ClassGroup, 0, len(names))
	for _, name := range names {
		members := byClass[name]
		groups = append(groups, models.ClassGroup{
			ClassName: name,
			Count:     len(members),
			Students:  members,
		})
	}
	return groups
}

// All returns a copy of the full roster.
func (s *StudentStore) All() []models.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Student, len(s.students))
	copy(out, s.students)
	return out
}

// Len reports the roster size.
func (s *StudentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.students)
}
