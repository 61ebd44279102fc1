package models

import "time"

// TaskCategory buckets a to-do into one of four fixed groups.
type TaskCategory string

const (
	TaskCategoryUrgent   TaskCategory = "URGENT"
	TaskCategoryTeaching TaskCategory = "TEACHING"
	TaskCategoryStudent  TaskCategory = "STUDENT"
	TaskCategoryLife     TaskCategory = "LIFE"
)

// Valid reports whether the value is one of the known categories.
func (c TaskCategory) Valid() bool {
	switch c {
	case TaskCategoryUrgent, TaskCategoryTeaching, TaskCategoryStudent, TaskCategoryLife:
		return true
	}
	return false
}

// DueBucket is the coarse due-date label shown when no exact time is set.
type DueBucket string

const (
	DueToday    DueBucket = "TODAY"
	DueTomorrow DueBucket = "TOMORROW"
	DueWeek     DueBucket = "WEEK"
)

// Task is a single to-do entry. DueDate is a display simplification: when
// DueDateTime is present the bucket is derived from it and is not
// independently authoritative.
type Task struct {
	ID              string       `json:"id"`
	Content         string       `json:"content"`
	Category        TaskCategory `json:"category"`
	IsCompleted     bool         `json:"is_completed"`
	DueDate         DueBucket    `json:"due_date"`
	DueDateTime     *time.Time   `json:"due_date_time,omitempty"`
	LinkedStudentID string       `json:"linked_student_id,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}

// BucketFor derives the coarse due bucket from an exact due time relative to
// a reference instant: same calendar day is TODAY, the next day is TOMORROW,
// anything else falls into WEEK.
func BucketFor(due time.Time, now time.Time) DueBucket {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	dy, dm, dd := due.Date()
	dueDay := time.Date(dy, dm, dd, 0, 0, 0, 0, due.Location())

	switch {
	case dueDay.Equal(today):
		return DueToday
	case dueDay.Equal(today.AddDate(0, 0, 1)):
		return DueTomorrow
	default:
		return DueWeek
	}
}
