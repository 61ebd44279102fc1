// Package store owns the single in-process application state. Every
// collection is guarded by its own lock and mutated through
// whole-collection replace semantics so the schedule sort invariant can
// never be observed half-applied.
package store

import "github.com/bilbo-wu/teacher-focus-api/internal/models"

// State is the root container handed to the service layer.
type State struct {
	Schedules *ScheduleStore
	Tasks     *TaskStore
	Students  *StudentStore
	Logs      *LogStore
	Memos     *MemoStore
	Profile   *ProfileStore
}

// NewState builds an empty application state seeded with the given profile.
func NewState(profile models.UserProfile) *State {
	return &State{
		Schedules: NewScheduleStore(),
		Tasks:     NewTaskStore(),
		Students:  NewStudentStore(),
		Logs:      NewLogStore(),
		Memos:     NewMemoStore(),
		Profile:   NewProfileStore(profile),
	}
}
