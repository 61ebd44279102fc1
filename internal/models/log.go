package models

import "time"

// LogEntry captures a behavioural observation tied to a student. Entries are
// append-only; the student reference is not owning.
type LogEntry struct {
	ID             string    `json:"id"`
	StudentID      string    `json:"student_id"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
	FollowUpNeeded bool      `json:"follow_up_needed"`
	IsResolved     bool      `json:"is_resolved"`
}

// MessageTone selects the register for a drafted parent message.
type MessageTone string

const (
	ToneFormal    MessageTone = "formal"
	ToneFriendly  MessageTone = "friendly"
	ToneConcerned MessageTone = "concerned"
)

// Valid reports whether the tone is one of the supported selectors.
func (t MessageTone) Valid() bool {
	switch t {
	case ToneFormal, ToneFriendly, ToneConcerned:
		return true
	}
	return false
}
