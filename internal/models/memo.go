package models

import "time"

// Memo is a freeform note captured for later triage.
type Memo struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// MemoAnalysis is the ephemeral AI classification of a memo. It is returned
// to the caller but never persisted on the memo itself.
type MemoAnalysis struct {
	SuggestedCategory TaskCategory `json:"suggested_category"`
	PolishedText      string       `json:"polished_text"`
}
