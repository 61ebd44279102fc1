package models

// ScheduleType classifies a timetabled entry.
type ScheduleType string

const (
	ScheduleTypeClass ScheduleType = "CLASS"
	ScheduleTypeDuty  ScheduleType = "DUTY"
	ScheduleTypeBreak ScheduleType = "BREAK"
)

// Valid reports whether the value is one of the known schedule types.
func (t ScheduleType) Valid() bool {
	switch t {
	case ScheduleTypeClass, ScheduleTypeDuty, ScheduleTypeBreak:
		return true
	}
	return false
}

// ScheduleItem represents one timetabled slot (class period, duty shift or
// break) on a specific calendar date. Times are wall-clock "HH:mm" strings;
// the zero-padded form makes lexicographic order equal chronological order.
type ScheduleItem struct {
	ID        string       `json:"id"`
	Date      string       `json:"date"` // YYYY-MM-DD
	Type      ScheduleType `json:"type"`
	Subject   string       `json:"subject"`
	ClassName string       `json:"class_name"`
	Room      string       `json:"room"`
	StartTime string       `json:"start_time"` // HH:mm
	EndTime   string       `json:"end_time"`   // HH:mm
	PreTasks  []string     `json:"pre_tasks"`
	PostTasks []string     `json:"post_tasks"`
}
