package models

import "time"

// Genders accepted on student records. Any other value is stored empty.
const (
	GenderMale   = "男"
	GenderFemale = "女"
)

// ValidGender reports whether the value belongs to the fixed two-value set.
func ValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale
}

// Student is a roster entry owned by the teacher.
type Student struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ClassName     string    `json:"class_name"`
	Gender        string    `json:"gender,omitempty"`
	ParentContact string    `json:"parent_contact,omitempty"`
	DormNumber    string    `json:"dorm_number,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search   string
	Page     int
	PageSize int
}

// ClassGroup summarises the roster members of one class.
type ClassGroup struct {
	ClassName string    `json:"class_name"`
	Count     int       `json:"count"`
	Students  []Student `json:"students"`
}
