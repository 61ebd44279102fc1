package models

// UserProfile is process-wide configuration shared by every component that
// renders selection pickers. Mutations go through the profile service only.
type UserProfile struct {
	Name        string   `json:"name"`
	MyClasses   []string `json:"my_classes"`
	MyLocations []string `json:"my_locations"`
}
