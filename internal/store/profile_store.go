package store

import (
	"sync"

	"github.com/bilbo-wu/teacher-focus-api/internal/models"
)

// ProfileStore holds the single user profile. Updates run under the lock so
// read-modify-write cycles stay atomic.
type ProfileStore struct {
	mu      sync.RWMutex
	profile models.UserProfile
}

// NewProfileStore constructs a profile store seeded with the given profile.
func NewProfileStore(profile models.UserProfile) *ProfileStore {
	return &ProfileStore{profile: profile}
}

// Get returns a copy of the profile.
func (s *ProfileStore) Get() models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyProfile(s.profile)
}

// Update applies fn to the profile under the write lock and returns the
// resulting value.
func (s *ProfileStore) Update(fn func(models.UserProfile) models.UserProfile) models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = fn(copyProfile(s.profile))
	return copyProfile(s.profile)
}

func copyProfile(p models.UserProfile) models.UserProfile {
	out := models.UserProfile{Name: p.Name}
	out.MyClasses = append([]string(nil), p.MyClasses...)
	out.MyLocations = append([]string(nil), p.MyLocations...)
	return out
}
