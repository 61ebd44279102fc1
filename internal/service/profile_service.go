package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/bilbo-wu/teacher-focus-api/internal/models"
	"github.com/bilbo-wu/teacher-focus-api/internal/store"
	appErrors "github.com/bilbo-wu/teacher-focus-api/pkg/errors"
)

// ProfileService manages the single user profile: display name plus the
// class and location shortcut lists used to pre-fill schedule forms.
type ProfileService struct {
	profile *store.ProfileStore
	logger  *zap.Logger
}

// NewProfileService constructs the profile service.
func NewProfileService(profile *store.ProfileStore, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{profile: profile, logger: logger}
}

// Get returns the current profile.
func (s *ProfileService) Get(ctx context.Context) models.UserProfile {
	return s.profile.Get()
}

// UpdateName replaces the display name. Blank names are rejected.
func (s *ProfileService) UpdateName(ctx context.Context, name string) (models.UserProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.UserProfile{}, appErrors.Clone(appErrors.ErrValidation, "name is required")
	}
	return s.profile.Update(func(p models.UserProfile) models.UserProfile {
		p.Name = name
		return p
	}), nil
}

// AddClass appends a class shortcut. Blank and duplicate values are no-ops.
func (s *ProfileService) AddClass(ctx context.Context, class string) (models.UserProfile, error) {
	class = strings.TrimSpace(class)
	if class == "" {
		return models.UserProfile{}, appErrors.Clone(appErrors.ErrValidation, "class is required")
	}
	return s.profile.Update(func(p models.UserProfile) models.UserProfile {
		p.MyClasses = appendUnique(p.MyClasses, class)
		return p
	}), nil
}

// RemoveClass removes a class shortcut. Missing values are a no-op.
func (s *ProfileService) RemoveClass(ctx context.Context, class string) models.UserProfile {
	return s.profile.Update(func(p models.UserProfile) models.UserProfile {
		p.MyClasses = removeValue(p.MyClasses, class)
		return p
	})
}

// AddLocation appends a location shortcut. Blank and duplicate values are
// no-ops.
func (s *ProfileService) AddLocation(ctx context.Context, location string) (models.UserProfile, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return models.UserProfile{}, appErrors.Clone(appErrors.ErrValidation, "location is required")
	}
	return s.profile.Update(func(p models.UserProfile) models.UserProfile {
		p.MyLocations = appendUnique(p.MyLocations, location)
		return p
	}), nil
}

// RemoveLocation removes a location shortcut. Missing values are a no-op.
func (s *ProfileService) RemoveLocation(ctx context.Context, location string) models.UserProfile {
	return s.profile.Update(func(p models.UserProfile) models.UserProfile {
		p.MyLocations = removeValue(p.MyLocations, location)
		return p
	})
}

func appendUnique(values []string, v string) []string {
	for _, existing := range values {
		if existing == v {
			return values
		}
	}
	return append(values, v)
}

func removeValue(values []string, v string) []string {
	out := values[:0]
	for _, existing := range values {
		if existing != v {
			out = append(out, existing)
		}
	}
	return out
}
