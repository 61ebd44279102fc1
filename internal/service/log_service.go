package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bilbo-wu/teacher-focus-api/internal/models"
	"github.com/bilbo-wu/teacher-focus-api/internal/store"
	appErrors "github.com/bilbo-wu/teacher-focus-api/pkg/errors"
)

// AddLogRequest holds payload for recording a behavioural observation.
type AddLogRequest struct {
	Content        string `json:"content" validate:"required"`
	FollowUpNeeded bool   `json:"follow_up_needed"`
}

// DraftMessageRequest selects the observation and tone for a parent message.
type DraftMessageRequest struct {
	Observation string             `json:"observation" validate:"required"`
	Tone        models.MessageTone `json:"tone"`
}

// LogService manages behavioural logs and parent-message drafting.
type LogService struct {
	logs       *store.LogStore
	students   *store.StudentStore
	extraction *ExtractionService
	validator  *validator.Validate
	logger     *zap.Logger
	now        func() time.Time
}

// NewLogService constructs the log service.
func NewLogService(logs *store.LogStore, students *store.StudentStore, extraction *ExtractionService, validate *validator.Validate, logger *zap.Logger) *LogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogService{logs: logs, students: students, extraction: extraction, validator: validate, logger: logger, now: time.Now}
}

// Add records an observation against an existing student.
func (s *LogService) Add(ctx context.Context, studentID string, req AddLogRequest) (*models.LogEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "content is required")
	}
	if _, ok := s.students.Get(studentID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	entry := models.LogEntry{
		ID:             uuid.NewString(),
		StudentID:      studentID,
		Content:        req.Content,
		Timestamp:      s.now(),
		FollowUpNeeded: req.FollowUpNeeded,
	}
	s.logs.Add(entry)
	return &entry, nil
}

// ListByStudent returns the entries for one student, newest first.
func (s *LogService) ListByStudent(ctx context.Context, studentID string) ([]models.LogEntry, error) {
	if _, ok := s.students.Get(studentID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return s.logs.ListByStudent(studentID), nil
}

// DraftParentMessage produces a short parent-facing message for the student.
// The text is always usable: provider failures surface as fixed placeholder
// strings, never as errors. An unknown tone falls back to friendly.
func (s *LogService) DraftParentMessage(ctx context.Context, studentID string, req DraftMessageRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "observation is required")
	}
	student, ok := s.students.Get(studentID)
	if !ok {
		return "", appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	tone := req.Tone
	if !tone.Valid() {
		tone = models.ToneFriendly
	}
	return s.extraction.DraftParentMessage(ctx, student.Name, req.Observation, tone), nil
}
