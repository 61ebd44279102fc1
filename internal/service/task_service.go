package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bilbo-wu/teacher-focus-api/internal/models"
	"github.com/bilbo-wu/teacher-focus-api/internal/store"
	appErrors "github.com/bilbo-wu/teacher-focus-api/pkg/errors"
)

// syncIDPrefix marks schedule items derived from a task.
const syncIDPrefix = "sync-"

// derivedSlotLength is the duration of the schedule slot created for a task
// with an exact due time.
const derivedSlotLength = 45 * time.Minute

// CreateTaskRequest holds payload for adding a to-do.
type CreateTaskRequest struct {
	Content         string              `json:"content" validate:"required"`
	Category        models.TaskCategory `json:"category" validate:"required"`
	DueDateTime     *time.Time          `json:"due_date_time"`
	LinkedStudentID string              `json:"linked_student_id"`
	SyncToSchedule  bool                `json:"sync_to_schedule"`
}

// TaskService manages the to-do list and the one-way bridge that projects
// tasks with exact due times onto the schedule.
type TaskService struct {
	tasks     *store.TaskStore
	schedules *ScheduleService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewTaskService constructs the task service.
func NewTaskService(tasks *store.TaskStore, schedules *ScheduleService, validate *validator.Validate, logger *zap.Logger) *TaskService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{tasks: tasks, schedules: schedules, validator: validate, logger: logger, now: time.Now}
}

// Create validates and stores a task. When sync is requested and an exact due
// time is present, a derived duty slot is pushed through the schedule save
// path. The derived item is one-shot: later task edits never touch it.
func (s *TaskService) Create(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "content and category are required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "content is required")
	}
	if !req.Category.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown task category")
	}

	task := models.Task{
		ID:              uuid.NewString(),
		Content:         req.Content,
		Category:        req.Category,
		DueDate:         models.DueToday,
		DueDateTime:     req.DueDateTime,
		LinkedStudentID: req.LinkedStudentID,
		CreatedAt:       s.now(),
	}
	if req.DueDateTime != nil {
		task.DueDate = models.BucketFor(*req.DueDateTime, s.now())
	}

	s.tasks.Add(task)

	if req.SyncToSchedule && req.DueDateTime != nil {
		s.bridgeToSchedule(ctx, task)
	}
	return &task, nil
}

// Toggle flips the completion flag of the task with the given identifier.
func (s *TaskService) Toggle(ctx context.Context, id string) (*models.Task, error) {
	task, ok := s.tasks.Toggle(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "task not found")
	}
	return &task, nil
}

// List returns all tasks, newest first.
func (s *TaskService) List(ctx context.Context) []models.Task {
	return s.tasks.List()
}

// bridgeToSchedule projects the task onto the timeline as a duty slot
// spanning a fixed window from the due instant. The slot goes through the
// regular schedule save path so ordering holds.
func (s *TaskService) bridgeToSchedule(ctx context.Context, task models.Task) {
	due := *task.DueDateTime
	start := due.Format("15:04")
	end := due.Add(derivedSlotLength).Format("15:04")

	_, err := s.schedules.Create(ctx, SaveScheduleRequest{
		ID:        syncIDPrefix + task.ID,
		Date:      due.Format("2006-01-02"),
		Type:      models.ScheduleTypeDuty,
		Subject:   task.Content,
		StartTime: start,
		EndTime:   end,
		PreTasks:  []string{},
		PostTasks: []string{},
	})
	if err != nil {
		s.logger.Warn("task schedule sync skipped", zap.String("task_id", task.ID), zap.Error(err))
	}
}
