package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bilbo-wu/teacher-focus-api/internal/models"
	"github.com/bilbo-wu/teacher-focus-api/internal/store"
	appErrors "github.com/bilbo-wu/teacher-focus-api/pkg/errors"
)

const scheduleCachePrefix = "schedule:day:"

// columnSplit separates bulk-paste columns on tabs or commas. Empty columns
// are preserved so positions stay meaningful.
var columnSplit = regexp.MustCompile(`[\t,]`)

// dutyMarker is the literal value that maps an imported row to a duty slot,
// read from the type column when present and the subject otherwise.
const dutyMarker = "值班"

// SaveScheduleRequest holds payload for creating or replacing a schedule
// item. Date, subject and start time are mandatory; everything else is
// defaulted at save time.
type SaveScheduleRequest struct {
	ID        string              `json:"id"`
	Date      string              `json:"date" validate:"required"`
	Type      models.ScheduleType `json:"type"`
	Subject   string              `json:"subject" validate:"required"`
	ClassName string              `json:"class_name"`
	Room      string              `json:"room"`
	StartTime string              `json:"start_time" validate:"required"`
	EndTime   string              `json:"end_time"`
	PreTasks  []string            `json:"pre_tasks"`
	PostTasks []string            `json:"post_tasks"`
}

// ImportScheduleRequest holds raw delimited text for bulk import plus the
// date rows fall back to when their first column is not a date.
type ImportScheduleRequest struct {
	Text         string `json:"text" validate:"required"`
	FallbackDate string `json:"fallback_date" validate:"required"`
}

// ScheduleService maintains the sorted daily timeline: all add, edit,
// delete and import paths go through it.
type ScheduleService struct {
	schedules *store.ScheduleStore
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService constructs the schedule service.
func NewScheduleService(schedules *store.ScheduleStore, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{schedules: schedules, cache: cache, validator: validate, logger: logger}
}

// ListByDate returns the items for one date in start-time order.
func (s *ScheduleService) ListByDate(ctx context.Context, date string) ([]models.ScheduleItem, error) {
	if strings.TrimSpace(date) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date is required")
	}

	cacheKey := scheduleCachePrefix + date
	var cached []models.ScheduleItem
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return cached, nil
	}

	items := s.schedules.ListByDate(date)
	_ = s.cache.Set(ctx, cacheKey, items, 0)
	return items, nil
}

// Create validates the candidate and inserts it. A missing identifier gets
// a fresh one; state is untouched when validation fails.
func (s *ScheduleService) Create(ctx context.Context, req SaveScheduleRequest) (*models.ScheduleItem, error) {
	item, err := s.buildItem(req)
	if err != nil {
		return nil, err
	}
	s.schedules.Insert(*item)
	s.invalidate(ctx)
	return item, nil
}

// Update replaces the item with the given identifier. Unknown identifiers
// behave as an add (upsert semantics).
func (s *ScheduleService) Update(ctx context.Context, id string, req SaveScheduleRequest) (*models.ScheduleItem, error) {
	req.ID = id
	item, err := s.buildItem(req)
	if err != nil {
		return nil, err
	}
	s.schedules.Upsert(*item)
	s.invalidate(ctx)
	return item, nil
}

// Delete removes the item with the given identifier. Missing identifiers
// are a no-op, not an error.
func (s *ScheduleService) Delete(ctx context.Context, id string) {
	if s.schedules.Delete(id) {
		s.invalidate(ctx)
	}
}

// Import parses delimited rows and appends every accepted row. Rejected
// rows are skipped silently; zero accepted rows reports an import-empty
// error and leaves state unchanged.
func (s *ScheduleService) Import(ctx context.Context, req ImportScheduleRequest) ([]models.ScheduleItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid import payload")
	}

	items := parseScheduleRows(req.Text, req.FallbackDate)
	if len(items) == 0 {
		return nil, appErrors.Clone(appErrors.ErrImportEmpty, "no schedule rows recognized")
	}

	s.schedules.InsertBatch(items)
	s.invalidate(ctx)
	s.logger.Info("schedule rows imported", zap.Int("count", len(items)))
	return items, nil
}

func (s *ScheduleService) buildItem(req SaveScheduleRequest) (*models.ScheduleItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date, subject and start time are required")
	}

	item := models.ScheduleItem{
		ID:        req.ID,
		Date:      req.Date,
		Type:      req.Type,
		Subject:   req.Subject,
		ClassName: req.ClassName,
		Room:      req.Room,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		PreTasks:  req.PreTasks,
		PostTasks: req.PostTasks,
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if !item.Type.Valid() {
		item.Type = models.ScheduleTypeClass
	}
	if item.PreTasks == nil {
		item.PreTasks = []string{}
	}
	if item.PostTasks == nil {
		item.PostTasks = []string{}
	}
	return &item, nil
}

func (s *ScheduleService) invalidate(ctx context.Context) {
	_ = s.cache.Invalidate(ctx, scheduleCachePrefix+"*")
}

// parseScheduleRows maps delimited lines onto schedule items. A row is
// accepted when it yields at least three columns: date-or-fallback,
// subject, start time. Columns beyond the third are optional and
// positional: end time, class, room, type, post task.
func parseScheduleRows(text, fallbackDate string) []models.ScheduleItem {
	var items []models.ScheduleItem
	for _, row := range strings.Split(strings.TrimSpace(text), "\n") {
		cols := columnSplit.Split(row, -1)
		for i := range cols {
			cols[i] = strings.TrimSpace(cols[i])
		}
		if len(cols) < 3 {
			continue
		}

		date := fallbackDate
		if strings.Contains(cols[0], "-") {
			date = cols[0]
		}

		item := models.ScheduleItem{
			ID:        uuid.NewString(),
			Date:      date,
			Subject:   cols[1],
			StartTime: cols[2],
			Type:      models.ScheduleTypeClass,
			PreTasks:  []string{},
			PostTasks: []string{},
		}
		if len(cols) > 3 {
			item.EndTime = cols[3]
		}
		if len(cols) > 4 {
			item.ClassName = cols[4]
		}
		if len(cols) > 5 {
			item.Room = cols[5]
		}
		// the type column decides when present; otherwise a duty subject
		// marks the row as a duty slot
		marker := cols[1]
		if len(cols) > 6 {
			marker = cols[6]
		}
		if marker == dutyMarker {
			item.Type = models.ScheduleTypeDuty
		}
		if len(cols) > 7 && cols[7] != "" {
			item.PostTasks = []string{cols[7]}
		}
		items = append(items, item)
	}
	return items
}
