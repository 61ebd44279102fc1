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

// CreateStudentRequest holds payload for adding one roster entry.
type CreateStudentRequest struct {
	Name          string `json:"name" validate:"required"`
	ClassName     string `json:"class_name" validate:"required"`
	Gender        string `json:"gender"`
	ParentContact string `json:"parent_contact"`
	DormNumber    string `json:"dorm_number"`
}

// ImportStudentsRequest holds raw delimited text for roster bulk import.
type ImportStudentsRequest struct {
	Text string `json:"text" validate:"required"`
}

// StudentService manages the roster.
type StudentService struct {
	students  *store.StudentStore
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewStudentService constructs the student service.
func NewStudentService(students *store.StudentStore, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{students: students, validator: validate, logger: logger, now: time.Now}
}

// Create validates and appends a single student.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "name and class name are required")
	}

	student := models.Student{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(req.Name),
		ClassName:     strings.TrimSpace(req.ClassName),
		ParentContact: strings.TrimSpace(req.ParentContact),
		DormNumber:    strings.TrimSpace(req.DormNumber),
		CreatedAt:     s.now(),
	}
	if models.ValidGender(req.Gender) {
		student.Gender = req.Gender
	}

	s.students.Append(student)
	return &student, nil
}

// Import parses delimited rows and appends every accepted row. A row is
// accepted when it yields at least a name and a class column. Duplicates are
// kept. Zero accepted rows reports an import-empty error.
func (s *StudentService) Import(ctx context.Context, req ImportStudentsRequest) ([]models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "text is required")
	}

	students := parseStudentRows(req.Text, s.now())
	if len(students) == 0 {
		return nil, appErrors.Clone(appErrors.ErrImportEmpty, "no student rows recognized")
	}

	s.students.Append(students...)
	s.logger.Info("student rows imported", zap.Int("count", len(students)))
	return students, nil
}

// Get returns one student.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	student, ok := s.students.Get(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return &student, nil
}

// List returns students matching the filter plus the total match count.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int) {
	return s.students.List(filter)
}

// Groups returns the roster grouped by class name.
func (s *StudentService) Groups(ctx context.Context) []models.ClassGroup {
	return s.students.GroupByClass()
}

// parseStudentRows maps delimited lines onto students. Columns are
// positional: name, class, gender, parent contact, dorm number. A gender
// value outside the accepted set is stored empty.
func parseStudentRows(text string, createdAt time.Time) []models.Student {
	var students []models.Student
	for _, row := range strings.Split(strings.TrimSpace(text), "\n") {
		cols := columnSplit.Split(row, -1)
		for i := range cols {
			cols[i] = strings.TrimSpace(cols[i])
		}
		if len(cols) < 2 || cols[0] == "" || cols[1] == "" {
			continue
		}

		student := models.Student{
			ID:        uuid.NewString(),
			Name:      cols[0],
			ClassName: cols[1],
			CreatedAt: createdAt,
		}
		if len(cols) > 2 && models.ValidGender(cols[2]) {
			student.Gender = cols[2]
		}
		if len(cols) > 3 {
			student.ParentContact = cols[3]
		}
		if len(cols) > 4 {
			student.DormNumber = cols[4]
		}
		students = append(students, student)
	}
	return students
}
