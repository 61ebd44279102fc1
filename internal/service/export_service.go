package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/bilbo-wu/teacher-focus-api/internal/store"
	appErrors "github.com/bilbo-wu/teacher-focus-api/pkg/errors"
	"github.com/bilbo-wu/teacher-focus-api/pkg/export"
)

// ExportService renders schedules and the roster into downloadable files.
type ExportService struct {
	schedules *ScheduleService
	students  *store.StudentStore
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	logger    *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(schedules *ScheduleService, students *store.StudentStore, csv *export.CSVExporter, pdf *export.PDFExporter, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		schedules: schedules,
		students:  students,
		csv:       csv,
		pdf:       pdf,
		logger:    logger,
	}
}

// DaySchedulePDF renders one day's timeline as a PDF table.
func (s *ExportService) DaySchedulePDF(ctx context.Context, date string) ([]byte, error) {
	items, err := s.schedules.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	headers := []string{"Start", "End", "Subject", "Class", "Room", "Type"}
	rows := make([]map[string]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, map[string]string{
			"Start":   item.StartTime,
			"End":     item.EndTime,
			"Subject": item.Subject,
			"Class":   item.ClassName,
			"Room":    item.Room,
			"Type":    string(item.Type),
		})
	}

	data, err := s.pdf.Render(export.Dataset{Headers: headers, Rows: rows}, "Schedule "+date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render schedule pdf")
	}
	return data, nil
}

// RosterCSV renders the full roster as CSV.
func (s *ExportService) RosterCSV(ctx context.Context) ([]byte, error) {
	students := s.students.All()

	headers := []string{"#", "Name", "Class", "Gender", "Parent Contact", "Dorm"}
	rows := make([]map[string]string, 0, len(students))
	for i, st := range students {
		rows = append(rows, map[string]string{
			"#":              strconv.Itoa(i + 1),
			"Name":           st.Name,
			"Class":          st.ClassName,
			"Gender":         st.Gender,
			"Parent Contact": st.ParentContact,
			"Dorm":           st.DormNumber,
		})
	}

	data, err := s.csv.Render(export.Dataset{Headers: headers, Rows: rows})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render roster csv")
	}
	return data, nil
}
