package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bilbo-wu/teacher-focus-api/internal/models"
	"github.com/bilbo-wu/teacher-focus-api/internal/store"
	"github.com/bilbo-wu/teacher-focus-api/pkg/export"
)

func newExportServiceForTest(t *testing.T) (*ExportService, *ScheduleService, *store.StudentStore) {
	t.Helper()
	scheduleSvc, _ := newScheduleServiceForTest()
	students := store.NewStudentStore()
	svc := NewExportService(scheduleSvc, students, export.NewCSVExporter(), export.NewPDFExporter(""), zap.NewNop())
	return svc, scheduleSvc, students
}

func TestExportServiceDaySchedulePDF(t *testing.T) {
	svc, scheduleSvc, _ := newExportServiceForTest(t)

	_, err := scheduleSvc.Create(context.Background(), SaveScheduleRequest{
		Date: "2024-01-10", Subject: "Math", StartTime: "08:00", EndTime: "08:45", Room: "301",
	})
	require.NoError(t, err)

	data, err := svc.DaySchedulePDF(context.Background(), "2024-01-10")
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, strings.HasPrefix(string(data[:4]), "%PDF"))
}

func TestExportServiceDaySchedulePDFRequiresDate(t *testing.T) {
	svc, _, _ := newExportServiceForTest(t)
	_, err := svc.DaySchedulePDF(context.Background(), "")
	require.Error(t, err)
}

func TestExportServiceRosterCSV(t *testing.T) {
	svc, _, students := newExportServiceForTest(t)
	students.Append(models.Student{ID: "1", Name: "Zhang Wei", ClassName: "Class 3", DormNumber: "502"})

	data, err := svc.RosterCSV(context.Background())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "Name,Class")
	assert.Contains(t, out, "Zhang Wei")
	assert.Contains(t, out, "502")
}

func TestExportServiceRosterCSVEmptyRosterStillRenders(t *testing.T) {
	svc, _, _ := newExportServiceForTest(t)
	data, err := svc.RosterCSV(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(data), "Name")
}
