package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bilbo-wu/teacher-focus-api/internal/models"
	"github.com/bilbo-wu/teacher-focus-api/internal/store"
	appErrors "github.com/bilbo-wu/teacher-focus-api/pkg/errors"
)

func newScheduleServiceForTest() (*ScheduleService, *store.ScheduleStore) {
	schedules := store.NewScheduleStore()
	cache := NewCacheService(nil, nil, 0, zap.NewNop(), false)
	svc := NewScheduleService(schedules, cache, nil, zap.NewNop())
	return svc, schedules
}

func TestScheduleServiceCreateDefaults(t *testing.T) {
	svc, _ := newScheduleServiceForTest()

	item, err := svc.Create(context.Background(), SaveScheduleRequest{
		Date:      "2024-01-10",
		Subject:   "数学",
		StartTime: "08:00",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, models.ScheduleTypeClass, item.Type)
	assert.NotNil(t, item.PreTasks)
	assert.NotNil(t, item.PostTasks)
}

func TestScheduleServiceCreateValidation(t *testing.T) {
	svc, schedules := newScheduleServiceForTest()

	_, err := svc.Create(context.Background(), SaveScheduleRequest{Subject: "数学"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Empty(t, schedules.All())
}

func TestScheduleServiceUpdateUpserts(t *testing.T) {
	svc, schedules := newScheduleServiceForTest()

	_, err := svc.Update(context.Background(), "fixed-id", SaveScheduleRequest{
		Date:      "2024-01-10",
		Subject:   "英语",
		StartTime: "10:00",
	})
	require.NoError(t, err)

	stored, ok := schedules.Get("fixed-id")
	require.True(t, ok)
	assert.Equal(t, "英语", stored.Subject)

	_, err = svc.Update(context.Background(), "fixed-id", SaveScheduleRequest{
		Date:      "2024-01-10",
		Subject:   "语文",
		StartTime: "11:00",
	})
	require.NoError(t, err)
	require.Len(t, schedules.All(), 1)
	stored, _ = schedules.Get("fixed-id")
	assert.Equal(t, "语文", stored.Subject)
}

func TestScheduleServiceImportClassRow(t *testing.T) {
	svc, _ := newScheduleServiceForTest()

	items, err := svc.Import(context.Background(), ImportScheduleRequest{
		Text:         "2024-01-10\t数学\t08:00\t08:45\t高一3班\t301\t课程\t收作业",
		FallbackDate: "2024-02-01",
	})
	require.NoError(t, err)
	require.Len(t, items, 1)

	got := items[0]
	assert.Equal(t, "2024-01-10", got.Date)
	assert.Equal(t, "数学", got.Subject)
	assert.Equal(t, "08:00", got.StartTime)
	assert.Equal(t, "08:45", got.EndTime)
	assert.Equal(t, "高一3班", got.ClassName)
	assert.Equal(t, "301", got.Room)
	assert.Equal(t, models.ScheduleTypeClass, got.Type)
	assert.Equal(t, []string{"收作业"}, got.PostTasks)
	assert.Empty(t, got.PreTasks)
}

func TestScheduleServiceImportShortDutyRow(t *testing.T) {
	svc, _ := newScheduleServiceForTest()

	items, err := svc.Import(context.Background(), ImportScheduleRequest{
		Text:         "2024-01-10\t值班\t19:00\t21:00",
		FallbackDate: "2024-02-01",
	})
	require.NoError(t, err)
	require.Len(t, items, 1)

	got := items[0]
	assert.Equal(t, "2024-01-10", got.Date)
	assert.Equal(t, models.ScheduleTypeDuty, got.Type)
	assert.Equal(t, "值班", got.Subject)
	assert.Equal(t, "19:00", got.StartTime)
	assert.Equal(t, "21:00", got.EndTime)
	assert.Empty(t, got.ClassName)
	assert.Empty(t, got.Room)
}

func TestScheduleServiceImportTypeColumnWins(t *testing.T) {
	svc, _ := newScheduleServiceForTest()

	items, err := svc.Import(context.Background(), ImportScheduleRequest{
		Text:         "晚自习\t自习\t19:00\t21:00\t高一3班\t301\t值班",
		FallbackDate: "2024-01-10",
	})
	require.NoError(t, err)
	require.Len(t, items, 1)

	got := items[0]
	assert.Equal(t, "2024-01-10", got.Date)
	assert.Equal(t, models.ScheduleTypeDuty, got.Type)
	assert.Equal(t, "自习", got.Subject)
}

func TestScheduleServiceImportCommaSeparated(t *testing.T) {
	svc, _ := newScheduleServiceForTest()

	items, err := svc.Import(context.Background(), ImportScheduleRequest{
		Text:         "2024-01-10,语文,10:00,10:45,高一3班",
		FallbackDate: "2024-02-01",
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "语文", items[0].Subject)
	assert.Equal(t, "高一3班", items[0].ClassName)
}

func TestScheduleServiceImportSkipsShortRows(t *testing.T) {
	svc, _ := newScheduleServiceForTest()

	items, err := svc.Import(context.Background(), ImportScheduleRequest{
		Text:         "只有两列\t08:00\n2024-01-10\t数学\t08:00",
		FallbackDate: "2024-01-10",
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "数学", items[0].Subject)
}

func TestScheduleServiceImportEmpty(t *testing.T) {
	svc, schedules := newScheduleServiceForTest()

	_, err := svc.Import(context.Background(), ImportScheduleRequest{
		Text:         "垃圾行\n另一行",
		FallbackDate: "2024-01-10",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrImportEmpty.Code, appErr.Code)
	assert.Empty(t, schedules.All())
}

func TestScheduleServiceImportedRowsSorted(t *testing.T) {
	svc, _ := newScheduleServiceForTest()

	_, err := svc.Create(context.Background(), SaveScheduleRequest{
		Date: "2024-01-10", Subject: "早读", StartTime: "07:00",
	})
	require.NoError(t, err)

	_, err = svc.Import(context.Background(), ImportScheduleRequest{
		Text:         "2024-01-10\t晚自习\t19:00\n2024-01-10\t数学\t08:00",
		FallbackDate: "2024-01-10",
	})
	require.NoError(t, err)

	day, err := svc.ListByDate(context.Background(), "2024-01-10")
	require.NoError(t, err)
	require.Len(t, day, 3)
	assert.Equal(t, "早读", day[0].Subject)
	assert.Equal(t, "数学", day[1].Subject)
	assert.Equal(t, "晚自习", day[2].Subject)
}

func TestScheduleServiceListRequiresDate(t *testing.T) {
	svc, _ := newScheduleServiceForTest()
	_, err := svc.ListByDate(context.Background(), " ")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
