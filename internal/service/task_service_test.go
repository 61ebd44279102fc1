package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bilbo-wu/teacher-focus-api/internal/models"
	"github.com/bilbo-wu/teacher-focus-api/internal/store"
	appErrors "github.com/bilbo-wu/teacher-focus-api/pkg/errors"
)

func newTaskServiceForTest(now time.Time) (*TaskService, *store.TaskStore, *store.ScheduleStore) {
	tasks := store.NewTaskStore()
	scheduleSvc, schedules := newScheduleServiceForTest()
	svc := NewTaskService(tasks, scheduleSvc, nil, zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc, tasks, schedules
}

func TestTaskServiceCreateValidation(t *testing.T) {
	svc, tasks, _ := newTaskServiceForTest(time.Now())

	_, err := svc.Create(context.Background(), CreateTaskRequest{Category: models.TaskCategoryUrgent})
	require.Error(t, err)

	_, err = svc.Create(context.Background(), CreateTaskRequest{Content: "备课", Category: "BOGUS"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	assert.Empty(t, tasks.List())
}

func TestTaskServiceBucketDerivation(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local)
	svc, _, _ := newTaskServiceForTest(now)

	cases := []struct {
		due  time.Time
		want models.DueBucket
	}{
		{time.Date(2024, 1, 10, 23, 0, 0, 0, time.Local), models.DueToday},
		{time.Date(2024, 1, 11, 0, 30, 0, 0, time.Local), models.DueTomorrow},
		{time.Date(2024, 1, 14, 9, 0, 0, 0, time.Local), models.DueWeek},
		{time.Date(2024, 1, 9, 9, 0, 0, 0, time.Local), models.DueWeek},
	}
	for _, tc := range cases {
		due := tc.due
		task, err := svc.Create(context.Background(), CreateTaskRequest{
			Content:     "催交材料",
			Category:    models.TaskCategoryUrgent,
			DueDateTime: &due,
		})
		require.NoError(t, err)
		assert.Equal(t, tc.want, task.DueDate)
	}
}

func TestTaskServiceBridgeCreatesDutySlot(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local)
	svc, _, schedules := newTaskServiceForTest(now)

	due := time.Date(2024, 1, 10, 16, 30, 0, 0, time.Local)
	task, err := svc.Create(context.Background(), CreateTaskRequest{
		Content:        "提交教案",
		Category:       models.TaskCategoryTeaching,
		DueDateTime:    &due,
		SyncToSchedule: true,
	})
	require.NoError(t, err)

	derived, ok := schedules.Get("sync-" + task.ID)
	require.True(t, ok)
	assert.Equal(t, models.ScheduleTypeDuty, derived.Type)
	assert.Equal(t, "2024-01-10", derived.Date)
	assert.Equal(t, "16:30", derived.StartTime)
	assert.Equal(t, "17:15", derived.EndTime)
	assert.Equal(t, "提交教案", derived.Subject)
	assert.Empty(t, derived.PreTasks)
	assert.Empty(t, derived.PostTasks)
}

func TestTaskServiceBridgeEndTimeWrapsMidnight(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local)
	svc, _, schedules := newTaskServiceForTest(now)

	due := time.Date(2024, 1, 10, 23, 30, 0, 0, time.Local)
	task, err := svc.Create(context.Background(), CreateTaskRequest{
		Content:        "查寝",
		Category:       models.TaskCategoryUrgent,
		DueDateTime:    &due,
		SyncToSchedule: true,
	})
	require.NoError(t, err)

	derived, ok := schedules.Get("sync-" + task.ID)
	require.True(t, ok)
	assert.Equal(t, "23:30", derived.StartTime)
	assert.Equal(t, "00:15", derived.EndTime)
}

func TestTaskServiceNoBridgeWithoutDueTime(t *testing.T) {
	svc, _, schedules := newTaskServiceForTest(time.Now())

	_, err := svc.Create(context.Background(), CreateTaskRequest{
		Content:        "整理资料",
		Category:       models.TaskCategoryLife,
		SyncToSchedule: true,
	})
	require.NoError(t, err)
	assert.Empty(t, schedules.All())
}

func TestTaskServiceBridgeIsOneShot(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local)
	svc, tasks, schedules := newTaskServiceForTest(now)

	due := time.Date(2024, 1, 10, 14, 0, 0, 0, time.Local)
	task, err := svc.Create(context.Background(), CreateTaskRequest{
		Content:        "开班会",
		Category:       models.TaskCategoryStudent,
		DueDateTime:    &due,
		SyncToSchedule: true,
	})
	require.NoError(t, err)

	// completing the task leaves the derived slot untouched
	_, err = svc.Toggle(context.Background(), task.ID)
	require.NoError(t, err)

	derived, ok := schedules.Get("sync-" + task.ID)
	require.True(t, ok)
	assert.Equal(t, "开班会", derived.Subject)

	toggled, _ := tasks.Get(task.ID)
	assert.True(t, toggled.IsCompleted)
}

func TestTaskServiceToggleUnknown(t *testing.T) {
	svc, _, _ := newTaskServiceForTest(time.Now())
	_, err := svc.Toggle(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTaskServiceListNewestFirst(t *testing.T) {
	svc, _, _ := newTaskServiceForTest(time.Now())

	_, err := svc.Create(context.Background(), CreateTaskRequest{Content: "第一条", Category: models.TaskCategoryLife})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateTaskRequest{Content: "第二条", Category: models.TaskCategoryLife})
	require.NoError(t, err)

	got := svc.List(context.Background())
	require.Len(t, got, 2)
	assert.Equal(t, "第二条", got[0].Content)
}
