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

func newStudentServiceForTest() (*StudentService, *store.StudentStore) {
	students := store.NewStudentStore()
	return NewStudentService(students, nil, zap.NewNop()), students
}

func TestStudentServiceCreate(t *testing.T) {
	svc, _ := newStudentServiceForTest()

	student, err := svc.Create(context.Background(), CreateStudentRequest{
		Name:      "张伟",
		ClassName: "高一3班",
		Gender:    "男",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, student.ID)
	assert.Equal(t, "男", student.Gender)
}

func TestStudentServiceCreateDropsInvalidGender(t *testing.T) {
	svc, _ := newStudentServiceForTest()

	student, err := svc.Create(context.Background(), CreateStudentRequest{
		Name:      "李娜",
		ClassName: "高一3班",
		Gender:    "其他",
	})
	require.NoError(t, err)
	assert.Empty(t, student.Gender)
}

func TestStudentServiceCreateValidation(t *testing.T) {
	svc, students := newStudentServiceForTest()

	_, err := svc.Create(context.Background(), CreateStudentRequest{Name: "张伟"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, students.Len())
}

func TestStudentServiceImportRows(t *testing.T) {
	svc, _ := newStudentServiceForTest()

	students, err := svc.Import(context.Background(), ImportStudentsRequest{
		Text: "张伟\t高一3班\t男\t13800000000\t502\n李娜,高一3班,女\n王芳\t高二1班\t未知",
	})
	require.NoError(t, err)
	require.Len(t, students, 3)

	assert.Equal(t, "张伟", students[0].Name)
	assert.Equal(t, "男", students[0].Gender)
	assert.Equal(t, "13800000000", students[0].ParentContact)
	assert.Equal(t, "502", students[0].DormNumber)

	assert.Equal(t, "女", students[1].Gender)

	// gender outside the accepted set is stored empty
	assert.Empty(t, students[2].Gender)
}

func TestStudentServiceImportSkipsShortRows(t *testing.T) {
	svc, _ := newStudentServiceForTest()

	students, err := svc.Import(context.Background(), ImportStudentsRequest{
		Text: "只有名字\n张伟\t高一3班",
	})
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "张伟", students[0].Name)
}

func TestStudentServiceImportEmpty(t *testing.T) {
	svc, students := newStudentServiceForTest()

	_, err := svc.Import(context.Background(), ImportStudentsRequest{Text: "垃圾行\n另一行"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrImportEmpty.Code, appErrors.FromError(err).Code)
	assert.Zero(t, students.Len())
}

func TestStudentServiceImportKeepsDuplicates(t *testing.T) {
	svc, students := newStudentServiceForTest()

	_, err := svc.Import(context.Background(), ImportStudentsRequest{
		Text: "张伟\t高一3班\n张伟\t高一3班",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, students.Len())
}

func TestStudentServiceGetUnknown(t *testing.T) {
	svc, _ := newStudentServiceForTest()
	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestStudentServiceListAndGroups(t *testing.T) {
	svc, _ := newStudentServiceForTest()

	_, err := svc.Import(context.Background(), ImportStudentsRequest{
		Text: "张伟\t高一3班\n李娜\t高一3班\n王芳\t高二1班",
	})
	require.NoError(t, err)

	listed, total := svc.List(context.Background(), models.StudentFilter{Search: "高一"})
	assert.Equal(t, 2, total)
	assert.Len(t, listed, 2)

	groups := svc.Groups(context.Background())
	require.Len(t, groups, 2)
	assert.Equal(t, "高一3班", groups[0].ClassName)
}
