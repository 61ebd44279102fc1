package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bilbo-wu/teacher-focus-api/internal/service"
	"github.com/bilbo-wu/teacher-focus-api/internal/store"
	"github.com/bilbo-wu/teacher-focus-api/pkg/response"
)

func newScheduleHandlerForTest() *ScheduleHandler {
	schedules := store.NewScheduleStore()
	cache := service.NewCacheService(nil, nil, 0, zap.NewNop(), false)
	svc := service.NewScheduleService(schedules, cache, nil, zap.NewNop())
	return NewScheduleHandler(svc)
}

func TestScheduleHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newScheduleHandlerForTest()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"date":"2024-01-10","subject":"数学","start_time":"08:00"}`
	req, _ := http.NewRequest(http.MethodPost, "/schedule", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Data)
}

func TestScheduleHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newScheduleHandlerForTest()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/schedule", bytes.NewBufferString(`{"date":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleHandlerCreateMissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newScheduleHandlerForTest()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/schedule", bytes.NewBufferString(`{"subject":"数学"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
}

func TestScheduleHandlerImportEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newScheduleHandlerForTest()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"text":"垃圾行","fallback_date":"2024-01-10"}`
	req, _ := http.NewRequest(http.MethodPost, "/schedule/import", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Import(c)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "IMPORT_EMPTY", envelope.Error.Code)
}

func TestScheduleHandlerListRequiresDate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newScheduleHandlerForTest()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/schedule", nil)
	c.Request = req

	handler.ListByDate(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleHandlerDeleteMissingIsNoContent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newScheduleHandlerForTest()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/schedule/missing", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Delete(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
}
