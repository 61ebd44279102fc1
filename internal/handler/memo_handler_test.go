package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bilbo-wu/teacher-focus-api/internal/ai"
	"github.com/bilbo-wu/teacher-focus-api/internal/models"
	"github.com/bilbo-wu/teacher-focus-api/internal/service"
	"github.com/bilbo-wu/teacher-focus-api/internal/store"
	"github.com/bilbo-wu/teacher-focus-api/pkg/response"
)

type extractionStub struct {
	memoResp  *ai.MemoVerdict
	memoErr   error
	audioResp *ai.ScheduleDraft
}

func (s *extractionStub) AnalyzeMemo(ctx context.Context, memoContent string) (*ai.MemoVerdict, error) {
	return s.memoResp, s.memoErr
}

func (s *extractionStub) ParseScheduleFromText(ctx context.Context, text string) ([]ai.ScheduleDraft, error) {
	return nil, errors.New("not used")
}

func (s *extractionStub) ParseScheduleFromAudio(ctx context.Context, audio []byte, mimeType string) (*ai.ScheduleDraft, error) {
	if s.audioResp == nil {
		return nil, errors.New("provider unavailable")
	}
	return s.audioResp, nil
}

func (s *extractionStub) DraftParentMessage(ctx context.Context, studentName, observation, tone string) (string, error) {
	return "", errors.New("not used")
}

func newMemoHandlerForTest(stub *extractionStub) (*MemoHandler, *store.MemoStore) {
	memos := store.NewMemoStore()
	extraction := service.NewExtractionService(stub, nil, zap.NewNop())
	svc := service.NewMemoService(memos, extraction, zap.NewNop())
	return NewMemoHandler(svc), memos
}

func TestMemoHandlerAddAndAnalyze(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, memos := newMemoHandlerForTest(&extractionStub{
		memoResp: &ai.MemoVerdict{SuggestedCategory: "URGENT", PolishedText: "今天交排查表"},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/memos", bytes.NewBufferString(`{"content":"排查表"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	handler.Add(c)
	require.Equal(t, http.StatusCreated, w.Code)

	stored := memos.List()
	require.Len(t, stored, 1)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	req, _ = http.NewRequest(http.MethodPost, "/memos/"+stored[0].ID+"/analyze", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: stored[0].ID}}
	handler.Analyze(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data models.MemoAnalysis `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, models.TaskCategoryUrgent, envelope.Data.SuggestedCategory)
}

func TestMemoHandlerAnalyzeUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, memos := newMemoHandlerForTest(&extractionStub{memoErr: errors.New("provider down")})
	memos.Add(models.Memo{ID: "memo-1", Content: "x"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/memos/memo-1/analyze", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "memo-1"}}

	handler.Analyze(c)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "EXTRACTION_UNAVAILABLE", envelope.Error.Code)
}

func TestMemoHandlerAnalyzeUnknownMemo(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := newMemoHandlerForTest(&extractionStub{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/memos/missing/analyze", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Analyze(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
