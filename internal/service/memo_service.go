package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bilbo-wu/teacher-focus-api/internal/models"
	"github.com/bilbo-wu/teacher-focus-api/internal/store"
	appErrors "github.com/bilbo-wu/teacher-focus-api/pkg/errors"
)

// MemoService manages freeform memos and their one-shot triage.
type MemoService struct {
	memos      *store.MemoStore
	extraction *ExtractionService
	logger     *zap.Logger
	now        func() time.Time
}

// NewMemoService constructs the memo service.
func NewMemoService(memos *store.MemoStore, extraction *ExtractionService, logger *zap.Logger) *MemoService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoService{memos: memos, extraction: extraction, logger: logger, now: time.Now}
}

// Add captures a memo. Content must be non-blank.
func (s *MemoService) Add(ctx context.Context, content string) (*models.Memo, error) {
	if strings.TrimSpace(content) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "content is required")
	}
	memo := models.Memo{ID: uuid.NewString(), Content: content, CreatedAt: s.now()}
	s.memos.Add(memo)
	return &memo, nil
}

// List returns all memos, newest first.
func (s *MemoService) List(ctx context.Context) []models.Memo {
	return s.memos.List()
}

// Delete removes one memo. Missing identifiers are a no-op.
func (s *MemoService) Delete(ctx context.Context, id string) {
	s.memos.Delete(id)
}

// Analyze classifies one stored memo. The analysis is ephemeral; the memo
// itself is never mutated. An absent extraction result maps to a service
// unavailability error so the caller can retry later.
func (s *MemoService) Analyze(ctx context.Context, id string) (*models.MemoAnalysis, error) {
	memo, ok := s.memos.Get(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "memo not found")
	}

	analysis := s.extraction.AnalyzeMemo(ctx, memo.Content)
	if analysis == nil {
		return nil, appErrors.Clone(appErrors.ErrExtraction, "memo analysis unavailable")
	}
	return analysis, nil
}
