package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bilbo-wu/teacher-focus-api/internal/ai"
	"github.com/bilbo-wu/teacher-focus-api/internal/models"
)

// Fixed user-facing fallbacks for parent-message drafting. These are
// returned as regular payloads, never as errors.
const (
	msgMissingKey    = "API Key 缺失，请配置。"
	msgEmptyResult   = "无法生成消息。"
	msgProviderError = "生成消息出错，请检查网络。"
)

// extractionProvider is the slice of the AI client the service needs.
type extractionProvider interface {
	AnalyzeMemo(ctx context.Context, memoContent string) (*ai.MemoVerdict, error)
	ParseScheduleFromText(ctx context.Context, text string) ([]ai.ScheduleDraft, error)
	ParseScheduleFromAudio(ctx context.Context, audio []byte, mimeType string) (*ai.ScheduleDraft, error)
	DraftParentMessage(ctx context.Context, studentName, observation, tone string) (string, error)
}

// ExtractionService is the degradation boundary around the AI provider:
// every operation is attempted exactly once and any transport, auth or
// parse failure collapses into an absent result. Callers must treat absence
// as "leave state unchanged".
type ExtractionService struct {
	provider extractionProvider
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewExtractionService constructs the extraction service.
func NewExtractionService(provider extractionProvider, metrics *MetricsService, logger *zap.Logger) *ExtractionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExtractionService{provider: provider, metrics: metrics, logger: logger}
}

// AnalyzeMemo classifies a memo. It returns nil when the provider fails or
// produces an unusable verdict.
func (s *ExtractionService) AnalyzeMemo(ctx context.Context, memoContent string) *models.MemoAnalysis {
	start := time.Now()
	verdict, err := s.provider.AnalyzeMemo(ctx, memoContent)
	s.metrics.ObserveAICall("analyze_memo", err == nil, time.Since(start))
	if err != nil {
		s.logger.Warn("memo analysis unavailable", zap.Error(err))
		return nil
	}
	category := models.TaskCategory(verdict.SuggestedCategory)
	if !category.Valid() {
		s.logger.Warn("memo analysis returned unknown category", zap.String("category", verdict.SuggestedCategory))
		return nil
	}
	return &models.MemoAnalysis{SuggestedCategory: category, PolishedText: verdict.PolishedText}
}

// ParseScheduleFromText extracts schedule items from free text. Each item
// gets a fresh identifier, empty pre/post task lists when omitted and a
// CLASS type default. Any failure yields an empty slice.
func (s *ExtractionService) ParseScheduleFromText(ctx context.Context, text string) []models.ScheduleItem {
	start := time.Now()
	drafts, err := s.provider.ParseScheduleFromText(ctx, text)
	s.metrics.ObserveAICall("parse_schedule_text", err == nil, time.Since(start))
	if err != nil {
		s.logger.Warn("text schedule extraction unavailable", zap.Error(err))
		return []models.ScheduleItem{}
	}

	items := make([]models.ScheduleItem, 0, len(drafts))
	for _, d := range drafts {
		item := draftToItem(d)
		item.ID = uuid.NewString()
		if item.Type == "" {
			item.Type = models.ScheduleTypeClass
		}
		items = append(items, item)
	}
	return items
}

// ParseScheduleFromAudio extracts a single partial schedule item from an
// audio blob. The item carries no identifier and its type is left exactly as
// the provider returned it; defaulting happens at save time. Failures yield
// nil.
func (s *ExtractionService) ParseScheduleFromAudio(ctx context.Context, audio []byte, mimeType string) *models.ScheduleItem {
	start := time.Now()
	draft, err := s.provider.ParseScheduleFromAudio(ctx, audio, mimeType)
	s.metrics.ObserveAICall("parse_schedule_audio", err == nil, time.Since(start))
	if err != nil {
		s.logger.Warn("audio schedule extraction unavailable", zap.Error(err))
		return nil
	}
	item := draftToItem(*draft)
	return &item
}

// DraftParentMessage writes a short parent-facing message. Provider failures
// produce a fixed human-readable placeholder instead of an error.
func (s *ExtractionService) DraftParentMessage(ctx context.Context, studentName, observation string, tone models.MessageTone) string {
	start := time.Now()
	text, err := s.provider.DraftParentMessage(ctx, studentName, observation, string(tone))
	s.metrics.ObserveAICall("draft_parent_message", err == nil, time.Since(start))
	if err != nil {
		s.logger.Warn("parent message drafting unavailable", zap.Error(err))
		if errors.Is(err, ai.ErrMissingAPIKey) {
			return msgMissingKey
		}
		return msgProviderError
	}
	if text == "" {
		return msgEmptyResult
	}
	return text
}

func draftToItem(d ai.ScheduleDraft) models.ScheduleItem {
	pre := d.PreTasks
	if pre == nil {
		pre = []string{}
	}
	post := d.PostTasks
	if post == nil {
		post = []string{}
	}
	return models.ScheduleItem{
		Type:      models.ScheduleType(d.Type),
		Subject:   d.Subject,
		ClassName: d.ClassName,
		Room:      d.Room,
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
		PreTasks:  pre,
		PostTasks: post,
	}
}
