package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bilbo-wu/teacher-focus-api/internal/ai"
	"github.com/bilbo-wu/teacher-focus-api/internal/models"
)

type providerStub struct {
	memoResp  *ai.MemoVerdict
	memoErr   error
	textResp  []ai.ScheduleDraft
	textErr   error
	audioResp *ai.ScheduleDraft
	audioErr  error
	msgResp   string
	msgErr    error
	lastTone  string
}

func (p *providerStub) AnalyzeMemo(ctx context.Context, memoContent string) (*ai.MemoVerdict, error) {
	return p.memoResp, p.memoErr
}

func (p *providerStub) ParseScheduleFromText(ctx context.Context, text string) ([]ai.ScheduleDraft, error) {
	return p.textResp, p.textErr
}

func (p *providerStub) ParseScheduleFromAudio(ctx context.Context, audio []byte, mimeType string) (*ai.ScheduleDraft, error) {
	return p.audioResp, p.audioErr
}

func (p *providerStub) DraftParentMessage(ctx context.Context, studentName, observation, tone string) (string, error) {
	p.lastTone = tone
	return p.msgResp, p.msgErr
}

func newExtractionServiceForTest(p *providerStub) *ExtractionService {
	return NewExtractionService(p, nil, zap.NewNop())
}

func TestExtractionAnalyzeMemoSuccess(t *testing.T) {
	svc := newExtractionServiceForTest(&providerStub{
		memoResp: &ai.MemoVerdict{SuggestedCategory: "TEACHING", PolishedText: "准备周五的公开课"},
	})

	got := svc.AnalyzeMemo(context.Background(), "周五公开课")
	require.NotNil(t, got)
	assert.Equal(t, models.TaskCategoryTeaching, got.SuggestedCategory)
	assert.Equal(t, "准备周五的公开课", got.PolishedText)
}

func TestExtractionAnalyzeMemoFailureIsNil(t *testing.T) {
	svc := newExtractionServiceForTest(&providerStub{memoErr: errors.New("boom")})
	assert.Nil(t, svc.AnalyzeMemo(context.Background(), "anything"))
}

func TestExtractionAnalyzeMemoUnknownCategoryIsNil(t *testing.T) {
	svc := newExtractionServiceForTest(&providerStub{
		memoResp: &ai.MemoVerdict{SuggestedCategory: "WHATEVER", PolishedText: "x"},
	})
	assert.Nil(t, svc.AnalyzeMemo(context.Background(), "anything"))
}

func TestExtractionParseTextDefaults(t *testing.T) {
	svc := newExtractionServiceForTest(&providerStub{
		textResp: []ai.ScheduleDraft{
			{Subject: "数学", StartTime: "08:00"},
			{Subject: "值班", StartTime: "19:00", Type: "DUTY", PreTasks: []string{"打印名单"}},
		},
	})

	items := svc.ParseScheduleFromText(context.Background(), "明早八点数学课")
	require.Len(t, items, 2)

	assert.NotEmpty(t, items[0].ID)
	assert.Equal(t, models.ScheduleTypeClass, items[0].Type)
	assert.NotNil(t, items[0].PreTasks)
	assert.NotNil(t, items[0].PostTasks)

	assert.Equal(t, models.ScheduleTypeDuty, items[1].Type)
	assert.Equal(t, []string{"打印名单"}, items[1].PreTasks)
}

func TestExtractionParseTextFailureIsEmptySlice(t *testing.T) {
	svc := newExtractionServiceForTest(&providerStub{textErr: errors.New("boom")})
	items := svc.ParseScheduleFromText(context.Background(), "anything")
	require.NotNil(t, items)
	assert.Empty(t, items)
}

func TestExtractionParseAudioLeavesTypeUntouched(t *testing.T) {
	svc := newExtractionServiceForTest(&providerStub{
		audioResp: &ai.ScheduleDraft{Subject: "晚自习", StartTime: "19:00"},
	})

	item := svc.ParseScheduleFromAudio(context.Background(), []byte("blob"), "audio/webm")
	require.NotNil(t, item)
	assert.Empty(t, item.ID)
	assert.Empty(t, string(item.Type))
	assert.Equal(t, "晚自习", item.Subject)
}

func TestExtractionParseAudioFailureIsNil(t *testing.T) {
	svc := newExtractionServiceForTest(&providerStub{audioErr: errors.New("boom")})
	assert.Nil(t, svc.ParseScheduleFromAudio(context.Background(), []byte("blob"), ""))
}

func TestExtractionDraftMessageFallbacks(t *testing.T) {
	missingKey := newExtractionServiceForTest(&providerStub{msgErr: ai.ErrMissingAPIKey})
	assert.Equal(t, "API Key 缺失，请配置。", missingKey.DraftParentMessage(context.Background(), "张伟", "上课睡觉", models.ToneFormal))

	failed := newExtractionServiceForTest(&providerStub{msgErr: errors.New("network")})
	assert.Equal(t, "生成消息出错，请检查网络。", failed.DraftParentMessage(context.Background(), "张伟", "上课睡觉", models.ToneFormal))

	empty := newExtractionServiceForTest(&providerStub{msgResp: ""})
	assert.Equal(t, "无法生成消息。", empty.DraftParentMessage(context.Background(), "张伟", "上课睡觉", models.ToneFormal))
}

func TestExtractionDraftMessagePassesTone(t *testing.T) {
	stub := &providerStub{msgResp: "家长您好"}
	svc := newExtractionServiceForTest(stub)

	got := svc.DraftParentMessage(context.Background(), "张伟", "进步明显", models.ToneConcerned)
	assert.Equal(t, "家长您好", got)
	assert.Equal(t, "concerned", stub.lastTone)
}
