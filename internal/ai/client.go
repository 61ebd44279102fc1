// Package ai wraps the hosted generative-model endpoint used for memo
// classification, schedule extraction and parent-message drafting. The
// client speaks the provider's generateContent protocol; degradation policy
// (absent results instead of errors) lives one layer up in the extraction
// service.
package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bilbo-wu/teacher-focus-api/pkg/config"
)

// ErrMissingAPIKey is returned before any network call when the provider key
// is not configured.
var ErrMissingAPIKey = errors.New("ai: api key not configured")

// Client issues single-attempt requests against the provider. No retry, no
// caller-visible partial state; the request context bounds the call.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient constructs a provider client from configuration.
func NewClient(cfg config.AIConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ScheduleDraft is the partially-populated schedule shape the provider
// returns. Field names mirror the provider-side JSON contract; every field
// is optional.
type ScheduleDraft struct {
	Subject   string   `json:"subject"`
	ClassName string   `json:"className"`
	Room      string   `json:"room"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Type      string   `json:"type"`
	PreTasks  []string `json:"preTasks"`
	PostTasks []string `json:"postTasks"`
}

// MemoVerdict is the provider's classification of a memo.
type MemoVerdict struct {
	SuggestedCategory string `json:"suggestedCategory"`
	PolishedText      string `json:"polishedText"`
}

const memoPrompt = `分析这条老师的速记内容: "%s"。
1. 将其分类为以下之一: URGENT (紧急/行政), TEACHING (教学/备课), STUDENT (学生/家长), LIFE (个人/琐事)。
2. 将文本润色为一个清晰、可执行的待办事项标题（使用中文）。

返回 JSON 格式: {"suggestedCategory": "...", "polishedText": "..."}`

const textSchedulePrompt = `你是一个日程助手。请从以下文本中提取日程安排，并转换为 JSON 数组。
文本: "%s"

要求:
1. 每个日程项包含: subject (科目/事项), className (班级), room (地点), startTime (HH:mm), endTime (HH:mm), type (CLASS, DUTY, BREAK)。
2. 如果没有具体时间，请根据上下文推断或留空。
3. preTasks 和 postTasks 为空数组。
4. 今天的日期假设为今天。

返回 JSON 格式: [{ "subject": "...", "startTime": "...", ... }]`

const audioSchedulePrompt = `请听这段语音，提取其中的日程信息。
返回一个 JSON 对象，包含:
- subject (科目或事项名称)
- className (班级，如高一3班)
- room (教室/地点)
- startTime (开始时间 HH:mm)
- endTime (结束时间 HH:mm)
- type (CLASS, DUTY, BREAK - 默认为 CLASS)
- preTasks (提到的课前任务，数组)
- postTasks (提到的课后任务，数组)

如果缺少某些信息，请留空。`

const parentMessagePrompt = `角色: 你是一位经验丰富、专业但平易近人的中国高中班主任。
任务: 给家长写一条简短的反馈信息（类似微信/短信风格，100字以内）。
上下文:
- 学生姓名: %s
- 观察情况: %s
- 语气: %s

只输出短信内容，不要包含标题或占位符。请使用中文。`

// AnalyzeMemo classifies a memo into one of the four task categories and
// polishes the text into an actionable title.
func (c *Client) AnalyzeMemo(ctx context.Context, memoContent string) (*MemoVerdict, error) {
	prompt := fmt.Sprintf(memoPrompt, memoContent)
	var verdict MemoVerdict
	if err := c.generateJSON(ctx, []part{{Text: prompt}}, &verdict); err != nil {
		return nil, err
	}
	return &verdict, nil
}

// ParseScheduleFromText extracts zero or more schedule drafts from free text.
func (c *Client) ParseScheduleFromText(ctx context.Context, text string) ([]ScheduleDraft, error) {
	prompt := fmt.Sprintf(textSchedulePrompt, text)
	var drafts []ScheduleDraft
	if err := c.generateJSON(ctx, []part{{Text: prompt}}, &drafts); err != nil {
		return nil, err
	}
	return drafts, nil
}

// ParseScheduleFromAudio extracts a single schedule draft from an audio blob.
// The blob is forwarded opaque; mimeType names its container format.
func (c *Client) ParseScheduleFromAudio(ctx context.Context, audio []byte, mimeType string) (*ScheduleDraft, error) {
	if mimeType == "" {
		mimeType = "audio/webm"
	}
	parts := []part{
		{InlineData: &inlineData{MIMEType: mimeType, Data: base64.StdEncoding.EncodeToString(audio)}},
		{Text: audioSchedulePrompt},
	}
	var draft ScheduleDraft
	if err := c.generateJSON(ctx, parts, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// DraftParentMessage writes a short parent-facing message about an
// observation, in the requested tone.
func (c *Client) DraftParentMessage(ctx context.Context, studentName, observation, tone string) (string, error) {
	var toneLabel string
	switch tone {
	case "formal":
		toneLabel = "正式"
	case "concerned":
		toneLabel = "关切严肃"
	default:
		toneLabel = "亲切友好"
	}
	prompt := fmt.Sprintf(parentMessagePrompt, studentName, observation, toneLabel)
	return c.generateText(ctx, []part{{Text: prompt}}, false)
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generateJSON(ctx context.Context, parts []part, dest interface{}) error {
	text, err := c.generateText(ctx, parts, true)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(stripFences(text)), dest); err != nil {
		return fmt.Errorf("ai: decode structured output: %w", err)
	}
	return nil
}

func (c *Client) generateText(ctx context.Context, parts []part, wantJSON bool) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	payload := generateRequest{Contents: []content{{Parts: parts}}}
	if wantJSON {
		payload.GenerationConfig = &generationConfig{ResponseMIMEType: "application/json"}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("ai: encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai: provider status %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("ai: decode response: %w", err)
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("ai: empty response")
	}
	return strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text), nil
}

// stripFences removes a markdown code fence the model occasionally wraps
// around structured output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
