package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/yeisme/codescope/pkg/configs"
	"github.com/yeisme/codescope/pkg/models"
	"github.com/yeisme/codescope/pkg/utils/log"
)

var (
	ErrNotConfigured   = errors.New("llm: api key is not configured")
	ErrNoIssues        = errors.New("llm: no issues to fix")
	ErrRateLimited     = errors.New("llm: rate limit exceeded, please wait a moment and try again")
	ErrPaymentRequired = errors.New("llm: usage limit reached, please add credits to continue")
)

// Message 对话中的一条消息，Role 为 user 或 assistant
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client 修复建议与代码问答
type Client interface {
	// Suggest 针对 issues 中挑选出的问题生成修复
	Suggest(ctx context.Context, code, language string, issues []models.Issue) (FixResult, error)
	// Chat 以流式方式回答，每收到一段内容调用 onDelta，返回完整回复
	Chat(ctx context.Context, history []Message, code, language string, result *models.AnalysisResult, onDelta func(string)) (string, error)
}

// OpenAIClient 基于 OpenAI 兼容接口的实现
type OpenAIClient struct {
	client *openai.Client
	cfg    configs.LLMConfig
}

var _ Client = (*OpenAIClient)(nil)

// NewOpenAIClient 从 cfg.APIKeyEnv 指定的环境变量读取密钥
func NewOpenAIClient(cfg configs.LLMConfig) (*OpenAIClient, error) {
	key := strings.TrimSpace(os.Getenv(cfg.APIKeyEnv))
	if key == "" {
		return nil, fmt.Errorf("%w: set %s", ErrNotConfigured, cfg.APIKeyEnv)
	}
	oc := openai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(oc),
		cfg:    cfg,
	}, nil
}

func (c *OpenAIClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d := c.cfg.TimeoutDuration(); d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}

// Suggest implements Client
func (c *OpenAIClient) Suggest(ctx context.Context, code, language string, issues []models.Issue) (FixResult, error) {
	selected := SelectIssues(issues, c.cfg.MaxIssues)
	if strings.TrimSpace(code) == "" || len(selected) == 0 {
		return FixResult{}, ErrNoIssues
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	log.Debug().Str("model", c.cfg.Model).Int("issues", len(selected)).Msg("requesting fix suggestions")
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: fixSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: FixPrompt(code, language, selected)},
		},
	})
	if err != nil {
		return FixResult{}, mapError(err)
	}
	if len(resp.Choices) == 0 {
		log.Warn().Msg("model returned no choices")
		return FixResult{Fixes: []Fix{}}, nil
	}
	content := resp.Choices[0].Message.Content
	res := ParseFixResponse(content)
	if len(res.Fixes) == 0 && res.FullCorrectedCode == "" {
		log.Warn().Str("content", content).Msg("could not parse fix suggestions")
	}
	return res, nil
}

// Chat implements Client
func (c *OpenAIClient) Chat(
	ctx context.Context,
	history []Message,
	code, language string,
	result *models.AnalysisResult,
	onDelta func(string),
) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: ChatContext(code, language, result),
	})
	for _, m := range history {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	log.Debug().Str("model", c.cfg.Model).Int("messages", len(history)).Msg("starting chat stream")
	stream, err := c.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:    c.cfg.Model,
		Messages: msgs,
		Stream:   true,
	})
	if err != nil {
		return "", mapError(err)
	}
	defer stream.Close()

	var full strings.Builder
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return full.String(), nil
		}
		if err != nil {
			return full.String(), mapError(err)
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		full.WriteString(delta)
		if onDelta != nil {
			onDelta(delta)
		}
	}
}

// mapError 将 429/402 映射为哨兵错误，其余原样包装
func mapError(err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}
	switch status {
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	case http.StatusPaymentRequired:
		return fmt.Errorf("%w: %v", ErrPaymentRequired, err)
	}
	return fmt.Errorf("llm request failed: %w", err)
}
