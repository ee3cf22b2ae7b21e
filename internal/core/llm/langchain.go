package llm

import (
	"context"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
)

// langchainCompleter groq / openai 兼容接口和 gemini 共用
type langchainCompleter struct {
	model  llms.Model
	params Params
}

func newOpenAICompatible(apiKey, baseURL string, p Params) (*langchainCompleter, error) {
	opts := []openai.Option{openai.WithToken(apiKey), openai.WithModel(p.Model)}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	m, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}
	return &langchainCompleter{model: m, params: p}, nil
}

func newGemini(ctx context.Context, apiKey string, p Params) (*langchainCompleter, error) {
	m, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(p.Model),
	)
	if err != nil {
		return nil, err
	}
	return &langchainCompleter{model: m, params: p}, nil
}

func (c *langchainCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	msgs := make([]llms.MessageContent, 0, 2)
	if system != "" {
		msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeSystem, system))
	}
	msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeHuman, prompt))

	resp, err := c.model.GenerateContent(ctx, msgs,
		llms.WithTemperature(c.params.Temperature),
		llms.WithTopP(c.params.TopP),
		llms.WithMaxTokens(c.params.MaxTokens),
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return "", ErrEmptyAnswer
	}
	return resp.Choices[0].Content, nil
}
