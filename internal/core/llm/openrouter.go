package llm

import (
	"context"
	"strings"

	"github.com/eduardolat/openroutergo"
)

type openRouterCompleter struct {
	client *openroutergo.Client
	params Params
}

// newOpenRouter baseURL 为空时用库默认的 openrouter.ai
func newOpenRouter(apiKey, baseURL string, p Params) (*openRouterCompleter, error) {
	b := openroutergo.NewClient().WithAPIKey(apiKey)
	if baseURL != "" {
		b = b.WithBaseURL(baseURL)
	}
	client, err := b.Create()
	if err != nil {
		return nil, err
	}
	return &openRouterCompleter{client: client, params: p}, nil
}

func (c *openRouterCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	b := c.client.NewChatCompletion().
		WithContext(ctx).
		WithModel(c.params.Model).
		WithTemperature(c.params.Temperature).
		WithTopP(c.params.TopP)
	if c.params.MaxTokens > 0 {
		b = b.WithMaxTokens(c.params.MaxTokens)
	}
	if system != "" {
		b = b.WithSystemMessage(system)
	}
	_, resp, err := b.WithUserMessage(prompt).Execute()
	if err != nil {
		return "", err
	}
	if !resp.HasChoices() || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyAnswer
	}
	return resp.Choices[0].Message.Content, nil
}
