package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-gin-jobboard/internal/core/config"
)

var (
	ErrNotConfigured = errors.New("llm: api key not configured")
	ErrEmptyAnswer   = errors.New("llm: empty answer")
)

// Completer 非流式对话补全
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

type Params struct {
	Model       string
	Temperature float64
	TopP        float64
	MaxTokens   int
}

func ParamsFromConfig(c config.LLM) Params {
	return Params{Model: c.Model, Temperature: c.Temperature, TopP: c.TopP, MaxTokens: c.MaxTokens}
}

// New 按 provider 选择实现；没配 key 时返回一个总是失败的 Completer，服务照常启动
func New(ctx context.Context, c config.LLM) (Completer, error) {
	if c.APIKey == "" {
		return unconfigured{}, nil
	}
	p := ParamsFromConfig(c)
	switch strings.ToLower(c.Provider) {
	case "", "groq", "openai":
		return newOpenAICompatible(c.APIKey, c.BaseURL, p)
	case "gemini", "googleai":
		return newGemini(ctx, c.APIKey, p)
	case "openrouter":
		return newOpenRouter(c.APIKey, openRouterBase(c.BaseURL), p)
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", c.Provider)
	}
}

// openRouterBase 默认配置里的 base_url 指向 groq，openrouter 下忽略
func openRouterBase(u string) string {
	if strings.Contains(u, "groq.com") {
		return ""
	}
	return u
}

type unconfigured struct{}

func (unconfigured) Complete(context.Context, string, string) (string, error) {
	return "", ErrNotConfigured
}
