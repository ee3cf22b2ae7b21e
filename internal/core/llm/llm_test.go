package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-jobboard/internal/core/config"
)

func TestNewWithoutKeyIsUnconfigured(t *testing.T) {
	c, err := New(context.Background(), config.LLM{Provider: "groq"})
	require.NoError(t, err)
	_, err = c.Complete(context.Background(), "", "hi")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), config.LLM{Provider: "parrot", APIKey: "k"})
	assert.Error(t, err)
}

func TestNewGroqProvider(t *testing.T) {
	c, err := New(context.Background(), config.LLM{
		Provider: "groq", APIKey: "gsk_x", BaseURL: "https://api.groq.com/openai/v1",
		Model: "llama-3.3-70b-versatile", Temperature: 0.3, TopP: 1, MaxTokens: 8192,
	})
	require.NoError(t, err)
	lc, ok := c.(*langchainCompleter)
	require.True(t, ok)
	assert.Equal(t, 8192, lc.params.MaxTokens)
	assert.InDelta(t, 0.3, lc.params.Temperature, 1e-9)
}

func openRouterStub(t *testing.T, reply string, got *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer or-key", r.Header.Get("Authorization"))
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(b, got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenRouterSendsSamplingParams(t *testing.T) {
	var body map[string]any
	srv := openRouterStub(t, `{"id":"c1","choices":[{"finish_reason":"stop","message":{"role":"assistant","content":"Go is great."}}]}`, &body)

	c, err := newOpenRouter("or-key", srv.URL, Params{Model: "meta-llama/llama-3.3-70b", Temperature: 0.3, TopP: 1, MaxTokens: 8192})
	require.NoError(t, err)

	answer, err := c.Complete(context.Background(), "", "Why Go?")
	require.NoError(t, err)
	assert.Equal(t, "Go is great.", answer)

	assert.Equal(t, "meta-llama/llama-3.3-70b", body["model"])
	assert.InDelta(t, 0.3, body["temperature"], 1e-9)
	assert.InDelta(t, 1.0, body["top_p"], 1e-9)
	assert.InDelta(t, 8192, body["max_tokens"], 1e-9)
	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Why Go?", msgs[0].(map[string]any)["content"])
}

func TestOpenRouterEmptyAnswer(t *testing.T) {
	var body map[string]any
	srv := openRouterStub(t, `{"id":"c2","choices":[]}`, &body)

	c, err := newOpenRouter("or-key", srv.URL, Params{Model: "m"})
	require.NoError(t, err)
	_, err = c.Complete(context.Background(), "", "hi")
	assert.ErrorIs(t, err, ErrEmptyAnswer)
}

func TestOpenRouterHonoursContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := newOpenRouter("or-key", srv.URL, Params{Model: "m"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err = c.Complete(ctx, "", "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestOpenRouterBase(t *testing.T) {
	assert.Empty(t, openRouterBase("https://api.groq.com/openai/v1"))
	assert.Equal(t, "https://proxy.local/api/v1", openRouterBase("https://proxy.local/api/v1"))

	c, err := New(context.Background(), config.LLM{Provider: "openrouter", APIKey: "k", BaseURL: "https://api.groq.com/openai/v1"})
	require.NoError(t, err)
	_, ok := c.(*openRouterCompleter)
	assert.True(t, ok)
}
