package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-test", req.Model)
		require.NotNil(t, req.ResponseFormat)
		assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, req.ResponseFormat.Type)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
		assert.Equal(t, "extract articles", req.Messages[1].Content)

		resp := openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: `{"title":"ok"}`}},
		}}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	c := NewOpenAIClient(map[string]Provider{"openai": {Endpoint: server.URL + "/v1/", Model: "gpt-test", JSONMode: true}}, nil)
	res, err := c.Complete(context.Background(), CompletionRequest{Provider: "OpenAI", APIKey: "test-key",
		System: "be helpful", Prompt: "extract articles", Temperature: 0.3})
	require.NoError(t, err)
	assert.Equal(t, `{"title":"ok"}`, res)
}

func TestOpenAIClient_RotatedKeys(t *testing.T) {
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{}"}}]}`))
	}))
	defer server.Close()

	c := NewOpenAIClient(map[string]Provider{"openai": {Endpoint: server.URL + "/v1"}}, nil)
	for _, key := range []string{"key-one", "key-two", "key-one"} {
		_, err := c.Complete(context.Background(), CompletionRequest{Provider: "openai", APIKey: key, Prompt: "p"})
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"Bearer key-one", "Bearer key-two", "Bearer key-one"}, seen)
	assert.NotContains(t, fmt.Sprintf("%+v", *c), "key-", "secrets not retained by client")
}

func TestOpenAIClient_Errors(t *testing.T) {
	tbl := []struct {
		name   string
		status int
		body   string
		kind   ErrorKind
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"invalid api key","type":"invalid_request_error"}}`, KindAuth},
		{"forbidden", http.StatusForbidden, `{"error":{"message":"no access"}}`, KindAuth},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"slow down","type":"rate_limit"}}`, KindRateLimit},
		{"server error", http.StatusBadGateway, `bad gateway`, KindServer},
		{"bad request", http.StatusBadRequest, `{"error":{"message":"unknown model"}}`, KindMalformed},
		{"empty choices", http.StatusOK, `{"choices":[]}`, KindMalformed},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewOpenAIClient(map[string]Provider{"gemini": {Endpoint: server.URL + "/v1"}}, nil)
			_, err := c.Complete(context.Background(), CompletionRequest{Provider: "gemini", APIKey: "secret-key", Prompt: "p"})
			require.Error(t, err)
			var pe *ProviderError
			require.True(t, errors.As(err, &pe), "error %v", err)
			assert.Equal(t, tt.kind, pe.Kind)
			assert.Equal(t, "gemini", pe.Provider)
			if tt.status != http.StatusOK {
				assert.Equal(t, tt.status, pe.Status)
			}
			assert.NotContains(t, err.Error(), "secret-key")
		})
	}
}

func TestOpenAIClient_Providers(t *testing.T) {
	c := NewOpenAIClient(map[string]Provider{"Gemini": {Model: "gemini-pro"}, "local": {Endpoint: "http://localhost:11434/v1", Model: "llama3"}}, nil)

	assert.True(t, c.Supported("openai"))
	assert.True(t, c.Supported("claude"))
	assert.True(t, c.Supported("local"))
	assert.False(t, c.Supported("unknown"))

	assert.Equal(t, "gemini-pro", c.providers["gemini"].Model)
	assert.Equal(t, DefaultProviders["gemini"].Endpoint, c.providers["gemini"].Endpoint)

	_, err := c.Complete(context.Background(), CompletionRequest{Provider: "unknown"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestPrepareContent(t *testing.T) {
	page := `<html><head><title>Tech News</title><script>var x = 1;</script></head><body>
	<article class="post"><h2><a href="/news/one">One</a></h2><time datetime="2025-02-01">Feb 1</time>
	<img src="/img/one.jpg"><p>First text</p></article>
	<article class="post"><h2><a href="/news/two">Two</a></h2><p>Second text</p></article>
	</body></html>`

	res := PrepareContent([]byte(page), "https://example.com/", 5000)
	assert.Contains(t, res, "PAGE TITLE: Tech News")
	assert.Contains(t, res, "SAMPLE MARKUP OF FIRST ARTICLE:\n<article class=\"post\">")
	assert.Contains(t, res, "ARTICLE 1:\nTITLE: One\nLINK: https://example.com/news/one\nDATE: 2025-02-01\nIMAGE: https://example.com/img/one.jpg\n")
	assert.Contains(t, res, "ARTICLE 2:\nTITLE: Two\nLINK: https://example.com/news/two\n")
	assert.NotContains(t, res, "var x")

	t.Run("truncated", func(t *testing.T) {
		res := PrepareContent([]byte(page), "https://example.com/", 100)
		assert.LessOrEqual(t, len([]rune(res)), 103)
		assert.True(t, strings.HasSuffix(res, "..."))
	})

	t.Run("no article blocks", func(t *testing.T) {
		plain := `<html><head><title>About</title></head><body><main>
		<p>The quick brown fox jumps over the lazy dog while the developers write documentation about the project.</p>
		</main></body></html>`
		res := PrepareContent([]byte(plain), "https://example.com/about", 5000)
		assert.Contains(t, res, "CONTENT:\n")
		assert.Contains(t, res, "quick brown fox")
		assert.NotContains(t, res, "ARTICLE 1:")
	})
}

func TestParseResponse(t *testing.T) {
	tbl := []struct {
		name    string
		raw     string
		title   string
		items   int
		wantErr bool
	}{
		{"plain json", `{"title":"A","items":[{"title":"x","link":"y"}]}`, "A", 1, false},
		{"fenced", "```json\n{\"title\":\"B\",\"items\":[]}\n```", "B", 0, false},
		{"surrounded by text", "Here you go: {\"title\":\"C\"} hope it helps", "C", 0, false},
		{"no object", "sorry, can't do it", "", 0, true},
		{"broken json", `{"title": "D", "items": [}`, "", 0, true},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := parseResponse(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errMalformed))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.title, resp.Title)
			assert.Len(t, resp.Items, tt.items)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	p := buildPrompt("https://example.com", "ARTICLE 1:\nTITLE: One", 7)
	assert.Contains(t, p, "URL: https://example.com")
	assert.Contains(t, p, "ARTICLE 1:\nTITLE: One")
	assert.Contains(t, p, "up to 7 articles")
	assert.Contains(t, p, `"recipe"`)
}
