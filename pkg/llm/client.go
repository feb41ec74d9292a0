package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Provider describes an OpenAI-compatible chat completion endpoint
type Provider struct {
	Endpoint string
	Model    string
	JSONMode bool // request json_object response format
}

// DefaultProviders lists supported providers with their OpenAI-compatible endpoints
var DefaultProviders = map[string]Provider{
	"openai":     {Endpoint: "https://api.openai.com/v1", Model: "gpt-3.5-turbo", JSONMode: true},
	"gemini":     {Endpoint: "https://generativelanguage.googleapis.com/v1beta/openai", Model: "gemini-2.5-flash", JSONMode: true},
	"claude":     {Endpoint: "https://api.anthropic.com/v1", Model: "claude-3-sonnet-20240229"},
	"perplexity": {Endpoint: "https://api.perplexity.ai", Model: "llama-3.1-sonar-small-128k-online"},
}

// ErrorKind classifies provider failures
type ErrorKind string

// error kinds
const (
	KindAuth      ErrorKind = "auth"
	KindRateLimit ErrorKind = "rate_limit"
	KindServer    ErrorKind = "server"
	KindTransport ErrorKind = "transport"
	KindMalformed ErrorKind = "malformed"
)

// ProviderError is returned for failed completions
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Status   int
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s %s error, status %d: %v", e.Provider, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s error: %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// CompletionRequest is a single chat completion call
type CompletionRequest struct {
	Provider    string
	APIKey      string
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// OpenAIClient makes chat completions against any provider with OpenAI-compatible api
type OpenAIClient struct {
	providers map[string]Provider
	http      *http.Client
}

// NewOpenAIClient makes client for given providers, DefaultProviders used if none passed.
// Passed providers override defaults with the same name, empty fields filled from defaults.
func NewOpenAIClient(providers map[string]Provider, httpClient *http.Client) *OpenAIClient {
	merged := make(map[string]Provider, len(DefaultProviders)+len(providers))
	for name, p := range DefaultProviders {
		merged[name] = p
	}
	for name, p := range providers {
		name = strings.ToLower(name)
		def := merged[name]
		if p.Endpoint == "" {
			p.Endpoint = def.Endpoint
		}
		if p.Model == "" {
			p.Model = def.Model
		}
		merged[name] = p
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &OpenAIClient{providers: merged, http: httpClient}
}

// Supported tells if provider is known
func (c *OpenAIClient) Supported(provider string) bool {
	p, ok := c.providers[strings.ToLower(provider)]
	return ok && p.Endpoint != ""
}

// Complete sends the prompt and returns response content
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	name := strings.ToLower(req.Provider)
	p, ok := c.providers[name]
	if !ok || p.Endpoint == "" {
		return "", fmt.Errorf("unknown provider %q", req.Provider)
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       p.Model,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	}
	if p.JSONMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}

	resp, err := c.client(p, req.APIKey).CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", classify(name, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", &ProviderError{Provider: name, Kind: KindMalformed, Err: errors.New("empty response")}
	}
	return resp.Choices[0].Message.Content, nil
}

// client makes go-openai client for a single call, secrets are not kept past the call.
// The shared http client keeps connections pooled.
func (c *OpenAIClient) client(p Provider, apiKey string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(p.Endpoint, "/")
	cfg.HTTPClient = c.http
	return openai.NewClientWithConfig(cfg)
}

// classify maps go-openai errors to provider error kinds
func classify(provider string, err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	kind := KindTransport
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = KindAuth
	case status == http.StatusTooManyRequests:
		kind = KindRateLimit
	case status >= 500:
		kind = KindServer
	case status >= 400:
		kind = KindMalformed
	}
	return &ProviderError{Provider: provider, Kind: kind, Status: status, Err: err}
}
