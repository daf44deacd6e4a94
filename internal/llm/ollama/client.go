// Package ollama implements the scoring backend for a locally hosted
// inference server speaking the Ollama generate API.
package ollama

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/fairhire/biasprobe/internal/llm"
)

const defaultBaseURL = "http://localhost:11434"

// Client submits scoring prompts to an Ollama server.
type Client struct {
	http   *resty.Client
	model  string
	logger *zap.Logger
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	System  string         `json:"system,omitempty"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// New creates an Ollama-backed submitter. An empty baseURL targets the local
// default port.
func New(baseURL, model string, logger *zap.Logger) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		http:   resty.New().SetBaseURL(baseURL),
		model:  model,
		logger: logger,
	}
}

func (c *Client) Name() string { return "ollama" }

func (c *Client) Model() string { return c.model }

// Submit issues one generation attempt against /api/generate.
func (c *Client) Submit(ctx context.Context, req llm.Request) (llm.Response, error) {
	body := generateRequest{
		Model:  c.model,
		Prompt: req.Prompt,
		System: req.System,
		Stream: false,
	}
	if req.Temperature > 0 {
		body.Options = map[string]any{"temperature": req.Temperature}
	}

	var out generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&out).
		SetError(&out).
		Post("/api/generate")
	if err != nil {
		if ctx.Err() != nil {
			return llm.Response{}, ctx.Err()
		}
		// Connection-level failures against a local server are retryable.
		return llm.Response{}, llm.Transient(err)
	}

	if resp.IsError() {
		return llm.Response{}, classifyStatus(resp.StatusCode(), out.Error)
	}

	text := strings.TrimSpace(out.Response)
	if text == "" {
		return llm.Response{}, llm.Transientf("ollama returned empty response")
	}

	return llm.Response{Text: text}, nil
}

func classifyStatus(code int, detail string) error {
	if detail == "" {
		detail = http.StatusText(code)
	}

	switch code {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return llm.Fatalf("ollama request rejected (%d): %s", code, detail)
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return llm.Transientf("ollama throttled (%d): %s", code, detail)
	}
	if code >= 500 {
		return llm.Transientf("ollama server error (%d): %s", code, detail)
	}
	return llm.Fatalf("ollama unexpected status (%d): %s", code, detail)
}
