// Package gemini implements the scoring backend for the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/fairhire/biasprobe/internal/llm"
)

const defaultModel = "gemini-2.5-flash"

// Client submits scoring prompts to the Gemini API backend.
type Client struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// New creates a Gemini-backed submitter.
func New(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{client: client, model: model, logger: logger}, nil
}

func (c *Client) Name() string { return "gemini" }

func (c *Client) Model() string { return c.model }

// Submit issues one generation attempt. Errors are classified into the
// client's retryable/non-retryable taxonomy by API status code.
func (c *Client) Submit(ctx context.Context, req llm.Request) (llm.Response, error) {
	if c == nil || c.client == nil {
		return llm.Response{}, llm.Fatalf("gemini client is not initialized")
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return llm.Response{}, llm.Fatalf("prompt must not be empty")
	}

	cfg := &genai.GenerateContentConfig{}
	if system := strings.TrimSpace(req.System); system != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	if req.Temperature > 0 {
		temperature := float32(req.Temperature)
		cfg.Temperature = &temperature
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return llm.Response{}, classify(err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return llm.Response{}, llm.Transientf("gemini api returned empty response")
	}

	return llm.Response{Text: output}, nil
}

// classify maps genai API errors onto the retry taxonomy: auth and invalid
// request abort, throttling and server errors retry.
func classify(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return llm.Transient(err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return llm.Fatal(err)
		case http.StatusRequestTimeout, http.StatusTooManyRequests:
			return llm.Transient(err)
		}
		if apiErr.Code >= 500 {
			return llm.Transient(err)
		}
		return llm.Fatal(err)
	}

	// Unknown transport errors are assumed retryable.
	return llm.Transient(err)
}
