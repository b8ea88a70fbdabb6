// Package provider implements a chat-completions client for
// OpenAI-compatible LLM gateways (OpenRouter by default). The
// benchmark runner talks to models exclusively through this package.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the OpenRouter API endpoint.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// Message is one turn of a chat conversation.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Usage is the token accounting a gateway reports for one call.
type Usage struct {
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	Cost             float64 `json:"cost"` // Credits, OpenRouter-specific
}

// Options configures the client.
type Options struct {
	BaseURL string        // API base URL (default: OpenRouter)
	APIKey  string        // Bearer token (required)
	Timeout time.Duration // Per-request timeout (default 120s)
}

// Client is a chat-completions API client. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a client. The API key is mandatory; everything
// else has defaults.
func NewClient(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("provider: API key is required")
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     opts.APIKey,
	}, nil
}

type chatRequest struct {
	Model    string       `json:"model"`
	Messages []Message    `json:"messages"`
	Usage    usageInclude `json:"usage"`
}

type usageInclude struct {
	Include bool `json:"include"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content   string `json:"content"`
			Reasoning string `json:"reasoning"`
		} `json:"message"`
	} `json:"choices"`
	Usage *Usage `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Chat sends the conversation to a model and returns the assistant
// reply, any reasoning text the gateway exposes, and usage info.
func (c *Client) Chat(ctx context.Context, model string, messages []Message) (reply, reasoning string, usage Usage, err error) {
	body, err := json.Marshal(chatRequest{
		Model:    model,
		Messages: messages,
		Usage:    usageInclude{Include: true},
	})
	if err != nil {
		return "", "", Usage{}, fmt.Errorf("provider: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", "", Usage{}, fmt.Errorf("provider: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", Usage{}, fmt.Errorf("provider: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return "", "", Usage{}, fmt.Errorf("provider: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", "", Usage{}, fmt.Errorf("provider: HTTP %d: %s", resp.StatusCode, truncate(string(data), 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", "", Usage{}, fmt.Errorf("provider: decode response: %w", err)
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return "", "", Usage{}, fmt.Errorf("provider: API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", "", Usage{}, fmt.Errorf("provider: response has no choices")
	}
	if parsed.Usage != nil {
		usage = *parsed.Usage
	}
	choice := parsed.Choices[0].Message
	return choice.Content, choice.Reasoning, usage, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
