// Package synthesis calls the Groq chat-completions API. JSON-mode calls
// return a discriminated Result so a provider hiccup never propagates as a
// panic or a malformed domain payload.
package synthesis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/medinfo/medinfo-api/logging"
	"github.com/medinfo/medinfo-api/metrics"
)

// completionsURL is the Groq endpoint. Package-level var for test substitution.
var completionsURL = "https://api.groq.com/openai/v1/chat/completions"

// Model is the fixed completion model identifier.
const Model = "llama3-70b-8192"

var (
	// ErrNotConfigured means no API key was provided at construction.
	ErrNotConfigured = errors.New("AI service is not available")
	// ErrSynthesis covers every provider-side failure: network, HTTP,
	// empty or malformed completion body.
	ErrSynthesis = errors.New("the AI service encountered an error during processing")
)

// Result is the outcome of a JSON-mode synthesizer call. Exactly one of
// Data and Err is set; callers branch on Err, never on key presence.
type Result struct {
	Data map[string]any
	Err  error
}

// Failed reports whether the call produced no usable data.
func (r Result) Failed() bool { return r.Err != nil }

// String returns the string value under key, or "" when absent or not a string.
func (r Result) String(key string) string {
	if s, ok := r.Data[key].(string); ok {
		return s
	}
	return ""
}

// Client calls the completion endpoint. Constructed once at process start,
// read-only thereafter.
type Client struct {
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a synthesizer client. An empty key is allowed; calls then
// fail with ErrNotConfigured.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether the client holds credentials.
func (c *Client) Configured() bool { return c.apiKey != "" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// SynthesizeJSON sends the prompts with a strict JSON response format and
// parses the completion into a generic object. This is the central
// failure-containment boundary: every failure mode collapses into an Err
// result instead of an exception crossing the orchestrator.
func (c *Client) SynthesizeJSON(ctx context.Context, systemPrompt, userPrompt string) Result {
	if c.apiKey == "" {
		return Result{Err: ErrNotConfigured}
	}

	content, err := c.complete(ctx, systemPrompt, userPrompt, &responseFormat{Type: "json_object"})
	if err != nil {
		logging.Error("Synthesizer call failed", "error", err)
		metrics.SynthesizerCalls.WithLabelValues("error").Inc()
		return Result{Err: fmt.Errorf("%w: %v", ErrSynthesis, err)}
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		logging.Error("Synthesizer returned non-JSON content", "error", err)
		metrics.SynthesizerCalls.WithLabelValues("error").Inc()
		return Result{Err: fmt.Errorf("%w: malformed JSON reply", ErrSynthesis)}
	}

	metrics.SynthesizerCalls.WithLabelValues("ok").Inc()
	return Result{Data: data}
}

// Chat sends the prompts without a response-format constraint and returns
// the raw completion text. Used by the assistant endpoint.
func (c *Client) Chat(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	content, err := c.complete(ctx, systemPrompt, userMessage, nil)
	if err != nil {
		logging.Error("Assistant chat call failed", "error", err)
		metrics.SynthesizerCalls.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%w: %v", ErrSynthesis, err)
	}

	metrics.SynthesizerCalls.WithLabelValues("ok").Inc()
	return content, nil
}

func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string, format *responseFormat) (string, error) {
	reqBody := chatRequest{
		Model: Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		ResponseFormat: format,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, completionsURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling completion API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("completion API returned %d: %s", resp.StatusCode, string(body))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decoding completion response: %w", err)
	}

	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("completion API returned no choices")
	}
	return cr.Choices[0].Message.Content, nil
}
