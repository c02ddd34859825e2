// Package llm provides completion client implementations for templechat.
// Every client performs exactly one network round trip per call, never
// retries, and folds all failure modes into the chattypes.Outcome union.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"templechat/internal/logger"
	"templechat/pkg/chattypes"
)

const (
	defaultBaseURL  = "https://api.openai.com/v1"
	defaultEndpoint = "/chat/completions"
)

// CompatClient talks to any endpoint that implements the OpenAI Chat
// Completions wire format: JSON POST with Bearer auth, choices array in
// the response. It is the default client and also serves OpenAI-compatible
// gateways via a base URL override.
type CompatClient struct {
	providerName string
	apiKey       string
	baseURL      string
	endpoint     string
	params       chattypes.Params
	httpClient   *http.Client
}

// CompatConfig holds configuration for the OpenAI-compatible client.
type CompatConfig struct {
	ProviderName string
	APIKey       string
	BaseURL      string // defaults to the OpenAI API
	Endpoint     string // defaults to "/chat/completions"
	Params       chattypes.Params
}

// chatCompletionRequest is the request payload for the completions call.
type chatCompletionRequest struct {
	Model       string                  `json:"model"`
	Messages    []chatCompletionMessage `json:"messages"`
	Temperature float64                 `json:"temperature"`
	MaxTokens   int                     `json:"max_tokens"`
}

// chatCompletionMessage is one ordered message in the request.
type chatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionResponse is the expected response shape. Only
// choices[0].message.content is consumed.
type chatCompletionResponse struct {
	Choices []chatCompletionChoice `json:"choices"`
	Error   *chatCompletionError   `json:"error,omitempty"`
}

type chatCompletionChoice struct {
	Message      *chatCompletionMessage `json:"message,omitempty"`
	FinishReason string                 `json:"finish_reason"`
}

type chatCompletionError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// NewCompatClient creates a new OpenAI-compatible client.
func NewCompatClient(config CompatConfig) *CompatClient {
	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	providerName := config.ProviderName
	if providerName == "" {
		providerName = "openai"
	}

	return &CompatClient{
		providerName: providerName,
		apiKey:       config.APIKey,
		baseURL:      baseURL,
		endpoint:     endpoint,
		params:       config.Params,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// ProviderName returns the provider name for this client.
func (c *CompatClient) ProviderName() string {
	return c.providerName
}

// IsConfigured returns true if the client has a valid API key.
func (c *CompatClient) IsConfigured() bool {
	return c.apiKey != ""
}

// Complete sends one chat completion request and classifies the result.
func (c *CompatClient) Complete(ctx context.Context, systemPrompt, userPrompt string) chattypes.Outcome {
	logger.Debug("completion request starting", "provider", c.providerName, "model", c.params.Model)

	request := chatCompletionRequest{
		Model: c.params.Model,
		Messages: []chatCompletionMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: c.params.Temperature,
		MaxTokens:   c.params.MaxTokens,
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return chattypes.TransportFailureOutcome(fmt.Sprintf("failed to marshal request: %v", err))
	}

	url := c.baseURL + c.endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return chattypes.TransportFailureOutcome(fmt.Sprintf("failed to create request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug("completion transport failure", "provider", c.providerName, "error", err)
		return chattypes.TransportFailureOutcome(err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return chattypes.TransportFailureOutcome(fmt.Sprintf("failed to read response: %v", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Debug("completion server failure", "provider", c.providerName, "status", resp.StatusCode)
		return chattypes.ServerFailureOutcome(resp.StatusCode, string(body))
	}

	var chatResponse chatCompletionResponse
	if err := json.Unmarshal(body, &chatResponse); err != nil {
		return chattypes.ParseFailureOutcome(fmt.Sprintf("failed to parse response: %v", err))
	}

	if chatResponse.Error != nil {
		return chattypes.ParseFailureOutcome(fmt.Sprintf("API error in 2xx response: %s", chatResponse.Error.Message))
	}

	if len(chatResponse.Choices) == 0 {
		return chattypes.ParseFailureOutcome("no choices")
	}

	choice := chatResponse.Choices[0]
	if choice.FinishReason == "content_filter" {
		return chattypes.BlockedOutcome("completion stopped by content filter")
	}
	if choice.Message == nil {
		return chattypes.ParseFailureOutcome("no message in response choice")
	}

	text := strings.TrimSpace(choice.Message.Content)
	logger.Debug("completion response received", "provider", c.providerName, "content_length", len(text))
	return chattypes.SuccessOutcome(text)
}
