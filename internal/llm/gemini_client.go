package llm

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"

	"templechat/internal/logger"
	"templechat/pkg/chattypes"
)

// GeminiClient implements chattypes.CompletionClient for the Google
// Gemini API. It provides lazy initialization of the underlying client.
type GeminiClient struct {
	apiKey string
	params chattypes.Params
	client *genai.Client
}

// NewGeminiClient creates a new Gemini client with lazy initialization:
// the underlying client is created on the first request.
func NewGeminiClient(apiKey string, params chattypes.Params) *GeminiClient {
	return &GeminiClient{
		apiKey: apiKey,
		params: params,
		client: nil,
	}
}

// ProviderName returns the provider name for this client.
func (c *GeminiClient) ProviderName() string {
	return "gemini"
}

// IsConfigured returns true if the client has a valid API key.
func (c *GeminiClient) IsConfigured() bool {
	return c.apiKey != ""
}

// initializeClientIfNeeded initializes the SDK client if it hasn't been
// initialized yet.
func (c *GeminiClient) initializeClientIfNeeded(ctx context.Context) error {
	if c.client != nil {
		return nil
	}
	if c.apiKey == "" {
		return errors.New("gemini API key not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return err
	}
	c.client = client

	logger.Debug("Gemini client initialized", "provider", "gemini")
	return nil
}

// Complete sends one generate-content request through the Gemini SDK.
func (c *GeminiClient) Complete(ctx context.Context, systemPrompt, userPrompt string) chattypes.Outcome {
	logger.Debug("completion request starting", "provider", "gemini", "model", c.params.Model)

	if err := c.initializeClientIfNeeded(ctx); err != nil {
		return chattypes.TransportFailureOutcome(err.Error())
	}

	temperature := float32(c.params.Temperature)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       &temperature,
		MaxOutputTokens:   int32(c.params.MaxTokens),
	}

	res, err := c.client.Models.GenerateContent(ctx, c.params.Model, genai.Text(userPrompt), cfg)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			logger.Debug("completion server failure", "provider", "gemini", "status", apiErr.Code)
			return chattypes.ServerFailureOutcome(apiErr.Code, apiErr.Message)
		}
		return classifySDKError(err)
	}

	if res.PromptFeedback != nil && res.PromptFeedback.BlockReason != "" {
		return chattypes.BlockedOutcome("prompt blocked: " + string(res.PromptFeedback.BlockReason))
	}

	text := strings.TrimSpace(res.Text())
	if text == "" {
		return chattypes.ParseFailureOutcome("no choices")
	}

	logger.Debug("completion response received", "provider", "gemini", "content_length", len(text))
	return chattypes.SuccessOutcome(text)
}
