package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"templechat/internal/logger"
	"templechat/pkg/chattypes"
)

// AnthropicClient implements chattypes.CompletionClient for Anthropic's
// API. It provides lazy initialization of the underlying client.
type AnthropicClient struct {
	apiKey string
	params chattypes.Params
	client *anthropic.Client
}

// NewAnthropicClient creates a new Anthropic client with lazy
// initialization: the underlying client is created on the first request.
func NewAnthropicClient(apiKey string, params chattypes.Params) *AnthropicClient {
	return &AnthropicClient{
		apiKey: apiKey,
		params: params,
		client: nil,
	}
}

// ProviderName returns the provider name for this client.
func (c *AnthropicClient) ProviderName() string {
	return "anthropic"
}

// IsConfigured returns true if the client has a valid API key.
func (c *AnthropicClient) IsConfigured() bool {
	return c.apiKey != ""
}

// initializeClientIfNeeded initializes the SDK client if it hasn't been
// initialized yet.
func (c *AnthropicClient) initializeClientIfNeeded() error {
	if c.client != nil {
		return nil
	}
	if c.apiKey == "" {
		return errors.New("anthropic API key not configured")
	}

	client := anthropic.NewClient(option.WithAPIKey(c.apiKey))
	c.client = &client

	logger.Debug("Anthropic client initialized", "provider", "anthropic")
	return nil
}

// Complete sends one message request through the Anthropic SDK.
func (c *AnthropicClient) Complete(ctx context.Context, systemPrompt, userPrompt string) chattypes.Outcome {
	logger.Debug("completion request starting", "provider", "anthropic", "model", c.params.Model)

	if err := c.initializeClientIfNeeded(); err != nil {
		return chattypes.TransportFailureOutcome(err.Error())
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.params.Model),
		MaxTokens:   int64(c.params.MaxTokens),
		Temperature: anthropic.Float(c.params.Temperature),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		var apierr *anthropic.Error
		if errors.As(err, &apierr) {
			logger.Debug("completion server failure", "provider", "anthropic", "status", apierr.StatusCode)
			return chattypes.ServerFailureOutcome(apierr.StatusCode, err.Error())
		}
		return classifySDKError(err)
	}

	if string(message.StopReason) == "refusal" {
		return chattypes.BlockedOutcome("completion refused by the model")
	}

	if len(message.Content) == 0 {
		return chattypes.ParseFailureOutcome("no choices")
	}

	var content strings.Builder
	for _, block := range message.Content {
		content.WriteString(block.Text)
	}

	text := strings.TrimSpace(content.String())
	logger.Debug("completion response received", "provider", "anthropic", "content_length", len(text))
	return chattypes.SuccessOutcome(text)
}
