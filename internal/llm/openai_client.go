package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"templechat/internal/logger"
	"templechat/pkg/chattypes"
)

// OpenAIClient implements chattypes.CompletionClient through the official
// OpenAI SDK. It provides lazy initialization of the underlying client.
type OpenAIClient struct {
	apiKey string
	params chattypes.Params
	client *openai.Client
}

// NewOpenAIClient creates a new SDK-backed OpenAI client with lazy
// initialization: the underlying client is created on the first request.
func NewOpenAIClient(apiKey string, params chattypes.Params) *OpenAIClient {
	return &OpenAIClient{
		apiKey: apiKey,
		params: params,
		client: nil,
	}
}

// ProviderName returns the provider name for this client.
func (c *OpenAIClient) ProviderName() string {
	return "openai-sdk"
}

// IsConfigured returns true if the client has a valid API key.
func (c *OpenAIClient) IsConfigured() bool {
	return c.apiKey != ""
}

// initializeClientIfNeeded initializes the SDK client if it hasn't been
// initialized yet.
func (c *OpenAIClient) initializeClientIfNeeded() error {
	if c.client != nil {
		return nil
	}
	if c.apiKey == "" {
		return errors.New("OpenAI API key not configured")
	}

	client := openai.NewClient(option.WithAPIKey(c.apiKey))
	c.client = &client

	logger.Debug("OpenAI client initialized", "provider", "openai-sdk")
	return nil
}

// Complete sends one chat completion request through the SDK.
func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userPrompt string) chattypes.Outcome {
	logger.Debug("completion request starting", "provider", "openai-sdk", "model", c.params.Model)

	if err := c.initializeClientIfNeeded(); err != nil {
		return chattypes.TransportFailureOutcome(err.Error())
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.params.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(c.params.Temperature),
		MaxTokens:   openai.Int(int64(c.params.MaxTokens)),
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			logger.Debug("completion server failure", "provider", "openai-sdk", "status", apierr.StatusCode)
			detail := apierr.Message
			if detail == "" {
				detail = err.Error()
			}
			return chattypes.ServerFailureOutcome(apierr.StatusCode, detail)
		}
		return classifySDKError(err)
	}

	if len(completion.Choices) == 0 {
		return chattypes.ParseFailureOutcome("no choices")
	}

	choice := completion.Choices[0]
	if choice.FinishReason == "content_filter" {
		return chattypes.BlockedOutcome("completion stopped by content filter")
	}

	text := strings.TrimSpace(choice.Message.Content)
	logger.Debug("completion response received", "provider", "openai-sdk", "content_length", len(text))
	return chattypes.SuccessOutcome(text)
}
