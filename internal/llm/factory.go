package llm

import (
	"fmt"
	"sync"

	"templechat/internal/logger"
	"templechat/pkg/chattypes"
)

// Factory manages the creation and caching of completion clients keyed by
// provider and credential, so repeated session starts reuse one client.
type Factory struct {
	mu      sync.RWMutex
	clients map[string]chattypes.CompletionClient
}

// NewFactory creates an empty client factory.
func NewFactory() *Factory {
	return &Factory{clients: make(map[string]chattypes.CompletionClient)}
}

// ClientFor returns a completion client for the given provider. Supported
/// providers: "openai" (compatible wire client, honors baseURL overrides),
// "openai-sdk", "anthropic", "gemini".
func (f *Factory) ClientFor(provider, apiKey, baseURL string, params chattypes.Params) (chattypes.CompletionClient, error) {
	if provider == "" {
		return nil, fmt.Errorf("provider cannot be empty")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("API key cannot be empty for provider %q", provider)
	}

	cacheKey := fmt.Sprintf("%s:%s:%s:%s", provider, apiKey, baseURL, params.Model)

	f.mu.RLock()
	if client, exists := f.clients[cacheKey]; exists {
		f.mu.RUnlock()
		return client, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()

	// Double-check after acquiring the write lock.
	if client, exists := f.clients[cacheKey]; exists {
		return client, nil
	}

	var client chattypes.CompletionClient
	switch provider {
	case "openai":
		client = NewCompatClient(CompatConfig{
			ProviderName: "openai",
			APIKey:       apiKey,
			BaseURL:      baseURL,
			Params:       params,
		})
	case "openai-sdk":
		client = NewOpenAIClient(apiKey, params)
	case "anthropic":
		client = NewAnthropicClient(apiKey, params)
	case "gemini":
		client = NewGeminiClient(apiKey, params)
	default:
		return nil, fmt.Errorf("unsupported provider %q (supported: openai, openai-sdk, anthropic, gemini)", provider)
	}

	f.clients[cacheKey] = client
	logger.Debug("created completion client", "provider", provider, "model", params.Model)
	return client, nil
}
