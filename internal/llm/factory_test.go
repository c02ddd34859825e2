package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryClientFor(t *testing.T) {
	tests := []struct {
		name         string
		provider     string
		wantProvider string
	}{
		{name: "openai compat", provider: "openai", wantProvider: "openai"},
		{name: "openai sdk", provider: "openai-sdk", wantProvider: "openai-sdk"},
		{name: "anthropic", provider: "anthropic", wantProvider: "anthropic"},
		{name: "gemini", provider: "gemini", wantProvider: "gemini"},
	}

	factory := NewFactory()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := factory.ClientFor(tt.provider, "test-key", "", testParams())
			require.NoError(t, err)
			assert.Equal(t, tt.wantProvider, client.ProviderName())
			assert.True(t, client.IsConfigured())
		})
	}
}

func TestFactoryCachesClients(t *testing.T) {
	factory := NewFactory()

	first, err := factory.ClientFor("openai", "key-a", "", testParams())
	require.NoError(t, err)
	second, err := factory.ClientFor("openai", "key-a", "", testParams())
	require.NoError(t, err)
	assert.Same(t, first, second, "identical configuration should reuse the cached client")

	other, err := factory.ClientFor("openai", "key-b", "", testParams())
	require.NoError(t, err)
	assert.NotSame(t, first, other, "different API key should build a new client")
}

func TestFactoryRejectsInvalidInput(t *testing.T) {
	factory := NewFactory()

	_, err := factory.ClientFor("", "key", "", testParams())
	assert.Error(t, err)

	_, err = factory.ClientFor("openai", "", "", testParams())
	assert.Error(t, err)

	_, err = factory.ClientFor("carrier-pigeon", "key", "", testParams())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported provider")
}
