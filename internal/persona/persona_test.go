package persona

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"templechat/pkg/chattypes"
)

func TestLoadCatalog(t *testing.T) {
	catalog, err := LoadCatalog()
	require.NoError(t, err)

	assert.Equal(t, []string{"monk", "nun"}, catalog.IDs())

	for _, id := range catalog.IDs() {
		p, err := catalog.Get(id)
		require.NoError(t, err)
		assert.NotEmpty(t, p.DisplayName)
		assert.NotEmpty(t, p.Greeting)
		assert.NotEmpty(t, p.SystemTemplate)
		assert.NotEmpty(t, p.ErrorPrefix)
		assert.NotEmpty(t, p.LimitMessage)
		assert.Contains(t, p.NameClauseFormat, "%[1]s")
	}
}

func TestCatalogGetUnknown(t *testing.T) {
	catalog, err := LoadCatalog()
	require.NoError(t, err)

	_, err = catalog.Get("pirate")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown persona")
}

func TestBuildSystemPrompt(t *testing.T) {
	cfg := chattypes.PersonaConfig{
		SystemTemplate:   "You are a gentle listener.",
		NameClauseFormat: "\n\nAddress the user as '%[1]s'.",
	}

	tests := []struct {
		name        string
		displayName string
		expected    string
	}{
		{
			name:        "no display name",
			displayName: "",
			expected:    "You are a gentle listener.",
		},
		{
			name:        "with display name",
			displayName: "다운",
			expected:    "You are a gentle listener.\n\nAddress the user as '다운'.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := cfg
			cfg.DisplayName = tt.displayName
			assert.Equal(t, tt.expected, BuildSystemPrompt(cfg))
		})
	}
}

func TestBuildSystemPromptDeterministic(t *testing.T) {
	catalog, err := LoadCatalog()
	require.NoError(t, err)
	p, err := catalog.Get("nun")
	require.NoError(t, err)

	cfg := p.Config("다운")
	first := BuildSystemPrompt(cfg)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, BuildSystemPrompt(cfg))
	}
	// The nickname appears in the appended clause.
	assert.Contains(t, first, "'다운'")
	assert.True(t, strings.HasPrefix(first, p.SystemTemplate))
}

func TestValidateDisplayName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  string
		expectErr bool
	}{
		{
			name:     "plain name",
			input:    "다운",
			expected: "다운",
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  다운  ",
			expected: "다운",
		},
		{
			name:      "empty",
			input:     "",
			expectErr: true,
		},
		{
			name:      "whitespace only",
			input:     "   ",
			expectErr: true,
		},
		{
			name:     "exactly ten runes",
			input:    "가나다라마바사아자차",
			expected: "가나다라마바사아자차",
		},
		{
			name:      "eleven runes",
			input:     "가나다라마바사아자차카",
			expectErr: true,
		},
		{
			name:      "control characters",
			input:     "다운\x00",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateDisplayName(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
