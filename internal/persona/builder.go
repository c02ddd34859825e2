package persona

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"templechat/pkg/chattypes"
)

// MaxDisplayNameLength is the maximum display name length in runes.
const MaxDisplayNameLength = 10

// BuildSystemPrompt composes the system instruction for one turn. The
// composition is deterministic: identical config always yields identical
// output. When a non-empty display name is set, a fixed-format clause
// instructing the model to address the user by that name is appended; the
// name value is embedded verbatim.
func BuildSystemPrompt(cfg chattypes.PersonaConfig) string {
	if cfg.DisplayName == "" || cfg.NameClauseFormat == "" {
		return cfg.SystemTemplate
	}
	return cfg.SystemTemplate + fmt.Sprintf(cfg.NameClauseFormat, cfg.DisplayName)
}

// ValidateDisplayName normalizes and validates a user-supplied display
// name at session start: trimmed, non-empty, at most MaxDisplayNameLength
// runes, no control characters. Bounding the name here also bounds the
// prompt-injection surface, since the value is embedded verbatim into the
// system prompt.
func ValidateDisplayName(name string) (string, error) {
	processed := strings.TrimSpace(name)
	if processed == "" {
		return "", fmt.Errorf("display name cannot be empty")
	}
	if utf8.RuneCountInString(processed) > MaxDisplayNameLength {
		return "", fmt.Errorf("display name too long (max %d characters)", MaxDisplayNameLength)
	}
	for _, r := range processed {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("display name contains invalid characters")
		}
	}
	return processed, nil
}
