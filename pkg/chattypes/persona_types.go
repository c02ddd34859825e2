// This file contains the persona configuration types used to compose the
// system prompt for each turn.
package chattypes

// PersonaConfig holds the immutable per-session prompt configuration.
// SystemTemplate is the fixed persona instruction; NameClauseFormat is a
// fmt-style format string with one %s verb that produces the clause telling
// the model to address the user by name. DisplayName is supplied once at
// session start and may be empty.
type PersonaConfig struct {
	SystemTemplate   string
	NameClauseFormat string
	DisplayName      string
}
