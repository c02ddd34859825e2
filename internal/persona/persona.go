// Package persona provides the persona catalog and the system prompt
// builder for templechat conversations. Personas are opaque configuration
// data shipped as an embedded YAML catalog.
package persona

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"templechat/internal/data/embedded"
	"templechat/pkg/chattypes"
)

// Persona describes one conversational character: its prompt template and
// the static copy the presentation layer renders around it.
type Persona struct {
	ID               string `yaml:"id"`
	DisplayName      string `yaml:"display_name"`
	Greeting         string `yaml:"greeting"`
	EndTitle         string `yaml:"end_title"`
	LimitMessage     string `yaml:"limit_message"`
	ErrorPrefix      string `yaml:"error_prefix"`
	NameClauseFormat string `yaml:"name_clause_format"`
	SystemTemplate   string `yaml:"system_template"`
}

// Config returns the immutable per-session prompt configuration for this
// persona and the given display name.
func (p Persona) Config(displayName string) chattypes.PersonaConfig {
	return chattypes.PersonaConfig{
		SystemTemplate:   p.SystemTemplate,
		NameClauseFormat: p.NameClauseFormat,
		DisplayName:      displayName,
	}
}

// Catalog holds the loaded personas keyed by ID.
type Catalog struct {
	personas map[string]Persona
}

type catalogFile struct {
	Personas []Persona `yaml:"personas"`
}

// LoadCatalog parses the embedded persona catalog.
func LoadCatalog() (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(embedded.PersonasData, &file); err != nil {
		return nil, fmt.Errorf("failed to parse persona catalog: %w", err)
	}
	if len(file.Personas) == 0 {
		return nil, fmt.Errorf("persona catalog is empty")
	}

	personas := make(map[string]Persona, len(file.Personas))
	for _, p := range file.Personas {
		if p.ID == "" {
			return nil, fmt.Errorf("persona catalog entry without id")
		}
		if p.SystemTemplate == "" {
			return nil, fmt.Errorf("persona %q has no system template", p.ID)
		}
		personas[p.ID] = p
	}
	return &Catalog{personas: personas}, nil
}

// Get returns the persona with the given ID.
func (c *Catalog) Get(id string) (Persona, error) {
	p, ok := c.personas[id]
	if !ok {
		return Persona{}, fmt.Errorf("unknown persona %q (available: %v)", id, c.IDs())
	}
	return p, nil
}

// IDs returns the catalog's persona IDs in sorted order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.personas))
	for id := range c.personas {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
