// Package embedded provides access to embedded persona catalog data files.
package embedded

import _ "embed"

// PersonasData contains the embedded persona catalog YAML data.
//
//go:embed personas.yaml
var PersonasData []byte
