package frontend

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// documentWire is the top-level shape of a descriptor file. A file carries
// either a single unit or a "units" list; decodeDocument normalizes both
// into the list form.
type documentWire struct {
	Units []unitWire `json:"units" yaml:"units"`
}

// unitWire is the wire shape of one structural unit.
type unitWire struct {
	ID      string       `json:"id" yaml:"id"`
	Markers []string     `json:"markers" yaml:"markers"`
	Members []memberWire `json:"members" yaml:"members"`
	Methods []methodWire `json:"methods" yaml:"methods"`
}

// memberWire is the wire shape of one field.
type memberWire struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
	// Collaborator is an optional explicit classification from the
	// front-end. When absent, the builder classifies by type descriptor.
	Collaborator *bool `json:"collaborator" yaml:"collaborator"`
}

// methodWire is the wire shape of one method.
type methodWire struct {
	Name  string         `json:"name" yaml:"name"`
	Uses  []string       `json:"uses" yaml:"uses"`
	Calls []string       `json:"calls" yaml:"calls"`
	Body  []fragmentWire `json:"body" yaml:"body"`
}

// fragmentWire is one body fragment in the lexical tree. Kind is one of
// branch, loop, try, catch, lambda or stream; stream fragments carry the
// number of pipeline stages.
type fragmentWire struct {
	Kind   string         `json:"kind" yaml:"kind"`
	Stages int            `json:"stages" yaml:"stages"`
	Body   []fragmentWire `json:"body" yaml:"body"`
}

// decodeDocument parses a descriptor file into its normalized list form,
// choosing the decoder by file extension.
func decodeDocument(path string, data []byte) (*documentWire, error) {
	isYAML := false
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		isYAML = true
	}

	var doc documentWire
	var single unitWire
	if isYAML {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("malformed descriptor %s: %w", path, err)
		}
		if len(doc.Units) == 0 {
			if err := yaml.Unmarshal(data, &single); err != nil {
				return nil, fmt.Errorf("malformed descriptor %s: %w", path, err)
			}
		}
	} else {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("malformed descriptor %s: %w", path, err)
		}
		if len(doc.Units) == 0 {
			if err := json.Unmarshal(data, &single); err != nil {
				return nil, fmt.Errorf("malformed descriptor %s: %w", path, err)
			}
		}
	}

	if len(doc.Units) == 0 {
		if single.ID == "" {
			return nil, fmt.Errorf("descriptor %s holds no units", path)
		}
		doc.Units = []unitWire{single}
	}
	return &doc, nil
}
