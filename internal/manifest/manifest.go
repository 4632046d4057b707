// Package manifest loads YAML run manifests describing a workbook build.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is a declarative description of one workbook build: the output
// path plus the ordered list of sources.
type Manifest struct {
	Name    string   `yaml:"name"`
	Output  string   `yaml:"output"`
	Sources []Source `yaml:"sources"`
}

// Source is one input file, optionally with an explicit sheet name
// replacing the file-stem default.
type Source struct {
	Path  string `yaml:"path"`
	Sheet string `yaml:"sheet,omitempty"`
}

// Load reads and parses a manifest YAML file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("manifest file not found: %s — check that the path is correct", path)
		}
		return nil, fmt.Errorf("could not read manifest file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses a manifest from YAML bytes.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid manifest YAML: %w", err)
	}

	if err := validate(&m); err != nil {
		return nil, err
	}

	return &m, nil
}

func validate(m *Manifest) error {
	if m.Output == "" {
		return fmt.Errorf("manifest is missing an 'output' field")
	}
	if len(m.Sources) == 0 {
		return fmt.Errorf("manifest %q has no sources defined", m.Name)
	}

	seen := make(map[string]bool)
	for i, src := range m.Sources {
		if src.Path == "" {
			return fmt.Errorf("source %d is missing a 'path' field", i+1)
		}
		if src.Sheet != "" {
			if seen[src.Sheet] {
				return fmt.Errorf("duplicate sheet name %q — each sheet must have a unique name", src.Sheet)
			}
			seen[src.Sheet] = true
		}
	}

	return nil
}
