// Package project manages pyforge project scaffolding and the project
// manifest. The manifest persists the board selection and the
// constructible class names discovered by header introspection.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// ManifestName is the project manifest file name.
const ManifestName = "pyforge.yaml"

// LibDir is the directory holding library headers and generated stubs.
const LibDir = "lib"

// starterSketch is the main.py written into a fresh project.
const starterSketch = `from Arduino import *

def setup():
    pass

def loop():
    pass
`

// Manifest is the persisted project configuration.
type Manifest struct {
	FQBN    string   `yaml:"fqbn"`
	Classes []string `yaml:"classes,omitempty"`
}

// LoadManifest reads the manifest from a project directory. A missing
// manifest is not an error; an empty manifest is returned.
func LoadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Manifest{}, nil
		}

		return nil, fmt.Errorf("project: read manifest: %w", err)
	}

	var m Manifest

	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("project: parse manifest: %w", err)
	}

	return &m, nil
}

// SaveManifest writes the manifest into a project directory.
func SaveManifest(dir string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("project: encode manifest: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, ManifestName), data, 0o644); err != nil {
		return fmt.Errorf("project: write manifest: %w", err)
	}

	return nil
}

// RegisterClasses merges class names into the manifest, keeping the list
// sorted and deduplicated.
func (m *Manifest) RegisterClasses(names []string) {
	m.Classes = append(m.Classes, names...)
	slices.Sort(m.Classes)
	m.Classes = slices.Compact(m.Classes)
}

// Create scaffolds a new project directory with a lib/ directory, a
// starter sketch and a default manifest. An existing directory is left
// untouched.
func Create(name, fqbn string) error {
	if _, err := os.Stat(name); err == nil {
		return fmt.Errorf("project: %s already exists", name)
	}

	if err := os.MkdirAll(filepath.Join(name, LibDir), 0o755); err != nil {
		return fmt.Errorf("project: create layout: %w", err)
	}

	if err := os.WriteFile(filepath.Join(name, "main.py"), []byte(starterSketch), 0o644); err != nil {
		return fmt.Errorf("project: write starter sketch: %w", err)
	}

	return SaveManifest(name, &Manifest{FQBN: fqbn})
}
