// Package manifest loads and validates a project's l.yaml file: the
// package name and version, its profiles, and its dependency set.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// FileName is the manifest's expected name at a project's root.
const FileName = "l.yaml"

// Package identifies the project itself.
type Package struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	License string `yaml:"license,omitempty"`
}

// Profile configures one build profile, e.g. "dev" or "release".
type Profile struct {
	Release   bool `yaml:"release"`
	OptLevel  int  `yaml:"opt_level"`
	DebugInfo bool `yaml:"debug_info"`
}

// DefaultProfiles returns the two profiles every new project starts with.
func DefaultProfiles() map[string]Profile {
	return map[string]Profile{
		"dev":     {Release: false, OptLevel: 0, DebugInfo: true},
		"release": {Release: true, OptLevel: 3, DebugInfo: false},
	}
}

// Dependency names where a dependency's sources come from: a sibling path,
// or a git remote pinned to a ref, constrained by a semver range.
type Dependency struct {
	Path    string `yaml:"path,omitempty"`
	Git     string `yaml:"git,omitempty"`
	Ref     string `yaml:"ref,omitempty"`
	Version string `yaml:"version,omitempty"`
}

// Manifest is the parsed contents of l.yaml.
type Manifest struct {
	Package      Package            `yaml:"package"`
	Profile      map[string]Profile `yaml:"profile"`
	Dependencies map[string]Dependency `yaml:"dependencies"`
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: %s: %w", path, err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("manifest: %s: %w", path, err)
	}

	return &m, nil
}

// FindUp walks upward from dir looking for an l.yaml file, mirroring the
// original driver's search for a project root from an arbitrary file path.
func FindUp(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("manifest: no %s found above %s", FileName, dir)
		}
		dir = parent
	}
}

// Validate checks that the package version and every dependency version
// constraint parse as semver, and that every dependency names exactly one
// source.
func (m *Manifest) Validate() error {
	if m.Package.Name == "" {
		return fmt.Errorf("package.name is required")
	}
	if m.Package.Version != "" {
		if _, err := semver.NewVersion(m.Package.Version); err != nil {
			return fmt.Errorf("package.version: %w", err)
		}
	}

	for name, dep := range m.Dependencies {
		sources := 0
		if dep.Path != "" {
			sources++
		}
		if dep.Git != "" {
			sources++
		}
		if sources != 1 {
			return fmt.Errorf("dependency %q: exactly one of path or git is required", name)
		}
		if dep.Version != "" {
			if _, err := semver.NewConstraint(dep.Version); err != nil {
				return fmt.Errorf("dependency %q: version: %w", name, err)
			}
		}
	}

	return nil
}

// ResolveProfile returns the named profile, or an error if it isn't
// declared.
func (m *Manifest) ResolveProfile(name string) (Profile, error) {
	p, ok := m.Profile[name]
	if !ok {
		return Profile{}, fmt.Errorf("manifest: no such profile %q", name)
	}
	return p, nil
}
