// Package manifest persists a composed environment, together with the
// artifacts that were built for it, as a YAML file the build engine reads to
// materialize the environment.
package manifest

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bianoble/userenv/internal/artifact"
	"github.com/bianoble/userenv/internal/env"
)

// Version is the only manifest version this package reads and writes.
const Version = 1

// Manifest represents a userenv.lock file.
type Manifest struct {
	Version     int             `yaml:"version"`
	Artifacts   []Entry         `yaml:"artifacts,omitempty"`
	Environment *env.Descriptor `yaml:"environment"`
}

// Entry records the artifact id a named builder produced.
type Entry struct {
	Name string      `yaml:"name"`
	ID   artifact.ID `yaml:"id"`
}

// New returns a manifest for d.
func New(d *env.Descriptor, entries ...Entry) *Manifest {
	return &Manifest{Version: Version, Artifacts: entries, Environment: d}
}

// Lookup returns the id recorded for name.
func (m *Manifest) Lookup(name string) (artifact.ID, bool) {
	for _, e := range m.Artifacts {
		if e.Name == name {
			return e.ID, true
		}
	}
	return "", false
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	if errs := Validate(&m); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return &m, nil
}

// Save writes a manifest atomically using a temp file and rename.
func Save(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing temp manifest %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming temp manifest to %s: %w", path, err)
	}

	return nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("manifest validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks a Manifest for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(m *Manifest) []string {
	var errs []string

	if m.Version != Version {
		errs = append(errs, fmt.Sprintf("unsupported version %d; only version %d is supported", m.Version, Version))
	}

	names := make(map[string]bool)
	for i, e := range m.Artifacts {
		prefix := fmt.Sprintf("artifact[%d]", i)
		if e.Name != "" {
			prefix = fmt.Sprintf("artifact '%s'", e.Name)
		}

		if e.Name == "" {
			errs = append(errs, fmt.Sprintf("%s: 'name' is required", prefix))
		} else if names[e.Name] {
			errs = append(errs, fmt.Sprintf("%s: duplicate artifact name '%s'", prefix, e.Name))
		} else {
			names[e.Name] = true
		}

		if e.ID == "" {
			errs = append(errs, fmt.Sprintf("%s: 'id' is required", prefix))
		}
	}

	d := m.Environment
	if d == nil {
		return append(errs, "'environment' is required")
	}

	if d.Name == "" {
		errs = append(errs, "environment: 'name' is required")
	}
	for _, s := range d.Systems {
		if _, err := artifact.ParseSystem(string(s)); err != nil {
			errs = append(errs, fmt.Sprintf("environment: %v", err))
		}
	}
	for i, id := range d.Artifacts {
		if id == "" {
			errs = append(errs, fmt.Sprintf("environment: artifact[%d] is empty", i))
		}
	}
	for i, e := range d.Environments {
		if key, _, ok := strings.Cut(e, "="); !ok || key == "" {
			errs = append(errs, fmt.Sprintf("environment: environments[%d] '%s' must have the form KEY=VALUE", i, e))
		}
	}
	for i, s := range d.Symlinks {
		if s.Source == "" || s.Target == "" {
			errs = append(errs, fmt.Sprintf("environment: symlink[%d] requires both 'source' and 'target'", i))
		}
	}

	return errs
}

// Change describes an artifact whose id differs between two manifests.
type Change struct {
	Name   string
	Before artifact.ID // empty when added
	After  artifact.ID // empty when removed
}

// Diff reports the artifacts that were added, removed or rebuilt between
// old and cur, in the order of cur followed by removals. A nil old manifest
// reports every artifact of cur as added.
func Diff(old, cur *Manifest) []Change {
	var changes []Change
	seen := make(map[string]bool)
	for _, e := range cur.Artifacts {
		seen[e.Name] = true
		var before artifact.ID
		if old != nil {
			before, _ = old.Lookup(e.Name)
		}
		if before != e.ID {
			changes = append(changes, Change{Name: e.Name, Before: before, After: e.ID})
		}
	}
	if old != nil {
		for _, e := range old.Artifacts {
			if !seen[e.Name] {
				changes = append(changes, Change{Name: e.Name, Before: e.ID})
			}
		}
	}
	return changes
}
