// Package env composes built artifacts, environment variables and symlinks
// into a single environment descriptor for the build engine to materialize.
package env

import (
	"context"
	"fmt"
	"path"

	"github.com/bianoble/userenv/internal/artifact"
	"github.com/bianoble/userenv/internal/logging"
)

// Symlink links Target to Source when the environment is activated. Source
// is always a resolved filesystem path, never an artifact id.
type Symlink struct {
	Source string `yaml:"source" json:"source"`
	Target string `yaml:"target" json:"target"`
}

// Descriptor is one materializable environment.
type Descriptor struct {
	Name         string            `yaml:"name" json:"name"`
	Systems      []artifact.System `yaml:"systems" json:"systems"`
	Artifacts    []artifact.ID     `yaml:"artifacts,omitempty" json:"artifacts,omitempty"`
	Environments []string          `yaml:"environments,omitempty" json:"environments,omitempty"`
	Symlinks     []Symlink         `yaml:"symlinks,omitempty" json:"symlinks,omitempty"`
}

// Compose aggregates already resolved inputs into a Descriptor. It performs
// no I/O and no deduplication: artifacts, environment assignments and
// symlinks keep the order they were given in, and a later assignment of the
// same variable is kept alongside the earlier one.
func Compose(name string, systems []artifact.System, artifacts []artifact.ID, environments []string, symlinks []Symlink) *Descriptor {
	return &Descriptor{
		Name:         name,
		Systems:      append([]artifact.System(nil), systems...),
		Artifacts:    append([]artifact.ID(nil), artifacts...),
		Environments: append([]string(nil), environments...),
		Symlinks:     append([]Symlink(nil), symlinks...),
	}
}

// UnresolvedError reports a dependency whose output path could not be
// resolved. Composition stops at the first one.
type UnresolvedError struct {
	ID  artifact.ID
	Err error
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("resolving artifact %s: %v", e.ID, e.Err)
}

func (e *UnresolvedError) Unwrap() error {
	return e.Err
}

// Resolver resolves artifact output paths through a build engine, asking
// the engine at most once per id.
type Resolver struct {
	builder   artifact.Builder
	namespace string
	paths     map[artifact.ID]string
}

func NewResolver(b artifact.Builder, namespace string) *Resolver {
	if namespace == "" {
		namespace = artifact.DefaultNamespace
	}
	return &Resolver{builder: b, namespace: namespace, paths: make(map[artifact.ID]string)}
}

// Path returns the output directory of id.
func (r *Resolver) Path(ctx context.Context, id artifact.ID) (string, error) {
	if p, ok := r.paths[id]; ok {
		return p, nil
	}
	p, err := r.builder.ResolveOutputPath(ctx, r.namespace, id)
	if err != nil {
		return "", &UnresolvedError{ID: id, Err: err}
	}
	logging.Debug().Str("id", string(id)).Str("path", p).Msg("resolved artifact")
	r.paths[id] = p
	return p, nil
}

// Resolve resolves every id in order and returns their output directories.
// The first failure aborts with an *UnresolvedError and no paths.
func Resolve(ctx context.Context, b artifact.Builder, namespace string, ids []artifact.ID) ([]string, error) {
	r := NewResolver(b, namespace)
	paths := make([]string, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := r.Path(ctx, id)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// link is a pending symlink. Its source is either a literal path or a file
// inside an artifact output resolved at build time.
type link struct {
	source string
	id     artifact.ID
	file   string
	target string
}

// Builder collects the parts of an environment and resolves them against a
// build engine.
type Builder struct {
	name         string
	systems      []artifact.System
	namespace    string
	spent        bool
	artifacts    []artifact.ID
	environments []string
	links        []link
}

func New(name string, systems []artifact.System) *Builder {
	return &Builder{
		name:      name,
		systems:   append([]artifact.System(nil), systems...),
		namespace: artifact.DefaultNamespace,
	}
}

// WithNamespace sets the namespace artifact paths are resolved in.
func (b *Builder) WithNamespace(namespace string) *Builder {
	b.namespace = namespace
	return b
}

// WithArtifacts appends dependency artifacts.
func (b *Builder) WithArtifacts(ids ...artifact.ID) *Builder {
	b.artifacts = append(b.artifacts, ids...)
	return b
}

// WithEnvironments appends KEY=VALUE assignments.
func (b *Builder) WithEnvironments(assignments ...string) *Builder {
	b.environments = append(b.environments, assignments...)
	return b
}

// WithSymlinks appends symlinks whose sources are already resolved paths.
func (b *Builder) WithSymlinks(symlinks ...Symlink) *Builder {
	for _, s := range symlinks {
		b.links = append(b.links, link{source: s.Source, target: s.Target})
	}
	return b
}

// WithArtifactLink links target to file inside the output of id. An empty
// file links the output directory itself. The id does not need to be listed
// in WithArtifacts.
func (b *Builder) WithArtifactLink(id artifact.ID, file, target string) *Builder {
	b.links = append(b.links, link{id: id, file: file, target: target})
	return b
}

// Build resolves every artifact and artifact link, each id once, and
// composes the descriptor. Any resolution failure aborts the whole build.
// A Builder can be built once.
func (b *Builder) Build(ctx context.Context, engine artifact.Builder) (*Descriptor, error) {
	if b.spent {
		return nil, fmt.Errorf("building environment %s: %w", b.name, artifact.ErrSpent)
	}
	b.spent = true

	r := NewResolver(engine, b.namespace)
	for _, id := range b.artifacts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := r.Path(ctx, id); err != nil {
			return nil, fmt.Errorf("building environment %s: %w", b.name, err)
		}
	}

	symlinks := make([]Symlink, 0, len(b.links))
	for _, l := range b.links {
		source := l.source
		if l.id != "" {
			dir, err := r.Path(ctx, l.id)
			if err != nil {
				return nil, fmt.Errorf("building environment %s: %w", b.name, err)
			}
			source = dir
			if l.file != "" {
				source = path.Join(dir, l.file)
			}
		}
		symlinks = append(symlinks, Symlink{Source: source, Target: l.target})
	}

	d := Compose(b.name, b.systems, b.artifacts, b.environments, symlinks)
	logging.Debug().
		Str("environment", b.name).
		Int("artifacts", len(d.Artifacts)).
		Int("symlinks", len(d.Symlinks)).
		Msg("composed environment")
	return d, nil
}
