// Package artifacttest provides an in-memory artifact.Builder for tests.
package artifacttest

import (
	"context"
	"fmt"
	"sync"

	"github.com/bianoble/userenv/internal/artifact"
)

// Builder records rendered steps and resolves ids to paths under Root.
// Ids are HashStep digests, so identical steps get identical ids.
type Builder struct {
	Root string

	// FailResolve makes ResolveOutputPath fail for these ids.
	FailResolve map[artifact.ID]error

	// FailRender makes RenderStep fail for steps with these names.
	FailRender map[string]error

	mu       sync.Mutex
	steps    map[artifact.ID]artifact.Step
	order    []artifact.ID
	resolved []artifact.ID
}

// New returns a Builder rooted at artifact.DefaultOutputRoot.
func New() *Builder {
	return &Builder{Root: artifact.DefaultOutputRoot}
}

func (b *Builder) RenderStep(ctx context.Context, step artifact.Step) (artifact.ID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err, ok := b.FailRender[step.Name]; ok {
		return "", err
	}
	id := artifact.HashStep(step)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.steps == nil {
		b.steps = make(map[artifact.ID]artifact.Step)
	}
	b.steps[id] = step
	b.order = append(b.order, id)
	return id, nil
}

func (b *Builder) ResolveOutputPath(ctx context.Context, namespace string, id artifact.ID) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b.mu.Lock()
	b.resolved = append(b.resolved, id)
	b.mu.Unlock()

	if err, ok := b.FailResolve[id]; ok {
		return "", err
	}
	return artifact.OutputPath(b.Root, namespace, id), nil
}

// Add registers a prebuilt artifact, as if a tool binary had been built.
func (b *Builder) Add(id artifact.ID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.steps == nil {
		b.steps = make(map[artifact.ID]artifact.Step)
	}
	b.steps[id] = artifact.Step{Name: string(id)}
}

// Step returns the step recorded for id.
func (b *Builder) Step(id artifact.ID) (artifact.Step, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	step, ok := b.steps[id]
	if !ok {
		return artifact.Step{}, fmt.Errorf("%w: %s", artifact.ErrUnknown, id)
	}
	return step, nil
}

// Rendered returns the ids of rendered steps in call order.
func (b *Builder) Rendered() []artifact.ID {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]artifact.ID(nil), b.order...)
}

// Resolved returns every id passed to ResolveOutputPath, in call order.
func (b *Builder) Resolved() []artifact.ID {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]artifact.ID(nil), b.resolved...)
}
