// Package file turns rendered text and local directories into build steps.
package file

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/bianoble/userenv/internal/artifact"
	"github.com/bianoble/userenv/internal/field"
	"github.com/bianoble/userenv/internal/logging"
)

// File is an artifact holding a single file named after the artifact.
type File struct {
	name       string
	content    string
	executable bool
	systems    []artifact.System
}

// New returns a non-executable File.
func New(name, content string, systems []artifact.System) *File {
	return &File{
		name:    name,
		content: content,
		systems: append([]artifact.System(nil), systems...),
	}
}

// WithExecutable sets mode 755 instead of 644.
func (f *File) WithExecutable(executable bool) *File {
	f.executable = executable
	return f
}

// Name returns the artifact name, which is also the file name in the output.
func (f *File) Name() string {
	return f.name
}

// Step renders the shell step that writes the file.
func (f *File) Step() (artifact.Step, error) {
	if !utf8.ValidString(f.content) {
		return artifact.Step{}, &field.SerializeError{Document: f.name, Err: fmt.Errorf("content is not valid UTF-8")}
	}
	name, err := quoteName(f.name)
	if err != nil {
		return artifact.Step{}, &field.SerializeError{Document: f.name, Err: err}
	}

	mode := "644"
	if f.executable {
		mode = "755"
	}

	script, err := render(createScript, map[string]string{
		"name":      name,
		"content":   f.content,
		"delimiter": delimiter(f.content),
		"mode":      mode,
	})
	if err != nil {
		return artifact.Step{}, &field.SerializeError{Document: f.name, Err: err}
	}

	return artifact.Step{
		Name:    f.name,
		Systems: append([]artifact.System(nil), f.systems...),
		Script:  script,
	}, nil
}

// Build renders the step and hands it to the build engine.
func (f *File) Build(ctx context.Context, b artifact.Builder) (artifact.ID, error) {
	step, err := f.Step()
	if err != nil {
		return "", err
	}
	id, err := b.RenderStep(ctx, step)
	if err != nil {
		return "", fmt.Errorf("building file %s: %w", f.name, err)
	}
	logging.Debug().Str("artifact", f.name).Str("id", string(id)).Bool("executable", f.executable).Msg("built file")
	return id, nil
}

// Create renders content into a file artifact. Every settings builder ends
// here.
func Create(ctx context.Context, b artifact.Builder, name, content string, systems []artifact.System) (artifact.ID, error) {
	return New(name, content, systems).Build(ctx, b)
}
