package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bianoble/userenv/internal/artifact"
	"github.com/bianoble/userenv/internal/logging"
)

// SourceError reports a failure reading a local directory source.
type SourceError struct {
	Source    string
	Operation string
	Err       error
	Hint      string
}

func (e *SourceError) Error() string {
	msg := fmt.Sprintf("%s: %s failed: %s", e.Source, e.Operation, e.Err)
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Source is an artifact whose output is a copy of a local directory.
type Source struct {
	name    string
	path    string
	systems []artifact.System
}

// NewSource returns a Source copying the directory at path.
func NewSource(name, path string, systems []artifact.System) *Source {
	return &Source{
		name:    name,
		path:    path,
		systems: append([]artifact.System(nil), systems...),
	}
}

// Step hashes the directory's files and renders the copy step.
// Hidden files are skipped.
func (s *Source) Step(ctx context.Context) (artifact.Step, error) {
	abs, err := filepath.Abs(s.path)
	if err != nil {
		return artifact.Step{}, &SourceError{Source: s.name, Operation: "resolve", Err: fmt.Errorf("resolving path: %w", err)}
	}

	info, err := os.Stat(abs)
	if err != nil {
		return artifact.Step{}, &SourceError{Source: s.name, Operation: "resolve", Err: fmt.Errorf("stat %s: %w", s.path, err), Hint: "check that the path exists"}
	}
	if !info.IsDir() {
		return artifact.Step{}, &SourceError{Source: s.name, Operation: "resolve", Err: fmt.Errorf("'%s' is not a directory", s.path)}
	}

	files := make(map[string]string)
	err = filepath.Walk(abs, func(path string, fi os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if strings.HasPrefix(fi.Name(), ".") && path != abs {
			if fi.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if fi.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(abs, path)
		if relErr != nil {
			return relErr
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}
		files[filepath.ToSlash(rel)] = artifact.HashContent(data)
		return nil
	})
	if err != nil {
		return artifact.Step{}, &SourceError{Source: s.name, Operation: "resolve", Err: fmt.Errorf("walking %s: %w", s.path, err)}
	}

	if len(files) == 0 {
		return artifact.Step{}, &SourceError{
			Source:    s.name,
			Operation: "resolve",
			Err:       fmt.Errorf("no files found at '%s'", s.path),
			Hint:      "the path exists but contains no files",
		}
	}

	name, err := quoteName(s.name)
	if err != nil {
		return artifact.Step{}, &SourceError{Source: s.name, Operation: "render", Err: err}
	}
	script, err := render(sourceScript, map[string]string{"name": name})
	if err != nil {
		return artifact.Step{}, &SourceError{Source: s.name, Operation: "render", Err: err}
	}

	return artifact.Step{
		Name:    s.name,
		Systems: append([]artifact.System(nil), s.systems...),
		Script:  script,
		Sources: []artifact.Source{{Name: s.name, Path: abs, Files: files}},
	}, nil
}

// Build renders the step and hands it to the build engine.
func (s *Source) Build(ctx context.Context, b artifact.Builder) (artifact.ID, error) {
	step, err := s.Step(ctx)
	if err != nil {
		return "", err
	}
	id, err := b.RenderStep(ctx, step)
	if err != nil {
		return "", fmt.Errorf("building source %s: %w", s.name, err)
	}
	logging.Debug().Str("artifact", s.name).Str("id", string(id)).Int("files", len(step.Sources[0].Files)).Msg("built source")
	return id, nil
}
