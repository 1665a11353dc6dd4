package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bianoble/userenv/internal/artifact"
	"github.com/bianoble/userenv/internal/artifact/artifacttest"
	"github.com/bianoble/userenv/internal/field"
)

var systems = []artifact.System{artifact.Aarch64Darwin, artifact.X8664Linux}

func TestCreateScript(t *testing.T) {
	step, err := New("config", "a = 1\nb = 2", systems).Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}

	want := `#!/bin/bash
set -euo pipefail

cat << 'EOF' > $VORPAL_OUTPUT/config
a = 1
b = 2
EOF

chmod 644 $VORPAL_OUTPUT/config
`
	if step.Script != want {
		t.Errorf("script mismatch:\ngot:\n%s\nwant:\n%s", step.Script, want)
	}
	if step.Name != "config" {
		t.Errorf("Name = %q", step.Name)
	}
	if len(step.Systems) != 2 {
		t.Errorf("Systems = %v", step.Systems)
	}
}

func TestCreateExecutable(t *testing.T) {
	step, err := New("statusline", "echo hi", systems).WithExecutable(true).Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !strings.Contains(step.Script, "chmod 755 $VORPAL_OUTPUT/statusline") {
		t.Errorf("expected mode 755:\n%s", step.Script)
	}
}

func TestCreateDelimiterAvoidsContent(t *testing.T) {
	content := "line\nEOF\nEOF_1\nmore"
	step, err := New("tricky", content, systems).Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !strings.Contains(step.Script, "cat << 'EOF_2' > $VORPAL_OUTPUT/tricky\n"+content+"\nEOF_2\n") {
		t.Errorf("expected EOF_2 delimiter:\n%s", step.Script)
	}
}

func TestCreateQuotesName(t *testing.T) {
	step, err := New("my config", "x", systems).Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !strings.Contains(step.Script, "$VORPAL_OUTPUT/'my config'") {
		t.Errorf("name not quoted:\n%s", step.Script)
	}
}

func TestCreateRejectsBadNames(t *testing.T) {
	for _, name := range []string{"", "a/b"} {
		_, err := New(name, "x", systems).Step()
		if !errors.Is(err, field.ErrSerialize) {
			t.Errorf("name %q: expected serialization error, got %v", name, err)
		}
	}
}

func TestCreateRejectsInvalidUTF8(t *testing.T) {
	_, err := New("bad", "\xff", systems).Step()
	if !errors.Is(err, field.ErrSerialize) {
		t.Fatalf("expected serialization error, got %v", err)
	}
}

func TestCreateBuild(t *testing.T) {
	b := artifacttest.New()
	id, err := Create(context.Background(), b, "config", "x", systems)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	step, err := b.Step(id)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if step.Name != "config" {
		t.Errorf("recorded step %q", step.Name)
	}

	again, err := Create(context.Background(), b, "config", "x", systems)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if again != id {
		t.Errorf("identical content produced different ids: %s != %s", again, id)
	}
}

func TestCreateBuildPropagatesEngineError(t *testing.T) {
	b := artifacttest.New()
	b.FailRender = map[string]error{"config": errors.New("sandbox unavailable")}

	_, err := Create(context.Background(), b, "config", "x", systems)
	if err == nil || !strings.Contains(err.Error(), "sandbox unavailable") {
		t.Fatalf("expected engine error, got %v", err)
	}
}

func TestLines(t *testing.T) {
	var l Lines
	l.WithLine("a").WithLine("").WithLine("b")
	if got := l.String(); got != "a\n\nb" {
		t.Errorf("got %q", got)
	}

	var empty Lines
	if got := empty.String(); got != "" {
		t.Errorf("empty Lines = %q", got)
	}
}

func TestSourceStep(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "reviewer.md"), "# reviewer")
	writeFile(t, filepath.Join(dir, "nested", "planner.md"), "# planner")
	writeFile(t, filepath.Join(dir, ".hidden"), "secret")
	writeFile(t, filepath.Join(dir, ".git", "HEAD"), "ref")

	step, err := NewSource("agents", dir, systems).Step(context.Background())
	if err != nil {
		t.Fatalf("Step: %v", err)
	}

	if len(step.Sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(step.Sources))
	}
	files := step.Sources[0].Files
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %v", files)
	}
	if files["nested/planner.md"] != artifact.HashContent([]byte("# planner")) {
		t.Errorf("wrong digest for nested/planner.md")
	}
	if !strings.Contains(step.Script, "cp -rv ./source/agents/. $VORPAL_OUTPUT/") {
		t.Errorf("unexpected script:\n%s", step.Script)
	}
}

func TestSourceErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewSource("missing", filepath.Join(dir, "nope"), systems).Step(context.Background())
	var se *SourceError
	if !errors.As(err, &se) {
		t.Fatalf("expected SourceError, got %v", err)
	}
	if se.Hint == "" {
		t.Error("expected a hint for a missing path")
	}

	empty := filepath.Join(dir, "empty")
	if err := os.MkdirAll(empty, 0755); err != nil {
		t.Fatal(err)
	}
	if _, err := NewSource("empty", empty, systems).Step(context.Background()); err == nil {
		t.Fatal("expected error for empty directory")
	}

	plain := filepath.Join(dir, "plain.txt")
	writeFile(t, plain, "x")
	if _, err := NewSource("plain", plain, systems).Step(context.Background()); err == nil {
		t.Fatal("expected error for a regular file")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
