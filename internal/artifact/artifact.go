// Package artifact defines the contract between configuration builders and
// the build engine that turns shell steps into content-addressed artifacts.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"path"
)

// DefaultNamespace is the namespace rendered artifacts are published under.
const DefaultNamespace = "library"

// DefaultOutputRoot is where the build engine materializes artifact outputs.
const DefaultOutputRoot = "/var/lib/vorpal/store/artifact/output"

var (
	// ErrUnknown is returned when an artifact id has never been built.
	ErrUnknown = errors.New("unknown artifact")

	// ErrSpent is returned when a builder is built a second time.
	ErrSpent = errors.New("builder already built")
)

// ID is a build-engine-assigned artifact identifier.
type ID string

// Valid reports whether id can name a single path element: non-empty,
// made only of ASCII letters, digits, '.', '_' and '-', and not "." or "..".
func (id ID) Valid() bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	for _, c := range []byte(id) {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.', c == '_', c == '-':
		default:
			return false
		}
	}
	return true
}

// System is a target platform an artifact is built for.
type System string

const (
	Aarch64Darwin System = "aarch64-darwin"
	Aarch64Linux  System = "aarch64-linux"
	X8664Darwin   System = "x86_64-darwin"
	X8664Linux    System = "x86_64-linux"
)

// AllSystems returns every supported system in a fresh slice.
func AllSystems() []System {
	return []System{Aarch64Darwin, Aarch64Linux, X8664Darwin, X8664Linux}
}

// ParseSystem converts a system name into a System.
func ParseSystem(s string) (System, error) {
	for _, sys := range AllSystems() {
		if string(sys) == s {
			return sys, nil
		}
	}
	return "", fmt.Errorf("unknown system '%s'; must be one of: aarch64-darwin, aarch64-linux, x86_64-darwin, x86_64-linux", s)
}

// Source is a set of local files made available to a step under
// ./source/<Name>/ in its working directory.
type Source struct {
	Name string
	Path string
	// Files maps relative path to content digest.
	Files map[string]string
}

// Step is a single shell script the engine runs to produce an artifact.
type Step struct {
	Name    string
	Systems []System
	Script  string
	Sources []Source
}

// Builder is the build engine collaborator.
type Builder interface {
	// RenderStep compiles a step into an artifact and returns its id.
	RenderStep(ctx context.Context, step Step) (ID, error)

	// ResolveOutputPath returns the output directory of a built artifact.
	ResolveOutputPath(ctx context.Context, namespace string, id ID) (string, error)
}

// OutputPath formats the output directory for an artifact.
func OutputPath(root, namespace string, id ID) string {
	return path.Join(root, namespace, string(id))
}
