// Package store is a local, content-addressed stand-in for the build engine.
// It records rendered steps on disk under their artifact id and resolves
// output paths for the ids it knows, so environments can be composed and
// inspected without a running engine.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/bianoble/userenv/internal/artifact"
	"github.com/bianoble/userenv/internal/logging"
)

// record is the on-disk form of a stored artifact.
type record struct {
	Name    string         `yaml:"name"`
	Pinned  bool           `yaml:"pinned,omitempty"`
	Systems []string       `yaml:"systems,omitempty"`
	Script  string         `yaml:"script,omitempty"`
	Sources []sourceRecord `yaml:"sources,omitempty"`
}

type sourceRecord struct {
	Files map[string]string `yaml:"files,omitempty"`
	Name  string            `yaml:"name"`
	Path  string            `yaml:"path"`
}

// Store implements artifact.Builder on top of a directory.
type Store struct {
	dir  string
	root string

	mu    sync.Mutex
	known map[artifact.ID]bool
}

// New opens a Store at dir, creating it if needed. Output paths are
// reported under outputRoot, or artifact.DefaultOutputRoot when empty.
func New(dir, outputRoot string) (*Store, error) {
	objDir := filepath.Join(dir, "objects")
	_, statErr := os.Stat(objDir)
	if err := os.MkdirAll(objDir, 0755); err != nil {
		return nil, fmt.Errorf("creating store directory %s: %w", objDir, err)
	}
	if os.IsNotExist(statErr) {
		logging.Info().Str("dir", dir).Msg("created artifact store")
	}
	if outputRoot == "" {
		outputRoot = artifact.DefaultOutputRoot
	}
	return &Store{dir: dir, root: outputRoot, known: make(map[artifact.ID]bool)}, nil
}

// Open opens an existing Store at dir without creating anything. A missing
// store is reported as an error wrapping fs.ErrNotExist.
func Open(dir, outputRoot string) (*Store, error) {
	objDir := filepath.Join(dir, "objects")
	info, err := os.Stat(objDir)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("opening store %s: %s is not a directory", dir, objDir)
	}
	if outputRoot == "" {
		outputRoot = artifact.DefaultOutputRoot
	}
	return &Store{dir: dir, root: outputRoot, known: make(map[artifact.ID]bool)}, nil
}

// DefaultDir returns the default store directory.
// Uses XDG_CACHE_HOME if set, otherwise ~/.cache/userenv.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "userenv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		if runtime.GOOS == "windows" {
			return filepath.Join(os.TempDir(), "userenv-store")
		}
		return filepath.Join("/tmp", "userenv-store")
	}
	return filepath.Join(home, ".cache", "userenv")
}

// RenderStep stores step under its HashStep id. Rendering the same step
// again is a no-op returning the same id.
func (s *Store) RenderStep(ctx context.Context, step artifact.Step) (artifact.ID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := artifact.HashStep(step)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.has(id) {
		logging.Debug().Str("step", step.Name).Str("id", string(id)).Msg("artifact already stored")
		return id, nil
	}
	if err := s.write(id, toRecord(step)); err != nil {
		return "", fmt.Errorf("storing step %s: %w", step.Name, err)
	}
	logging.Debug().Str("step", step.Name).Str("id", string(id)).Msg("stored artifact")
	return id, nil
}

// Pin registers a prebuilt artifact by id so it can be resolved. Pinned
// artifacts carry no step.
func (s *Store) Pin(name string, id artifact.ID) error {
	if !id.Valid() {
		return fmt.Errorf("pinning %s: invalid artifact id '%s'", name, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.has(id) {
		return nil
	}
	if err := s.write(id, record{Name: name, Pinned: true}); err != nil {
		return fmt.Errorf("pinning %s: %w", name, err)
	}
	return nil
}

// ResolveOutputPath returns the output directory of a stored artifact, or
// an error wrapping artifact.ErrUnknown.
func (s *Store) ResolveOutputPath(ctx context.Context, namespace string, id artifact.ID) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	ok := s.has(id)
	s.mu.Unlock()

	if !ok {
		return "", fmt.Errorf("%w: %s", artifact.ErrUnknown, id)
	}
	return artifact.OutputPath(s.root, namespace, id), nil
}

// Step returns the step stored under id. Entries whose content no longer
// hashes to their id are removed and reported unknown.
func (s *Store) Step(id artifact.ID) (artifact.Step, error) {
	if !id.Valid() {
		return artifact.Step{}, fmt.Errorf("%w: %s", artifact.ErrUnknown, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.objectPath(id)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return artifact.Step{}, fmt.Errorf("%w: %s", artifact.ErrUnknown, id)
	}
	if err != nil {
		return artifact.Step{}, fmt.Errorf("reading store entry %s: %w", id, err)
	}

	var rec record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return artifact.Step{}, fmt.Errorf("parsing store entry %s: %w", id, err)
	}

	step := rec.step()
	if !rec.Pinned && artifact.HashStep(step) != id {
		if err := os.Remove(path); err != nil {
			logging.Error().Err(err).Str("id", string(id)).Msg("removing corrupt store entry")
		}
		delete(s.known, id)
		logging.Warn().Str("id", string(id)).Msg("removed corrupt store entry")
		return artifact.Step{}, fmt.Errorf("%w: %s", artifact.ErrUnknown, id)
	}
	return step, nil
}

// List returns every stored id, sorted.
func (s *Store) List() ([]artifact.ID, error) {
	var ids []artifact.ID
	err := filepath.WalkDir(filepath.Join(s.dir, "objects"), func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && !strings.HasPrefix(d.Name(), ".tmp-") {
			ids = append(ids, artifact.ID(d.Name()))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing store %s: %w", s.dir, err)
	}
	slices.Sort(ids)
	return ids, nil
}

// Has checks if an id is stored.
func (s *Store) Has(id artifact.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.has(id)
}

// Path returns the store directory path.
func (s *Store) Path() string {
	return s.dir
}

// OutputRoot returns the root output paths are resolved under.
func (s *Store) OutputRoot() string {
	return s.root
}

// has reports whether id is stored. Callers hold s.mu.
func (s *Store) has(id artifact.ID) bool {
	if !id.Valid() {
		return false
	}
	if s.known[id] {
		return true
	}
	info, err := os.Stat(s.objectPath(id))
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	s.known[id] = true
	return true
}

// write stores rec atomically. Callers hold s.mu.
func (s *Store) write(id artifact.ID, rec record) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling store entry: %w", err)
	}

	path := s.objectPath(id)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating store subdirectory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating store temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("writing store temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing store temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing store temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming store temp file: %w", err)
	}

	success = true
	s.known[id] = true
	return nil
}

func (s *Store) objectPath(id artifact.ID) string {
	if len(id) < 2 {
		return filepath.Join(s.dir, "objects", string(id))
	}
	return filepath.Join(s.dir, "objects", string(id[:2]), string(id))
}

func toRecord(step artifact.Step) record {
	rec := record{Name: step.Name, Script: step.Script}
	for _, sys := range step.Systems {
		rec.Systems = append(rec.Systems, string(sys))
	}
	for _, src := range step.Sources {
		rec.Sources = append(rec.Sources, sourceRecord{Name: src.Name, Path: src.Path, Files: src.Files})
	}
	return rec
}

func (r record) step() artifact.Step {
	step := artifact.Step{Name: r.Name, Script: r.Script}
	for _, sys := range r.Systems {
		step.Systems = append(step.Systems, artifact.System(sys))
	}
	for _, src := range r.Sources {
		step.Sources = append(step.Sources, artifact.Source{Name: src.Name, Path: src.Path, Files: src.Files})
	}
	return step
}
