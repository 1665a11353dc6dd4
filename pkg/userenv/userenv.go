// Package userenv provides the public Go library API for userenv.
//
// userenv generates tool configuration files from typed builders, hands
// them to a build engine as artifacts and composes a user environment that
// links every generated file into the home directory. This package exposes
// a client for embedding userenv in other Go programs.
//
// # Basic Usage
//
//	client, err := userenv.New(userenv.Options{
//	    ProjectRoot: "/path/to/dotfiles",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Build every artifact and write userenv.lock
//	result, err := client.Build(ctx, userenv.BuildOptions{})
//
//	// Preview a single generated file
//	content, err := client.Render("ghostty")
package userenv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/bianoble/userenv/internal/artifact"
	"github.com/bianoble/userenv/internal/config"
	"github.com/bianoble/userenv/internal/logging"
	"github.com/bianoble/userenv/internal/manifest"
	"github.com/bianoble/userenv/internal/profile"
	"github.com/bianoble/userenv/internal/store"
)

// DefaultManifestName is the manifest file written next to the config.
const DefaultManifestName = "userenv.lock"

// Pinner is implemented by builders that accept prebuilt artifacts. Tools
// pinned in the config are registered before an environment is composed.
type Pinner interface {
	Pin(name string, id ID) error
}

// BuildOptions configures a build.
type BuildOptions struct {
	// Project composes a project environment: pinned tools and variables
	// only, no generated files.
	Project bool

	// DryRun builds and composes without writing the manifest.
	DryRun bool
}

// BuildResult holds the outcome of a build.
type BuildResult struct {
	Manifest *Manifest
	// Changes lists artifacts that differ from the previous manifest.
	Changes []Change
	Layers  []ConfigLayer
	// Written is false for dry runs.
	Written bool
}

// Target is a tool known to the tool map.
type Target struct {
	Tool        string
	Destination string
	// Artifact is the generated artifact linked to the tool, if any.
	Artifact   string
	Custom     bool
	Overridden bool
}

// Options configures a userenv client.
type Options struct {
	// ProjectRoot is the directory holding the project config. Relative
	// directory sources are resolved against it. If empty, defaults to the
	// directory containing ConfigPath.
	ProjectRoot string

	// ConfigPath is the project config. If empty, the first of
	// userenv.{yaml,yml,toml,jsonc,json} in ProjectRoot is used.
	ConfigPath string

	// ManifestPath is where the manifest is written. Default:
	// userenv.lock in ProjectRoot.
	ManifestPath string

	// StoreDir is the local artifact store. If empty, uses the default
	// (~/.cache/userenv). Ignored when Builder is set.
	StoreDir string

	// OutputRoot is the root artifact outputs are resolved under. If
	// empty, uses the build engine default. Ignored when Builder is set.
	OutputRoot string

	// Builder is the build engine. If nil, the local store is used.
	Builder Builder

	// SystemConfigPath and UserConfigPath override the inherited layer
	// locations. Set to a nonexistent path to skip a layer.
	SystemConfigPath string
	UserConfigPath   string

	// NoInherit skips the system and user config layers.
	NoInherit bool

	// ReadOnly opens the local store without creating it. A missing store
	// is not an error here; Build then fails with an error wrapping
	// fs.ErrNotExist. Ignored when Builder is set.
	ReadOnly bool
}

// Client is the main entry point for the userenv library.
type Client struct {
	builder          Builder
	projectRoot      string
	configPath       string
	manifestPath     string
	systemConfigPath string
	userConfigPath   string
	noInherit        bool
	storeErr         error
}

// New creates a new userenv Client.
func New(opts Options) (*Client, error) {
	root := opts.ProjectRoot
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		dir := root
		if dir == "" {
			dir = "."
		}
		found, err := config.FindProjectConfig(dir)
		if err != nil {
			found = filepath.Join(dir, "userenv.yaml")
		}
		cfgPath = found
	}

	if root == "" {
		abs, err := filepath.Abs(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("resolving config path: %w", err)
		}
		root = filepath.Dir(abs)
	}

	manifestPath := opts.ManifestPath
	if manifestPath == "" {
		manifestPath = filepath.Join(root, DefaultManifestName)
	}

	c := &Client{
		builder:          opts.Builder,
		projectRoot:      root,
		configPath:       cfgPath,
		manifestPath:     manifestPath,
		systemConfigPath: opts.SystemConfigPath,
		userConfigPath:   opts.UserConfigPath,
		noInherit:        opts.NoInherit,
	}
	if c.builder != nil {
		return c, nil
	}

	dir := opts.StoreDir
	if dir == "" {
		dir = store.DefaultDir()
	}
	if opts.ReadOnly {
		s, err := store.Open(dir, opts.OutputRoot)
		if errors.Is(err, fs.ErrNotExist) {
			c.storeErr = err
			return c, nil
		}
		if err != nil {
			return nil, err
		}
		c.builder = s
		return c, nil
	}

	s, err := store.New(dir, opts.OutputRoot)
	if err != nil {
		return nil, fmt.Errorf("initializing store: %w", err)
	}
	c.builder = s
	return c, nil
}

// ManifestPath returns where the manifest is written.
func (c *Client) ManifestPath() string {
	return c.manifestPath
}

// Config loads and merges every config layer.
func (c *Client) Config() (*config.Config, []ConfigLayer, error) {
	return config.LoadLayers(config.DiscoverOptions{
		ProjectPath:      c.configPath,
		SystemConfigPath: c.systemConfigPath,
		UserConfigPath:   c.userConfigPath,
		NoInherit:        c.noInherit,
	})
}

// Build builds the environment, compares it with the previous manifest and
// writes the new one unless opts.DryRun is set.
func (c *Client) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if c.builder == nil {
		return nil, fmt.Errorf("no artifact store: %w", c.storeErr)
	}

	cfg, layers, err := c.Config()
	if err != nil {
		return nil, err
	}

	if p, ok := c.builder.(Pinner); ok {
		for _, t := range cfg.Tools {
			if err := p.Pin(t.Name, artifact.ID(t.Artifact)); err != nil {
				return nil, fmt.Errorf("pinning tool '%s': %w", t.Name, err)
			}
		}
	}

	var res *profile.Result
	if opts.Project {
		res, err = profile.Project(ctx, cfg, c.builder)
	} else {
		var u *profile.User
		u, err = profile.NewUser(cfg, c.projectRoot)
		if err == nil {
			res, err = u.Build(ctx, c.builder)
		}
	}
	if err != nil {
		return nil, err
	}

	m := res.Manifest()
	out := &BuildResult{
		Manifest: m,
		Changes:  manifest.Diff(c.previous(), m),
		Layers:   layers,
	}

	if !opts.DryRun {
		if err := manifest.Save(c.manifestPath, m); err != nil {
			return nil, fmt.Errorf("saving manifest: %w", err)
		}
		out.Written = true
	}
	return out, nil
}

// Render returns the generated content linked to tool without building.
func (c *Client) Render(tool string) (string, error) {
	cfg, _, err := c.Config()
	if err != nil {
		return "", err
	}
	u, err := profile.NewUser(cfg, c.projectRoot)
	if err != nil {
		return "", err
	}
	return u.Render(tool)
}

// Targets lists every tool in the tool map with its destination.
func (c *Client) Targets() ([]Target, error) {
	cfg, _, err := c.Config()
	if err != nil {
		return nil, err
	}
	u, err := profile.NewUser(cfg, c.projectRoot)
	if err != nil {
		return nil, err
	}

	generated := make(map[string]string)
	for _, a := range u.Artifacts() {
		generated[a.Tool] = a.Name
	}

	tm := u.Tools()
	var targets []Target
	for _, tool := range tm.KnownTools() {
		dest, err := tm.Resolve(tool)
		if err != nil {
			return nil, err
		}
		targets = append(targets, Target{
			Tool:        tool,
			Destination: dest,
			Artifact:    generated[tool],
			Custom:      tm.IsCustom(tool),
			Overridden:  tm.IsOverridden(tool),
		})
	}
	return targets, nil
}

// Manifest reads the manifest written by the last build.
func (c *Client) Manifest() (*Manifest, error) {
	return manifest.Load(c.manifestPath)
}

// previous returns the last written manifest, or nil if there is none or
// it cannot be read.
func (c *Client) previous() *Manifest {
	m, err := manifest.Load(c.manifestPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logging.Warn().Err(err).Str("path", c.manifestPath).Msg("ignoring unreadable manifest")
		}
		return nil
	}
	return m
}
