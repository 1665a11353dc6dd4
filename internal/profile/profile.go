// Package profile assembles complete environments from a configuration: the
// user environment with every generated tool config linked into the home
// directory, and a project environment holding only tools and variables.
package profile

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/bianoble/userenv/internal/artifact"
	"github.com/bianoble/userenv/internal/bat"
	"github.com/bianoble/userenv/internal/config"
	"github.com/bianoble/userenv/internal/env"
	"github.com/bianoble/userenv/internal/file"
	"github.com/bianoble/userenv/internal/ghostty"
	"github.com/bianoble/userenv/internal/k9s"
	"github.com/bianoble/userenv/internal/logging"
	"github.com/bianoble/userenv/internal/manifest"
	"github.com/bianoble/userenv/internal/sandbox"
	"github.com/bianoble/userenv/internal/target"
)

//go:embed statusline.sh
var statusline string

const (
	DefaultTheme             = "tokyonight"
	DefaultTerminalTheme     = "TokyoNight"
	DefaultFontFamily        = "GeistMono NFM"
	DefaultFontSize          = 18
	DefaultBackgroundOpacity = 0.95
)

// DefaultEnvironments come before the configured variables of a user
// environment, so configured assignments take effect last.
var DefaultEnvironments = []string{
	"EDITOR=nvim",
	"GOPATH=$HOME/Development/language/go",
	"PATH=$GOPATH/bin:$HOME/.opencode/bin:$HOME/.vorpal/bin:$HOME/.local/bin:$PATH",
}

// Artifact is one generated piece of a user environment.
type Artifact struct {
	// Tool is the tool map entry the artifact is linked to.
	Tool string
	// Name is the artifact name.
	Name string
	// File is the file inside the artifact output that is linked. Empty
	// links the output directory.
	File string

	render func() (string, error)
	build  func(context.Context, artifact.Builder) (artifact.ID, error)
}

// Render returns the generated content without building anything.
func (a Artifact) Render() (string, error) {
	if a.render == nil {
		return "", fmt.Errorf("artifact %s is a copied directory and has no rendered content", a.Name)
	}
	return a.render()
}

// Build hands the artifact to the build engine.
func (a Artifact) Build(ctx context.Context, b artifact.Builder) (artifact.ID, error) {
	return a.build(ctx, b)
}

// Result is a composed environment and the artifacts built for it.
type Result struct {
	Descriptor *env.Descriptor
	Artifacts  []manifest.Entry
}

// Manifest returns the result as a manifest ready to save.
func (r *Result) Manifest() *manifest.Manifest {
	return manifest.New(r.Descriptor, r.Artifacts...)
}

// User is the full user environment described by a config.
type User struct {
	cfg     *config.Config
	baseDir string
	systems []artifact.System
	tools   *target.ToolMap
}

// NewUser returns the user environment for cfg. Relative directory paths
// are resolved against baseDir.
func NewUser(cfg *config.Config, baseDir string) (*User, error) {
	systems, err := Systems(cfg)
	if err != nil {
		return nil, err
	}
	return &User{
		cfg:     cfg,
		baseDir: baseDir,
		systems: systems,
		tools:   target.NewToolMap(cfg.ToolDefinitions),
	}, nil
}

// Tools returns the tool map links are resolved with.
func (u *User) Tools() *target.ToolMap {
	return u.tools
}

// Artifacts returns fresh builders for every generated artifact, in build
// order.
func (u *User) Artifacts() []Artifact {
	name := func(suffix string) string { return u.cfg.Name + "-" + suffix }
	theme := u.cfg.Theme
	if theme == "" {
		theme = DefaultTheme
	}

	batConfig := bat.New(name("bat-config"), u.systems).WithTheme(theme)
	claudeConfig := claudeSettings(name("claude-code"), u.systems)
	statusLine := file.New(name("claude-statusline"), statusline, u.systems).WithExecutable(true)
	ghosttyConfig := u.ghostty(name("ghostty-config"))
	skin := k9sSkin(name("k9s-skin"), u.systems, k9s.TokyoNight().Overlay(u.cfg.Palette))
	ftplugin := new(file.Lines).WithLine("setlocal wrap").String()
	markdownVim := file.New(name("markdown-vim"), ftplugin, u.systems)
	opencodeConfig := opencodeSettings(name("opencode"), u.systems, theme)

	artifacts := []Artifact{
		{Tool: "bat", Name: batConfig.Name(), File: batConfig.Name(), render: batConfig.Render, build: batConfig.Build},
		{Tool: "claude-code", Name: claudeConfig.Name(), File: claudeConfig.Name(), render: claudeConfig.Render, build: claudeConfig.Build},
		{Tool: "claude-statusline", Name: statusLine.Name(), File: statusLine.Name(), render: constant(statusline), build: statusLine.Build},
		{Tool: "ghostty", Name: ghosttyConfig.Name(), File: ghosttyConfig.Name(), render: ghosttyConfig.Render, build: ghosttyConfig.Build},
		{Tool: "k9s-skin", Name: skin.Name(), File: skin.Name(), render: skin.Render, build: skin.Build},
		{Tool: "markdown-vim", Name: markdownVim.Name(), File: markdownVim.Name(), render: constant(ftplugin), build: markdownVim.Build},
		{Tool: "opencode", Name: opencodeConfig.Name(), File: opencodeConfig.Name(), render: opencodeConfig.Render, build: opencodeConfig.Build},
	}

	for _, d := range u.cfg.Directories {
		artifacts = append(artifacts, Artifact{Tool: d.Tool, Name: name(d.Name), build: u.directory(name(d.Name), d.Path)})
	}

	return artifacts
}

// Render returns the generated content linked to tool.
func (u *User) Render(tool string) (string, error) {
	for _, a := range u.Artifacts() {
		if a.Tool == tool {
			return a.Render()
		}
	}
	return "", fmt.Errorf("no generated artifact for tool '%s'", tool)
}

// Build builds every generated artifact, links each to its tool
// destination and composes the environment. Tools pinned in the config are
// added as artifacts without links.
func (u *User) Build(ctx context.Context, b artifact.Builder) (*Result, error) {
	e := env.New(u.cfg.Name, u.systems).
		WithArtifacts(pinned(u.cfg)...).
		WithEnvironments(DefaultEnvironments...).
		WithEnvironments(u.cfg.Environments...).
		WithSymlinks(symlinks(u.cfg)...)
	if u.cfg.Namespace != "" {
		e.WithNamespace(u.cfg.Namespace)
	}

	var entries []manifest.Entry
	for _, a := range u.Artifacts() {
		rt, err := u.tools.ResolveTarget(a.Tool, "", a.File)
		if err != nil {
			return nil, fmt.Errorf("linking %s: %w", a.Name, err)
		}
		id, err := a.Build(ctx, b)
		if err != nil {
			return nil, err
		}
		rt.Artifact = id
		e.WithArtifacts(id)
		rt.Link(e)
		entries = append(entries, manifest.Entry{Name: a.Name, ID: id})
		logging.Debug().Str("artifact", a.Name).Str("tool", a.Tool).Str("destination", rt.Destination).Msg("linked artifact")
	}

	d, err := e.Build(ctx, b)
	if err != nil {
		return nil, err
	}
	return &Result{Descriptor: d, Artifacts: entries}, nil
}

// Project composes a project environment: pinned tools and variables only,
// nothing is linked into the home directory.
func Project(ctx context.Context, cfg *config.Config, b artifact.Builder) (*Result, error) {
	systems, err := Systems(cfg)
	if err != nil {
		return nil, err
	}
	e := env.New(cfg.Name, systems).
		WithArtifacts(pinned(cfg)...).
		WithEnvironments(cfg.Environments...)
	if cfg.Namespace != "" {
		e.WithNamespace(cfg.Namespace)
	}
	d, err := e.Build(ctx, b)
	if err != nil {
		return nil, err
	}
	return &Result{Descriptor: d}, nil
}

// Systems returns the configured systems, or every system when none are
// configured.
func Systems(cfg *config.Config) ([]artifact.System, error) {
	if len(cfg.Systems) == 0 {
		return artifact.AllSystems(), nil
	}
	systems := make([]artifact.System, 0, len(cfg.Systems))
	for _, s := range cfg.Systems {
		sys, err := artifact.ParseSystem(s)
		if err != nil {
			return nil, err
		}
		systems = append(systems, sys)
	}
	return systems, nil
}

func (u *User) ghostty(name string) *ghostty.Config {
	t := u.cfg.Terminal
	c := ghostty.New(name, u.systems).
		WithBackgroundOpacity(DefaultBackgroundOpacity).
		WithFontFamily(DefaultFontFamily).
		WithFontSize(DefaultFontSize).
		WithMacosOptionAsAlt(true).
		WithTheme(DefaultTerminalTheme)
	if t.BackgroundOpacity != nil {
		c.WithBackgroundOpacity(*t.BackgroundOpacity)
	}
	if t.FontFamily != "" {
		c.WithFontFamily(t.FontFamily)
	}
	if t.FontSize != nil {
		c.WithFontSize(*t.FontSize)
	}
	if t.MacosOptionAsAlt != nil {
		c.WithMacosOptionAsAlt(*t.MacosOptionAsAlt)
	}
	if t.Theme != "" {
		c.WithTheme(t.Theme)
	}
	return c
}

// directory copies a local directory into an artifact. Relative paths may
// not leave the config directory.
func (u *User) directory(name, path string) func(context.Context, artifact.Builder) (artifact.ID, error) {
	return func(ctx context.Context, b artifact.Builder) (artifact.ID, error) {
		resolved, err := sandbox.Resolve(u.baseDir, path)
		if err != nil {
			return "", fmt.Errorf("directory %s: %w", name, err)
		}
		return file.NewSource(name, resolved, u.systems).Build(ctx, b)
	}
}

func k9sSkin(name string, systems []artifact.System, p k9s.Palette) *k9s.Skin {
	return k9s.New(name, systems, p).
		WithChartColors(p.Purple, p.Red).
		WithShowIcons(false)
}

func pinned(cfg *config.Config) []artifact.ID {
	ids := make([]artifact.ID, 0, len(cfg.Tools))
	for _, t := range cfg.Tools {
		ids = append(ids, artifact.ID(t.Artifact))
	}
	return ids
}

func symlinks(cfg *config.Config) []env.Symlink {
	links := make([]env.Symlink, 0, len(cfg.Symlinks))
	for _, s := range cfg.Symlinks {
		links = append(links, env.Symlink{Source: s.Source, Target: s.Target})
	}
	return links
}

func constant(s string) func() (string, error) {
	return func() (string, error) { return s, nil }
}
