package config

import "github.com/bianoble/userenv/internal/k9s"

// Config represents a userenv.yaml configuration file. The same document may
// be written as JSON, JSONC or TOML.
type Config struct {
	Version         int              `yaml:"version" toml:"version"`
	Name            string           `yaml:"name,omitempty" toml:"name,omitempty"`
	Namespace       string           `yaml:"namespace,omitempty" toml:"namespace,omitempty"`
	Theme           string           `yaml:"theme,omitempty" toml:"theme,omitempty"`
	Systems         []string         `yaml:"systems,omitempty" toml:"systems,omitempty"`
	Palette         k9s.Palette      `yaml:"palette,omitempty" toml:"palette,omitempty"`
	Terminal        Terminal         `yaml:"terminal,omitempty" toml:"terminal,omitempty"`
	Tools           []Tool           `yaml:"tools,omitempty" toml:"tools,omitempty"`
	Directories     []Directory      `yaml:"directories,omitempty" toml:"directories,omitempty"`
	Environments    []string         `yaml:"environments,omitempty" toml:"environments,omitempty"`
	Symlinks        []Symlink        `yaml:"symlinks,omitempty" toml:"symlinks,omitempty"`
	ToolDefinitions []ToolDefinition `yaml:"tool_definitions,omitempty" toml:"tool_definitions,omitempty"`
}

// Terminal holds the ghostty settings. Unset fields fall back to the profile
// defaults; an explicit zero is kept.
type Terminal struct {
	MacosOptionAsAlt  *bool    `yaml:"macos_option_as_alt,omitempty" toml:"macos_option_as_alt,omitempty"`
	FontSize          *int     `yaml:"font_size,omitempty" toml:"font_size,omitempty"`
	BackgroundOpacity *float32 `yaml:"background_opacity,omitempty" toml:"background_opacity,omitempty"`
	FontFamily        string   `yaml:"font_family,omitempty" toml:"font_family,omitempty"`
	Theme             string   `yaml:"theme,omitempty" toml:"theme,omitempty"`
}

// Tool is a prebuilt artifact added to the environment, pinned by id.
type Tool struct {
	Name     string `yaml:"name" toml:"name"`
	Artifact string `yaml:"artifact" toml:"artifact"`
}

// Directory is a local directory copied into an artifact and linked to the
// destination of Tool.
type Directory struct {
	Name string `yaml:"name" toml:"name"`
	Path string `yaml:"path" toml:"path"`
	Tool string `yaml:"tool" toml:"tool"`
}

// Symlink links Target to an already existing Source path.
type Symlink struct {
	Source string `yaml:"source" toml:"source"`
	Target string `yaml:"target" toml:"target"`
}

// ToolDefinition defines a custom tool link destination or overrides a
// built-in.
type ToolDefinition struct {
	Name        string `yaml:"name" toml:"name"`
	Destination string `yaml:"destination" toml:"destination"`
}
