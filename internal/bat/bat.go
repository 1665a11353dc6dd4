// Package bat renders the bat config file.
package bat

import (
	"context"
	"fmt"

	"github.com/bianoble/userenv/internal/artifact"
	"github.com/bianoble/userenv/internal/field"
	"github.com/bianoble/userenv/internal/file"
)

// Config builds a bat config. An empty config is valid.
type Config struct {
	name    string
	systems []artifact.System
	spent   bool
	theme   *string
}

func New(name string, systems []artifact.System) *Config {
	return &Config{name: name, systems: append([]artifact.System(nil), systems...)}
}

// Name returns the artifact name, which is also the file name in the output.
func (c *Config) Name() string {
	return c.name
}

func (c *Config) WithTheme(theme string) *Config {
	c.theme = field.Ptr(theme)
	return c
}

// Render returns the config content: one --theme flag if a theme is set.
func (c *Config) Render() (string, error) {
	if c.theme == nil {
		return "", nil
	}
	if err := field.SingleLine("bat config", "theme", *c.theme); err != nil {
		return "", err
	}
	return "--theme=" + *c.theme, nil
}

// Build renders the config into a file artifact. A Config can be built once.
func (c *Config) Build(ctx context.Context, b artifact.Builder) (artifact.ID, error) {
	if c.spent {
		return "", fmt.Errorf("building %s: %w", c.name, artifact.ErrSpent)
	}
	c.spent = true

	content, err := c.Render()
	if err != nil {
		return "", err
	}
	return file.Create(ctx, b, c.name, content, c.systems)
}
