// Package ghostty renders the ghostty terminal configuration file.
package ghostty

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bianoble/userenv/internal/artifact"
	"github.com/bianoble/userenv/internal/field"
	"github.com/bianoble/userenv/internal/file"
)

const document = "ghostty config"

// Config builds a ghostty config. All five keys are always written; unset
// keys carry ghostty-compatible defaults.
type Config struct {
	name    string
	systems []artifact.System
	spent   bool

	backgroundOpacity float32
	fontFamily        string
	fontSize          int
	macosOptionAsAlt  bool
	theme             string
}

// New returns a Config with default values.
func New(name string, systems []artifact.System) *Config {
	return &Config{
		name:              name,
		systems:           append([]artifact.System(nil), systems...),
		backgroundOpacity: 1.0,
		fontSize:          13,
		theme:             "tokyonight",
	}
}

// Name returns the artifact name, which is also the file name in the output.
func (c *Config) Name() string {
	return c.name
}

func (c *Config) WithBackgroundOpacity(opacity float32) *Config {
	c.backgroundOpacity = opacity
	return c
}

func (c *Config) WithFontFamily(family string) *Config {
	c.fontFamily = family
	return c
}

func (c *Config) WithFontSize(size int) *Config {
	c.fontSize = size
	return c
}

func (c *Config) WithMacosOptionAsAlt(asAlt bool) *Config {
	c.macosOptionAsAlt = asAlt
	return c
}

func (c *Config) WithTheme(theme string) *Config {
	c.theme = theme
	return c
}

// Render returns the config file content.
func (c *Config) Render() (string, error) {
	lines := []struct{ key, value string }{
		{"background-opacity", strconv.FormatFloat(float64(c.backgroundOpacity), 'f', -1, 32)},
		{"font-family", c.fontFamily},
		{"font-size", strconv.Itoa(c.fontSize)},
		{"macos-option-as-alt", strconv.FormatBool(c.macosOptionAsAlt)},
		{"theme", c.theme},
	}

	var b strings.Builder
	for _, l := range lines {
		if err := field.SingleLine(document, l.key, l.value); err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%s = %s\n", l.key, l.value)
	}
	return b.String(), nil
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
