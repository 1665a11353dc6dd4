package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bianoble/userenv/internal/artifact"
)

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}

	if errs := Validate(cfg); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return cfg, nil
}

// Read reads a configuration file without validating it. The format is
// chosen by extension: .toml, .json and .jsonc are recognised, anything else
// is parsed as YAML.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data written in the format named by ext.
func Parse(data []byte, ext string) (*Config, error) {
	var cfg Config
	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
			return nil, err
		}
	case ".json", ".jsonc":
		// JSON is YAML once comments and trailing commas are gone.
		if err := yaml.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks a Config for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(cfg *Config) []string {
	var errs []string

	if cfg.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported version %d; only version 1 is supported", cfg.Version))
	}

	if cfg.Name == "" {
		errs = append(errs, "'name' is required")
	}

	for _, s := range cfg.Systems {
		if _, err := artifact.ParseSystem(s); err != nil {
			errs = append(errs, fmt.Sprintf("systems: %v", err))
		}
	}

	if o := cfg.Terminal.BackgroundOpacity; o != nil && (*o < 0 || *o > 1) {
		errs = append(errs, fmt.Sprintf("terminal: background_opacity %g must be between 0 and 1", *o))
	}
	if s := cfg.Terminal.FontSize; s != nil && *s < 0 {
		errs = append(errs, fmt.Sprintf("terminal: font_size %d must not be negative", *s))
	}

	toolNames := make(map[string]bool)
	for i, t := range cfg.Tools {
		prefix := itemPrefix("tool", i, t.Name)
		if t.Name == "" {
			errs = append(errs, fmt.Sprintf("%s: 'name' is required", prefix))
		} else if toolNames[t.Name] {
			errs = append(errs, fmt.Sprintf("%s: duplicate tool name '%s'", prefix, t.Name))
		} else {
			toolNames[t.Name] = true
		}
		if t.Artifact == "" {
			errs = append(errs, fmt.Sprintf("%s: 'artifact' is required; pin the tool to a built artifact id", prefix))
		} else if !artifact.ID(t.Artifact).Valid() {
			errs = append(errs, fmt.Sprintf("%s: 'artifact' '%s' is not a valid artifact id", prefix, t.Artifact))
		}
	}

	dirNames := make(map[string]bool)
	for i, d := range cfg.Directories {
		prefix := itemPrefix("directory", i, d.Name)
		if d.Name == "" {
			errs = append(errs, fmt.Sprintf("%s: 'name' is required", prefix))
		} else if dirNames[d.Name] {
			errs = append(errs, fmt.Sprintf("%s: duplicate directory name '%s'", prefix, d.Name))
		} else {
			dirNames[d.Name] = true
		}
		if d.Path == "" {
			errs = append(errs, fmt.Sprintf("%s: 'path' is required", prefix))
		}
		if d.Tool == "" {
			errs = append(errs, fmt.Sprintf("%s: 'tool' is required", prefix))
		}
	}

	for i, e := range cfg.Environments {
		key, _, ok := strings.Cut(e, "=")
		if !ok || key == "" {
			errs = append(errs, fmt.Sprintf("environment[%d]: '%s' must have the form KEY=VALUE", i, e))
		}
	}

	for i, s := range cfg.Symlinks {
		prefix := fmt.Sprintf("symlink[%d]", i)
		if s.Source == "" {
			errs = append(errs, fmt.Sprintf("%s: 'source' is required", prefix))
		}
		if s.Target == "" {
			errs = append(errs, fmt.Sprintf("%s: 'target' is required", prefix))
		}
	}

	defNames := make(map[string]bool)
	for i, td := range cfg.ToolDefinitions {
		prefix := fmt.Sprintf("tool_definition[%d]", i)
		if td.Name == "" {
			errs = append(errs, fmt.Sprintf("%s: 'name' is required", prefix))
		} else if defNames[td.Name] {
			errs = append(errs, fmt.Sprintf("%s: duplicate tool definition '%s'", prefix, td.Name))
		} else {
			defNames[td.Name] = true
		}
		if td.Destination == "" {
			errs = append(errs, fmt.Sprintf("%s: 'destination' is required", prefix))
		}
	}

	return errs
}

func itemPrefix(kind string, i int, name string) string {
	if name != "" {
		return fmt.Sprintf("%s '%s'", kind, name)
	}
	return fmt.Sprintf("%s[%d]", kind, i)
}
