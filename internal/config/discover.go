package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const configFileName = "userenv.yaml"
const configDirName = "userenv"

// projectFileNames are tried in order when looking for a project config.
var projectFileNames = []string{"userenv.yaml", "userenv.yml", "userenv.toml", "userenv.jsonc", "userenv.json"}

// ConfigLevel represents the precedence level of a configuration file.
type ConfigLevel string

const (
	LevelSystem  ConfigLevel = "system"
	LevelUser    ConfigLevel = "user"
	LevelProject ConfigLevel = "project"
)

// ConfigLayerInfo describes a discovered config file and its load status.
type ConfigLayerInfo struct {
	Err    error // non-nil if the file exists but failed to load
	Path   string
	Level  ConfigLevel
	Loaded bool
}

// DiscoverOptions controls how config paths are discovered.
type DiscoverOptions struct {
	// ProjectPath is the project-level config path (required).
	ProjectPath string

	// SystemConfigPath overrides the default system config path.
	// Empty means use the OS default. Set to a nonexistent path to skip.
	SystemConfigPath string

	// UserConfigPath overrides the default user config path.
	// Empty means use the OS default. Set to a nonexistent path to skip.
	UserConfigPath string

	// NoInherit skips the system and user layers.
	NoInherit bool
}

// DiscoverPaths returns the ordered list of config file paths to check,
// from lowest precedence (system) to highest (project).
// Paths are deduplicated by resolved absolute path.
func DiscoverPaths(opts DiscoverOptions) []ConfigLayerInfo {
	var layers []ConfigLayerInfo
	seen := make(map[string]bool)

	addLayer := func(level ConfigLevel, path string) {
		if path == "" {
			return
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if seen[abs] {
			return
		}
		seen[abs] = true
		layers = append(layers, ConfigLayerInfo{
			Path:  path,
			Level: level,
		})
	}

	if !opts.NoInherit {
		sysPath := opts.SystemConfigPath
		if sysPath == "" {
			sysPath = defaultSystemConfigPath()
		}
		addLayer(LevelSystem, sysPath)

		userPath := opts.UserConfigPath
		if userPath == "" {
			userPath = defaultUserConfigPath()
		}
		addLayer(LevelUser, userPath)
	}

	// Project-level config (always last, highest precedence).
	addLayer(LevelProject, opts.ProjectPath)

	return layers
}

// LoadLayers reads every discovered layer that exists, merges them in
// precedence order and validates the result. Missing system and user files
// are skipped; a missing project file is an error. The returned layers
// report what was loaded.
func LoadLayers(opts DiscoverOptions) (*Config, []ConfigLayerInfo, error) {
	layers := DiscoverPaths(opts)

	var configs []*Config
	for i := range layers {
		layer := &layers[i]
		cfg, err := Read(layer.Path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && layer.Level != LevelProject {
				continue
			}
			layer.Err = err
			return nil, layers, err
		}
		layer.Loaded = true
		configs = append(configs, cfg)
	}

	if len(configs) == 0 {
		return nil, layers, fmt.Errorf("no config found")
	}

	merged, err := MergeAll(configs)
	if err != nil {
		return nil, layers, err
	}
	if errs := Validate(merged); len(errs) > 0 {
		return nil, layers, &ValidationError{Errors: errs}
	}
	return merged, layers, nil
}

// FindProjectConfig returns the first project config file present in dir.
func FindProjectConfig(dir string) (string, error) {
	for _, name := range projectFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no config in %s: expected one of %s: %w", dir, strings.Join(projectFileNames, ", "), fs.ErrNotExist)
}

// defaultSystemConfigPath returns the platform-standard system config path.
func defaultSystemConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		pd := os.Getenv("ProgramData")
		if pd == "" {
			pd = `C:\ProgramData`
		}
		return filepath.Join(pd, configDirName, configFileName)
	default: // linux, darwin, etc.
		return filepath.Join("/etc", configDirName, configFileName)
	}
}

// defaultUserConfigPath returns the platform-standard user config path.
func defaultUserConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, configDirName, configFileName)
}

// EnvNoInherit returns true if USERENV_NO_INHERIT is set to "1" or "true".
func EnvNoInherit() bool {
	return envBoolTrue("USERENV_NO_INHERIT")
}

// envBoolTrue returns true if the env var is set to "1" or "true" (case-insensitive).
func envBoolTrue(key string) bool {
	v := os.Getenv(key)
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "1" || v == "true"
}
