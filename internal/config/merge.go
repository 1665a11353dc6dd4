package config

import "fmt"

// Merge combines two configs where overlay takes precedence over base.
// This implements the hierarchical merge semantics:
//   - version: must agree if both declare it (non-zero); fatal error on mismatch
//   - name, namespace, theme, systems: overlay wins when set
//   - palette, terminal: merged per key, overlay keys win
//   - tools, directories, tool_definitions: merge by name, same name in overlay replaces base entry
//   - environments, symlinks: concatenate (base first, then overlay)
func Merge(base, overlay *Config) (*Config, error) {
	if base == nil {
		return overlay, nil
	}
	if overlay == nil {
		return base, nil
	}

	result := &Config{}

	if err := mergeVersion(base.Version, overlay.Version, &result.Version); err != nil {
		return nil, err
	}

	result.Name = mergeScalar(base.Name, overlay.Name)
	result.Namespace = mergeScalar(base.Namespace, overlay.Namespace)
	result.Theme = mergeScalar(base.Theme, overlay.Theme)

	result.Systems = base.Systems
	if len(overlay.Systems) > 0 {
		result.Systems = overlay.Systems
	}

	result.Palette = base.Palette.Overlay(overlay.Palette)
	result.Terminal = mergeTerminal(base.Terminal, overlay.Terminal)

	result.Tools = mergeNamed(base.Tools, overlay.Tools, func(t Tool) string { return t.Name })
	result.Directories = mergeNamed(base.Directories, overlay.Directories, func(d Directory) string { return d.Name })
	result.ToolDefinitions = mergeNamed(base.ToolDefinitions, overlay.ToolDefinitions, func(td ToolDefinition) string { return td.Name })

	// Environments: concatenate. A later assignment of the same variable is
	// kept, the engine applies them in order.
	result.Environments = append(result.Environments, base.Environments...)
	result.Environments = append(result.Environments, overlay.Environments...)

	result.Symlinks = append(result.Symlinks, base.Symlinks...)
	result.Symlinks = append(result.Symlinks, overlay.Symlinks...)

	return result, nil
}

// MergeAll merges multiple configs in order (lowest precedence first).
// Returns an error if any version mismatch is found.
func MergeAll(configs []*Config) (*Config, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("no configs to merge")
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		var err error
		result, err = Merge(result, configs[i])
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func mergeVersion(base, overlay int, out *int) error {
	switch {
	case base == 0 && overlay == 0:
		*out = 0 // neither declares; validation will catch this
	case base == 0:
		*out = overlay
	case overlay == 0:
		*out = base
	case base == overlay:
		*out = base
	default:
		return fmt.Errorf("config version mismatch: one layer declares version %d, another declares version %d; all config layers must agree on version", base, overlay)
	}
	return nil
}

func mergeScalar[T comparable](base, overlay T) T {
	var zero T
	if overlay != zero {
		return overlay
	}
	return base
}

// mergePtr returns overlay when it is set, even to a zero value.
func mergePtr[T any](base, overlay *T) *T {
	if overlay != nil {
		return overlay
	}
	return base
}

func mergeTerminal(base, overlay Terminal) Terminal {
	return Terminal{
		FontFamily:        mergeScalar(base.FontFamily, overlay.FontFamily),
		Theme:             mergeScalar(base.Theme, overlay.Theme),
		FontSize:          mergePtr(base.FontSize, overlay.FontSize),
		BackgroundOpacity: mergePtr(base.BackgroundOpacity, overlay.BackgroundOpacity),
		MacosOptionAsAlt:  mergePtr(base.MacosOptionAsAlt, overlay.MacosOptionAsAlt),
	}
}

func mergeNamed[T any](base, overlay []T, name func(T) string) []T {
	if len(base) == 0 {
		return overlay
	}
	if len(overlay) == 0 {
		return base
	}

	overlayNames := make(map[string]bool, len(overlay))
	for _, item := range overlay {
		overlayNames[name(item)] = true
	}

	// Start with base entries that aren't overridden.
	var result []T
	for _, item := range base {
		if !overlayNames[name(item)] {
			result = append(result, item)
		}
	}

	// Append all overlay entries (includes replacements and new ones).
	result = append(result, overlay...)

	return result
}
