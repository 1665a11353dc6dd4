package target

import (
	"fmt"
	"slices"

	"github.com/bianoble/userenv/internal/artifact"
	"github.com/bianoble/userenv/internal/config"
	"github.com/bianoble/userenv/internal/env"
)

// builtinTools defines where each generated tool artifact is linked in the
// user's home. Destinations are expanded by the shell that activates the
// environment.
var builtinTools = map[string]string{
	"bat":               "$HOME/.config/bat/config",
	"bat-themes":        "$HOME/.config/bat/themes",
	"claude-agents":     "$HOME/.claude/agents",
	"claude-code":       "$HOME/.claude/settings.json",
	"claude-skills":     "$HOME/.claude/skills",
	"claude-statusline": "$HOME/.claude/statusline.sh",
	"ghostty":           `$HOME/Library/Application\ Support/com.mitchellh.ghostty/config`,
	"k9s-skin":          `$HOME/Library/Application\ Support/k9s/skins/tokyo_night.yaml`,
	"markdown-vim":      "$HOME/.config/nvim/after/ftplugin/markdown.vim",
	"opencode":          "$HOME/.config/opencode/opencode.json",
}

// ToolMap resolves tool names to destination paths.
type ToolMap struct {
	definitions map[string]string
}

// NewToolMap creates a ToolMap with built-in definitions and optional custom overrides.
func NewToolMap(customDefs []config.ToolDefinition) *ToolMap {
	defs := make(map[string]string, len(builtinTools)+len(customDefs))
	for name, dest := range builtinTools {
		defs[name] = dest
	}
	for _, td := range customDefs {
		defs[td.Name] = td.Destination
	}
	return &ToolMap{definitions: defs}
}

// Resolve returns the destination path for a tool name.
func (tm *ToolMap) Resolve(toolName string) (string, error) {
	dest, ok := tm.definitions[toolName]
	if !ok {
		return "", fmt.Errorf("unknown tool '%s'; define it in tool_definitions: [{name: %s, destination: $HOME/.config/%s}]", toolName, toolName, toolName)
	}
	return dest, nil
}

// ResolvedTarget is a tool artifact mapped to its link destination.
type ResolvedTarget struct {
	Tool        string
	Artifact    artifact.ID
	File        string // empty links the whole artifact output
	Destination string
}

// ResolveTarget maps the output of a tool artifact to the tool's
// destination.
func (tm *ToolMap) ResolveTarget(tool string, id artifact.ID, file string) (ResolvedTarget, error) {
	dest, err := tm.Resolve(tool)
	if err != nil {
		return ResolvedTarget{}, err
	}
	return ResolvedTarget{Tool: tool, Artifact: id, File: file, Destination: dest}, nil
}

// Link adds the target as an artifact link to an environment.
func (rt ResolvedTarget) Link(b *env.Builder) *env.Builder {
	return b.WithArtifactLink(rt.Artifact, rt.File, rt.Destination)
}

// KnownTools returns all known tool names (built-in + custom), sorted.
func (tm *ToolMap) KnownTools() []string {
	names := make([]string, 0, len(tm.definitions))
	for name := range tm.definitions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsCustom returns whether a tool name is a custom definition (not built-in).
func (tm *ToolMap) IsCustom(toolName string) bool {
	_, isBuiltin := builtinTools[toolName]
	_, isDefined := tm.definitions[toolName]
	return isDefined && !isBuiltin
}

// IsOverridden returns whether a built-in destination was replaced by a
// custom definition.
func (tm *ToolMap) IsOverridden(toolName string) bool {
	builtin, isBuiltin := builtinTools[toolName]
	return isBuiltin && tm.definitions[toolName] != builtin
}
