package claude

import (
	"context"
	"fmt"

	"github.com/bianoble/userenv/internal/artifact"
	"github.com/bianoble/userenv/internal/field"
	"github.com/bianoble/userenv/internal/file"
)

const document = "claude settings"

// Config builds a Claude Code settings document.
type Config struct {
	name     string
	systems  []artifact.System
	spent    bool
	settings Settings
}

func New(name string, systems []artifact.System) *Config {
	return &Config{name: name, systems: append([]artifact.System(nil), systems...)}
}

func (c *Config) Name() string {
	return c.name
}

func (c *Config) WithModel(model string) *Config {
	c.settings.Model = field.Ptr(model)
	return c
}

func (c *Config) WithOutputStyle(style string) *Config {
	c.settings.OutputStyle = field.Ptr(style)
	return c
}

func (c *Config) WithAPIKeyHelper(helper string) *Config {
	c.settings.APIKeyHelper = field.Ptr(helper)
	return c
}

func (c *Config) WithCleanupPeriodDays(days int) *Config {
	c.settings.CleanupPeriodDays = field.Ptr(days)
	return c
}

// WithEnv sets one environment variable for every session.
func (c *Config) WithEnv(key, value string) *Config {
	field.Put(&c.settings.Env, key, value)
	return c
}

// WithEnvVars merges vars into the session environment.
func (c *Config) WithEnvVars(vars map[string]string) *Config {
	for k, v := range vars {
		field.Put(&c.settings.Env, k, v)
	}
	return c
}

func (c *Config) WithForceLoginMethod(method string) *Config {
	c.settings.ForceLoginMethod = field.Ptr(method)
	return c
}

func (c *Config) WithForceLoginOrgUUID(uuid string) *Config {
	c.settings.ForceLoginOrgUUID = field.Ptr(uuid)
	return c
}

// WithPermissions replaces the whole permissions section.
func (c *Config) WithPermissions(p Permissions) *Config {
	c.settings.Permissions = &p
	return c
}

func (c *Config) editPermissions(mutate func(*Permissions)) *Config {
	field.Edit(&c.settings.Permissions, mutate)
	return c
}

// WithPermissionAllow appends an allow rule after those already set.
func (c *Config) WithPermissionAllow(rule string) *Config {
	return c.editPermissions(func(p *Permissions) { p.Allow = append(p.Allow, rule) })
}

func (c *Config) WithPermissionAsk(rule string) *Config {
	return c.editPermissions(func(p *Permissions) { p.Ask = append(p.Ask, rule) })
}

func (c *Config) WithPermissionDeny(rule string) *Config {
	return c.editPermissions(func(p *Permissions) { p.Deny = append(p.Deny, rule) })
}

func (c *Config) WithPermissionAdditionalDirectories(dirs ...string) *Config {
	return c.editPermissions(func(p *Permissions) { p.AdditionalDirectories = append([]string(nil), dirs...) })
}

func (c *Config) WithPermissionDefaultMode(mode string) *Config {
	return c.editPermissions(func(p *Permissions) { p.DefaultMode = field.Ptr(mode) })
}

func (c *Config) WithPermissionDisableBypassMode(value string) *Config {
	return c.editPermissions(func(p *Permissions) { p.DisableBypassPermissionsMode = field.Ptr(value) })
}

// WithSandbox replaces the whole sandbox section.
func (c *Config) WithSandbox(s Sandbox) *Config {
	c.settings.Sandbox = &s
	return c
}

func (c *Config) editSandbox(mutate func(*Sandbox)) *Config {
	field.Edit(&c.settings.Sandbox, mutate)
	return c
}

func (c *Config) WithSandboxEnabled(enabled bool) *Config {
	return c.editSandbox(func(s *Sandbox) { s.Enabled = field.Ptr(enabled) })
}

func (c *Config) WithSandboxAutoAllowBash(autoAllow bool) *Config {
	return c.editSandbox(func(s *Sandbox) { s.AutoAllowBashIfSandboxed = field.Ptr(autoAllow) })
}

func (c *Config) WithSandboxExcludedCommands(commands ...string) *Config {
	return c.editSandbox(func(s *Sandbox) { s.ExcludedCommands = append([]string(nil), commands...) })
}

func (c *Config) WithSandboxNetworkAllowUnixSockets(allow bool) *Config {
	return c.editSandbox(func(s *Sandbox) {
		field.Edit(&s.Network, func(n *SandboxNetwork) { n.AllowUnixSockets = field.Ptr(allow) })
	})
}

func (c *Config) WithSandboxNetworkAllowLocalBinding(allow bool) *Config {
	return c.editSandbox(func(s *Sandbox) {
		field.Edit(&s.Network, func(n *SandboxNetwork) { n.AllowLocalBinding = field.Ptr(allow) })
	})
}

// WithAttribution replaces the whole attribution section.
func (c *Config) WithAttribution(a Attribution) *Config {
	c.settings.Attribution = &a
	return c
}

func (c *Config) WithAttributionCommit(commit string) *Config {
	field.Edit(&c.settings.Attribution, func(a *Attribution) { a.Commit = field.Ptr(commit) })
	return c
}

func (c *Config) WithAttributionPR(pr string) *Config {
	field.Edit(&c.settings.Attribution, func(a *Attribution) { a.PR = field.Ptr(pr) })
	return c
}

func (c *Config) WithIncludeCoAuthoredBy(enabled bool) *Config {
	c.settings.IncludeCoAuthoredBy = field.Ptr(enabled)
	return c
}

func (c *Config) WithEnableAllProjectMCPServers(enabled bool) *Config {
	c.settings.EnableAllProjectMCPServers = field.Ptr(enabled)
	return c
}

func (c *Config) WithEnabledMCPJSONServer(server string) *Config {
	c.settings.EnabledMCPJSONServers = append(c.settings.EnabledMCPJSONServers, server)
	return c
}

func (c *Config) WithDisabledMCPJSONServer(server string) *Config {
	c.settings.DisabledMCPJSONServers = append(c.settings.DisabledMCPJSONServers, server)
	return c
}

func (c *Config) WithAllowedMCPServer(rule MCPServerRule) *Config {
	c.settings.AllowedMCPServers = append(c.settings.AllowedMCPServers, rule)
	return c
}

func (c *Config) WithDeniedMCPServer(rule MCPServerRule) *Config {
	c.settings.DeniedMCPServers = append(c.settings.DeniedMCPServers, rule)
	return c
}

func (c *Config) WithCompanyAnnouncement(announcement string) *Config {
	c.settings.CompanyAnnouncements = append(c.settings.CompanyAnnouncements, announcement)
	return c
}

// WithHook adds a command hook for event. Hooks sharing a matcher are
// grouped under one entry, in the order they were added.
func (c *Config) WithHook(event, matcher, command string) *Config {
	field.EditEntry(&c.settings.Hooks, event, func(groups *[]HookMatcher) {
		hook := Hook{Type: "command", Command: command}
		for i := range *groups {
			if (*groups)[i].Matcher == matcher {
				(*groups)[i].Hooks = append((*groups)[i].Hooks, hook)
				return
			}
		}
		*groups = append(*groups, HookMatcher{Matcher: matcher, Hooks: []Hook{hook}})
	})
	return c
}

// WithStatusLine sets the status line command, keeping any padding.
func (c *Config) WithStatusLine(command string) *Config {
	field.Edit(&c.settings.StatusLine, func(s *StatusLine) {
		s.Type = "command"
		s.Command = command
	})
	return c
}

func (c *Config) WithStatusLinePadding(padding int) *Config {
	field.Edit(&c.settings.StatusLine, func(s *StatusLine) {
		s.Type = "command"
		s.Padding = field.Ptr(padding)
	})
	return c
}

func (c *Config) WithFileSuggestion(command string) *Config {
	c.settings.FileSuggestion = field.Ptr(command)
	return c
}

func (c *Config) WithEnabledPlugin(plugin string, enabled bool) *Config {
	field.Put(&c.settings.EnabledPlugins, plugin, enabled)
	return c
}

func (c *Config) WithAlwaysThinkingEnabled(enabled bool) *Config {
	c.settings.AlwaysThinkingEnabled = field.Ptr(enabled)
	return c
}

// Render returns the settings JSON. Unset fields are omitted.
func (c *Config) Render() (string, error) {
	return field.MarshalJSON(document, &c.settings)
}

// Build renders the settings into a file artifact. A Config can be built once.
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
