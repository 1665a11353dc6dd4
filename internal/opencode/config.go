// Package opencode renders opencode.json files.
//
// Union-shaped fields (permission rules, autoupdate, formatter, lsp, mcp
// servers, timeouts) are closed types built with their constructors, such as
// Simple, Patterns, AutoUpdateNotify or LSPDisabled. Setting a union field
// replaces it whole.
package opencode

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/bianoble/userenv/internal/artifact"
	"github.com/bianoble/userenv/internal/field"
	"github.com/bianoble/userenv/internal/file"
)

const document = "opencode settings"

// SchemaURL is the published JSON schema for opencode.json.
const SchemaURL = "https://opencode.ai/config.json"

// Config builds an opencode settings document.
type Config struct {
	name     string
	systems  []artifact.System
	spent    bool
	settings Settings
}

func New(name string, systems []artifact.System) *Config {
	return &Config{name: name, systems: append([]artifact.System(nil), systems...)}
}

// Name returns the artifact name.
func (c *Config) Name() string {
	return c.name
}

func (c *Config) WithSchema(schema string) *Config {
	c.settings.Schema = field.Ptr(schema)
	return c
}

func (c *Config) WithTheme(theme string) *Config {
	c.settings.Theme = field.Ptr(theme)
	return c
}

func (c *Config) WithLogLevel(level LogLevel) *Config {
	c.settings.LogLevel = field.Ptr(level)
	return c
}

func (c *Config) WithSnapshot(enabled bool) *Config {
	c.settings.Snapshot = field.Ptr(enabled)
	return c
}

func (c *Config) WithShare(mode ShareMode) *Config {
	c.settings.Share = field.Ptr(mode)
	return c
}

func (c *Config) WithAutoUpdate(update AutoUpdate) *Config {
	c.settings.AutoUpdate = &update
	return c
}

func (c *Config) WithDisabledProvider(provider string) *Config {
	c.settings.DisabledProviders = append(c.settings.DisabledProviders, provider)
	return c
}

func (c *Config) WithEnabledProvider(provider string) *Config {
	c.settings.EnabledProviders = append(c.settings.EnabledProviders, provider)
	return c
}

func (c *Config) WithModel(model string) *Config {
	c.settings.Model = field.Ptr(model)
	return c
}

func (c *Config) WithSmallModel(model string) *Config {
	c.settings.SmallModel = field.Ptr(model)
	return c
}

func (c *Config) WithDefaultAgent(agent string) *Config {
	c.settings.DefaultAgent = field.Ptr(agent)
	return c
}

func (c *Config) WithUsername(username string) *Config {
	c.settings.Username = field.Ptr(username)
	return c
}

func (c *Config) WithPlugin(plugin string) *Config {
	c.settings.Plugin = append(c.settings.Plugin, plugin)
	return c
}

func (c *Config) WithInstruction(instruction string) *Config {
	c.settings.Instructions = append(c.settings.Instructions, instruction)
	return c
}

// WithKeybind binds keys to action.
func (c *Config) WithKeybind(action Keybind, keys string) *Config {
	field.Put(&c.settings.Keybinds, action, keys)
	return c
}

func (c *Config) WithTUIScrollSpeed(speed float64) *Config {
	field.Edit(&c.settings.TUI, func(t *TUI) { t.ScrollSpeed = field.Ptr(speed) })
	return c
}

func (c *Config) WithTUIScrollAcceleration(enabled bool) *Config {
	field.Edit(&c.settings.TUI, func(t *TUI) { t.ScrollAcceleration = &ScrollAcceleration{Enabled: enabled} })
	return c
}

func (c *Config) WithTUIDiffStyle(style DiffStyle) *Config {
	field.Edit(&c.settings.TUI, func(t *TUI) { t.DiffStyle = field.Ptr(style) })
	return c
}

func (c *Config) WithServerPort(port int) *Config {
	field.Edit(&c.settings.Server, func(s *Server) { s.Port = field.Ptr(port) })
	return c
}

func (c *Config) WithServerHostname(hostname string) *Config {
	field.Edit(&c.settings.Server, func(s *Server) { s.Hostname = field.Ptr(hostname) })
	return c
}

func (c *Config) WithServerMDNS(enabled bool) *Config {
	field.Edit(&c.settings.Server, func(s *Server) { s.MDNS = field.Ptr(enabled) })
	return c
}

// WithServerCORS adds an allowed origin.
func (c *Config) WithServerCORS(origin string) *Config {
	field.Edit(&c.settings.Server, func(s *Server) { s.CORS = append(s.CORS, origin) })
	return c
}

func (c *Config) WithCommand(name string, cmd Command) *Config {
	field.Put(&c.settings.Command, name, cmd)
	return c
}

func (c *Config) WithWatcherIgnore(pattern string) *Config {
	field.Edit(&c.settings.Watcher, func(w *Watcher) { w.Ignore = append(w.Ignore, pattern) })
	return c
}

// WithAgent replaces the agent entry for name.
func (c *Config) WithAgent(name string, agent Agent) *Config {
	field.Put(&c.settings.Agent, name, agent)
	return c
}

func (c *Config) editAgent(name string, mutate func(*Agent)) *Config {
	field.EditEntry(&c.settings.Agent, name, mutate)
	return c
}

func (c *Config) WithAgentModel(name, model string) *Config {
	return c.editAgent(name, func(a *Agent) { a.Model = field.Ptr(model) })
}

func (c *Config) WithAgentTemperature(name string, temperature float64) *Config {
	return c.editAgent(name, func(a *Agent) { a.Temperature = field.Ptr(temperature) })
}

func (c *Config) WithAgentTopP(name string, topP float64) *Config {
	return c.editAgent(name, func(a *Agent) { a.TopP = field.Ptr(topP) })
}

func (c *Config) WithAgentPrompt(name, prompt string) *Config {
	return c.editAgent(name, func(a *Agent) { a.Prompt = field.Ptr(prompt) })
}

func (c *Config) WithAgentSteps(name string, steps int) *Config {
	return c.editAgent(name, func(a *Agent) { a.Steps = field.Ptr(steps) })
}

func (c *Config) WithAgentColor(name, color string) *Config {
	return c.editAgent(name, func(a *Agent) { a.Color = field.Ptr(color) })
}

func (c *Config) WithAgentMode(name string, mode AgentMode) *Config {
	return c.editAgent(name, func(a *Agent) { a.Mode = field.Ptr(mode) })
}

func (c *Config) WithAgentDescription(name, description string) *Config {
	return c.editAgent(name, func(a *Agent) { a.Description = field.Ptr(description) })
}

func (c *Config) WithAgentHidden(name string, hidden bool) *Config {
	return c.editAgent(name, func(a *Agent) { a.Hidden = field.Ptr(hidden) })
}

func (c *Config) WithAgentDisable(name string, disable bool) *Config {
	return c.editAgent(name, func(a *Agent) { a.Disable = field.Ptr(disable) })
}

func (c *Config) WithAgentPermission(name string, permission Permission) *Config {
	return c.editAgent(name, func(a *Agent) { a.Permission = &permission })
}

// WithAgentOption sets one provider-specific option for the agent.
func (c *Config) WithAgentOption(name, key string, value any) *Config {
	return c.editAgent(name, func(a *Agent) {
		a.Options = maps.Clone(a.Options)
		field.Put(&a.Options, key, value)
	})
}

// WithPermission replaces the whole permission field.
func (c *Config) WithPermission(permission Permission) *Config {
	c.settings.Permission = &permission
	return c
}

// editPermission edits one tool rule. A simple permission is replaced by
// per-tool rules holding only the edited tool.
func (c *Config) editPermission(mutate func(*PermissionDetailed)) *Config {
	var d PermissionDetailed
	if c.settings.Permission != nil && c.settings.Permission.detailed != nil {
		d = *c.settings.Permission.detailed
	}
	mutate(&d)
	p := DetailedPermission(d)
	c.settings.Permission = &p
	return c
}

func (c *Config) WithPermissionRead(rule PermissionRule) *Config {
	return c.editPermission(func(d *PermissionDetailed) { d.Read = &rule })
}

func (c *Config) WithPermissionEdit(rule PermissionRule) *Config {
	return c.editPermission(func(d *PermissionDetailed) { d.Edit = &rule })
}

func (c *Config) WithPermissionGlob(rule PermissionRule) *Config {
	return c.editPermission(func(d *PermissionDetailed) { d.Glob = &rule })
}

func (c *Config) WithPermissionGrep(rule PermissionRule) *Config {
	return c.editPermission(func(d *PermissionDetailed) { d.Grep = &rule })
}

func (c *Config) WithPermissionList(rule PermissionRule) *Config {
	return c.editPermission(func(d *PermissionDetailed) { d.List = &rule })
}

func (c *Config) WithPermissionBash(rule PermissionRule) *Config {
	return c.editPermission(func(d *PermissionDetailed) { d.Bash = &rule })
}

func (c *Config) WithPermissionTask(rule PermissionRule) *Config {
	return c.editPermission(func(d *PermissionDetailed) { d.Task = &rule })
}

func (c *Config) WithPermissionExternalDirectory(rule PermissionRule) *Config {
	return c.editPermission(func(d *PermissionDetailed) { d.ExternalDirectory = &rule })
}

func (c *Config) WithPermissionLSP(rule PermissionRule) *Config {
	return c.editPermission(func(d *PermissionDetailed) { d.LSP = &rule })
}

func (c *Config) WithPermissionTodoWrite(action PermissionAction) *Config {
	return c.editPermission(func(d *PermissionDetailed) { d.TodoWrite = &action })
}

func (c *Config) WithPermissionTodoRead(action PermissionAction) *Config {
	return c.editPermission(func(d *PermissionDetailed) { d.TodoRead = &action })
}

func (c *Config) WithPermissionQuestion(action PermissionAction) *Config {
	return c.editPermission(func(d *PermissionDetailed) { d.Question = &action })
}

func (c *Config) WithPermissionWebFetch(action PermissionAction) *Config {
	return c.editPermission(func(d *PermissionDetailed) { d.WebFetch = &action })
}

func (c *Config) WithPermissionWebSearch(action PermissionAction) *Config {
	return c.editPermission(func(d *PermissionDetailed) { d.WebSearch = &action })
}

func (c *Config) WithPermissionCodeSearch(action PermissionAction) *Config {
	return c.editPermission(func(d *PermissionDetailed) { d.CodeSearch = &action })
}

func (c *Config) WithPermissionDoomLoop(action PermissionAction) *Config {
	return c.editPermission(func(d *PermissionDetailed) { d.DoomLoop = &action })
}

// WithBashPermissions sets the bash rule to one action per command pattern.
func (c *Config) WithBashPermissions(patterns map[string]PermissionAction) *Config {
	return c.WithPermissionBash(Patterns(patterns))
}

// WithProvider replaces the provider entry for name.
func (c *Config) WithProvider(name string, provider Provider) *Config {
	field.Put(&c.settings.Provider, name, provider)
	return c
}

func (c *Config) editProvider(name string, mutate func(*Provider)) *Config {
	field.EditEntry(&c.settings.Provider, name, mutate)
	return c
}

func (c *Config) WithProviderAPI(name, api string) *Config {
	return c.editProvider(name, func(p *Provider) { p.API = field.Ptr(api) })
}

func (c *Config) WithProviderNPM(name, pkg string) *Config {
	return c.editProvider(name, func(p *Provider) { p.NPM = field.Ptr(pkg) })
}

// WithProviderModel replaces the model entry of a provider.
func (c *Config) WithProviderModel(name, model string, cfg Model) *Config {
	return c.editProvider(name, func(p *Provider) {
		p.Models = maps.Clone(p.Models)
		field.Put(&p.Models, model, cfg)
	})
}

func (c *Config) WithProviderWhitelist(name, model string) *Config {
	return c.editProvider(name, func(p *Provider) {
		p.Whitelist = append(slices.Clip(p.Whitelist), model)
	})
}

func (c *Config) WithProviderBlacklist(name, model string) *Config {
	return c.editProvider(name, func(p *Provider) {
		p.Blacklist = append(slices.Clip(p.Blacklist), model)
	})
}

func (c *Config) editProviderOptions(name string, mutate func(*ProviderOptions)) *Config {
	return c.editProvider(name, func(p *Provider) {
		var o ProviderOptions
		if p.Options != nil {
			o = *p.Options
		}
		mutate(&o)
		p.Options = &o
	})
}

func (c *Config) WithProviderAPIKey(name, key string) *Config {
	return c.editProviderOptions(name, func(o *ProviderOptions) { o.APIKey = field.Ptr(key) })
}

func (c *Config) WithProviderBaseURL(name, url string) *Config {
	return c.editProviderOptions(name, func(o *ProviderOptions) { o.BaseURL = field.Ptr(url) })
}

func (c *Config) WithProviderTimeout(name string, timeout Timeout) *Config {
	return c.editProviderOptions(name, func(o *ProviderOptions) { o.Timeout = &timeout })
}

// WithMCP replaces the MCP server entry for name.
func (c *Config) WithMCP(name string, server MCPServer) *Config {
	field.Put(&c.settings.MCP, name, server)
	return c
}

// WithMCPLocal adds a local MCP server with only a command.
func (c *Config) WithMCPLocal(name string, command ...string) *Config {
	return c.WithMCP(name, LocalMCP(MCPLocal{Command: append([]string(nil), command...)}))
}

// WithMCPRemote adds a remote MCP server with only a URL.
func (c *Config) WithMCPRemote(name, url string) *Config {
	return c.WithMCP(name, RemoteMCP(MCPRemote{URL: url}))
}

// WithFormatterDisabled turns off all formatters, dropping any configured.
func (c *Config) WithFormatterDisabled() *Config {
	f := FormatterDisabled()
	c.settings.Formatter = &f
	return c
}

// WithFormatter replaces the formatter entry for name. If formatting was
// disabled it is enabled with only this formatter.
func (c *Config) WithFormatter(name string, formatter Formatter) *Config {
	var current map[string]Formatter
	if c.settings.Formatter != nil {
		current = c.settings.Formatter.formatters
	}
	next := Formatters(current)
	next.formatters[name] = formatter
	c.settings.Formatter = &next
	return c
}

// WithLSPDisabled turns off all language servers, dropping any configured.
func (c *Config) WithLSPDisabled() *Config {
	l := LSPDisabled()
	c.settings.LSP = &l
	return c
}

// WithLSP replaces the language server entry for name. If LSP was disabled
// it is enabled with only this server.
func (c *Config) WithLSP(name string, server LSPServer) *Config {
	var current map[string]LSPServer
	if c.settings.LSP != nil {
		current = c.settings.LSP.servers
	}
	next := LSPServers(current)
	next.servers[name] = server
	c.settings.LSP = &next
	return c
}

func (c *Config) WithEnterpriseURL(url string) *Config {
	field.Edit(&c.settings.Enterprise, func(e *Enterprise) { e.URL = field.Ptr(url) })
	return c
}

func (c *Config) WithCompactionAuto(enabled bool) *Config {
	field.Edit(&c.settings.Compaction, func(cp *Compaction) { cp.Auto = field.Ptr(enabled) })
	return c
}

func (c *Config) WithCompactionPrune(enabled bool) *Config {
	field.Edit(&c.settings.Compaction, func(cp *Compaction) { cp.Prune = field.Ptr(enabled) })
	return c
}

func (c *Config) editExperimental(mutate func(*Experimental)) *Config {
	field.Edit(&c.settings.Experimental, mutate)
	return c
}

func (c *Config) WithExperimentalChatMaxRetries(retries int) *Config {
	return c.editExperimental(func(e *Experimental) { e.ChatMaxRetries = field.Ptr(retries) })
}

func (c *Config) WithExperimentalDisablePasteSummary(disabled bool) *Config {
	return c.editExperimental(func(e *Experimental) { e.DisablePasteSummary = field.Ptr(disabled) })
}

func (c *Config) WithExperimentalBatchTool(enabled bool) *Config {
	return c.editExperimental(func(e *Experimental) { e.BatchTool = field.Ptr(enabled) })
}

func (c *Config) WithExperimentalOpenTelemetry(enabled bool) *Config {
	return c.editExperimental(func(e *Experimental) { e.OpenTelemetry = field.Ptr(enabled) })
}

func (c *Config) WithExperimentalPrimaryTool(tool string) *Config {
	return c.editExperimental(func(e *Experimental) { e.PrimaryTools = append(e.PrimaryTools, tool) })
}

func (c *Config) WithExperimentalContinueLoopOnDeny(enabled bool) *Config {
	return c.editExperimental(func(e *Experimental) { e.ContinueLoopOnDeny = field.Ptr(enabled) })
}

func (c *Config) WithExperimentalMCPTimeout(ms int) *Config {
	return c.editExperimental(func(e *Experimental) { e.MCPTimeout = field.Ptr(ms) })
}

// WithExperimentalHookFileEdited replaces the commands run when a file
// matching pattern is edited.
func (c *Config) WithExperimentalHookFileEdited(pattern string, commands ...HookCommand) *Config {
	return c.editExperimental(func(e *Experimental) {
		field.Edit(&e.Hook, func(h *Hooks) {
			field.Put(&h.FileEdited, pattern, append([]HookCommand(nil), commands...))
		})
	})
}

func (c *Config) WithExperimentalHookSessionCompleted(command HookCommand) *Config {
	return c.editExperimental(func(e *Experimental) {
		field.Edit(&e.Hook, func(h *Hooks) { h.SessionCompleted = append(h.SessionCompleted, command) })
	})
}

// Render returns the settings JSON. Map sections are written with sorted
// keys.
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
