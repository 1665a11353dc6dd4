// Package claude renders Claude Code settings.json files.
package claude

// Permissions controls tool approval. Rule lists are matched in order.
type Permissions struct {
	Allow                        []string `json:"allow,omitempty"`
	Ask                          []string `json:"ask,omitempty"`
	Deny                         []string `json:"deny,omitempty"`
	AdditionalDirectories        []string `json:"additionalDirectories,omitempty"`
	DefaultMode                  *string  `json:"defaultMode,omitempty"`
	DisableBypassPermissionsMode *string  `json:"disableBypassPermissionsMode,omitempty"`
}

type SandboxNetwork struct {
	AllowUnixSockets  *bool `json:"allowUnixSockets,omitempty"`
	AllowLocalBinding *bool `json:"allowLocalBinding,omitempty"`
}

type Sandbox struct {
	Enabled                  *bool           `json:"enabled,omitempty"`
	AutoAllowBashIfSandboxed *bool           `json:"autoAllowBashIfSandboxed,omitempty"`
	ExcludedCommands         []string        `json:"excludedCommands,omitempty"`
	Network                  *SandboxNetwork `json:"network,omitempty"`
}

// Attribution overrides the trailer added to commits and pull requests.
// An empty string removes it.
type Attribution struct {
	Commit *string `json:"commit,omitempty"`
	PR     *string `json:"pr,omitempty"`
}

// MCPServerRule matches an MCP server by name, command or URL.
type MCPServerRule struct {
	ServerName    *string `json:"serverName,omitempty"`
	ServerCommand *string `json:"serverCommand,omitempty"`
	ServerURL     *string `json:"serverUrl,omitempty"`
}

// StatusLine runs a command to render the status line.
type StatusLine struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Padding *int   `json:"padding,omitempty"`
}

// Hook is one command run for a hook event.
type Hook struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Timeout *int   `json:"timeout,omitempty"`
}

// HookMatcher groups the hooks run for tool names matching Matcher.
type HookMatcher struct {
	Matcher string `json:"matcher,omitempty"`
	Hooks   []Hook `json:"hooks"`
}

// Settings is the settings.json document.
type Settings struct {
	Model             *string           `json:"model,omitempty"`
	OutputStyle       *string           `json:"outputStyle,omitempty"`
	APIKeyHelper      *string           `json:"apiKeyHelper,omitempty"`
	CleanupPeriodDays *int              `json:"cleanupPeriodDays,omitempty"`
	Env               map[string]string `json:"env,omitempty"`

	ForceLoginMethod  *string `json:"forceLoginMethod,omitempty"`
	ForceLoginOrgUUID *string `json:"forceLoginOrgUUID,omitempty"`

	Permissions *Permissions `json:"permissions,omitempty"`
	Sandbox     *Sandbox     `json:"sandbox,omitempty"`

	Attribution         *Attribution `json:"attribution,omitempty"`
	IncludeCoAuthoredBy *bool        `json:"includeCoAuthoredBy,omitempty"`

	EnableAllProjectMCPServers *bool           `json:"enableAllProjectMcpServers,omitempty"`
	EnabledMCPJSONServers      []string        `json:"enabledMcpjsonServers,omitempty"`
	DisabledMCPJSONServers     []string        `json:"disabledMcpjsonServers,omitempty"`
	AllowedMCPServers          []MCPServerRule `json:"allowedMcpServers,omitempty"`
	DeniedMCPServers           []MCPServerRule `json:"deniedMcpServers,omitempty"`

	CompanyAnnouncements  []string                 `json:"companyAnnouncements,omitempty"`
	Hooks                 map[string][]HookMatcher `json:"hooks,omitempty"`
	StatusLine            *StatusLine              `json:"statusLine,omitempty"`
	FileSuggestion        *string                  `json:"fileSuggestion,omitempty"`
	EnabledPlugins        map[string]bool          `json:"enabledPlugins,omitempty"`
	AlwaysThinkingEnabled *bool                    `json:"alwaysThinkingEnabled,omitempty"`
}
