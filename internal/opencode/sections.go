package opencode

type LogLevel string

const (
	LogDebug LogLevel = "DEBUG"
	LogInfo  LogLevel = "INFO"
	LogWarn  LogLevel = "WARN"
	LogError LogLevel = "ERROR"
)

type ShareMode string

const (
	ShareManual   ShareMode = "manual"
	ShareAuto     ShareMode = "auto"
	ShareDisabled ShareMode = "disabled"
)

type AgentMode string

const (
	AgentSubagent AgentMode = "subagent"
	AgentPrimary  AgentMode = "primary"
	AgentAll      AgentMode = "all"
)

type PermissionAction string

const (
	Ask   PermissionAction = "ask"
	Allow PermissionAction = "allow"
	Deny  PermissionAction = "deny"
)

type DiffStyle string

const (
	DiffAuto    DiffStyle = "auto"
	DiffStacked DiffStyle = "stacked"
)

type ScrollAcceleration struct {
	Enabled bool `json:"enabled"`
}

type TUI struct {
	ScrollSpeed        *float64            `json:"scroll_speed,omitempty"`
	ScrollAcceleration *ScrollAcceleration `json:"scroll_acceleration,omitempty"`
	DiffStyle          *DiffStyle          `json:"diff_style,omitempty"`
}

type Server struct {
	Port     *int     `json:"port,omitempty"`
	Hostname *string  `json:"hostname,omitempty"`
	MDNS     *bool    `json:"mdns,omitempty"`
	CORS     []string `json:"cors,omitempty"`
}

// Command is a custom slash command. Template is required.
type Command struct {
	Template    string  `json:"template"`
	Description *string `json:"description,omitempty"`
	Agent       *string `json:"agent,omitempty"`
	Model       *string `json:"model,omitempty"`
	Subtask     *bool   `json:"subtask,omitempty"`
}

type Watcher struct {
	Ignore []string `json:"ignore,omitempty"`
}

// PermissionDetailed sets a rule per tool. Tools that take no arguments
// accept a single action only.
type PermissionDetailed struct {
	Read              *PermissionRule   `json:"read,omitempty"`
	Edit              *PermissionRule   `json:"edit,omitempty"`
	Glob              *PermissionRule   `json:"glob,omitempty"`
	Grep              *PermissionRule   `json:"grep,omitempty"`
	List              *PermissionRule   `json:"list,omitempty"`
	Bash              *PermissionRule   `json:"bash,omitempty"`
	Task              *PermissionRule   `json:"task,omitempty"`
	ExternalDirectory *PermissionRule   `json:"external_directory,omitempty"`
	TodoWrite         *PermissionAction `json:"todowrite,omitempty"`
	TodoRead          *PermissionAction `json:"todoread,omitempty"`
	Question          *PermissionAction `json:"question,omitempty"`
	WebFetch          *PermissionAction `json:"webfetch,omitempty"`
	WebSearch         *PermissionAction `json:"websearch,omitempty"`
	CodeSearch        *PermissionAction `json:"codesearch,omitempty"`
	LSP               *PermissionRule   `json:"lsp,omitempty"`
	DoomLoop          *PermissionAction `json:"doom_loop,omitempty"`
}

type Agent struct {
	Model       *string        `json:"model,omitempty"`
	Temperature *float64       `json:"temperature,omitempty"`
	TopP        *float64       `json:"top_p,omitempty"`
	Prompt      *string        `json:"prompt,omitempty"`
	Disable     *bool          `json:"disable,omitempty"`
	Description *string        `json:"description,omitempty"`
	Mode        *AgentMode     `json:"mode,omitempty"`
	Hidden      *bool          `json:"hidden,omitempty"`
	Options     map[string]any `json:"options,omitempty"`
	Color       *string        `json:"color,omitempty"`
	Steps       *int           `json:"steps,omitempty"`
	Permission  *Permission    `json:"permission,omitempty"`
}

type ModelCost struct {
	Input           *float64 `json:"input,omitempty"`
	Output          *float64 `json:"output,omitempty"`
	CacheRead       *float64 `json:"cache_read,omitempty"`
	CacheWrite      *float64 `json:"cache_write,omitempty"`
	ContextOver200K *float64 `json:"context_over_200k,omitempty"`
}

type ModelLimit struct {
	Context *int `json:"context,omitempty"`
	Output  *int `json:"output,omitempty"`
}

type ModelModalities struct {
	Input  []string `json:"input,omitempty"`
	Output []string `json:"output,omitempty"`
}

type Model struct {
	ID           *string           `json:"id,omitempty"`
	Name         *string           `json:"name,omitempty"`
	Family       *string           `json:"family,omitempty"`
	ReleaseDate  *string           `json:"release_date,omitempty"`
	Attachment   *bool             `json:"attachment,omitempty"`
	Reasoning    *bool             `json:"reasoning,omitempty"`
	Temperature  *bool             `json:"temperature,omitempty"`
	ToolCall     *bool             `json:"tool_call,omitempty"`
	Interleaved  *bool             `json:"interleaved,omitempty"`
	Cost         *ModelCost        `json:"cost,omitempty"`
	Limit        *ModelLimit       `json:"limit,omitempty"`
	Modalities   *ModelModalities  `json:"modalities,omitempty"`
	Experimental *bool             `json:"experimental,omitempty"`
	Status       *string           `json:"status,omitempty"`
	Options      map[string]any    `json:"options,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
	Provider     *string           `json:"provider,omitempty"`
	Variants     []string          `json:"variants,omitempty"`
}

type ProviderOptions struct {
	APIKey        *string  `json:"apiKey,omitempty"`
	BaseURL       *string  `json:"baseURL,omitempty"`
	EnterpriseURL *string  `json:"enterpriseUrl,omitempty"`
	SetCacheKey   *bool    `json:"setCacheKey,omitempty"`
	Timeout       *Timeout `json:"timeout,omitempty"`
}

type Provider struct {
	API       *string          `json:"api,omitempty"`
	Name      *string          `json:"name,omitempty"`
	Env       []string         `json:"env,omitempty"`
	ID        *string          `json:"id,omitempty"`
	NPM       *string          `json:"npm,omitempty"`
	Models    map[string]Model `json:"models,omitempty"`
	Whitelist []string         `json:"whitelist,omitempty"`
	Blacklist []string         `json:"blacklist,omitempty"`
	Options   *ProviderOptions `json:"options,omitempty"`
}

// MCPLocal runs Command as a subprocess speaking MCP over stdio.
type MCPLocal struct {
	Command     []string          `json:"command"`
	Environment map[string]string `json:"environment,omitempty"`
	Enabled     *bool             `json:"enabled,omitempty"`
	Timeout     *int              `json:"timeout,omitempty"`
}

type OAuth struct {
	ClientID     string  `json:"clientId"`
	ClientSecret string  `json:"clientSecret"`
	Scope        *string `json:"scope,omitempty"`
}

type MCPRemote struct {
	URL     string            `json:"url"`
	Enabled *bool             `json:"enabled,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	OAuth   *OAuth            `json:"oauth,omitempty"`
	Timeout *int              `json:"timeout,omitempty"`
}

type Formatter struct {
	Disabled    *bool             `json:"disabled,omitempty"`
	Command     []string          `json:"command,omitempty"`
	Environment map[string]string `json:"environment,omitempty"`
	Extensions  []string          `json:"extensions,omitempty"`
}

type LSPServer struct {
	Disabled       *bool             `json:"disabled,omitempty"`
	Command        []string          `json:"command"`
	Extensions     []string          `json:"extensions,omitempty"`
	Env            map[string]string `json:"env,omitempty"`
	Initialization any               `json:"initialization,omitempty"`
}

type Enterprise struct {
	URL *string `json:"url,omitempty"`
}

type Compaction struct {
	Auto  *bool `json:"auto,omitempty"`
	Prune *bool `json:"prune,omitempty"`
}

type HookCommand struct {
	Command     []string          `json:"command"`
	Environment map[string]string `json:"environment,omitempty"`
}

type Hooks struct {
	FileEdited       map[string][]HookCommand `json:"file_edited,omitempty"`
	SessionCompleted []HookCommand            `json:"session_completed,omitempty"`
}

type Experimental struct {
	Hook                *Hooks   `json:"hook,omitempty"`
	ChatMaxRetries      *int     `json:"chatMaxRetries,omitempty"`
	DisablePasteSummary *bool    `json:"disable_paste_summary,omitempty"`
	BatchTool           *bool    `json:"batch_tool,omitempty"`
	OpenTelemetry       *bool    `json:"openTelemetry,omitempty"`
	PrimaryTools        []string `json:"primary_tools,omitempty"`
	ContinueLoopOnDeny  *bool    `json:"continue_loop_on_deny,omitempty"`
	MCPTimeout          *int     `json:"mcp_timeout,omitempty"`
}

// Settings is the opencode.json document. Field names follow the published
// config schema.
type Settings struct {
	Schema            *string              `json:"$schema,omitempty"`
	Theme             *string              `json:"theme,omitempty"`
	Keybinds          map[Keybind]string   `json:"keybinds,omitempty"`
	LogLevel          *LogLevel            `json:"logLevel,omitempty"`
	TUI               *TUI                 `json:"tui,omitempty"`
	Server            *Server              `json:"server,omitempty"`
	Command           map[string]Command   `json:"command,omitempty"`
	Watcher           *Watcher             `json:"watcher,omitempty"`
	Plugin            []string             `json:"plugin,omitempty"`
	Snapshot          *bool                `json:"snapshot,omitempty"`
	Share             *ShareMode           `json:"share,omitempty"`
	AutoUpdate        *AutoUpdate          `json:"autoupdate,omitempty"`
	DisabledProviders []string             `json:"disabled_providers,omitempty"`
	EnabledProviders  []string             `json:"enabled_providers,omitempty"`
	Model             *string              `json:"model,omitempty"`
	SmallModel        *string              `json:"small_model,omitempty"`
	DefaultAgent      *string              `json:"default_agent,omitempty"`
	Username          *string              `json:"username,omitempty"`
	Agent             map[string]Agent     `json:"agent,omitempty"`
	Permission        *Permission          `json:"permission,omitempty"`
	Provider          map[string]Provider  `json:"provider,omitempty"`
	MCP               map[string]MCPServer `json:"mcp,omitempty"`
	Formatter         *FormatterSettings   `json:"formatter,omitempty"`
	LSP               *LSPSettings         `json:"lsp,omitempty"`
	Instructions      []string             `json:"instructions,omitempty"`
	Enterprise        *Enterprise          `json:"enterprise,omitempty"`
	Compaction        *Compaction          `json:"compaction,omitempty"`
	Experimental      *Experimental        `json:"experimental,omitempty"`
}
