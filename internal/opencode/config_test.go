package opencode

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/pretty"

	"github.com/bianoble/userenv/internal/artifact"
	"github.com/bianoble/userenv/internal/artifact/artifacttest"
	"github.com/bianoble/userenv/internal/field"
)

func render(t *testing.T, c *Config) string {
	t.Helper()
	out, err := c.Render()
	require.NoError(t, err)
	return out
}

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, "{}", render(t, New("opencode", nil)))
}

func TestRenderPermissionDocument(t *testing.T) {
	out := render(t, New("opencode", nil).
		WithSchema(SchemaURL).
		WithAutoUpdate(AutoUpdateEnabled(false)).
		WithBashPermissions(map[string]PermissionAction{"cat*": Allow, "*": Ask}).
		WithPermissionEdit(Simple(Ask)).
		WithPermissionWebFetch(Allow).
		WithTheme("tokyonight"))

	want := `{
  "$schema": "https://opencode.ai/config.json",
  "theme": "tokyonight",
  "autoupdate": false,
  "permission": {
    "edit": "ask",
    "bash": {
      "*": "ask",
      "cat*": "allow"
    },
    "webfetch": "allow"
  }
}`
	assert.Equal(t, want, out)
}

func TestUnionSetterReplaces(t *testing.T) {
	out := render(t, New("o", nil).
		WithPermissionBash(Simple(Ask)).
		WithPermissionBash(Patterns(map[string]PermissionAction{"cat*": Allow})))
	assert.JSONEq(t, `{"permission":{"bash":{"cat*":"allow"}}}`, out)

	out = render(t, New("o", nil).
		WithPermissionBash(Patterns(map[string]PermissionAction{"cat*": Allow})).
		WithPermissionBash(Simple(Deny)))
	assert.JSONEq(t, `{"permission":{"bash":"deny"}}`, out)
}

func TestEmptyPatternsRenderAsObject(t *testing.T) {
	out := render(t, New("o", nil).WithPermissionBash(Patterns(nil)))
	assert.JSONEq(t, `{"permission":{"bash":{}}}`, out)
}

func TestToolRuleReplacesSimplePermission(t *testing.T) {
	out := render(t, New("o", nil).
		WithPermission(SimplePermission(Allow)).
		WithPermissionRead(Simple(Deny)))
	assert.JSONEq(t, `{"permission":{"read":"deny"}}`, out)

	out = render(t, New("o", nil).
		WithPermissionRead(Simple(Deny)).
		WithPermission(SimplePermission(Ask)))
	assert.JSONEq(t, `{"permission":"ask"}`, out)
}

func TestPermissionRulesKeepSiblings(t *testing.T) {
	out := render(t, New("o", nil).
		WithPermissionGlob(Simple(Allow)).
		WithPermissionList(Simple(Allow)).
		WithPermissionLSP(Simple(Allow)).
		WithPermissionDoomLoop(Deny))
	assert.JSONEq(t, `{"permission":{"glob":"allow","list":"allow","lsp":"allow","doom_loop":"deny"}}`, out)
}

func TestDetailedPermissionNotAliased(t *testing.T) {
	shared := DetailedPermission(PermissionDetailed{Edit: field.Ptr(Simple(Ask))})
	a := New("a", nil).WithPermission(shared)
	b := New("b", nil).WithPermission(shared)

	a.WithPermissionBash(Simple(Deny))

	assert.JSONEq(t, `{"permission":{"edit":"ask"}}`, render(t, b))
	assert.JSONEq(t, `{"permission":{"edit":"ask","bash":"deny"}}`, render(t, a))
}

func TestMapKeysSorted(t *testing.T) {
	a := render(t, New("o", nil).
		WithAgentModel("zeta", "m1").
		WithAgentModel("alpha", "m2").
		WithKeybind(KeySessionNew, "<leader>n").
		WithKeybind(KeyAppExit, "ctrl+c").
		WithMCPLocal("z", "z-server").
		WithMCPRemote("a", "https://a.example"))
	b := render(t, New("o", nil).
		WithMCPRemote("a", "https://a.example").
		WithKeybind(KeyAppExit, "ctrl+c").
		WithAgentModel("alpha", "m2").
		WithMCPLocal("z", "z-server").
		WithKeybind(KeySessionNew, "<leader>n").
		WithAgentModel("zeta", "m1"))
	assert.Equal(t, a, b)
	assert.Less(t, strings.Index(a, `"alpha"`), strings.Index(a, `"zeta"`))
	assert.Less(t, strings.Index(a, `"app_exit"`), strings.Index(a, `"session_new"`))
}

func TestAgentFieldMergeAndReplace(t *testing.T) {
	out := render(t, New("o", nil).
		WithAgentModel("review", "anthropic/claude-sonnet-4").
		WithAgentTemperature("review", 0.1).
		WithAgentMode("review", AgentSubagent))
	assert.JSONEq(t, `{"agent":{"review":{"model":"anthropic/claude-sonnet-4","temperature":0.1,"mode":"subagent"}}}`, out)

	out = render(t, New("o", nil).
		WithAgentModel("review", "anthropic/claude-sonnet-4").
		WithAgent("review", Agent{Prompt: field.Ptr("be brief")}))
	assert.JSONEq(t, `{"agent":{"review":{"prompt":"be brief"}}}`, out)
}

func TestAgentOptionsNotAliased(t *testing.T) {
	shared := Agent{Options: map[string]any{"a": 1}}
	c := New("o", nil).WithAgent("x", shared).WithAgentOption("x", "b", true)
	render(t, c)
	assert.Len(t, shared.Options, 1)
}

func TestProviderSetters(t *testing.T) {
	out := render(t, New("o", nil).
		WithProviderNPM("local", "@ai-sdk/openai-compatible").
		WithProviderBaseURL("local", "http://localhost:11434/v1").
		WithProviderTimeout("local", TimeoutDisabled()).
		WithProviderModel("local", "qwen", Model{Name: field.Ptr("Qwen"), Limit: &ModelLimit{Context: field.Ptr(32768)}}).
		WithProviderWhitelist("local", "qwen"))
	want := `{"provider":{"local":{
		"npm":"@ai-sdk/openai-compatible",
		"models":{"qwen":{"name":"Qwen","limit":{"context":32768}}},
		"whitelist":["qwen"],
		"options":{"baseURL":"http://localhost:11434/v1","timeout":false}}}}`
	assert.JSONEq(t, want, out)
}

func TestMCPVariants(t *testing.T) {
	out := render(t, New("o", nil).
		WithMCPLocal("fs", "npx", "-y", "@modelcontextprotocol/server-filesystem").
		WithMCP("docs", RemoteMCP(MCPRemote{
			URL:     "https://docs.example/mcp",
			Enabled: field.Ptr(true),
			OAuth:   &OAuth{ClientID: "id", ClientSecret: "secret"},
		})))
	want := `{"mcp":{
		"docs":{"type":"remote","url":"https://docs.example/mcp","enabled":true,"oauth":{"clientId":"id","clientSecret":"secret"}},
		"fs":{"type":"local","command":["npx","-y","@modelcontextprotocol/server-filesystem"]}}}`
	assert.JSONEq(t, want, out)
}

func TestMCPZeroValueFails(t *testing.T) {
	_, err := New("o", nil).WithMCP("bad", MCPServer{}).Render()
	assert.ErrorIs(t, err, field.ErrSerialize)
}

func TestFormatterAndLSP(t *testing.T) {
	out := render(t, New("o", nil).WithFormatterDisabled().WithLSPDisabled())
	assert.JSONEq(t, `{"formatter":false,"lsp":false}`, out)

	out = render(t, New("o", nil).
		WithLSPDisabled().
		WithLSP("gopls", LSPServer{Command: []string{"gopls"}, Extensions: []string{".go"}}).
		WithFormatter("gofmt", Formatter{Command: []string{"gofmt", "-w", "$FILE"}}))
	assert.JSONEq(t, `{
		"formatter":{"gofmt":{"command":["gofmt","-w","$FILE"]}},
		"lsp":{"gopls":{"command":["gopls"],"extensions":[".go"]}}}`, out)

	out = render(t, New("o", nil).
		WithFormatter("gofmt", Formatter{Command: []string{"gofmt"}}).
		WithFormatterDisabled())
	assert.JSONEq(t, `{"formatter":false}`, out)
}

func TestSectionsKeepSiblings(t *testing.T) {
	a := render(t, New("o", nil).
		WithTUIScrollSpeed(3).
		WithTUIDiffStyle(DiffStacked).
		WithServerPort(4096).
		WithServerCORS("https://a.example").
		WithServerCORS("https://b.example").
		WithCompactionAuto(true).
		WithCompactionPrune(false).
		WithExperimentalBatchTool(true).
		WithExperimentalChatMaxRetries(2))
	b := render(t, New("o", nil).
		WithExperimentalChatMaxRetries(2).
		WithCompactionPrune(false).
		WithServerCORS("https://a.example").
		WithTUIDiffStyle(DiffStacked).
		WithExperimentalBatchTool(true).
		WithServerPort(4096).
		WithCompactionAuto(true).
		WithServerCORS("https://b.example").
		WithTUIScrollSpeed(3))
	assert.Equal(t, a, b)
	assert.JSONEq(t, `{
		"tui":{"scroll_speed":3,"diff_style":"stacked"},
		"server":{"port":4096,"cors":["https://a.example","https://b.example"]},
		"compaction":{"auto":true,"prune":false},
		"experimental":{"chatMaxRetries":2,"batch_tool":true}}`, a)
}

func TestExperimentalHooks(t *testing.T) {
	out := render(t, New("o", nil).
		WithExperimentalHookFileEdited("*.go", HookCommand{Command: []string{"gofmt", "-w"}}).
		WithExperimentalHookSessionCompleted(HookCommand{Command: []string{"say", "done"}, Environment: map[string]string{"VOICE": "Alex"}}))
	assert.JSONEq(t, `{"experimental":{"hook":{
		"file_edited":{"*.go":[{"command":["gofmt","-w"]}]},
		"session_completed":[{"command":["say","done"],"environment":{"VOICE":"Alex"}}]}}}`, out)
}

func TestAutoUpdateNotify(t *testing.T) {
	out := render(t, New("o", nil).WithAutoUpdate(AutoUpdateNotify()).WithLogLevel(LogWarn).WithShare(ShareDisabled))
	assert.JSONEq(t, `{"logLevel":"WARN","share":"disabled","autoupdate":"notify"}`, out)
}

func TestHTMLNotEscaped(t *testing.T) {
	out := render(t, New("o", nil).WithBashPermissions(map[string]PermissionAction{"echo > /tmp/*": Deny}))
	assert.Contains(t, out, `"echo > /tmp/*": "deny"`)
}

func TestRenderRoundTrip(t *testing.T) {
	c := New("o", nil).
		WithSchema(SchemaURL).
		WithAutoUpdate(AutoUpdateNotify()).
		WithPermissionBash(Patterns(map[string]PermissionAction{"*": Ask, "ls*": Allow})).
		WithPermissionEdit(Simple(Ask)).
		WithAgentPermission("plan", SimplePermission(Deny)).
		WithLSPDisabled().
		WithFormatter("prettier", Formatter{Disabled: field.Ptr(true)}).
		WithMCPRemote("docs", "https://docs.example/mcp").
		WithProviderTimeout("openai", TimeoutMillis(60000)).
		WithKeybind(KeyLeader, "ctrl+x")
	out := render(t, c)

	var parsed Settings
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	again, err := field.MarshalJSON(document, &parsed)
	require.NoError(t, err)
	assert.Equal(t, out, again)

	var generic map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &generic))
	reencoded, err := json.Marshal(generic)
	require.NoError(t, err)
	sorted := &pretty.Options{Indent: "  ", SortKeys: true}
	assert.Equal(t,
		string(pretty.PrettyOptions([]byte(out), sorted)),
		string(pretty.PrettyOptions(reencoded, sorted)))
}

func TestUnionUnmarshalRejects(t *testing.T) {
	var a AutoUpdate
	assert.Error(t, json.Unmarshal([]byte(`"always"`), &a))

	var l LSPSettings
	assert.Error(t, json.Unmarshal([]byte(`true`), &l))

	var s MCPServer
	assert.Error(t, json.Unmarshal([]byte(`{"type":"ftp"}`), &s))

	var timeout Timeout
	require.NoError(t, json.Unmarshal([]byte(`false`), &timeout))
	assert.Equal(t, TimeoutDisabled(), timeout)
}

func TestRenderIdempotent(t *testing.T) {
	c := New("o", nil).WithTheme("tokyonight").WithBashPermissions(map[string]PermissionAction{"*": Ask})
	assert.Equal(t, render(t, c), render(t, c))
}

func TestKeybindsUnique(t *testing.T) {
	seen := make(map[Keybind]bool)
	for _, k := range Keybinds() {
		assert.False(t, seen[k], "duplicate keybind %s", k)
		seen[k] = true
	}
	assert.True(t, seen[KeyTipsToggle])
}

func TestBuildConsumes(t *testing.T) {
	b := artifacttest.New()
	c := New("opencode", artifact.AllSystems()).WithTheme("tokyonight")

	_, err := c.Build(context.Background(), b)
	require.NoError(t, err)
	_, err = c.Build(context.Background(), b)
	assert.ErrorIs(t, err, artifact.ErrSpent)
}
