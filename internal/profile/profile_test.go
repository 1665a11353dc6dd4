package profile

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/bianoble/userenv/internal/artifact"
	"github.com/bianoble/userenv/internal/artifact/artifacttest"
	"github.com/bianoble/userenv/internal/config"
	"github.com/bianoble/userenv/internal/env"
	"github.com/bianoble/userenv/internal/sandbox"
)

const outputRoot = "/var/lib/vorpal/store/artifact/output/library/"

func userConfig() *config.Config {
	return &config.Config{
		Version:      1,
		Name:         "user",
		Tools:        []config.Tool{{Name: "gh", Artifact: "3f1c"}},
		Environments: []string{"EDITOR=vim"},
		Symlinks: []config.Symlink{{
			Source: "$HOME/src/vorpal/target/debug/vorpal",
			Target: "$HOME/.vorpal/bin/vorpal",
		}},
	}
}

func newUser(t *testing.T, cfg *config.Config) *User {
	t.Helper()
	u, err := NewUser(cfg, t.TempDir())
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	return u
}

func TestUserBuild(t *testing.T) {
	b := artifacttest.New()
	res, err := newUser(t, userConfig()).Build(context.Background(), b)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	d := res.Descriptor

	if d.Name != "user" || !reflect.DeepEqual(d.Systems, artifact.AllSystems()) {
		t.Errorf("descriptor = %s %v", d.Name, d.Systems)
	}

	wantNames := []string{
		"user-bat-config", "user-claude-code", "user-claude-statusline",
		"user-ghostty-config", "user-k9s-skin", "user-markdown-vim", "user-opencode",
	}
	if len(res.Artifacts) != len(wantNames) {
		t.Fatalf("entries = %+v", res.Artifacts)
	}
	for i, e := range res.Artifacts {
		if e.Name != wantNames[i] {
			t.Errorf("entry[%d] = %s, want %s", i, e.Name, wantNames[i])
		}
	}
	if got := len(b.Rendered()); got != len(wantNames) {
		t.Errorf("rendered %d steps, want %d", got, len(wantNames))
	}

	if d.Artifacts[0] != "3f1c" || len(d.Artifacts) != 1+len(wantNames) {
		t.Errorf("artifacts = %v", d.Artifacts)
	}

	wantEnv := append(append([]string(nil), DefaultEnvironments...), "EDITOR=vim")
	if !reflect.DeepEqual(d.Environments, wantEnv) {
		t.Errorf("environments = %v, want %v", d.Environments, wantEnv)
	}

	wantTargets := []string{
		"$HOME/.vorpal/bin/vorpal",
		"$HOME/.config/bat/config",
		"$HOME/.claude/settings.json",
		"$HOME/.claude/statusline.sh",
		`$HOME/Library/Application\ Support/com.mitchellh.ghostty/config`,
		`$HOME/Library/Application\ Support/k9s/skins/tokyo_night.yaml`,
		"$HOME/.config/nvim/after/ftplugin/markdown.vim",
		"$HOME/.config/opencode/opencode.json",
	}
	if len(d.Symlinks) != len(wantTargets) {
		t.Fatalf("symlinks = %+v", d.Symlinks)
	}
	for i, s := range d.Symlinks {
		if s.Target != wantTargets[i] {
			t.Errorf("symlink[%d].Target = %s, want %s", i, s.Target, wantTargets[i])
		}
	}

	bat := res.Artifacts[0]
	if want := outputRoot + string(bat.ID) + "/user-bat-config"; d.Symlinks[1].Source != want {
		t.Errorf("bat source = %s, want %s", d.Symlinks[1].Source, want)
	}
}

func TestUserBuildDeterministic(t *testing.T) {
	first, err := newUser(t, userConfig()).Build(context.Background(), artifacttest.New())
	if err != nil {
		t.Fatal(err)
	}
	second, err := newUser(t, userConfig()).Build(context.Background(), artifacttest.New())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two builds of the same config differ")
	}
}

func TestUserRender(t *testing.T) {
	u := newUser(t, userConfig())

	tests := []struct {
		tool string
		want string
	}{
		{"bat", "--theme=tokyonight"},
		{"markdown-vim", "setlocal wrap"},
		{"ghostty", "background-opacity = 0.95\nfont-family = GeistMono NFM\nfont-size = 18\nmacos-option-as-alt = true\ntheme = TokyoNight\n"},
	}
	for _, tt := range tests {
		got, err := u.Render(tt.tool)
		if err != nil {
			t.Errorf("Render(%s): %v", tt.tool, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Render(%s) = %q, want %q", tt.tool, got, tt.want)
		}
	}

	script, err := u.Render("claude-statusline")
	if err != nil || !strings.HasPrefix(script, "#!/bin/bash\n") {
		t.Errorf("statusline = %q, %v", script, err)
	}

	skin, err := u.Render("k9s-skin")
	if err != nil || !strings.Contains(skin, "k9s:") {
		t.Errorf("skin = %q, %v", skin, err)
	}

	if _, err := u.Render("tmux"); err == nil {
		t.Error("expected error for a tool without a generated artifact")
	}
}

func TestClaudeSettings(t *testing.T) {
	out, err := newUser(t, userConfig()).Render("claude-code")
	if err != nil {
		t.Fatal(err)
	}

	var got struct {
		AlwaysThinkingEnabled bool              `json:"alwaysThinkingEnabled"`
		Attribution           map[string]string `json:"attribution"`
		EnabledPlugins        map[string]bool   `json:"enabledPlugins"`
		Env                   map[string]string `json:"env"`
		Permissions           struct {
			Allow       []string `json:"allow"`
			Deny        []string `json:"deny"`
			DefaultMode string   `json:"defaultMode"`
		} `json:"permissions"`
		StatusLine struct {
			Type    string `json:"type"`
			Command string `json:"command"`
			Padding int    `json:"padding"`
		} `json:"statusLine"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}

	if !got.AlwaysThinkingEnabled {
		t.Error("alwaysThinkingEnabled should be true")
	}
	if !reflect.DeepEqual(got.Attribution, map[string]string{"commit": "", "pr": ""}) {
		t.Errorf("attribution = %v", got.Attribution)
	}
	if len(got.EnabledPlugins) != 2 || !got.EnabledPlugins["gopls-lsp@claude-plugins-official"] {
		t.Errorf("plugins = %v", got.EnabledPlugins)
	}
	if got.Env["CLAUDE_CODE_EXPERIMENTAL_AGENT_TEAMS"] != "1" {
		t.Errorf("env = %v", got.Env)
	}
	if len(got.Permissions.Allow) != len(claudeAllow)+len(linearTools) {
		t.Errorf("allow = %d rules", len(got.Permissions.Allow))
	}
	if got.Permissions.Allow[0] != "Bash(cargo build:*)" || got.Permissions.Allow[len(got.Permissions.Allow)-1] != "mcp__linear-server__update_project" {
		t.Error("allow rules out of order")
	}
	if !reflect.DeepEqual(got.Permissions.Deny, claudeDeny) {
		t.Errorf("deny = %v", got.Permissions.Deny)
	}
	if got.Permissions.DefaultMode != "acceptEdits" {
		t.Errorf("defaultMode = %s", got.Permissions.DefaultMode)
	}
	if got.StatusLine.Type != "command" || got.StatusLine.Command != "bash ~/.claude/statusline.sh" || got.StatusLine.Padding != 2 {
		t.Errorf("statusLine = %+v", got.StatusLine)
	}
}

func TestOpencodeSettings(t *testing.T) {
	cfg := userConfig()
	cfg.Theme = "catppuccin"
	out, err := newUser(t, cfg).Render("opencode")
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if got["$schema"] != "https://opencode.ai/config.json" || got["autoupdate"] != false || got["theme"] != "catppuccin" {
		t.Errorf("settings = %v", got)
	}

	perm := got["permission"].(map[string]any)
	for key, want := range map[string]string{"edit": "ask", "glob": "allow", "list": "allow", "lsp": "allow", "read": "allow", "webfetch": "allow"} {
		if perm[key] != want {
			t.Errorf("permission.%s = %v, want %s", key, perm[key], want)
		}
	}
	bash := perm["bash"].(map[string]any)
	if len(bash) != 14 || bash["*"] != "ask" || bash["git log*"] != "allow" {
		t.Errorf("bash = %v", bash)
	}

	if !strings.Contains(out, `"*": "ask"`) || strings.Index(out, `"*"`) > strings.Index(out, `"cat*"`) {
		t.Error("bash patterns should be sorted with * first")
	}
}

func TestUserTerminalAndPalette(t *testing.T) {
	cfg := userConfig()
	size := 14
	no := false
	cfg.Terminal = config.Terminal{FontSize: &size, MacosOptionAsAlt: &no, Theme: "Dracula"}
	cfg.Palette.Purple = "#9d7cd8"
	u := newUser(t, cfg)

	out, err := u.Render("ghostty")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"font-family = GeistMono NFM\n", "font-size = 14\n", "macos-option-as-alt = false\n", "theme = Dracula\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("ghostty config missing %q:\n%s", want, out)
		}
	}

	skin, err := u.Render("k9s-skin")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(skin, "#9d7cd8") || strings.Contains(skin, "#bd93f9") {
		t.Error("palette override not applied to the skin")
	}
}

func TestUserTerminalExplicitZero(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "userenv.yaml")
	content := "version: 1\nname: user\nterminal:\n  background_opacity: 0\n  font_size: 0\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	out, err := newUser(t, cfg).Render("ghostty")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"background-opacity = 0\n", "font-size = 0\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("ghostty config missing %q:\n%s", want, out)
		}
	}
}

func TestUserDirectories(t *testing.T) {
	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "agents"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(base, "agents", "reviewer.md"), []byte("# reviewer"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := userConfig()
	cfg.Directories = []config.Directory{{Name: "claude-agents", Path: "agents", Tool: "claude-agents"}}
	u, err := NewUser(cfg, base)
	if err != nil {
		t.Fatal(err)
	}

	res, err := u.Build(context.Background(), artifacttest.New())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	last := res.Artifacts[len(res.Artifacts)-1]
	if last.Name != "user-claude-agents" {
		t.Errorf("last entry = %+v", last)
	}
	link := res.Descriptor.Symlinks[len(res.Descriptor.Symlinks)-1]
	want := env.Symlink{Source: outputRoot + string(last.ID), Target: "$HOME/.claude/agents"}
	if link != want {
		t.Errorf("link = %+v, want %+v", link, want)
	}

	if _, err := u.Render("claude-agents"); err == nil {
		t.Error("directories have no rendered content")
	}
}

func TestUserDirectoryOutsideConfigDir(t *testing.T) {
	cfg := userConfig()
	cfg.Directories = []config.Directory{{Name: "agents", Path: "../agents", Tool: "claude-agents"}}

	_, err := newUser(t, cfg).Build(context.Background(), artifacttest.New())
	if !errors.Is(err, sandbox.ErrOutsideRoot) {
		t.Fatalf("expected ErrOutsideRoot, got %v", err)
	}
}

func TestUserUnknownDirectoryTool(t *testing.T) {
	cfg := userConfig()
	cfg.Directories = []config.Directory{{Name: "x", Path: "/tmp", Tool: "emacs"}}

	b := artifacttest.New()
	_, err := newUser(t, cfg).Build(context.Background(), b)
	if err == nil || !strings.Contains(err.Error(), "unknown tool 'emacs'") {
		t.Fatalf("expected unknown tool error, got %v", err)
	}
}

func TestUserToolDefinitionOverride(t *testing.T) {
	cfg := userConfig()
	cfg.ToolDefinitions = []config.ToolDefinition{{Name: "ghostty", Destination: "$HOME/.config/ghostty/config"}}

	res, err := newUser(t, cfg).Build(context.Background(), artifacttest.New())
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Descriptor.Symlinks[4].Target; got != "$HOME/.config/ghostty/config" {
		t.Errorf("ghostty target = %s", got)
	}
}

func TestUserNamespace(t *testing.T) {
	cfg := userConfig()
	cfg.Namespace = "team"

	res, err := newUser(t, cfg).Build(context.Background(), artifacttest.New())
	if err != nil {
		t.Fatal(err)
	}
	if src := res.Descriptor.Symlinks[1].Source; !strings.HasPrefix(src, "/var/lib/vorpal/store/artifact/output/team/") {
		t.Errorf("source = %s", src)
	}
}

func TestUserBuildRenderFailure(t *testing.T) {
	b := artifacttest.New()
	boom := errors.New("engine unavailable")
	b.FailRender = map[string]error{"user-ghostty-config": boom}

	_, err := newUser(t, userConfig()).Build(context.Background(), b)
	if !errors.Is(err, boom) {
		t.Fatalf("expected engine error, got %v", err)
	}
	if got := len(b.Rendered()); got != 3 {
		t.Errorf("rendered %d steps before failing, want 3", got)
	}
}

func TestUserBuildUnresolvedTool(t *testing.T) {
	b := artifacttest.New()
	b.FailResolve = map[artifact.ID]error{"3f1c": artifact.ErrUnknown}

	res, err := newUser(t, userConfig()).Build(context.Background(), b)
	var unresolved *env.UnresolvedError
	if !errors.As(err, &unresolved) || unresolved.ID != "3f1c" {
		t.Fatalf("expected UnresolvedError for 3f1c, got %v", err)
	}
	if res != nil {
		t.Error("expected no result")
	}
}

func TestProject(t *testing.T) {
	cfg := &config.Config{
		Version:      1,
		Name:         "dev",
		Systems:      []string{"aarch64-darwin", "x86_64-linux"},
		Tools:        []config.Tool{{Name: "protoc", Artifact: "p1"}, {Name: "rust-toolchain", Artifact: "r1"}},
		Environments: []string{"PATH=$RUST/bin", "RUSTUP_TOOLCHAIN=1.89.0"},
		Symlinks:     []config.Symlink{{Source: "/a", Target: "/b"}},
	}

	b := artifacttest.New()
	res, err := Project(context.Background(), cfg, b)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	d := res.Descriptor
	if !reflect.DeepEqual(d.Artifacts, []artifact.ID{"p1", "r1"}) {
		t.Errorf("artifacts = %v", d.Artifacts)
	}
	if !reflect.DeepEqual(d.Environments, cfg.Environments) {
		t.Errorf("environments = %v", d.Environments)
	}
	if len(d.Symlinks) != 0 {
		t.Errorf("project environments link nothing, got %+v", d.Symlinks)
	}
	if len(d.Systems) != 2 {
		t.Errorf("systems = %v", d.Systems)
	}
	if len(b.Rendered()) != 0 || len(res.Artifacts) != 0 {
		t.Error("project environments build nothing")
	}
}

func TestSystems(t *testing.T) {
	got, err := Systems(&config.Config{})
	if err != nil || len(got) != 4 {
		t.Errorf("Systems(empty) = %v, %v", got, err)
	}

	if _, err := Systems(&config.Config{Systems: []string{"plan9"}}); err == nil {
		t.Error("expected error for unknown system")
	}
	if _, err := NewUser(&config.Config{Name: "u", Systems: []string{"plan9"}}, ""); err == nil {
		t.Error("NewUser should reject unknown systems")
	}
}

func TestResultManifest(t *testing.T) {
	res, err := newUser(t, userConfig()).Build(context.Background(), artifacttest.New())
	if err != nil {
		t.Fatal(err)
	}
	m := res.Manifest()
	if m.Version != 1 || m.Environment != res.Descriptor || len(m.Artifacts) != 7 {
		t.Errorf("manifest = %+v", m)
	}
	if id, ok := m.Lookup("user-opencode"); !ok || id == "" {
		t.Error("manifest should record the opencode artifact")
	}
}
