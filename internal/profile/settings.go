package profile

import (
	"github.com/bianoble/userenv/internal/artifact"
	"github.com/bianoble/userenv/internal/claude"
	"github.com/bianoble/userenv/internal/opencode"
)

var claudeAllow = []string{
	"Bash(cargo build:*)",
	"Bash(cargo check:*)",
	"Bash(cargo clippy:*)",
	"Bash(cargo fmt:*)",
	"Bash(cargo outdated:*)",
	"Bash(cargo search:*)",
	"Bash(cargo test:*)",
	"Bash(cargo tree:*)",
	"Bash(cargo update:*)",
	"Bash(cat:*)",
	"Bash(cue export:*)",
	"Bash(cue vet:*)",
	"Bash(curl:*)",
	"Bash(find:*)",
	"Bash(gh pr list:*)",
	"Bash(git add:*)",
	"Bash(git branch --show-current)",
	"Bash(git remote get-url:*)",
	"Bash(go build:*)",
	"Bash(go list:*)",
	"Bash(go mod tidy:*)",
	"Bash(go test:*)",
	"Bash(go version:*)",
	"Bash(go vet:*)",
	"Bash(gofmt:*)",
	"Bash(grep:*)",
	"Bash(make build:*)",
	"Bash(make lint:*)",
	"Bash(make test:*)",
	"Bash(make:*)",
	"Bash(sort:*)",
	"Bash(tar:*)",
	"Bash(test:*)",
	"Bash(tree:*)",
	"Bash(vorpal build:*)",
	"Bash(vorpal inspect:*)",
	"Bash(wc:*)",
	"Bash(xargs:*)",
	"WebFetch(domain:crates.io)",
	"WebFetch(domain:github.com)",
	"WebSearch",
}

// linearTools are the issue tracker MCP tools Claude may call unprompted.
var linearTools = []string{
	"create_attachment", "create_comment", "create_document", "create_issue",
	"create_issue_label", "create_milestone", "create_project", "delete_attachment",
	"extract_images", "get_attachment", "get_document", "get_issue",
	"get_issue_status", "get_milestone", "get_project", "get_team", "get_user",
	"list_comments", "list_cycles", "list_documents", "list_issue_labels",
	"list_issue_statuses", "list_issues", "list_milestones", "list_project_labels",
	"list_projects", "list_teams", "list_users", "search_documentation",
	"update_document", "update_issue", "update_milestone", "update_project",
}

var claudeDeny = []string{
	"Read(./**/*.key)",
	"Read(./**/*.pem)",
	"Read(./.env)",
	"Read(./.env*)",
	"Read(./.secrets/**)",
	"Read(./secrets/**)",
}

func claudeSettings(name string, systems []artifact.System) *claude.Config {
	c := claude.New(name, systems).
		WithAlwaysThinkingEnabled(true).
		WithAttributionCommit("").
		WithAttributionPR("").
		WithEnabledPlugin("gopls-lsp@claude-plugins-official", true).
		WithEnabledPlugin("rust-analyzer-lsp@claude-plugins-official", true).
		WithEnv("CLAUDE_CODE_EXPERIMENTAL_AGENT_TEAMS", "1")
	for _, rule := range claudeAllow {
		c.WithPermissionAllow(rule)
	}
	for _, tool := range linearTools {
		c.WithPermissionAllow("mcp__linear-server__" + tool)
	}
	for _, rule := range claudeDeny {
		c.WithPermissionDeny(rule)
	}
	return c.
		WithPermissionDefaultMode("acceptEdits").
		WithStatusLine("bash ~/.claude/statusline.sh").
		WithStatusLinePadding(2)
}

func opencodeSettings(name string, systems []artifact.System, theme string) *opencode.Config {
	bash := map[string]opencode.PermissionAction{"*": opencode.Ask}
	for _, prefix := range []string{
		"cat", "echo", "file", "find", "git branch", "git log",
		"grep", "head", "ls", "sort", "test", "tree", "wc",
	} {
		bash[prefix+"*"] = opencode.Allow
	}

	return opencode.New(name, systems).
		WithSchema(opencode.SchemaURL).
		WithAutoUpdate(opencode.AutoUpdateEnabled(false)).
		WithBashPermissions(bash).
		WithPermissionEdit(opencode.Simple(opencode.Ask)).
		WithPermissionGlob(opencode.Simple(opencode.Allow)).
		WithPermissionList(opencode.Simple(opencode.Allow)).
		WithPermissionLSP(opencode.Simple(opencode.Allow)).
		WithPermissionRead(opencode.Simple(opencode.Allow)).
		WithPermissionWebFetch(opencode.Allow).
		WithTheme(theme)
}
