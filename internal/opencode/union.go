package opencode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
)

// marshal encodes v without escaping HTML characters, so shell patterns
// such as "cat > *" are written literally.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// firstByte returns the first non-space byte of a JSON value.
func firstByte(data []byte) byte {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return 0
	}
	return data[0]
}

// AutoUpdate is either a boolean or the "notify" sentinel.
type AutoUpdate struct {
	enabled bool
	notify  bool
}

func AutoUpdateEnabled(enabled bool) AutoUpdate { return AutoUpdate{enabled: enabled} }

// AutoUpdateNotify reports new versions without installing them.
func AutoUpdateNotify() AutoUpdate { return AutoUpdate{notify: true} }

func (a AutoUpdate) MarshalJSON() ([]byte, error) {
	if a.notify {
		return []byte(`"notify"`), nil
	}
	return marshal(a.enabled)
}

func (a *AutoUpdate) UnmarshalJSON(data []byte) error {
	if firstByte(data) == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s != "notify" {
			return fmt.Errorf("autoupdate: unknown value %q", s)
		}
		*a = AutoUpdateNotify()
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("autoupdate: %w", err)
	}
	*a = AutoUpdateEnabled(b)
	return nil
}

// PermissionRule applies one action to every use of a tool, or one action
// per command pattern.
type PermissionRule struct {
	action   PermissionAction
	patterns map[string]PermissionAction
}

// Simple applies action to every use of the tool.
func Simple(action PermissionAction) PermissionRule {
	return PermissionRule{action: action}
}

// Patterns applies an action per pattern. An empty map is kept and renders
// as {}.
func Patterns(patterns map[string]PermissionAction) PermissionRule {
	p := make(map[string]PermissionAction, len(patterns))
	maps.Copy(p, patterns)
	return PermissionRule{patterns: p}
}

func (r PermissionRule) MarshalJSON() ([]byte, error) {
	if r.patterns != nil {
		return marshal(r.patterns)
	}
	return marshal(r.action)
}

func (r *PermissionRule) UnmarshalJSON(data []byte) error {
	if firstByte(data) == '{' {
		var m map[string]PermissionAction
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		*r = Patterns(m)
		return nil
	}
	var a PermissionAction
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = Simple(a)
	return nil
}

// Permission is either one action for every tool or per-tool rules.
type Permission struct {
	action   PermissionAction
	detailed *PermissionDetailed
}

// SimplePermission applies action to every tool.
func SimplePermission(action PermissionAction) Permission {
	return Permission{action: action}
}

// DetailedPermission sets rules per tool.
func DetailedPermission(d PermissionDetailed) Permission {
	return Permission{detailed: &d}
}

// Detailed returns the per-tool rules, or nil for a simple permission.
func (p Permission) Detailed() *PermissionDetailed { return p.detailed }

func (p Permission) MarshalJSON() ([]byte, error) {
	if p.detailed != nil {
		return marshal(p.detailed)
	}
	return marshal(p.action)
}

func (p *Permission) UnmarshalJSON(data []byte) error {
	if firstByte(data) == '{' {
		var d PermissionDetailed
		if err := json.Unmarshal(data, &d); err != nil {
			return err
		}
		*p = DetailedPermission(d)
		return nil
	}
	var a PermissionAction
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = SimplePermission(a)
	return nil
}

// Timeout is a duration in milliseconds, or false to disable it.
type Timeout struct {
	millis   int
	disabled bool
}

func TimeoutMillis(ms int) Timeout { return Timeout{millis: ms} }

func TimeoutDisabled() Timeout { return Timeout{disabled: true} }

func (t Timeout) MarshalJSON() ([]byte, error) {
	if t.disabled {
		return []byte("false"), nil
	}
	return marshal(t.millis)
}

func (t *Timeout) UnmarshalJSON(data []byte) error {
	if c := firstByte(data); c == 'f' || c == 't' {
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		if b {
			return fmt.Errorf("timeout: true is not a valid value")
		}
		*t = TimeoutDisabled()
		return nil
	}
	var ms int
	if err := json.Unmarshal(data, &ms); err != nil {
		return fmt.Errorf("timeout: %w", err)
	}
	*t = TimeoutMillis(ms)
	return nil
}

// MCPServer is a local or remote MCP server.
type MCPServer struct {
	local  *MCPLocal
	remote *MCPRemote
}

// LocalMCP runs an MCP server as a subprocess.
func LocalMCP(cfg MCPLocal) MCPServer { return MCPServer{local: &cfg} }

// RemoteMCP connects to an MCP server over HTTP.
func RemoteMCP(cfg MCPRemote) MCPServer { return MCPServer{remote: &cfg} }

// Local returns the local config, or nil for a remote server.
func (s MCPServer) Local() *MCPLocal { return s.local }

// Remote returns the remote config, or nil for a local server.
func (s MCPServer) Remote() *MCPRemote { return s.remote }

func (s MCPServer) MarshalJSON() ([]byte, error) {
	switch {
	case s.local != nil:
		return marshal(struct {
			Type string `json:"type"`
			*MCPLocal
		}{"local", s.local})
	case s.remote != nil:
		return marshal(struct {
			Type string `json:"type"`
			*MCPRemote
		}{"remote", s.remote})
	}
	return nil, fmt.Errorf("mcp server has neither a local nor a remote config")
}

func (s *MCPServer) UnmarshalJSON(data []byte) error {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	switch head.Type {
	case "local":
		var cfg MCPLocal
		if err := json.Unmarshal(data, &cfg); err != nil {
			return err
		}
		*s = LocalMCP(cfg)
	case "remote":
		var cfg MCPRemote
		if err := json.Unmarshal(data, &cfg); err != nil {
			return err
		}
		*s = RemoteMCP(cfg)
	default:
		return fmt.Errorf("mcp server: unknown type %q", head.Type)
	}
	return nil
}

// FormatterSettings is a map of formatters, or false to turn formatting off.
type FormatterSettings struct {
	disabled   bool
	formatters map[string]Formatter
}

// Formatters enables formatting with the given formatters.
func Formatters(formatters map[string]Formatter) FormatterSettings {
	f := make(map[string]Formatter, len(formatters))
	maps.Copy(f, formatters)
	return FormatterSettings{formatters: f}
}

func FormatterDisabled() FormatterSettings { return FormatterSettings{disabled: true} }

// Disabled reports whether formatting is turned off.
func (f FormatterSettings) Disabled() bool { return f.disabled }

func (f FormatterSettings) MarshalJSON() ([]byte, error) {
	if f.disabled {
		return []byte("false"), nil
	}
	if f.formatters == nil {
		return []byte("{}"), nil
	}
	return marshal(f.formatters)
}

func (f *FormatterSettings) UnmarshalJSON(data []byte) error {
	if firstByte(data) == '{' {
		var m map[string]Formatter
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		*f = Formatters(m)
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("formatter: %w", err)
	}
	if b {
		return fmt.Errorf("formatter: true is not a valid value")
	}
	*f = FormatterDisabled()
	return nil
}

// LSPSettings is a map of language servers, or false to turn LSP off.
type LSPSettings struct {
	disabled bool
	servers  map[string]LSPServer
}

// LSPServers enables LSP with the given servers.
func LSPServers(servers map[string]LSPServer) LSPSettings {
	s := make(map[string]LSPServer, len(servers))
	maps.Copy(s, servers)
	return LSPSettings{servers: s}
}

func LSPDisabled() LSPSettings { return LSPSettings{disabled: true} }

// Disabled reports whether LSP is turned off.
func (l LSPSettings) Disabled() bool { return l.disabled }

func (l LSPSettings) MarshalJSON() ([]byte, error) {
	if l.disabled {
		return []byte("false"), nil
	}
	if l.servers == nil {
		return []byte("{}"), nil
	}
	return marshal(l.servers)
}

func (l *LSPSettings) UnmarshalJSON(data []byte) error {
	if firstByte(data) == '{' {
		var m map[string]LSPServer
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		*l = LSPServers(m)
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("lsp: %w", err)
	}
	if b {
		return fmt.Errorf("lsp: true is not a valid value")
	}
	*l = LSPDisabled()
	return nil
}
