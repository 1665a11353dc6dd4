package file

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"mvdan.cc/sh/v3/syntax"
)

var createScript = template.Must(template.New("create").Option("missingkey=error").Parse(`#!/bin/bash
set -euo pipefail

cat << '{{ .delimiter }}' > $VORPAL_OUTPUT/{{ .name }}
{{ .content }}
{{ .delimiter }}

chmod {{ .mode }} $VORPAL_OUTPUT/{{ .name }}
`))

var sourceScript = template.Must(template.New("source").Option("missingkey=error").Parse(`#!/bin/bash
set -euo pipefail

mkdir -pv $VORPAL_OUTPUT
cp -rv ./source/{{ .name }}/. $VORPAL_OUTPUT/
`))

// render executes tmpl with vars and checks that the result parses as bash.
func render(tmpl *template.Template, vars map[string]string) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("executing %s script template: %w", tmpl.Name(), err)
	}

	script := buf.String()
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	if _, err := parser.Parse(strings.NewReader(script), tmpl.Name()); err != nil {
		return "", fmt.Errorf("parsing %s script: %w", tmpl.Name(), err)
	}
	return script, nil
}

// quoteName quotes an artifact name for use as a path component.
func quoteName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("name is required")
	}
	if strings.ContainsRune(name, '/') {
		return "", fmt.Errorf("name '%s' must not contain '/'", name)
	}
	quoted, err := syntax.Quote(name, syntax.LangBash)
	if err != nil {
		return "", fmt.Errorf("quoting name '%s': %w", name, err)
	}
	return quoted, nil
}

// delimiter picks a heredoc terminator that no line of content equals.
func delimiter(content string) string {
	lines := make(map[string]bool)
	for _, line := range strings.Split(content, "\n") {
		lines[line] = true
	}
	delim := "EOF"
	for i := 1; lines[delim]; i++ {
		delim = fmt.Sprintf("EOF_%d", i)
	}
	return delim
}
