package file

import "strings"

// Lines accumulates file content one line at a time.
type Lines struct {
	lines []string
}

// WithLine appends a line.
func (l *Lines) WithLine(line string) *Lines {
	l.lines = append(l.lines, line)
	return l
}

// String joins the lines with newlines, without a trailing newline.
func (l *Lines) String() string {
	return strings.Join(l.lines, "\n")
}
