// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package robot

import (
	"fmt"
	"strings"
)

// DefaultPreviewLength bounds the stdout/stderr previews stored in a
// ToolError.
const DefaultPreviewLength = 500

// truncMarker terminates a preview that was cut at the bound.
const truncMarker = " [...]"

// Placeholders stored when a stream was empty or unavailable.
const (
	noStdout = "<no stdout>"
	noStderr = "<no stderr>"
)

// ToolError reports a ROBOT invocation that exited non-zero. Command is
// the full token list as invoked (launcher included) and ReturnCode the
// process exit status. Stdout and Stderr hold bounded previews of the
// captured streams, never the full output.
type ToolError struct {
	Command    []string
	ReturnCode int
	Stdout     string
	Stderr     string
}

// newToolError builds a ToolError, truncating each stream independently
// to previewLen characters. A previewLen of zero or less means
// DefaultPreviewLength.
func newToolError(command []string, returnCode int, stdout, stderr string, previewLen int) *ToolError {
	if previewLen <= 0 {
		previewLen = DefaultPreviewLength
	}
	e := &ToolError{
		Command:    command,
		ReturnCode: returnCode,
		Stdout:     noStdout,
		Stderr:     noStderr,
	}
	if stdout != "" {
		e.Stdout = preview(stdout, previewLen)
	}
	if stderr != "" {
		e.Stderr = preview(stderr, previewLen)
	}
	return e
}

func (e *ToolError) Error() string {
	return fmt.Sprintf(
		"command `%s` returned non-zero exit status %d\n\nstderr:\n\n%s\n\nstdout:\n\n%s",
		strings.Join(e.Command, " "), e.ReturnCode, indent(e.Stderr), indent(e.Stdout),
	)
}

// preview returns s unchanged when it fits within n characters.
// Otherwise it cuts at the last word boundary before n and appends the
// truncation marker, so the result never exceeds n plus the marker.
func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := s[:n]
	if i := strings.LastIndexAny(cut, " \t\n"); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " \t\n") + truncMarker
}

// indent prefixes every line of s with two spaces.
func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
