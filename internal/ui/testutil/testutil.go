// Package testutil provides helpers for asserting on rendered views.
package testutil

import (
	"regexp"
	"strings"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes ANSI escape codes so rendered output can be compared
// without style interference.
func StripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

// Lines strips styling from a rendered view and splits it into lines,
// dropping trailing blank lines.
func Lines(view string) []string {
	lines := strings.Split(StripANSI(view), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// FindLine returns the first unstyled line containing substr, or empty string.
func FindLine(view, substr string) string {
	for _, line := range Lines(view) {
		if strings.Contains(line, substr) {
			return line
		}
	}
	return ""
}

// LineIndex returns the index of the first unstyled line containing substr,
// or -1.
func LineIndex(view, substr string) int {
	for i, line := range Lines(view) {
		if strings.Contains(line, substr) {
			return i
		}
	}
	return -1
}
