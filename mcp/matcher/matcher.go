// Package matcher implements the pattern semantics used to select which
// tools the service exposes: "*" for all, otherwise a name prefix.
package matcher

import "strings"

// Match reports whether name satisfies pattern using common CLI semantics
// adopted across the project.
func Match(pattern, name string) bool {
	if pattern == "*" {
		return true
	}
	if pattern == "" {
		return false
	}
	return strings.HasPrefix(name, pattern)
}

// Selected reports whether name satisfies any of the patterns. An empty
// pattern list selects nothing.
func Selected(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if Match(pattern, name) {
			return true
		}
	}
	return false
}
