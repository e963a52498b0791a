package domain

import "strings"

// IsStorableName reports whether name can be used as an artifact file name
// inside a deployment context: non-empty, not hidden, no path separators.
func IsStorableName(name string) bool {
	return name != "" && !strings.HasPrefix(name, ".") && !strings.ContainsAny(name, `/\`)
}
