// Package slugify derives URL-safe identifiers from display names.
package slugify

import "strings"

// Make lowercases the name and collapses every run of non-alphanumeric
// characters into a single '-'. The result is deterministic: the same
// name always yields the same slug.
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastDash := true // suppress a leading dash
	for _, r := range strings.ToLower(name) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if isAlnum {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
