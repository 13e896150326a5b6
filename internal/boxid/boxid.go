// Package boxid derives display identities for boxes from their
// classification attributes. Derivation is pure and deterministic; it never
// fails, but it can produce empty components (input made entirely of special
// characters), which the store rejects at insertion time.
package boxid

import "strings"

// Sanitize normalizes a single identity component. Characters outside
// [A-Za-z0-9_-] are replaced with underscores, runs of underscores are
// collapsed, and leading/trailing underscores are trimmed.
//
// Different raw inputs may sanitize to the same component ("A/B" and "A B"
// both become "A_B"). Uniqueness of the derived identity is enforced by the
// store, not here.
func Sanitize(component string) string {
	var b strings.Builder
	b.Grow(len(component))

	lastUnderscore := false
	for _, r := range strings.TrimSpace(component) {
		ok := r == '-' || r == '_' ||
			(r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if ok && r != '_' {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	return strings.Trim(b.String(), "_")
}

// Derive builds a box's display identity from its hardware type, lot number
// and box number, joining the sanitized components with underscores.
func Derive(typeName, lotName, boxNumber string) string {
	return Sanitize(typeName) + "_" + Sanitize(lotName) + "_" + Sanitize(boxNumber)
}
