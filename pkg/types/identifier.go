package types

import "unicode"

// IsIdentifier reports whether s can be used as a tool or agent name: a
// letter or underscore followed by letters, digits or underscores
func IsIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
			continue
		case i > 0 && unicode.IsDigit(r):
			continue
		default:
			return false
		}
	}
	return s != ""
}
