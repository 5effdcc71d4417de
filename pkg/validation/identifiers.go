package validation

import "unicode/utf8"

// MaxNameLength is the longest accepted diagram name
const MaxNameLength = 64

// IsValidIdentifierChar checks if a character is valid for identifiers
// (alphanumeric, hyphen, or underscore).
func IsValidIdentifierChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '-' || ch == '_'
}

// IsValidDiagramName reports whether name can be used as a diagram name
// and file stem: it starts with a letter, holds only identifier characters
// and is at most MaxNameLength long.
func IsValidDiagramName(name string) bool {
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return false
	}
	first := name[0]
	if !(first >= 'a' && first <= 'z') && !(first >= 'A' && first <= 'Z') {
		return false
	}
	for _, ch := range name {
		if !IsValidIdentifierChar(ch) {
			return false
		}
	}
	return true
}
