package syntax

import (
	"regexp"
	"strings"
)

var (
	identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	callRegex       = regexp.MustCompile(`^\s*(?:[A-Za-z_]\w*\s*(?::=|<-)\s*)?[A-Za-z_][\w.]*\s*\(.*\)\s*$`)
)

// StatementKind classifies a single instruction line
type StatementKind int

const (
	StatementPlain StatementKind = iota
	StatementCall
	StatementJump
)

// IsIdentifier reports whether s is a bare variable name
func IsIdentifier(s string) bool {
	return identifierRegex.MatchString(strings.TrimSpace(s))
}

// IsJump reports whether the line starts with one of the jump keywords
func IsJump(line string, k Keywords) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	first := strings.ToLower(strings.Fields(line)[0])
	for _, kw := range []string{k.PreLeave, k.PreReturn, k.PreExit, k.PreThrow} {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && first == kw {
			return true
		}
	}
	return false
}

// IsCall reports whether the line is a procedure call, optionally assigning
// its result ("foo(x)" or "y := foo(x)")
func IsCall(line string, k Keywords) bool {
	if IsJump(line, k) || !callRegex.MatchString(line) {
		return false
	}
	// input/output statements are plain instructions
	first := strings.ToLower(strings.TrimSpace(line))
	for _, kw := range []string{k.Input, k.Output} {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.HasPrefix(first, kw) {
			return false
		}
	}
	return true
}

// Classify determines which statement kind a single line represents
func Classify(line string, k Keywords) StatementKind {
	switch {
	case IsJump(line, k):
		return StatementJump
	case IsCall(line, k):
		return StatementCall
	default:
		return StatementPlain
	}
}
