package syntax

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Refactorer rewrites texts written under one set of keywords so they
// read correctly under another
type Refactorer struct {
	rules []refactorRule
}

type refactorRule struct {
	pattern     *regexp.Regexp
	placeholder string
	replacement string
}

// NewRefactorer prepares the rewrite from the stored keyword map to the
// target keywords. Keys whose values agree are left alone.
func NewRefactorer(from map[string]string, to Keywords) *Refactorer {
	target := to.Map()
	names := make([]string, 0, len(from))
	for name := range from {
		names = append(names, name)
	}
	sort.Strings(names)

	r := &Refactorer{}
	for i, name := range names {
		old := strings.TrimSpace(from[name])
		repl, known := target[name]
		if !known || old == "" || strings.EqualFold(old, strings.TrimSpace(repl)) {
			continue
		}
		r.rules = append(r.rules, refactorRule{
			pattern:     wordPattern(old),
			placeholder: fmt.Sprintf("\x00%d\x00", i),
			replacement: strings.TrimSpace(repl),
		})
	}
	return r
}

// Empty reports whether the refactorer would change nothing
func (r *Refactorer) Empty() bool {
	return len(r.rules) == 0
}

// Lines rewrites every line. Replacement happens in two passes through
// placeholders so that swapped keywords do not collide.
func (r *Refactorer) Lines(lines []string) []string {
	if r.Empty() || len(lines) == 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		for _, rule := range r.rules {
			line = rule.pattern.ReplaceAllString(line, "${1}"+rule.placeholder+"${2}")
		}
		for _, rule := range r.rules {
			line = strings.ReplaceAll(line, rule.placeholder, rule.replacement)
		}
		out[i] = line
	}
	return out
}

// wordPattern matches kw as a whole word, case-insensitively. Group 1 and 2
// capture the surrounding delimiters.
func wordPattern(kw string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(kw)
	left, right := `()`, `()`
	runes := []rune(kw)
	if isWordRune(runes[0]) {
		left = `(^|[^\w])`
	}
	if isWordRune(runes[len(runes)-1]) {
		right = `($|[^\w])`
	}
	return regexp.MustCompile(`(?i)` + left + quoted + right)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
