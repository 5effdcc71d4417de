package syntax

import (
	"regexp"
	"strconv"
	"strings"
)

// CountingLoop is the parsed header of a counting for-loop
type CountingLoop struct {
	Var   string
	Start string
	End   string
	Step  int
}

func keywordPattern(kw string) string {
	kw = strings.TrimSpace(kw)
	if kw == "" {
		return ""
	}
	return regexp.QuoteMeta(kw) + `\s+`
}

func countingPattern(k Keywords) *regexp.Regexp {
	post := regexp.QuoteMeta(strings.TrimSpace(k.PostFor))
	stepClause := `()`
	if step := strings.TrimSpace(k.StepFor); step != "" {
		stepClause = `(?:\s+` + regexp.QuoteMeta(step) + `\s+([+-]?\s*\S+))?`
	}
	pattern := `(?i)^\s*` + keywordPattern(k.PreFor) +
		`([A-Za-z_]\w*)\s*(?::=|<-|=)\s*(.+?)\s+` + post + `\s+(.+?)` +
		stepClause + `\s*$`
	return regexp.MustCompile(pattern)
}

// ParseCountingLoop parses a header such as "for i := 1 to n step 2".
// It reports false for collection loops and texts that do not match.
func ParseCountingLoop(header string, k Keywords) (CountingLoop, bool) {
	if strings.TrimSpace(k.PostFor) == "" || IsForIn(header, k) {
		return CountingLoop{}, false
	}
	m := countingPattern(k).FindStringSubmatch(header)
	if m == nil {
		return CountingLoop{}, false
	}
	loop := CountingLoop{
		Var:   m[1],
		Start: strings.TrimSpace(m[2]),
		End:   strings.TrimSpace(m[3]),
		Step:  1,
	}
	// only literal steps can be decomposed; "to n step k" must not leave
	// the step clause inside the end expression
	if stepKw := strings.TrimSpace(k.StepFor); stepKw != "" && containsWord(loop.End, stepKw) {
		return CountingLoop{}, false
	}
	if m[4] != "" {
		step, err := strconv.Atoi(strings.ReplaceAll(m[4], " ", ""))
		if err != nil {
			return CountingLoop{}, false
		}
		loop.Step = step
	}
	return loop, true
}

func containsWord(text, word string) bool {
	return regexp.MustCompile(`(?i)(^|\s)` + regexp.QuoteMeta(word) + `(\s|$)`).MatchString(text)
}

// IsForIn reports whether a loop header iterates over a collection
func IsForIn(header string, k Keywords) bool {
	pre := strings.TrimSpace(k.PreForIn)
	post := strings.TrimSpace(k.PostForIn)
	if post == "" {
		return false
	}
	pattern := `(?i)^\s*` + keywordPattern(pre) + `[A-Za-z_]\w*\s+` + regexp.QuoteMeta(post) + `\s+.+$`
	if pre == "" || strings.EqualFold(pre, strings.TrimSpace(k.PreFor)) {
		return regexp.MustCompile(pattern).MatchString(header) && !strings.Contains(header, ":=")
	}
	return regexp.MustCompile(pattern).MatchString(header)
}

// InitText returns the initialization assignment, e.g. "i := 0"
func (l CountingLoop) InitText(k Keywords) string {
	return l.Var + " " + k.withDefaults().Assign + " " + l.Start
}

// Comparison returns "<=" for non-negative steps and ">=" otherwise
func (l CountingLoop) Comparison() string {
	if l.Step < 0 {
		return ">="
	}
	return "<="
}

// ConditionText returns the loop-continuation condition, e.g. "i <= 9"
func (l CountingLoop) ConditionText() string {
	return l.Var + " " + l.Comparison() + " " + l.End
}

// IncrementText returns the counter update, e.g. "i := i + 1"
func (l CountingLoop) IncrementText(k Keywords) string {
	op, step := "+", l.Step
	if step < 0 {
		op, step = "-", -step
	}
	return l.Var + " " + k.withDefaults().Assign + " " + l.Var + " " + op + " " + strconv.Itoa(step)
}

// WhileText returns a while-loop header for the given condition
func WhileText(cond string, k Keywords) string {
	text := cond
	if pre := strings.TrimSpace(k.PreWhile); pre != "" {
		text = pre + " " + text
	}
	if post := strings.TrimSpace(k.PostWhile); post != "" {
		text = text + " " + post
	}
	return text
}

// StripAltKeywords removes the configured prefix and postfix keywords of a
// binary alternative from its condition
func StripAltKeywords(cond string, k Keywords) string {
	return stripAffixes(cond, k.PreAlt, k.PostAlt)
}

// AltText wraps a bare condition with the configured alternative keywords
func AltText(cond string, k Keywords) string {
	text := cond
	if pre := strings.TrimSpace(k.PreAlt); pre != "" {
		text = pre + " " + text
	}
	if post := strings.TrimSpace(k.PostAlt); post != "" {
		text = text + " " + post
	}
	return text
}

// StripCaseKeywords removes the configured case keywords from a selector
func StripCaseKeywords(selector string, k Keywords) string {
	return stripAffixes(selector, k.PreCase, k.PostCase)
}

func stripAffixes(text, pre, post string) string {
	text = strings.TrimSpace(text)
	pre = strings.TrimSpace(pre)
	post = strings.TrimSpace(post)
	lower := strings.ToLower(text)
	if pre != "" && strings.HasPrefix(lower, strings.ToLower(pre)+" ") {
		text = strings.TrimSpace(text[len(pre):])
		lower = strings.ToLower(text)
	}
	if post != "" && strings.HasSuffix(lower, " "+strings.ToLower(post)) {
		text = strings.TrimSpace(text[:len(text)-len(post)])
	}
	return text
}
