package syntax

import (
	"regexp"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// Negator produces the logical negation of a condition text. The syntax of
// negation depends on the deployment, so it is pluggable.
type Negator interface {
	Negate(cond string) string
}

var notPrefix = regexp.MustCompile(`(?i)^not\s*\(`)

// LogicalNegator negates by wrapping the whole condition with the not
// operator and unwraps an existing outer negation instead of stacking
type LogicalNegator struct {
	Not string
}

// NewLogicalNegator creates a negator using the operator from k
func NewLogicalNegator(k Keywords) *LogicalNegator {
	return &LogicalNegator{Not: k.withDefaults().Not}
}

// Negate implements Negator
func (n *LogicalNegator) Negate(cond string) string {
	not := n.Not
	if not == "" {
		not = "not"
	}
	cond = strings.TrimSpace(cond)
	if cond == "" {
		return cond
	}

	if inner, ok := unwrapNot(cond, not); ok {
		return inner
	}
	if IsIdentifier(cond) || isParenthesized(cond) {
		return not + " " + cond
	}
	return not + " (" + cond + ")"
}

// unwrapNot returns X for "not (X)", "not X" with X atomic, and "!(X)"
func unwrapNot(cond, not string) (string, bool) {
	lower := strings.ToLower(cond)
	notLower := strings.ToLower(not)

	switch {
	case strings.HasPrefix(cond, "!"):
		rest := strings.TrimSpace(cond[1:])
		if isParenthesized(rest) {
			return strings.TrimSpace(rest[1 : len(rest)-1]), true
		}
		if IsIdentifier(rest) {
			return rest, true
		}
	case strings.HasPrefix(lower, notLower):
		rest := strings.TrimSpace(cond[len(not):])
		if rest == cond[len(not):] && !notPrefix.MatchString(cond) {
			// "nothing" must not be read as "not hing"
			return "", false
		}
		if isParenthesized(rest) {
			return strings.TrimSpace(rest[1 : len(rest)-1]), true
		}
		if IsIdentifier(rest) {
			return rest, true
		}
	}
	return "", false
}

// isParenthesized reports whether s is enclosed by one matching pair of
// parentheses
func isParenthesized(s string) bool {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return false
	}
	depth := 0
	inString := byte(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString != 0 {
			if c == inString {
				inString = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			inString = c
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i < len(s)-1 {
				return false
			}
		}
	}
	return depth == 0
}

// ExprNegator parses the condition as an expression and negates its syntax
// tree: a top-level negation is removed, anything else is wrapped. Texts
// the expression grammar cannot parse are handed to Fallback.
type ExprNegator struct {
	Fallback Negator
}

// NewExprNegator creates an expression-aware negator falling back to the
// logical negator configured by k
func NewExprNegator(k Keywords) *ExprNegator {
	return &ExprNegator{Fallback: NewLogicalNegator(k)}
}

// Negate implements Negator
func (n *ExprNegator) Negate(cond string) string {
	tree, err := parser.Parse(cond)
	if err != nil || tree == nil || tree.Node == nil {
		return n.fallback().Negate(cond)
	}

	switch node := tree.Node.(type) {
	case *ast.UnaryNode:
		if node.Operator == "not" || node.Operator == "!" {
			return node.Node.String()
		}
	case *ast.IdentifierNode:
		return "not " + node.Value
	case *ast.BoolNode:
		if node.Value {
			return "false"
		}
		return "true"
	}
	return "not (" + tree.Node.String() + ")"
}

func (n *ExprNegator) fallback() Negator {
	if n.Fallback == nil {
		return &LogicalNegator{Not: "not"}
	}
	return n.Fallback
}
