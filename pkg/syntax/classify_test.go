package syntax

import (
	"testing"
)

func TestClassify(t *testing.T) {
	k := DefaultKeywords()
	tests := []struct {
		line string
		want StatementKind
	}{
		{"x := 1", StatementPlain},
		{"foo(x)", StatementCall},
		{"y := compute(a, b)", StatementCall},
		{"obj.method()", StatementCall},
		{"OUTPUT(x)", StatementPlain},
		{"INPUT n", StatementPlain},
		{"leave", StatementJump},
		{"return sum", StatementJump},
		{"Exit 1", StatementJump},
		{"throw error(\"bad\")", StatementJump},
		{"leaves := 3", StatementPlain},
		{"", StatementPlain},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := Classify(tt.line, k); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestIsIdentifier(t *testing.T) {
	for _, s := range []string{"x", "_tmp", "done2", " padded "} {
		if !IsIdentifier(s) {
			t.Errorf("Expected %q to be an identifier", s)
		}
	}
	for _, s := range []string{"", "2x", "a b", "a.b", "f()"} {
		if IsIdentifier(s) {
			t.Errorf("Expected %q not to be an identifier", s)
		}
	}
}

func TestIsJump_CustomKeywords(t *testing.T) {
	k := Keywords{PreLeave: "break"}
	if !IsJump("BREAK", k) {
		t.Error("Expected case-insensitive jump keyword")
	}
	if IsJump("leave", k) {
		t.Error("Expected unconfigured keyword not to be a jump")
	}
}
