package syntax

import (
	"testing"
)

func TestParseCountingLoop(t *testing.T) {
	k := DefaultKeywords()
	tests := []struct {
		header string
		want   CountingLoop
		ok     bool
	}{
		{"for i := 1 to 10", CountingLoop{Var: "i", Start: "1", End: "10", Step: 1}, true},
		{"FOR k <- 0 TO n - 1", CountingLoop{Var: "k", Start: "0", End: "n - 1", Step: 1}, true},
		{"for i := 10 to 1 step -2", CountingLoop{Var: "i", Start: "10", End: "1", Step: -2}, true},
		{"for j = a to b step 3", CountingLoop{Var: "j", Start: "a", End: "b", Step: 3}, true},
		{"foreach x in list", CountingLoop{}, false},
		{"while x < 3", CountingLoop{}, false},
		{"for i := 1", CountingLoop{}, false},
		{"for i = 0 to 9 step 1", CountingLoop{Var: "i", Start: "0", End: "9", Step: 1}, true},
		{"for i := 5 to 5 step 0", CountingLoop{Var: "i", Start: "5", End: "5", Step: 0}, true},
		{"for i := 9 to 0 step - 3", CountingLoop{Var: "i", Start: "9", End: "0", Step: -3}, true},
		{"for i := 1 to n step k", CountingLoop{}, false},
		{"for i := 1 to n step k + 1", CountingLoop{}, false},
		{"for i := 1 to n STEP 2.5", CountingLoop{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, ok := ParseCountingLoop(tt.header, k)
			if ok != tt.ok {
				t.Fatalf("ParseCountingLoop(%q) ok = %v, want %v", tt.header, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ParseCountingLoop(%q) = %+v, want %+v", tt.header, got, tt.want)
			}
		})
	}
}

func TestParseCountingLoop_NoPostKeyword(t *testing.T) {
	k := DefaultKeywords()
	k.PostFor = ""
	if _, ok := ParseCountingLoop("for i := 1 to 10", k); ok {
		t.Error("Expected no counting loop without a post keyword")
	}
}

func TestCountingLoop_Texts(t *testing.T) {
	k := DefaultKeywords()
	up := CountingLoop{Var: "i", Start: "1", End: "n", Step: 1}
	if got := up.InitText(k); got != "i := 1" {
		t.Errorf("InitText = %q", got)
	}
	if got := up.ConditionText(); got != "i <= n" {
		t.Errorf("ConditionText = %q", got)
	}
	if got := up.IncrementText(k); got != "i := i + 1" {
		t.Errorf("IncrementText = %q", got)
	}

	down := CountingLoop{Var: "i", Start: "10", End: "1", Step: -2}
	if got := down.ConditionText(); got != "i >= 1" {
		t.Errorf("ConditionText = %q", got)
	}
	if got := down.IncrementText(Keywords{}); got != "i := i - 2" {
		t.Errorf("IncrementText with empty keywords = %q", got)
	}

	if got := WhileText("i <= n", k); got != "while i <= n" {
		t.Errorf("WhileText = %q", got)
	}
	k.PreWhile, k.PostWhile = "do while", "loop"
	if got := WhileText("x", k); got != "do while x loop" {
		t.Errorf("WhileText with postfix = %q", got)
	}
}

func TestIsForIn(t *testing.T) {
	k := DefaultKeywords()
	if !IsForIn("foreach item in items", k) {
		t.Error("Expected collection loop")
	}
	if IsForIn("for i := 1 to 3", k) {
		t.Error("Expected counting loop not to be a collection loop")
	}

	// shared prefix keyword
	k.PreForIn = "for"
	if !IsForIn("for x in xs", k) {
		t.Error("Expected collection loop with shared prefix")
	}
	if IsForIn("for x := in to 3", k) {
		t.Error("Expected assignment to rule out a collection loop")
	}
}

func TestAltAndCaseKeywords(t *testing.T) {
	k := Keywords{PreAlt: "if", PostAlt: "then", PreCase: "case", PostCase: "of"}

	if got := StripAltKeywords("IF x > 1 THEN", k); got != "x > 1" {
		t.Errorf("StripAltKeywords = %q", got)
	}
	if got := StripAltKeywords("iffy", k); got != "iffy" {
		t.Errorf("Expected keyword only as a whole word, got %q", got)
	}
	if got := AltText("x > 1", k); got != "if x > 1 then" {
		t.Errorf("AltText = %q", got)
	}
	if got := StripCaseKeywords("case color of", k); got != "color" {
		t.Errorf("StripCaseKeywords = %q", got)
	}
	if got := StripAltKeywords("  x  ", DefaultKeywords()); got != "x" {
		t.Errorf("Expected trimmed condition, got %q", got)
	}
}
