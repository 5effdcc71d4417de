package diagram

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func sampleRoot() *Root {
	c := NewCase([]string{"x", "1", "2", "default"},
		NewSubqueue(NewInstruction("y := 1")),
		NewSubqueue(NewInstruction("y := 2")),
		nil)
	c.BranchOrder = []int{1, 0}

	call := NewCall("report(sum)")
	call.Breakpoint = true
	call.BreakTriggerCount = 3
	call.Comment = []string{"prints", "the sum"}
	call.Color = "#ffcc00"

	root := NewRoot("sample(n)",
		NewInstruction("INPUT n", "sum := 0"),
		NewFor("for i := 1 to n", NewSubqueue(NewInstruction("sum := sum + i"))),
		NewAlternative("sum > 10", NewSubqueue(call), nil),
		c,
		NewTry("e", nil, NewSubqueue(NewJump("throw e")), nil),
		NewParallel(nil, nil, nil),
	)
	root.Author = "ada"
	root.Type = TypeSubroutine
	root.StoredKeywords = map[string]string{"pre_for": "for", "post_for": "to"}
	return root
}

func assertSameTree(t *testing.T, want, got *Root) {
	t.Helper()
	if got.ID != want.ID {
		t.Errorf("Expected root ID %s, got %s", want.ID, got.ID)
	}
	if got.Count() != want.Count() {
		t.Fatalf("Expected %d elements, got %d", want.Count(), got.Count())
	}
	if got.Author != want.Author || got.Type != want.Type {
		t.Errorf("Expected author %q type %s, got %q %s", want.Author, want.Type, got.Author, got.Type)
	}
	if !reflect.DeepEqual(got.StoredKeywords, want.StoredKeywords) {
		t.Errorf("Expected keywords %v, got %v", want.StoredKeywords, got.StoredKeywords)
	}
	if err := Validate(got); err != nil {
		t.Errorf("Decoded diagram is invalid: %v", err)
	}

	want.Node().Walk(func(e *Element) bool {
		if e.Kind == KindSubqueue || e.Kind == KindRoot {
			return true
		}
		g := got.Node().Find(e.ID)
		if g == nil {
			t.Errorf("Element %s (%s) lost", e.ID, e.Kind)
			return true
		}
		if g.Kind != e.Kind || !reflect.DeepEqual(g.Text, e.Text) || g.Len() != e.Len() {
			t.Errorf("Element %s changed: %v %v", e.ID, g.Kind, g.Text)
		}
		if g.Breakpoint != e.Breakpoint || g.BreakTriggerCount != e.BreakTriggerCount || g.Color != e.Color {
			t.Errorf("Element %s lost attributes", e.ID)
		}
		if len(e.Comment) > 0 && !reflect.DeepEqual(g.Comment, e.Comment) {
			t.Errorf("Element %s lost comment: %v", e.ID, g.Comment)
		}
		if !reflect.DeepEqual(g.BranchOrder, e.BranchOrder) {
			t.Errorf("Element %s lost branch order: %v", e.ID, g.BranchOrder)
		}
		return true
	})
}

func TestYAML_RoundTrip(t *testing.T) {
	root := sampleRoot()
	data, err := Marshal(root)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	assertSameTree(t, root, got)
}

func TestParseAll_MultipleDocuments(t *testing.T) {
	a, _ := Marshal(NewRoot("a", NewInstruction("x")))
	b, _ := Marshal(NewRoot("b"))
	stream := string(a) + "---\n" + string(b)

	roots, err := ParseAll([]byte(stream))
	if err != nil {
		t.Fatalf("ParseAll failed: %v", err)
	}
	if len(roots) != 2 {
		t.Fatalf("Expected 2 diagrams, got %d", len(roots))
	}
	if roots[0].Name() != "a" || roots[1].Name() != "b" {
		t.Errorf("Unexpected names %q, %q", roots[0].Name(), roots[1].Name())
	}
	if roots[0].Main().Len() != 1 || roots[1].Main().Len() != 0 {
		t.Error("Unexpected bodies")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", ""},
		{"missing version", "text: [x]\nbody: []\n"},
		{"unknown type", "version: \"1.0\"\ntext: [x]\nbody:\n  - type: goto\n"},
		{"nested subqueue", "version: \"1.0\"\ntext: [x]\nbody:\n  - type: subqueue\n"},
		{"leaf with queues", "version: \"1.0\"\ntext: [x]\nbody:\n  - type: instruction\n    queues:\n      - elements: []\n"},
		{"malformed", "version: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("Expected parse error")
			}
		})
	}
}

func TestParse_PadsMissingQueues(t *testing.T) {
	src := `version: "1.0"
text: [p]
body:
  - type: alternative
    text: [c]
  - type: while
    text: [while x]
`
	root, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if root.Main().Child(0).Len() != 2 || root.Main().Child(1).Len() != 1 {
		t.Error("Expected missing queues to be created empty")
	}
	if err := Validate(root); err != nil {
		t.Errorf("Expected valid diagram, got %v", err)
	}
}

func TestXML_RoundTrip(t *testing.T) {
	root := sampleRoot()
	data, err := EncodeXML(root)
	if err != nil {
		t.Fatalf("EncodeXML failed: %v", err)
	}
	if !strings.HasPrefix(string(data), "<?xml") {
		t.Error("Expected XML header")
	}
	got, err := DecodeXML(data)
	if err != nil {
		t.Fatalf("DecodeXML failed: %v", err)
	}
	assertSameTree(t, root, got)

	if _, err := DecodeXML(nil); err == nil {
		t.Error("Expected error for empty payload")
	}
	if _, err := DecodeXML([]byte("not xml")); err == nil {
		t.Error("Expected error for garbage payload")
	}
}

func TestXML_KeepsZeroIndexesAndBlankLines(t *testing.T) {
	c := NewCase([]string{"x", "1", "2", "default"}, nil, nil, nil)
	c.BranchOrder = []int{2, 0, 1}
	blank := NewInstruction("a := 0", "", "b := 0")
	blank.Comment = []string{"", "second"}
	root := NewRoot("r", c, blank)

	data, err := EncodeXML(root)
	if err != nil {
		t.Fatalf("EncodeXML failed: %v", err)
	}
	got, err := DecodeXML(data)
	if err != nil {
		t.Fatalf("DecodeXML failed: %v", err)
	}
	if order := got.Main().Child(0).BranchOrder; !reflect.DeepEqual(order, []int{2, 0, 1}) {
		t.Errorf("Expected branch order [2 0 1], got %v", order)
	}
	if text := got.Main().Child(1).Text; !reflect.DeepEqual(text, blank.Text) {
		t.Errorf("Expected text %q, got %q", blank.Text, text)
	}
	if comment := got.Main().Child(1).Comment; !reflect.DeepEqual(comment, blank.Comment) {
		t.Errorf("Expected comment %q, got %q", blank.Comment, comment)
	}
	if got.Main().Child(0).Comment != nil {
		t.Errorf("Expected no comment, got %q", got.Main().Child(0).Comment)
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	root := sampleRoot()
	data, err := ToJSON(root)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if err := ValidateJSON(data); err != nil {
		t.Fatalf("Exported JSON does not match schema: %v", err)
	}
	got, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}
	assertSameTree(t, root, got)
}

func TestValidateJSON_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"empty", ""},
		{"missing body", `{"version":"1.0","text":["x"]}`},
		{"unknown kind", `{"version":"1.0","text":["x"],"body":[{"type":"goto"}]}`},
		{"negative trigger", `{"version":"1.0","text":["x"],"body":[{"type":"instruction","break_trigger":-1}]}`},
		{"unknown field", `{"version":"1.0","text":["x"],"body":[{"type":"instruction","speed":3}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateJSON([]byte(tt.json)); err == nil {
				t.Error("Expected schema violation")
			}
		})
	}
}

func TestQuery(t *testing.T) {
	root := sampleRoot()

	got, err := Query(root, "text.0")
	if err != nil || got != "sample(n)" {
		t.Errorf("Query(text.0) = %v, %v", got, err)
	}

	got, err = Query(root, "body.#")
	if err != nil || got != int64(6) {
		t.Errorf("Query(body.#) = %v (%T), %v", got, got, err)
	}

	got, err = Query(root, "body.2.queues.0.elements.0.breakpoint")
	if err != nil || got != true {
		t.Errorf("Query(breakpoint) = %v, %v", got, err)
	}

	kinds, err := Query(root, "body.#.type")
	if err != nil {
		t.Fatalf("Query(body.#.type) failed: %v", err)
	}
	list, ok := kinds.([]interface{})
	if !ok || len(list) != 6 || list[1] != "for" {
		t.Errorf("Unexpected kinds %v", kinds)
	}

	if _, err := Query(root, ""); err == nil {
		t.Error("Expected error for empty path")
	}
	if _, err := Query(root, "nothing.here"); err == nil {
		t.Error("Expected error for missing path")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(sampleRoot()); err != nil {
		t.Fatalf("Expected sample to be valid, got %v", err)
	}
	if err := Validate(nil); err == nil {
		t.Error("Expected error for nil diagram")
	}

	dup := sampleRoot()
	dup.Main().Append(dup.Main().Child(0).CloneKeepingIDs())
	assertProblem(t, Validate(dup), "duplicate element ID")

	mismatch := sampleRoot()
	mismatch.Main().Child(3).Text = append(mismatch.Main().Child(3).Text, "3")
	assertProblem(t, Validate(mismatch), "labels but")

	nested := sampleRoot()
	nested.Main().Append(NewSubqueue())
	assertProblem(t, Validate(nested), "contains a subqueue")

	arity := sampleRoot()
	arity.Main().Child(1).children = nil
	assertProblem(t, Validate(arity), "has 0 queues, want 1")
}

func assertProblem(t *testing.T, err error, fragment string) {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected *ValidationError, got %v", err)
	}
	for _, p := range ve.Problems {
		if strings.Contains(p, fragment) {
			return
		}
	}
	t.Errorf("Expected a problem containing %q, got %v", fragment, ve.Problems)
}
