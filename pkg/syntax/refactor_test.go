package syntax

import (
	"reflect"
	"testing"
)

func TestRefactorer_Lines(t *testing.T) {
	to := DefaultKeywords()
	to.PreFor, to.PostFor = "für", "bis"
	r := NewRefactorer(map[string]string{"preFor": "for", "postFor": "to"}, to)
	if r.Empty() {
		t.Fatal("Expected rules for changed keywords")
	}

	got := r.Lines([]string{"for i := 1 to n", "FOR j := a TO b", "format(total)", "x := toggle"})
	want := []string{"für i := 1 bis n", "für j := a bis b", "format(total)", "x := toggle"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lines = %q, want %q", got, want)
	}
}

func TestRefactorer_SwappedKeywords(t *testing.T) {
	to := DefaultKeywords()
	to.PreWhile, to.PreRepeat = "until", "while"
	r := NewRefactorer(map[string]string{"preWhile": "while", "preRepeat": "until"}, to)

	got := r.Lines([]string{"while x until y"})
	if got[0] != "until x while y" {
		t.Errorf("Expected swapped keywords, got %q", got[0])
	}
}

func TestRefactorer_Empty(t *testing.T) {
	k := DefaultKeywords()
	if !NewRefactorer(k.Map(), k).Empty() {
		t.Error("Expected no rules for identical keywords")
	}
	if !NewRefactorer(map[string]string{"preFor": "FOR", "bogus": "x", "preAlt": ""}, k).Empty() {
		t.Error("Expected case differences, unknown keys and empty values to be ignored")
	}

	lines := []string{"a"}
	if got := NewRefactorer(nil, k).Lines(lines); &got[0] != &lines[0] {
		t.Error("Expected an empty refactorer to return its input")
	}
}

func TestKeywords_MapAndDifferences(t *testing.T) {
	k := DefaultKeywords()
	m := k.Map()
	if m["preFor"] != "for" || m["postFor"] != "to" {
		t.Errorf("Unexpected stored form %v", m)
	}
	if _, ok := m["assign"]; ok {
		t.Error("Expected operators to be left out of the stored form")
	}

	back := FromMap(Keywords{}, m)
	back.Assign, back.Equal, back.Or, back.Not = k.Assign, k.Equal, k.Or, k.Not
	if back != k {
		t.Errorf("FromMap(Map()) = %+v, want %+v", back, k)
	}

	stored := map[string]string{"preFor": " FOR ", "postFor": "bis", "unknown": "x"}
	if diff := k.Differences(stored); !reflect.DeepEqual(diff, []string{"postFor"}) {
		t.Errorf("Differences = %v", diff)
	}
	if !k.Differs(stored) || k.Differs(nil) {
		t.Error("Unexpected Differs")
	}

	partial := FromMap(k, map[string]string{"preFor": "für"})
	if partial.PreFor != "für" || partial.PostFor != "to" {
		t.Errorf("Expected missing keys to keep base values, got %+v", partial)
	}
}
