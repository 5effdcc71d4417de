// Package syntax holds the configurable parser preferences of diagram texts
// and the text-level helpers built on them: counting-loop parsing,
// statement classification, boolean negation and keyword refactoring.
package syntax

import (
	"sort"
	"strings"
)

// Keywords are the parser preferences under which diagram texts are
// written. Diagrams record the keywords they were saved with so that a
// later change of preferences can be detected and reconciled.
type Keywords struct {
	PreAlt     string `yaml:"pre_alt" toml:"pre_alt"`
	PostAlt    string `yaml:"post_alt" toml:"post_alt"`
	PreCase    string `yaml:"pre_case" toml:"pre_case"`
	PostCase   string `yaml:"post_case" toml:"post_case"`
	PreFor     string `yaml:"pre_for" toml:"pre_for"`
	PostFor    string `yaml:"post_for" toml:"post_for"`
	StepFor    string `yaml:"step_for" toml:"step_for"`
	PreForIn   string `yaml:"pre_for_in" toml:"pre_for_in"`
	PostForIn  string `yaml:"post_for_in" toml:"post_for_in"`
	PreWhile   string `yaml:"pre_while" toml:"pre_while"`
	PostWhile  string `yaml:"post_while" toml:"post_while"`
	PreRepeat  string `yaml:"pre_repeat" toml:"pre_repeat"`
	PostRepeat string `yaml:"post_repeat" toml:"post_repeat"`
	PreLeave   string `yaml:"pre_leave" toml:"pre_leave"`
	PreReturn  string `yaml:"pre_return" toml:"pre_return"`
	PreExit    string `yaml:"pre_exit" toml:"pre_exit"`
	PreThrow   string `yaml:"pre_throw" toml:"pre_throw"`
	Input      string `yaml:"input" toml:"input"`
	Output     string `yaml:"output" toml:"output"`

	// Operators used when texts are synthesized
	Assign string `yaml:"assign" toml:"assign"`
	Equal  string `yaml:"equal" toml:"equal"`
	Or     string `yaml:"or" toml:"or"`
	Not    string `yaml:"not" toml:"not"`
}

// DefaultKeywords returns the preferences used when nothing is configured
func DefaultKeywords() Keywords {
	return Keywords{
		PreFor:    "for",
		PostFor:   "to",
		StepFor:   "step",
		PreForIn:  "foreach",
		PostForIn: "in",
		PreWhile:  "while",
		PreRepeat: "until",
		PreLeave:  "leave",
		PreReturn: "return",
		PreExit:   "exit",
		PreThrow:  "throw",
		Input:     "INPUT",
		Output:    "OUTPUT",
		Assign:    ":=",
		Equal:     "=",
		Or:        "or",
		Not:       "not",
	}
}

// fields maps the stored key of every keyword to its field
func (k *Keywords) fields() map[string]*string {
	return map[string]*string{
		"preAlt":     &k.PreAlt,
		"postAlt":    &k.PostAlt,
		"preCase":    &k.PreCase,
		"postCase":   &k.PostCase,
		"preFor":     &k.PreFor,
		"postFor":    &k.PostFor,
		"stepFor":    &k.StepFor,
		"preForIn":   &k.PreForIn,
		"postForIn":  &k.PostForIn,
		"preWhile":   &k.PreWhile,
		"postWhile":  &k.PostWhile,
		"preRepeat":  &k.PreRepeat,
		"postRepeat": &k.PostRepeat,
		"preLeave":   &k.PreLeave,
		"preReturn":  &k.PreReturn,
		"preExit":    &k.PreExit,
		"preThrow":   &k.PreThrow,
		"input":      &k.Input,
		"output":     &k.Output,
	}
}

// Map returns the keywords in their stored form. Operators are not part of
// the stored form.
func (k Keywords) Map() map[string]string {
	out := make(map[string]string)
	for name, p := range k.fields() {
		out[name] = *p
	}
	return out
}

// FromMap builds keywords from a stored map; keys that are missing keep
// the values of base
func FromMap(base Keywords, m map[string]string) Keywords {
	k := base
	for name, p := range k.fields() {
		if v, ok := m[name]; ok {
			*p = v
		}
	}
	return k
}

// Differences lists the keys whose stored value differs from k, sorted
func (k Keywords) Differences(stored map[string]string) []string {
	var diff []string
	current := k.Map()
	for name, v := range stored {
		cur, known := current[name]
		if known && !strings.EqualFold(strings.TrimSpace(cur), strings.TrimSpace(v)) {
			diff = append(diff, name)
		}
	}
	sort.Strings(diff)
	return diff
}

// Differs reports whether stored preferences disagree with k
func (k Keywords) Differs(stored map[string]string) bool {
	return len(k.Differences(stored)) > 0
}

// withDefaults fills empty operators from the defaults
func (k Keywords) withDefaults() Keywords {
	d := DefaultKeywords()
	if k.Assign == "" {
		k.Assign = d.Assign
	}
	if k.Equal == "" {
		k.Equal = d.Equal
	}
	if k.Or == "" {
		k.Or = d.Or
	}
	if k.Not == "" {
		k.Not = d.Not
	}
	return k
}
