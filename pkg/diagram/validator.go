package diagram

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError collects every structural problem found in a diagram
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid diagram: %s", strings.Join(e.Problems, "; "))
}

// Validate checks the structural invariants of a diagram: parent links,
// composite arity, case label/branch agreement and ID uniqueness
func Validate(r *Root) error {
	if r == nil {
		return errors.New("diagram cannot be nil")
	}

	v := &validator{seen: make(map[ID]bool)}
	if r.Kind != KindRoot {
		v.addf("root element has kind %s", r.Kind)
	}
	if r.Len() != 1 || r.Main() == nil || r.Main().Kind != KindSubqueue {
		v.addf("root must own exactly one main subqueue")
	} else {
		v.seen[r.ID] = true
		v.checkChildren(r.Node())
	}

	if len(v.problems) > 0 {
		return &ValidationError{Problems: v.problems}
	}
	return nil
}

type validator struct {
	seen     map[ID]bool
	problems []string
}

func (v *validator) addf(format string, args ...interface{}) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) checkChildren(e *Element) {
	for i, c := range e.children {
		if c == nil {
			v.addf("%s %s: nil child at %d", e.Kind, e.ID, i)
			continue
		}
		if c.parent != e {
			v.addf("%s %s: child %s has wrong parent", e.Kind, e.ID, c.ID)
		}
		v.check(c)
	}
}

func (v *validator) check(e *Element) {
	if e.ID == "" {
		v.addf("%s element without ID", e.Kind)
	} else if v.seen[e.ID] {
		v.addf("duplicate element ID %s", e.ID)
	}
	v.seen[e.ID] = true

	switch e.Kind {
	case KindSubqueue:
		for _, c := range e.children {
			if c != nil && (c.Kind == KindSubqueue || c.Kind == KindRoot) {
				v.addf("subqueue %s contains a %s", e.ID, c.Kind)
			}
		}
	case KindInstruction, KindCall, KindJump:
		if len(e.children) > 0 {
			v.addf("%s %s must not own queues", e.Kind, e.ID)
		}
	case KindCase:
		if len(e.Text) < 2 {
			v.addf("case %s needs a selector and a default label", e.ID)
		} else if len(e.children) != len(e.Text)-1 {
			v.addf("case %s has %d labels but %d branches", e.ID, len(e.Text)-1, len(e.children))
		}
	case KindParallel:
		if len(e.children) == 0 {
			v.addf("parallel %s has no threads", e.ID)
		}
	case KindRoot:
		v.addf("nested root %s", e.ID)
	default:
		if n := slotCount(e.Kind); n >= 0 && len(e.children) != n {
			v.addf("%s %s has %d queues, want %d", e.Kind, e.ID, len(e.children), n)
		}
	}

	if e.Kind.IsComposite() {
		for _, q := range e.children {
			if q != nil && q.Kind != KindSubqueue {
				v.addf("%s %s owns a %s instead of a subqueue", e.Kind, e.ID, q.Kind)
			}
		}
	}

	v.checkChildren(e)
}
