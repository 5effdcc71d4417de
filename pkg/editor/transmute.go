package editor

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dshills/nsflow/pkg/diagram"
	"github.com/dshills/nsflow/pkg/syntax"
)

type transmutation int

const (
	noTransmutation transmutation = iota
	splitInstruction
	reclassifyInstruction
	mergeSequence
	decomposeFor
	decomposeCase
	swapAlternative
)

// CanTransmute reports whether a rewrite rule applies to the selection
func (e *Editor) CanTransmute() bool {
	return e.transmutation() != noTransmutation
}

func (e *Editor) transmutation() transmutation {
	els := e.SelectedElements()
	if len(els) == 0 {
		return noTransmutation
	}
	kw := e.session.Keywords()

	if len(els) > 1 {
		for _, el := range els {
			if !el.Kind.IsInstructionLike() {
				return noTransmutation
			}
		}
		return mergeSequence
	}

	el := els[0]
	switch el.Kind {
	case diagram.KindInstruction, diagram.KindCall, diagram.KindJump:
		if len(el.Text) > 1 {
			return splitInstruction
		}
		if el.Kind != diagram.KindInstruction || syntax.Classify(el.FirstLine(), kw) != syntax.StatementPlain {
			return reclassifyInstruction
		}
	case diagram.KindFor:
		if _, ok := syntax.ParseCountingLoop(el.FirstLine(), kw); ok {
			return decomposeFor
		}
	case diagram.KindCase:
		if k := len(el.CaseLabels()); k > 0 && el.Len() > k {
			return decomposeCase
		}
	case diagram.KindAlternative:
		if !el.Child(1).IsEmpty() {
			return swapAlternative
		}
	case diagram.KindWhile, diagram.KindRepeat, diagram.KindForever,
		diagram.KindParallel, diagram.KindTry, diagram.KindSubqueue, diagram.KindRoot:
	}
	return noTransmutation
}

// Transmute rewrites the selection into an equivalent structure and
// selects the result
func (e *Editor) Transmute() error {
	t := e.transmutation()
	if t == noTransmutation {
		return ErrNotTransmutable
	}
	els := e.SelectedElements()
	if err := e.beginMutation(false, els...); err != nil {
		return err
	}
	kw := e.session.Keywords()

	switch t {
	case splitInstruction:
		e.split(els[0])
	case reclassifyInstruction:
		e.reclassify(els[0], kw)
	case mergeSequence:
		e.merge(els)
	case decomposeFor:
		e.decomposeFor(els[0], kw)
	case decomposeCase:
		e.decomposeCase(els[0], kw)
	case swapAlternative:
		e.swapAlternative(els[0], kw)
	}
	e.Invalidate()
	e.logger.Debug("transmute", "rule", t.String())
	return nil
}

func (t transmutation) String() string {
	switch t {
	case splitInstruction:
		return "split"
	case reclassifyInstruction:
		return "reclassify"
	case mergeSequence:
		return "merge"
	case decomposeFor:
		return "for-to-while"
	case decomposeCase:
		return "case-to-if"
	case swapAlternative:
		return "swap-branches"
	default:
		return "none"
	}
}

// replaceWith puts elems in place of old and selects them
func (e *Editor) replaceWith(old *diagram.Element, elems ...*diagram.Element) {
	parent := old.Parent()
	i := old.Index()
	parent.ReplaceRange(i, i, elems...)
	e.Invalidate()
	e.setRange(parent, i, i+len(elems)-1, i)
}

func (e *Editor) split(el *diagram.Element) {
	comments := commentLines(el.Comment)
	distribute := len(comments) == len(el.Text)

	parts := make([]*diagram.Element, len(el.Text))
	for i, line := range el.Text {
		p := newOfKind(el.Kind, line)
		p.Color = el.Color
		p.Disabled = el.Disabled
		switch {
		case distribute:
			if strings.TrimSpace(comments[i]) != "" {
				p.SetComment(comments[i])
			}
		case i == 0:
			p.Comment = append([]string(nil), el.Comment...)
		}
		parts[i] = p
	}
	parts[0].Breakpoint = el.Breakpoint
	parts[0].BreakTriggerCount = el.BreakTriggerCount
	e.replaceWith(el, parts...)
}

// commentLines flattens comment entries that hold embedded newlines
func commentLines(comment []string) []string {
	var out []string
	for _, c := range comment {
		out = append(out, strings.Split(c, "\n")...)
	}
	return out
}

func (e *Editor) merge(els []*diagram.Element) {
	kind := els[0].Kind
	var text, comment []string
	hasComment := false
	breakpoint := false
	trigger := 0
	for _, el := range els {
		if el.Kind != kind {
			kind = diagram.KindInstruction
		}
		text = append(text, el.Text...)
		c := strings.TrimSpace(strings.Join(el.Comment, "\n"))
		comment = append(comment, c)
		hasComment = hasComment || c != ""
		breakpoint = breakpoint || el.Breakpoint
		if n := el.BreakTriggerCount; n > 0 && (trigger == 0 || n < trigger) {
			trigger = n
		}
	}

	merged := newOfKind(kind, text...)
	merged.Color = els[0].Color
	merged.Disabled = els[0].Disabled
	if hasComment {
		merged.Comment = comment
	}
	merged.Breakpoint = breakpoint
	merged.BreakTriggerCount = trigger

	parent := els[0].Parent()
	start := els[0].Index()
	parent.ReplaceRange(start, start+len(els)-1, merged)
	e.Invalidate()
	e.sel = single(merged.ID)
}

func (e *Editor) reclassify(el *diagram.Element, kw syntax.Keywords) {
	kind := diagram.KindInstruction
	if el.Kind == diagram.KindInstruction {
		switch syntax.Classify(el.FirstLine(), kw) {
		case syntax.StatementCall:
			kind = diagram.KindCall
		case syntax.StatementJump:
			kind = diagram.KindJump
		}
	}
	repl := el.Clone()
	repl.Kind = kind
	e.replaceWith(el, repl)
}

func (e *Editor) decomposeFor(el *diagram.Element, kw syntax.Keywords) {
	loop, _ := syntax.ParseCountingLoop(el.FirstLine(), kw)

	init := diagram.NewInstruction(loop.InitText(kw))
	init.Disabled = el.Disabled

	body := el.Body()
	body.Append(diagram.NewInstruction(loop.IncrementText(kw)))
	w := diagram.NewWhile(syntax.WhileText(loop.ConditionText(), kw), body)
	w.Comment = el.Comment
	w.Color = el.Color
	w.Breakpoint = el.Breakpoint
	w.BreakTriggerCount = el.BreakTriggerCount
	w.Covered = el.Covered
	w.Disabled = el.Disabled
	w.Collapsed = el.Collapsed

	e.replaceWith(el, init, w)
}

func (e *Editor) decomposeCase(el *diagram.Element, kw syntax.Keywords) {
	selector := syntax.StripCaseKeywords(el.CaseSelector(), kw)
	labels := el.CaseLabels()
	branches := el.Children()

	var first []*diagram.Element
	discr := selector
	if !syntax.IsIdentifier(selector) {
		discr = discriminatorName(el.ID)
		first = append(first, diagram.NewInstruction(discr+" "+kw.Assign+" "+selector))
	}

	var elseQ *diagram.Element
	if el.HasDefaultBranch() && len(branches) > len(labels) {
		elseQ = branches[len(labels)]
	}
	var outer *diagram.Element
	for i := len(labels) - 1; i >= 0; i-- {
		alt := diagram.NewAlternative(syntax.AltText(caseCondition(discr, labels[i], kw), kw), branches[i], elseQ)
		alt.Color = el.Color
		alt.Disabled = el.Disabled
		outer = alt
		elseQ = diagram.NewSubqueue(alt)
	}
	first = append(first, outer)

	first[0].Comment = el.Comment
	first[0].Breakpoint = el.Breakpoint
	first[0].BreakTriggerCount = el.BreakTriggerCount
	e.replaceWith(el, first...)
}

// discriminatorName derives a variable name for a case selector from the
// element ID
func discriminatorName(id diagram.ID) string {
	var b strings.Builder
	b.WriteString("discr_")
	n := 0
	for _, r := range id.String() {
		if n == 8 {
			break
		}
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			n++
		}
	}
	return b.String()
}

// caseCondition builds the test for one branch label. A label lists one or
// more comma separated constants.
func caseCondition(discr, label string, kw syntax.Keywords) string {
	consts := splitConstants(label)
	if len(consts) == 1 {
		return fmt.Sprintf("%s %s %s", discr, kw.Equal, consts[0])
	}
	parts := make([]string, len(consts))
	for i, c := range consts {
		parts[i] = fmt.Sprintf("(%s %s %s)", discr, kw.Equal, c)
	}
	return strings.Join(parts, " "+kw.Or+" ")
}

// splitConstants splits a case label at commas outside of quotes and
// brackets
func splitConstants(label string) []string {
	var out []string
	var cur strings.Builder
	depth := 0
	var quote rune
	for _, r := range label {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(' || r == '[' || r == '{':
			depth++
		case r == ')' || r == ']' || r == '}':
			depth--
		case r == ',' && depth == 0:
			if s := strings.TrimSpace(cur.String()); s != "" {
				out = append(out, s)
			}
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	if s := strings.TrimSpace(cur.String()); s != "" || len(out) == 0 {
		out = append(out, s)
	}
	return out
}

func (e *Editor) swapAlternative(el *diagram.Element, kw syntax.Keywords) {
	cond := syntax.StripAltKeywords(strings.Join(el.Text, " "), kw)
	el.SetText(syntax.AltText(e.session.Negator().Negate(cond), kw))
	el.SwapChildren(0, 1)
	e.sel = single(el.ID)
}

// newOfKind creates an instruction-like element
func newOfKind(kind diagram.Kind, lines ...string) *diagram.Element {
	switch kind {
	case diagram.KindCall:
		return diagram.NewCall(lines...)
	case diagram.KindJump:
		return diagram.NewJump(lines...)
	default:
		return diagram.NewInstruction(lines...)
	}
}

// PermuteCaseBranches reorders the labelled branches of the selected case
// so that position i holds the branch previously at order[i]. The default
// branch stays last. The original order is remembered for
// RestoreCaseBranchOrder.
func (e *Editor) PermuteCaseBranches(order []int) error {
	el := e.Selected()
	if el == nil {
		return ErrNothingSelected
	}
	if el.Kind != diagram.KindCase || len(order) != len(el.CaseLabels()) || len(order) > el.Len() || !validOrder(order) {
		return ErrNotAllowed
	}
	if err := e.beginMutation(false, el); err != nil {
		return err
	}
	permuteCase(el, order)
	e.Invalidate()
	return nil
}

// RestoreCaseBranchOrder undoes all remembered branch permutations of the
// selected case
func (e *Editor) RestoreCaseBranchOrder() error {
	el := e.Selected()
	if el == nil {
		return ErrNothingSelected
	}
	if el.Kind != diagram.KindCase || el.BranchOrder == nil {
		return ErrNotAllowed
	}
	k := len(el.CaseLabels())
	if len(el.BranchOrder) != k || k > el.Len() || !validOrder(el.BranchOrder) {
		return ErrNotAllowed
	}
	if err := e.beginMutation(false, el); err != nil {
		return err
	}
	order := make([]int, k)
	for cur, orig := range el.BranchOrder {
		order[orig] = cur
	}
	permuteCase(el, order)
	e.Invalidate()
	return nil
}

func permuteCase(el *diagram.Element, order []int) {
	labels := el.CaseLabels()
	prev := el.BranchOrder
	if prev == nil {
		prev = make([]int, len(order))
		for i := range prev {
			prev[i] = i
		}
	}

	text := append([]string(nil), el.Text...)
	next := make([]int, len(order))
	identity := true
	for i, from := range order {
		text[i+1] = labels[from]
		next[i] = prev[from]
		identity = identity && next[i] == i
	}
	el.Text = text
	el.ReorderChildren(order)
	if identity {
		el.BranchOrder = nil
	} else {
		el.BranchOrder = next
	}
}

func validOrder(order []int) bool {
	seen := make([]bool, len(order))
	for _, v := range order {
		if v < 0 || v >= len(order) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}
