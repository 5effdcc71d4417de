package diagram

import (
	"strconv"
	"strings"
)

// Element is one node of a Nassi-Shneiderman diagram tree.
//
// A Subqueue owns an ordered sequence of elements. Composite elements own
// their sub-queues as children (see the constructors for the slot layout of
// each kind). Every child has exactly one parent; insertion detaches a node
// from its previous parent first.
type Element struct {
	ID                ID
	Kind              Kind
	Text              []string
	Comment           []string
	Color             string
	Breakpoint        bool
	BreakTriggerCount int // 0 means unset
	Disabled          bool
	Collapsed         bool
	Immutable         bool // element mirrors an external controller API
	Executed          bool // element is currently being executed
	Covered           bool // reached during a coverage run
	BranchOrder       []int

	parent   *Element
	children []*Element
}

// NewSubqueue creates a sequence container holding the given elements
func NewSubqueue(elems ...*Element) *Element {
	q := &Element{ID: NewID(), Kind: KindSubqueue}
	q.Append(elems...)
	return q
}

// NewInstruction creates a plain instruction with one line per statement
func NewInstruction(lines ...string) *Element {
	return newLeaf(KindInstruction, lines)
}

// NewCall creates a subroutine call element
func NewCall(lines ...string) *Element {
	return newLeaf(KindCall, lines)
}

// NewJump creates a jump (leave/return/exit/throw) element
func NewJump(lines ...string) *Element {
	return newLeaf(KindJump, lines)
}

func newLeaf(kind Kind, lines []string) *Element {
	return &Element{ID: NewID(), Kind: kind, Text: append([]string(nil), lines...)}
}

// NewAlternative creates a binary branch. Slot 0 is the then-branch, slot 1
// the else-branch; nil queues become empty subqueues.
func NewAlternative(condition string, thenQ, elseQ *Element) *Element {
	return newComposite(KindAlternative, []string{condition}, thenQ, elseQ)
}

// NewCase creates a multi-branch selection. text[0] is the selector, text[1:]
// are the branch labels with the default label last. One branch queue is
// created per label; missing queues are filled with empty subqueues.
func NewCase(text []string, branches ...*Element) *Element {
	n := len(text) - 1
	if n < 1 {
		n = 1
	}
	slots := make([]*Element, n)
	copy(slots, branches)
	return newComposite(KindCase, text, slots...)
}

// NewFor creates a counting or collection loop
func NewFor(header string, body *Element) *Element {
	return newComposite(KindFor, []string{header}, body)
}

// NewWhile creates a head-controlled loop
func NewWhile(condition string, body *Element) *Element {
	return newComposite(KindWhile, []string{condition}, body)
}

// NewRepeat creates a foot-controlled loop
func NewRepeat(condition string, body *Element) *Element {
	return newComposite(KindRepeat, []string{condition}, body)
}

// NewForever creates an endless loop
func NewForever(body *Element) *Element {
	return newComposite(KindForever, nil, body)
}

// NewParallel creates a parallel section with one queue per thread
func NewParallel(threads ...*Element) *Element {
	if len(threads) == 0 {
		threads = []*Element{nil, nil}
	}
	return newComposite(KindParallel, []string{strconv.Itoa(len(threads))}, threads...)
}

// NewTry creates a try block. Slots are try, catch and finally.
func NewTry(catchVar string, tryQ, catchQ, finallyQ *Element) *Element {
	return newComposite(KindTry, []string{catchVar}, tryQ, catchQ, finallyQ)
}

func newComposite(kind Kind, text []string, queues ...*Element) *Element {
	e := &Element{ID: NewID(), Kind: kind, Text: append([]string(nil), text...)}
	e.children = make([]*Element, len(queues))
	for i, q := range queues {
		if q == nil {
			q = NewSubqueue()
		}
		q.detach()
		q.parent = e
		e.children[i] = q
	}
	return e
}

// Parent returns the owning element, or nil for a root or detached node
func (e *Element) Parent() *Element {
	if e == nil {
		return nil
	}
	return e.parent
}

// Children returns a copy of the child list
func (e *Element) Children() []*Element {
	if e == nil {
		return nil
	}
	return append([]*Element(nil), e.children...)
}

// Len returns the number of children
func (e *Element) Len() int {
	if e == nil {
		return 0
	}
	return len(e.children)
}

// Child returns the child at index i or nil when out of range
func (e *Element) Child(i int) *Element {
	if e == nil || i < 0 || i >= len(e.children) {
		return nil
	}
	return e.children[i]
}

// Index returns the position of e within its parent, or -1
func (e *Element) Index() int {
	if e == nil || e.parent == nil {
		return -1
	}
	for i, c := range e.parent.children {
		if c == e {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether a subqueue has no elements
func (e *Element) IsEmpty() bool {
	return e.Len() == 0
}

// Append adds elements to the end of a subqueue
func (e *Element) Append(elems ...*Element) {
	e.InsertAt(len(e.children), elems...)
}

// InsertAt inserts elements into a subqueue before index i
func (e *Element) InsertAt(i int, elems ...*Element) {
	if i < 0 {
		i = 0
	}
	if i > len(e.children) {
		i = len(e.children)
	}
	// moving our own children forward shifts the insertion point
	shift := 0
	for _, el := range elems {
		if el != nil && el.parent == e && el.Index() < i {
			shift++
		}
	}
	batch := make([]*Element, 0, len(elems))
	for _, el := range elems {
		if el == nil {
			continue
		}
		el.detach()
		el.parent = e
		batch = append(batch, el)
	}
	i -= shift
	rest := append([]*Element(nil), e.children[i:]...)
	e.children = append(append(e.children[:i], batch...), rest...)
}

// InsertAfter inserts elements directly after e in its parent subqueue
func (e *Element) InsertAfter(elems ...*Element) {
	if e.parent == nil {
		return
	}
	e.parent.InsertAt(e.Index()+1, elems...)
}

// InsertBefore inserts elements directly before e in its parent subqueue
func (e *Element) InsertBefore(elems ...*Element) {
	if e.parent == nil {
		return
	}
	e.parent.InsertAt(e.Index(), elems...)
}

// RemoveRange detaches children start..end (inclusive) and returns them
func (e *Element) RemoveRange(start, end int) []*Element {
	if e == nil || start < 0 || end >= len(e.children) || start > end {
		return nil
	}
	removed := append([]*Element(nil), e.children[start:end+1]...)
	e.children = append(e.children[:start], e.children[end+1:]...)
	for _, r := range removed {
		r.parent = nil
	}
	return removed
}

// ReplaceRange swaps children start..end (inclusive) for the given elements
func (e *Element) ReplaceRange(start, end int, elems ...*Element) []*Element {
	removed := e.RemoveRange(start, end)
	if removed == nil {
		return nil
	}
	e.InsertAt(start, elems...)
	return removed
}

// Remove detaches e from its parent
func (e *Element) Remove() {
	e.detach()
}

// SetChild replaces the sub-queue in slot i of a composite element
func (e *Element) SetChild(i int, q *Element) {
	if e == nil || i < 0 || i >= len(e.children) || q == nil {
		return
	}
	q.detach()
	old := e.children[i]
	if old != nil && old != q {
		old.parent = nil
	}
	q.parent = e
	e.children[i] = q
}

// SwapChildren exchanges two child slots
func (e *Element) SwapChildren(i, j int) {
	if e == nil || i < 0 || j < 0 || i >= len(e.children) || j >= len(e.children) {
		return
	}
	e.children[i], e.children[j] = e.children[j], e.children[i]
}

// ReorderChildren rearranges the leading child slots so that slot i holds
// the child previously at order[i]. order must be a permutation of
// 0..len(order)-1; slots beyond it stay in place.
func (e *Element) ReorderChildren(order []int) bool {
	if e == nil || len(order) > len(e.children) || !isPermutation(order) {
		return false
	}
	prev := append([]*Element(nil), e.children[:len(order)]...)
	for i, from := range order {
		e.children[i] = prev[from]
	}
	return true
}

func isPermutation(order []int) bool {
	seen := make([]bool, len(order))
	for _, v := range order {
		if v < 0 || v >= len(order) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

func (e *Element) detach() {
	if e.parent == nil {
		return
	}
	p := e.parent
	for i, c := range p.children {
		if c == e {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	e.parent = nil
}

// Walk visits e and its descendants in pre-order until fn returns false
func (e *Element) Walk(fn func(*Element) bool) bool {
	if e == nil {
		return true
	}
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the descendant (or e itself) with the given ID
func (e *Element) Find(id ID) *Element {
	var found *Element
	e.Walk(func(x *Element) bool {
		if x.ID == id {
			found = x
			return false
		}
		return true
	})
	return found
}

// IsAncestorOf reports whether e strictly contains other
func (e *Element) IsAncestorOf(other *Element) bool {
	if e == nil || other == nil {
		return false
	}
	for p := other.parent; p != nil; p = p.parent {
		if p == e {
			return true
		}
	}
	return false
}

// IsExecuted reports whether e or any of its descendants is executing
func (e *Element) IsExecuted() bool {
	executing := false
	e.Walk(func(x *Element) bool {
		if x.Executed {
			executing = true
			return false
		}
		return true
	})
	return executing
}

// IsImmutable reports whether e is protected against editing
func (e *Element) IsImmutable() bool {
	return e != nil && e.Immutable
}

// HasComment reports whether any comment line is non-empty
func (e *Element) HasComment() bool {
	for _, c := range e.Comment {
		if strings.TrimSpace(c) != "" {
			return true
		}
	}
	return false
}

// SetText replaces the text lines
func (e *Element) SetText(lines ...string) {
	e.Text = append([]string(nil), lines...)
}

// SetComment replaces the comment lines
func (e *Element) SetComment(lines ...string) {
	e.Comment = append([]string(nil), lines...)
}

// FirstLine returns the first text line or the empty string
func (e *Element) FirstLine() string {
	if len(e.Text) == 0 {
		return ""
	}
	return e.Text[0]
}

// CaseSelector returns the selector expression of a case element
func (e *Element) CaseSelector() string {
	return e.FirstLine()
}

// CaseLabels returns the labels of the non-default branches
func (e *Element) CaseLabels() []string {
	if len(e.Text) < 3 {
		return nil
	}
	return append([]string(nil), e.Text[1:len(e.Text)-1]...)
}

// HasDefaultBranch reports whether the default branch of a case is shown
func (e *Element) HasDefaultBranch() bool {
	if len(e.Text) < 2 {
		return false
	}
	return strings.TrimSpace(e.Text[len(e.Text)-1]) != "%"
}

// Body returns the first sub-queue of a composite element
func (e *Element) Body() *Element {
	return e.Child(0)
}

// Clone returns a deep copy with fresh IDs, detached from any parent.
// Runtime state (Executed, Covered) is not carried over.
func (e *Element) Clone() *Element {
	return e.clone(false)
}

// CloneKeepingIDs returns a deep copy that shares the IDs of the original.
// Such copies are only meant for snapshots that replace the original.
func (e *Element) CloneKeepingIDs() *Element {
	return e.clone(true)
}

func (e *Element) clone(keepIDs bool) *Element {
	if e == nil {
		return nil
	}
	c := &Element{
		ID:                e.ID,
		Kind:              e.Kind,
		Text:              append([]string(nil), e.Text...),
		Comment:           append([]string(nil), e.Comment...),
		Color:             e.Color,
		Breakpoint:        e.Breakpoint,
		BreakTriggerCount: e.BreakTriggerCount,
		Disabled:          e.Disabled,
		Collapsed:         e.Collapsed,
		Immutable:         e.Immutable,
		BranchOrder:       append([]int(nil), e.BranchOrder...),
	}
	if keepIDs {
		c.Executed = e.Executed
		c.Covered = e.Covered
	} else {
		c.ID = NewID()
	}
	if len(e.children) > 0 {
		c.children = make([]*Element, len(e.children))
		for i, ch := range e.children {
			cc := ch.clone(keepIDs)
			cc.parent = c
			c.children[i] = cc
		}
	}
	return c
}

// Count returns the number of elements in the subtree rooted at e
func (e *Element) Count() int {
	n := 0
	e.Walk(func(*Element) bool {
		n++
		return true
	})
	return n
}
