package editor

import (
	"github.com/dshills/nsflow/pkg/diagram"
)

// selection is kept by element ID so it survives tree replacement by
// undo and redo
type selection struct {
	ids    []diagram.ID // one element, or adjacent siblings in order
	anchor diagram.ID
}

func single(id diagram.ID) selection {
	return selection{ids: []diagram.ID{id}, anchor: id}
}

// SelectedSequence is a run of adjacent elements within one subqueue
type SelectedSequence struct {
	Parent       *diagram.Element
	Start        int
	End          int // inclusive
	AnchorOffset int // position of the fixed end relative to Start
}

// Len returns the number of elements in the run
func (s SelectedSequence) Len() int {
	return s.End - s.Start + 1
}

// Elements returns the elements of the run in order
func (s SelectedSequence) Elements() []*diagram.Element {
	out := make([]*diagram.Element, 0, s.Len())
	for i := s.Start; i <= s.End; i++ {
		out = append(out, s.Parent.Child(i))
	}
	return out
}

// Expansion is a keyboard range extension
type Expansion int

const (
	ExpandUp Expansion = iota
	ExpandDown
	ExpandTop
	ExpandBottom
)

// SelectedElements returns the selected elements in order. It is empty
// when nothing is selected.
func (e *Editor) SelectedElements() []*diagram.Element {
	e.revalidate()
	out := make([]*diagram.Element, 0, len(e.sel.ids))
	for _, id := range e.sel.ids {
		out = append(out, e.lookup(id))
	}
	return out
}

// Selected returns the selected element if exactly one is selected
func (e *Editor) Selected() *diagram.Element {
	els := e.SelectedElements()
	if len(els) != 1 {
		return nil
	}
	return els[0]
}

// Sequence returns the selection as a run of siblings. A single element
// that lives in a subqueue forms a run of length one; the root and
// subqueues themselves do not.
func (e *Editor) Sequence() (SelectedSequence, bool) {
	els := e.SelectedElements()
	if len(els) == 0 {
		return SelectedSequence{}, false
	}
	first, last := els[0], els[len(els)-1]
	parent := first.Parent()
	if parent == nil || parent.Kind != diagram.KindSubqueue {
		return SelectedSequence{}, false
	}
	seq := SelectedSequence{Parent: parent, Start: first.Index(), End: last.Index()}
	if a := e.lookup(e.sel.anchor); a != nil && a.Parent() == parent {
		seq.AnchorOffset = a.Index() - seq.Start
	}
	return seq, true
}

// IsSelected reports whether the element with the given ID is selected
func (e *Editor) IsSelected(id diagram.ID) bool {
	for _, sid := range e.sel.ids {
		if sid == id {
			return true
		}
	}
	return false
}

// ClearSelection falls back to selecting the diagram itself
func (e *Editor) ClearSelection() {
	e.sel = single(e.root.ID)
}

// Select makes el the only selected element. Elements that are not part
// of this diagram are ignored.
func (e *Editor) Select(el *diagram.Element) bool {
	if el == nil || e.lookup(el.ID) != el {
		return false
	}
	e.sel = single(el.ID)
	return true
}

// SelectRange selects children start..end (inclusive) of the subqueue
// parent, with the anchor at start
func (e *Editor) SelectRange(parent *diagram.Element, start, end int) bool {
	if parent == nil || parent.Kind != diagram.KindSubqueue || e.lookup(parent.ID) != parent {
		return false
	}
	if start > end {
		start, end = end, start
	}
	if start < 0 || end >= parent.Len() {
		return false
	}
	e.setRange(parent, start, end, start)
	return true
}

func (e *Editor) setRange(parent *diagram.Element, start, end, anchor int) {
	ids := make([]diagram.ID, 0, end-start+1)
	for i := start; i <= end; i++ {
		ids = append(ids, parent.Child(i).ID)
	}
	e.sel = selection{ids: ids, anchor: parent.Child(anchor).ID}
}

// SelectAt selects the deepest element at the given diagram position and
// returns it. When forDrag is set and the hit lies inside an existing
// multi-element selection, that selection is kept so it can be dragged.
// Hitting empty space selects the diagram itself.
func (e *Editor) SelectAt(x, y int, forDrag bool) *diagram.Element {
	hit := e.Layout().ElementAt(x, y)
	if hit == nil {
		e.ClearSelection()
		return nil
	}
	if forDrag && len(e.sel.ids) > 1 {
		for _, el := range e.SelectedElements() {
			if el == hit || el.IsAncestorOf(hit) {
				return hit
			}
		}
	}
	e.sel = single(hit.ID)
	return hit
}

// ExtendSelectionTo grows the selection from its anchor to target. If
// target is not in the anchor's subqueue, its enclosing element within
// that subqueue is used; failing that, target alone is selected.
func (e *Editor) ExtendSelectionTo(target *diagram.Element) bool {
	if target == nil || e.lookup(target.ID) != target {
		return false
	}
	anchor := e.lookup(e.sel.anchor)
	if anchor == nil || e.isRoot(anchor) || anchor.Kind == diagram.KindSubqueue {
		e.sel = single(target.ID)
		return true
	}
	parent := anchor.Parent()
	t := target
	for t != nil && t.Parent() != parent {
		t = t.Parent()
	}
	if t == nil {
		e.sel = single(target.ID)
		return true
	}
	a, b := anchor.Index(), t.Index()
	e.setRange(parent, min(a, b), max(a, b), a)
	return true
}

// ExpandSelection moves the free end of the selected run one step or to an
// edge of its subqueue while the anchor stays fixed
func (e *Editor) ExpandSelection(dir Expansion) bool {
	seq, ok := e.Sequence()
	if !ok {
		return false
	}
	a := seq.Start + seq.AnchorOffset
	m := seq.End
	if a == seq.End {
		m = seq.Start
	}
	n := seq.Parent.Len()
	switch dir {
	case ExpandDown:
		if m+1 >= n {
			return false
		}
		m++
	case ExpandUp:
		if m == 0 {
			return false
		}
		m--
	case ExpandTop:
		m = 0
	case ExpandBottom:
		m = n - 1
	default:
		return false
	}
	e.setRange(seq.Parent, min(a, m), max(a, m), a)
	return true
}

// SelectionHeir returns the element that should be selected once the
// current selection is removed: the next sibling, else the previous
// sibling, else the containing subqueue
func (e *Editor) SelectionHeir() *diagram.Element {
	seq, ok := e.Sequence()
	if !ok {
		return e.Selected()
	}
	if next := seq.Parent.Child(seq.End + 1); next != nil {
		return next
	}
	if prev := seq.Parent.Child(seq.Start - 1); prev != nil {
		return prev
	}
	return seq.Parent
}

// revalidate re-resolves the selection against the current tree. A run
// that no longer forms adjacent siblings shrinks to its first surviving
// element; if nothing survives the root is selected.
func (e *Editor) revalidate() {
	if len(e.sel.ids) == 0 {
		return
	}
	els := make([]*diagram.Element, 0, len(e.sel.ids))
	for _, id := range e.sel.ids {
		if el := e.lookup(id); el != nil {
			els = append(els, el)
		}
	}
	if len(els) == 0 {
		e.sel = single(e.root.ID)
		return
	}
	if len(els) == len(e.sel.ids) && adjacent(els) {
		if e.lookup(e.sel.anchor) == nil {
			e.sel.anchor = els[0].ID
		}
		return
	}
	e.sel = single(els[0].ID)
}

func adjacent(els []*diagram.Element) bool {
	if len(els) == 1 {
		return true
	}
	parent := els[0].Parent()
	if parent == nil {
		return false
	}
	start := els[0].Index()
	for i, el := range els {
		if el.Parent() != parent || el.Index() != start+i {
			return false
		}
	}
	return true
}
