package editor

import (
	"github.com/dshills/nsflow/pkg/diagram"
)

// Delete removes the selection without touching the clipboard
func (e *Editor) Delete() error {
	if !e.CanCut() {
		return ErrNotAllowed
	}
	els := e.SelectedElements()
	heir := e.SelectionHeir()
	if err := e.beginMutation(false, els...); err != nil {
		return err
	}
	removeSelection(els)
	e.Invalidate()
	e.sel = single(heir.ID)
	return nil
}

// Insert adds a new element after (or before) the selection and selects it
func (e *Editor) Insert(el *diagram.Element, after bool) error {
	if el == nil || el.Kind == diagram.KindRoot || el.Kind == diagram.KindSubqueue {
		return ErrNotAllowed
	}
	container, at, ok := e.insertionPoint(after)
	if !ok {
		return ErrNothingSelected
	}
	if underExecution(container) {
		return ErrNotAllowed
	}
	if err := e.beginMutation(false, container.Parent()); err != nil {
		return err
	}
	container.InsertAt(at, el)
	e.Invalidate()
	e.sel = single(el.ID)
	return nil
}

// CanMoveUp reports whether the selected run can swap with its
// predecessor
func (e *Editor) CanMoveUp() bool {
	seq, ok := e.Sequence()
	return ok && seq.Start > 0 && e.movable(seq)
}

// CanMoveDown reports whether the selected run can swap with its
// successor
func (e *Editor) CanMoveDown() bool {
	seq, ok := e.Sequence()
	return ok && seq.End+1 < seq.Parent.Len() && e.movable(seq)
}

func (e *Editor) movable(seq SelectedSequence) bool {
	for _, el := range seq.Elements() {
		if el.IsImmutable() || el.IsExecuted() {
			return false
		}
	}
	return !underExecution(seq.Parent)
}

// MoveUp swaps the selected run with the element above it
func (e *Editor) MoveUp() error {
	if !e.CanMoveUp() {
		return ErrNotAllowed
	}
	seq, _ := e.Sequence()
	if err := e.beginMutation(false, seq.Elements()...); err != nil {
		return err
	}
	moved := seq.Parent.RemoveRange(seq.Start-1, seq.Start-1)
	seq.Parent.InsertAt(seq.End, moved...)
	e.Invalidate()
	return nil
}

// MoveDown swaps the selected run with the element below it
func (e *Editor) MoveDown() error {
	if !e.CanMoveDown() {
		return ErrNotAllowed
	}
	seq, _ := e.Sequence()
	if err := e.beginMutation(false, seq.Elements()...); err != nil {
		return err
	}
	moved := seq.Parent.RemoveRange(seq.End+1, seq.End+1)
	seq.Parent.InsertAt(seq.Start, moved...)
	e.Invalidate()
	return nil
}

// EditText replaces the text and comment of the single selected element.
// Editing the root changes the diagram signature.
func (e *Editor) EditText(lines, comment []string) error {
	el := e.Selected()
	if el == nil || el.Kind == diagram.KindSubqueue {
		return ErrNothingSelected
	}
	if err := e.beginMutation(e.isRoot(el), el); err != nil {
		return err
	}
	el.SetText(lines...)
	el.SetComment(comment...)
	if el.Kind == diagram.KindCase {
		el.BranchOrder = nil
	}
	e.Invalidate()
	return nil
}

// SetColor paints every selected element
func (e *Editor) SetColor(color string) error {
	els := e.SelectedElements()
	if len(els) == 0 {
		return ErrNothingSelected
	}
	if err := e.beginMutation(e.isRoot(els[0]), els...); err != nil {
		return err
	}
	for _, el := range els {
		el.Color = color
	}
	return nil
}

// ToggleDisabled disables the selected elements, or enables them if all
// of them are disabled already
func (e *Editor) ToggleDisabled() error {
	els := e.editableSelection()
	if len(els) == 0 {
		return ErrNotAllowed
	}
	if err := e.beginMutation(false, els...); err != nil {
		return err
	}
	disable := false
	for _, el := range els {
		if !el.Disabled {
			disable = true
			break
		}
	}
	for _, el := range els {
		el.Disabled = disable
	}
	return nil
}

// ToggleBreakpoint flips the breakpoint of the single selected element
func (e *Editor) ToggleBreakpoint() error {
	el := e.Selected()
	if el == nil || e.isRoot(el) || el.Kind == diagram.KindSubqueue {
		return ErrNotAllowed
	}
	if err := e.beginMutation(false, el); err != nil {
		return err
	}
	el.Breakpoint = !el.Breakpoint
	return nil
}

// SetBreakTriggerCount sets after how many passes the breakpoint of the
// selected element fires. Zero removes the trigger.
func (e *Editor) SetBreakTriggerCount(n int) error {
	el := e.Selected()
	if el == nil || e.isRoot(el) || el.Kind == diagram.KindSubqueue || n < 0 {
		return ErrNotAllowed
	}
	if err := e.beginMutation(false, el); err != nil {
		return err
	}
	el.BreakTriggerCount = n
	return nil
}

// EditRootAttributes changes the diagram-level attributes
func (e *Editor) EditRootAttributes(author string, typ diagram.RootType, comment []string) error {
	if err := e.beginMutation(true, e.root.Node()); err != nil {
		return err
	}
	e.root.Author = author
	e.root.Type = typ
	e.root.SetComment(comment...)
	return nil
}

// ToggleCollapsed folds or unfolds the selected composites. Folding is a
// view setting and is not recorded for undo.
func (e *Editor) ToggleCollapsed() bool {
	changed := false
	for _, el := range e.SelectedElements() {
		if el.Kind.IsComposite() {
			el.Collapsed = !el.Collapsed
			changed = true
		}
	}
	if changed {
		e.layout = nil
	}
	return changed
}

func (e *Editor) editableSelection() []*diagram.Element {
	els := e.SelectedElements()
	for _, el := range els {
		if e.isRoot(el) || el.Kind == diagram.KindSubqueue {
			return nil
		}
	}
	return els
}
