package editor

import (
	"fmt"

	"github.com/dshills/nsflow/pkg/diagram"
)

// CanCopy reports whether something copyable is selected. An empty
// subqueue is not.
func (e *Editor) CanCopy() bool {
	els := e.SelectedElements()
	if len(els) == 0 {
		return false
	}
	return !(len(els) == 1 && els[0].Kind == diagram.KindSubqueue && els[0].IsEmpty())
}

// CanCut reports whether the selection may be removed
func (e *Editor) CanCut() bool {
	if !e.CanCopy() {
		return false
	}
	for _, el := range e.SelectedElements() {
		if e.isRoot(el) || el.IsExecuted() || el.IsImmutable() {
			return false
		}
	}
	return true
}

// CanPaste reports whether the clipboard content may be inserted at the
// selection
func (e *Editor) CanPaste() bool {
	clip := e.session.ClipboardContent()
	if clip == nil || clip.IsExecuted() {
		return false
	}
	container, _, ok := e.insertionPoint(true)
	if !ok {
		return false
	}
	return !underExecution(container)
}

// underExecution reports whether q or one of its enclosing elements is
// currently executing
func underExecution(q *diagram.Element) bool {
	for p := q; p != nil; p = p.Parent() {
		if p.Executed {
			return true
		}
	}
	return false
}

// insertionPoint returns the subqueue and index at which new elements go,
// either after the end of the selection or before its start
func (e *Editor) insertionPoint(after bool) (*diagram.Element, int, bool) {
	els := e.SelectedElements()
	if len(els) == 0 {
		return nil, 0, false
	}
	first, last := els[0], els[len(els)-1]
	switch {
	case e.isRoot(first):
		main := e.root.Main()
		if after {
			return main, main.Len(), true
		}
		return main, 0, true
	case first.Kind == diagram.KindSubqueue:
		if after {
			return first, first.Len(), true
		}
		return first, 0, true
	}
	parent := first.Parent()
	if parent == nil || parent.Kind != diagram.KindSubqueue {
		return nil, 0, false
	}
	if after {
		return parent, last.Index() + 1, true
	}
	return parent, first.Index(), true
}

// Copy copies the selection. The whole diagram goes to the platform
// clipboard as XML; anything else is cloned into the session clipboard.
func (e *Editor) Copy() error {
	if !e.CanCopy() {
		return ErrNothingSelected
	}
	els := e.SelectedElements()
	if e.isRoot(els[0]) {
		return e.copyDiagram()
	}
	e.session.setClipboardContent(cloneSelection(els))
	e.logger.Debug("copied", "elements", len(els))
	return nil
}

func (e *Editor) copyDiagram() error {
	cb := e.session.platformClipboard()
	if cb == nil {
		return fmt.Errorf("no platform clipboard available")
	}
	data, err := diagram.EncodeXML(e.root)
	if err != nil {
		return fmt.Errorf("failed to encode diagram: %w", err)
	}
	if err := cb.SetText(string(data)); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	e.logger.Debug("copied diagram to platform clipboard", "bytes", len(data))
	return nil
}

// cloneSelection clones a single element as is and a run into a
// temporary subqueue
func cloneSelection(els []*diagram.Element) *diagram.Element {
	if len(els) == 1 {
		return els[0].Clone()
	}
	q := diagram.NewSubqueue()
	for _, el := range els {
		q.Append(el.Clone())
	}
	return q
}

// Cut moves the selection into the session clipboard and selects the
// selection heir
func (e *Editor) Cut() error {
	if !e.CanCut() {
		return ErrNotAllowed
	}
	els := e.SelectedElements()
	heir := e.SelectionHeir()
	if err := e.beginMutation(false, els...); err != nil {
		return err
	}
	e.session.setClipboardContent(cloneSelection(els))
	removeSelection(els)
	e.Invalidate()
	e.sel = single(heir.ID)
	e.logger.Debug("cut", "elements", len(els))
	return nil
}

// removeSelection detaches the selected run, or empties a selected subqueue
func removeSelection(els []*diagram.Element) {
	first := els[0]
	if first.Kind == diagram.KindSubqueue {
		first.RemoveRange(0, first.Len()-1)
		return
	}
	parent := first.Parent()
	parent.RemoveRange(first.Index(), els[len(els)-1].Index())
}

// Paste inserts a fresh clone of the session clipboard after the
// selection. A cloned subqueue is spliced in element by element. The
// inserted elements become the selection.
func (e *Editor) Paste() error {
	clip := e.session.ClipboardContent()
	if clip == nil {
		return ErrClipboardEmpty
	}
	if !e.CanPaste() {
		return ErrNotAllowed
	}
	clone := clip.Clone()
	items := []*diagram.Element{clone}
	if clone.Kind == diagram.KindSubqueue {
		items = clone.Children()
	}
	if len(items) == 0 {
		return ErrClipboardEmpty
	}

	container, at, _ := e.insertionPoint(true)
	if err := e.beginMutation(false, container.Parent()); err != nil {
		return err
	}
	container.InsertAt(at, items...)
	e.Invalidate()
	e.setRange(container, at, at+len(items)-1, at)
	e.logger.Debug("pasted", "elements", len(items))
	return nil
}

// PasteDiagram reads a whole diagram from the platform clipboard
func (e *Editor) PasteDiagram() (*diagram.Root, error) {
	return e.session.PasteDiagram()
}

// PasteDiagram reads a whole diagram from the platform clipboard
func (s *Session) PasteDiagram() (*diagram.Root, error) {
	cb := s.platformClipboard()
	if cb == nil {
		return nil, fmt.Errorf("no platform clipboard available")
	}
	text, err := cb.Text()
	if err != nil {
		return nil, fmt.Errorf("failed to read clipboard: %w", err)
	}
	root, err := diagram.DecodeXML([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("clipboard does not hold a diagram: %w", err)
	}
	return root, nil
}
