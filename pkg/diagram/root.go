package diagram

import (
	"strings"
	"time"
)

// Root is the top of a diagram tree. It owns exactly one main subqueue and
// the undo/redo history of the document.
type Root struct {
	Element

	Author       string
	Type         RootType
	Created      time.Time
	LastModified time.Time

	// StoredKeywords holds the parser preferences the diagram was saved
	// under. It stays non-nil until the editor reconciles them with the
	// current preferences.
	StoredKeywords map[string]string

	Modified bool

	history *History
}

// NewRoot creates a diagram with the given signature and main sequence
func NewRoot(signature string, body ...*Element) *Root {
	r := &Root{
		Element: Element{ID: NewID(), Kind: KindRoot, Text: []string{signature}},
		Created: time.Now(),
		history: NewHistory(DefaultHistoryCapacity),
	}
	r.LastModified = r.Created
	main := NewSubqueue(body...)
	main.parent = &r.Element
	r.children = []*Element{main}
	return r
}

// Main returns the main subqueue of the diagram
func (r *Root) Main() *Element {
	return r.Child(0)
}

// Node returns the element view of the root itself
func (r *Root) Node() *Element {
	return &r.Element
}

// Name returns the diagram name, i.e. the signature up to any parameter list
func (r *Root) Name() string {
	sig := strings.TrimSpace(r.FirstLine())
	if i := strings.IndexByte(sig, '('); i >= 0 {
		sig = strings.TrimSpace(sig[:i])
	}
	return sig
}

// setMain installs q as the main subqueue
func (r *Root) setMain(q *Element) {
	if old := r.Child(0); old != nil && old != q {
		old.parent = nil
	}
	q.detach()
	q.parent = &r.Element
	if len(r.children) == 0 {
		r.children = []*Element{q}
		return
	}
	r.children[0] = q
}

func (r *Root) ensureHistory() *History {
	if r.history == nil {
		r.history = NewHistory(DefaultHistoryCapacity)
	}
	return r.history
}

// AddUndo records the current state before a mutation. When
// affectsRootAttributes is set the root-level attributes are captured too.
// Any redo history is discarded.
func (r *Root) AddUndo(affectsRootAttributes bool) {
	r.ensureHistory().push(r.capture(affectsRootAttributes))
	r.touch()
}

// Undo restores the most recent snapshot. It reports false if there was
// nothing to undo.
func (r *Root) Undo() bool {
	h := r.ensureHistory()
	s, ok := h.popUndo()
	if !ok {
		return false
	}
	h.pushRedo(r.capture(s.attrs != nil))
	r.restore(s)
	return true
}

// Redo reapplies the most recently undone snapshot. It reports false if
// there was nothing to redo.
func (r *Root) Redo() bool {
	h := r.ensureHistory()
	s, ok := h.popRedo()
	if !ok {
		return false
	}
	h.pushUndoKeepRedo(r.capture(s.attrs != nil))
	r.restore(s)
	return true
}

// CanUndo returns true if undo is available
func (r *Root) CanUndo() bool {
	return r.ensureHistory().CanUndo()
}

// CanRedo returns true if redo is available
func (r *Root) CanRedo() bool {
	return r.ensureHistory().CanRedo()
}

// UndoDepth returns the number of undo entries
func (r *Root) UndoDepth() int {
	return r.ensureHistory().UndoDepth()
}

// ClearHistory drops all undo and redo entries
func (r *Root) ClearHistory() {
	r.ensureHistory().Clear()
}

func (r *Root) touch() {
	r.Modified = true
	r.LastModified = time.Now()
}

func (r *Root) capture(withAttrs bool) snapshot {
	s := snapshot{
		main:      r.Main().CloneKeepingIDs(),
		timestamp: time.Now(),
	}
	if withAttrs {
		s.attrs = &rootAttributes{
			text:    append([]string(nil), r.Text...),
			comment: append([]string(nil), r.Comment...),
			color:   r.Color,
			author:  r.Author,
			kind:    r.Type,
			stored:  copyKeywords(r.StoredKeywords),
		}
	}
	return s
}

func (r *Root) restore(s snapshot) {
	r.setMain(s.main)
	if s.attrs != nil {
		r.Text = s.attrs.text
		r.Comment = s.attrs.comment
		r.Color = s.attrs.color
		r.Author = s.attrs.author
		r.Type = s.attrs.kind
		r.StoredKeywords = copyKeywords(s.attrs.stored)
	}
	r.touch()
}

func copyKeywords(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	c := make(map[string]string, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// Clone returns a deep copy of the diagram with fresh element IDs and an
// empty history.
func (r *Root) Clone() *Root {
	c := NewRoot(r.FirstLine())
	c.Text = append([]string(nil), r.Text...)
	c.Comment = append([]string(nil), r.Comment...)
	c.Color = r.Color
	c.Author = r.Author
	c.Type = r.Type
	c.Created = r.Created
	c.LastModified = r.LastModified
	c.StoredKeywords = copyKeywords(r.StoredKeywords)
	c.setMain(r.Main().Clone())
	return c
}
