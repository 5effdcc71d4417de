package editor

import (
	"errors"

	"github.com/dshills/nsflow/pkg/diagram"
	"github.com/dshills/nsflow/pkg/syntax"
)

var (
	// ErrCancelled means the user declined a decision required before the
	// operation. Nothing was changed and no undo entry was recorded.
	ErrCancelled = errors.New("operation cancelled")

	// ErrImmutable means an affected element is protected against editing
	ErrImmutable = errors.New("element is immutable")

	// ErrNothingSelected is returned by operations that need a selection
	ErrNothingSelected = errors.New("nothing selected")

	// ErrNotTransmutable is returned when no rewrite rule applies
	ErrNotTransmutable = errors.New("selection cannot be transmuted")

	// ErrClipboardEmpty is returned by Paste without clipboard content
	ErrClipboardEmpty = errors.New("clipboard is empty")

	// ErrNotAllowed is returned when an operation's precondition is not met
	ErrNotAllowed = errors.New("operation not allowed on current selection")
)

// Resolution is the answer to stale diagram keywords
type Resolution int

const (
	// ResolveLeave accepts the texts as they are
	ResolveLeave Resolution = iota
	// ResolveRefactor rewrites the texts to the current keywords
	ResolveRefactor
	// ResolveAdopt makes the diagram's keywords the current ones
	ResolveAdopt
	// ResolveCancel aborts the pending mutation
	ResolveCancel
)

// String returns the resolution name
func (r Resolution) String() string {
	switch r {
	case ResolveLeave:
		return "leave"
	case ResolveRefactor:
		return "refactor"
	case ResolveAdopt:
		return "adopt"
	default:
		return "cancel"
	}
}

// KeywordResolver decides what happens to a diagram that was saved under
// other parser keywords than the current ones. diffs lists the differing
// keyword names.
type KeywordResolver interface {
	ResolveKeywords(root *diagram.Root, diffs []string) Resolution
}

// KeywordResolverFunc adapts a function to KeywordResolver
type KeywordResolverFunc func(root *diagram.Root, diffs []string) Resolution

// ResolveKeywords implements KeywordResolver
func (f KeywordResolverFunc) ResolveKeywords(root *diagram.Root, diffs []string) Resolution {
	return f(root, diffs)
}

// BeginMutation must precede every change to the diagram. It refuses
// immutable targets, reconciles stale keywords and records an undo entry.
// On error nothing has been changed.
func (e *Editor) BeginMutation(target *diagram.Element, affectsRootAttributes bool) error {
	return e.beginMutation(affectsRootAttributes, target)
}

func (e *Editor) beginMutation(affectsRootAttributes bool, targets ...*diagram.Element) error {
	for _, t := range targets {
		if t.IsImmutable() {
			e.logger.Debug("mutation refused", "element", t.ID)
			return ErrImmutable
		}
	}

	var refactor *syntax.Refactorer
	stored := e.root.StoredKeywords
	if stored != nil {
		current := e.session.Keywords()
		if diffs := current.Differences(stored); len(diffs) > 0 {
			res := ResolveLeave
			if r := e.session.keywordResolver(); r != nil {
				res = r.ResolveKeywords(e.root, diffs)
			}
			e.logger.Debug("stale keywords", "differences", diffs, "resolution", res)
			switch res {
			case ResolveCancel:
				return ErrCancelled
			case ResolveRefactor:
				refactor = syntax.NewRefactorer(stored, current)
			case ResolveAdopt:
				e.session.SetKeywords(syntax.FromMap(current, stored))
			}
		}
	}

	// dropping the stored keywords below changes a root attribute
	e.root.AddUndo(affectsRootAttributes || stored != nil)
	if refactor != nil {
		e.refactorTexts(refactor)
	}
	e.root.StoredKeywords = nil
	e.Invalidate()
	e.logger.Debug("mutation", "undo_depth", e.root.UndoDepth())
	return nil
}

func (e *Editor) refactorTexts(r *syntax.Refactorer) {
	e.root.Node().Walk(func(x *diagram.Element) bool {
		if x.Kind == diagram.KindSubqueue {
			return true
		}
		x.Text = r.Lines(x.Text)
		return true
	})
}

// CanUndo reports whether there is something to undo
func (e *Editor) CanUndo() bool {
	return e.root.CanUndo()
}

// CanRedo reports whether there is something to redo
func (e *Editor) CanRedo() bool {
	return e.root.CanRedo()
}

// Undo reverts the last mutation and re-identifies the selection in the
// restored tree
func (e *Editor) Undo() bool {
	if !e.root.Undo() {
		return false
	}
	e.Invalidate()
	e.revalidate()
	e.logger.Debug("undo", "undo_depth", e.root.UndoDepth())
	return true
}

// Redo reapplies the last undone mutation
func (e *Editor) Redo() bool {
	if !e.root.Redo() {
		return false
	}
	e.Invalidate()
	e.revalidate()
	e.logger.Debug("redo", "undo_depth", e.root.UndoDepth())
	return true
}
