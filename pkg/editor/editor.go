package editor

import (
	"github.com/charmbracelet/log"

	"github.com/dshills/nsflow/pkg/diagram"
)

// Editor binds one diagram to a session and holds its selection
type Editor struct {
	session *Session
	root    *diagram.Root
	sel     selection
	layout  *diagram.Layout
	index   map[diagram.ID]*diagram.Element
	logger  *log.Logger
}

// NewEditor opens root for editing. The root itself starts selected.
func NewEditor(s *Session, root *diagram.Root) *Editor {
	if s == nil {
		s = NewSession()
	}
	if root == nil {
		root = diagram.NewRoot("main")
	}
	e := &Editor{
		session: s,
		root:    root,
		logger:  s.Logger().With("diagram", root.Name()),
	}
	e.sel = single(root.ID)
	return e
}

// Root returns the diagram being edited
func (e *Editor) Root() *diagram.Root {
	return e.root
}

// Session returns the owning session
func (e *Editor) Session() *Session {
	return e.session
}

// Layout returns the current geometry, recomputing it after changes
func (e *Editor) Layout() *diagram.Layout {
	if e.layout == nil {
		e.layout = diagram.NewLayout(e.root, e.session.Metrics())
	}
	return e.layout
}

// Invalidate drops cached geometry and lookups. Callers that modify the
// tree directly must call it afterwards.
func (e *Editor) Invalidate() {
	e.layout = nil
	e.index = nil
}

// lookup resolves an element ID within the current tree
func (e *Editor) lookup(id diagram.ID) *diagram.Element {
	if e.index == nil {
		e.index = make(map[diagram.ID]*diagram.Element)
		e.root.Node().Walk(func(x *diagram.Element) bool {
			e.index[x.ID] = x
			return true
		})
	}
	return e.index[id]
}

func (e *Editor) isRoot(el *diagram.Element) bool {
	return el == e.root.Node()
}
