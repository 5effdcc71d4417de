package editor

import (
	"fmt"

	"github.com/dshills/nsflow/pkg/diagram"
	nserrors "github.com/dshills/nsflow/pkg/errors"
	"github.com/dshills/nsflow/pkg/serial"
)

// Workspace is the set of diagrams open in one session
type Workspace struct {
	session *Session
	editors []*Editor
}

// NewWorkspace creates an empty workspace
func NewWorkspace(s *Session) *Workspace {
	if s == nil {
		s = NewSession()
	}
	return &Workspace{session: s}
}

// Session returns the shared session
func (w *Workspace) Session() *Session {
	return w.session
}

// Open adds a diagram to the workspace and returns its editor
func (w *Workspace) Open(root *diagram.Root) *Editor {
	ed := NewEditor(w.session, root)
	w.editors = append(w.editors, ed)
	return ed
}

// Close removes an editor from the workspace
func (w *Workspace) Close(ed *Editor) {
	for i, x := range w.editors {
		if x == ed {
			w.editors = append(w.editors[:i], w.editors[i+1:]...)
			return
		}
	}
}

// Editors returns the open editors in opening order
func (w *Workspace) Editors() []*Editor {
	return append([]*Editor(nil), w.editors...)
}

// SaveReport summarizes a SaveAll run
type SaveReport struct {
	Saved   []string
	Skipped []string
}

// SaveAll saves every modified diagram to repo. The user is asked once per
// diagram and once more before replacing a stored copy; within the batch a
// "yes to all" or "no to all" answer sticks. Cancelling stops the batch and
// returns ErrCancelled together with what was saved so far.
func (w *Workspace) SaveAll(repo diagram.Repository) (SaveReport, error) {
	var report SaveReport
	d := w.session.Decisions()
	d.EnterBatch()
	defer d.ExitBatch()

	for _, ed := range w.editors {
		root := ed.Root()
		if !root.Modified {
			continue
		}
		name := root.Name()

		switch d.Decide(serial.AspectSave, fmt.Sprintf("Save changes to %q?", name)) {
		case serial.Cancel:
			return report, ErrCancelled
		case serial.Decline:
			report.Skipped = append(report.Skipped, name)
			continue
		}

		exists, err := repo.Exists(root.ID)
		if err != nil {
			return report, nserrors.NewOperationalErrorWithAttrs("checking diagram", root.ID.String(), "", err,
				map[string]interface{}{"name": name})
		}
		if exists {
			switch d.Decide(serial.AspectOverwrite, fmt.Sprintf("%q is already stored. Overwrite it?", name)) {
			case serial.Cancel:
				return report, ErrCancelled
			case serial.Decline:
				report.Skipped = append(report.Skipped, name)
				continue
			}
		}

		// stamp the keywords the texts are written in
		if root.StoredKeywords == nil {
			root.StoredKeywords = w.session.Keywords().Map()
		}
		if err := repo.Save(root); err != nil {
			return report, nserrors.NewOperationalErrorWithAttrs("saving diagram", root.ID.String(), "", err,
				map[string]interface{}{"name": name, "saved": len(report.Saved)})
		}
		root.Modified = false
		report.Saved = append(report.Saved, name)
		w.session.Logger().Debug("saved diagram", "name", name, "id", root.ID)
	}
	return report, nil
}
