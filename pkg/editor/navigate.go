package editor

import (
	"github.com/dshills/nsflow/pkg/diagram"
)

// Direction is a cursor movement on the drawn diagram
type Direction int

const (
	MoveUp Direction = iota
	MoveDown
	MoveLeft
	MoveRight
)

// probe distance in pixels outside the current box
const probe = 2

// MoveSelection moves a single selection along the drawn structure. Down
// and Right enter the first body of an expanded composite; otherwise the
// neighbouring box is found by probing just outside the current one.
// It reports whether the selection changed.
func (e *Editor) MoveSelection(dir Direction) bool {
	els := e.SelectedElements()
	if len(els) == 0 {
		return false
	}
	cur := els[0]
	if dir == MoveDown || dir == MoveRight {
		cur = els[len(els)-1]
		if next := e.descend(cur); next != nil {
			e.sel = single(next.ID)
			return true
		}
	}

	l := e.Layout()
	bb, ok := l.Bounds(cur.ID)
	if !ok {
		return false
	}

	var hit *diagram.Element
	switch dir {
	case MoveUp:
		hit = l.ElementAt(bb.Left()+probe, bb.Top()-probe)
	case MoveLeft:
		hit = l.ElementAt(bb.Left()-probe, bb.Top()+probe)
	case MoveRight:
		hit = l.ElementAt(bb.Right()+probe, bb.Top()+probe)
	case MoveDown:
		x := bb.Left() + probe
		hit = l.ElementAt(x, bb.Bottom()+probe)
		// landing in an enclosing box means we hit its closing bar or the
		// unused tail of a stretched branch: step out below it
		for hit != nil && !e.isRoot(hit) && hit.IsAncestorOf(cur) {
			ab, _ := l.Bounds(hit.ID)
			hit = l.ElementAt(x, ab.Bottom()+probe)
		}
		if hit != nil && e.isRoot(hit) {
			hit = nil
		}
	default:
		return false
	}

	hit = e.normalizeHit(hit, cur, dir)
	if hit == nil || hit == cur {
		return false
	}
	e.sel = single(hit.ID)
	e.logger.Debug("selection moved", "dir", dir, "element", hit.ID)
	return true
}

// descend returns the first element inside an expanded composite or the
// root, or nil if cur cannot be entered
func (e *Editor) descend(cur *diagram.Element) *diagram.Element {
	if cur.Collapsed || !(cur.Kind.IsComposite() || cur.Kind == diagram.KindRoot) {
		return nil
	}
	body := cur.Body()
	if body == nil {
		return nil
	}
	if first := body.Child(0); first != nil {
		return first
	}
	return body
}

// normalizeHit maps a probe result onto a selectable target
func (e *Editor) normalizeHit(hit, cur *diagram.Element, dir Direction) *diagram.Element {
	if hit == nil {
		return nil
	}
	if e.isRoot(hit) {
		if dir == MoveUp && hit.IsAncestorOf(cur) {
			return hit
		}
		return nil
	}
	if hit.Kind != diagram.KindSubqueue {
		return hit
	}
	if hit.IsAncestorOf(cur) {
		owner := hit.Parent()
		if owner == nil || (e.isRoot(owner) && dir != MoveUp) {
			return nil
		}
		return owner
	}
	if last := hit.Child(hit.Len() - 1); last != nil {
		return last
	}
	return hit
}
