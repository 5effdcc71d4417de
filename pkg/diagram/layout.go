package diagram

import (
	"unicode/utf8"
)

// Metrics controls the box sizes used by Layout
type Metrics struct {
	LineHeight int // height of one text line
	CharWidth  int // width of one character
	Padding    int // inner padding of every text box
	BarWidth   int // width of loop side bars and height of closing bars
	MinWidth   int // minimal text area width
}

// DefaultMetrics returns the metrics used when none are configured
func DefaultMetrics() Metrics {
	return Metrics{
		LineHeight: 20,
		CharWidth:  8,
		Padding:    5,
		BarWidth:   15,
		MinWidth:   40,
	}
}

// Layout is the computed geometry of a diagram. Boxes are keyed by element
// ID; a layout must be recomputed after the tree changes.
type Layout struct {
	metrics Metrics
	root    *Root
	sizes   map[ID]Size
	boxes   map[ID]BoundingBox
}

// NewLayout computes the geometry of root, placing it at the origin
func NewLayout(root *Root, m Metrics) *Layout {
	if m.LineHeight <= 0 {
		m = DefaultMetrics()
	}
	l := &Layout{
		metrics: m,
		root:    root,
		sizes:   make(map[ID]Size),
		boxes:   make(map[ID]BoundingBox),
	}
	if root == nil {
		return l
	}
	sz := l.measure(root.Node())
	l.place(root.Node(), 0, 0, sz.Width, sz.Height)
	return l
}

// Bounds returns the box of the element with the given ID
func (l *Layout) Bounds(id ID) (BoundingBox, bool) {
	bb, ok := l.boxes[id]
	return bb, ok
}

// Size returns the size of the whole diagram
func (l *Layout) Size() Size {
	if l.root == nil {
		return Size{}
	}
	return l.boxes[l.root.ID].Size()
}

// ElementAt returns the deepest element whose box contains (x, y), or nil
func (l *Layout) ElementAt(x, y int) *Element {
	if l.root == nil {
		return nil
	}
	return l.hit(l.root.Node(), Position{X: x, Y: y})
}

func (l *Layout) hit(e *Element, p Position) *Element {
	bb, ok := l.boxes[e.ID]
	if !ok || !bb.Contains(p) {
		return nil
	}
	if e.Collapsed && e.Kind.IsComposite() {
		return e
	}
	for _, c := range e.children {
		if h := l.hit(c, p); h != nil {
			return h
		}
	}
	return e
}

func (l *Layout) textSize(lines []string) Size {
	m := l.metrics
	n := len(lines)
	if n == 0 {
		n = 1
	}
	w := 0
	for _, line := range lines {
		if lw := utf8.RuneCountInString(line) * m.CharWidth; lw > w {
			w = lw
		}
	}
	if w < m.MinWidth {
		w = m.MinWidth
	}
	return Size{Width: w + 2*m.Padding, Height: n*m.LineHeight + 2*m.Padding}
}

func (l *Layout) measure(e *Element) Size {
	m := l.metrics
	var sz Size

	if e.Collapsed && e.Kind.IsComposite() {
		sz = l.textSize([]string{collapsedLabel(e)})
		l.sizes[e.ID] = sz
		return sz
	}

	switch e.Kind {
	case KindInstruction, KindCall, KindJump:
		sz = l.textSize(e.Text)

	case KindSubqueue:
		if len(e.children) == 0 {
			sz = Size{Width: m.MinWidth + 2*m.Padding, Height: m.LineHeight + 2*m.Padding}
			break
		}
		for _, c := range e.children {
			cs := l.measure(c)
			sz.Width = max(sz.Width, cs.Width)
			sz.Height += cs.Height
		}

	case KindAlternative, KindCase, KindParallel:
		hdr := Size{Height: m.BarWidth}
		if e.Kind != KindParallel {
			hdr = l.textSize(e.Text[:min(1, len(e.Text))])
			hdr.Height += m.LineHeight
		}
		branchW, branchH := 0, 0
		for _, c := range e.children {
			cs := l.measure(c)
			branchW += cs.Width
			branchH = max(branchH, cs.Height)
		}
		sz.Width = max(hdr.Width, branchW)
		sz.Height = hdr.Height + branchH
		if e.Kind == KindParallel {
			sz.Height += m.BarWidth
		}

	case KindFor, KindWhile:
		hdr := l.textSize(e.Text)
		b := l.measure(e.Child(0))
		sz = Size{Width: max(hdr.Width, m.BarWidth+b.Width), Height: hdr.Height + b.Height}

	case KindRepeat:
		foot := l.textSize(e.Text)
		b := l.measure(e.Child(0))
		sz = Size{Width: max(foot.Width, m.BarWidth+b.Width), Height: b.Height + foot.Height}

	case KindForever:
		hdr := l.textSize(nil)
		b := l.measure(e.Child(0))
		sz = Size{Width: max(hdr.Width, m.BarWidth+b.Width), Height: hdr.Height + b.Height + m.BarWidth}

	case KindTry:
		hdr := l.textSize(e.Text)
		sz = Size{Width: hdr.Width, Height: m.BarWidth}
		for _, c := range e.children {
			b := l.measure(c)
			sz.Width = max(sz.Width, m.BarWidth+b.Width)
			sz.Height += hdr.Height + b.Height
		}

	case KindRoot:
		hdr := l.textSize(e.Text)
		b := l.measure(e.Child(0))
		sz = Size{Width: max(hdr.Width, b.Width+2*m.Padding), Height: hdr.Height + b.Height + m.Padding}
	}

	l.sizes[e.ID] = sz
	return sz
}

func (l *Layout) place(e *Element, x, y, w, h int) {
	if e == nil {
		return
	}
	m := l.metrics
	l.boxes[e.ID] = NewBoundingBox(x, y, w, h)

	if e.Collapsed && e.Kind.IsComposite() {
		return
	}

	switch e.Kind {
	case KindSubqueue:
		cy := y
		for _, c := range e.children {
			ch := l.sizes[c.ID].Height
			l.place(c, x, cy, w, ch)
			cy += ch
		}

	case KindAlternative, KindCase, KindParallel:
		top := m.BarWidth
		bottom := 0
		if e.Kind == KindParallel {
			bottom = m.BarWidth
		} else {
			top = l.textSize(e.Text[:min(1, len(e.Text))]).Height + m.LineHeight
		}
		n := len(e.children)
		if n == 0 {
			return
		}
		total := 0
		for _, c := range e.children {
			total += l.sizes[c.ID].Width
		}
		extra := w - total
		cx := x
		for i, c := range e.children {
			cw := l.sizes[c.ID].Width + extra/n
			if i == n-1 {
				cw = x + w - cx
			}
			l.place(c, cx, y+top, cw, h-top-bottom)
			cx += cw
		}

	case KindFor, KindWhile:
		top := l.textSize(e.Text).Height
		l.place(e.Child(0), x+m.BarWidth, y+top, w-m.BarWidth, h-top)

	case KindRepeat:
		foot := l.textSize(e.Text).Height
		l.place(e.Child(0), x+m.BarWidth, y, w-m.BarWidth, h-foot)

	case KindForever:
		top := l.textSize(nil).Height
		l.place(e.Child(0), x+m.BarWidth, y+top, w-m.BarWidth, h-top-m.BarWidth)

	case KindTry:
		hdr := l.textSize(e.Text).Height
		cy := y
		for _, c := range e.children {
			cy += hdr
			ch := l.sizes[c.ID].Height
			l.place(c, x+m.BarWidth, cy, w-m.BarWidth, ch)
			cy += ch
		}

	case KindRoot:
		top := l.textSize(e.Text).Height
		l.place(e.Child(0), x+m.Padding, y+top, w-2*m.Padding, h-top-m.Padding)
	}
}

// HasClosingBar reports whether the element draws a visual closing area
// below its last body element
func HasClosingBar(k Kind) bool {
	switch k {
	case KindRepeat, KindForever, KindParallel, KindTry:
		return true
	default:
		return false
	}
}

func collapsedLabel(e *Element) string {
	if line := e.FirstLine(); line != "" {
		return line + " ..."
	}
	return e.Kind.String() + " ..."
}
