package diagram

import (
	"testing"
)

func TestLayout_SimpleGeometry(t *testing.T) {
	a := NewInstruction("a")
	root := NewRoot("r", a)
	l := NewLayout(root, DefaultMetrics())

	if got := l.Size(); got != (Size{Width: 60, Height: 65}) {
		t.Errorf("Expected diagram size 60x65, got %+v", got)
	}
	bb, ok := l.Bounds(a.ID)
	if !ok {
		t.Fatal("Expected bounds for the instruction")
	}
	if bb != NewBoundingBox(5, 30, 50, 30) {
		t.Errorf("Unexpected instruction box %+v", bb)
	}
	if bb.Right() != 55 || bb.Bottom() != 60 {
		t.Errorf("Expected exclusive edges 55/60, got %d/%d", bb.Right(), bb.Bottom())
	}

	tests := []struct {
		name string
		x, y int
		want *Element
	}{
		{"instruction", 10, 40, a},
		{"root header", 10, 10, root.Node()},
		{"root padding", 2, 40, root.Node()},
		{"outside", 100, 100, nil},
		{"just past bottom", 10, 65, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.ElementAt(tt.x, tt.y); got != tt.want {
				t.Errorf("ElementAt(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestLayout_ForeverClosingBar(t *testing.T) {
	a := NewInstruction("a")
	loop := NewForever(NewSubqueue(a))
	root := NewRoot("r", loop)
	l := NewLayout(root, DefaultMetrics())

	loopBox, _ := l.Bounds(loop.ID)
	if loopBox != NewBoundingBox(5, 30, 65, 75) {
		t.Errorf("Unexpected loop box %+v", loopBox)
	}
	bodyBox, _ := l.Bounds(loop.Body().ID)
	if bodyBox != NewBoundingBox(20, 60, 50, 30) {
		t.Errorf("Unexpected body box %+v", bodyBox)
	}

	if got := l.ElementAt(30, 70); got != a {
		t.Errorf("Expected body instruction, got %v", got)
	}
	// closing bar below the body and the side bar belong to the loop
	if got := l.ElementAt(30, 95); got != loop {
		t.Errorf("Expected loop at closing bar, got %v", got)
	}
	if got := l.ElementAt(10, 70); got != loop {
		t.Errorf("Expected loop at side bar, got %v", got)
	}
}

func TestLayout_AlternativeBranches(t *testing.T) {
	a := NewInstruction("a")
	alt := NewAlternative("c", NewSubqueue(a), nil)
	root := NewRoot("r", alt)
	l := NewLayout(root, DefaultMetrics())

	if got := l.ElementAt(10, 40); got != alt {
		t.Errorf("Expected alternative header, got %v", got)
	}
	if got := l.ElementAt(10, 90); got != a {
		t.Errorf("Expected then-branch instruction, got %v", got)
	}
	if got := l.ElementAt(60, 90); got != alt.Child(1) {
		t.Errorf("Expected empty else queue, got %v", got)
	}
}

func TestLayout_Collapsed(t *testing.T) {
	a := NewInstruction("a")
	loop := NewForever(NewSubqueue(a))
	loop.Collapsed = true
	root := NewRoot("r", loop)
	l := NewLayout(root, DefaultMetrics())

	if got := l.ElementAt(10, 35); got != loop {
		t.Errorf("Expected collapsed loop, got %v", got)
	}
	if _, ok := l.Bounds(a.ID); ok {
		t.Error("Expected no box for elements hidden in a collapsed composite")
	}
}

func TestLayout_ZeroMetricsAndNilRoot(t *testing.T) {
	l := NewLayout(NewRoot("r"), Metrics{})
	if l.Size().Width == 0 {
		t.Error("Expected default metrics for zero metrics")
	}

	empty := NewLayout(nil, DefaultMetrics())
	if empty.ElementAt(0, 0) != nil || empty.Size() != (Size{}) {
		t.Error("Expected empty layout for nil root")
	}
}

func TestLayout_SampleCoversEveryElement(t *testing.T) {
	root := NewRoot("sample",
		NewFor("for i := 1 to n", NewSubqueue(NewInstruction("x"))),
		NewCase([]string{"x", "1", "default"}),
		NewRepeat("until done", nil),
		NewParallel(),
		NewTry("e", nil, nil, nil),
	)
	l := NewLayout(root, DefaultMetrics())

	root.Node().Walk(func(e *Element) bool {
		bb, ok := l.Bounds(e.ID)
		if !ok || bb.IsEmpty() {
			t.Errorf("Expected non-empty box for %s", e.Kind)
		}
		if got := l.ElementAt(bb.Left(), bb.Top()); got == nil {
			t.Errorf("Expected a hit at the corner of %s", e.Kind)
		}
		return true
	})
}
