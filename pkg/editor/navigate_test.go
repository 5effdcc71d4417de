package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/nsflow/pkg/diagram"
	"github.com/dshills/nsflow/pkg/editor"
)

func TestMoveSelection_ForeverClosingBar(t *testing.T) {
	a := diagram.NewInstruction("a")
	loop := diagram.NewForever(diagram.NewSubqueue(a))
	b := diagram.NewInstruction("b")
	root := diagram.NewRoot("r", loop, b)
	ed := editor.NewEditor(nil, root)

	// Down enters the loop body
	ed.Select(loop)
	assert.True(t, ed.MoveSelection(editor.MoveDown))
	assert.Same(t, a, ed.Selected())

	// Down from the last body element skips the closing bar
	assert.True(t, ed.MoveSelection(editor.MoveDown))
	assert.Same(t, b, ed.Selected())

	// nothing below the last element
	assert.False(t, ed.MoveSelection(editor.MoveDown))
	assert.Same(t, b, ed.Selected())

	assert.True(t, ed.MoveSelection(editor.MoveUp))
	assert.Same(t, loop, ed.Selected())
}

func TestMoveSelection_Linear(t *testing.T) {
	s0, s1 := diagram.NewInstruction("s0"), diagram.NewInstruction("s1")
	root := diagram.NewRoot("r", s0, s1)
	ed := editor.NewEditor(nil, root)

	// Down from the root enters the main queue
	assert.True(t, ed.MoveSelection(editor.MoveDown))
	assert.Same(t, s0, ed.Selected())

	assert.True(t, ed.MoveSelection(editor.MoveDown))
	assert.Same(t, s1, ed.Selected())

	assert.True(t, ed.MoveSelection(editor.MoveUp))
	assert.True(t, ed.MoveSelection(editor.MoveUp))
	assert.Same(t, root.Node(), ed.Selected())

	assert.False(t, ed.MoveSelection(editor.Direction(42)))
}

func TestMoveSelection_AlternativeBranches(t *testing.T) {
	thenI := diagram.NewInstruction("yes")
	elseI := diagram.NewInstruction("no")
	alt := diagram.NewAlternative("c", diagram.NewSubqueue(thenI), diagram.NewSubqueue(elseI))
	root := diagram.NewRoot("r", alt)
	ed := editor.NewEditor(nil, root)

	ed.Select(thenI)
	assert.True(t, ed.MoveSelection(editor.MoveRight))
	assert.Same(t, elseI, ed.Selected())

	assert.True(t, ed.MoveSelection(editor.MoveLeft))
	assert.Same(t, thenI, ed.Selected())

	assert.True(t, ed.MoveSelection(editor.MoveUp))
	assert.Same(t, alt, ed.Selected())
}
