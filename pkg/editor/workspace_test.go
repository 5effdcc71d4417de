package editor_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/nsflow/internal/testutil"
	"github.com/dshills/nsflow/pkg/diagram"
	"github.com/dshills/nsflow/pkg/editor"
	nserrors "github.com/dshills/nsflow/pkg/errors"
	"github.com/dshills/nsflow/pkg/serial"
)

func openModified(ws *editor.Workspace, names ...string) []*diagram.Root {
	roots := make([]*diagram.Root, len(names))
	for i, name := range names {
		roots[i] = diagram.NewRoot(name)
		roots[i].Modified = true
		ws.Open(roots[i])
	}
	return roots
}

func TestSaveAll_LatchesNoToAll(t *testing.T) {
	prompter := &testutil.ScriptedPrompter{Answers: []serial.Choice{serial.ChoiceContinue, serial.ChoiceNoToAll}}
	s := editor.NewSession()
	s.SetPrompter(prompter)
	ws := editor.NewWorkspace(s)
	repo := testutil.NewMemoryRepository()

	roots := openModified(ws, "a", "b", "c")
	clean := diagram.NewRoot("clean")
	clean.Modified = false
	ws.Open(clean)

	report, err := ws.SaveAll(repo)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, report.Saved)
	assert.Equal(t, []string{"b", "c"}, report.Skipped)
	assert.Equal(t, 2, prompter.Calls(), "c is declined without asking")
	assert.Equal(t, `Save changes to "a"?`, prompter.Prompts[0])

	assert.False(t, roots[0].Modified)
	assert.Equal(t, "for", roots[0].StoredKeywords["preFor"], "saved diagrams record their keywords")
	assert.True(t, roots[1].Modified)
	assert.Equal(t, 1, repo.Saves)
	assert.Equal(t, 0, s.Decisions().Depth())
}

func TestSaveAll_OverwriteAsked(t *testing.T) {
	prompter := &testutil.ScriptedPrompter{Answers: []serial.Choice{
		serial.ChoiceYesToAll, // save a
		serial.ChoiceSkip,     // a is stored already
		serial.ChoiceContinue, // b is stored already
	}}
	s := editor.NewSession()
	s.SetPrompter(prompter)
	ws := editor.NewWorkspace(s)
	repo := testutil.NewMemoryRepository()

	roots := openModified(ws, "a", "b")
	require.NoError(t, repo.Save(roots[0]))
	require.NoError(t, repo.Save(roots[1]))

	report, err := ws.SaveAll(repo)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, report.Saved)
	assert.Equal(t, []string{"a"}, report.Skipped)
	assert.Equal(t, 3, prompter.Calls())
}

func TestSaveAll_Cancel(t *testing.T) {
	prompter := &testutil.ScriptedPrompter{}
	s := editor.NewSession()
	s.SetPrompter(prompter)
	ws := editor.NewWorkspace(s)
	openModified(ws, "a", "b")

	report, err := ws.SaveAll(testutil.NewMemoryRepository())
	assert.ErrorIs(t, err, editor.ErrCancelled)
	assert.Empty(t, report.Saved)
	assert.Equal(t, 1, prompter.Calls())
	assert.Equal(t, 0, s.Decisions().Depth())
}

type failingRepository struct {
	*testutil.MemoryRepository
}

func (failingRepository) Save(*diagram.Root) error {
	return errors.New("disk full")
}

func TestSaveAll_RepositoryError(t *testing.T) {
	ws := editor.NewWorkspace(nil)
	roots := openModified(ws, "a")

	_, err := ws.SaveAll(failingRepository{testutil.NewMemoryRepository()})
	var opErr *nserrors.OperationalError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "saving diagram", opErr.Operation)
	assert.Equal(t, roots[0].ID.String(), opErr.DiagramID)
	assert.Equal(t, "a", opErr.Attributes["name"])
	assert.True(t, roots[0].Modified)
}

func TestWorkspace_OpenClose(t *testing.T) {
	ws := editor.NewWorkspace(nil)
	require.NotNil(t, ws.Session())

	a := ws.Open(diagram.NewRoot("a"))
	b := ws.Open(diagram.NewRoot("b"))
	assert.Same(t, ws.Session(), a.Session())
	assert.Len(t, ws.Editors(), 2)

	ws.Close(a)
	assert.Equal(t, []*editor.Editor{b}, ws.Editors())
	ws.Close(a)
	assert.Len(t, ws.Editors(), 1)
}
