package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/nsflow/internal/testutil"
	"github.com/dshills/nsflow/pkg/diagram"
)

func newTestArchive(t *testing.T) *SQLiteArchive {
	t.Helper()
	archive, err := NewSQLiteArchiveWithPath(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = archive.Close() })
	return archive
}

func TestSQLiteArchive_SaveLoad(t *testing.T) {
	archive := newTestArchive(t)
	root := testutil.SampleDiagram()
	root.Author = "ada"

	require.NoError(t, archive.Save(root))

	loaded, err := archive.Load(root.ID)
	require.NoError(t, err)
	assert.Equal(t, root.ID, loaded.ID)
	assert.Equal(t, "ada", loaded.Author)
	assert.Equal(t, root.Count(), loaded.Count())
	assert.NoError(t, diagram.Validate(loaded))

	// element IDs survive the round trip
	first := root.Main().Child(0)
	found := loaded.Node().Find(first.ID)
	require.NotNil(t, found)
	assert.Equal(t, first.Text, found.Text)
}

func TestSQLiteArchive_Revisions(t *testing.T) {
	archive := newTestArchive(t)
	root := testutil.LinearDiagram(2)

	require.NoError(t, archive.Save(root))
	root.Main().Append(diagram.NewInstruction("s2"))
	require.NoError(t, archive.Save(root))

	revs, err := archive.Revisions(root.ID)
	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.Equal(t, 2, revs[0].Number)
	assert.Equal(t, 1, revs[1].Number)

	first, err := archive.LoadRevision(root.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Main().Len())

	latest, err := archive.Load(root.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, latest.Main().Len())

	catalog, err := archive.Catalog()
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	assert.Equal(t, "linear", catalog[0].Name)
	assert.Equal(t, 2, catalog[0].Revisions)
	assert.Equal(t, 3, catalog[0].ElementCount)
}

func TestSQLiteArchive_ExistsDelete(t *testing.T) {
	archive := newTestArchive(t)
	root := testutil.LinearDiagram(1)

	exists, err := archive.Exists(root.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, archive.Save(root))
	exists, err = archive.Exists(root.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, archive.Delete(root.ID))
	_, err = archive.Load(root.ID)
	assert.ErrorIs(t, err, diagram.ErrDiagramNotFound)
	assert.ErrorIs(t, archive.Delete(root.ID), diagram.ErrDiagramNotFound)

	revs, err := archive.Revisions(root.ID)
	require.NoError(t, err)
	assert.Empty(t, revs)
}

func TestSQLiteArchive_List(t *testing.T) {
	archive := newTestArchive(t)
	a := testutil.LinearDiagram(1)
	b := testutil.SampleDiagram()
	require.NoError(t, archive.Save(a))
	require.NoError(t, archive.Save(b))

	roots, err := archive.List()
	require.NoError(t, err)
	assert.Len(t, roots, 2)
}

func TestInitializeDatabase_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	archive, err := NewSQLiteArchiveWithPath(path)
	require.NoError(t, err)
	require.NoError(t, archive.Save(testutil.LinearDiagram(1)))
	require.NoError(t, archive.Close())

	reopened, err := NewSQLiteArchiveWithPath(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	var version int
	require.NoError(t, reopened.db.QueryRow("SELECT MAX(version) FROM migrations").Scan(&version))
	assert.Equal(t, MigrationVersion, version)

	roots, err := reopened.List()
	require.NoError(t, err)
	assert.Len(t, roots, 1)
}
