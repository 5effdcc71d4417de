package storage

import (
	"path/filepath"
	"testing"

	"github.com/dshills/nsflow/internal/testutil"
	"github.com/stretchr/testify/require"
)

// BenchmarkLoadDiagram_Small benchmarks loading a diagram with 10 elements
func BenchmarkLoadDiagram_Small(b *testing.B) {
	benchmarkLoadDiagram(b, 2, 4)
}

// BenchmarkLoadDiagram_Typical benchmarks loading a diagram with ~50 elements
func BenchmarkLoadDiagram_Typical(b *testing.B) {
	benchmarkLoadDiagram(b, 5, 8)
}

// BenchmarkLoadDiagram_Large benchmarks loading a diagram with ~500 elements
func BenchmarkLoadDiagram_Large(b *testing.B) {
	benchmarkLoadDiagram(b, 10, 40)
}

func benchmarkLoadDiagram(b *testing.B, depth, width int) {
	archive, err := NewSQLiteArchiveWithPath(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, err)
	defer func() { _ = archive.Close() }()

	root := testutil.NestedDiagram(depth, width)
	require.NoError(b, archive.Save(root))
	want := root.Count()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		loaded, err := archive.Load(root.ID)
		if err != nil {
			b.Fatal(err)
		}
		if got := loaded.Count(); got != want {
			b.Fatalf("expected %d elements, got %d", want, got)
		}
	}
	b.StopTimer()

	b.ReportMetric(float64(want), "elements")
}

// BenchmarkSave benchmarks appending revisions of one diagram
func BenchmarkSave(b *testing.B) {
	archive, err := NewSQLiteArchiveWithPath(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, err)
	defer func() { _ = archive.Close() }()

	root := testutil.NestedDiagram(5, 8)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := archive.Save(root); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkFilesystemSave benchmarks the YAML repository
func BenchmarkFilesystemSave(b *testing.B) {
	repo, err := NewFilesystemRepositoryWithPath(b.TempDir())
	require.NoError(b, err)

	root := testutil.NestedDiagram(5, 8)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := repo.Save(root); err != nil {
			b.Fatal(err)
		}
	}
}
