package writer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"ticketgen/internal/config"
	"ticketgen/internal/gatekeeper"
	"ticketgen/internal/interfaces"
	"ticketgen/internal/mocks"
	"ticketgen/internal/models"
	"ticketgen/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestWriter(t *testing.T) (*Writer, string, *bytes.Buffer) {
	t.Helper()

	root := t.TempDir()
	var progress bytes.Buffer
	cfg := config.Default()
	cfg.Output.Dir = root

	return New(root, gatekeeper.New(cfg), &progress), root, &progress
}

func TestWriteAll_WritesTrimmedContentInOrder(t *testing.T) {
	w, root, progress := newTestWriter(t)

	written, err := w.WriteAll(context.Background(), testutil.CreateTestFileSet())
	require.NoError(t, err)

	assert.Equal(t, []string{"main.py", "helper.py"}, written)
	assert.Equal(t, "print(1)", testutil.ReadFile(t, root, "main.py"))
	assert.Equal(t, "def add(a, b):\n    return a + b", testutil.ReadFile(t, root, "helper.py"))
	assert.Equal(t, "generated file: main.py\ngenerated file: helper.py\n", progress.String())
	assert.ElementsMatch(t, []string{"main.py", "helper.py"}, testutil.ListFiles(t, root))
}

func TestWriteAll_FilePermissions(t *testing.T) {
	w, root, _ := newTestWriter(t)

	_, err := w.WriteAll(context.Background(), models.NewFileSet(models.GeneratedFile{Name: "a.txt", Content: "a"}))
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestWriteAll_CreatesNestedDirectories(t *testing.T) {
	w, root, _ := newTestWriter(t)

	files := models.NewFileSet(
		models.GeneratedFile{Name: "cmd/app/main.go", Content: "package main"},
		models.GeneratedFile{Name: `internal\util.go`, Content: "package internal"},
	)

	_, err := w.WriteAll(context.Background(), files)
	require.NoError(t, err)

	assert.Equal(t, "package main", testutil.ReadFile(t, root, "cmd/app/main.go"))
	assert.Equal(t, "package internal", testutil.ReadFile(t, root, "internal/util.go"))
}

func TestWriteAll_ReportsCleanedNames(t *testing.T) {
	w, root, progress := newTestWriter(t)

	files := models.NewFileSet(
		models.GeneratedFile{Name: " main.py ", Content: "print(1)"},
		models.GeneratedFile{Name: `src\app.go`, Content: "package src"},
		models.GeneratedFile{Name: "lib/util.py", Content: "X = 1"},
	)

	written, err := w.WriteAll(context.Background(), files)
	require.NoError(t, err)

	assert.Equal(t, []string{"main.py", "src/app.go", "lib/util.py"}, written)
	assert.Equal(t, "generated file: main.py\ngenerated file: src/app.go\ngenerated file: lib/util.py\n", progress.String())
	assert.ElementsMatch(t, []string{"main.py", "src/app.go", "lib/util.py"}, testutil.ListFiles(t, root))
}

func TestWriteAll_SymlinkEscapeWritesNothing(t *testing.T) {
	w, root, progress := newTestWriter(t)
	outside := t.TempDir()
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "link")))

	files := models.NewFileSet(
		models.GeneratedFile{Name: "ok.py", Content: "1"},
		models.GeneratedFile{Name: "link/x.txt", Content: "pwned"},
	)

	written, err := w.WriteAll(context.Background(), files)

	require.Error(t, err)
	assert.Equal(t, models.ErrorKindUnsafePath, models.KindOf(err))
	assert.Empty(t, written)
	assert.Empty(t, progress.String())
	assert.Empty(t, testutil.ListFiles(t, outside))
	_, statErr := os.Stat(filepath.Join(root, "ok.py"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteAll_OverwritesAndIsIdempotent(t *testing.T) {
	w, root, _ := newTestWriter(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.py"), []byte("old content"), 0644))

	files := models.NewFileSet(models.GeneratedFile{Name: "main.py", Content: "print(1)"})

	for i := 0; i < 2; i++ {
		_, err := w.WriteAll(context.Background(), files)
		require.NoError(t, err)
		assert.Equal(t, "print(1)", testutil.ReadFile(t, root, "main.py"))
	}
	assert.Equal(t, []string{"main.py"}, testutil.ListFiles(t, root))
}

func TestWriteAll_UnsafeNameWritesNothing(t *testing.T) {
	names := []string{"../../etc/passwd", "/etc/passwd", "", `C:\evil.bat`}

	for _, bad := range names {
		t.Run(bad, func(t *testing.T) {
			w, root, progress := newTestWriter(t)

			files := models.NewFileSet(
				models.GeneratedFile{Name: "good.py", Content: "ok"},
				models.GeneratedFile{Name: bad, Content: "pwned"},
			)

			written, err := w.WriteAll(context.Background(), files)

			require.Error(t, err)
			assert.Equal(t, models.ErrorKindUnsafePath, models.KindOf(err))
			assert.Empty(t, written)
			assert.Empty(t, testutil.ListFiles(t, root))
			assert.Empty(t, progress.String())
		})
	}
}

func TestWriteAll_CollidingNamesRejected(t *testing.T) {
	w, root, _ := newTestWriter(t)

	files := models.NewFileSet(
		models.GeneratedFile{Name: "main.py", Content: "a"},
		models.GeneratedFile{Name: "./main.py", Content: "b"},
	)

	_, err := w.WriteAll(context.Background(), files)

	require.Error(t, err)
	assert.Equal(t, models.ErrorKindUnsafePath, models.KindOf(err))
	assert.Contains(t, err.Error(), "resolve to the same file")
	assert.Empty(t, testutil.ListFiles(t, root))
}

func TestWriteAll_GatekeeperDenies(t *testing.T) {
	root := t.TempDir()
	gk := mocks.NewMockGatekeeper(t)
	gk.EXPECT().
		CanWrite(root, mock.MatchedBy(func(files []models.GeneratedFile) bool {
			return len(files) == 2 && files[0].Content == "print(1)"
		})).
		Return(interfaces.GateDecision{Allowed: false, Reason: "insufficient disk space"}).
		Once()

	w := New(root, gk, nil)

	_, err := w.WriteAll(context.Background(), testutil.CreateTestFileSet())

	require.Error(t, err)
	assert.Equal(t, models.ErrorKindWrite, models.KindOf(err))
	assert.Contains(t, err.Error(), "insufficient disk space")
	assert.Empty(t, testutil.ListFiles(t, root))
}

func TestWriteAll_StageFailureLeavesNothing(t *testing.T) {
	w, root, progress := newTestWriter(t)
	// a regular file where a directory is needed
	require.NoError(t, os.WriteFile(filepath.Join(root, "blocker"), []byte("x"), 0644))

	files := models.NewFileSet(
		models.GeneratedFile{Name: "first.py", Content: "1"},
		models.GeneratedFile{Name: "blocker/second.py", Content: "2"},
	)

	written, err := w.WriteAll(context.Background(), files)

	require.Error(t, err)
	assert.Equal(t, models.ErrorKindWrite, models.KindOf(err))
	assert.Contains(t, err.Error(), "blocker/second.py")
	assert.Empty(t, written)
	assert.Equal(t, []string{"blocker"}, testutil.ListFiles(t, root))
	assert.Empty(t, progress.String())
}

func TestWriteAll_TargetIsDirectory(t *testing.T) {
	w, root, _ := newTestWriter(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg"), 0755))

	_, err := w.WriteAll(context.Background(), models.NewFileSet(models.GeneratedFile{Name: "pkg", Content: "x"}))

	require.Error(t, err)
	assert.Equal(t, models.ErrorKindWrite, models.KindOf(err))
	assert.Contains(t, err.Error(), "is a directory")
	assert.Empty(t, testutil.ListFiles(t, root))
}

func TestWriteAll_CancelledContext(t *testing.T) {
	w, root, _ := newTestWriter(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := w.WriteAll(ctx, testutil.CreateTestFileSet())

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, testutil.ListFiles(t, root))
}

func TestWriteAll_EmptySet(t *testing.T) {
	w, _, _ := newTestWriter(t)

	_, err := w.WriteAll(context.Background(), models.NewFileSet())

	require.Error(t, err)
	assert.Equal(t, models.ErrorKindEmptyResult, models.KindOf(err))
}
