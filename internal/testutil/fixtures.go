package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"ticketgen/internal/models"
)

// CreateTestFileSet creates a file set with default entries
func CreateTestFileSet(overrides ...func(*models.FileSet)) *models.FileSet {
	set := models.NewFileSet(
		models.GeneratedFile{Name: "main.py", Content: "print(1)\n"},
		models.GeneratedFile{Name: "helper.py", Content: "  def add(a, b):\n    return a + b  "},
	)

	for _, override := range overrides {
		override(set)
	}

	return set
}

// ReadFile reads name under dir, failing the test if it cannot.
func ReadFile(t *testing.T, dir, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	if err != nil {
		t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(data)
}

// ListFiles returns every regular file under dir as slash-separated relative paths.
func ListFiles(t *testing.T, dir string) []string {
	t.Helper()

	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatalf("failed to list %s: %v", dir, err)
	}
	return files
}
