package gatekeeper

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"ticketgen/internal/config"
	"ticketgen/internal/models"

	"golang.org/x/sys/unix"
)

func createTestConfig() *config.Config {
	return &config.Config{
		Output: config.OutputConfig{
			Dir:          ".",
			MaxFiles:     3,
			MaxFileBytes: 16,
			MinFreeBytes: 100,
		},
	}
}

func fakeStatfs(availableBytes uint64) func(string, *unix.Statfs_t) error {
	return func(path string, stat *unix.Statfs_t) error {
		stat.Bsize = 1
		stat.Bavail = availableBytes
		return nil
	}
}

func files(contents ...string) []models.GeneratedFile {
	out := make([]models.GeneratedFile, len(contents))
	for i, c := range contents {
		out[i] = models.GeneratedFile{Name: strings.Repeat("f", i+1) + ".txt", Content: c}
	}
	return out
}

func TestCanWrite_WithinLimits_Allowed(t *testing.T) {
	gk := New(createTestConfig())
	gk.statfs = fakeStatfs(1 << 20)

	decision := gk.CanWrite(t.TempDir(), files("a", "bb"))

	if !decision.Allowed {
		t.Errorf("Expected write to be allowed, but got: %s", decision.Reason)
	}
}

func TestCanWrite_TooManyFiles_Blocked(t *testing.T) {
	gk := New(createTestConfig())
	gk.statfs = fakeStatfs(1 << 20)

	decision := gk.CanWrite(t.TempDir(), files("a", "b", "c", "d"))

	if decision.Allowed {
		t.Fatal("Expected write to be blocked when file count exceeds the limit")
	}
	if !strings.Contains(decision.Reason, "exceeds the limit of 3") {
		t.Errorf("Unexpected reason: %s", decision.Reason)
	}
}

func TestCanWrite_FileTooLarge_Blocked(t *testing.T) {
	gk := New(createTestConfig())
	gk.statfs = fakeStatfs(1 << 20)

	decision := gk.CanWrite(t.TempDir(), files("ok", strings.Repeat("x", 17)))

	if decision.Allowed {
		t.Fatal("Expected write to be blocked for an oversized file")
	}
	if decision.Details["file"] != "ff.txt" {
		t.Errorf("Expected oversized file ff.txt, got %v", decision.Details["file"])
	}
}

func TestCanWrite_InsufficientDisk_Blocked(t *testing.T) {
	gk := New(createTestConfig())
	// 2 bytes of content + 100 bytes reserve > 101 available
	gk.statfs = fakeStatfs(101)

	decision := gk.CanWrite(t.TempDir(), files("a", "b"))

	if decision.Allowed {
		t.Fatal("Expected write to be blocked when disk space is insufficient")
	}
	if !strings.Contains(decision.Reason, "insufficient disk space") {
		t.Errorf("Unexpected reason: %s", decision.Reason)
	}
}

func TestCanWrite_ZeroLimitsMeanUnlimited(t *testing.T) {
	gk := New(&config.Config{})
	gk.statfs = fakeStatfs(1 << 30)

	decision := gk.CanWrite(t.TempDir(), files("a", "b", "c", "d", strings.Repeat("x", 1000)))

	if !decision.Allowed {
		t.Errorf("Expected write to be allowed, but got: %s", decision.Reason)
	}
}

func TestCanWrite_StatfsError_Allowed(t *testing.T) {
	gk := New(createTestConfig())
	gk.statfs = func(string, *unix.Statfs_t) error {
		return errors.New("statfs unsupported")
	}

	decision := gk.CanWrite(t.TempDir(), files("a"))

	if !decision.Allowed {
		t.Errorf("Expected write to be allowed when disk stats are unavailable, got: %s", decision.Reason)
	}
}

func TestCanWrite_NonexistentDirUsesAncestor(t *testing.T) {
	root := t.TempDir()

	var statted string
	gk := New(createTestConfig())
	gk.statfs = func(path string, stat *unix.Statfs_t) error {
		statted = path
		stat.Bsize = 1
		stat.Bavail = 1 << 20
		return nil
	}

	decision := gk.CanWrite(filepath.Join(root, "not", "yet", "created"), files("a"))

	if !decision.Allowed {
		t.Fatalf("Expected write to be allowed, but got: %s", decision.Reason)
	}
	if statted != root {
		t.Errorf("Expected statfs on %q, got %q", root, statted)
	}
}

func TestCanWrite_RealFilesystem(t *testing.T) {
	gk := New(&config.Config{Output: config.OutputConfig{MaxFiles: 10, MaxFileBytes: 1024}})

	decision := gk.CanWrite(t.TempDir(), files("hello"))

	if !decision.Allowed {
		t.Errorf("Expected write to be allowed on a real temp dir, got: %s", decision.Reason)
	}
}
