package sanitizer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var (
	ErrEmptyPath     = errors.New("empty file name")
	ErrInvalidChar   = errors.New("file name contains a NUL byte")
	ErrAbsolutePath  = errors.New("absolute file names are not allowed")
	ErrPathTraversal = errors.New("file name escapes the output directory")
)

// CleanRelativePath validates a model-supplied file name and returns it as a
// cleaned, slash-separated path relative to the output directory.
// Backslashes are treated as separators.
func CleanRelativePath(name string) (string, error) {
	cleaned := strings.TrimSpace(name)
	if cleaned == "" {
		return "", ErrEmptyPath
	}

	if strings.ContainsRune(cleaned, 0) {
		return "", fmt.Errorf("%w: %q", ErrInvalidChar, name)
	}

	cleaned = strings.ReplaceAll(cleaned, `\`, "/")

	if strings.HasPrefix(cleaned, "/") || hasDriveLetter(cleaned) || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("%w: %q", ErrAbsolutePath, name)
	}

	cleaned = path.Clean(cleaned)

	if cleaned == "." {
		return "", fmt.Errorf("%w: %q", ErrEmptyPath, name)
	}

	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", ErrPathTraversal, name)
	}

	return cleaned, nil
}

// ResolveWithin returns the absolute on-disk path for name under root.
func ResolveWithin(root, name string) (string, error) {
	cleaned, err := CleanRelativePath(name)
	if err != nil {
		return "", err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output directory: %w", err)
	}

	target := filepath.Join(absRoot, filepath.FromSlash(cleaned))

	if !within(absRoot, target) {
		return "", fmt.Errorf("%w: %q", ErrPathTraversal, name)
	}

	if err := checkSymlinks(absRoot, target); err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrPathTraversal, name, err)
	}

	return target, nil
}

// checkSymlinks resolves the deepest existing directory on the way to target
// and makes sure it still lies under the resolved root. A root that does not
// exist yet has nothing inside it to follow.
func checkSymlinks(absRoot, target string) error {
	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	dir := filepath.Dir(target)
	for {
		if _, err := os.Lstat(dir); err == nil {
			break
		}
		if dir == absRoot {
			return nil
		}
		dir = filepath.Dir(dir)
	}

	realDir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return err
	}

	if !within(realRoot, realDir) {
		return fmt.Errorf("%s links outside the output directory", dir)
	}
	return nil
}

func within(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// NeedsSanitization reports whether name differs from its cleaned form or is rejected.
func NeedsSanitization(name string) bool {
	cleaned, err := CleanRelativePath(name)
	return err != nil || cleaned != name
}

func hasDriveLetter(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
