package writer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"ticketgen/internal/interfaces"
	"ticketgen/internal/models"
	"ticketgen/internal/sanitizer"
)

const tempPattern = ".ticketgen-*.tmp"

// Writer materializes a file set under a root directory. Nothing is written
// unless every name is safe and the gatekeeper allows the batch; all contents
// are staged to temp files before any target is replaced.
type Writer struct {
	root       string
	gatekeeper interfaces.Gatekeeper
	progress   io.Writer
}

type plannedFile struct {
	name    string
	target  string
	content string
	temp    string
}

func New(root string, gatekeeper interfaces.Gatekeeper, progress io.Writer) *Writer {
	if progress == nil {
		progress = io.Discard
	}
	return &Writer{
		root:       root,
		gatekeeper: gatekeeper,
		progress:   progress,
	}
}

// WriteAll writes every file in mapping order and returns the names written.
// Names are reported in their cleaned form, which is the path actually created
// under the root.
func (w *Writer) WriteAll(ctx context.Context, files *models.FileSet) ([]string, error) {
	plan, err := w.plan(files)
	if err != nil {
		return nil, err
	}

	if w.gatekeeper != nil {
		batch := make([]models.GeneratedFile, len(plan))
		for i, p := range plan {
			batch[i] = models.GeneratedFile{Name: p.name, Content: p.content}
		}
		decision := w.gatekeeper.CanWrite(w.root, batch)
		if !decision.Allowed {
			slog.Warn("output rejected", "reason", decision.Reason, "details", decision.Details)
			return nil, models.Errorf(models.ErrorKindWrite, "refusing to write output: %s", decision.Reason)
		}
	}

	if err := w.stage(ctx, plan); err != nil {
		return nil, err
	}

	return w.commit(plan)
}

func (w *Writer) plan(files *models.FileSet) ([]*plannedFile, error) {
	if files.Len() == 0 {
		return nil, models.Errorf(models.ErrorKindEmptyResult, "no files to write")
	}

	seen := make(map[string]string, files.Len())
	plan := make([]*plannedFile, 0, files.Len())

	for _, f := range files.Files() {
		name := f.Name
		if sanitizer.NeedsSanitization(name) {
			cleaned, err := sanitizer.CleanRelativePath(name)
			if err != nil {
				return nil, models.Errorf(models.ErrorKindUnsafePath, "%w", err)
			}
			slog.Warn("normalized generated file name", "name", name, "cleaned", cleaned)
			name = cleaned
		}

		target, err := sanitizer.ResolveWithin(w.root, name)
		if err != nil {
			return nil, models.Errorf(models.ErrorKindUnsafePath, "%w", err)
		}

		if other, ok := seen[target]; ok {
			return nil, models.Errorf(models.ErrorKindUnsafePath, "%q and %q resolve to the same file", other, f.Name)
		}
		seen[target] = f.Name

		plan = append(plan, &plannedFile{
			name:    name,
			target:  target,
			content: strings.TrimSpace(f.Content),
		})
	}

	return plan, nil
}

func (w *Writer) stage(ctx context.Context, plan []*plannedFile) error {
	for _, p := range plan {
		if err := ctx.Err(); err != nil {
			cleanup(plan)
			return models.Errorf(models.ErrorKindWrite, "write cancelled: %w", err)
		}

		if err := stageFile(p); err != nil {
			cleanup(plan)
			return models.Errorf(models.ErrorKindWrite, "failed to write %s: %w", p.name, err)
		}

		slog.Debug("staged file", "file", p.name, "temp", p.temp, "bytes", len(p.content))
	}
	return nil
}

func stageFile(p *plannedFile) error {
	dir := filepath.Dir(p.target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if info, err := os.Stat(p.target); err == nil && info.IsDir() {
		return fmt.Errorf("%s is a directory", p.target)
	}

	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	p.temp = tmp.Name()

	if _, err := tmp.WriteString(p.content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(p.temp, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	return nil
}

func (w *Writer) commit(plan []*plannedFile) ([]string, error) {
	written := make([]string, 0, len(plan))

	for i, p := range plan {
		if err := os.Rename(p.temp, p.target); err != nil {
			cleanup(plan[i:])
			return written, models.Errorf(models.ErrorKindWrite, "failed to write %s after %d of %d files: %w",
				p.name, len(written), len(plan), err)
		}
		p.temp = ""

		written = append(written, p.name)
		fmt.Fprintf(w.progress, "generated file: %s\n", p.name)
	}

	return written, nil
}

// cleanup removes staged temp files that were not committed.
func cleanup(plan []*plannedFile) {
	for _, p := range plan {
		if p.temp == "" {
			continue
		}
		if err := os.Remove(p.temp); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to remove temp file", "temp", p.temp, "error", err)
		}
		p.temp = ""
	}
}
