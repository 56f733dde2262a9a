package gatekeeper

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ticketgen/internal/config"
	"ticketgen/internal/interfaces"
	"ticketgen/internal/models"

	"golang.org/x/sys/unix"
)

// Gatekeeper enforces output limits before anything is written to disk
type Gatekeeper struct {
	limits config.OutputConfig
	statfs func(path string, stat *unix.Statfs_t) error
}

func New(cfg *config.Config) *Gatekeeper {
	return &Gatekeeper{
		limits: cfg.Output,
		statfs: unix.Statfs,
	}
}

// CanWrite checks a batch of (already trimmed) files against the configured
// file count, per-file size and free disk space rules.
func (g *Gatekeeper) CanWrite(dir string, files []models.GeneratedFile) interfaces.GateDecision {
	// Rule 1: file count
	if g.limits.MaxFiles > 0 && len(files) > g.limits.MaxFiles {
		return interfaces.GateDecision{
			Allowed: false,
			Reason:  fmt.Sprintf("%d files exceeds the limit of %d", len(files), g.limits.MaxFiles),
			Details: map[string]interface{}{
				"file_count": len(files),
				"max_files":  g.limits.MaxFiles,
			},
		}
	}

	// Rule 2: per-file size
	var totalBytes int64
	for _, f := range files {
		size := int64(len(f.Content))
		if g.limits.MaxFileBytes > 0 && size > g.limits.MaxFileBytes {
			return interfaces.GateDecision{
				Allowed: false,
				Reason:  fmt.Sprintf("%s is %d bytes, exceeds the limit of %d", f.Name, size, g.limits.MaxFileBytes),
				Details: map[string]interface{}{
					"file":           f.Name,
					"size_bytes":     size,
					"max_file_bytes": g.limits.MaxFileBytes,
				},
			}
		}
		totalBytes += size
	}

	// Rule 3: free space on the target filesystem
	available, err := g.availableBytes(dir)
	if err != nil {
		slog.Warn("failed to check free disk space, allowing write", "dir", dir, "error", err)
		return interfaces.GateDecision{Allowed: true}
	}

	required := totalBytes + g.limits.MinFreeBytes
	if available < uint64(required) {
		return interfaces.GateDecision{
			Allowed: false,
			Reason:  fmt.Sprintf("insufficient disk space: need %d bytes, %d available", required, available),
			Details: map[string]interface{}{
				"required_bytes":  required,
				"available_bytes": available,
			},
		}
	}

	return interfaces.GateDecision{
		Allowed: true,
		Details: map[string]interface{}{
			"total_bytes":     totalBytes,
			"available_bytes": available,
		},
	}
}

func (g *Gatekeeper) availableBytes(dir string) (uint64, error) {
	existing, err := nearestExistingDir(dir)
	if err != nil {
		return 0, err
	}

	var stat unix.Statfs_t
	if err := g.statfs(existing, &stat); err != nil {
		return 0, fmt.Errorf("failed to stat output disk: %w", err)
	}

	return stat.Bavail * uint64(stat.Bsize), nil
}

// nearestExistingDir walks up from dir until it finds a path that exists,
// since the output directory may not have been created yet.
func nearestExistingDir(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	for {
		if _, err := os.Stat(current); err == nil {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no existing ancestor for %s", dir)
		}
		current = parent
	}
}
