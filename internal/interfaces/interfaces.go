package interfaces

import (
	"context"

	"ticketgen/internal/models"
)

// Completer sends one generation request to the remote completion endpoint
type Completer interface {
	Complete(ctx context.Context, req models.GenerationRequest) (*models.CompletionResponse, error)
}

// FileWriter materializes generated files and returns the names it wrote
type FileWriter interface {
	WriteAll(ctx context.Context, files *models.FileSet) ([]string, error)
}

// Gatekeeper decides whether a batch of files may be written under dir
type Gatekeeper interface {
	CanWrite(dir string, files []models.GeneratedFile) GateDecision
}

// GateDecision represents whether an operation can proceed
type GateDecision struct {
	Allowed bool
	Reason  string
	Details map[string]interface{}
}
