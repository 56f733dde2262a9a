package services

import (
	"context"
	"log/slog"
	"time"

	"ticketgen/internal/config"
	"ticketgen/internal/interfaces"
	"ticketgen/internal/models"
	"ticketgen/internal/parser"

	"github.com/google/uuid"
)

// GenerateService runs one description through the completion endpoint and
// writes the files it returns.
type GenerateService struct {
	config    *config.Config
	completer interfaces.Completer
	writer    interfaces.FileWriter
}

func NewGenerateService(cfg *config.Config, completer interfaces.Completer, writer interfaces.FileWriter) *GenerateService {
	return &GenerateService{
		config:    cfg,
		completer: completer,
		writer:    writer,
	}
}

// Run performs the request, parse and write stages in order and stops at the first failure.
func (s *GenerateService) Run(ctx context.Context, description string) (*models.RunSummary, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := slog.With("run_id", runID)

	req := models.NewGenerationRequest(s.config.Completion.APIKey, description)

	logger.Info("requesting completion",
		"endpoint", s.config.Completion.Endpoint,
		"request", req)

	resp, err := s.completer.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	var finishReason string
	if len(resp.Choices) > 0 {
		finishReason = resp.Choices[0].FinishReason
	}

	files, err := parser.ParseFiles(parser.ExtractText(resp))
	if err != nil {
		logger.Debug("completion output rejected", "kind", models.KindOf(err), "error", err)
		return nil, err
	}

	logger.Info("completion parsed", "files", files.Len(), "finish_reason", finishReason)

	written, err := s.writer.WriteAll(ctx, files)
	if err != nil {
		if len(written) > 0 {
			logger.Warn("output partially written", "written", written)
		}
		return nil, err
	}

	summary := &models.RunSummary{
		RunID:        runID,
		Files:        written,
		FinishReason: finishReason,
		Duration:     time.Since(start),
	}

	return summary, nil
}
