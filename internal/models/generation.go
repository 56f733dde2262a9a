package models

import (
	"log/slog"
	"strings"
	"time"
)

// MaxTokens is the output budget sent with every completion request.
const MaxTokens = 1000

type GenerationRequest struct {
	Credential  string
	Description string
	MaxTokens   int
}

func NewGenerationRequest(credential, description string) GenerationRequest {
	return GenerationRequest{
		Credential:  credential,
		Description: description,
		MaxTokens:   MaxTokens,
	}
}

// LogValue keeps the credential out of log output.
func (r GenerationRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("credential", MaskSecret(r.Credential)),
		slog.Int("description_length", len(r.Description)),
		slog.Int("max_tokens", r.MaxTokens),
	)
}

// MaskSecret hides all but the last four characters of a secret.
func MaskSecret(secret string) string {
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}

// GeneratedFile is one filename/content pair produced by the model.
type GeneratedFile struct {
	Name    string
	Content string
}

// FileSet is an ordered filename -> content mapping. Keys are unique; setting
// an existing key replaces its content but keeps its original position.
type FileSet struct {
	files []GeneratedFile
	index map[string]int
}

func NewFileSet(files ...GeneratedFile) *FileSet {
	set := &FileSet{}
	for _, f := range files {
		set.Set(f.Name, f.Content)
	}
	return set
}

func (s *FileSet) Set(name, content string) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[name]; ok {
		s.files[i].Content = content
		return
	}
	s.index[name] = len(s.files)
	s.files = append(s.files, GeneratedFile{Name: name, Content: content})
}

func (s *FileSet) Get(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	i, ok := s.index[name]
	if !ok {
		return "", false
	}
	return s.files[i].Content, true
}

func (s *FileSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.files)
}

// Files returns a copy of the entries in mapping order.
func (s *FileSet) Files() []GeneratedFile {
	if s == nil {
		return nil
	}
	out := make([]GeneratedFile, len(s.files))
	copy(out, s.files)
	return out
}

func (s *FileSet) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.files))
	for i, f := range s.files {
		names[i] = f.Name
	}
	return names
}

// RunSummary describes a successful run.
type RunSummary struct {
	RunID        string
	Files        []string
	FinishReason string
	Duration     time.Duration
}

func (s RunSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", s.RunID),
		slog.Int("files", len(s.Files)),
		slog.String("finish_reason", s.FinishReason),
		slog.Duration("duration", s.Duration),
	)
}
