package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"ticketgen/internal/models"

	"github.com/gorilla/mux"
)

// CompletionPath is the route served by CompletionServer
const CompletionPath = "/v1/completions"

// RecordedRequest is one call received by a CompletionServer
type RecordedRequest struct {
	Authorization string
	ContentType   string
	UserAgent     string
	Body          models.CompletionRequest
	RawBody       string
}

// CompletionServer fakes the completion endpoint. Only POST on CompletionPath is routed;
// anything else gets the router's 404/405.
type CompletionServer struct {
	*httptest.Server

	mu         sync.Mutex
	statusCode int
	body       string
	requests   []RecordedRequest
}

// NewCompletionServer starts a fake endpoint that answers every call with statusCode and body.
func NewCompletionServer(t *testing.T, statusCode int, body string) *CompletionServer {
	t.Helper()

	s := &CompletionServer{statusCode: statusCode, body: body}

	router := mux.NewRouter()
	router.HandleFunc(CompletionPath, s.handleCompletion).Methods(http.MethodPost)

	s.Server = httptest.NewServer(router)
	t.Cleanup(s.Close)

	return s
}

// NewTextServer answers 200 with a response whose choices[0].text is text.
func NewTextServer(t *testing.T, text string) *CompletionServer {
	t.Helper()
	return NewCompletionServer(t, http.StatusOK, TextResponse(text))
}

// Endpoint is the full URL to configure as the completion endpoint.
func (s *CompletionServer) Endpoint() string {
	return s.URL + CompletionPath
}

func (s *CompletionServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *CompletionServer) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *CompletionServer) handleCompletion(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)

	recorded := RecordedRequest{
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
		UserAgent:     r.Header.Get("User-Agent"),
		RawBody:       string(raw),
	}
	_ = json.Unmarshal(raw, &recorded.Body)

	s.mu.Lock()
	s.requests = append(s.requests, recorded)
	statusCode, body := s.statusCode, s.body
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	io.WriteString(w, body)
}

// TextResponse renders a completion response body with a single choice carrying text.
func TextResponse(text string) string {
	resp := models.CompletionResponse{
		ID:    "cmpl-test",
		Model: "grok-test",
		Choices: []models.CompletionChoice{
			{Index: 0, Text: &text, FinishReason: "stop"},
		},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}
