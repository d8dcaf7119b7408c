package mocks

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/goccy/go-json"

	"github.com/Tsahi-Elkayam/replaylist/pkg/models"
)

// RecordedRequest is a request received by the mock PostHog server
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	RequestID     string
	Body          []byte
}

// Payload decodes the recorded body as a playlist payload
func (r RecordedRequest) Payload() (models.PlaylistPayload, error) {
	var payload models.PlaylistPayload
	err := json.Unmarshal(r.Body, &payload)
	return payload, err
}

// PostHogServer is an in-process stand-in for the PostHog playlist API
type PostHogServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
	status   int
	body     string
	nextID   int64
}

// NewPostHogServer starts a mock server that creates playlists successfully
func NewPostHogServer() *PostHogServer {
	s := &PostHogServer{
		status: http.StatusCreated,
		nextID: 42,
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// RespondWith makes every following request fail or succeed with a fixed response
func (s *PostHogServer) RespondWith(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = status
	s.body = body
}

// Requests returns the requests received so far
func (s *PostHogServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// Host returns host:port of the server
func (s *PostHogServer) Host() string {
	return strings.TrimPrefix(s.URL, "http://")
}

func (s *PostHogServer) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method:        r.Method,
		Path:          r.URL.Path,
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
		RequestID:     r.Header.Get("X-Request-ID"),
		Body:          body,
	})
	status, fixed := s.status, s.body
	id := s.nextID
	s.nextID++
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if fixed != "" || status < 200 || status > 299 {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, fixed)
		return
	}

	var payload models.PlaylistPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"type":"validation_error","detail":"invalid JSON"}`)
		return
	}

	result := models.PlaylistResult{
		ID:          id,
		ShortID:     fmt.Sprintf("pl%04d", id),
		Name:        payload.Name,
		Description: payload.Description,
		CreatedAt:   "2024-01-15T10:30:00Z",
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(result)
}
