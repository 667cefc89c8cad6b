package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ytget/cat-gallery/internal/model"
)

// Endpoint defaults
const (
	DefaultEndpoint = "https://aws.random.cat/meow"

	// MaxPayloadBytes bounds the JSON body we are willing to decode
	MaxPayloadBytes = 64 * 1024

	AcceptHeader = "application/json"
)

// Error classes returned by Fetch, wrapped with request details
var (
	ErrRequestFailed     = errors.New("image request failed")
	ErrUnexpectedStatus  = errors.New("unexpected response status")
	ErrMalformedResponse = errors.New("malformed image response")
)

// payload is the JSON object returned by the endpoint
type payload struct {
	File string `json:"file"`
}

// Service handles requests against the cat endpoint
type Service struct {
	client   *http.Client
	mu       sync.RWMutex
	endpoint string
	timeout  time.Duration // zero means no timeout
}

// NewService creates a new fetch service. A zero timeout disables it.
func NewService(endpoint string, timeout time.Duration) *Service {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultEndpoint
	}
	return &Service{
		client:   &http.Client{},
		endpoint: endpoint,
		timeout:  timeout,
	}
}

// SetHTTPClient replaces the HTTP client used for requests
func (s *Service) SetHTTPClient(client *http.Client) {
	if client == nil {
		return
	}
	s.mu.Lock()
	s.client = client
	s.mu.Unlock()
}

// SetEndpoint sets the endpoint URL; empty falls back to DefaultEndpoint
func (s *Service) SetEndpoint(endpoint string) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	s.mu.Lock()
	s.endpoint = endpoint
	s.mu.Unlock()
}

// Endpoint returns the configured endpoint URL
func (s *Service) Endpoint() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.endpoint
}

// SetTimeout sets the per-request timeout; zero or negative disables it
func (s *Service) SetTimeout(timeout time.Duration) {
	if timeout < 0 {
		timeout = 0
	}
	s.mu.Lock()
	s.timeout = timeout
	s.mu.Unlock()
}

// Timeout returns the per-request timeout
func (s *Service) Timeout() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.timeout
}

// Fetch requests one random image and returns its reference
func (s *Service) Fetch(ctx context.Context) (model.ImageReference, error) {
	s.mu.RLock()
	client, endpoint, timeout := s.client, s.endpoint, s.timeout
	s.mu.RUnlock()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", AcceptHeader)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s from %s", ErrUnexpectedStatus, resp.Status, endpoint)
	}

	ref, err := decodePayload(io.LimitReader(resp.Body, MaxPayloadBytes))
	if err != nil {
		return "", err
	}

	log.Printf("Fetched image reference from %s: %s", endpoint, ref)
	return ref, nil
}

// decodePayload extracts the image reference from a JSON body
func decodePayload(r io.Reader) (model.ImageReference, error) {
	var p payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	file := strings.TrimSpace(p.File)
	if file == "" {
		return "", fmt.Errorf("%w: missing \"file\" field", ErrMalformedResponse)
	}
	return model.ImageReference(file), nil
}
