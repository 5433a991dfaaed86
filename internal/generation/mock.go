package generation

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockEngine is a scripted engine for testing. Responses are returned in
// the order they were queued; every request received is recorded.
type MockEngine struct {
	modelID string

	mu        sync.Mutex
	responses []string
	err       error

	Requests []*Request
}

// NewMockEngine creates a mock engine that replies with the given
// responses, one per Complete call.
func NewMockEngine(modelID string, responses ...string) *MockEngine {
	return &MockEngine{
		modelID:   modelID,
		responses: responses,
	}
}

// FailWith makes every subsequent Complete call return err.
func (m *MockEngine) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Enqueue adds responses to the reply queue.
func (m *MockEngine) Enqueue(responses ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, responses...)
}

func (m *MockEngine) Initialize(ctx context.Context) error {
	return nil
}

func (m *MockEngine) Complete(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, req)

	if m.err != nil {
		return nil, m.err
	}

	if len(m.responses) == 0 {
		return nil, fmt.Errorf("mock engine has no response queued for prompt %q", req.Prompt)
	}

	content := m.responses[0]
	m.responses = m.responses[1:]

	return &Response{
		Content:    content,
		ModelID:    m.modelID,
		DurationMs: time.Since(start).Milliseconds(),
	}, nil
}

func (m *MockEngine) Shutdown(ctx context.Context) error {
	return nil
}

// Ensure MockEngine satisfies Engine.
var _ Engine = (*MockEngine)(nil)
