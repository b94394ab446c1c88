package llm

import (
	"context"
	"errors"
	"sync"
)

// MockResponse is a canned reply for MockClient.
type MockResponse struct {
	Text string
	Err  error
}

// MockClient returns canned replies in FIFO order and records requests.
type MockClient struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockClient creates a MockClient with the given replies.
func NewMockClient(responses ...MockResponse) *MockClient {
	return &MockClient{responses: responses}
}

// Complete pops the next reply.
func (m *MockClient) Complete(_ context.Context, req Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)
	if len(m.responses) == 0 {
		return "", &ProviderError{Provider: "mock", Err: errors.New("no canned response")}
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp.Text, resp.Err
}

// Provider returns "mock".
func (m *MockClient) Provider() string { return "mock" }

// CallCount returns the number of Complete calls made.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
