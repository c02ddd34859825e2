package llm

import (
	"context"
	"sync"

	"templechat/pkg/chattypes"
)

// MockClient provides a scripted chattypes.CompletionClient for tests.
// Outcomes are served in order; the last one repeats once the script is
// exhausted.
type MockClient struct {
	mu            sync.Mutex
	outcomes      []chattypes.Outcome
	callCount     int
	systemPrompts []string
	userPrompts   []string

	// Gate, when non-nil, blocks Complete until the channel is closed or
	// the context is cancelled. Used to exercise in-flight behavior.
	Gate chan struct{}
}

// NewMockClient creates a mock client serving the given outcomes.
func NewMockClient(outcomes ...chattypes.Outcome) *MockClient {
	if len(outcomes) == 0 {
		outcomes = []chattypes.Outcome{chattypes.SuccessOutcome("mock reply")}
	}
	return &MockClient{outcomes: outcomes}
}

// ProviderName returns the provider name for this client.
func (m *MockClient) ProviderName() string { return "mock" }

// IsConfigured always reports true.
func (m *MockClient) IsConfigured() bool { return true }

// Complete records the prompts and returns the next scripted outcome.
func (m *MockClient) Complete(ctx context.Context, systemPrompt, userPrompt string) chattypes.Outcome {
	m.mu.Lock()
	gate := m.Gate
	m.systemPrompts = append(m.systemPrompts, systemPrompt)
	m.userPrompts = append(m.userPrompts, userPrompt)
	index := m.callCount
	if index >= len(m.outcomes) {
		index = len(m.outcomes) - 1
	}
	outcome := m.outcomes[index]
	m.callCount++
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return chattypes.TransportFailureOutcome(ctx.Err().Error())
		}
	}
	return outcome
}

// CallCount returns how many Complete calls were made.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// SystemPrompts returns the recorded system prompts in call order.
func (m *MockClient) SystemPrompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.systemPrompts...)
}

// UserPrompts returns the recorded user prompts in call order.
func (m *MockClient) UserPrompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.userPrompts...)
}
