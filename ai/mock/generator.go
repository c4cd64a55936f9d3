package mock

import (
	"context"

	"github.com/poiesic/shopassist/ai"
)

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, returns a fixed canned completion.
	GenerateFunc func(ctx context.Context, req ai.GenerationRequest) (string, error)

	callCount   int
	lastRequest ai.GenerationRequest
}

// NewMockGenerator creates a mock generator with default canned behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Generate records the request and returns a canned completion.
func (m *MockGenerator) Generate(ctx context.Context, req ai.GenerationRequest) (string, error) {
	m.callCount++
	m.lastRequest = req

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}

	return "mock completion", nil
}

// CallCount returns the number of times Generate was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// LastRequest returns the most recent request passed to Generate.
// Zero value if Generate was never called.
func (m *MockGenerator) LastRequest() ai.GenerationRequest {
	return m.lastRequest
}

// Reset clears the call count, recorded request, and injected behavior.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.lastRequest = ai.GenerationRequest{}
	m.GenerateFunc = nil
}
