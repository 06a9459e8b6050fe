package llm

import (
	"context"
	"fmt"
)

// MockGenerator answers without calling any model. Useful for local runs.
type MockGenerator struct{}

func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

func (m *MockGenerator) Generate(ctx context.Context, prompt, convContext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("Thanks for your message! You said %q. Let me see how I can help with that.", prompt), nil
}
