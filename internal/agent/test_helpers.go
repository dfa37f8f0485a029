package agent

import (
	"context"
	"fmt"
)

// MockDirectiveProvider is a scripted DirectiveProvider for tests. It returns
// queued directives in order, repeating the last one when the queue runs out,
// and records every prompt it receives.
type MockDirectiveProvider struct {
	Directives []string
	Err        error
	Prompts    []string
	next       int
}

// NewMockDirectiveProvider creates a provider that always returns the given directive.
func NewMockDirectiveProvider(directives ...string) *MockDirectiveProvider {
	return &MockDirectiveProvider{Directives: directives}
}

// GenerateDirective returns the next scripted directive.
func (m *MockDirectiveProvider) GenerateDirective(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.Prompts = append(m.Prompts, userPrompt)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Directives) == 0 {
		return "", fmt.Errorf("no scripted directives")
	}
	directive := m.Directives[m.next]
	if m.next < len(m.Directives)-1 {
		m.next++
	}
	return directive, nil
}
