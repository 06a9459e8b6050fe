package domain

import "context"

// Generator is an optional text generator consulted before falling back
// to canned responses. Implementations return an error when they cannot
// produce text; callers treat any error as "use the fallback".
type Generator interface {
	Generate(ctx context.Context, prompt, convContext string) (string, error)
}

// ScenarioSource supplies the scenario catalog.
type ScenarioSource interface {
	Get(index int) (Scenario, error)
	Len() int
}
