package llm

import (
	"context"
	"fmt"

	"github.com/PabloGalante/farum-demo/internal/domain"
)

// New returns the generator for backend ("none", "mock", "gemini",
// "vertex"). "none" yields a nil generator, which callers treat as
// unconfigured.
func New(ctx context.Context, backend string, cfg GeminiConfig) (domain.Generator, error) {
	switch backend {
	case "", "none":
		return nil, nil
	case "mock":
		return NewMockGenerator(), nil
	case "gemini":
		cfg.Project, cfg.Location = "", ""
	case "vertex":
		cfg.APIKey = ""
	default:
		return nil, fmt.Errorf("unknown generator backend %q: %w", backend, domain.ErrInvalidArgument)
	}

	client, err := NewGeminiClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return client, nil
}
