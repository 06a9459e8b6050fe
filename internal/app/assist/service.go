// Package assist exposes the optional text generator as a passthrough
// that never fails: any problem degrades to a fixed message.
package assist

import (
	"context"
	"strings"
	"time"

	"github.com/PabloGalante/farum-demo/internal/domain"
	"github.com/PabloGalante/farum-demo/internal/observability"
)

const FallbackMessage = "The AI assistant is not available right now. Please try again later."

type Result struct {
	Text     string
	Fallback bool
}

type Service struct {
	gen     domain.Generator
	timeout time.Duration
}

// NewService wraps gen. A nil gen makes every call return the fallback.
func NewService(gen domain.Generator, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Service{gen: gen, timeout: timeout}
}

func (s *Service) Configured() bool {
	return s.gen != nil
}

// Generate consults the generator for at most the service timeout. A
// generator that ignores its context is abandoned, not waited on.
func (s *Service) Generate(ctx context.Context, prompt, convContext string) Result {
	if s.gen == nil {
		return Result{Text: FallbackMessage, Fallback: true}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	log := observability.LoggerFromContext(ctx)
	start := time.Now()

	type reply struct {
		text string
		err  error
	}
	done := make(chan reply, 1)
	go func() {
		text, err := s.gen.Generate(ctx, prompt, convContext)
		done <- reply{text: text, err: err}
	}()

	var r reply
	select {
	case r = <-done:
	case <-ctx.Done():
		log.Warn("generation timed out", "error", ctx.Err(), "elapsed_ms", time.Since(start).Milliseconds())
		return Result{Text: FallbackMessage, Fallback: true}
	}

	if r.err != nil {
		log.Warn("generation failed", "error", r.err, "elapsed_ms", time.Since(start).Milliseconds())
		return Result{Text: FallbackMessage, Fallback: true}
	}
	text := strings.TrimSpace(r.text)
	if text == "" {
		log.Warn("generation returned empty text")
		return Result{Text: FallbackMessage, Fallback: true}
	}

	log.Info("generation completed", "elapsed_ms", time.Since(start).Milliseconds())
	return Result{Text: text}
}
