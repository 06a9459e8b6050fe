package assist_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PabloGalante/farum-demo/internal/app/assist"
)

type genFunc func(ctx context.Context, prompt, convContext string) (string, error)

func (f genFunc) Generate(ctx context.Context, prompt, convContext string) (string, error) {
	return f(ctx, prompt, convContext)
}

func TestGenerateUnconfigured(t *testing.T) {
	svc := assist.NewService(nil, 0)
	if svc.Configured() {
		t.Fatalf("expected unconfigured service")
	}
	got := svc.Generate(context.Background(), "hi", "")
	if !got.Fallback || got.Text != assist.FallbackMessage {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestGeneratePassesThrough(t *testing.T) {
	svc := assist.NewService(genFunc(func(ctx context.Context, prompt, convContext string) (string, error) {
		return "  echo: " + prompt + " / " + convContext + "  ", nil
	}), time.Second)

	got := svc.Generate(context.Background(), "hi", "ctx")
	if got.Fallback || got.Text != "echo: hi / ctx" {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestGenerateDegradesOnFailure(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	tests := map[string]genFunc{
		"error": func(ctx context.Context, prompt, convContext string) (string, error) {
			return "", errors.New("quota exceeded")
		},
		"empty": func(ctx context.Context, prompt, convContext string) (string, error) {
			return "", nil
		},
		"timeout": func(ctx context.Context, prompt, convContext string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
		"ignores context": func(ctx context.Context, prompt, convContext string) (string, error) {
			<-release
			return "too late", nil
		},
	}

	for name, gen := range tests {
		t.Run(name, func(t *testing.T) {
			svc := assist.NewService(gen, 10*time.Millisecond)
			started := time.Now()
			got := svc.Generate(context.Background(), "hi", "")
			if elapsed := time.Since(started); elapsed > time.Second {
				t.Errorf("Generate took %s, want it bounded by the timeout", elapsed)
			}
			if !got.Fallback || got.Text != assist.FallbackMessage {
				t.Fatalf("unexpected result %+v", got)
			}
		})
	}
}
