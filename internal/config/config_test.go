package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/PabloGalante/farum-demo/internal/config"
	"github.com/PabloGalante/farum-demo/internal/domain"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{
		"DEMO_PORT", "DEMO_DEFAULT_MODE", "DEMO_OPTION_LATENCY", "DEMO_FREETEXT_LATENCY",
		"DEMO_GENERATOR", "DEMO_USE_MOCK_LLM", "DEMO_SCENARIO_FILE",
	} {
		t.Setenv(k, "")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.DefaultMode != domain.ModeInteractive {
		t.Errorf("DefaultMode = %q", cfg.DefaultMode)
	}
	if cfg.OptionLatency != time.Second || cfg.FreeTextLatency != 1200*time.Millisecond {
		t.Errorf("latencies = %v / %v", cfg.OptionLatency, cfg.FreeTextLatency)
	}
	if cfg.Generator != config.GeneratorNone {
		t.Errorf("Generator = %q", cfg.Generator)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DEMO_PORT", "9090")
	t.Setenv("DEMO_DEFAULT_MODE", "playback")
	t.Setenv("DEMO_OPTION_LATENCY", "250ms")
	t.Setenv("DEMO_FREETEXT_LATENCY", "300")
	t.Setenv("DEMO_USE_MOCK_LLM", "true")
	t.Setenv("DEMO_CALENDAR_SEED", "7")

	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.Port != "9090" || cfg.DefaultMode != domain.ModePlayback {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.OptionLatency != 250*time.Millisecond || cfg.FreeTextLatency != 300*time.Millisecond {
		t.Errorf("latencies = %v / %v", cfg.OptionLatency, cfg.FreeTextLatency)
	}
	if cfg.Generator != config.GeneratorMock {
		t.Errorf("Generator = %q, want mock", cfg.Generator)
	}
	if cfg.CalendarSeed != 7 {
		t.Errorf("CalendarSeed = %d", cfg.CalendarSeed)
	}
}

func TestFromEnvValidation(t *testing.T) {
	t.Setenv("DEMO_USE_MOCK_LLM", "")

	t.Setenv("DEMO_DEFAULT_MODE", "karaoke")
	if _, err := config.FromEnv(); !errors.Is(err, domain.ErrInvalidMode) {
		t.Errorf("expected ErrInvalidMode, got %v", err)
	}

	t.Setenv("DEMO_DEFAULT_MODE", "")
	t.Setenv("DEMO_GENERATOR", "gemini")
	t.Setenv("GEMINI_API_KEY", "")
	if _, err := config.FromEnv(); !errors.Is(err, domain.ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}

	t.Setenv("DEMO_GENERATOR", "telepathy")
	if _, err := config.FromEnv(); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}
