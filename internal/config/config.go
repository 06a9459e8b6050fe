package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/PabloGalante/farum-demo/internal/domain"
)

type GeneratorBackend string

const (
	GeneratorNone   GeneratorBackend = "none"
	GeneratorMock   GeneratorBackend = "mock"
	GeneratorGemini GeneratorBackend = "gemini"
	GeneratorVertex GeneratorBackend = "vertex"
)

type Config struct {
	Port     string
	LogLevel string

	ScenarioFile    string
	DefaultScenario int
	DefaultMode     domain.InteractionMode

	OptionLatency   time.Duration
	FreeTextLatency time.Duration

	Generator       GeneratorBackend
	GenerateTimeout time.Duration
	GeminiAPIKey    string
	GCPProjectID    string
	GCPLocation     string
	ModelName       string

	CalendarSeed int64
	MeetingHost  string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func getIntEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// getDurationEnv accepts Go durations ("1.5s") or plain milliseconds.
func getDurationEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return def
}

// Load reads a .env file when present and then all env vars.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:     getEnv("DEMO_PORT", "8080"),
		LogLevel: getEnv("DEMO_LOG_LEVEL", "info"),

		ScenarioFile:    getEnv("DEMO_SCENARIO_FILE", ""),
		DefaultScenario: getIntEnv("DEMO_DEFAULT_SCENARIO", 0),
		DefaultMode:     domain.InteractionMode(getEnv("DEMO_DEFAULT_MODE", string(domain.ModeInteractive))),

		OptionLatency:   getDurationEnv("DEMO_OPTION_LATENCY", 1000*time.Millisecond),
		FreeTextLatency: getDurationEnv("DEMO_FREETEXT_LATENCY", 1200*time.Millisecond),

		Generator:       GeneratorBackend(getEnv("DEMO_GENERATOR", string(GeneratorNone))),
		GenerateTimeout: getDurationEnv("DEMO_GENERATE_TIMEOUT", 8*time.Second),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GCPProjectID:    getEnv("DEMO_GCP_PROJECT", ""),
		GCPLocation:     getEnv("DEMO_GCP_LOCATION", "us-central1"),
		ModelName:       getEnv("DEMO_MODEL_NAME", "gemini-2.5-flash"),

		CalendarSeed: int64(getIntEnv("DEMO_CALENDAR_SEED", 0)),
		MeetingHost:  getEnv("DEMO_MEETING_HOST", "meet.example.com"),
	}

	if getBoolEnv("DEMO_USE_MOCK_LLM", false) {
		cfg.Generator = GeneratorMock
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if !c.DefaultMode.Valid() {
		return fmt.Errorf("DEMO_DEFAULT_MODE %q: %w", c.DefaultMode, domain.ErrInvalidMode)
	}
	switch c.Generator {
	case GeneratorNone, GeneratorMock:
	case GeneratorGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY must be set for the gemini generator: %w", domain.ErrNotConfigured)
		}
	case GeneratorVertex:
		if c.GCPProjectID == "" {
			return fmt.Errorf("DEMO_GCP_PROJECT must be set for the vertex generator: %w", domain.ErrNotConfigured)
		}
	default:
		return fmt.Errorf("DEMO_GENERATOR %q: %w", c.Generator, domain.ErrInvalidArgument)
	}
	return nil
}
