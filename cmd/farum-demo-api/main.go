package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PabloGalante/farum-demo/internal/adapters/calendar"
	httpadapter "github.com/PabloGalante/farum-demo/internal/adapters/http"
	"github.com/PabloGalante/farum-demo/internal/adapters/llm"
	memstore "github.com/PabloGalante/farum-demo/internal/adapters/storage/memory"
	"github.com/PabloGalante/farum-demo/internal/app/assist"
	"github.com/PabloGalante/farum-demo/internal/app/conversation"
	"github.com/PabloGalante/farum-demo/internal/app/workflow"
	"github.com/PabloGalante/farum-demo/internal/clock"
	"github.com/PabloGalante/farum-demo/internal/config"
	"github.com/PabloGalante/farum-demo/internal/observability"
	"github.com/PabloGalante/farum-demo/internal/scenario"
)

func main() {
	ctx := context.Background()
	log := observability.WithFields("service", "farum-demo-api")

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	observability.SetLevel(cfg.LogLevel)

	scenarios, err := scenario.Load(cfg.ScenarioFile)
	if err != nil {
		log.Error("error loading scenarios", "file", cfg.ScenarioFile, "error", err)
		os.Exit(1)
	}
	log.Info("scenarios loaded", "count", scenarios.Len(), "file", cfg.ScenarioFile)

	gen, err := llm.New(ctx, string(cfg.Generator), llm.GeminiConfig{
		APIKey:    cfg.GeminiAPIKey,
		Project:   cfg.GCPProjectID,
		Location:  cfg.GCPLocation,
		ModelName: cfg.ModelName,
	})
	if err != nil {
		log.Error("error initializing generator", "backend", cfg.Generator, "error", err)
		os.Exit(1)
	}
	log.Info("generator selected", "backend", cfg.Generator, "model", cfg.ModelName)

	// Conversation Service
	convSvc := conversation.NewService(scenarios, memstore.NewSessionStore(), conversation.Options{
		Scheduler:       clock.Real{},
		Generator:       gen,
		OptionLatency:   cfg.OptionLatency,
		FreeTextLatency: cfg.FreeTextLatency,
		GenerateTimeout: cfg.GenerateTimeout,
		Logger:          log,
	})

	// HTTP server
	handler := httpadapter.NewServer(httpadapter.Deps{
		Conversation: convSvc,
		Scenarios:    scenarios,
		Assist:       assist.NewService(gen, cfg.GenerateTimeout),
		Calendar:     calendar.NewGenerator(cfg.MeetingHost, cfg.CalendarSeed),
		Workflows:    workflow.NewStubExecutor(),

		DefaultScenario: cfg.DefaultScenario,
		DefaultMode:     cfg.DefaultMode,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("farum demo API listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server crashed", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", "error", err)
	}
	log.Info("server stopped")
}
