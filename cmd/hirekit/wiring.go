package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/LadFoxTom/hirekit-app-sub001/internal/composer"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/config"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/engine"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/intent"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/jobsearch"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/letter"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/pipeline"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/storage"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/stream"
)

// app is the assembled assistant with the resources it owns.
type app struct {
	assistant *pipeline.Assistant
	store     *storage.Store
	engine    engine.Engine
	backend   string
	chatModel string
	reasoning string

	closers []func() error
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func setupLogging(level string) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(level)})))
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// buildApp wires every component from cfg. Missing provider or model
// credentials are logged, never fatal: searches then return no listings
// unless search.allow_synthetic is set, and letters use the static
// templates.
func buildApp(ctx context.Context, cfg config.Config) (*app, error) {
	detect := engine.DetectConfig{
		Backend:          cfg.LLM.Backend,
		OllamaBaseURL:    cfg.Ollama.BaseURL,
		OpenRouterAPIKey: cfg.LLM.OpenRouterAPIKey,
		OpenRouterURL:    cfg.LLM.OpenRouterURL,
	}
	backend := detect.Resolve()
	eng, err := engine.Detect(detect)
	if err != nil {
		return nil, fmt.Errorf("detecting inference engine: %w", err)
	}
	if backend == engine.BackendOpenRouter && cfg.LLM.OpenRouterAPIKey == "" {
		slog.Warn("openrouter api key not set; model calls will fail and fallbacks will be used")
	}

	a := &app{
		engine:    eng,
		backend:   backend,
		chatModel: cfg.ChatModel(backend),
		reasoning: cfg.ReasoningModelFor(backend),
	}

	store, err := storage.Open(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	a.store = store
	a.closers = append(a.closers, store.Close)

	adzuna := jobsearch.NewAdzunaProvider(jobsearch.AdzunaConfig{
		AppID:             cfg.Provider.AdzunaAppID,
		AppKey:            cfg.Provider.AdzunaAppKey,
		BaseURL:           cfg.Provider.AdzunaBaseURL,
		RequestsPerSecond: cfg.Provider.RequestsPerSecond,
		ResultsPerPage:    cfg.Provider.ResultsPerPage,
	})
	if !adzuna.HasCredentials() {
		slog.Warn("job provider credentials not set; live search is disabled")
	}

	var provider jobsearch.Provider = adzuna
	if cfg.Cache.RedisURL != "" {
		cache, err := jobsearch.NewRedisCache(ctx, cfg.Cache.RedisURL, cfg.Search.CacheTTL)
		if err != nil {
			slog.Warn("search cache unavailable, continuing without it", "error", err)
		} else {
			provider = jobsearch.WithCache(provider, cache)
			a.closers = append(a.closers, cache.Close)
		}
	}

	a.assistant = pipeline.NewAssistant(pipeline.Deps{
		Extractor:      intent.NewExtractor(eng, a.reasoning),
		Search:         jobsearch.NewClient(provider),
		Drafter:        letter.NewDrafter(eng, a.chatModel, cfg.Stream.ProfileBudget),
		Assembler:      stream.NewAssembler(eng, a.chatModel, stream.FixedDelay(cfg.Stream.TokenDelay)),
		Composer:       composer.New(cfg.Stream.ProfileBudget, cfg.Stream.HistoryTurns, 0),
		Recorder:       store,
		AllowSynthetic: cfg.Search.AllowSynthetic,
	})

	slog.Info("assistant ready", "backend", backend, "chat_model", a.chatModel, "reasoning_model", a.reasoning)
	return a, nil
}

// prepareEngine pulls missing local models. An unreachable local engine is
// reported but does not stop startup.
func (a *app) prepareEngine(ctx context.Context, w io.Writer) {
	p, ok := a.engine.(engine.Provisioner)
	if !ok || a.backend != engine.BackendOllama {
		return
	}
	if err := engine.EnsureReady(ctx, p, []string{a.chatModel, a.reasoning}, w); err != nil {
		slog.Warn("local inference engine not ready", "error", err)
	}
}
